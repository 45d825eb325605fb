package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/teilomillet/bedrockgate/errors"
	"go.uber.org/zap"
)

// FailureRecorder counts failed requests by kind. *metrics.Metrics implements it.
type FailureRecorder interface {
	RecordFailure(errType errors.ErrorType)
}

// Recovery middleware recovers from panics, logs them with the stack and
// answers with an UnexpectedError that is counted like any other failure.
// The stack never reaches the client. failures may be nil.
func Recovery(logger *zap.Logger, failures FailureRecorder) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}

				requestID := GetRequestID(r.Context())
				gerr := errors.NewUnexpectedError(requestID, fmt.Errorf("panic: %v", rec))

				logger.Error("Panic recovered",
					zap.Any("error", rec),
					zap.ByteString("stack", debug.Stack()),
					zap.String("request_id", requestID),
				)
				errors.LogError(logger, gerr, requestID)
				if failures != nil {
					failures.RecordFailure(gerr.Type)
				}

				errors.WriteError(w, gerr)
			}()

			next.ServeHTTP(w, r)
		})
	}
}
