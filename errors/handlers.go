package errors

import (
	"net/http"

	"go.uber.org/zap"
)

// LogError logs an error with its failure kind and the underlying cause.
// Client errors are logged at warn level, everything else at error level.
func LogError(logger *zap.Logger, err error, requestID string) {
	gerr, ok := err.(*GatewayError)
	if !ok {
		logger.Error("unexpected error",
			zap.Error(err),
			zap.String("request_id", requestID),
		)
		return
	}

	fields := []zap.Field{
		zap.String("error_type", string(gerr.Type)),
		zap.String("detail", gerr.Message),
		zap.Int("code", gerr.Code),
		zap.String("request_id", requestID),
	}
	if gerr.err != nil {
		fields = append(fields, zap.NamedError("cause", gerr.err))
	}

	if gerr.Code < http.StatusInternalServerError {
		logger.Warn("request rejected", fields...)
		return
	}
	logger.Error("request failed", fields...)
}
