package handlers

import (
	stderrors "errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/teilomillet/bedrockgate/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// brokenWriter fails every body write, like a client that hung up.
type brokenWriter struct {
	*httptest.ResponseRecorder
}

func (w brokenWriter) Write([]byte) (int, error) {
	return 0, stderrors.New("connection reset by peer")
}

func TestWriteJSONLogsEncodeFailure(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	previous := errors.DefaultLogger
	errors.SetLogger(zap.New(core))
	t.Cleanup(func() { errors.SetLogger(previous) })

	Health(brokenWriter{httptest.NewRecorder()}, httptest.NewRequest(http.MethodGet, "/health", nil))

	entries := logs.FilterMessage("failed to encode response").All()
	require.Len(t, entries, 1)
	assert.Equal(t, zapcore.WarnLevel, entries[0].Level)
	assert.Contains(t, entries[0].ContextMap()["error"], "connection reset by peer")
}
