package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/teilomillet/bedrockgate/errors"
	"go.uber.org/zap"
)

// RootMessage is the liveness marker returned by GET /.
const RootMessage = "bedrockgate is running!"

// Root reports that the process is up.
func Root(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]string{"message": RootMessage})
}

// Health is the conventional health endpoint. It has no failure modes.
func Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		errors.DefaultLogger.Warn("failed to encode response", zap.Error(err))
	}
}
