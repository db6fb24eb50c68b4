package routes

import (
	"encoding/json"
	"net/http"

	"shipdocs/shipdocs/utils/apperrors"
	"shipdocs/shipdocs/utils/logging"
	"shipdocs/shipdocs/utils/types"

	"go.uber.org/zap"
)

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

// writeChatError classifies the error and responds with the taxonomy's
// status, message and machine-readable type.
func writeChatError(w http.ResponseWriter, err error) {
	chatErr := apperrors.Classify(err)
	logging.ErrorLogger.Error("chat request failed",
		zap.String("error_type", string(chatErr.Type)),
		zap.Error(err),
	)
	writeJSON(w, chatErr.Status(), types.ErrorResponse{
		Error:     chatErr.Message,
		ErrorType: string(chatErr.Type),
	})
}
