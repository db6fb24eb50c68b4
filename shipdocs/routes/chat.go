package routes

import (
	"encoding/json"
	"net/http"

	"shipdocs/shipdocs/config"
	"shipdocs/shipdocs/controllers"
	"shipdocs/shipdocs/middlewares"
	"shipdocs/shipdocs/utils/types"

	"github.com/go-chi/chi/v5"
)

func ChatRoutes(ctrl *controllers.ChatController, cfg config.Config) chi.Router {
	r := chi.NewRouter()
	r.Use(middlewares.Identity(cfg))

	// POST /api/chat : route the message and persist the exchange
	r.Post("/", func(w http.ResponseWriter, r *http.Request) {
		var req types.ChatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, types.ErrorResponse{Error: "invalid request body", ErrorType: "bad_request"})
			return
		}
		if req.Message == "" {
			writeJSON(w, http.StatusBadRequest, types.ErrorResponse{Error: "Message is required", ErrorType: "bad_request"})
			return
		}
		var userID *string
		if id, ok := middlewares.UserIDFrom(r.Context()); ok {
			userID = &id
		}
		resp, err := ctrl.Chat(r.Context(), userID, req)
		if err != nil {
			writeChatError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, resp)
	})
	return r
}
