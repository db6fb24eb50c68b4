package routes

import (
	"net/http"
	"strconv"

	"shipdocs/shipdocs/controllers"
	"shipdocs/shipdocs/sources/psql/models"

	"github.com/go-chi/chi/v5"
)

func ConversationRoutes(ctrl *controllers.ChatController) chi.Router {
	r := chi.NewRouter()

	// GET /api/conversations?limit=N : recent conversations for the dashboard
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
		convs, err := ctrl.ListRecentConversations(r.Context(), limit)
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
			return
		}
		writeJSON(w, http.StatusOK, map[string][]models.Conversation{"conversations": convs})
	})

	// GET /api/conversations/{id} : full message log
	r.Get("/{id}", func(w http.ResponseWriter, r *http.Request) {
		msgs, err := ctrl.GetConversationMessages(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
			return
		}
		if msgs == nil {
			msgs = []models.Message{}
		}
		writeJSON(w, http.StatusOK, map[string][]models.Message{"messages": msgs})
	})
	return r
}
