package routes

import (
	"encoding/json"
	"net/http"

	"shipdocs/shipdocs/controllers"
	"shipdocs/shipdocs/utils/types"

	"github.com/go-chi/chi/v5"
)

func SettingsRoutes(ctrl *controllers.SettingsController) chi.Router {
	r := chi.NewRouter()

	// GET /api/settings/{key} : value is null when unset
	r.Get("/{key}", func(w http.ResponseWriter, r *http.Request) {
		setting, err := ctrl.Get(r.Context(), chi.URLParam(r, "key"))
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
			return
		}
		writeJSON(w, http.StatusOK, setting)
	})

	// POST /api/settings : upsert
	r.Post("/", func(w http.ResponseWriter, r *http.Request) {
		var req types.SettingRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid setting data"})
			return
		}
		setting, err := ctrl.Set(r.Context(), req)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid setting data"})
			return
		}
		writeJSON(w, http.StatusOK, setting)
	})
	return r
}
