package routes

import (
	"net/http"

	"shipdocs/shipdocs/controllers"
	"shipdocs/shipdocs/sources/psql/models"

	"github.com/go-chi/chi/v5"
)

func ScraperRoutes(ctrl *controllers.ScraperController) chi.Router {
	r := chi.NewRouter()

	// POST /api/scraper/run : fire-and-forget start
	r.Post("/run", func(w http.ResponseWriter, r *http.Request) {
		resp, err := ctrl.Start(r.Context())
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Failed to start scraper"})
			return
		}
		writeJSON(w, http.StatusOK, resp)
	})

	// GET /api/scraper/status : latest run or never_run sentinel
	r.Get("/status", func(w http.ResponseWriter, r *http.Request) {
		status, err := ctrl.Status(r.Context())
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
			return
		}
		writeJSON(w, http.StatusOK, status)
	})

	// GET /api/scraper/runs : run history
	r.Get("/runs", func(w http.ResponseWriter, r *http.Request) {
		runs, err := ctrl.Runs(r.Context())
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
			return
		}
		if runs == nil {
			runs = []models.ScraperRun{}
		}
		writeJSON(w, http.StatusOK, map[string][]models.ScraperRun{"runs": runs})
	})

	// GET /api/scraper/runs/{id}/log : archived process output
	r.Get("/runs/{id}/log", func(w http.ResponseWriter, r *http.Request) {
		log, err := ctrl.RunLog(r.Context(), chi.URLParam(r, "id"))
		if err != nil || log == "" {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "run log not found"})
			return
		}
		w.Header().Set("Content-Type", "text/plain")
		w.Write([]byte(log))
	})
	return r
}
