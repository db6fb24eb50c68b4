package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"shipdocs/shipdocs/config"
	"shipdocs/shipdocs/controllers"
	"shipdocs/shipdocs/routes"
	"shipdocs/shipdocs/services/ingest"
	"shipdocs/shipdocs/services/llm"
	"shipdocs/shipdocs/services/rag"
	"shipdocs/shipdocs/sources/psql"
	"shipdocs/shipdocs/sources/psql/dao"
	"shipdocs/shipdocs/sources/storage"
	"shipdocs/shipdocs/utils/logging"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

func main() {
	logging.InitLogger()
	cfg := config.LoadConfig()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	db, err := psql.NewDatabase(ctx, cfg)
	if err != nil {
		logging.ErrorLogger.Error("database connection error", zap.Error(err))
		os.Exit(1)
	}
	defer db.Close()

	conversationDAO := dao.NewConversationDAO(db.DB)
	messageDAO := dao.NewMessageDAO(db.DB)
	runDAO := dao.NewScraperRunDAO(db.DB)
	settingDAO := dao.NewSettingDAO(db.DB)

	// Run-log archival is optional; without MinIO the service still works.
	var archive *storage.MinIOClient
	if cfg.MinIOEndpoint != "" {
		archive, err = storage.NewMinIOClient(cfg)
		if err != nil {
			logging.ErrorLogger.Error("minio connection error", zap.Error(err))
			os.Exit(1)
		}
	}

	ragClient := rag.NewClient(cfg.RAGBaseURL)
	llmClient := llm.NewOpenAIClient(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, cfg.OpenAIModel)
	orchestrator := ingest.NewOrchestrator(runDAO, cfg, archive)

	chatCtrl := controllers.NewChatController(conversationDAO, messageDAO, ragClient, llmClient, cfg.RAGKeywords)
	scraperCtrl := controllers.NewScraperController(orchestrator, runDAO, archive)
	settingsCtrl := controllers.NewSettingsController(settingDAO)
	healthCtrl := controllers.NewHealthController()

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	// generous enough for the 120s retrieval call
	r.Use(middleware.Timeout(150 * time.Second))

	r.Route("/api", func(api chi.Router) {
		api.Mount("/chat", routes.ChatRoutes(chatCtrl, cfg))
		api.Mount("/conversations", routes.ConversationRoutes(chatCtrl))
		api.Mount("/scraper", routes.ScraperRoutes(scraperCtrl))
		api.Mount("/settings", routes.SettingsRoutes(settingsCtrl))
		api.Mount("/health", routes.HealthRoutes(healthCtrl))
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.ErrorLogger.Error("server listen error", zap.Error(err))
		}
	}()
	logging.AppLogger.Info("shipdocs listening", zap.String("port", cfg.Port))

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logging.ErrorLogger.Error("server shutdown error", zap.Error(err))
	}
	logging.AppLogger.Info("server shutdown complete")
}
