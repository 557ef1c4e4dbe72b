package main

import (
	"context"
	"database/sql"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"github.com/JunasVee/dynamits-driver/internal/assignment"
	"github.com/JunasVee/dynamits-driver/internal/auth"
	"github.com/JunasVee/dynamits-driver/internal/claim"
	"github.com/JunasVee/dynamits-driver/internal/commons"
	"github.com/JunasVee/dynamits-driver/internal/config"
	"github.com/JunasVee/dynamits-driver/internal/dispatch"
	"github.com/JunasVee/dynamits-driver/internal/gateway"
	"github.com/JunasVee/dynamits-driver/internal/infrastructure/logger"
	"github.com/JunasVee/dynamits-driver/internal/journal"
	"github.com/JunasVee/dynamits-driver/internal/server"
	"github.com/JunasVee/dynamits-driver/internal/session"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	zapLogger, err := logger.New(cfg.Log.Level)
	if err != nil {
		log.Fatalf("creating logger: %v", err)
	}
	defer zapLogger.Sync()

	settings, err := commons.LoadMapSettings(cfg.Maps.SettingsPath)
	if err != nil {
		zapLogger.Fatal("loading map settings", zap.Error(err))
	}

	if err := os.MkdirAll(filepath.Dir(cfg.Journal.Path), 0o755); err != nil {
		zapLogger.Fatal("creating journal directory", zap.Error(err))
	}
	db, err := sql.Open("sqlite", cfg.Journal.Path)
	if err != nil {
		zapLogger.Fatal("opening claim journal", zap.Error(err))
	}
	defer db.Close()
	if err := journal.InitSchema(db); err != nil {
		zapLogger.Fatal("initializing claim journal", zap.Error(err))
	}
	zapLogger.Info("claim journal ready", zap.String("path", cfg.Journal.Path))

	client := gateway.NewClient(cfg.API.BaseURL, cfg.API.Timeout, zapLogger)
	sessions := session.NewAccessor(cfg.Session.CookieTTL, cfg.Session.SecureCookie, zapLogger)
	jrnl := journal.New(db)
	workflow := claim.NewWorkflow(client, jrnl, zapLogger)

	sdk := dispatch.SDKConfig{APIKey: cfg.Maps.APIKey, MapID: cfg.Maps.MapID}
	dispatchModule := dispatch.NewModule(client, workflow, jrnl, settings, sdk, zapLogger)
	assignmentCtrl := assignment.NewModule(client, zapLogger)
	authCtrl := auth.NewModule(client, sessions, dispatchModule.UseCase, zapLogger)

	router := server.NewRouter(authCtrl, dispatchModule.Controller, assignmentCtrl, sessions, zapLogger)

	srv := server.New(cfg.Server.Port, router, zapLogger)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := srv.Start(); err != nil {
			zapLogger.Fatal("server error", zap.Error(err))
		}
	}()

	<-quit
	zapLogger.Info("received shutdown signal")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		zapLogger.Fatal("server shutdown failed", zap.Error(err))
	}

	zapLogger.Info("server stopped gracefully")
}
