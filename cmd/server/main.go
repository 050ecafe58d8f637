package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/tmckee/warfront/internal/config"
	"github.com/tmckee/warfront/internal/handler"
	"github.com/tmckee/warfront/internal/logger"
	"github.com/tmckee/warfront/internal/repository/postgres"
	redisrepo "github.com/tmckee/warfront/internal/repository/redis"
	"github.com/tmckee/warfront/internal/service"
)

func main() {
	logger.Init()
	cfg := config.Load()
	log.Info().Str("databaseURL", cfg.DatabaseURL).Msg("Config loaded")

	// Database
	db, err := postgres.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Database connection failed")
	}
	defer db.Close()

	// Redis
	redisClient, err := redisrepo.NewClient(cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Redis connection failed")
	}
	defer redisClient.Close()

	// Repos
	gameRepo := postgres.NewGameRepo(db)
	playerRepo := postgres.NewPlayerRepo(db)
	territoryRepo := postgres.NewTerritoryRepo(db)

	// WebSocket hub
	wsHub := handler.NewHub()

	// Services
	gameSvc := service.NewGameService(gameRepo, playerRepo, territoryRepo, redisClient, wsHub, service.ClassicTopology)
	turnSvc := service.NewTurnService(gameRepo, playerRepo, territoryRepo, redisClient, wsHub, service.ClassicTopology)
	cpuRunner := service.NewCPURunner(gameRepo, playerRepo, territoryRepo, redisClient, wsHub, service.ClassicTopology, cfg.CPUThinkDelay)
	gameSvc.SetTurnTrigger(cpuRunner)
	turnSvc.SetTurnTrigger(cpuRunner)

	// Handlers
	wsHandler := handler.NewWSHandler(wsHub)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})
	mux.HandleFunc("GET /ws", wsHandler.ServeWS)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Resume CPU play in games interrupted by a restart.
	if err := resumeCPUGames(context.Background(), gameRepo, cpuRunner); err != nil {
		log.Error().Err(err).Msg("Failed to resume active games (non-fatal)")
	}

	go func() {
		log.Info().Str("port", cfg.Port).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server shutdown failed")
	}
}

// resumeCPUGames re-triggers the CPU runner for every in-progress game so a
// restart mid CPU turn does not leave the game stalled. Games where a human is
// up are a no-op: the runner sees the human and returns.
func resumeCPUGames(ctx context.Context, gameRepo *postgres.GameRepo, runner *service.CPURunner) error {
	games, err := gameRepo.ListInProgress(ctx)
	if err != nil {
		return err
	}
	for _, g := range games {
		runner.TriggerTurn(ctx, g.ID)
	}
	if len(games) > 0 {
		log.Info().Int("count", len(games)).Msg("Resumed in-progress games")
	}
	return nil
}
