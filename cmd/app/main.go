package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/yanibasnist/BestFreeSignalBot/internal/application"
	"github.com/yanibasnist/BestFreeSignalBot/internal/config"
	pg "github.com/yanibasnist/BestFreeSignalBot/internal/infra/db/postgres"
	httpapi "github.com/yanibasnist/BestFreeSignalBot/internal/infra/http"
	"github.com/yanibasnist/BestFreeSignalBot/internal/infra/logging"
	"github.com/yanibasnist/BestFreeSignalBot/internal/infra/metrics"
	red "github.com/yanibasnist/BestFreeSignalBot/internal/infra/redis"
	tele "github.com/yanibasnist/BestFreeSignalBot/internal/infra/telegram"
	"github.com/yanibasnist/BestFreeSignalBot/internal/infra/web"
	"github.com/yanibasnist/BestFreeSignalBot/internal/infra/worker"
	"github.com/yanibasnist/BestFreeSignalBot/internal/usecase"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ---- CLI flags ----
	cfgPath := flag.String("config", "config.yaml", "path to YAML config file")
	devMode := flag.Bool("dev", false, "enable developer mode (console logs, debug level)")
	flag.Parse()

	cfg, err := config.LoadConfig(*cfgPath, *devMode)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger := logging.New(cfg.Log, cfg.Runtime.Dev)
	if cfg.Runtime.Dev {
		logger.Info().Msg("[DEV MODE] enabled")
	}

	// ---- Postgres ----
	pool, err := pg.NewPgxPool(ctx, cfg.Database.URL, 10)
	if err != nil {
		logger.Fatal().Err(err).Msg("postgres")
	}
	defer pool.Close()
	if err := pg.InitSchema(ctx, pool); err != nil {
		logger.Fatal().Err(err).Msg("schema")
	}

	// ---- Redis ----
	redisClient, err := red.NewClient(ctx, &cfg.Redis)
	if err != nil {
		logger.Fatal().Err(err).Msg("redis")
	}
	rateLimiter := red.NewRateLimiter(redisClient)
	stateRepo := red.NewStateRepo(redisClient)

	// ---- Repositories ----
	postRepo := pg.NewPostgresPostRepo(pool)
	settingsRepo := pg.NewPostgresSettingsRepo(pool)
	userRepo := pg.NewPostgresUserRepo(pool)

	// ---- Telegram adapter (transport port for the use cases) ----
	botAdapter, err := tele.NewRealTelegramBotAdapter(&cfg.Bot, stateRepo, rateLimiter, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("telegram")
	}

	// ---- Use cases ----
	settingsUC := usecase.NewSettingsUseCase(settingsRepo, logger)
	postUC := usecase.NewPostUseCase(postRepo, settingsUC, logger)
	userUC := usecase.NewUserUseCase(userRepo)
	statsUC := usecase.NewStatsUseCase(userUC, postUC, settingsUC)
	verifier := usecase.NewMembershipVerifier(botAdapter, logger)
	deliveryUC := usecase.NewDeliveryUseCase(postRepo, verifier, botAdapter, logger)
	authoringUC := usecase.NewAuthoringUseCase(stateRepo, postUC, botAdapter, logger)

	broadcastWorkers := cfg.Broadcast.Workers
	if broadcastWorkers <= 0 {
		broadcastWorkers = 4
	}
	broadcastPool := worker.NewPool(broadcastWorkers)
	broadcastPool.Start(ctx)
	defer broadcastPool.Stop()
	broadcastUC := usecase.NewBroadcastUseCase(userRepo, botAdapter, broadcastPool, logger)

	// ---- Facade ----
	facade := application.NewBotFacade(userUC, postUC, settingsUC, statsUC, deliveryUC, authoringUC, broadcastUC)
	botAdapter.AttachFacade(facade)

	go func() {
		if err := botAdapter.StartPolling(ctx); err != nil && ctx.Err() == nil {
			logger.Error().Err(err).Msg("telegram polling stopped")
		}
	}()

	// ---- Health + metrics server ----
	metrics.MustRegister()
	healthSrv := httpapi.NewServer(cfg.HTTP.Port, logger)
	go func() {
		if err := healthSrv.Start(); err != nil && err != http.ErrServerClosed {
			logger.Error().Err(err).Msg("http server")
		}
	}()

	// ---- Admin API ----
	var adminSrv *http.Server
	if cfg.Admin.Port > 0 {
		auth := web.NewAuthManager(cfg.Admin.SessionSecret, !cfg.Runtime.Dev, 30*time.Minute)
		api := web.NewServer(statsUC, postUC, userUC, settingsUC, auth, cfg.Admin.APIKey, logger)
		adminSrv = &http.Server{Addr: fmt.Sprintf(":%d", cfg.Admin.Port), Handler: api.Routes()}
		go func() {
			logger.Info().Int("port", cfg.Admin.Port).Msg("admin API listening")
			if err := adminSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				logger.Error().Err(err).Msg("admin server")
			}
		}()
	}

	// ---- Graceful shutdown ----
	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	<-sigc
	logger.Info().Msg("shutdown requested")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	_ = healthSrv.Shutdown(shutdownCtx)
	if adminSrv != nil {
		_ = adminSrv.Shutdown(shutdownCtx)
	}
}
