package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/cbodonnell/tycoon/pkg/api"
	"github.com/cbodonnell/tycoon/pkg/config"
	"github.com/cbodonnell/tycoon/pkg/game"
	"github.com/cbodonnell/tycoon/pkg/game/engine"
	"github.com/cbodonnell/tycoon/pkg/log"
	"github.com/cbodonnell/tycoon/pkg/network"
	"github.com/cbodonnell/tycoon/pkg/queue"
	"github.com/cbodonnell/tycoon/pkg/repositories"
	"github.com/cbodonnell/tycoon/pkg/state"
	"github.com/cbodonnell/tycoon/pkg/version"
	"github.com/cbodonnell/tycoon/pkg/workers"
)

func main() {
	envFile := flag.String("env-file", "", "Path to a .env file to load before reading the environment")
	logLevel := flag.String("log-level", "", "Log level (overrides TYCOON_LOG_LEVEL)")
	flag.Parse()

	var envFiles []string
	if *envFile != "" {
		envFiles = append(envFiles, *envFile)
	}
	cfg, err := config.Load(envFiles...)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}

	parsedLogLevel, err := log.ParseLogLevel(cfg.LogLevel)
	if err != nil {
		panic(fmt.Sprintf("Failed to parse log level: %v", err))
	}

	logger := log.New(os.Stdout, "", log.DefaultLoggerFlag, parsedLogLevel)
	log.SetDefaultLogger(logger)
	log.Info("Log level set to %s", parsedLogLevel)

	log.Info("Starting tycoon server version %s", version.Get())
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repository, err := repositories.Open(ctx, cfg.DatabaseURL, cfg.MigrationsDir)
	if err != nil {
		panic(fmt.Sprintf("Failed to open repository: %v", err))
	}
	defer repository.Close(context.Background())

	serverEventQueue := queue.NewInMemoryQueue(10000)
	hub := network.NewHub(network.NewHubOptions{
		OriginPatterns: cfg.AllowedOrigins,
	})
	defer hub.Close()

	gameManager := game.NewGameManager(game.NewGameManagerOptions{
		Engine: engine.NewEngine(engine.NewEngineOptions{
			Rules: cfg.RuleConfig(),
		}),
		Repository:       repository,
		StateManager:     state.NewInMemoryStateManager(),
		ServerEventQueue: serverEventQueue,
		ConflictRetries:  cfg.ConflictRetries,
		LogLimit:         cfg.LogLimit,
		MaxPlayers:       cfg.MaxPlayers,
	})

	auctionWorker := workers.NewAuctionWorker(workers.NewAuctionWorkerOptions{
		Resolver: gameManager,
		Interval: cfg.AuctionSweepInterval,
	})
	broadcastWorker := workers.NewBroadcastMessageWorker(workers.NewBroadcastMessageWorkerOptions{
		Broadcaster:      hub,
		ServerEventQueue: serverEventQueue,
	})

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		auctionWorker.Start(ctx)
	}()
	go func() {
		defer wg.Done()
		broadcastWorker.Start(ctx)
	}()

	apiServerOpts := api.NewAPIServerOptions{
		Port:           cfg.Port,
		Games:          gameManager,
		Viewers:        hub,
		AllowedOrigins: cfg.AllowedOrigins,
	}
	tlsCertFile := os.Getenv("TYCOON_API_TLS_CERT_FILE")
	tlsKeyFile := os.Getenv("TYCOON_API_TLS_KEY_FILE")
	if tlsCertFile != "" && tlsKeyFile != "" {
		apiServerOpts.TLS = &api.TLSConfig{
			CertFile: tlsCertFile,
			KeyFile:  tlsKeyFile,
		}
	}
	server := api.NewAPIServer(apiServerOpts)
	go server.Start()

	log.Info("Starting game manager")
	if err := gameManager.Start(ctx); err != nil {
		log.Error("Game manager failed: %v", err)
		stop()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Stop(shutdownCtx); err != nil {
		log.Error("Failed to stop server: %v", err)
	}
	gameManager.Stop()
	wg.Wait()
	log.Info("Server stopped")
}
