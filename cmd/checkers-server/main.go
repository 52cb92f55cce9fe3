// Package main runs the checkers game server: a REST API over the game
// service with optional SQLite persistence.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"checkers/cmd/checkers-server/cli"
	"checkers/internal/config"
	"checkers/internal/processor"
	"checkers/internal/service"
	"checkers/internal/storage"
	"checkers/internal/transport/http"
)

const gracefulShutdownTimeout = 5 * time.Second

func main() {
	if len(os.Args) > 1 && os.Args[1] == "db" {
		if err := cli.Run(os.Args[2:]); err != nil {
			log.Fatalf("CLI error: %v", err)
		}
		os.Exit(0)
	}

	flags := config.RegisterFlags(flag.CommandLine)
	pidPath := flag.String("pid", "", "Optional path to write PID file")
	pidLock := flag.Bool("pid-lock", false, "Lock PID file to allow only one instance (requires -pid)")
	flag.Parse()

	cfg, err := config.Resolve(flag.CommandLine, flags)
	if err != nil {
		log.Fatalf("Configuration error: %v", err)
	}

	if *pidLock && *pidPath == "" {
		log.Fatal("Error: -pid-lock flag requires the -pid flag to be set")
	}
	if *pidPath != "" {
		cleanup, err := managePIDFile(*pidPath, *pidLock)
		if err != nil {
			log.Fatalf("Failed to manage PID file: %v", err)
		}
		defer cleanup()
		log.Printf("PID file created at: %s (lock: %v)", *pidPath, *pidLock)
	}

	var store *storage.Store
	if cfg.Storage.Path != "" {
		log.Printf("Initializing persistent storage at: %s", cfg.Storage.Path)
		store, err = storage.NewStore(cfg.Storage.Path, cfg.Storage.WAL)
		if err != nil {
			log.Fatalf("Failed to initialize storage: %v", err)
		}
		if err := store.InitDB(); err != nil {
			store.Close()
			log.Fatalf("Failed to initialize schema: %v", err)
		}
	} else {
		log.Printf("Persistent storage disabled (use -storage-path to enable)")
	}

	svc := service.New(store)
	proc := processor.New(svc, processor.Options{
		Workers:          cfg.Engine.Workers,
		Seed:             cfg.Engine.Seed,
		DefaultThinkTime: cfg.Engine.ThinkTimeMs,
	})
	app := http.NewFiberApp(proc, svc, http.Options{
		DevMode:   cfg.API.Dev,
		AccessLog: cfg.API.Dev,
		RateLimit: cfg.API.RateLimit,
	})

	apiAddr := fmt.Sprintf("%s:%d", cfg.API.Host, cfg.API.Port)

	go func() {
		log.Printf("Checkers API Server starting...")
		log.Printf("API Listening on: http://%s", apiAddr)
		if cfg.API.Dev {
			log.Printf("Rate Limit: %d requests/second per IP (DEV MODE)", cfg.API.RateLimit*2)
		} else {
			log.Printf("Rate Limit: %d requests/second per IP", cfg.API.RateLimit)
		}
		log.Printf("Engine: %d worker(s), default think time %dms", cfg.Engine.Workers, cfg.Engine.ThinkTimeMs)
		log.Printf("API Endpoints: http://%s/api/v1/games", apiAddr)
		log.Printf("Health: http://%s/health", apiAddr)

		if err := app.Listen(apiAddr); err != nil {
			log.Printf("API server listen error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), gracefulShutdownTimeout)
	defer shutdownCancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}

	// Workers stop before the service so no result lands on a closed store
	if err := proc.Close(); err != nil {
		log.Printf("Processor close error: %v", err)
	}

	if err := svc.Close(); err != nil {
		log.Printf("Service shutdown error: %v", err)
	}

	log.Println("Server exited")
}
