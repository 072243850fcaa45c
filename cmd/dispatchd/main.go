// Package main is the entry point for the dispatch scheduling daemon.
package main

import (
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/fleet-dispatch/backend/internal/calendar"
	"github.com/fleet-dispatch/backend/internal/config"
	"github.com/fleet-dispatch/backend/internal/dispatch"
	"github.com/fleet-dispatch/backend/internal/notify"
)

// version is set at build time via -ldflags "-X main.version=x.y.z".
// Defaults to "dev" when not provided.
var version = "dev"

func main() {
	configPath := flag.String("config", "", "Path to YAML config file")
	flag.Parse()

	// Load .env if present; environment always wins over the config file.
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded environment from .env")
	}

	if envVer := os.Getenv("VERSION"); envVer != "" {
		version = envVer
	}

	log.Printf("Starting dispatch scheduler (version: %s)...", version)

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	var sender notify.Sender
	if cfg.NotificationSender == "log" {
		sender = notify.LogSender{}
	}

	// Core services: one store, one notification log, one assignment board.
	store := calendar.NewStore()
	service := notify.NewService(sender, cfg.MaxNotifications)
	broadcaster := notify.NewBroadcaster(service)
	board := dispatch.NewBoard(cfg.AcceptanceWindow())

	// Recompute conflicts on every registry change and announce new ones.
	detector := calendar.NewDetector()
	stopWatch := detector.Watch(store, broadcaster.ConflictsDetected)

	// Periodic tasks: reminder scan and acceptance deadline tick.
	reminderMonitor := notify.NewMonitor(store, service, cfg.ReminderScanInterval())
	acceptanceMonitor := dispatch.NewMonitor(board, broadcaster, cfg.AcceptanceTick())

	reminderMonitor.Start()
	acceptanceMonitor.Start()

	// Wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down...")

	reminderMonitor.Stop()
	acceptanceMonitor.Stop()
	stopWatch()

	log.Println("Dispatch scheduler stopped")
}
