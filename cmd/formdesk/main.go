package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"formdesk/internal/config"
	"formdesk/internal/entries"
	"formdesk/internal/scheduler"
	"formdesk/internal/telegram"
	"formdesk/internal/web"
)

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Warning: .env file not found: %v", err)
	}

	cfg := config.New()

	store, err := entries.NewFileStore(cfg.DataFilePath)
	if err != nil {
		log.Fatalf("failed to init store: %v", err)
	}
	log.Printf("📂 Using store %s", store.Path())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var sched *scheduler.Scheduler
	if cfg.BackupSchedule != "" {
		sched = scheduler.New(cfg.BackupSchedule)
		sched.SetJobFunction(scheduler.NewSnapshotter(store, cfg.BackupDir).Run)
		if err := sched.Start(); err != nil {
			log.Fatalf("failed to start scheduler: %v", err)
		}
	}

	if cfg.TelegramBotToken != "" {
		bot, err := telegram.New(cfg.TelegramBotToken, store)
		if err != nil {
			log.Printf("failed to create telegram bot: %v", err)
		} else {
			go bot.Start(ctx)
		}
	}

	ws := web.NewWebServer(store, cfg.HTTPPort)
	errCh := make(chan error, 1)
	go func() { errCh <- ws.Start() }()

	select {
	case <-ctx.Done():
		log.Println("🛑 Shutting down")
	case err := <-errCh:
		if err != nil {
			log.Printf("❌ Web server failed: %v", err)
		}
	}

	if err := ws.Stop(); err != nil {
		log.Printf("failed to stop web server: %v", err)
	}
	if sched != nil {
		sched.Stop()
	}
}
