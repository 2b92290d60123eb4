package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"mood-tracker/internal/config"
	"mood-tracker/internal/mood"
	"mood-tracker/internal/scheduler"
	"mood-tracker/internal/telegram"
)

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Warning: .env file not found: %v", err)
	}

	cfg := config.New()

	repo, err := mood.NewFileRepository(cfg.DataFilePath)
	if err != nil {
		log.Fatalf("failed to init mood repository: %v", err)
	}

	data, err := repo.Load()
	if err != nil {
		// Prior data is unreadable; start fresh rather than abort.
		log.Printf("failed to load mood data, starting empty: %v", err)
		data = make(mood.Data)
	}

	store := mood.NewStore(data)
	svc := mood.NewService(store, repo, time.Now)

	bot, err := telegram.New(cfg.TelegramBotToken, svc)
	if err != nil {
		log.Fatalf("failed to create bot: %v", err)
	}

	if cfg.ReminderCron != "" {
		sched := scheduler.New(cfg.ReminderCron)
		sched.SetRemindFunction(func() {
			for _, userID := range svc.Users() {
				bot.SendReminder(userID)
			}
		})
		if err := sched.Start(); err != nil {
			log.Fatalf("failed to start scheduler: %v", err)
		}
		defer sched.Stop()
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.Println("Бот запускается...")
	bot.Start(ctx)
}
