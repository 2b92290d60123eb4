package config

import (
	"log"

	"github.com/caarlos0/env/v6"
)

type Config struct {
	TelegramBotToken string `env:"TELEGRAM_BOT_TOKEN,required"`

	// Storage
	DataFilePath string `env:"DATA_FILE_PATH" envDefault:"data/mood_data.json"`

	// Optional daily reminder, standard cron spec in local time.
	// Empty disables the reminder.
	ReminderCron string `env:"REMINDER_CRON"`
}

func New() *Config {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	return cfg
}
