package config

import (
	"log"

	"github.com/caarlos0/env/v6"
)

type Config struct {
	// Storage
	DataFilePath string `env:"DATA_FILE_PATH" envDefault:"data/user_data.json"`

	// Web form
	HTTPPort int `env:"HTTP_PORT" envDefault:"8501"`

	// Telegram (optional)
	TelegramBotToken string `env:"TELEGRAM_BOT_TOKEN"`

	// Snapshots (optional)
	BackupSchedule string `env:"BACKUP_SCHEDULE"`
	BackupDir      string `env:"BACKUP_DIR" envDefault:"data/backups"`
}

// Parse reads the configuration from the environment.
func Parse() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func New() *Config {
	cfg, err := Parse()
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	return cfg
}
