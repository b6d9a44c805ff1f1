package config

import (
	"fmt"
	"log"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	DiscordToken   string `env:"DISCORD_TOKEN,required,notEmpty"`
	StoragePath    string `env:"STORAGE_PATH" envDefault:"datastore.json"`
	EBGSAPIURL     string `env:"EBGS_API_URL" envDefault:"https://elitebgs.app/api/ebgs/v4"`
	TickSocketURL  string `env:"TICK_SOCKET_URL" envDefault:"wss://elitebgs.app/tick"`
	AutoReportCron string `env:"AUTO_REPORT_CRON" envDefault:"0 * * * *"`
	DeveloperID    string `env:"DEVELOPER_ID"`
}

// New loads .env (if present) and parses configuration from the environment.
func New() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("[INFO] No .env file found, falling back to system environment variables")
	}

	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}
	return &cfg, nil
}
