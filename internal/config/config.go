package config

import (
	"errors"
	"fmt"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	App      App
	HTTP     HTTP
	Postgres Postgres
	Redis    Redis
	Auction  Auction
	Kafka    Kafka
	Bot      Bot
}

func Load() (Config, error) {
	_ = godotenv.Load()

	var config Config

	if err := env.Parse(&config); err != nil {
		return Config{}, fmt.Errorf("env.Parse: %w", err)
	}

	if err := config.validate(); err != nil {
		return Config{}, err
	}

	return config, nil
}

func (c Config) validate() error {
	var errs []error

	switch c.Auction.StateBackend {
	case StateBackendRedis, StateBackendMemory:
	default:
		errs = append(errs, fmt.Errorf("STATE_BACKEND: unknown backend %q", c.Auction.StateBackend))
	}

	if c.Auction.Countdown <= 0 {
		errs = append(errs, errors.New("AUCTION_COUNTDOWN: must be positive"))
	}

	if c.Auction.TickInterval <= 0 {
		errs = append(errs, errors.New("AUCTION_TICK_INTERVAL: must be positive"))
	}

	if c.Bot.Enabled() && c.Bot.ChatID == 0 {
		errs = append(errs, errors.New("BOT_CHAT_ID: required when BOT_TOKEN is set"))
	}

	return errors.Join(errs...)
}
