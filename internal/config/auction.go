package config

import "time"

const (
	StateBackendRedis  = "redis"
	StateBackendMemory = "memory"
)

type Auction struct {
	// memory годится только для одного процесса и локального запуска.
	StateBackend string        `env:"STATE_BACKEND" envDefault:"redis"`
	Countdown    int           `env:"AUCTION_COUNTDOWN" envDefault:"10"`
	TickInterval time.Duration `env:"AUCTION_TICK_INTERVAL" envDefault:"1s"`
}
