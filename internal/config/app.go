package config

import (
	"log/slog"
	"time"
)

type App struct {
	Name           string     `env:"APP_NAME" envDefault:"auction-house"`
	Version        string     `env:"APP_VERSION" envDefault:"dev"`
	LogLevel       slog.Level `env:"LOG_LEVEL" envDefault:"INFO"`
	LogJSON        bool       `env:"LOG_JSON" envDefault:"false"`
	LogFieldMaxLen int        `env:"LOG_FIELD_MAX_LEN" envDefault:"4096"`
}

type HTTP struct {
	ListenAddress        string        `env:"HTTP_LISTEN_ADDRESS" envDefault:":8080"`
	ShutdownTimeout      time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT" envDefault:"10s"`
	MetricsListenAddress string        `env:"METRICS_LISTEN_ADDRESS" envDefault:":9090"`
	ProbeListenAddress   string        `env:"PROBE_LISTEN_ADDRESS" envDefault:":8081"`
	ProbeCheckTimeout    time.Duration `env:"PROBE_CHECK_TIMEOUT" envDefault:"2s"`
}
