package application

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/hibiken/asynq"
	"github.com/mymmrac/telego"
	"golang.org/x/sync/errgroup"

	"auction_house/internal/config"
	"auction_house/internal/domain/service/auction"
	"auction_house/internal/domain/service/catalog"
	"auction_house/internal/domain/value"
	"auction_house/internal/infrastructure/alerts"
	"auction_house/internal/infrastructure/broadcast"
	"auction_house/internal/infrastructure/eventlog"
	"auction_house/internal/infrastructure/notifier"
	"auction_house/internal/infrastructure/persistence"
	"auction_house/internal/infrastructure/state"
	"auction_house/internal/server"
	"auction_house/internal/transport/bot"
	"auction_house/internal/transport/bot/handler"
	"auction_house/internal/worker"
	"auction_house/pkg/application/connectors"
	"auction_house/pkg/application/modules"
	"auction_house/pkg/contextx"
	"auction_house/pkg/httpx"
	"auction_house/pkg/logx"
	"auction_house/pkg/probe"
)

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

const (
	readHeaderTimeout = 5 * time.Second
	// Алерты редки, очерёдность между ними не важна.
	alertsConcurrency = 2
)

//nolint:funlen
func Run(ctx context.Context, cfg config.Config) error {
	ctx = contextx.WithLogger(ctx, logger(ctx).With(
		slog.String("app", cfg.App.Name),
		slog.String("version", cfg.App.Version),
	))

	pg := &connectors.Postgres{
		DSN:             cfg.Postgres.DSN,
		MaxOpenConns:    cfg.Postgres.MaxOpenConns,
		MaxIdleConns:    cfg.Postgres.MaxIdleConns,
		ConnMaxLifetime: cfg.Postgres.ConnMaxLifetime,
		ConnectTimeout:  cfg.Postgres.ConnectTimeout,
	}
	defer pg.Close(ctx)

	db := pg.Client(ctx)

	lotRepo := persistence.NewLotRepository(db)
	partyRepo := persistence.NewPartyRepository(db)
	settlementRepo := persistence.NewSettlementRepository(db)

	catalogService := catalog.NewService(lotRepo, partyRepo).WithBidHistory(settlementRepo)

	hub := broadcast.NewHub()
	defer hub.Close()

	sinks := []broadcast.Sink{hub}

	if cfg.Kafka.Enabled() {
		kafkaConnector := &connectors.Kafka{
			Brokers:      cfg.Kafka.Brokers,
			Topic:        cfg.Kafka.Topic,
			BatchTimeout: cfg.Kafka.BatchTimeout,
		}
		defer kafkaConnector.Close(ctx)

		sinks = append(sinks, eventlog.NewKafkaPublisher(kafkaConnector.Writer(ctx)))
	}

	var (
		telegramBot  *notifier.TelegramBot
		operatorChat *telego.Bot
	)

	if cfg.Bot.Enabled() {
		var err error

		operatorChat, err = newTelegoBot(cfg)
		if err != nil {
			return err
		}

		telegramBot = notifier.NewTelegramBot(operatorChat, cfg.Bot.ChatID)
		sinks = append(sinks, telegramBot)
	}

	redisConnector := &connectors.Redis{
		Username:       cfg.Redis.Username,
		Password:       cfg.Redis.Password,
		Address:        cfg.Redis.Address,
		DatabaseNumber: cfg.Redis.DB,
		PoolSize:       cfg.Redis.PoolSize,
	}
	defer redisConnector.Close(ctx)

	var stateStore auction.StateStore

	switch cfg.Auction.StateBackend {
	case config.StateBackendMemory:
		logger(ctx).Warn("in-memory auction state: run a single instance only")
		stateStore = state.NewMemoryStore(value.DefaultIncrementSchedule(), cfg.Auction.Countdown)
	default:
		stateStore = state.NewRedisStore(redisConnector.Client(ctx), cfg.Redis.StateKey, value.DefaultIncrementSchedule())
	}

	engine := auction.NewEngine(
		stateStore,
		lotRepo,
		settlementRepo,
		broadcast.NewFanout(sinks...),
		worker.NewCountdown(cfg.Auction.TickInterval),
	).WithCountdown(cfg.Auction.Countdown)
	defer engine.Close()

	// Без Redis и чата операторов алертов нет: ошибка расчёта остаётся в логах и в событии error.
	alertsEnabled := telegramBot != nil && cfg.Auction.StateBackend == config.StateBackendRedis
	if alertsEnabled {
		asynqClient := asynq.NewClient(redisConnector.AsynqClientOpt())
		defer func() {
			if err := asynqClient.Close(); err != nil {
				logger(ctx).Error("asynqClient.Close", logx.Error(err))
			}
		}()

		engine.WithAlerter(alerts.NewAlerter(asynqClient))
	}

	if err := engine.Reset(ctx); err != nil {
		return fmt.Errorf("engine.Reset: %w", err)
	}

	router := server.NewRouter(
		server.NewServer(
			server.NewAuctionServer(engine, hub),
			server.NewCatalogServer(catalogService),
		),
		server.RouterOptions{
			SensitiveDataMasker: logx.NewSensitiveDataMasker(),
			LogFieldMaxLen:      cfg.App.LogFieldMaxLen,
		},
	)

	g, ctx := errgroup.WithContext(ctx)

	modules.HTTPServer{
		ShutdownTimeout: cfg.HTTP.ShutdownTimeout,
	}.Run(ctx, g, &http.Server{
		Addr:              cfg.HTTP.ListenAddress,
		Handler:           router,
		ReadHeaderTimeout: readHeaderTimeout,
	})

	modules.MetricServer{
		ListenAddress: cfg.HTTP.MetricsListenAddress,
	}.Run(ctx, g)

	modules.ProbeServer{
		Name:          cfg.App.Name,
		Version:       cfg.App.Version,
		ListenAddress: cfg.HTTP.ProbeListenAddress,
		CheckTimeout:  cfg.HTTP.ProbeCheckTimeout,
		Checks:        readinessChecks(cfg, pg, redisConnector),
	}.Run(ctx, g)

	if telegramBot != nil {
		g.Go(func() error {
			return telegramBot.Run(ctx)
		})

		g.Go(func() error {
			return bot.New(operatorChat, cfg.Bot.AdminID, handler.New(engine, catalogService)).Run(ctx)
		})
	}

	if alertsEnabled {
		modules.AsynqServer{
			Redis:       redisConnector.AsynqClientOpt(),
			Concurrency: alertsConcurrency,
		}.Run(ctx, g, modules.AsynqQueues{alerts.Queue: 1}, modules.AsynqHandler{
			Pattern: alerts.TypeSettlementFailed,
			Handle:  worker.NewSettlementAlert(telegramBot).Handle,
		})
	}

	logger(ctx).Info("application started", slog.String("state-backend", cfg.Auction.StateBackend))

	if err := g.Wait(); err != nil {
		return fmt.Errorf("errgroup.Wait: %w", err)
	}

	return nil
}

// newTelegoBot ходит в Bot API через логирующий транспорт; токен в пути маскируется.
func newTelegoBot(cfg config.Config) (*telego.Bot, error) {
	client := &http.Client{
		Transport: httpx.NewLoggingRoundTripper(
			http.DefaultTransport,
			httpx.WithSensitiveDataMasker(logx.NewSensitiveDataMasker()),
			httpx.WithLogFieldMaxLen(cfg.App.LogFieldMaxLen),
		),
	}

	b, err := telego.NewBot(cfg.Bot.Token, telego.WithHTTPClient(client))
	if err != nil {
		return nil, fmt.Errorf("telego.NewBot: %w", err)
	}

	return b, nil
}

// readinessChecks: Redis проверяется только тогда, когда в нём живёт запись аукциона.
func readinessChecks(cfg config.Config, pg *connectors.Postgres, rdb *connectors.Redis) []probe.Check {
	checks := []probe.Check{{
		Name:  "postgres",
		Probe: pg.Ping,
	}}

	if cfg.Auction.StateBackend == config.StateBackendRedis {
		checks = append(checks, probe.Check{
			Name:  "redis",
			Probe: rdb.Ping,
		})
	}

	return checks
}
