package worker

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"auction_house/pkg/contextx"
	"auction_house/pkg/logx"
)

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

// TickFunc вызывается на каждом тике. false завершает цикл.
type TickFunc = func(ctx context.Context) bool

// Countdown — единственный периодический цикл аукциона. Одновременно живёт
// не больше одного цикла: Start останавливает предыдущий, Stop дожидается
// выхода горутины.
type Countdown struct {
	interval time.Duration

	mu         sync.Mutex
	cancelFunc context.CancelFunc
	isRunning  bool
	wg         sync.WaitGroup
}

func NewCountdown(interval time.Duration) *Countdown {
	return &Countdown{interval: interval}
}

func (c *Countdown) Start(ctx context.Context, tick TickFunc) {
	c.Stop()

	c.mu.Lock()
	defer c.mu.Unlock()

	loopCtx, cancel := context.WithCancel(ctx)
	c.cancelFunc = cancel
	c.isRunning = true

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		defer func() {
			c.mu.Lock()
			c.isRunning = false
			c.cancelFunc = nil
			c.mu.Unlock()
			cancel()
		}()

		c.run(loopCtx, tick)
	}()
}

// Stop нельзя вызывать из TickFunc: он ждёт завершения той же горутины.
func (c *Countdown) Stop() {
	c.mu.Lock()

	if !c.isRunning {
		c.mu.Unlock()
		c.wg.Wait()

		return
	}

	if c.cancelFunc != nil {
		c.cancelFunc()
	}
	c.mu.Unlock()

	c.wg.Wait()
}

func (c *Countdown) IsRunning() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.isRunning
}

func (c *Countdown) run(ctx context.Context, tick TickFunc) {
	logger(ctx).Debug("countdown started", slog.Duration("interval", c.interval))

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger(ctx).Debug("countdown stopped", logx.Error(ctx.Err()))
			return
		case <-ticker.C:
			// Тик и отмена могли прийти одновременно: select выбирает
			// случайно, а после Stop тиков быть не должно.
			if ctx.Err() != nil {
				return
			}

			if !tick(ctx) {
				logger(ctx).Debug("countdown finished")
				return
			}
		}
	}
}
