package stream

import (
	"context"
	"sync/atomic"
	"time"

	"stock-dashboard/src/analytics"
	"stock-dashboard/src/interfaces"
	"stock-dashboard/src/logger"
	"stock-dashboard/src/models"
	"stock-dashboard/src/utils"
)

// -----------------------------------------------------------------------------
// Publisher drives the fetch -> compute -> push cycle for every active
// subscription. Each subscription is a single goroutine owning its ticker
// and rolling window, so ticks for one subscription never interleave and a
// slow upstream call for one symbol never delays the others.
// -----------------------------------------------------------------------------

type Publisher struct {
	Config *models.MConfig
	Market interfaces.IMarketData
	Engine *analytics.Engine
	DB     interfaces.IDatabase // optional best-effort recorder, may be nil
	Logger *logger.Logger

	// Interval is the poll cadence, defaulted from config. Overridable
	// before the first Subscribe (used by tests to tighten the clock).
	Interval time.Duration

	active atomic.Int64
}

// -----------------------------------------------------------------------------

func NewPublisher(
	cfg *models.MConfig,
	market interfaces.IMarketData,
	engine *analytics.Engine,
	db interfaces.IDatabase,
	log *logger.Logger,
) *Publisher {
	return &Publisher{
		Config:   cfg,
		Market:   market,
		Engine:   engine,
		DB:       db,
		Logger:   log,
		Interval: time.Duration(cfg.Stream.PollIntervalSeconds) * time.Second,
	}
}

// -----------------------------------------------------------------------------

// Subscribe starts the polling loop for one connection+symbol pairing and
// returns its handle. Messages are pushed to send; the channel is never
// closed by the publisher, and nothing is pushed after Unsubscribe returns.
func (p *Publisher) Subscribe(parent context.Context, symbol string, send chan<- models.MStreamMessage) *Subscription {
	ctx, cancel := context.WithCancel(parent)

	sub := &Subscription{
		Symbol:   symbol,
		window:   utils.NewRingBuffer(symbol, p.Config.Stream.LookbackBars),
		calendar: utils.GetCalendar(symbol),
		send:     send,
		cancel:   cancel,
		done:     make(chan struct{}),
		logger:   p.Logger,
	}

	p.active.Add(1)
	go p.run(ctx, sub)

	return sub
}

// -----------------------------------------------------------------------------

// ActiveSubscriptions returns the number of live polling loops.
func (p *Publisher) ActiveSubscriptions() int64 {
	return p.active.Load()
}

// -----------------------------------------------------------------------------

func (p *Publisher) run(ctx context.Context, sub *Subscription) {
	defer close(sub.done)
	defer p.active.Add(-1)

	p.seedWindow(ctx, sub)

	ticker := time.NewTicker(p.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.tick(ctx, sub)
		}
	}
}

// -----------------------------------------------------------------------------

// seedWindow prefills the rolling window from history so the first ticks
// have enough lookback for the analytics engine. Best effort: a failed
// seed only delays metrics until the window fills from live polls.
func (p *Publisher) seedWindow(ctx context.Context, sub *Subscription) {
	series, err := p.Market.GetHistory(ctx, sub.Symbol, p.Config.MarketData.DefaultRange)
	if err != nil {
		p.Logger.Warning("History seed failed for %s: %v", sub.Symbol, err)
		return
	}

	for _, point := range series.Points {
		sub.window.Append(point)
	}
	p.Logger.Debug("Seeded %d bars for %s", len(series.Points), sub.Symbol)
}

// -----------------------------------------------------------------------------

// tick runs one poll-compute-push cycle. A failed poll pushes an in-band
// error notification and leaves the ticker running; a single failure never
// terminates the subscription.
func (p *Publisher) tick(ctx context.Context, sub *Subscription) {
	now := time.Now().UTC()

	point, err := p.Market.GetLatest(ctx, sub.Symbol)
	if err != nil {
		p.Logger.Warning("Poll failed for %s: %v", sub.Symbol, err)
		sub.push(ctx, models.MStreamMessage{
			Type:      models.StreamTypeError,
			Symbol:    sub.Symbol,
			Error:     err.Error(),
			Timestamp: now.Unix(),
		})
		return
	}

	// Polling can outpace the provider's bar cadence; only a fresh bar
	// enters the window so duplicates don't skew the return series.
	if latest, ok := sub.window.Latest(); !ok || latest.Timestamp != point.Timestamp {
		sub.window.Append(point)
	}

	snapshot, err := p.Engine.Compute(sub.window.Series())
	if err != nil {
		sub.push(ctx, models.MStreamMessage{
			Type:      models.StreamTypeError,
			Symbol:    sub.Symbol,
			Error:     err.Error(),
			Timestamp: now.Unix(),
		})
		return
	}
	snapshot.MarketOpen = sub.calendar.IsOpenOnMinute(now)

	sub.push(ctx, models.MStreamMessage{
		Type:      models.StreamTypeSnapshot,
		Symbol:    sub.Symbol,
		Snapshot:  &snapshot,
		Timestamp: now.Unix(),
	})

	p.record(point, snapshot)
}

// -----------------------------------------------------------------------------

// record persists the tick outcome. Storage failures are logged and never
// fail the tick.
func (p *Publisher) record(point models.MPricePoint, snapshot models.MAnalyticsSnapshot) {
	if p.DB == nil {
		return
	}

	if err := p.DB.SavePricePoint(point); err != nil {
		p.Logger.Warning("Failed to record price point for %s: %v", point.Symbol, err)
	}
	if err := p.DB.SaveSnapshot(snapshot); err != nil {
		p.Logger.Warning("Failed to record snapshot for %s: %v", snapshot.Symbol, err)
	}
}
