package stream

import (
	"context"
	"sync"

	"stock-dashboard/src/logger"
	"stock-dashboard/src/models"
	"stock-dashboard/src/utils"
)

// -----------------------------------------------------------------------------
// Subscription pairs one connection with one symbol. The polling ticker and
// the rolling window are owned together and torn down together; the window
// never outlives its timer.
// -----------------------------------------------------------------------------

type Subscription struct {
	Symbol string

	window   *utils.RingBuffer
	calendar *utils.TradingCalendar
	send     chan<- models.MStreamMessage
	cancel   context.CancelFunc
	done     chan struct{}
	once     sync.Once
	logger   *logger.Logger
}

// -----------------------------------------------------------------------------

// Unsubscribe stops the polling loop and blocks until it has fully exited.
// After it returns, no further message is pushed for this subscription.
// Idempotent.
func (s *Subscription) Unsubscribe() {
	s.once.Do(s.cancel)
	<-s.done
}

// -----------------------------------------------------------------------------

// push delivers a message to the subscriber without blocking the tick loop.
// Nothing is sent once the subscription context is cancelled.
func (s *Subscription) push(ctx context.Context, msg models.MStreamMessage) {
	if ctx.Err() != nil {
		return
	}

	select {
	case s.send <- msg:
	default:
		// Subscriber too slow; drop rather than stall the tick
		s.logger.Warning("Dropping %s message for slow subscriber on %s", msg.Type, s.Symbol)
	}
}
