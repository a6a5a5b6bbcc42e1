/*
Package sweeper runs the expiration sweep on a fixed cadence.

PURPOSE:
  Periodically asks the storage engine to settle every sell order whose
  expiration_time has passed: items (and, for auctions with a standing bid,
  price funds) land in the right holding and the settled rows disappear.

DESIGN:
  - Runs a background goroutine on a time.Ticker
  - One tick settles every order due so far, not just the oldest
  - A failed sweep is logged and retried on the next tick; it never stops
    the loop or the process

USAGE:
  sw := sweeper.New(eng, time.Second)
  sw.Start()
  // ... later
  sw.Stop()

SEE ALSO:
  - internal/engine: ProcessExpiredSellOrders, the operation being driven
*/
package sweeper

import (
	"context"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/kinkard/sundris/internal/engine"
)

// Sweeper drives the expiration sweep on a fixed interval.
type Sweeper struct {
	engine   *engine.Engine
	interval time.Duration
	logger   *log.Logger

	ticker *time.Ticker
	stop   chan struct{}
	wg     sync.WaitGroup
	mu     sync.Mutex
}

// New creates a Sweeper that calls eng.ProcessExpiredSellOrders once every
// interval. It does not start running until Start is called.
func New(eng *engine.Engine, interval time.Duration) *Sweeper {
	return &Sweeper{
		engine:   eng,
		interval: interval,
		logger:   log.Default().With("component", "sweeper"),
		stop:     make(chan struct{}),
	}
}

// Start begins the background sweep loop.
func (s *Sweeper) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.ticker = time.NewTicker(s.interval)
	s.wg.Add(1)
	go s.run()
}

// Stop halts the sweep loop and waits for the current sweep, if any, to
// finish.
func (s *Sweeper) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ticker == nil {
		return
	}
	s.ticker.Stop()
	close(s.stop)
	s.wg.Wait()
}

func (s *Sweeper) run() {
	defer s.wg.Done()

	for {
		select {
		case <-s.ticker.C:
			s.sweep()
		case <-s.stop:
			return
		}
	}
}

func (s *Sweeper) sweep() {
	if err := s.engine.ProcessExpiredSellOrders(context.Background(), time.Now().Unix()); err != nil {
		s.logger.Error("failed to process expired sell orders", "err", err)
	}
}

// RunNow triggers an immediate sweep, bypassing the ticker. Intended for
// tests that don't want to wait out a real interval.
func (s *Sweeper) RunNow() {
	s.sweep()
}
