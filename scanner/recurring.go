package scanner

import (
  "context"
  "time"

  "github.com/rs/zerolog/log"
)

const (
  DefaultInterval = 5 * time.Second
  DefaultSettleDelay = 100 * time.Millisecond
)

// PublishFunc receives the result of every completed sweep.
type PublishFunc func(Result)

// Recurring drives the endless sweep cycle: settle once after bring-up,
// then sweep, publish and sleep for the configured interval. Sweeps are
// strictly sequential - a new cycle never starts while one is in flight.
type Recurring struct {
  // SettleDelay is waited once before the first sweep so that freshly
  // powered peripherals can stabilize.
  SettleDelay time.Duration

  prober Prober
  publish PublishFunc

  started bool
}

func NewRecurring(p Prober, publish PublishFunc) *Recurring {
  return &Recurring{
    SettleDelay: DefaultSettleDelay,
    prober: p,
    publish: publish,
  }
}

// Start blocks until ctx is done. A sweep that has started always runs to
// completion; ctx is only honored between cycles.
func (s *Recurring) Start(ctx context.Context, interval time.Duration) {
  if s.started {
    panic("attempted to call scanner.Recurring.Start() twice")
  }

  s.started = true

  log.Info().
    Dur("IntervalSec", interval).
    Dur("SettleDelay", s.SettleDelay).
    Msg("Starting recurring bus sweep")

  select {
  case <-ctx.Done():
    return
  case <-time.After(s.SettleDelay):
  }

  for {
    res := Sweep(s.prober)

    s.publish(res)

    log.Debug().
      Stringer("Result", res).
      Dur("IntervalSec", interval).
      Msg("Sweep published, waiting before next cycle")

    select {
    case <-ctx.Done():
      log.Info().Msg("Recurring sweep is shutting down")
      return
    case <-time.After(interval):
    }
  }
}
