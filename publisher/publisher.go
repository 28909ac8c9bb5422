package publisher

import (
  "sync"
  "time"

  "github.com/robertof/go-i2cscan-beacon/scanner"
  "github.com/rs/zerolog/log"
)

// Link is the wireless side of the publisher: it knows whether an observer
// is currently subscribed and can push a wire record to it.
type Link interface {
  Attached() bool
  Send(record []byte) error
}

// Publisher owns the single current scan record. Publish replaces the record
// wholesale and Read returns it verbatim, so a concurrent reader observes
// either the previous complete record or the new one, never a mix.
type Publisher struct {
  mu sync.RWMutex
  current scanner.Result
  publishTime time.Time

  link Link
}

func New(link Link) *Publisher {
  return &Publisher{
    link: link,
  }
}

// Publish replaces the shared record and, when an observer is subscribed,
// pushes the new record to it. Publishing with no observer attached is a
// silent no-op on the send side. A failed send is logged and dropped: the
// record stays replaced and the next cycle publishes again regardless.
func (p *Publisher) Publish(r scanner.Result) {
  p.mu.Lock()
  p.current = r
  p.publishTime = time.Now()
  p.mu.Unlock()

  if !p.link.Attached() {
    log.Debug().Msg("No observer subscribed, skipping notification")
    return
  }

  if err := p.link.Send(r.WireBytes()); err != nil {
    log.Warn().Err(err).Msg("Failed to notify observer")
  }
}

// Read returns the wire bytes of the current record, serving on-demand
// reads from the wireless link. Before the first publish this is the
// all-zero record.
func (p *Publisher) Read() []byte {
  p.mu.RLock()
  defer p.mu.RUnlock()

  return p.current.WireBytes()
}

// Snapshot returns the current record and the time it was published.
func (p *Publisher) Snapshot() (scanner.Result, time.Time) {
  p.mu.RLock()
  defer p.mu.RUnlock()

  // safe to return as every sweep builds a fresh Result.
  return p.current, p.publishTime
}
