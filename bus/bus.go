package bus

import (
  "github.com/pkg/errors"
  "github.com/robertof/go-i2cscan-beacon/scanner"
  "github.com/rs/zerolog/log"
  "periph.io/x/conn/v3/i2c"
  "periph.io/x/conn/v3/i2c/i2creg"
  "periph.io/x/host/v3"
)

// Handle wraps the host I2C bus used for address probing.
type Handle struct {
  bus i2c.BusCloser
}

// Open initializes the host drivers and opens the named I2C bus. An empty
// name selects the first available bus. A failure here is fatal to startup:
// without a working bus there is nothing to scan.
func Open(name string) (*Handle, error) {
  if _, err := host.Init(); err != nil {
    return nil, errors.Wrap(err, "failed to initialize host drivers")
  }

  b, err := i2creg.Open(name)

  if err != nil {
    return nil, errors.Wrapf(err, "failed to open I2C bus %q", name)
  }

  log.Info().Str("Bus", b.String()).Msg("I2C bus is ready")

  return &Handle{bus: b}, nil
}

// Probe issues a one-byte read at addr. Most devices acknowledge their
// address even for a plain read, so a successful transfer means a device is
// present; any bus error means absent.
func (h *Handle) Probe(addr scanner.Addr) bool {
  var dummy [1]byte

  if err := h.bus.Tx(uint16(addr), nil, dummy[:]); err != nil {
    log.Trace().
      Stringer("Addr", addr).
      Err(err).
      Msg("bus: address did not acknowledge")

    return false
  }

  return true
}

func (h *Handle) Close() error {
  return h.bus.Close()
}
