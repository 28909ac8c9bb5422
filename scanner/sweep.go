package scanner

import (
  "github.com/robertof/go-i2cscan-beacon/utils"
  "github.com/rs/zerolog/log"
)

// Prober tests whether a single bus address acknowledges a minimal one-byte
// read. A non-acknowledgment is an expected outcome, not an error.
type Prober interface {
  Probe(addr Addr) bool
}

// Sweep probes every scannable address once, in ascending order, and
// assembles the resulting record. Per-address failures never abort the
// sweep: an address that does not acknowledge is simply absent.
func Sweep(p Prober) (res Result) {
  var acked [gridRows * gridCols]bool

  log.Info().Msg("Scanning I2C bus...")

  for addr := ScanStart; addr <= ScanEnd; addr++ {
    if !p.Probe(addr) {
      continue
    }

    acked[addr] = true
    res.Total += 1

    if len(res.Found) < MaxFound {
      res.Found = append(res.Found, addr)
    }
  }

  logGrid(acked[:])

  // the summary reports the uncapped count, unlike the wire record.
  log.Info().
    Int("Found", res.Total).
    Array("Stored", utils.ToZeroLogArray(res.Found)).
    Msg("Scan complete")

  for i, addr := range res.Found {
    log.Info().
      Int("Index", i).
      Stringer("Addr", addr).
      Msg("Found device")
  }

  return res
}
