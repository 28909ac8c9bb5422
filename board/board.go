package board

import (
  "strings"

  "github.com/pkg/errors"
  "github.com/rs/zerolog/log"
  "golang.org/x/exp/maps"
  "periph.io/x/conn/v3/gpio"
  "periph.io/x/conn/v3/gpio/gpioreg"
  "periph.io/x/host/v3"
)

// PinSpec is one step of the bring-up sequence: a named pin driven to a
// fixed level before the first sweep.
type PinSpec struct {
  Name string
  Level gpio.Level
}

var pinLevels = map[string]gpio.Level{
  "high": gpio.High,
  "low":  gpio.Low,
}

// DefaultSequence is the bring-up sequence of the reference board: the
// peripheral power rail on pin 7 is driven high while the reset lines on
// pins 9 and 10 are held low.
func DefaultSequence() []PinSpec {
  return []PinSpec{
    {Name: "7", Level: gpio.High},
    {Name: "9", Level: gpio.Low},
    {Name: "10", Level: gpio.Low},
  }
}

// ParsePinSpec parses a single "pin=level" entry, e.g. "7=high".
func ParsePinSpec(s string) (PinSpec, error) {
  parts := strings.SplitN(s, "=", 2)

  if len(parts) != 2 {
    return PinSpec{}, errors.Errorf("invalid pin spec %q, must be in the form pin=level", s)
  }

  name := strings.TrimSpace(parts[0])
  levelName := strings.ToLower(strings.TrimSpace(parts[1]))

  if name == "" {
    return PinSpec{}, errors.Errorf("invalid pin spec %q: empty pin name", s)
  }

  level, ok := pinLevels[levelName]

  if !ok {
    return PinSpec{}, errors.Errorf("unknown pin level %q (must be one of %v)",
      levelName, maps.Keys(pinLevels))
  }

  return PinSpec{Name: name, Level: level}, nil
}

func (p PinSpec) String() string {
  level := "low"

  if p.Level == gpio.High {
    level = "high"
  }

  return p.Name + "=" + level
}

// Apply drives every pin of the sequence to its requested level, in order.
// Bring-up is all-or-nothing: the first failure aborts.
func Apply(pins []PinSpec) error {
  if _, err := host.Init(); err != nil {
    return errors.Wrap(err, "failed to initialize host drivers")
  }

  for _, spec := range pins {
    pin := gpioreg.ByName(spec.Name)

    if pin == nil {
      return errors.Errorf("GPIO pin %q not found", spec.Name)
    }

    if err := pin.Out(spec.Level); err != nil {
      return errors.Wrapf(err, "failed to drive GPIO pin %q", spec.Name)
    }

    log.Info().
      Str("Pin", pin.Name()).
      Stringer("Level", spec.Level).
      Msg("GPIO pin configured")
  }

  return nil
}
