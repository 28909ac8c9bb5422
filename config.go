package main

import (
	"flag"
	"time"

	"github.com/robertof/go-i2cscan-beacon/board"
	"github.com/robertof/go-i2cscan-beacon/scanner"
)

type config struct {
  Debug, Trace bool
  BindAddress string
  EnableMetrics bool
  BluetoothDeviceId int
  BusName string
  AdvertisedName string
  SweepInterval time.Duration
  SettleDelay time.Duration
  Pins []board.PinSpec
}

type boundPinList struct {
  list *[]board.PinSpec
}

func (p *boundPinList) String() string {
  return ""
}

func (p *boundPinList) Set(v string) error {
  spec, err := board.ParsePinSpec(v)

  if err != nil {
    return err
  }

  *p.list = append(*p.list, spec)

  return nil
}

func ParseArgs() config {
  var cfg config

  flag.StringVar(&cfg.BindAddress, "bind", "localhost:9257", "Where the metrics endpoint will bind to")
  flag.BoolVar(&cfg.EnableMetrics, "metrics", true, "Serve Prometheus metrics on the bind address")
  flag.IntVar(&cfg.BluetoothDeviceId, "bluetooth-device", 0, "Bluetooth (HCI) device ID")
  flag.StringVar(&cfg.BusName, "bus", "", "I2C bus to scan (defaults to the first available bus)")
  flag.StringVar(&cfg.AdvertisedName, "name", "i2c-scan-beacon", "Local name used when advertising")
  flag.DurationVar(&cfg.SweepInterval, "interval", scanner.DefaultInterval,
    "How frequently the bus is swept")
  flag.DurationVar(&cfg.SettleDelay, "settle", scanner.DefaultSettleDelay,
    "How long to wait after bring-up before the first sweep")
  flag.Var(&boundPinList{list: &cfg.Pins}, "pin",
    "Bring-up `pin=level` entry, e.g. '7=high'. May be repeated and replaces the default sequence")
  flag.BoolVar(&cfg.Debug, "debug", false, "Enable debug logs")
  flag.BoolVar(&cfg.Trace, "trace", false, "Enable trace logs")

  flag.Parse()

  if len(cfg.Pins) == 0 {
    cfg.Pins = board.DefaultSequence()
  }

  return cfg
}
