package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/robertof/go-i2cscan-beacon/ble"
	"github.com/robertof/go-i2cscan-beacon/board"
	"github.com/robertof/go-i2cscan-beacon/bus"
	"github.com/robertof/go-i2cscan-beacon/metrics"
	"github.com/robertof/go-i2cscan-beacon/publisher"
	"github.com/robertof/go-i2cscan-beacon/scanner"
	"github.com/robertof/go-i2cscan-beacon/utils"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

func main() {
  zerolog.DurationFieldUnit = time.Second
  zerolog.TimeFieldFormat = time.RFC3339Nano

  log.Logger = log.Output(zerolog.ConsoleWriter{
    Out: os.Stderr,
    TimeFormat: "15:04:05.000",
  })

  cfg := ParseArgs()

  if cfg.Trace || os.Getenv("TRACE") != "" {
      zerolog.SetGlobalLevel(zerolog.TraceLevel)
  } else if cfg.Debug || os.Getenv("DEBUG") != "" {
      zerolog.SetGlobalLevel(zerolog.DebugLevel)
  } else {
      zerolog.SetGlobalLevel(zerolog.InfoLevel)
  }

  log.Info().
    Str("Bus", cfg.BusName).
    Str("Name", cfg.AdvertisedName).
    Array("Pins", utils.ToZeroLogArray(cfg.Pins)).
    Dur("IntervalSec", cfg.SweepInterval).
    Int("BluetoothDeviceID", cfg.BluetoothDeviceId).
    Msg("Starting with the specified configuration")

  // bring-up: pins first (they power and reset the bus peripherals), then
  // the bus itself, then the wireless link. any failure here is fatal.
  if err := board.Apply(cfg.Pins); err != nil {
    log.Fatal().Err(err).Msg("Failed to configure GPIO pins")
  }

  busHandle, err := bus.Open(cfg.BusName)

  if err != nil {
    log.Fatal().Err(err).Msg("Failed to open I2C bus")
  }

  defer busHandle.Close()

  bleHandle, err := ble.Init(cfg.BluetoothDeviceId)

  if err != nil {
    log.Fatal().Err(err).Msg("Failed to initialize Bluetooth device")
  }

  pub := publisher.New(bleHandle)

  if err := bleHandle.Serve(pub.Read); err != nil {
    log.Fatal().Err(err).Msg("Failed to register scan record service")
  }

  registry := prometheus.NewRegistry()

  ble.RegisterMetrics(registry)
  metrics.RegisterCollector(pub.Snapshot, registry)

  rec := scanner.NewRecurring(busHandle, pub.Publish)
  rec.SettleDelay = cfg.SettleDelay

  ctx := context.Background()

  var eg errgroup.Group

  eg.Go(func() error {
    err := bleHandle.Advertise(ctx, cfg.AdvertisedName)

    // swallow context errors caused by an orderly shutdown.
    if utils.ErrorIsAnyOf(err, context.Canceled, context.DeadlineExceeded) {
      return nil
    }

    return err
  })

  eg.Go(func() error {
    rec.Start(ctx, cfg.SweepInterval)

    return nil
  })

  if cfg.EnableMetrics {
    eg.Go(func() error {
      log.Info().
        Str("ListenAddress", cfg.BindAddress).
        Msg("Starting Prometheus server")

      http.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

      return http.ListenAndServe(cfg.BindAddress, nil)
    })
  }

  if err := eg.Wait(); err != nil {
    log.Fatal().Err(err).Msg("Fatal runtime error")
  }
}
