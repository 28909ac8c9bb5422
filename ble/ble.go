package ble

import (
  "context"
  "errors"
  "fmt"
  "sync"

  "github.com/go-ble/ble"
  "github.com/go-ble/ble/linux"
  "github.com/rs/zerolog/log"
)

// Identifiers of the scan record service. Observers depend on these and on
// the fixed record layout, so they must never change.
var (
  ServiceUUID = ble.MustParse("8e7c11a4-5c64-4bb5-9f75-3a7d53e43a10")
  RecordCharUUID = ble.MustParse("8e7c11a5-5c64-4bb5-9f75-3a7d53e43a10")
)

var ErrNotSubscribed = errors.New("no observer is subscribed")

// ReadFunc returns the wire record served to on-demand reads.
type ReadFunc func() []byte

type Handle struct {
  dev *linux.Device

  mu sync.Mutex
  notifier ble.Notifier
}

func Init(deviceId int) (*Handle, error) {
  log.Debug().
    Int("DeviceID", deviceId).
    Msg("Initializing Bluetooth device")

  dev, err := linux.NewDevice(ble.OptDeviceID(deviceId))

  if err != nil {
    return nil, fmt.Errorf("failed to init bluetooth device: %w", err)
  }

  ble.SetDefaultDevice(dev)

  return &Handle{dev: dev}, nil
}

// Serve registers the scan record service with the GATT server: a single
// characteristic supporting on-demand reads (served by `read`) and push
// notifications (driven by Send).
func (h *Handle) Serve(read ReadFunc) error {
  svc := ble.NewService(ServiceUUID)
  char := svc.NewCharacteristic(RecordCharUUID)

  char.HandleRead(ble.ReadHandlerFunc(func(req ble.Request, rsp ble.ResponseWriter) {
    record := read()

    log.Debug().
      Hex("Record", record).
      Msg("ble: serving scan record read")

    if _, err := rsp.Write(record); err != nil {
      log.Warn().Err(err).Msg("ble: failed to write read response")
    }
  }))

  char.HandleNotify(ble.NotifyHandlerFunc(func(req ble.Request, n ble.Notifier) {
    h.attach(n)

    // the handler owns the subscription: park until the observer goes away.
    <-n.Context().Done()

    h.detach(n)
  }))

  if err := h.dev.AddService(svc); err != nil {
    return fmt.Errorf("failed to register scan record service: %w", err)
  }

  return nil
}

// Advertise blocks, advertising the scan record service under the given
// local name until ctx is done.
func (h *Handle) Advertise(ctx context.Context, name string) error {
  log.Info().
    Str("Name", name).
    Str("Service", ServiceUUID.String()).
    Msg("ble: advertising scan record service")

  return h.dev.AdvertiseNameAndServices(ctx, name, ServiceUUID)
}

func (h *Handle) attach(n ble.Notifier) {
  h.mu.Lock()
  defer h.mu.Unlock()

  if h.notifier != nil {
    // only a single observer is supported; the newest one wins.
    log.Warn().Msg("ble: new observer subscribed while another was attached")
  }

  h.notifier = n
  subscribesCounter.Inc()

  log.Info().Msg("ble: observer subscribed to scan records")
}

func (h *Handle) detach(n ble.Notifier) {
  h.mu.Lock()
  defer h.mu.Unlock()

  // skip if a newer subscription has already taken over.
  if h.notifier == n {
    h.notifier = nil
  }

  unsubscribesCounter.Inc()

  log.Info().Msg("ble: observer unsubscribed")
}

// Attached reports whether an observer is currently subscribed to scan
// record notifications.
func (h *Handle) Attached() bool {
  h.mu.Lock()
  defer h.mu.Unlock()

  return h.notifier != nil
}

// Send pushes a wire record to the subscribed observer, if any.
func (h *Handle) Send(record []byte) error {
  h.mu.Lock()
  n := h.notifier
  h.mu.Unlock()

  if n == nil {
    return ErrNotSubscribed
  }

  written, err := n.Write(record)

  if err != nil {
    notifyFailedCounter.Inc()
    return fmt.Errorf("failed to notify observer: %w", err)
  }

  if written != len(record) {
    notifyFailedCounter.Inc()
    return fmt.Errorf("short notification write: %d of %d bytes", written, len(record))
  }

  notifySentCounter.Inc()

  log.Debug().Hex("Record", record).Msg("ble: notified observer")

  return nil
}

func (h *Handle) Stop() {
  h.dev.Stop()
}
