package publisher_test

import (
  "bytes"
  "errors"
  "sync"
  "testing"

  "github.com/robertof/go-i2cscan-beacon/publisher"
  "github.com/robertof/go-i2cscan-beacon/scanner"
)

type fakeLink struct {
  mu sync.Mutex
  attached bool
  sendErr error
  sent [][]byte
}

func (f *fakeLink) Attached() bool {
  f.mu.Lock()
  defer f.mu.Unlock()

  return f.attached
}

func (f *fakeLink) Send(record []byte) error {
  f.mu.Lock()
  defer f.mu.Unlock()

  if f.sendErr != nil {
    return f.sendErr
  }

  f.sent = append(f.sent, record)

  return nil
}

func (f *fakeLink) sentRecords() [][]byte {
  f.mu.Lock()
  defer f.mu.Unlock()

  return f.sent
}

var testResult = scanner.Result{
  Found: []scanner.Addr{0x1A, 0x3C, 0x50},
  Total: 3,
}

var testWire = []byte{0x03, 0x1A, 0x3C, 0x50, 0x00, 0x00}

func TestRead_BeforeFirstPublish(t *testing.T) {
  pub := publisher.New(&fakeLink{})

  got := pub.Read()

  if !bytes.Equal(got, make([]byte, scanner.WireSize)) {
    t.Fatalf("Read() before first publish: got % 02X, wanted all-zero", got)
  }
}

func TestPublish_Unsubscribed(t *testing.T) {
  link := &fakeLink{attached: false}
  pub := publisher.New(link)

  pub.Publish(testResult)

  if got := pub.Read(); !bytes.Equal(got, testWire) {
    t.Fatalf("Read() after publish: got % 02X, wanted % 02X", got, testWire)
  }

  if sent := link.sentRecords(); len(sent) != 0 {
    t.Fatalf("Publish() with no observer sent %d records, wanted none", len(sent))
  }
}

func TestPublish_Subscribed(t *testing.T) {
  link := &fakeLink{attached: true}
  pub := publisher.New(link)

  pub.Publish(testResult)

  sent := link.sentRecords()

  if len(sent) != 1 {
    t.Fatalf("Publish() sent %d records, wanted 1", len(sent))
  }

  if !bytes.Equal(sent[0], testWire) {
    t.Fatalf("Publish() sent % 02X, wanted % 02X", sent[0], testWire)
  }
}

func TestPublish_SendFailureKeepsRecord(t *testing.T) {
  link := &fakeLink{
    attached: true,
    sendErr: errors.New("transient link congestion"),
  }
  pub := publisher.New(link)

  pub.Publish(testResult)

  // the failed send must not roll back the record replacement.
  if got := pub.Read(); !bytes.Equal(got, testWire) {
    t.Fatalf("Read() after failed send: got % 02X, wanted % 02X", got, testWire)
  }
}

func TestSnapshot(t *testing.T) {
  pub := publisher.New(&fakeLink{})

  if _, ts := pub.Snapshot(); !ts.IsZero() {
    t.Fatal("Snapshot() before first publish returned a non-zero time")
  }

  pub.Publish(testResult)

  res, ts := pub.Snapshot()

  if ts.IsZero() {
    t.Fatal("Snapshot() after publish returned a zero time")
  }

  if res.Total != testResult.Total || len(res.Found) != len(testResult.Found) {
    t.Fatalf("Snapshot(): got %+v, wanted %+v", res, testResult)
  }
}

func TestPublish_ConcurrentReadsNeverTorn(t *testing.T) {
  link := &fakeLink{}
  pub := publisher.New(link)

  a := scanner.Result{Found: []scanner.Addr{0x11, 0x22}, Total: 2}
  b := scanner.Result{Found: []scanner.Addr{0x33, 0x44, 0x55}, Total: 3}

  wireA, wireB := a.WireBytes(), b.WireBytes()

  pub.Publish(a)

  var wg sync.WaitGroup

  wg.Add(1)
  go func() {
    defer wg.Done()

    for i := 0; i < 500; i++ {
      if i%2 == 0 {
        pub.Publish(b)
      } else {
        pub.Publish(a)
      }
    }
  }()

  for i := 0; i < 500; i++ {
    got := pub.Read()

    // a read must return one complete record, never a mix of two.
    if !bytes.Equal(got, wireA) && !bytes.Equal(got, wireB) {
      t.Fatalf("Read() returned a torn record: % 02X", got)
    }
  }

  wg.Wait()
}
