package scanner

import (
  "fmt"
  "strings"
)

// Addresses 0x00-0x07 and 0x78-0x7F are reserved by the I2C specification
// and are never probed.
const (
  ScanStart Addr = 0x08
  ScanEnd   Addr = 0x77
)

// MaxFound caps how many addresses a Result stores. The wire record has a
// fixed layout, so observers have to agree on this value a priori.
const MaxFound = 5

// WireSize is the size of the wire record: a count byte followed by exactly
// MaxFound address bytes.
const WireSize = 1 + MaxFound

type Addr uint8

func (a Addr) String() string {
  return fmt.Sprintf("0x%02X", uint8(a))
}

type Result struct {
  // Found holds at most the first MaxFound acknowledging addresses, in
  // ascending address order.
  Found []Addr

  // Total counts every acknowledging address, including the ones that did
  // not fit into Found.
  Total int
}

// WireBytes renders the fixed-layout record sent over the wireless link.
// The count byte is capped at MaxFound even when Total is larger; unused
// address slots are zero.
func (r Result) WireBytes() []byte {
  out := make([]byte, WireSize)
  out[0] = byte(len(r.Found))

  for i, addr := range r.Found {
    out[1+i] = byte(addr)
  }

  return out
}

func (r Result) String() string {
  addrs := make([]string, len(r.Found))

  for i, addr := range r.Found {
    addrs[i] = addr.String()
  }

  return fmt.Sprintf("Result[Total=%d,Found=%s]", r.Total, strings.Join(addrs, ","))
}
