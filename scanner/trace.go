package scanner

import (
  "fmt"
  "strings"

  "github.com/rs/zerolog/log"
)

const (
  gridRows = 8
  gridCols = 16
)

const gridHeader = "     0  1  2  3  4  5  6  7  8  9  A  B  C  D  E  F"

// renderGrid formats the classic scan grid: one row per 16 addresses, found
// addresses shown in hex, absent ones as '--' and reserved ones left blank.
// acked must cover the whole address space.
func renderGrid(acked []bool) []string {
  rows := make([]string, gridRows)

  for row := 0; row < gridRows; row++ {
    var b strings.Builder

    fmt.Fprintf(&b, "%02X: ", row*gridCols)

    for col := 0; col < gridCols; col++ {
      addr := Addr(row*gridCols + col)

      switch {
      case addr < ScanStart || addr > ScanEnd:
        b.WriteString("   ")
      case acked[addr]:
        fmt.Fprintf(&b, "%02X ", uint8(addr))
      default:
        b.WriteString("-- ")
      }
    }

    rows[row] = b.String()
  }

  return rows
}

// logGrid emits the progress trace. Purely observational: nothing consumes
// these lines programmatically.
func logGrid(acked []bool) {
  log.Info().Msg(gridHeader)

  for _, row := range renderGrid(acked) {
    log.Info().Msg(row)
  }
}
