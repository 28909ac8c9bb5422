package metrics

import (
  "strings"
  "time"

  "github.com/prometheus/client_golang/prometheus"
  "github.com/robertof/go-i2cscan-beacon/scanner"
)

var (
  descDevicesFound = prometheus.NewDesc(
    "i2c_scan_devices_found",
    "Number of devices that acknowledged during the last sweep (uncapped).",
    nil,
    nil,
  )

  descDevicesStored = prometheus.NewDesc(
    "i2c_scan_devices_stored",
    "Number of device addresses stored in the last scan record.",
    nil,
    nil,
  )

  descDevicePresent = prometheus.NewDesc(
    "i2c_device_present",
    "Set to 1 for every device address stored in the last scan record.",
    []string{"address"},
    nil,
  )
)

type CollectFunc func() (scanner.Result, time.Time)

type collector struct {
  CollectFunc
}

func (c *collector) Describe(ch chan<- *prometheus.Desc) {
  prometheus.DescribeByCollect(c, ch)
}

func (c *collector) Collect(ch chan<- prometheus.Metric) {
  res, ts := c.CollectFunc()

  // nothing to report until the first sweep has been published.
  if ts.IsZero() {
    return
  }

  found := prometheus.MustNewConstMetric(
    descDevicesFound,
    prometheus.GaugeValue,
    float64(res.Total),
  )

  ch <- prometheus.NewMetricWithTimestamp(ts, found)

  stored := prometheus.MustNewConstMetric(
    descDevicesStored,
    prometheus.GaugeValue,
    float64(len(res.Found)),
  )

  ch <- prometheus.NewMetricWithTimestamp(ts, stored)

  for _, addr := range res.Found {
    present := prometheus.MustNewConstMetric(
      descDevicePresent,
      prometheus.GaugeValue,
      1,
      strings.ToLower(addr.String()),
    )

    ch <- prometheus.NewMetricWithTimestamp(ts, present)
  }
}

func RegisterCollector(f CollectFunc, reg prometheus.Registerer) {
  c := &collector{f}

  reg.MustRegister(c)
}
