// Package metrics provides an opt-in Prometheus collector over live queue
// state: current depth, and the number of blocked senders/receivers, per
// queue name. It is grounded on runZeroInc-sockstats's TCPInfoCollector
// (pkg/exporter/exporter.go): a mutex-guarded map of live objects scraped
// on demand via Describe/Collect, rather than metrics pushed eagerly on
// every state change.
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Snapshot is the subset of a queue's state the collector needs at scrape
// time. mq.Queue implements this via its own method set; metrics does not
// import mq directly, to keep the dependency one-directional (mq imports
// metrics, not the reverse).
type Snapshot struct {
	Name      string
	CurMsgs   int32
	MaxMsgs   int32
	Senders   int
	Receivers int
}

// Source is anything that can report its current Snapshot. *mq.Queue
// satisfies this.
type Source interface {
	MetricsSnapshot() Snapshot
}

var (
	depthDesc = prometheus.NewDesc(
		"mosmq_queue_depth",
		"Current number of buffered messages in the queue.",
		[]string{"queue"}, nil,
	)
	capacityDesc = prometheus.NewDesc(
		"mosmq_queue_capacity",
		"Configured maximum number of buffered messages.",
		[]string{"queue"}, nil,
	)
	blockedSendersDesc = prometheus.NewDesc(
		"mosmq_blocked_senders",
		"Number of threads currently blocked in Send on this queue.",
		[]string{"queue"}, nil,
	)
	blockedReceiversDesc = prometheus.NewDesc(
		"mosmq_blocked_receivers",
		"Number of threads currently blocked in Receive on this queue.",
		[]string{"queue"}, nil,
	)
)

// Collector is a prometheus.Collector over a dynamic set of queues. Queues
// register themselves (typically from Registry.EnableMetrics's hook) and
// deregister when unlinked; Collect always reflects whichever queues are
// currently registered.
type Collector struct {
	mu      sync.Mutex
	sources map[string]Source
}

// NewCollector returns an empty Collector, ready to register with a
// prometheus.Registry.
func NewCollector() *Collector {
	return &Collector{sources: make(map[string]Source)}
}

// Register adds or replaces the source tracked under name.
func (c *Collector) Register(name string, src Source) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sources[name] = src
}

// Unregister removes name, if present. Safe to call even if name was never
// registered.
func (c *Collector) Unregister(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.sources, name)
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(descs chan<- *prometheus.Desc) {
	descs <- depthDesc
	descs <- capacityDesc
	descs <- blockedSendersDesc
	descs <- blockedReceiversDesc
}

// Collect implements prometheus.Collector, scraping every registered
// source's current Snapshot.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for name, src := range c.sources {
		snap := src.MetricsSnapshot()
		ch <- prometheus.MustNewConstMetric(depthDesc, prometheus.GaugeValue, float64(snap.CurMsgs), name)
		ch <- prometheus.MustNewConstMetric(capacityDesc, prometheus.GaugeValue, float64(snap.MaxMsgs), name)
		ch <- prometheus.MustNewConstMetric(blockedSendersDesc, prometheus.GaugeValue, float64(snap.Senders), name)
		ch <- prometheus.MustNewConstMetric(blockedReceiversDesc, prometheus.GaugeValue, float64(snap.Receivers), name)
	}
}
