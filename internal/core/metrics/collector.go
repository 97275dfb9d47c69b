package metrics

import (
	"errors"
	"io"

	"github.com/benbjohnson/clock"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"

	"github.com/dep2p/go-sigslot"
	"github.com/dep2p/go-sigslot/pkg/lib/log"
)

var logger = log.Logger("core/metrics")

// 分发结果标签
const (
	ResultOK    = "ok"
	ResultError = "error"
	ResultPanic = "panic"
)

// Collector 把 sigslot 事件记录为 Prometheus 指标
type Collector struct {
	clock    clock.Clock
	registry *prometheus.Registry

	connects    prometheus.Counter
	disconnects prometheus.Counter
	links       prometheus.Gauge
	dispatches  *prometheus.CounterVec
	fanout      prometheus.Histogram
	duration    prometheus.Histogram
	closes      *prometheus.CounterVec
}

var _ sigslot.Monitor = (*Collector)(nil)

// NewCollector 创建指标收集器
//
// clk 为 nil 时使用系统时钟。
func NewCollector(cfg Config, clk clock.Clock) *Collector {
	if clk == nil {
		clk = clock.New()
	}
	ns := cfg.Namespace
	if ns == "" {
		ns = DefaultConfig().Namespace
	}

	c := &Collector{
		clock:    clk,
		registry: prometheus.NewRegistry(),
		connects: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: ns,
			Name:      "connects_total",
			Help:      "Number of links established.",
		}),
		disconnects: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: ns,
			Name:      "disconnects_total",
			Help:      "Number of links removed by disconnect or close.",
		}),
		links: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: ns,
			Name:      "links",
			Help:      "Number of live emitter to callable links.",
		}),
		dispatches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: ns,
			Name:      "dispatches_total",
			Help:      "Number of dispatch passes by result.",
		}, []string{"result"}),
		fanout: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: ns,
			Name:      "dispatch_fanout",
			Help:      "Receivers snapshotted per dispatch pass.",
			Buckets:   []float64{1, 2, 4, 8, 16, 32, 64},
		}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: ns,
			Name:      "dispatch_duration_seconds",
			Help:      "Duration of dispatch passes.",
			Buckets:   prometheus.ExponentialBuckets(1e-6, 10, 7),
		}),
		closes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: ns,
			Name:      "closes_total",
			Help:      "Number of endpoints closed by kind.",
		}, []string{"kind"}),
	}

	c.registry.MustRegister(
		c.connects,
		c.disconnects,
		c.links,
		c.dispatches,
		c.fanout,
		c.duration,
		c.closes,
	)
	for _, r := range []string{ResultOK, ResultError, ResultPanic} {
		c.dispatches.WithLabelValues(r)
	}
	for _, k := range []sigslot.Kind{sigslot.KindEmitter, sigslot.KindReceiver} {
		c.closes.WithLabelValues(k.String())
	}
	return c
}

// Registry 返回收集器使用的 Registry
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// ============================================================================
//                              sigslot.Monitor
// ============================================================================

// OnConnect 实现 sigslot.Monitor
func (c *Collector) OnConnect(_, _ string) {
	c.connects.Inc()
	c.links.Inc()
}

// OnDisconnect 实现 sigslot.Monitor
func (c *Collector) OnDisconnect(_, _ string) {
	c.disconnects.Inc()
	c.links.Dec()
}

// OnDispatch 实现 sigslot.Monitor
func (c *Collector) OnDispatch(_ string, receivers int) func(error) {
	start := c.clock.Now()
	c.fanout.Observe(float64(receivers))
	return func(err error) {
		c.duration.Observe(c.clock.Since(start).Seconds())
		c.dispatches.WithLabelValues(resultOf(err)).Inc()
	}
}

// OnClose 实现 sigslot.Monitor
func (c *Collector) OnClose(_ string, kind sigslot.Kind) {
	c.closes.WithLabelValues(kind.String()).Inc()
}

func resultOf(err error) string {
	switch {
	case err == nil:
		return ResultOK
	case errors.Is(err, sigslot.ErrPanicked):
		return ResultPanic
	default:
		return ResultError
	}
}

// ============================================================================
//                              导出
// ============================================================================

// WriteText 以 Prometheus 文本格式输出全部指标
func (c *Collector) WriteText(w io.Writer) error {
	families, err := c.registry.Gather()
	if err != nil {
		return err
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return err
		}
	}
	logger.Debug("metrics written", "families", len(families))
	return nil
}
