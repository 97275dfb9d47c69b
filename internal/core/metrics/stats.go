package metrics

import (
	"math"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"

	"github.com/dep2p/go-sigslot"
)

// Stats 指标快照
//
// Stats 表示某个时间点 Collector 中各指标的当前值。
type Stats struct {
	Connects       int64         // 已建立连接次数
	Disconnects    int64         // 已移除连接次数
	Links          int64         // 当前连接数
	Dispatches     int64         // 分发总轮数
	DispatchErrors int64         // 以错误结束的分发轮数
	Panics         int64         // 以 panic 结束的分发轮数
	EmitterCloses  int64         // 关闭的 Emitter 数
	ReceiverCloses int64         // 关闭的 Receiver 数
	DispatchTime   time.Duration // 分发累计耗时
}

// Snapshot 读取当前指标值
func (c *Collector) Snapshot() Stats {
	ok := counterValue(c.dispatches.WithLabelValues(ResultOK))
	failed := counterValue(c.dispatches.WithLabelValues(ResultError))
	panics := counterValue(c.dispatches.WithLabelValues(ResultPanic))

	var m dto.Metric
	var seconds float64
	if err := c.duration.Write(&m); err == nil && m.Histogram != nil {
		seconds = m.Histogram.GetSampleSum()
	}

	return Stats{
		Connects:       counterValue(c.connects),
		Disconnects:    counterValue(c.disconnects),
		Links:          gaugeValue(c.links),
		Dispatches:     ok + failed + panics,
		DispatchErrors: failed,
		Panics:         panics,
		EmitterCloses:  counterValue(c.closes.WithLabelValues(sigslot.KindEmitter.String())),
		ReceiverCloses: counterValue(c.closes.WithLabelValues(sigslot.KindReceiver.String())),
		DispatchTime:   time.Duration(math.Round(seconds * float64(time.Second))),
	}
}

func counterValue(m prometheus.Metric) int64 {
	var out dto.Metric
	if err := m.Write(&out); err != nil || out.Counter == nil {
		return 0
	}
	return int64(out.Counter.GetValue())
}

func gaugeValue(m prometheus.Metric) int64 {
	var out dto.Metric
	if err := m.Write(&out); err != nil || out.Gauge == nil {
		return 0
	}
	return int64(out.Gauge.GetValue())
}
