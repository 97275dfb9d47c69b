// Package metrics 提供信号槽连接图的监控指标收集
//
// Collector 实现 sigslot.Monitor，把连接、断开、分发与关闭事件
// 记录为 Prometheus 指标，注册在 Collector 自己的 Registry 中：
//   - connects_total / disconnects_total: 连接建立与移除次数
//   - links: 当前连接数
//   - dispatches_total{result}: 分发轮数（ok/error/panic）
//   - dispatch_fanout: 每轮分发的接收方数量
//   - dispatch_duration_seconds: 每轮分发耗时
//   - closes_total{kind}: 端点关闭次数（emitter/receiver）
//
// # 快速开始
//
//	collector := metrics.NewCollector(metrics.DefaultConfig(), nil)
//
//	scope := sigslot.NewScope("app", sigslot.WithMonitor(collector))
//	e := sigslot.NewEmitter[int](sigslot.InScope(scope))
//
//	stats := collector.Snapshot()
//	fmt.Printf("links=%d dispatches=%d\n", stats.Links, stats.Dispatches)
//
// # 计时
//
// 分发耗时通过 clock.Clock 测量，测试中注入 clock.NewMock() 即可得到确定的耗时。
//
// # Fx 模块
//
//	app := fx.New(
//	    metrics.Module,
//	    fx.Invoke(func(m sigslot.Monitor) { ... }),
//	)
//
// Module 同时以 *Collector 与 sigslot.Monitor 两种形式导出。
//
// # 并发
//
// Prometheus 指标本身并发安全，Collector 可被多个 Scope 共享。
package metrics
