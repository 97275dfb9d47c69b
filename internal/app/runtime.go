package app

import (
	"context"
	"fmt"
	"io"

	"go.uber.org/multierr"

	"github.com/dep2p/go-sigslot/internal/core/lifecycle"
	"github.com/dep2p/go-sigslot/internal/core/metrics"
	"github.com/dep2p/go-sigslot/internal/demo"
)

// Runtime 表示一个已通过 fx 组装完成的 sigslot 运行时
//
// Collector 在 metrics.enabled 为 false 时为 nil。
type Runtime struct {
	Scenario    *demo.Scenario
	Coordinator *lifecycle.Coordinator
	Collector   *metrics.Collector

	output io.Writer
	dump   bool
	stop   func(ctx context.Context) error
}

// Run 执行演示场景，按配置导出指标
func (r *Runtime) Run(ctx context.Context) error {
	if err := r.Scenario.Run(ctx); err != nil {
		return fmt.Errorf("run scenario: %w", err)
	}
	return r.DumpMetrics()
}

// DumpMetrics 把指标写到输出（metrics.dump 为 true 且指标已启用时）
func (r *Runtime) DumpMetrics() error {
	if !r.dump || r.Collector == nil {
		return nil
	}
	fmt.Fprintln(r.output, "-- metrics --")
	return r.Collector.WriteText(r.output)
}

// Stop 停止运行时（触发 fx 生命周期 OnStop，关闭应用 Scope）
func (r *Runtime) Stop(ctx context.Context) error {
	if r.stop == nil {
		return nil
	}
	return r.stop(ctx)
}

// RunApp 运行 sigslot 应用
//
// 这是一个便捷函数：启动 → 执行场景 → 停止。无论场景是否成功都会停止应用，
// 场景错误与停止错误合并返回。
//
// 示例:
//
//	b := app.NewBootstrap(app.WithConfig(cfg))
//	if err := app.RunApp(ctx, b); err != nil {
//	    log.Fatal(err)
//	}
func RunApp(ctx context.Context, b *Bootstrap) (err error) {
	rt, err := b.Start(ctx)
	if err != nil {
		return err
	}
	defer func() {
		err = multierr.Append(err, rt.Stop(context.WithoutCancel(ctx)))
	}()

	return rt.Run(ctx)
}
