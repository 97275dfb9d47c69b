package app

import (
	"io"
	"time"

	"github.com/benbjohnson/clock"
	"go.uber.org/fx"

	"github.com/dep2p/go-sigslot/config"
)

// BootstrapOption Bootstrap 配置选项
type BootstrapOption func(*Bootstrap)

// WithConfig 设置配置
func WithConfig(cfg *config.Config) BootstrapOption {
	return func(b *Bootstrap) {
		b.config = cfg
	}
}

// WithOutput 设置演示场景与指标导出的输出目标
func WithOutput(w io.Writer) BootstrapOption {
	return func(b *Bootstrap) {
		b.output = w
	}
}

// WithClock 设置时钟（测试中注入 clock.NewMock()）
func WithClock(clk clock.Clock) BootstrapOption {
	return func(b *Bootstrap) {
		b.clock = clk
	}
}

// WithBuildOptions 设置构建选项
func WithBuildOptions(opts BuildOptions) BootstrapOption {
	return func(b *Bootstrap) {
		b.build = opts
	}
}

// BuildOptions 构建选项
type BuildOptions struct {
	// StartTimeout 启动超时
	StartTimeout time.Duration

	// StopTimeout 停止超时
	StopTimeout time.Duration

	// ExtraOptions 追加的 fx 选项
	ExtraOptions []fx.Option
}

// DefaultBuildOptions 默认构建选项
func DefaultBuildOptions() BuildOptions {
	return BuildOptions{
		StartTimeout: 30 * time.Second,
		StopTimeout:  30 * time.Second,
	}
}
