package metrics

import (
	"github.com/benbjohnson/clock"
	"go.uber.org/fx"

	"github.com/dep2p/go-sigslot"
	"github.com/dep2p/go-sigslot/config"
)

// Config 指标配置
type Config struct {
	// Enabled 是否启用指标收集
	Enabled bool

	// Namespace 指标名前缀
	Namespace string
}

// DefaultConfig 返回默认配置
func DefaultConfig() Config {
	d := config.DefaultMetricsConfig()
	return Config{
		Enabled:   d.Enabled,
		Namespace: d.Namespace,
	}
}

// ConfigFromUnified 从统一配置创建指标配置
func ConfigFromUnified(cfg *config.Config) Config {
	if cfg == nil {
		return DefaultConfig()
	}
	return Config{
		Enabled:   cfg.Metrics.Enabled,
		Namespace: cfg.Metrics.Namespace,
	}
}

// Params Metrics 依赖参数
type Params struct {
	fx.In

	UnifiedCfg *config.Config `optional:"true"`
	Clock      clock.Clock    `optional:"true"`
}

// Module 是 metrics 的 Fx 模块
//
// 只应在 metrics.enabled 时加载；Collector 同时作为 sigslot.Monitor 导出，
// 供 lifecycle 模块挂到应用 Scope 上。
var Module = fx.Module("metrics",
	fx.Provide(
		fx.Annotate(
			NewCollectorFromParams,
			fx.As(fx.Self()),
			fx.As(new(sigslot.Monitor)),
		),
	),
)

// NewCollectorFromParams 从参数创建 Collector
func NewCollectorFromParams(p Params) *Collector {
	cfg := ConfigFromUnified(p.UnifiedCfg)
	if !cfg.Enabled {
		logger.Debug("metrics module loaded with metrics disabled")
	}
	return NewCollector(cfg, p.Clock)
}
