// Package app 提供 sigslot 应用编排层
//
// app 包负责：
// - fx 模块组装
// - 日志初始化
// - 生命周期管理（启动、运行演示场景、停止）
//
// modulesets.go 集中维护"哪些模块属于哪一层"，是 Bootstrap 组装的唯一模块来源。
package app

import (
	"go.uber.org/fx"

	"github.com/dep2p/go-sigslot/config"
	"github.com/dep2p/go-sigslot/internal/core/lifecycle"
	"github.com/dep2p/go-sigslot/internal/core/metrics"
	"github.com/dep2p/go-sigslot/internal/demo"
)

// ============================================================================
//                              模块集合
// ============================================================================

// CoreModules 核心层模块组合
//
// 提供生命周期协调器与应用 Scope，始终加载。
func CoreModules() fx.Option {
	return fx.Options(
		lifecycle.Module(),
	)
}

// MonitoringModules 监控层模块组合
//
// metrics.enabled 为 false 时返回空集合，应用 Scope 不挂 Monitor。
func MonitoringModules(cfg *config.Config) fx.Option {
	if cfg == nil || !cfg.Metrics.Enabled {
		return fx.Options()
	}
	return fx.Options(
		metrics.Module,
	)
}

// ApplicationModules 应用层模块组合
//
// 演示场景，依赖核心层的应用 Scope。
func ApplicationModules() fx.Option {
	return fx.Options(
		demo.Module,
	)
}
