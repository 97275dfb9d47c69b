package lifecycle

import (
	"context"

	"go.uber.org/fx"

	"github.com/dep2p/go-sigslot"
	"github.com/dep2p/go-sigslot/config"
)

// ModuleParams 模块输入参数
type ModuleParams struct {
	fx.In

	UnifiedCfg *config.Config  `optional:"true"`
	Monitor    sigslot.Monitor `optional:"true"`
}

// ModuleResult Fx 模块导出结果
type ModuleResult struct {
	fx.Out

	Coordinator *Coordinator
	Scope       *sigslot.Scope // 应用级 Scope，供各组件收养端点
}

// provideCoordinator 提供 Coordinator 实例
//
// 应用 Scope 继承 Monitor 与 dispatch.trace 配置，
// 收养进 Scope 的端点无需再单独设置。
func provideCoordinator(params ModuleParams) ModuleResult {
	var opts []sigslot.Option
	if params.Monitor != nil {
		opts = append(opts, sigslot.WithMonitor(params.Monitor))
	}
	if params.UnifiedCfg != nil && params.UnifiedCfg.Dispatch.Trace {
		opts = append(opts, sigslot.WithTrace(true))
	}

	c := NewCoordinator(opts...)
	return ModuleResult{
		Coordinator: c,
		Scope:       c.Scope(),
	}
}

// Module 返回 Fx 模块
//
// 提供生命周期协调器与应用级 Scope 作为全局单例。
// 应用停止时关闭 Scope，所有收养的端点随之断开。
func Module() fx.Option {
	return fx.Module("lifecycle",
		fx.Provide(
			provideCoordinator,
		),
		fx.Invoke(registerLifecycleHooks),
	)
}

// lifecycleHooksParams 生命周期钩子参数
type lifecycleHooksParams struct {
	fx.In

	Lifecycle   fx.Lifecycle
	Coordinator *Coordinator
}

// registerLifecycleHooks 注册生命周期钩子
func registerLifecycleHooks(params lifecycleHooksParams) {
	params.Lifecycle.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			return params.Coordinator.Start()
		},
		OnStop: func(_ context.Context) error {
			return params.Coordinator.Stop()
		},
	})
}
