package demo

import (
	"io"
	"os"

	"github.com/benbjohnson/clock"
	"go.uber.org/fx"

	"github.com/dep2p/go-sigslot"
	"github.com/dep2p/go-sigslot/config"
)

// Params 演示场景依赖参数
type Params struct {
	fx.In

	UnifiedCfg *config.Config `optional:"true"`
	Scope      *sigslot.Scope
	Output     io.Writer   `name:"demo_output" optional:"true"`
	Clock      clock.Clock `optional:"true"`
}

// Module 是 demo 的 Fx 模块
//
// 依赖 lifecycle 模块提供的应用 Scope。
var Module = fx.Module("demo",
	fx.Provide(NewScenarioFromParams),
)

// NewScenarioFromParams 从参数创建 Scenario
func NewScenarioFromParams(p Params) *Scenario {
	cfg := config.DefaultDemoConfig()
	if p.UnifiedCfg != nil {
		cfg = p.UnifiedCfg.Demo
	}
	out := p.Output
	if out == nil {
		out = os.Stdout
	}
	return NewScenario(cfg, p.Scope, out, p.Clock)
}
