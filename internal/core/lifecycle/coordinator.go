// Package lifecycle 提供应用生命周期协调器
//
// 协调器持有应用级 Scope：所有由应用创建的 Emitter / Receiver 都收养在
// 这个 Scope 中，应用停止时统一关闭，保证连接图在退出路径上被完整拆除。
//
// 阶段定义：
//   - created: 已创建，组件正在构造与连接
//   - running: fx 启动完成
//   - stopping: 正在关闭 Scope
//   - stopped: 全部端点已关闭
//
// 阶段变更通过 PhaseChanged 发射端同步通知。
package lifecycle

import (
	"fmt"

	"go.uber.org/multierr"

	"github.com/dep2p/go-sigslot"
	"github.com/dep2p/go-sigslot/pkg/lib/log"
)

var logger = log.Logger("core/lifecycle")

// ============================================================================
//                              阶段定义
// ============================================================================

// Phase 生命周期阶段
type Phase int

const (
	// PhaseCreated 已创建
	PhaseCreated Phase = iota
	// PhaseRunning 运行中
	PhaseRunning
	// PhaseStopping 关闭中
	PhaseStopping
	// PhaseStopped 已关闭
	PhaseStopped
)

// String 返回阶段字符串表示
func (p Phase) String() string {
	switch p {
	case PhaseCreated:
		return "created"
	case PhaseRunning:
		return "running"
	case PhaseStopping:
		return "stopping"
	case PhaseStopped:
		return "stopped"
	default:
		return fmt.Sprintf("unknown(%d)", p)
	}
}

// Transition 一次阶段变更（From -> To）
type Transition = sigslot.Pair[Phase, Phase]

// ============================================================================
//                              生命周期协调器
// ============================================================================

// Coordinator 生命周期协调器
//
// 核心职责：
//  1. 追踪当前生命周期阶段，确保只能向前推进
//  2. 持有应用级 Scope，在关闭阶段统一拆除连接图
//  3. 通过 PhaseChanged 通知阶段变更
//
// Coordinator 与 sigslot 一样不做同步，只能在单个 goroutine 中使用。
type Coordinator struct {
	phase Phase
	scope *sigslot.Scope

	// PhaseChanged 阶段变更通知，参数为 (旧阶段, 新阶段)
	PhaseChanged *sigslot.Emitter[Transition]
}

// NewCoordinator 创建生命周期协调器
//
// opts 作为应用 Scope 的默认端点选项（Monitor、Trace）。
func NewCoordinator(opts ...sigslot.Option) *Coordinator {
	return &Coordinator{
		phase: PhaseCreated,
		scope: sigslot.NewScope("app", opts...),
		PhaseChanged: sigslot.NewEmitter[Transition](
			sigslot.WithName("lifecycle.phase_changed"),
		),
	}
}

// Phase 返回当前阶段
func (c *Coordinator) Phase() Phase {
	return c.phase
}

// Scope 返回应用级 Scope
func (c *Coordinator) Scope() *sigslot.Scope {
	return c.scope
}

// AdvanceTo 推进到指定阶段
//
// 规则：
//   - 只能向前推进，不能后退
//   - 目标即当前阶段时为空操作
//
// 通知失败（PhaseChanged 的接收方返回错误）不会回滚阶段，错误直接返回。
func (c *Coordinator) AdvanceTo(target Phase) error {
	if target < c.phase {
		return fmt.Errorf("cannot advance backwards: current=%s target=%s", c.phase, target)
	}
	if target == c.phase {
		return nil
	}

	old := c.phase
	c.phase = target
	logger.Info("lifecycle phase advanced", "from", old.String(), "to", target.String())

	return c.PhaseChanged.Emit(sigslot.PairOf(old, target))
}

// Start 推进到 running
func (c *Coordinator) Start() error {
	return c.AdvanceTo(PhaseRunning)
}

// Stop 关闭应用 Scope 并推进到 stopped
//
// 依次：stopping 通知 → 关闭 Scope → stopped 通知 → 关闭 PhaseChanged。
// 重复调用为空操作。
func (c *Coordinator) Stop() error {
	if c.phase >= PhaseStopping {
		return nil
	}

	err := c.AdvanceTo(PhaseStopping)
	if cerr := c.scope.Close(); cerr != nil {
		err = multierr.Append(err, fmt.Errorf("close app scope: %w", cerr))
	}
	if aerr := c.AdvanceTo(PhaseStopped); aerr != nil {
		err = multierr.Append(err, aerr)
	}
	_ = c.PhaseChanged.Close()
	return err
}
