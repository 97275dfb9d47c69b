package sigslot

import (
	"fmt"
	"io"
	"slices"

	"github.com/dep2p/go-sigslot/pkg/lib/log"
)

var logger = log.Logger("sigslot")

// ============================================================================
//                              Callable 接口
// ============================================================================

// Callable 是 Emitter 与 Receiver 共同满足的能力契约
//
// 任何 Callable 都可以作为 Connect 的第二个参数。接口通过未导出方法封闭，
// 只有本包的 Emitter 与 Receiver 能实现它；调用者集合的维护只经由
// Connect / Disconnect / Close 完成，用户无法直接调用。
type Callable[A any] interface {
	// Invoke 调用绑定的行为（Receiver）或分发给所有已连接对象（Emitter）
	Invoke(args A) error

	// Name 返回诊断名称
	Name() string

	base() *endpoint[A]
}

// Kind 端点类型
type Kind int

const (
	// KindEmitter 发射端
	KindEmitter Kind = iota
	// KindReceiver 接收端
	KindReceiver
)

// String 返回端点类型字符串
func (k Kind) String() string {
	switch k {
	case KindEmitter:
		return "emitter"
	case KindReceiver:
		return "receiver"
	default:
		return fmt.Sprintf("unknown(%d)", int(k))
	}
}

// Endpoint 与通道签名无关的端点视图
//
// Scope 和诊断代码通过它处理任意签名的端点。
type Endpoint interface {
	io.Closer

	// Name 返回诊断名称
	Name() string

	// Kind 返回端点类型
	Kind() Kind

	// Closed 报告端点是否已关闭
	Closed() bool

	// Targets 返回已连接对象的名称（按连接顺序），Receiver 总是返回 nil
	Targets() []string
}

// ============================================================================
//                              共享状态
// ============================================================================

// endpoint Emitter 与 Receiver 共享的底层状态
//
// callers 是非拥有的反向引用，仅用于关闭时清理。
type endpoint[A any] struct {
	settings Settings
	callers  []*Emitter[A]
	known    map[*Emitter[A]]struct{}
	closed   bool
}

// displayName 返回配置的名称，未配置时使用 kind@地址
func (n *endpoint[A]) displayName(kind Kind, self any) string {
	if n.settings.Name != "" {
		return n.settings.Name
	}
	return fmt.Sprintf("%s@%p", kind, self)
}

// hasCaller 报告 e 是否在调用者集合中
func (n *endpoint[A]) hasCaller(e *Emitter[A]) bool {
	_, ok := n.known[e]
	return ok
}

// addCaller 记录调用者，重复添加无效
func (n *endpoint[A]) addCaller(e *Emitter[A]) {
	if n.hasCaller(e) {
		return
	}
	if n.known == nil {
		n.known = make(map[*Emitter[A]]struct{})
	}
	n.known[e] = struct{}{}
	n.callers = append(n.callers, e)
}

// removeCaller 移除调用者，不存在时无效
func (n *endpoint[A]) removeCaller(e *Emitter[A]) {
	if !n.hasCaller(e) {
		return
	}
	delete(n.known, e)
	if i := slices.Index(n.callers, e); i >= 0 {
		n.callers = slices.Delete(n.callers, i, i+1)
	}
}

// detachCallers 从所有调用者中移除 self，并清空调用者集合
func (n *endpoint[A]) detachCallers(self Callable[A]) {
	callers := n.callers
	n.callers = nil
	n.known = nil
	for _, e := range callers {
		e.removeReceiver(self)
		e.monitor().OnDisconnect(e.Name(), self.Name())
		logger.Debug("link dropped on close", "emitter", e.Name(), "target", self.Name())
	}
}

// adoptInto 交给 scope 管理；scope 已关闭时 c 随即被关闭
func adoptInto(s *Scope, name string, c io.Closer) {
	if s == nil {
		return
	}
	if err := s.Adopt(c); err != nil {
		logger.Warn("created in closed scope", "scope", s.Name(), "name", name, "err", err)
	}
}

// monitor 返回配置的 Monitor，未配置时返回空实现
func (n *endpoint[A]) monitor() Monitor {
	if n.settings.Monitor == nil {
		return nopMonitor{}
	}
	return n.settings.Monitor
}

// callerList 返回调用者集合的副本
func (n *endpoint[A]) callerList() []*Emitter[A] {
	if len(n.callers) == 0 {
		return nil
	}
	return slices.Clone(n.callers)
}
