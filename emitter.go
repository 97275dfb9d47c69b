package sigslot

import (
	"slices"

	"github.com/google/uuid"

	"github.com/dep2p/go-sigslot/pkg/lib/log"
)

// ============================================================================
//                              Emitter 实现
// ============================================================================

// Emitter 事件发射端
//
// Emitter 持有按连接顺序排列、无重复的 Callable 序列，Emit 时同步地
// 依次调用它们。零值可直接使用，通常作为发布者对象的字段。
//
// Emitter 本身也是 Callable，可以连接到另一个 Emitter 上作为转发节点。
// Emitter 不拥有接收方，接收方也不拥有 Emitter；双方在 Close 时互相清理。
type Emitter[A any] struct {
	endpoint[A]
	receivers []Callable[A]
	members   map[Callable[A]]struct{}
}

var (
	_ Callable[int] = (*Emitter[int])(nil)
	_ Endpoint      = (*Emitter[int])(nil)
)

// NewEmitter 创建发射端
func NewEmitter[A any](opts ...Option) *Emitter[A] {
	e := &Emitter[A]{}
	e.settings = newSettings(opts)
	adoptInto(e.settings.Scope, e.Name(), e)
	return e
}

// Name 返回诊断名称
func (e *Emitter[A]) Name() string {
	return e.displayName(KindEmitter, e)
}

// Kind 返回 KindEmitter
func (e *Emitter[A]) Kind() Kind {
	return KindEmitter
}

// Closed 报告发射端是否已关闭
func (e *Emitter[A]) Closed() bool {
	return e.closed
}

// Emit 同步分发参数给所有已连接对象
//
// 分发基于进入时的快照：本轮中新连接的对象不会被调用，尚未轮到就被断开
// 或关闭的对象会被跳过，发射端自身在分发中被关闭则立即停止。
// 某个对象返回错误时本轮终止，错误包装为 *DispatchError 返回。
// 目标中的 panic 不会被恢复。没有连接对象时仍会向 Monitor 报告一轮空分发。
func (e *Emitter[A]) Emit(args A) (err error) {
	if e.closed {
		return ErrClosed
	}

	snapshot := slices.Clone(e.receivers)
	done := e.beginDispatch(len(snapshot))

	finished := false
	defer func() {
		if !finished {
			done(ErrPanicked)
		}
	}()

	for i, c := range snapshot {
		if e.closed {
			break
		}
		if !e.Connected(c) {
			continue
		}
		if ierr := c.Invoke(args); ierr != nil {
			err = &DispatchError{
				Emitter:  e.Name(),
				Receiver: c.Name(),
				Index:    i,
				Err:      ierr,
			}
			break
		}
	}

	finished = true
	done(err)
	return err
}

// Invoke 等价于 Emit，使 Emitter 满足 Callable
func (e *Emitter[A]) Invoke(args A) error {
	return e.Emit(args)
}

// beginDispatch 通知 Monitor 并在追踪模式下输出分发日志
func (e *Emitter[A]) beginDispatch(n int) func(error) {
	finish := e.monitor().OnDispatch(e.Name(), n)
	if !e.settings.Trace {
		return finish
	}

	pass := log.TruncateID(uuid.NewString(), 8)
	logger.Debug("dispatch begin", "emitter", e.Name(), "receivers", n, "pass", pass)
	return func(err error) {
		if err != nil {
			logger.Debug("dispatch aborted", "emitter", e.Name(), "pass", pass, "err", err)
		} else {
			logger.Debug("dispatch end", "emitter", e.Name(), "pass", pass)
		}
		finish(err)
	}
}

// Connected 报告 c 是否已连接到本发射端
func (e *Emitter[A]) Connected(c Callable[A]) bool {
	_, ok := e.members[c]
	return ok
}

// Len 返回已连接对象数量
func (e *Emitter[A]) Len() int {
	return len(e.receivers)
}

// Receivers 返回已连接对象的副本（按连接顺序）
func (e *Emitter[A]) Receivers() []Callable[A] {
	if len(e.receivers) == 0 {
		return nil
	}
	return slices.Clone(e.receivers)
}

// Callers 返回把本发射端作为接收方连接的上游发射端
func (e *Emitter[A]) Callers() []*Emitter[A] {
	return e.callerList()
}

// Targets 返回已连接对象的名称（按连接顺序）
func (e *Emitter[A]) Targets() []string {
	if len(e.receivers) == 0 {
		return nil
	}
	names := make([]string, 0, len(e.receivers))
	for _, c := range e.receivers {
		names = append(names, c.Name())
	}
	return names
}

// Close 关闭发射端
//
// 关闭后：
//  1. 从每个已连接对象的调用者集合中移除自身
//  2. 从每个上游发射端的序列中移除自身
//  3. 后续 Emit 返回 ErrClosed，Connect 对其无效
//
// Close 可以多次调用。
func (e *Emitter[A]) Close() error {
	if e.closed {
		return nil
	}
	e.closed = true

	receivers := e.receivers
	e.receivers = nil
	e.members = nil
	for _, c := range receivers {
		c.base().removeCaller(e)
		e.monitor().OnDisconnect(e.Name(), c.Name())
		logger.Debug("link dropped on close", "emitter", e.Name(), "target", c.Name())
	}
	e.detachCallers(e)

	e.monitor().OnClose(e.Name(), KindEmitter)
	logger.Debug("emitter closed", "emitter", e.Name(), "links", len(receivers))
	return nil
}

func (e *Emitter[A]) base() *endpoint[A] {
	return &e.endpoint
}

// addReceiver 追加 c，已存在时无效
func (e *Emitter[A]) addReceiver(c Callable[A]) {
	if e.Connected(c) {
		return
	}
	if e.members == nil {
		e.members = make(map[Callable[A]]struct{})
	}
	e.members[c] = struct{}{}
	e.receivers = append(e.receivers, c)
}

// removeReceiver 移除 c，不存在时无效
func (e *Emitter[A]) removeReceiver(c Callable[A]) {
	if !e.Connected(c) {
		return
	}
	delete(e.members, c)
	if i := slices.Index(e.receivers, c); i >= 0 {
		e.receivers = slices.Delete(e.receivers, i, i+1)
	}
}
