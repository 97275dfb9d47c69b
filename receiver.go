package sigslot

// ============================================================================
//                              Receiver 实现
// ============================================================================

// Receiver 事件接收端
//
// Receiver 绑定零个或一个调用目标。未绑定时 Invoke 什么也不做。
// 绑定与连接相互独立：重新绑定不会影响已有连接。零值可直接使用。
type Receiver[A any] struct {
	endpoint[A]
	target func(A) error
}

var (
	_ Callable[int] = (*Receiver[int])(nil)
	_ Endpoint      = (*Receiver[int])(nil)
)

// NewReceiver 创建接收端
func NewReceiver[A any](opts ...Option) *Receiver[A] {
	r := &Receiver[A]{}
	r.settings = newSettings(opts)
	adoptInto(r.settings.Scope, r.Name(), r)
	return r
}

// Bind 绑定普通函数，替换之前的目标；fn 为 nil 时等同于 Unbind
func (r *Receiver[A]) Bind(fn func(A)) {
	if fn == nil {
		r.target = nil
		return
	}
	r.target = func(args A) error {
		fn(args)
		return nil
	}
}

// BindErr 绑定可返回错误的函数
//
// 目标返回的错误会终止所在 Emitter 的本轮分发。
func (r *Receiver[A]) BindErr(fn func(A) error) {
	r.target = fn
}

// BindMethod 把方法表达式与对象实例绑定到 r
//
//	sigslot.BindMethod(pm.OnConnected, pm, (*PeerManager).serverConnected)
func BindMethod[T, A any](r *Receiver[A], obj *T, method func(*T, A)) {
	if method == nil {
		r.Unbind()
		return
	}
	r.Bind(func(args A) {
		method(obj, args)
	})
}

// Unbind 解除绑定，已有连接保持不变
func (r *Receiver[A]) Unbind() {
	r.target = nil
}

// Bound 报告是否绑定了目标
func (r *Receiver[A]) Bound() bool {
	return r.target != nil
}

// Invoke 调用绑定的目标，未绑定时直接返回 nil
func (r *Receiver[A]) Invoke(args A) error {
	if r.closed {
		return ErrClosed
	}
	if r.target == nil {
		return nil
	}
	return r.target(args)
}

// Name 返回诊断名称
func (r *Receiver[A]) Name() string {
	return r.displayName(KindReceiver, r)
}

// Kind 返回 KindReceiver
func (r *Receiver[A]) Kind() Kind {
	return KindReceiver
}

// Closed 报告接收端是否已关闭
func (r *Receiver[A]) Closed() bool {
	return r.closed
}

// Callers 返回当前调用本接收端的发射端（按连接顺序）
func (r *Receiver[A]) Callers() []*Emitter[A] {
	return r.callerList()
}

// Targets 接收端没有下游，总是返回 nil
func (r *Receiver[A]) Targets() []string {
	return nil
}

// Close 关闭接收端
//
// 从每个调用它的 Emitter 中移除自身并清空调用者集合。绑定的目标随之释放。
// Close 可以多次调用。
func (r *Receiver[A]) Close() error {
	if r.closed {
		return nil
	}
	r.closed = true

	n := len(r.callers)
	r.detachCallers(r)
	r.target = nil

	r.monitor().OnClose(r.Name(), KindReceiver)
	logger.Debug("receiver closed", "receiver", r.Name(), "links", n)
	return nil
}

func (r *Receiver[A]) base() *endpoint[A] {
	return &r.endpoint
}
