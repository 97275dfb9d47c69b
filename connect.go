package sigslot

// ============================================================================
//                              连接协议
// ============================================================================

// Connect 将 c 连接到 e
//
// 两端记录作为一次逻辑更新完成：e 的序列追加 c，c 的调用者集合加入 e。
// 以下情况为空操作：
//   - 任一端已记录该连接（幂等，不做部分更新）
//   - 任一端为 nil
//   - 任一端已关闭
//
// c 可以是 Receiver，也可以是另一个 Emitter（转发）。自连接与环路不做检测，
// 由调用方负责避免无限递归。
func Connect[A any](e *Emitter[A], c Callable[A]) {
	if e == nil || isNil(c) {
		return
	}
	n := c.base()
	if e.closed || n.closed {
		logger.Debug("connect ignored, endpoint closed", "emitter", e.Name(), "target", c.Name())
		return
	}
	if e.Connected(c) || n.hasCaller(e) {
		return
	}

	e.addReceiver(c)
	n.addCaller(e)

	e.monitor().OnConnect(e.Name(), c.Name())
	logger.Debug("connected", "emitter", e.Name(), "target", c.Name(), "position", e.Len()-1)
}

// Disconnect 断开 e 与 c 的连接，未连接时为空操作
func Disconnect[A any](e *Emitter[A], c Callable[A]) {
	if e == nil || isNil(c) {
		return
	}
	n := c.base()
	if !e.Connected(c) && !n.hasCaller(e) {
		return
	}

	e.removeReceiver(c)
	n.removeCaller(e)

	e.monitor().OnDisconnect(e.Name(), c.Name())
	logger.Debug("disconnected", "emitter", e.Name(), "target", c.Name())
}

// Connected 报告 e 与 c 之间是否存在连接
func Connected[A any](e *Emitter[A], c Callable[A]) bool {
	if e == nil || isNil(c) {
		return false
	}
	return e.Connected(c) && c.base().hasCaller(e)
}

// isNil 识别装箱了 nil 指针的 Callable
func isNil[A any](c Callable[A]) bool {
	if c == nil {
		return true
	}
	switch v := c.(type) {
	case *Receiver[A]:
		return v == nil
	case *Emitter[A]:
		return v == nil
	}
	return false
}
