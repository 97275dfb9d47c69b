package sigslot

import (
	"errors"
	"fmt"
)

// 公共错误定义
var (
	// ErrClosed 端点已关闭
	ErrClosed = errors.New("sigslot: endpoint closed")

	// ErrScopeClosed 作用域已关闭，被收养的对象已立即关闭
	ErrScopeClosed = errors.New("sigslot: scope closed")

	// ErrPanicked 分发过程中目标发生 panic
	//
	// 仅用于通知 Monitor，panic 本身继续向 Emit 的调用方传播。
	ErrPanicked = errors.New("sigslot: receiver panicked during dispatch")
)

// DispatchError 分发过程中目标返回的错误
//
// 转发链中每一级 Emitter 都会包装一层，可用 errors.Is / errors.As 逐层检查。
type DispatchError struct {
	// Emitter 发生错误的发射端名称
	Emitter string
	// Receiver 返回错误的对象名称
	Receiver string
	// Index 该对象在本轮快照中的位置
	Index int
	// Err 底层错误
	Err error
}

func (e *DispatchError) Error() string {
	return fmt.Sprintf("sigslot: dispatch %s -> %s (#%d): %v", e.Emitter, e.Receiver, e.Index, e.Err)
}

func (e *DispatchError) Unwrap() error {
	return e.Err
}
