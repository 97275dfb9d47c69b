package mocks

import (
	"sync"

	"github.com/dep2p/go-sigslot"
)

// LinkCall 记录一次 OnConnect / OnDisconnect 调用
type LinkCall struct {
	Emitter string
	Target  string
}

// DispatchCall 记录一轮分发
type DispatchCall struct {
	Emitter   string
	Receivers int
	Err       error
	Done      bool
}

// CloseCall 记录一次 OnClose 调用
type CloseCall struct {
	Name string
	Kind sigslot.Kind
}

// MockMonitor 模拟 sigslot.Monitor 接口实现
//
// 用于验证连接、分发、关闭事件的通知顺序与内容。
type MockMonitor struct {
	mu sync.Mutex

	// 可覆盖的方法
	OnConnectFunc    func(emitter, target string)
	OnDisconnectFunc func(emitter, target string)
	OnDispatchFunc   func(emitter string, receivers int) func(error)
	OnCloseFunc      func(name string, kind sigslot.Kind)

	// 调用记录
	ConnectCalls    []LinkCall
	DisconnectCalls []LinkCall
	DispatchCalls   []*DispatchCall
	CloseCalls      []CloseCall
}

var _ sigslot.Monitor = (*MockMonitor)(nil)

// NewMockMonitor 创建 MockMonitor
func NewMockMonitor() *MockMonitor {
	return &MockMonitor{}
}

// OnConnect 记录连接
func (m *MockMonitor) OnConnect(emitter, target string) {
	m.mu.Lock()
	m.ConnectCalls = append(m.ConnectCalls, LinkCall{Emitter: emitter, Target: target})
	m.mu.Unlock()

	if m.OnConnectFunc != nil {
		m.OnConnectFunc(emitter, target)
	}
}

// OnDisconnect 记录断开
func (m *MockMonitor) OnDisconnect(emitter, target string) {
	m.mu.Lock()
	m.DisconnectCalls = append(m.DisconnectCalls, LinkCall{Emitter: emitter, Target: target})
	m.mu.Unlock()

	if m.OnDisconnectFunc != nil {
		m.OnDisconnectFunc(emitter, target)
	}
}

// OnDispatch 记录分发，返回的函数记录结果
func (m *MockMonitor) OnDispatch(emitter string, receivers int) func(error) {
	call := &DispatchCall{Emitter: emitter, Receivers: receivers}

	m.mu.Lock()
	m.DispatchCalls = append(m.DispatchCalls, call)
	m.mu.Unlock()

	var inner func(error)
	if m.OnDispatchFunc != nil {
		inner = m.OnDispatchFunc(emitter, receivers)
	}
	return func(err error) {
		m.mu.Lock()
		call.Err = err
		call.Done = true
		m.mu.Unlock()
		if inner != nil {
			inner(err)
		}
	}
}

// OnClose 记录关闭
func (m *MockMonitor) OnClose(name string, kind sigslot.Kind) {
	m.mu.Lock()
	m.CloseCalls = append(m.CloseCalls, CloseCall{Name: name, Kind: kind})
	m.mu.Unlock()

	if m.OnCloseFunc != nil {
		m.OnCloseFunc(name, kind)
	}
}

// Links 返回当前存活连接数（连接数减断开数）
func (m *MockMonitor) Links() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.ConnectCalls) - len(m.DisconnectCalls)
}
