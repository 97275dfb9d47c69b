// Package demo 提供一个可运行的信号槽演示场景
//
// 场景由四个组件组成：
//   - Server: 发布 Connected(bool) 与 Disconnected 两个信号
//   - PeerManager: 以方法绑定的接收端订阅 Server
//   - Client: 把 Server.Disconnected 转发给下游的 Disconnected 发射端
//   - ClientWindow: 订阅 Client.Disconnected，另带一个未绑定的接收端
//
// 另有一个绑定到普通函数的接收端。PeerManager 与该接收端放在一个子 Scope 中，
// 关闭子 Scope 即模拟它们被销毁，其余组件继续工作。
package demo

import (
	"fmt"
	"io"

	"github.com/dep2p/go-sigslot"
)

// ============================================================================
//                              Server
// ============================================================================

// Server 服务器连接状态的发布方
type Server struct {
	Connected    *sigslot.Emitter[bool]
	Disconnected *sigslot.Emitter[sigslot.Void]
}

// NewServer 创建 Server，端点收养在 scope 中
func NewServer(scope *sigslot.Scope) *Server {
	return &Server{
		Connected:    sigslot.NewEmitter[bool](sigslot.WithName("server.connected"), sigslot.InScope(scope)),
		Disconnected: sigslot.NewEmitter[sigslot.Void](sigslot.WithName("server.disconnected"), sigslot.InScope(scope)),
	}
}

// Connect 发出 Connected(true)
func (s *Server) Connect() error {
	return s.Connected.Emit(true)
}

// Disconnect 发出 Connected(false)，随后发出 Disconnected
func (s *Server) Disconnect() error {
	if err := s.Connected.Emit(false); err != nil {
		return err
	}
	return s.Disconnected.Emit(sigslot.Void{})
}

// ============================================================================
//                              PeerManager
// ============================================================================

// PeerManager 跟踪服务器状态
type PeerManager struct {
	ServerConnected    *sigslot.Receiver[bool]
	ServerDisconnected *sigslot.Receiver[sigslot.Void]

	out   io.Writer
	state int
}

// PeerManager 状态
const (
	PeerStateIdle         = 0
	PeerStateConnected    = 1
	PeerStateDisconnected = 2
)

// NewPeerManager 创建 PeerManager，接收端绑定到自身方法
func NewPeerManager(scope *sigslot.Scope, out io.Writer) *PeerManager {
	pm := &PeerManager{
		ServerConnected:    sigslot.NewReceiver[bool](sigslot.WithName("peer_manager.server_connected"), sigslot.InScope(scope)),
		ServerDisconnected: sigslot.NewReceiver[sigslot.Void](sigslot.WithName("peer_manager.server_disconnected"), sigslot.InScope(scope)),
		out:                out,
	}
	sigslot.BindMethod(pm.ServerConnected, pm, (*PeerManager).onServerConnected)
	sigslot.BindMethod(pm.ServerDisconnected, pm, (*PeerManager).onServerDisconnected)
	return pm
}

// State 返回最近一次收到的服务器状态
func (pm *PeerManager) State() int {
	return pm.state
}

func (pm *PeerManager) onServerConnected(connected bool) {
	fmt.Fprintf(pm.out, "Server connected : %t\n", connected)
	pm.state = PeerStateConnected
}

func (pm *PeerManager) onServerDisconnected(sigslot.Void) {
	fmt.Fprintln(pm.out, "PeerManager : server disconnected")
	pm.state = PeerStateDisconnected
}

// ============================================================================
//                              Client / ClientWindow
// ============================================================================

// Client 把断开事件转发给界面层
type Client struct {
	Disconnected *sigslot.Emitter[sigslot.Void]
}

// NewClient 创建 Client
func NewClient(scope *sigslot.Scope) *Client {
	return &Client{
		Disconnected: sigslot.NewEmitter[sigslot.Void](sigslot.WithName("client.disconnected"), sigslot.InScope(scope)),
	}
}

// ClientWindow 界面
type ClientWindow struct {
	Disconnected *sigslot.Receiver[sigslot.Void]
	Unbound      *sigslot.Receiver[sigslot.Void]
}

// NewClientWindow 创建 ClientWindow
//
// Unbound 从不绑定目标，被调用时什么也不做。
func NewClientWindow(scope *sigslot.Scope, out io.Writer) *ClientWindow {
	w := &ClientWindow{
		Disconnected: sigslot.NewReceiver[sigslot.Void](sigslot.WithName("client_window.disconnected"), sigslot.InScope(scope)),
		Unbound:      sigslot.NewReceiver[sigslot.Void](sigslot.WithName("client_window.unbound"), sigslot.InScope(scope)),
	}
	w.Disconnected.Bind(func(sigslot.Void) {
		fmt.Fprintln(out, "You are now disconnected.")
	})
	return w
}

// ============================================================================
//                              普通函数接收端
// ============================================================================

// NewNotifier 创建绑定到普通函数的接收端
func NewNotifier(scope *sigslot.Scope, out io.Writer) *sigslot.Receiver[sigslot.Void] {
	r := sigslot.NewReceiver[sigslot.Void](sigslot.WithName("notifier"), sigslot.InScope(scope))
	r.Bind(sigslot.Drop(func() { notifyDisconnected(out) }))
	return r
}

func notifyDisconnected(out io.Writer) {
	fmt.Fprintln(out, "notifier: disconnected")
}
