package demo

import (
	"context"
	"fmt"
	"io"

	"github.com/benbjohnson/clock"

	"github.com/dep2p/go-sigslot"
	"github.com/dep2p/go-sigslot/config"
	"github.com/dep2p/go-sigslot/pkg/lib/log"
)

var logger = log.Logger("demo")

// Scenario 演示场景
//
// Server、Client、ClientWindow 收养在应用 Scope 中；PeerManager 与
// Notifier 收养在子 Scope "peers" 中，可以单独销毁。
type Scenario struct {
	cfg   config.DemoConfig
	out   io.Writer
	clock clock.Clock

	scope *sigslot.Scope
	peers *sigslot.Scope

	Server      *Server
	Client      *Client
	Window      *ClientWindow
	PeerManager *PeerManager
	Notifier    *sigslot.Receiver[sigslot.Void]
}

// NewScenario 创建并连接演示组件
//
// clk 为 nil 时使用系统时钟。
func NewScenario(cfg config.DemoConfig, scope *sigslot.Scope, out io.Writer, clk clock.Clock) *Scenario {
	if clk == nil {
		clk = clock.New()
	}
	peers := sigslot.NewScope("peers", sigslot.InScope(scope))

	s := &Scenario{
		cfg:         cfg,
		out:         out,
		clock:       clk,
		scope:       scope,
		peers:       peers,
		Server:      NewServer(scope),
		Client:      NewClient(scope),
		Window:      NewClientWindow(scope, out),
		PeerManager: NewPeerManager(peers, out),
		Notifier:    NewNotifier(peers, out),
	}
	s.wire()
	return s
}

// wire 建立连接图
func (s *Scenario) wire() {
	sigslot.Connect(s.Server.Connected, s.PeerManager.ServerConnected)
	sigslot.Connect(s.Server.Connected, s.PeerManager.ServerConnected) // 已连接，无效果

	sigslot.Connect(s.Server.Disconnected, s.PeerManager.ServerDisconnected)

	sigslot.Connect(s.Server.Disconnected, s.Client.Disconnected)
	sigslot.Connect(s.Client.Disconnected, s.Window.Unbound)
	sigslot.Connect(s.Client.Disconnected, s.Window.Disconnected)
	sigslot.Connect(s.Client.Disconnected, s.Notifier)
}

// DropPeers 销毁 PeerManager 与 Notifier
func (s *Scenario) DropPeers() error {
	if s.peers.Closed() {
		return nil
	}
	if err := s.peers.Close(); err != nil {
		return fmt.Errorf("drop peers: %w", err)
	}
	fmt.Fprintln(s.out, "-- peers dropped --")
	return nil
}

// PeersDropped 报告 PeerManager 是否已销毁
func (s *Scenario) PeersDropped() bool {
	return s.peers.Closed()
}

// Run 执行 cfg.Rounds 轮 connect/disconnect
//
// 第 cfg.DropPeerManagerAfter 轮结束后销毁 PeerManager。ctx 取消时在
// 下一轮开始前返回 ctx.Err()。
func (s *Scenario) Run(ctx context.Context) error {
	for round := 1; round <= s.cfg.Rounds; round++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		fmt.Fprintf(s.out, "-- round %d --\n", round)
		if s.cfg.PrintGraph {
			s.PrintGraph()
		}

		logger.Debug("round begin", "round", round, "links", len(s.scope.Links()))
		if err := s.Server.Connect(); err != nil {
			return fmt.Errorf("round %d: connect: %w", round, err)
		}
		if err := s.Server.Disconnect(); err != nil {
			return fmt.Errorf("round %d: disconnect: %w", round, err)
		}

		if round == s.cfg.DropPeerManagerAfter {
			if err := s.DropPeers(); err != nil {
				return err
			}
		}

		if round < s.cfg.Rounds {
			if err := s.pause(ctx); err != nil {
				return err
			}
		}
	}
	return nil
}

// PrintGraph 打印当前连接图
func (s *Scenario) PrintGraph() {
	for _, l := range s.scope.Links() {
		fmt.Fprintf(s.out, "  %s -> %s\n", l.From, l.To)
	}
}

func (s *Scenario) pause(ctx context.Context) error {
	d := s.cfg.Pause.Duration()
	if d <= 0 {
		return nil
	}
	timer := s.clock.Timer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
