package demo

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dep2p/go-sigslot"
	"github.com/dep2p/go-sigslot/config"
)

func newTestScenario(t *testing.T, cfg config.DemoConfig) (*Scenario, *bytes.Buffer) {
	t.Helper()
	scope := sigslot.NewScope("test")
	t.Cleanup(func() { _ = scope.Close() })

	var buf bytes.Buffer
	return NewScenario(cfg, scope, &buf, nil), &buf
}

func lines(buf *bytes.Buffer) []string {
	return strings.Split(strings.TrimSpace(buf.String()), "\n")
}

// TestScenario_DefaultRun 两轮，第一轮后销毁 PeerManager
func TestScenario_DefaultRun(t *testing.T) {
	s, buf := newTestScenario(t, config.DefaultDemoConfig())

	require.NoError(t, s.Run(context.Background()))

	assert.Equal(t, []string{
		"-- round 1 --",
		"Server connected : true",
		"Server connected : false",
		"PeerManager : server disconnected",
		"You are now disconnected.",
		"notifier: disconnected",
		"-- peers dropped --",
		"-- round 2 --",
		"You are now disconnected.",
	}, lines(buf))

	assert.True(t, s.PeersDropped())
	assert.Equal(t, PeerStateDisconnected, s.PeerManager.State())
}

// TestScenario_Wiring 重复连接与未绑定接收端
func TestScenario_Wiring(t *testing.T) {
	s, _ := newTestScenario(t, config.DefaultDemoConfig())

	assert.Equal(t, 1, s.Server.Connected.Len(), "duplicate connect ignored")
	assert.Equal(t, 2, s.Server.Disconnected.Len())
	assert.Equal(t, 3, s.Client.Disconnected.Len())
	assert.False(t, s.Window.Unbound.Bound())
	assert.True(t, sigslot.Connected[sigslot.Void](s.Client.Disconnected, s.Window.Unbound))
}

// TestScenario_NeverDrop 不销毁时每轮输出相同
func TestScenario_NeverDrop(t *testing.T) {
	cfg := config.DefaultDemoConfig()
	cfg.Rounds = 3
	cfg.DropPeerManagerAfter = 0
	s, buf := newTestScenario(t, cfg)

	require.NoError(t, s.Run(context.Background()))
	assert.Equal(t, 3, strings.Count(buf.String(), "PeerManager : server disconnected"))
	assert.False(t, s.PeersDropped())
}

// TestScenario_DropDetachesUpstream 销毁后上游不再持有已关闭接收端
func TestScenario_DropDetachesUpstream(t *testing.T) {
	s, _ := newTestScenario(t, config.DefaultDemoConfig())

	require.NoError(t, s.DropPeers())
	require.NoError(t, s.DropPeers(), "second drop is a no-op")

	assert.Equal(t, 0, s.Server.Connected.Len())
	assert.Equal(t, []string{"client.disconnected"}, s.Server.Disconnected.Targets())
	assert.Equal(t, []string{"client_window.unbound", "client_window.disconnected"}, s.Client.Disconnected.Targets())
	assert.True(t, s.Notifier.Closed())
}

// TestScenario_PrintGraph 打印连接图
func TestScenario_PrintGraph(t *testing.T) {
	cfg := config.DefaultDemoConfig()
	cfg.Rounds = 1
	cfg.PrintGraph = true
	s, buf := newTestScenario(t, cfg)

	require.NoError(t, s.Run(context.Background()))

	out := buf.String()
	assert.Contains(t, out, "  server.connected -> peer_manager.server_connected\n")
	assert.Contains(t, out, "  server.disconnected -> client.disconnected\n")
	assert.Contains(t, out, "  client.disconnected -> notifier\n")
}

// TestScenario_Canceled 取消后不再执行新的轮次
func TestScenario_Canceled(t *testing.T) {
	s, buf := newTestScenario(t, config.DefaultDemoConfig())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, s.Run(ctx), context.Canceled)
	assert.Empty(t, buf.String())
}

// TestScenario_Pause 轮次之间按时钟停顿
func TestScenario_Pause(t *testing.T) {
	cfg := config.DefaultDemoConfig()
	cfg.Pause = config.Duration(time.Minute)

	scope := sigslot.NewScope("test")
	defer scope.Close()

	mock := clock.NewMock()
	var buf syncBuffer
	s := NewScenario(cfg, scope, &buf, mock)

	done := make(chan error, 1)
	go func() { done <- s.Run(context.Background()) }()

	// 等待第一轮结束并进入停顿
	require.Eventually(t, func() bool {
		return strings.Contains(buf.String(), "-- peers dropped --")
	}, time.Second, time.Millisecond)
	assert.NotContains(t, buf.String(), "-- round 2 --")

	var runErr error
	require.Eventually(t, func() bool {
		mock.Add(time.Minute)
		select {
		case runErr = <-done:
			return true
		default:
			return false
		}
	}, time.Second, time.Millisecond)
	require.NoError(t, runErr)
	assert.Contains(t, buf.String(), "-- round 2 --")
}

// TestScenario_ErrorStopsRun 接收端错误中止运行
func TestScenario_ErrorStopsRun(t *testing.T) {
	s, _ := newTestScenario(t, config.DefaultDemoConfig())
	s.PeerManager.ServerConnected.BindErr(func(bool) error { return assert.AnError })

	err := s.Run(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, assert.AnError)
	assert.Contains(t, err.Error(), "round 1: connect")
}

// syncBuffer 可在多个 goroutine 间共享的输出
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}
