// Package app 测试文件
package app

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx"

	"github.com/dep2p/go-sigslot"
	"github.com/dep2p/go-sigslot/config"
	"github.com/dep2p/go-sigslot/internal/core/lifecycle"
)

// restoreDefaultLogger Bootstrap 会替换全局 slog，测试结束后恢复
func restoreDefaultLogger(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })
}

func quietConfig() *config.Config {
	cfg := config.NewConfig()
	cfg.Log.Level = "error"
	return cfg
}

// TestRunApp_Default 测试默认配置的完整运行
func TestRunApp_Default(t *testing.T) {
	restoreDefaultLogger(t)

	var out bytes.Buffer
	b := NewBootstrap(WithConfig(quietConfig()), WithOutput(&out))
	require.NoError(t, RunApp(context.Background(), b))

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
	}, strings.Split(strings.TrimSpace(out.String()), "\n"))
}

// TestRuntime_MetricsDump 测试指标导出
func TestRuntime_MetricsDump(t *testing.T) {
	restoreDefaultLogger(t)

	cfg := quietConfig()
	cfg.Metrics.Dump = true

	var out bytes.Buffer
	rt, err := NewBootstrap(WithConfig(cfg), WithOutput(&out)).Start(context.Background())
	require.NoError(t, err)
	require.NotNil(t, rt.Collector)

	require.NoError(t, rt.Run(context.Background()))

	// 6 条连接（一次重复连接被忽略），peers 销毁时移除 3 条
	stats := rt.Collector.Snapshot()
	assert.Equal(t, int64(6), stats.Connects)
	assert.Equal(t, int64(3), stats.Disconnects)
	assert.Equal(t, int64(3), stats.Links)
	assert.Equal(t, int64(3), stats.ReceiverCloses)
	assert.Contains(t, out.String(), "-- metrics --")
	assert.Contains(t, out.String(), "sigslot_connects_total 6")

	require.NoError(t, rt.Stop(context.Background()))
	assert.Equal(t, lifecycle.PhaseStopped, rt.Coordinator.Phase())
	assert.Equal(t, int64(0), rt.Collector.Snapshot().Links)
}

// TestRuntime_MetricsDisabled 测试禁用指标时不加载 Collector
func TestRuntime_MetricsDisabled(t *testing.T) {
	restoreDefaultLogger(t)

	cfg := quietConfig()
	cfg.Metrics.Enabled = false
	cfg.Metrics.Dump = true

	var out bytes.Buffer
	rt, err := NewBootstrap(WithConfig(cfg), WithOutput(&out)).Start(context.Background())
	require.NoError(t, err)
	defer rt.Stop(context.Background())

	assert.Nil(t, rt.Collector)
	require.NoError(t, rt.Run(context.Background()))
	assert.NotContains(t, out.String(), "-- metrics --")
}

// TestBootstrap_InvalidConfig 测试无效配置
func TestBootstrap_InvalidConfig(t *testing.T) {
	cfg := config.NewConfig()
	cfg.Demo.Rounds = 0

	_, err := NewBootstrap(WithConfig(cfg)).Build()
	assert.ErrorContains(t, err, "config validation failed")
}

// TestBootstrap_StopBeforeBuild 测试未构建时停止
func TestBootstrap_StopBeforeBuild(t *testing.T) {
	assert.ErrorIs(t, NewBootstrap().Stop(context.Background()), ErrNotBuilt)
}

// TestBootstrap_LogFile 测试日志重定向到文件
func TestBootstrap_LogFile(t *testing.T) {
	restoreDefaultLogger(t)

	cfg := config.NewConfig()
	cfg.Log.File = filepath.Join(t.TempDir(), "sigslot.log")
	cfg.Log.Format = "json"

	var out bytes.Buffer
	require.NoError(t, RunApp(context.Background(), NewBootstrap(WithConfig(cfg), WithOutput(&out))))

	data, err := os.ReadFile(cfg.Log.File)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"app started"`)
	assert.Contains(t, string(data), `"component":"core/lifecycle"`)
}

// TestBootstrap_ExtraOptions 测试追加的 fx 选项可以使用应用 Scope
func TestBootstrap_ExtraOptions(t *testing.T) {
	restoreDefaultLogger(t)

	var extra *sigslot.Emitter[int]
	opts := DefaultBuildOptions()
	opts.ExtraOptions = []fx.Option{
		fx.Invoke(func(scope *sigslot.Scope) {
			extra = sigslot.NewEmitter[int](sigslot.InScope(scope))
		}),
	}

	b := NewBootstrap(WithConfig(quietConfig()), WithOutput(&bytes.Buffer{}), WithBuildOptions(opts))
	rt, err := b.Start(context.Background())
	require.NoError(t, err)
	require.NotNil(t, extra)

	require.NoError(t, rt.Stop(context.Background()))
	assert.True(t, extra.Closed())
}
