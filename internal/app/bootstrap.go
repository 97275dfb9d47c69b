package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/benbjohnson/clock"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/dep2p/go-sigslot/config"
	"github.com/dep2p/go-sigslot/internal/core/lifecycle"
	"github.com/dep2p/go-sigslot/internal/core/metrics"
	"github.com/dep2p/go-sigslot/internal/demo"
	"github.com/dep2p/go-sigslot/pkg/lib/log"
)

var logger = log.Logger("app")

// ErrNotBuilt Build 之前调用了需要 fx 应用的方法
var ErrNotBuilt = errors.New("app not built")

// Bootstrap 应用引导程序
//
// Bootstrap 负责：
// - 解析配置、初始化日志
// - 组装 fx 模块
// - 管理应用生命周期
type Bootstrap struct {
	config *config.Config
	output io.Writer
	clock  clock.Clock
	build  BuildOptions

	fxApp   *fx.App
	logFile *os.File

	// 从 fx 中取出的组件
	scenario    *demo.Scenario
	coordinator *lifecycle.Coordinator
	collector   *metrics.Collector
}

// NewBootstrap 创建引导程序
//
// 未指定配置时使用 config.NewConfig()，未指定输出时使用 os.Stdout。
func NewBootstrap(opts ...BootstrapOption) *Bootstrap {
	b := &Bootstrap{
		build: DefaultBuildOptions(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(b)
		}
	}
	if b.config == nil {
		b.config = config.NewConfig()
	}
	if b.output == nil {
		b.output = os.Stdout
	}
	return b
}

// Build 构建应用（不启动）
func (b *Bootstrap) Build() (*Runtime, error) {
	if err := b.config.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	// 应用日志配置（必须在所有模块初始化之前）
	if err := b.setupLogging(); err != nil {
		return nil, fmt.Errorf("setup logging: %w", err)
	}

	b.fxApp = fx.New(
		fx.Options(b.setupModules()...),
		fx.WithLogger(b.fxLogger()),
		fx.Populate(&b.scenario, &b.coordinator),
		fx.Invoke(func(p collectorParams) {
			b.collector = p.Collector
		}),
	)
	if err := b.fxApp.Err(); err != nil {
		_ = b.closeLogFile()
		return nil, fmt.Errorf("build fx app: %w", err)
	}

	return &Runtime{
		Scenario:    b.scenario,
		Coordinator: b.coordinator,
		Collector:   b.collector,
		output:      b.output,
		dump:        b.config.Metrics.Dump,
		stop:        b.Stop,
	}, nil
}

// collectorParams 指标模块未加载时 Collector 为 nil
type collectorParams struct {
	fx.In

	Collector *metrics.Collector `optional:"true"`
}

// Start 构建并启动应用
func (b *Bootstrap) Start(ctx context.Context) (*Runtime, error) {
	rt, err := b.Build()
	if err != nil {
		return nil, err
	}

	startCtx, cancel := context.WithTimeout(ctx, b.build.StartTimeout)
	defer cancel()

	if err := b.fxApp.Start(startCtx); err != nil {
		_ = b.closeLogFile()
		return nil, fmt.Errorf("start app: %w", err)
	}
	logger.Info("app started", "metrics", b.collector != nil, "trace", b.config.Dispatch.Trace)
	return rt, nil
}

// Stop 停止应用
func (b *Bootstrap) Stop(ctx context.Context) error {
	if b.fxApp == nil {
		return ErrNotBuilt
	}

	stopCtx, cancel := context.WithTimeout(ctx, b.build.StopTimeout)
	defer cancel()

	err := b.fxApp.Stop(stopCtx)
	logger.Info("app stopped", "err", err)
	return multierr.Append(err, b.closeLogFile())
}

// setupModules 组装所有 fx 模块
func (b *Bootstrap) setupModules() []fx.Option {
	modules := []fx.Option{
		// 配置与外部依赖
		fx.Supply(b.config),
		fx.Provide(fx.Annotate(
			func() io.Writer { return b.output },
			fx.ResultTags(`name:"demo_output"`),
		)),

		CoreModules(),
		MonitoringModules(b.config),
		ApplicationModules(),
	}
	if clk := b.clock; clk != nil {
		modules = append(modules, fx.Provide(func() clock.Clock { return clk }))
	}
	return append(modules, b.build.ExtraOptions...)
}

// fxLogger 选择 fx 事件日志
//
// debug 级别时输出 fx 的装配过程，否则静默。
func (b *Bootstrap) fxLogger() func() fxevent.Logger {
	return func() fxevent.Logger {
		if b.config.Log.Level == "debug" {
			if zl, err := zap.NewDevelopment(); err == nil {
				return &fxevent.ZapLogger{Logger: zl}
			}
		}
		return &fxevent.ZapLogger{Logger: zap.NewNop()}
	}
}

// setupLogging 配置日志输出
//
// 如果指定了 Log.File，将所有日志重定向到文件（追加模式）。
func (b *Bootstrap) setupLogging() error {
	level, err := log.ParseLevel(b.config.Log.Level)
	if err != nil {
		return err
	}

	var w io.Writer = os.Stderr
	if b.config.Log.File != "" {
		file, err := os.OpenFile(b.config.Log.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		b.logFile = file
		w = file
	}

	if err := log.Setup(log.Options{Writer: w, Level: level, Format: b.config.Log.Format}); err != nil {
		_ = b.closeLogFile()
		return err
	}
	if b.logFile != nil {
		logger.Info("log file opened", "path", b.config.Log.File)
	}
	return nil
}

func (b *Bootstrap) closeLogFile() error {
	if b.logFile == nil {
		return nil
	}
	err := b.logFile.Close()
	b.logFile = nil
	return err
}
