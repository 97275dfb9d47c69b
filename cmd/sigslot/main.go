// Package main 提供 sigslot 演示命令行入口
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dep2p/go-sigslot/config"
	"github.com/dep2p/go-sigslot/internal/app"
	"github.com/dep2p/go-sigslot/pkg/lib/log"
)

var logger = log.Logger("sigslot/cmd")

// 版本信息，构建时通过 -ldflags 注入
var (
	Version   = "v0.1.0"
	GitCommit = ""
	BuildDate = ""
)

// ═══════════════════════════════════════════════════════════════════════════
// 命令行参数
// ═══════════════════════════════════════════════════════════════════════════
//
//   命令行参数：运行时覆盖（「这次运行」想怎么跑）
//   配置文件（JSON/TOML/YAML）：持久化配置
//
// ═══════════════════════════════════════════════════════════════════════════
var (
	// ─────────────────────────────────────────────────────────────────────
	// 配置来源
	// ─────────────────────────────────────────────────────────────────────
	configFile = flag.String("config", "", "配置文件路径")
	preset     = flag.String("preset", "default", "预设配置 (default/debug/quiet)")

	// ─────────────────────────────────────────────────────────────────────
	// 运行时覆盖
	// ─────────────────────────────────────────────────────────────────────
	logLevel  = flag.String("log-level", "", "日志级别 (debug/info/warn/error)")
	logFile   = flag.String("log", "", "日志文件路径")
	trace     = flag.Bool("trace", false, "记录每一轮分发（需要 debug 日志级别）")
	rounds    = flag.Int("rounds", 0, "connect/disconnect 轮数（0 = 使用配置）")
	graph     = flag.Bool("graph", false, "每轮开始前打印连接图")
	dumpStats = flag.Bool("metrics", false, "退出前打印指标")

	// ─────────────────────────────────────────────────────────────────────
	// 信息显示
	// ─────────────────────────────────────────────────────────────────────
	showVersion = flag.Bool("version", false, "显示版本信息")
	showHelp    = flag.Bool("help", false, "显示帮助信息")
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "错误: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	flag.Parse()

	if *showVersion {
		printVersion()
		return nil
	}
	if *showHelp {
		printHelp()
		return nil
	}

	cfg, err := buildConfig()
	if err != nil {
		return fmt.Errorf("配置错误: %w", err)
	}

	// Ctrl+C 在轮次之间的停顿中生效
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("启动 sigslot 演示", "version", Version, "rounds", cfg.Demo.Rounds)
	return app.RunApp(ctx, app.NewBootstrap(app.WithConfig(cfg), app.WithOutput(os.Stdout)))
}

// buildConfig 构建配置
//
// 配置优先级（从高到低）：
//  1. 命令行参数
//  2. 环境变量（SIGSLOT_* 前缀）
//  3. 配置文件
//  4. 预设默认值
func buildConfig() (*config.Config, error) {
	cfg := config.NewConfig()
	if *configFile != "" {
		loaded, err := config.LoadFile(*configFile)
		if err != nil {
			return nil, fmt.Errorf("加载配置文件失败: %w", err)
		}
		cfg = loaded
	}

	env := readEnv()

	// 预设（命令行 > 环境变量）
	presetName := *preset
	if env.preset != "" && !isFlagSet("preset") {
		presetName = env.preset
	}
	if err := config.ApplyPreset(cfg, presetName); err != nil {
		return nil, err
	}

	env.apply(cfg)

	if isFlagSet("log-level") {
		cfg.Log.Level = *logLevel
	}
	if isFlagSet("log") {
		cfg.Log.File = *logFile
	}
	if isFlagSet("trace") {
		cfg.Dispatch.Trace = *trace
	}
	if isFlagSet("rounds") && *rounds > 0 {
		cfg.Demo.Rounds = *rounds
	}
	if isFlagSet("graph") {
		cfg.Demo.PrintGraph = *graph
	}
	if isFlagSet("metrics") {
		cfg.Metrics.Dump = *dumpStats
		if *dumpStats {
			cfg.Metrics.Enabled = true
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// isFlagSet 检查命令行参数是否被显式设置
func isFlagSet(name string) bool {
	found := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == name {
			found = true
		}
	})
	return found
}

// printVersion 打印版本信息
func printVersion() {
	fmt.Printf("sigslot %s\n", Version)
	if GitCommit != "" {
		fmt.Printf("  commit: %s\n", GitCommit)
	}
	if BuildDate != "" {
		fmt.Printf("  built:  %s\n", BuildDate)
	}
}

// printHelp 打印帮助信息
func printHelp() {
	fmt.Println("sigslot - 类型化信号槽演示")
	fmt.Println()
	fmt.Println("用法:")
	fmt.Println("  sigslot [选项]")
	fmt.Println()
	fmt.Println("选项:")
	flag.PrintDefaults()
	fmt.Println()
	fmt.Println("环境变量:")
	fmt.Println("  SIGSLOT_PRESET      预设名称")
	fmt.Println("  SIGSLOT_LOG_LEVEL   日志级别")
	fmt.Println("  SIGSLOT_LOG_FILE    日志文件路径")
	fmt.Println("  SIGSLOT_TRACE       记录每一轮分发 (true/false)")
	fmt.Println("  SIGSLOT_ROUNDS      connect/disconnect 轮数")
	fmt.Println()
	fmt.Println("预设配置:")
	fmt.Println("  default   默认配置")
	fmt.Println("  debug     debug 日志 + 分发追踪 + 连接图 + 指标导出")
	fmt.Println("  quiet     仅输出警告，禁用指标")
	fmt.Println()
	fmt.Println("使用示例:")
	fmt.Println("  sigslot")
	fmt.Println("  sigslot -preset debug")
	fmt.Println("  sigslot -rounds 3 -graph -metrics")
	fmt.Println("  sigslot -config sigslot.json")
	fmt.Println("  sigslot -config sigslot.toml")
	fmt.Println()
	fmt.Println("配置文件示例 (sigslot.json):")
	fmt.Println(`  {`)
	fmt.Println(`    "log": {"level": "debug", "format": "json"},`)
	fmt.Println(`    "dispatch": {"trace": true},`)
	fmt.Println(`    "metrics": {"enabled": true, "namespace": "sigslot", "dump": true},`)
	fmt.Println(`    "demo": {"rounds": 3, "drop_peer_manager_after": 1, "pause": "500ms"}`)
	fmt.Println(`  }`)
}
