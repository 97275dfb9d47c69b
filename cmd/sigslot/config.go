package main

import (
	"os"
	"strconv"
	"strings"

	"github.com/dep2p/go-sigslot/config"
)

// ============================================================================
//                              环境变量（CLI 专用）
// ============================================================================

// 环境变量名
const (
	envPrefix   = "SIGSLOT_"
	envPreset   = "PRESET"
	envLogLevel = "LOG_LEVEL"
	envLogFile  = "LOG_FILE"
	envTrace    = "TRACE"
	envRounds   = "ROUNDS"
)

// envOverrides 从环境变量读取的覆盖项
type envOverrides struct {
	preset   string
	logLevel string
	logFile  string
	trace    *bool
	rounds   int
}

// readEnv 读取 SIGSLOT_* 环境变量
func readEnv() envOverrides {
	var e envOverrides
	e.preset = os.Getenv(envPrefix + envPreset)
	e.logLevel = os.Getenv(envPrefix + envLogLevel)
	e.logFile = os.Getenv(envPrefix + envLogFile)

	if v := os.Getenv(envPrefix + envTrace); v != "" {
		b := parseBool(v)
		e.trace = &b
	}
	if v := os.Getenv(envPrefix + envRounds); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			e.rounds = n
		}
	}
	return e
}

// apply 应用环境变量覆盖配置
//
// 环境变量优先级高于配置文件，但低于命令行参数。预设由调用方单独处理。
func (e envOverrides) apply(cfg *config.Config) {
	if e.logLevel != "" {
		cfg.Log.Level = e.logLevel
	}
	if e.logFile != "" {
		cfg.Log.File = e.logFile
	}
	if e.trace != nil {
		cfg.Dispatch.Trace = *e.trace
	}
	if e.rounds > 0 {
		cfg.Demo.Rounds = e.rounds
	}
}

// parseBool 解析布尔值字符串
func parseBool(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	return s == "true" || s == "1" || s == "yes" || s == "on"
}
