package config

import (
	"fmt"

	"github.com/dep2p/go-sigslot/pkg/lib/log"
)

// LogConfig 日志配置
type LogConfig struct {
	// Level 日志级别（debug/info/warn/error）
	Level string `json:"level" toml:"level" yaml:"level"`

	// Format 输出格式（text/json）
	Format string `json:"format" toml:"format" yaml:"format"`

	// File 日志文件路径，空时输出到 stderr
	File string `json:"file,omitempty" toml:"file,omitempty" yaml:"file,omitempty"`
}

// DefaultLogConfig 返回默认日志配置
func DefaultLogConfig() LogConfig {
	return LogConfig{
		Level:  "info",
		Format: log.FormatText,
	}
}

// Validate 验证日志配置
func (c LogConfig) Validate() error {
	if _, err := log.ParseLevel(c.Level); err != nil {
		return fmt.Errorf("log: %w", err)
	}
	switch c.Format {
	case "", log.FormatText, log.FormatJSON:
	default:
		return fmt.Errorf("log: unknown format %q", c.Format)
	}
	return nil
}
