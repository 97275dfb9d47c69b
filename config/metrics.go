package config

import (
	"errors"
	"regexp"
)

// metricNamespace Prometheus 指标名前缀的合法格式
var metricNamespace = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// MetricsConfig 指标配置
type MetricsConfig struct {
	// Enabled 是否启用指标收集
	Enabled bool `json:"enabled" toml:"enabled" yaml:"enabled"`

	// Namespace 指标名前缀
	// 默认 "sigslot"
	Namespace string `json:"namespace" toml:"namespace" yaml:"namespace"`

	// Dump 退出前把指标快照打印到输出
	Dump bool `json:"dump" toml:"dump" yaml:"dump"`
}

// DefaultMetricsConfig 返回默认指标配置
func DefaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Enabled:   true,
		Namespace: "sigslot",
		Dump:      false,
	}
}

// Validate 验证指标配置
func (c MetricsConfig) Validate() error {
	if !c.Enabled {
		return nil
	}
	if !metricNamespace.MatchString(c.Namespace) {
		return errors.New("metrics: namespace must match [a-zA-Z_][a-zA-Z0-9_]*")
	}
	return nil
}
