// Package config 提供统一的配置管理
//
// 本包采用与组件对应的分块配置：
//   - 主 Config 结构体嵌入所有子配置
//   - 每个子配置在独立文件中定义，提供 DefaultXxxConfig 和 Validate
//   - 支持从 JSON 加载和保存配置
//   - 支持预设配置（default/debug/quiet）
//
// 使用示例：
//
//	// 创建默认配置
//	cfg := config.NewConfig()
//	cfg.Dispatch.Trace = true
//
//	// 应用预设
//	config.ApplyPreset(cfg, "debug")
//
//	// 从文件加载
//	cfg, err := config.LoadFile("sigslot.json")
package config

import "errors"

// Config 是 sigslot 应用的完整配置结构
//
// 配置按照功能模块组织：
//   - Log: 日志输出
//   - Dispatch: 分发追踪
//   - Metrics: 指标收集
//   - Demo: 演示场景
type Config struct {
	// Log 日志配置
	Log LogConfig `json:"log" toml:"log" yaml:"log"`

	// Dispatch 分发配置
	Dispatch DispatchConfig `json:"dispatch" toml:"dispatch" yaml:"dispatch"`

	// Metrics 指标配置
	Metrics MetricsConfig `json:"metrics" toml:"metrics" yaml:"metrics"`

	// Demo 演示场景配置
	Demo DemoConfig `json:"demo" toml:"demo" yaml:"demo"`
}

// NewConfig 创建默认配置
func NewConfig() *Config {
	return &Config{
		Log:      DefaultLogConfig(),
		Dispatch: DefaultDispatchConfig(),
		Metrics:  DefaultMetricsConfig(),
		Demo:     DefaultDemoConfig(),
	}
}

// Validate 验证配置的有效性
//
// 检查所有子配置是否有效，发现无效配置时返回第一个错误。
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	if err := c.Log.Validate(); err != nil {
		return err
	}
	if err := c.Dispatch.Validate(); err != nil {
		return err
	}
	if err := c.Metrics.Validate(); err != nil {
		return err
	}
	if err := c.Demo.Validate(); err != nil {
		return err
	}
	return nil
}
