package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// FromJSON 从 JSON 解析配置
//
// 未出现的字段保留默认值。
func FromJSON(data []byte) (*Config, error) {
	cfg := NewConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return cfg, nil
}

// FromTOML 从 TOML 解析配置
//
// 未出现的字段保留默认值。
func FromTOML(data []byte) (*Config, error) {
	cfg := NewConfig()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal toml config: %w", err)
	}
	return cfg, nil
}

// FromYAML 从 YAML 解析配置
//
// 未出现的字段保留默认值。
func FromYAML(data []byte) (*Config, error) {
	cfg := NewConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal yaml config: %w", err)
	}
	return cfg, nil
}

// ToJSON 序列化配置为带缩进的 JSON
func (c *Config) ToJSON() ([]byte, error) {
	if c == nil {
		return nil, errors.New("config is nil")
	}
	return json.MarshalIndent(c, "", "  ")
}

// LoadFile 从文件加载并验证配置
//
// 按扩展名选择格式：.toml 为 TOML，.yaml/.yml 为 YAML，其余按 JSON 解析。
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // G304: 用户指定的配置文件路径是预期行为
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg *Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		cfg, err = FromTOML(data)
	case ".yaml", ".yml":
		cfg, err = FromYAML(data)
	default:
		cfg, err = FromJSON(data)
	}
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

// ApplyPreset 应用预设配置
//
// 支持的预设：
//   - "default": 不做修改
//   - "debug": debug 日志 + 分发追踪 + 指标快照
//   - "quiet": 仅输出警告以上日志，关闭指标
func ApplyPreset(cfg *Config, presetName string) error {
	if cfg == nil {
		return errors.New("config is nil")
	}

	switch presetName {
	case "", "default":
		return nil
	case "debug":
		cfg.Log.Level = "debug"
		cfg.Dispatch.Trace = true
		cfg.Metrics.Enabled = true
		cfg.Metrics.Dump = true
		cfg.Demo.PrintGraph = true
		return nil
	case "quiet":
		cfg.Log.Level = "warn"
		cfg.Dispatch.Trace = false
		cfg.Metrics.Enabled = false
		cfg.Metrics.Dump = false
		return nil
	default:
		return fmt.Errorf("unknown preset: %s", presetName)
	}
}
