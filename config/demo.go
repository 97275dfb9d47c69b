package config

import "errors"

// DemoConfig 演示场景配置
type DemoConfig struct {
	// Rounds 服务器 connect/disconnect 循环次数
	Rounds int `json:"rounds" toml:"rounds" yaml:"rounds"`

	// DropPeerManagerAfter 在第几轮之后销毁 PeerManager（0 表示不销毁）
	DropPeerManagerAfter int `json:"drop_peer_manager_after" toml:"drop_peer_manager_after" yaml:"drop_peer_manager_after"`

	// PrintGraph 每轮开始前打印连接图
	PrintGraph bool `json:"print_graph" toml:"print_graph" yaml:"print_graph"`

	// Pause 轮次之间的停顿
	Pause Duration `json:"pause" toml:"pause" yaml:"pause"`
}

// DefaultDemoConfig 返回默认演示配置
//
// 默认两轮，第一轮后销毁 PeerManager。
func DefaultDemoConfig() DemoConfig {
	return DemoConfig{
		Rounds:               2,
		DropPeerManagerAfter: 1,
		PrintGraph:           false,
		Pause:                0,
	}
}

// Validate 验证演示配置
func (c DemoConfig) Validate() error {
	if c.Rounds <= 0 {
		return errors.New("demo: rounds must be positive")
	}
	if c.DropPeerManagerAfter < 0 {
		return errors.New("demo: drop_peer_manager_after must not be negative")
	}
	if c.Pause < 0 {
		return errors.New("demo: pause must not be negative")
	}
	return nil
}
