package config

// DispatchConfig 分发配置
type DispatchConfig struct {
	// Trace 以 debug 级别记录每一轮分发（需要 Log.Level 为 debug 才可见）
	Trace bool `json:"trace" toml:"trace" yaml:"trace"`
}

// DefaultDispatchConfig 返回默认分发配置
func DefaultDispatchConfig() DispatchConfig {
	return DispatchConfig{
		Trace: false,
	}
}

// Validate 验证分发配置
func (c DispatchConfig) Validate() error {
	return nil
}
