package sigslot

// ============================================================================
//                              选项
// ============================================================================

// Settings 端点设置（导出以供 Option 实现使用）
type Settings struct {
	// Name 诊断名称，出现在日志、错误和 Monitor 回调中
	Name string

	// Monitor 连接与分发事件的观察者
	Monitor Monitor

	// Trace 以 debug 级别记录每一轮分发
	Trace bool

	// Scope 创建后收养该端点的作用域
	Scope *Scope
}

// Option 端点选项函数类型
type Option func(*Settings)

// WithName 设置诊断名称
func WithName(name string) Option {
	return func(s *Settings) {
		s.Name = name
	}
}

// WithMonitor 设置 Monitor
func WithMonitor(m Monitor) Option {
	return func(s *Settings) {
		s.Monitor = m
	}
}

// WithTrace 开启或关闭分发追踪日志
func WithTrace(enabled bool) Option {
	return func(s *Settings) {
		s.Trace = enabled
	}
}

// InScope 创建后由 scope 收养
//
// 端点未显式设置 Monitor 时继承 scope 的 Monitor；scope 开启追踪时端点也开启。
// scope 已关闭时端点在创建后立即被关闭并记录一条警告：之后 Connect 无效，
// Emit 返回 ErrClosed。
func InScope(scope *Scope) Option {
	return func(s *Settings) {
		s.Scope = scope
	}
}

// newSettings 应用选项并合并作用域默认值
func newSettings(opts []Option) Settings {
	var s Settings
	for _, opt := range opts {
		if opt != nil {
			opt(&s)
		}
	}
	if s.Scope != nil {
		if s.Monitor == nil {
			s.Monitor = s.Scope.settings.Monitor
		}
		s.Trace = s.Trace || s.Scope.settings.Trace
	}
	return s
}
