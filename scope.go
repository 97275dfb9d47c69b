package sigslot

import (
	"io"

	"go.uber.org/multierr"
)

// ============================================================================
//                              Scope 实现
// ============================================================================

// Scope 端点的拥有者
//
// Scope 对应持有 Emitter / Receiver 字段的发布者或订阅者对象：对象销毁时
// 关闭其 Scope，所拥有的端点按收养的逆序关闭，连接随之从两端拆除。
// Scope 也实现 io.Closer，可以被另一个 Scope 收养形成层级。
type Scope struct {
	name     string
	settings Settings
	closers  []io.Closer
	closed   bool
}

var _ io.Closer = (*Scope)(nil)

// NewScope 创建作用域
//
// opts 中的 Monitor 与 Trace 作为通过 InScope 创建的端点的默认值；
// opts 中的 InScope 表示本作用域被父作用域收养。
func NewScope(name string, opts ...Option) *Scope {
	s := &Scope{name: name}
	s.settings = newSettings(opts)
	s.settings.Name = name
	if parent := s.settings.Scope; parent != nil {
		s.settings.Scope = nil
		adoptInto(parent, name, s)
	}
	return s
}

// Name 返回作用域名称
func (s *Scope) Name() string {
	return s.name
}

// Adopt 收养 c，Scope 关闭时一并关闭
//
// 作用域已关闭时立即关闭 c 并返回 ErrScopeClosed（与 c.Close 的错误合并）。
func (s *Scope) Adopt(c io.Closer) error {
	if c == nil {
		return nil
	}
	if s.closed {
		return multierr.Append(ErrScopeClosed, c.Close())
	}
	s.closers = append(s.closers, c)
	return nil
}

// OnClose 注册关闭回调
func (s *Scope) OnClose(fn func() error) error {
	if fn == nil {
		return nil
	}
	return s.Adopt(closerFunc(fn))
}

// Closed 报告作用域是否已关闭
func (s *Scope) Closed() bool {
	return s.closed
}

// Len 返回被收养对象数量
func (s *Scope) Len() int {
	return len(s.closers)
}

// Close 按收养的逆序关闭所有对象，合并返回全部错误
//
// Close 可以多次调用，只有第一次生效。
func (s *Scope) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true

	closers := s.closers
	s.closers = nil

	var err error
	for i := len(closers) - 1; i >= 0; i-- {
		err = multierr.Append(err, closers[i].Close())
	}

	logger.Debug("scope closed", "scope", s.name, "owned", len(closers), "err", err)
	return err
}

// Link 连接图中的一条边
type Link struct {
	From string
	To   string
}

// Links 返回作用域内（含嵌套作用域）所有发射端的出边，按收养与连接顺序
func (s *Scope) Links() []Link {
	var links []Link
	for _, c := range s.closers {
		switch v := c.(type) {
		case *Scope:
			links = append(links, v.Links()...)
		case Endpoint:
			if v.Kind() != KindEmitter {
				continue
			}
			for _, to := range v.Targets() {
				links = append(links, Link{From: v.Name(), To: to})
			}
		}
	}
	return links
}

// Endpoints 返回直接收养的端点
func (s *Scope) Endpoints() []Endpoint {
	var eps []Endpoint
	for _, c := range s.closers {
		if ep, ok := c.(Endpoint); ok {
			eps = append(eps, ep)
		}
	}
	return eps
}

type closerFunc func() error

func (f closerFunc) Close() error {
	return f()
}
