package sigslot

// Monitor 观察连接与分发事件
//
// 连接相关回调总是发给 Emitter 一侧配置的 Monitor。实现不得在回调中修改连接图。
type Monitor interface {
	// OnConnect 建立了一条新连接
	OnConnect(emitter, target string)

	// OnDisconnect 一条连接被移除（显式断开或端点关闭）
	OnDisconnect(emitter, target string)

	// OnDispatch 一轮分发开始，返回的函数在本轮结束时以结果调用
	//
	// 没有连接对象的空分发同样报告，receivers 为 0。
	OnDispatch(emitter string, receivers int) func(err error)

	// OnClose 端点被关闭
	OnClose(name string, kind Kind)
}

// nopMonitor 空实现
type nopMonitor struct{}

func (nopMonitor) OnConnect(string, string)    {}
func (nopMonitor) OnDisconnect(string, string) {}
func (nopMonitor) OnClose(string, Kind)        {}

func (nopMonitor) OnDispatch(string, int) func(error) {
	return func(error) {}
}
