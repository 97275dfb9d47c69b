// Package mocks 提供统一的测试 Mock 实现
//
// # 核心 Mock
//
//   - MockMonitor: 模拟 sigslot.Monitor，记录连接、断开、分发与关闭事件
//
// # 设计原则
//
// 1. 函数式注入: 每个 Mock 都支持通过 XxxFunc 字段注入自定义行为
// 2. 调用记录: 记录调用历史，便于验证测试行为
//
// # 使用示例
//
//	mon := mocks.NewMockMonitor()
//	e := sigslot.NewEmitter[int](sigslot.WithMonitor(mon))
//	r := sigslot.NewReceiver[int]()
//	sigslot.Connect(e, r)
//
//	if len(mon.ConnectCalls) != 1 {
//	    t.Error("expected 1 OnConnect call")
//	}
package mocks
