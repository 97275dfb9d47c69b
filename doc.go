// Package sigslot 提供进程内、类型安全、同步的信号/槽机制
//
// sigslot 由三部分组成：
//
//   - Emitter: 发射端，按连接顺序把参数同步分发给所有已连接的对象
//   - Receiver: 接收端，绑定零个或一个调用目标（函数或对象方法）
//   - Connect / Disconnect: 建立、拆除连接的唯一入口，同时更新两端记录
//
// Emitter 与 Receiver 都实现 Callable 接口，因此 Emitter 可以作为另一个
// Emitter 的接收方被连接，构成转发链。
//
// # 快速开始
//
//	type Server struct {
//	    Connected *sigslot.Emitter[bool]
//	}
//
//	type PeerManager struct {
//	    OnConnected *sigslot.Receiver[bool]
//	    last        bool
//	}
//
//	func (p *PeerManager) serverConnected(ok bool) { p.last = ok }
//
//	srv := &Server{Connected: sigslot.NewEmitter[bool]()}
//	pm := &PeerManager{OnConnected: sigslot.NewReceiver[bool]()}
//	sigslot.BindMethod(pm.OnConnected, pm, (*PeerManager).serverConnected)
//
//	sigslot.Connect(srv.Connected, pm.OnConnected)
//	srv.Connected.Emit(true) // pm.last == true
//
// # 通道签名
//
// 通道（Channel）即类型参数 A。只有 A 完全相同的 Emitter 与 Receiver 才能
// 连接，签名不匹配在编译期被拒绝。无参数通道使用 Void，多参数通道使用
// Pair / Triple 元组，并可通过 Spread2 / Spread3 / Drop 适配普通函数。
//
// # 生命周期
//
// Go 没有析构函数，端点的"销毁"即 Close：
//
//   - 关闭 Emitter：从所有接收方的调用者集合中移除自身，并从上游 Emitter 断开
//   - 关闭 Receiver：从所有调用它的 Emitter 中移除自身
//
// Close 之后任何端点都不再持有对方的引用。Scope 代表拥有端点的
// 发布者/订阅者对象，Close 时按 LIFO 顺序关闭其拥有的全部端点。
//
// # 分发语义
//
//   - 同步：Emit 在所有接收方返回后才返回
//   - 有序：按连接顺序调用，重新连接的接收方追加到末尾
//   - 快照：分发基于进入 Emit 时的快照；分发过程中新连接的对象本轮不调用，
//     本轮尚未轮到就被断开或关闭的对象会被跳过
//   - 错误：目标返回的错误包装为 *DispatchError 并终止本轮分发；
//     panic 不做恢复，直接向 Emit 的调用方传播
//
// # 并发
//
// 本包不做任何同步。端点的连接、断开、关闭与分发必须在同一个 goroutine
// 中进行，或由调用方在外部加锁。重入（目标内再次 Emit）是允许的，但不检测环路。
package sigslot
