package sigslot_test

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dep2p/go-sigslot"
	"github.com/dep2p/go-sigslot/tests/mocks"
)

// recorder 记录调用顺序
type recorder struct {
	calls []string
}

func (r *recorder) receiver(name string) *sigslot.Receiver[int] {
	rv := sigslot.NewReceiver[int](sigslot.WithName(name))
	rv.Bind(func(int) { r.calls = append(r.calls, name) })
	return rv
}

// ============================================================================
//                              基础功能测试
// ============================================================================

func TestEmitter_ZeroValue(t *testing.T) {
	var e sigslot.Emitter[int]

	assert.NoError(t, e.Emit(1))
	assert.Equal(t, 0, e.Len())
	assert.False(t, e.Closed())
	assert.Contains(t, e.Name(), "emitter@")
	assert.Equal(t, sigslot.KindEmitter, e.Kind())
}

func TestEmitter_OrderPreserved(t *testing.T) {
	rec := &recorder{}
	e := sigslot.NewEmitter[int]()
	r1, r2, r3 := rec.receiver("r1"), rec.receiver("r2"), rec.receiver("r3")

	sigslot.Connect(e, r1)
	sigslot.Connect(e, r2)
	sigslot.Connect(e, r3)

	require.NoError(t, e.Emit(7))
	assert.Equal(t, []string{"r1", "r2", "r3"}, rec.calls)
	assert.Equal(t, []string{"r1", "r2", "r3"}, e.Targets())
}

func TestEmitter_ReconnectAppends(t *testing.T) {
	rec := &recorder{}
	e := sigslot.NewEmitter[int]()
	r1, r2, r3 := rec.receiver("r1"), rec.receiver("r2"), rec.receiver("r3")

	sigslot.Connect(e, r1)
	sigslot.Connect(e, r2)
	sigslot.Connect(e, r3)
	sigslot.Disconnect(e, r2)
	sigslot.Connect(e, r2)

	require.NoError(t, e.Emit(0))
	assert.Equal(t, []string{"r1", "r3", "r2"}, rec.calls)
}

func TestEmitter_PassesArguments(t *testing.T) {
	e := sigslot.NewEmitter[string]()
	var got []string
	for i := 0; i < 3; i++ {
		r := sigslot.NewReceiver[string]()
		r.Bind(func(s string) { got = append(got, s) })
		sigslot.Connect(e, r)
	}

	require.NoError(t, e.Emit("x"))
	assert.Equal(t, []string{"x", "x", "x"}, got)
}

// ============================================================================
//                              错误传播测试
// ============================================================================

func TestEmitter_ErrorStopsPass(t *testing.T) {
	rec := &recorder{}
	boom := errors.New("boom")

	e := sigslot.NewEmitter[int](sigslot.WithName("e"))
	failing := sigslot.NewReceiver[int](sigslot.WithName("failing"))
	failing.BindErr(func(int) error { return boom })

	sigslot.Connect(e, rec.receiver("r1"))
	sigslot.Connect(e, failing)
	sigslot.Connect(e, rec.receiver("r3"))

	err := e.Emit(1)
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)

	var de *sigslot.DispatchError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, "e", de.Emitter)
	assert.Equal(t, "failing", de.Receiver)
	assert.Equal(t, 1, de.Index)
	assert.Equal(t, []string{"r1"}, rec.calls, "receivers after the failing one are skipped")
}

func TestEmitter_PanicPropagates(t *testing.T) {
	rec := &recorder{}
	mon := mocks.NewMockMonitor()

	e := sigslot.NewEmitter[int](sigslot.WithMonitor(mon))
	bad := sigslot.NewReceiver[int]()
	bad.Bind(func(int) { panic("target failed") })

	sigslot.Connect(e, bad)
	sigslot.Connect(e, rec.receiver("r2"))

	assert.PanicsWithValue(t, "target failed", func() { _ = e.Emit(1) })
	assert.Empty(t, rec.calls)

	require.Len(t, mon.DispatchCalls, 1)
	assert.True(t, mon.DispatchCalls[0].Done)
	assert.ErrorIs(t, mon.DispatchCalls[0].Err, sigslot.ErrPanicked)

	// 发射端在 panic 之后仍然可用
	bad.Unbind()
	require.NoError(t, e.Emit(2))
	assert.Equal(t, []string{"r2"}, rec.calls)
}

func TestEmitter_NestedDispatchErrorUnwraps(t *testing.T) {
	boom := errors.New("boom")
	e1 := sigslot.NewEmitter[int](sigslot.WithName("e1"))
	e2 := sigslot.NewEmitter[int](sigslot.WithName("e2"))
	r := sigslot.NewReceiver[int](sigslot.WithName("r"))
	r.BindErr(func(int) error { return boom })

	sigslot.Connect(e1, e2)
	sigslot.Connect(e2, r)

	err := e1.Emit(1)
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)

	var outer *sigslot.DispatchError
	require.ErrorAs(t, err, &outer)
	assert.Equal(t, "e1", outer.Emitter)
	assert.Equal(t, "e2", outer.Receiver)

	var inner *sigslot.DispatchError
	require.ErrorAs(t, outer.Err, &inner)
	assert.Equal(t, "e2", inner.Emitter)
	assert.Equal(t, "r", inner.Receiver)
}

// ============================================================================
//                              关闭测试
// ============================================================================

func TestEmitter_Close(t *testing.T) {
	e := sigslot.NewEmitter[int]()
	r1 := sigslot.NewReceiver[int]()
	r2 := sigslot.NewReceiver[int]()
	sigslot.Connect(e, r1)
	sigslot.Connect(e, r2)

	require.NoError(t, e.Close())

	assert.True(t, e.Closed())
	assert.Equal(t, 0, e.Len())
	assert.Empty(t, r1.Callers())
	assert.Empty(t, r2.Callers())
	assert.ErrorIs(t, e.Emit(1), sigslot.ErrClosed)
	assert.NoError(t, e.Close(), "second Close is a no-op")
}

func TestEmitter_CloseDetachesUpstream(t *testing.T) {
	e1 := sigslot.NewEmitter[int]()
	e2 := sigslot.NewEmitter[int]()
	r := sigslot.NewReceiver[int]()
	sigslot.Connect(e1, e2)
	sigslot.Connect(e2, r)

	require.NoError(t, e2.Close())

	assert.Equal(t, 0, e1.Len())
	assert.Empty(t, r.Callers())
	assert.NoError(t, e1.Emit(1))
}

func TestEmitter_ConnectAfterCloseIgnored(t *testing.T) {
	e := sigslot.NewEmitter[int]()
	r := sigslot.NewReceiver[int]()
	require.NoError(t, e.Close())

	sigslot.Connect(e, r)

	assert.Equal(t, 0, e.Len())
	assert.Empty(t, r.Callers())
}

// ============================================================================
//                              重入测试
// ============================================================================

func TestEmitter_ReentrantDisconnectSelf(t *testing.T) {
	rec := &recorder{}
	e := sigslot.NewEmitter[int]()

	self := sigslot.NewReceiver[int]()
	self.Bind(func(int) {
		rec.calls = append(rec.calls, "self")
		sigslot.Disconnect(e, self)
	})
	sigslot.Connect(e, self)
	sigslot.Connect(e, rec.receiver("r2"))

	require.NoError(t, e.Emit(1))
	require.NoError(t, e.Emit(2))
	assert.Equal(t, []string{"self", "r2", "r2"}, rec.calls)
}

func TestEmitter_ReentrantDisconnectSibling(t *testing.T) {
	rec := &recorder{}
	e := sigslot.NewEmitter[int]()
	r2 := rec.receiver("r2")

	r1 := sigslot.NewReceiver[int]()
	r1.Bind(func(int) {
		rec.calls = append(rec.calls, "r1")
		sigslot.Disconnect(e, r2)
	})
	sigslot.Connect(e, r1)
	sigslot.Connect(e, r2)
	sigslot.Connect(e, rec.receiver("r3"))

	require.NoError(t, e.Emit(1))
	assert.Equal(t, []string{"r1", "r3"}, rec.calls)
}

func TestEmitter_ReentrantConnect(t *testing.T) {
	rec := &recorder{}
	e := sigslot.NewEmitter[int]()
	late := rec.receiver("late")

	r1 := sigslot.NewReceiver[int]()
	r1.Bind(func(int) {
		rec.calls = append(rec.calls, "r1")
		sigslot.Connect(e, late)
	})
	sigslot.Connect(e, r1)

	require.NoError(t, e.Emit(1))
	assert.Equal(t, []string{"r1"}, rec.calls, "receivers connected mid-pass wait for the next pass")

	require.NoError(t, e.Emit(2))
	assert.Equal(t, []string{"r1", "r1", "late"}, rec.calls)
}

func TestEmitter_CloseDuringDispatch(t *testing.T) {
	rec := &recorder{}
	e := sigslot.NewEmitter[int]()

	closer := sigslot.NewReceiver[int]()
	closer.Bind(func(int) {
		rec.calls = append(rec.calls, "closer")
		_ = e.Close()
	})
	sigslot.Connect(e, closer)
	sigslot.Connect(e, rec.receiver("r2"))

	require.NoError(t, e.Emit(1))
	assert.Equal(t, []string{"closer"}, rec.calls)
	assert.Empty(t, closer.Callers())
}

func TestEmitter_ReentrantEmit(t *testing.T) {
	outer := sigslot.NewEmitter[int]()
	inner := sigslot.NewEmitter[int]()
	var got []int

	relay := sigslot.NewReceiver[int]()
	relay.BindErr(func(v int) error { return inner.Emit(v * 10) })
	sink := sigslot.NewReceiver[int]()
	sink.Bind(func(v int) { got = append(got, v) })

	sigslot.Connect(outer, relay)
	sigslot.Connect(inner, sink)

	require.NoError(t, outer.Emit(4))
	assert.Equal(t, []int{40}, got)
}

// ============================================================================
//                              追踪测试
// ============================================================================

func TestEmitter_TraceLogsPass(t *testing.T) {
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	t.Cleanup(func() { slog.SetDefault(prev) })

	e := sigslot.NewEmitter[int](sigslot.WithName("traced"), sigslot.WithTrace(true))
	sigslot.Connect(e, sigslot.NewReceiver[int]())

	require.NoError(t, e.Emit(1))

	out := buf.String()
	assert.Contains(t, out, "dispatch begin")
	assert.Contains(t, out, "dispatch end")
	assert.Contains(t, out, "emitter=traced")
	assert.Contains(t, out, "pass=")
}

// ============================================================================
//                              大规模扇出测试
// ============================================================================

func TestEmitter_LargeFanout(t *testing.T) {
	const n = 50000

	e := sigslot.NewEmitter[int]()
	receivers := make([]*sigslot.Receiver[int], n)
	calls := 0
	for i := range receivers {
		receivers[i] = sigslot.NewReceiver[int]()
		receivers[i].Bind(func(int) { calls++ })
		sigslot.Connect(e, receivers[i])
	}
	// 重复连接不改变序列
	sigslot.Connect(e, receivers[0])
	require.Equal(t, n, e.Len())

	start := time.Now()
	require.NoError(t, e.Emit(1))
	assert.Less(t, time.Since(start), time.Second)
	assert.Equal(t, n, calls)

	// 第一个对象在分发中断开后半部分
	calls = 0
	receivers[0].Bind(func(int) {
		calls++
		for _, r := range receivers[n/2:] {
			sigslot.Disconnect(e, r)
		}
	})
	start = time.Now()
	require.NoError(t, e.Emit(2))
	assert.Less(t, time.Since(start), time.Second)
	assert.Equal(t, n/2, calls)
	assert.Equal(t, n/2, e.Len())
	assert.False(t, sigslot.Connected(e, receivers[n-1]))
	assert.True(t, sigslot.Connected(e, receivers[n/2-1]))
}

func TestEmitter_EmptyPassReported(t *testing.T) {
	mon := mocks.NewMockMonitor()
	e := sigslot.NewEmitter[int](sigslot.WithMonitor(mon))

	require.NoError(t, e.Emit(1))

	require.Len(t, mon.DispatchCalls, 1)
	assert.Equal(t, 0, mon.DispatchCalls[0].Receivers)
	assert.True(t, mon.DispatchCalls[0].Done)
	assert.NoError(t, mon.DispatchCalls[0].Err)
}
