package sigslot

// ============================================================================
//                              通道签名
// ============================================================================

// Void 无参数通道的参数类型
//
//	var disconnected sigslot.Emitter[sigslot.Void]
//	disconnected.Emit(sigslot.Void{})
type Void struct{}

// Pair 两个参数的通道签名
type Pair[T1, T2 any] struct {
	First  T1
	Second T2
}

// PairOf 构造 Pair
func PairOf[T1, T2 any](a T1, b T2) Pair[T1, T2] {
	return Pair[T1, T2]{First: a, Second: b}
}

// Triple 三个参数的通道签名
type Triple[T1, T2, T3 any] struct {
	First  T1
	Second T2
	Third  T3
}

// TripleOf 构造 Triple
func TripleOf[T1, T2, T3 any](a T1, b T2, c T3) Triple[T1, T2, T3] {
	return Triple[T1, T2, T3]{First: a, Second: b, Third: c}
}

// Drop 把无参函数适配为 Void 通道的目标
func Drop(fn func()) func(Void) {
	return func(Void) { fn() }
}

// Spread2 把两参数函数适配为 Pair 通道的目标
func Spread2[T1, T2 any](fn func(T1, T2)) func(Pair[T1, T2]) {
	return func(p Pair[T1, T2]) { fn(p.First, p.Second) }
}

// Spread3 把三参数函数适配为 Triple 通道的目标
func Spread3[T1, T2, T3 any](fn func(T1, T2, T3)) func(Triple[T1, T2, T3]) {
	return func(t Triple[T1, T2, T3]) { fn(t.First, t.Second, t.Third) }
}
