package seqkit

// NewStub wraps a Bounded iterator so tests can replace its methods one by one.
// By default every method delegates to the wrapped iterator.
func NewStub[T any](it Bounded[T]) *Stub[T] {
	return &Stub[T]{
		Iterator:     it,
		StubInit:     it.Init,
		StubHasValue: it.HasValue,
		StubValue:    it.Value,
		StubNext:     it.Next,
		StubSize:     it.Size,
	}
}

type Stub[T any] struct {
	Iterator     Bounded[T]
	StubInit     func()
	StubHasValue func() bool
	StubValue    func() T
	StubNext     func()
	StubSize     func() int
}

func (m *Stub[T]) Init() { m.StubInit() }

func (m *Stub[T]) HasValue() bool { return m.StubHasValue() }

func (m *Stub[T]) Value() T { return m.StubValue() }

func (m *Stub[T]) Next() { m.StubNext() }

func (m *Stub[T]) Size() int { return m.StubSize() }

// Resetting stubs

func (m *Stub[T]) ResetInit() { m.StubInit = m.Iterator.Init }

func (m *Stub[T]) ResetHasValue() { m.StubHasValue = m.Iterator.HasValue }

func (m *Stub[T]) ResetValue() { m.StubValue = m.Iterator.Value }

func (m *Stub[T]) ResetNext() { m.StubNext = m.Iterator.Next }

func (m *Stub[T]) ResetSize() { m.StubSize = m.Iterator.Size }
