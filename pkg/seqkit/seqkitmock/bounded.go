// Package seqkitmock is a gomock double of seqkit.Bounded.
//
// mockgen does not support type parameters in the version this module uses,
// so the double is kept in the shape mockgen would produce.
package seqkitmock

import (
	"reflect"

	"github.com/golang/mock/gomock"

	"go.llib.dev/seqgen/pkg/seqkit"
)

var _ seqkit.Bounded[int] = &MockBounded[int]{}

// MockBounded is a mock of the seqkit.Bounded interface.
type MockBounded[T any] struct {
	ctrl     *gomock.Controller
	recorder *MockBoundedMockRecorder[T]
}

// MockBoundedMockRecorder is the mock recorder for MockBounded.
type MockBoundedMockRecorder[T any] struct {
	mock *MockBounded[T]
}

// NewMockBounded creates a new mock instance.
func NewMockBounded[T any](ctrl *gomock.Controller) *MockBounded[T] {
	mock := &MockBounded[T]{ctrl: ctrl}
	mock.recorder = &MockBoundedMockRecorder[T]{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockBounded[T]) EXPECT() *MockBoundedMockRecorder[T] {
	return m.recorder
}

// Init mocks base method.
func (m *MockBounded[T]) Init() {
	m.ctrl.T.Helper()
	m.ctrl.Call(m, "Init")
}

// Init indicates an expected call of Init.
func (mr *MockBoundedMockRecorder[T]) Init() *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Init", reflect.TypeOf((*MockBounded[T])(nil).Init))
}

// HasValue mocks base method.
func (m *MockBounded[T]) HasValue() bool {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "HasValue")
	ret0, _ := ret[0].(bool)
	return ret0
}

// HasValue indicates an expected call of HasValue.
func (mr *MockBoundedMockRecorder[T]) HasValue() *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "HasValue", reflect.TypeOf((*MockBounded[T])(nil).HasValue))
}

// Value mocks base method.
func (m *MockBounded[T]) Value() T {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Value")
	ret0, _ := ret[0].(T)
	return ret0
}

// Value indicates an expected call of Value.
func (mr *MockBoundedMockRecorder[T]) Value() *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Value", reflect.TypeOf((*MockBounded[T])(nil).Value))
}

// Next mocks base method.
func (m *MockBounded[T]) Next() {
	m.ctrl.T.Helper()
	m.ctrl.Call(m, "Next")
}

// Next indicates an expected call of Next.
func (mr *MockBoundedMockRecorder[T]) Next() *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Next", reflect.TypeOf((*MockBounded[T])(nil).Next))
}

// Size mocks base method.
func (m *MockBounded[T]) Size() int {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Size")
	ret0, _ := ret[0].(int)
	return ret0
}

// Size indicates an expected call of Size.
func (mr *MockBoundedMockRecorder[T]) Size() *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Size", reflect.TypeOf((*MockBounded[T])(nil).Size))
}
