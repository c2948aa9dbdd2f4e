package usecase

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/rocketscienceinc/tictactoe3d/internal/service"
)

// MockchatProvider is a mock type for the chatProvider type
type MockchatProvider struct {
	mock.Mock
}

type MockchatProvider_Expecter struct {
	mock *mock.Mock
}

func (_m *MockchatProvider) EXPECT() *MockchatProvider_Expecter {
	return &MockchatProvider_Expecter{mock: &_m.Mock}
}

// Chat provides a mock function with given fields: ctx, kind
func (_m *MockchatProvider) Chat(ctx context.Context, kind string) (service.Chat, error) {
	ret := _m.Called(ctx, kind)

	var r0 service.Chat
	if rf, ok := ret.Get(0).(func(context.Context, string) service.Chat); ok {
		r0 = rf(ctx, kind)
	} else if ret.Get(0) != nil {
		r0 = ret.Get(0).(service.Chat)
	}

	var r1 error
	if rf, ok := ret.Get(1).(func(context.Context, string) error); ok {
		r1 = rf(ctx, kind)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// MockchatProvider_Chat_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'Chat'
type MockchatProvider_Chat_Call struct {
	*mock.Call
}

// Chat is a helper method to define mock.On call
//   - ctx context.Context
//   - kind string
func (_e *MockchatProvider_Expecter) Chat(ctx interface{}, kind interface{}) *MockchatProvider_Chat_Call {
	return &MockchatProvider_Chat_Call{Call: _e.mock.On("Chat", ctx, kind)}
}

func (_c *MockchatProvider_Chat_Call) Run(run func(ctx context.Context, kind string)) *MockchatProvider_Chat_Call {
	_c.Call.Run(func(args mock.Arguments) {
		run(args[0].(context.Context), args[1].(string))
	})
	return _c
}

func (_c *MockchatProvider_Chat_Call) Return(chat service.Chat, err error) *MockchatProvider_Chat_Call {
	_c.Call.Return(chat, err)
	return _c
}

// NewMockchatProvider creates a new instance of MockchatProvider. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewMockchatProvider(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockchatProvider {
	m := &MockchatProvider{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
