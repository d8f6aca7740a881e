package service

import (
	"context"

	"github.com/smartbyte/shopassist/internal/domain"
	"github.com/stretchr/testify/mock"
)

// MockKeyValueStore mocks the KeyValueStore interface
type MockKeyValueStore struct {
	mock.Mock
}

func (m *MockKeyValueStore) Get(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *MockKeyValueStore) Set(ctx context.Context, key, value string) error {
	args := m.Called(ctx, key, value)
	return args.Error(0)
}

func (m *MockKeyValueStore) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

// MockExchanger mocks the Exchanger interface
type MockExchanger struct {
	mock.Mock
}

func (m *MockExchanger) SendMessage(ctx context.Context, sessionID, message string) (*domain.ExchangeResponse, error) {
	args := m.Called(ctx, sessionID, message)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExchangeResponse), args.Error(1)
}

// MockAuthenticator mocks the Authenticator interface
type MockAuthenticator struct {
	mock.Mock
}

func (m *MockAuthenticator) Login(ctx context.Context, password string) (*domain.LoginResult, error) {
	args := m.Called(ctx, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LoginResult), args.Error(1)
}

// exchangerFunc adapts a function to the Exchanger interface, useful for
// observing controller state from inside an exchange
type exchangerFunc func(ctx context.Context, sessionID, message string) (*domain.ExchangeResponse, error)

func (f exchangerFunc) SendMessage(ctx context.Context, sessionID, message string) (*domain.ExchangeResponse, error) {
	return f(ctx, sessionID, message)
}
