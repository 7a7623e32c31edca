// test/mock/auth.go
package mock

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/fixhub-app/fixhub/api/auth"
	"github.com/fixhub-app/fixhub/api/model"
)

// MockSessions is a mock implementation of auth.Sessions
type MockSessions struct {
	mock.Mock
}

func (m *MockSessions) GetSession(ctx context.Context, token string) (auth.Session, error) {
	args := m.Called(ctx, token)
	return args.Get(0).(auth.Session), args.Error(1)
}

func (m *MockSessions) GetUser(ctx context.Context, token string) (model.Profile, error) {
	args := m.Called(ctx, token)
	return args.Get(0).(model.Profile), args.Error(1)
}

func (m *MockSessions) SignInWithPassword(ctx context.Context, email, password string) (string, auth.Session, error) {
	args := m.Called(ctx, email, password)
	return args.String(0), args.Get(1).(auth.Session), args.Error(2)
}

func (m *MockSessions) SignOut(ctx context.Context, token string) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

// MockProfileReader is a mock implementation of auth.ProfileReader
type MockProfileReader struct {
	mock.Mock
}

func (m *MockProfileReader) GetRole(ctx context.Context, userID string) (string, error) {
	args := m.Called(ctx, userID)
	return args.String(0), args.Error(1)
}
