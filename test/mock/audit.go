// test/mock/audit.go
package mock

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/fixhub-app/fixhub/api/audit"
)

// MockAuditService is a mock implementation of audit.Service
type MockAuditService struct {
	mock.Mock
}

func (m *MockAuditService) LogEvent(ctx context.Context, log audit.AuditLog) error {
	args := m.Called(ctx, log)
	return args.Error(0)
}

func (m *MockAuditService) QueryLogs(ctx context.Context, from, to time.Time, userID, action string) ([]audit.AuditLog, error) {
	args := m.Called(ctx, from, to, userID, action)
	return args.Get(0).([]audit.AuditLog), args.Error(1)
}

// NopAuditService discards every event; handy where the test does not care
// about audit output.
type NopAuditService struct{}

func (NopAuditService) LogEvent(ctx context.Context, log audit.AuditLog) error {
	return nil
}

func (NopAuditService) QueryLogs(ctx context.Context, from, to time.Time, userID, action string) ([]audit.AuditLog, error) {
	return nil, nil
}
