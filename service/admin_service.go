// api/service/admin_service.go
package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/fixhub-app/fixhub/api/audit"
	"github.com/fixhub-app/fixhub/api/dao"
	"github.com/fixhub-app/fixhub/api/db"
	fixhub_errors "github.com/fixhub-app/fixhub/api/errors"
	logger "github.com/fixhub-app/fixhub/api/logging"
	"github.com/fixhub-app/fixhub/api/model"
)

// IAdminService defines the interface for staff administration
type IAdminService interface {
	ListUsers(ctx context.Context, page, limit int) ([]*model.Profile, error)
	UpdateUserRole(ctx context.Context, actorID, userID, role string) (*model.Profile, error)
	QueryAuditLogs(ctx context.Context, from, to time.Time, userID, action string) ([]audit.AuditLog, error)
}

type AdminService struct {
	profileDAO *dao.ProfileDAO
	auditSvc   audit.Service
}

var _ IAdminService = &AdminService{}

func NewAdminService(profileDAO *dao.ProfileDAO, auditSvc audit.Service) *AdminService {
	return &AdminService{
		profileDAO: profileDAO,
		auditSvc:   auditSvc,
	}
}

func (s *AdminService) ListUsers(ctx context.Context, page, limit int) ([]*model.Profile, error) {
	return s.profileDAO.List(ctx, limit, (page-1)*limit)
}

func (s *AdminService) UpdateUserRole(ctx context.Context, actorID, userID, role string) (*model.Profile, error) {
	if role != model.RoleAdmin && role != model.RoleUser {
		return nil, fixhub_errors.ErrInvalidRole
	}

	if err := s.profileDAO.UpdateRole(ctx, userID, role); err != nil {
		return nil, err
	}

	// The redis copy is now stale; the next gate check must see the new role.
	if err := db.DeleteCachedProfile(ctx, userID); err != nil {
		logger.Warn("Failed to evict cached profile after role change",
			zap.Error(err),
			zap.String("userID", userID))
	}

	if err := s.auditSvc.LogEvent(ctx, audit.AuditLog{
		UserID:   actorID,
		Action:   audit.ActionRoleChange,
		Resource: "profiles/" + userID,
		Allowed:  true,
		Detail:   "role set to " + role,
	}); err != nil {
		logger.Error("Failed to record role change audit event", zap.Error(err))
	}

	return s.profileDAO.GetByID(ctx, userID)
}

func (s *AdminService) QueryAuditLogs(ctx context.Context, from, to time.Time, userID, action string) ([]audit.AuditLog, error) {
	return s.auditSvc.QueryLogs(ctx, from, to, userID, action)
}
