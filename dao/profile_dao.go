// api/dao/profile_dao.go
package dao

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	fixhub_errors "github.com/fixhub-app/fixhub/api/errors"
	logger "github.com/fixhub-app/fixhub/api/logging"
	"github.com/fixhub-app/fixhub/api/model"
)

// ProfileDAO reads and mutates the profiles table through the service-role
// database handle, so row-level access rules do not apply to its queries.
type ProfileDAO struct {
	DB *gorm.DB
}

func NewProfileDAO(db *gorm.DB) *ProfileDAO {
	return &ProfileDAO{DB: db}
}

// classifyLookupError maps driver errors onto the sentinel errors the access
// gate matches on.
func classifyLookupError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fixhub_errors.ErrProfileNotFound
	}
	if strings.Contains(err.Error(), "row-level security") {
		return fixhub_errors.ErrRowLevelSecurity
	}
	return err
}

// GetRole returns the role for a subject id.
func (dao *ProfileDAO) GetRole(ctx context.Context, userID string) (string, error) {
	var profile model.Profile
	err := dao.DB.WithContext(ctx).Select("role").First(&profile, "id = ?", userID).Error
	if err != nil {
		return "", classifyLookupError(err)
	}
	return profile.Role, nil
}

func (dao *ProfileDAO) GetByID(ctx context.Context, userID string) (*model.Profile, error) {
	var profile model.Profile
	err := dao.DB.WithContext(ctx).First(&profile, "id = ?", userID).Error
	if err != nil {
		return nil, classifyLookupError(err)
	}
	return &profile, nil
}

func (dao *ProfileDAO) FindByEmail(ctx context.Context, email string) (*model.Profile, error) {
	var profile model.Profile
	err := dao.DB.WithContext(ctx).First(&profile, "email = ?", email).Error
	if err != nil {
		return nil, classifyLookupError(err)
	}
	return &profile, nil
}

func (dao *ProfileDAO) Create(ctx context.Context, profile model.Profile) (string, error) {
	if profile.ID == "" {
		profile.ID = uuid.New().String()
	}
	if profile.Role == "" {
		profile.Role = model.RoleUser
	}
	profile.CreatedAt = time.Now()
	profile.UpdatedAt = profile.CreatedAt

	if err := dao.DB.WithContext(ctx).Create(&profile).Error; err != nil {
		logger.Error("Failed to create profile", zap.Error(err), zap.String("email", profile.Email))
		return "", fixhub_errors.ErrDatabaseOperation
	}
	logger.Info("Profile created", zap.String("profileID", profile.ID))
	return profile.ID, nil
}

// UpdateRole flips a profile between admin and user.
func (dao *ProfileDAO) UpdateRole(ctx context.Context, userID, role string) error {
	result := dao.DB.WithContext(ctx).
		Model(&model.Profile{}).
		Where("id = ?", userID).
		Updates(map[string]interface{}{"role": role, "updated_at": time.Now()})
	if result.Error != nil {
		logger.Error("Failed to update profile role", zap.Error(result.Error), zap.String("profileID", userID))
		return fixhub_errors.ErrDatabaseOperation
	}
	if result.RowsAffected == 0 {
		return fixhub_errors.ErrProfileNotFound
	}
	logger.Info("Profile role updated", zap.String("profileID", userID), zap.String("role", role))
	return nil
}

func (dao *ProfileDAO) List(ctx context.Context, limit, offset int) ([]*model.Profile, error) {
	var profiles []*model.Profile
	err := dao.DB.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&profiles).Error
	if err != nil {
		return nil, fixhub_errors.ErrDatabaseOperation
	}
	return profiles, nil
}
