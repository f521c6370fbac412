// Package adapters provides the repository implementations for the user feature.
package adapters

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"toysns/internal/feature/user/domain/entity"
	"toysns/internal/feature/user/usecase"
	platformdb "toysns/internal/platform/db"
	"toysns/internal/shared/apperr"
)

// userGorm is the GORM implementation of usecase.UserRepository.
type userGorm struct {
	db *gorm.DB
}

var _ usecase.UserRepository = (*userGorm)(nil)

// NewUserRepository creates a user repository backed by db.
func NewUserRepository(db *gorm.DB) *userGorm {
	return &userGorm{db: db}
}

// Create inserts u and fills in its generated fields.
// A taken user name is reported as DUPLICATED_USER_NAME.
func (r *userGorm) Create(ctx context.Context, u *entity.User) error {
	if u == nil {
		return errors.New("user is nil")
	}
	m := UserModelFromEntity(u)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		if platformdb.IsUniqueViolation(err) {
			return apperr.New(apperr.CodeDuplicatedUserName, "%s is duplicated", u.UserName)
		}
		return err
	}
	*u = *m.ToEntity()
	return nil
}

// FindByUserName returns the user with the given name.
// Soft-deleted users are still returned so that callers can decide how to treat them.
func (r *userGorm) FindByUserName(ctx context.Context, userName string) (*entity.User, error) {
	var m UserModel
	err := r.db.WithContext(ctx).Unscoped().Where("user_name = ?", userName).First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.CodeUserNotFound, "%s not founded", userName)
		}
		return nil, err
	}
	return m.ToEntity(), nil
}
