package adapters

import (
	"time"

	"gorm.io/gorm"

	"toysns/internal/feature/user/domain/entity"
)

// UserModel is the GORM model for the users table.
type UserModel struct {
	ID        uint           `gorm:"primaryKey"`
	UserName  string         `gorm:"uniqueIndex;size:255;not null"`
	Password  string         `gorm:"size:255;not null"`
	Role      string         `gorm:"size:16;not null;default:USER"`
	CreatedAt time.Time      `gorm:"not null"`
	UpdatedAt time.Time      `gorm:"not null"`
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

// TableName returns the table name for GORM.
func (UserModel) TableName() string {
	return "users"
}

// ToEntity converts the GORM model to a domain entity.
func (m *UserModel) ToEntity() *entity.User {
	u := &entity.User{
		ID:        m.ID,
		UserName:  m.UserName,
		Password:  m.Password,
		Role:      entity.Role(m.Role),
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
	if m.DeletedAt.Valid {
		t := m.DeletedAt.Time
		u.DeletedAt = &t
	}
	return u
}

// UserModelFromEntity converts a domain entity to a GORM model.
func UserModelFromEntity(u *entity.User) *UserModel {
	m := &UserModel{
		ID:        u.ID,
		UserName:  u.UserName,
		Password:  u.Password,
		Role:      string(u.Role),
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
	if m.Role == "" {
		m.Role = string(entity.RoleUser)
	}
	if u.DeletedAt != nil {
		m.DeletedAt = gorm.DeletedAt{Time: *u.DeletedAt, Valid: true}
	}
	return m
}
