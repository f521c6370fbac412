package adapters

import (
	"time"

	"gorm.io/gorm"

	"toysns/internal/feature/post/domain/entity"
	useradapters "toysns/internal/feature/user/adapters"
)

// PostModel is the GORM model for the posts table.
type PostModel struct {
	ID        uint                   `gorm:"primaryKey"`
	Title     string                 `gorm:"size:255;not null"`
	Body      string                 `gorm:"type:text;not null"`
	UserID    uint                   `gorm:"not null;index"`
	User      useradapters.UserModel `gorm:"foreignKey:UserID"`
	CreatedAt time.Time              `gorm:"not null"`
	UpdatedAt time.Time              `gorm:"not null"`
	DeletedAt gorm.DeletedAt         `gorm:"index"`
}

// TableName returns the table name for GORM.
func (PostModel) TableName() string {
	return "posts"
}

// ToEntity converts the GORM model, including its preloaded owner, to a domain entity.
func (m *PostModel) ToEntity() *entity.Post {
	p := &entity.Post{
		ID:        m.ID,
		Title:     m.Title,
		Body:      m.Body,
		User:      *m.User.ToEntity(),
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
	if m.DeletedAt.Valid {
		t := m.DeletedAt.Time
		p.DeletedAt = &t
	}
	return p
}

// PostModelFromEntity converts a domain entity to a GORM model. The owner is
// referenced by id only.
func PostModelFromEntity(p *entity.Post) *PostModel {
	m := &PostModel{
		ID:        p.ID,
		Title:     p.Title,
		Body:      p.Body,
		UserID:    p.User.ID,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
	if p.DeletedAt != nil {
		m.DeletedAt = gorm.DeletedAt{Time: *p.DeletedAt, Valid: true}
	}
	return m
}
