// Package adapters provides the repository implementations for the post feature.
package adapters

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"toysns/internal/feature/post/domain/entity"
	"toysns/internal/feature/post/usecase"
	"toysns/internal/shared/apperr"
	"toysns/internal/shared/pagination"
)

// sortColumns maps API sort fields to columns. Anything else sorts by id.
var sortColumns = map[string]string{
	"id":        "id",
	"title":     "title",
	"createdAt": "created_at",
	"updatedAt": "updated_at",
}

// postGorm is the GORM implementation of usecase.PostRepository.
// It has no notion of ownership; the usecase checks it.
type postGorm struct {
	db *gorm.DB
}

var _ usecase.PostRepository = (*postGorm)(nil)

// NewPostRepository creates a post repository backed by db.
func NewPostRepository(db *gorm.DB) *postGorm {
	return &postGorm{db: db}
}

// withOwner preloads the owner, including soft-deleted owners.
func withOwner(db *gorm.DB) *gorm.DB {
	return db.Preload("User", func(tx *gorm.DB) *gorm.DB {
		return tx.Unscoped()
	})
}

// Save inserts p when it has no id and otherwise writes its mutable fields.
func (r *postGorm) Save(ctx context.Context, p *entity.Post) error {
	if p == nil {
		return errors.New("post is nil")
	}
	m := PostModelFromEntity(p)

	if p.ID == 0 {
		if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(m).Error; err != nil {
			return err
		}
		p.ID = m.ID
		p.CreatedAt = m.CreatedAt
		p.UpdatedAt = m.UpdatedAt
		return nil
	}

	if p.UpdatedAt.IsZero() {
		p.UpdatedAt = time.Now()
	}
	res := r.db.WithContext(ctx).Model(&PostModel{}).Where("id = ?", p.ID).Updates(map[string]any{
		"title":      p.Title,
		"body":       p.Body,
		"updated_at": p.UpdatedAt,
		"deleted_at": m.DeletedAt,
	})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperr.New(apperr.CodePostNotFound, "%d not founded", p.ID)
	}
	return nil
}

// FindByID returns the live post with the given id, or POST_NOT_FOUND.
func (r *postGorm) FindByID(ctx context.Context, id uint) (*entity.Post, error) {
	var m PostModel
	if err := withOwner(r.db.WithContext(ctx)).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.CodePostNotFound, "%d not founded", id)
		}
		return nil, err
	}
	return m.ToEntity(), nil
}

// FindAll returns one page of live posts.
func (r *postGorm) FindAll(ctx context.Context, req pagination.Request) (pagination.Page[entity.Post], error) {
	return r.findPage(ctx, req, func(db *gorm.DB) *gorm.DB { return db })
}

// FindAllByUserID returns one page of the live posts owned by userID.
func (r *postGorm) FindAllByUserID(ctx context.Context, userID uint, req pagination.Request) (pagination.Page[entity.Post], error) {
	return r.findPage(ctx, req, func(db *gorm.DB) *gorm.DB {
		return db.Where("user_id = ?", userID)
	})
}

func (r *postGorm) findPage(ctx context.Context, req pagination.Request, filter func(*gorm.DB) *gorm.DB) (pagination.Page[entity.Post], error) {
	var total int64
	if err := filter(r.db.WithContext(ctx).Model(&PostModel{})).Count(&total).Error; err != nil {
		return pagination.Page[entity.Post]{}, err
	}

	var models []PostModel
	q := filter(withOwner(r.db.WithContext(ctx))).
		Order(orderBy(req)).
		Offset(req.Offset()).
		Limit(req.Size)
	if err := q.Find(&models).Error; err != nil {
		return pagination.Page[entity.Post]{}, err
	}

	posts := make([]entity.Post, 0, len(models))
	for i := range models {
		posts = append(posts, *models[i].ToEntity())
	}
	return pagination.NewPage(posts, req, total), nil
}

// orderBy builds the ORDER BY clause for req. Ties break on id ascending.
func orderBy(req pagination.Request) clause.OrderBy {
	col, ok := sortColumns[req.Sort]
	if !ok {
		col = "id"
	}
	columns := []clause.OrderByColumn{{
		Column: clause.Column{Name: col},
		Desc:   req.Direction == pagination.Desc,
	}}
	if col != "id" {
		columns = append(columns, clause.OrderByColumn{Column: clause.Column{Name: "id"}})
	}
	return clause.OrderBy{Columns: columns}
}
