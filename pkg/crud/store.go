// Package crud holds the entity lifecycle shared by every registry resource:
// a gorm-backed generic store, the load/map helpers services build on, and the
// request binding helpers used by the HTTP handlers.
package crud

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repository is the persistence contract every resource repository provides.
type Repository[E any] interface {
	FindByID(ctx context.Context, id uint) (*E, error)
	FindAll(ctx context.Context) ([]*E, error)
	Create(ctx context.Context, e *E) error
	Save(ctx context.Context, e *E) error
	Delete(ctx context.Context, e *E) error
}

// Store implements Repository on top of gorm.
// Associations are never written implicitly; resources replace them explicitly.
type Store[E any] struct {
	db       *gorm.DB
	preloads []string
}

func NewStore[E any](db *gorm.DB, preloads ...string) Store[E] {
	return Store[E]{db: db, preloads: preloads}
}

// DB returns the underlying handle bound to ctx.
func (s Store[E]) DB(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx)
}

// Query returns a handle bound to ctx with the configured preloads applied.
func (s Store[E]) Query(ctx context.Context) *gorm.DB {
	q := s.db.WithContext(ctx)
	for _, p := range s.preloads {
		q = q.Preload(p)
	}
	return q
}

func (s Store[E]) FindByID(ctx context.Context, id uint) (*E, error) {
	var e E
	if err := s.Query(ctx).First(&e, id).Error; err != nil {
		return nil, err
	}
	return &e, nil
}

func (s Store[E]) FindAll(ctx context.Context) ([]*E, error) {
	var list []*E
	if err := s.Query(ctx).Order("id").Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (s Store[E]) Create(ctx context.Context, e *E) error {
	return s.db.WithContext(ctx).Omit(clause.Associations).Create(e).Error
}

func (s Store[E]) Save(ctx context.Context, e *E) error {
	return s.db.WithContext(ctx).Omit(clause.Associations).Save(e).Error
}

// Delete removes the row together with its many-to-many join rows.
func (s Store[E]) Delete(ctx context.Context, e *E) error {
	return s.db.WithContext(ctx).Select(clause.Associations).Delete(e).Error
}
