package crud

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

// Finder is the lookup half of Repository, enough to load a record by id.
type Finder[E any] interface {
	FindByID(ctx context.Context, id uint) (*E, error)
}

// Lister is the listing half of Repository.
type Lister[E any] interface {
	FindAll(ctx context.Context) ([]*E, error)
}

// Lifecycle carries what differs between resources for the shared read paths:
// the resource's not-found error and its entity to DTO mapping.
type Lifecycle[E any, D any] struct {
	NotFound func(id uint) error
	ToDTO    func(e *E) *D
}

// Load fetches a record, turning a missing row into the resource's NotFound.
func (l Lifecycle[E, D]) Load(ctx context.Context, repo Finder[E], id uint) (*E, error) {
	e, err := repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, l.NotFound(id)
		}
		return nil, err
	}
	return e, nil
}

func (l Lifecycle[E, D]) Get(ctx context.Context, repo Finder[E], id uint) (*D, error) {
	e, err := l.Load(ctx, repo, id)
	if err != nil {
		return nil, err
	}
	return l.ToDTO(e), nil
}

func (l Lifecycle[E, D]) List(ctx context.Context, repo Lister[E]) ([]D, error) {
	list, err := repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return l.MapAll(list), nil
}

// MapAll maps a slice, always returning a non-nil slice so it encodes as [].
func (l Lifecycle[E, D]) MapAll(list []*E) []D {
	out := make([]D, 0, len(list))
	for _, e := range list {
		if d := l.ToDTO(e); d != nil {
			out = append(out, *d)
		}
	}
	return out
}
