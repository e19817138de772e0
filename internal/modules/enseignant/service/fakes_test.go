package service

import (
	"context"

	"gorm.io/gorm"

	"uasz.sn/utilisateursapi/internal/entity"
	annuaire "uasz.sn/utilisateursapi/internal/modules/annuaire/service"
	"uasz.sn/utilisateursapi/internal/modules/enseignant/repository"
	"uasz.sn/utilisateursapi/internal/modules/enseignant/repository/repositorytest"
	"uasz.sn/utilisateursapi/pkg/apperror"
)

// fakeRoles knows roles 1..n.
type fakeRoles struct {
	n uint
}

func (f fakeRoles) Resolve(_ context.Context, ids []uint) ([]entity.Role, error) {
	out := []entity.Role{}
	for _, id := range ids {
		if id == 0 || id > f.n {
			return nil, apperror.Validation("role", "Rôle inconnu: %d", id)
		}
		out = append(out, entity.Role{ID: id})
	}
	return out, nil
}

type recordingIndexer struct {
	indexed []annuaire.Entry
	removed []string
}

func (r *recordingIndexer) Index(_ context.Context, entry annuaire.Entry) error {
	r.indexed = append(r.indexed, entry)
	return nil
}

func (r *recordingIndexer) Remove(_ context.Context, kind annuaire.Kind, id uint) error {
	r.removed = append(r.removed, annuaire.DocumentID(kind, id))
	return nil
}

// racingRepo behaves as if a concurrent request took the email between the
// existence check and the write: the unique index rejects every write.
type racingRepo struct {
	*repositorytest.Memory
}

func (r racingRepo) Create(context.Context, *entity.Enseignant) error { return gorm.ErrDuplicatedKey }
func (r racingRepo) Save(context.Context, *entity.Enseignant) error   { return gorm.ErrDuplicatedKey }

func (r racingRepo) Transaction(_ context.Context, fn func(repo repository.EnseignantRepository) error) error {
	return fn(r)
}
