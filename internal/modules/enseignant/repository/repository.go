package repository

import (
	"context"

	"gorm.io/gorm"

	"uasz.sn/utilisateursapi/internal/entity"
	"uasz.sn/utilisateursapi/pkg/crud"
)

type EnseignantRepository interface {
	crud.Repository[entity.Enseignant]
	FindByEmail(ctx context.Context, email string) (*entity.Enseignant, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	SearchByNom(ctx context.Context, nom string) ([]*entity.Enseignant, error)
	ReplaceRoles(ctx context.Context, e *entity.Enseignant, roles []entity.Role) error
	Transaction(ctx context.Context, fn func(repo EnseignantRepository) error) error
}

type enseignantRepository struct {
	crud.Store[entity.Enseignant]
}

func NewEnseignantRepository(db *gorm.DB) EnseignantRepository {
	return &enseignantRepository{Store: crud.NewStore[entity.Enseignant](db, "Roles")}
}

func (r *enseignantRepository) FindByEmail(ctx context.Context, email string) (*entity.Enseignant, error) {
	var e entity.Enseignant
	if err := r.Query(ctx).Where("email = ?", email).First(&e).Error; err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *enseignantRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	if err := r.DB(ctx).Model(&entity.Enseignant{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// SearchByNom matches nom case-insensitively on a substring. Wildcards in
// nom are matched literally.
func (r *enseignantRepository) SearchByNom(ctx context.Context, nom string) ([]*entity.Enseignant, error) {
	var list []*entity.Enseignant
	if err := r.Query(ctx).
		Where("nom ILIKE ?", "%"+crud.EscapeLike(nom)+"%").
		Order("id").
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *enseignantRepository) ReplaceRoles(ctx context.Context, e *entity.Enseignant, roles []entity.Role) error {
	assoc := r.DB(ctx).Model(e).Association("Roles")
	if len(roles) == 0 {
		if err := assoc.Clear(); err != nil {
			return err
		}
		e.Roles = nil
		return nil
	}
	if err := assoc.Replace(roles); err != nil {
		return err
	}
	e.Roles = roles
	return nil
}

func (r *enseignantRepository) Transaction(ctx context.Context, fn func(repo EnseignantRepository) error) error {
	return r.DB(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewEnseignantRepository(tx))
	})
}
