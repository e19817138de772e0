package repository

import (
	"context"

	"gorm.io/gorm"

	"uasz.sn/utilisateursapi/internal/entity"
	"uasz.sn/utilisateursapi/pkg/crud"
)

type EtudiantRepository interface {
	crud.Repository[entity.Etudiant]
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	ExistsByMatricule(ctx context.Context, matricule string) (bool, error)
	ReplaceRoles(ctx context.Context, e *entity.Etudiant, roles []entity.Role) error
	Transaction(ctx context.Context, fn func(repo EtudiantRepository) error) error
}

type etudiantRepository struct {
	crud.Store[entity.Etudiant]
}

func NewEtudiantRepository(db *gorm.DB) EtudiantRepository {
	return &etudiantRepository{Store: crud.NewStore[entity.Etudiant](db, "Roles")}
}

func (r *etudiantRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return r.exists(ctx, "email = ?", email)
}

func (r *etudiantRepository) ExistsByMatricule(ctx context.Context, matricule string) (bool, error) {
	return r.exists(ctx, "matricule = ?", matricule)
}

func (r *etudiantRepository) exists(ctx context.Context, query string, arg any) (bool, error) {
	var count int64
	if err := r.DB(ctx).Model(&entity.Etudiant{}).Where(query, arg).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *etudiantRepository) ReplaceRoles(ctx context.Context, e *entity.Etudiant, roles []entity.Role) error {
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

func (r *etudiantRepository) Transaction(ctx context.Context, fn func(repo EtudiantRepository) error) error {
	return r.DB(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewEtudiantRepository(tx))
	})
}
