package repository

import (
	"context"

	"gorm.io/gorm"

	"uasz.sn/utilisateursapi/internal/entity"
	"uasz.sn/utilisateursapi/pkg/crud"
)

// join tables that reference roles
var holderTables = []string{"enseignant_roles", "etudiant_roles"}

type RoleRepository interface {
	crud.Repository[entity.Role]
	FindByIDs(ctx context.Context, ids []uint) ([]entity.Role, error)
	FindByLibelle(ctx context.Context, libelle string) (*entity.Role, error)
	Transaction(ctx context.Context, fn func(repo RoleRepository) error) error
}

type roleRepository struct {
	crud.Store[entity.Role]
}

func NewRoleRepository(db *gorm.DB) RoleRepository {
	return &roleRepository{Store: crud.NewStore[entity.Role](db)}
}

func (r *roleRepository) FindByIDs(ctx context.Context, ids []uint) ([]entity.Role, error) {
	var roles []entity.Role
	if len(ids) == 0 {
		return roles, nil
	}
	if err := r.DB(ctx).Where("id IN ?", ids).Order("id").Find(&roles).Error; err != nil {
		return nil, err
	}
	return roles, nil
}

func (r *roleRepository) FindByLibelle(ctx context.Context, libelle string) (*entity.Role, error) {
	var role entity.Role
	if err := r.DB(ctx).Where("libelle = ?", libelle).First(&role).Error; err != nil {
		return nil, err
	}
	return &role, nil
}

// Delete detaches the role from every holder before removing it.
func (r *roleRepository) Delete(ctx context.Context, role *entity.Role) error {
	db := r.DB(ctx)
	for _, table := range holderTables {
		if err := db.Exec("DELETE FROM "+table+" WHERE role_id = ?", role.ID).Error; err != nil {
			return err
		}
	}
	return db.Delete(role).Error
}

func (r *roleRepository) Transaction(ctx context.Context, fn func(repo RoleRepository) error) error {
	return r.DB(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewRoleRepository(tx))
	})
}
