package repository

import (
	"context"

	"gorm.io/gorm"

	"uasz.sn/utilisateursapi/internal/entity"
	"uasz.sn/utilisateursapi/pkg/crud"
)

// VacataireRepository exposes both the raw rows and the active-only view
// most use cases are restricted to.
type VacataireRepository interface {
	crud.Repository[entity.Vacataire]
	FindActiveByID(ctx context.Context, id uint) (*entity.Vacataire, error)
	FindActiveByEmail(ctx context.Context, email string) (*entity.Vacataire, error)
	FindByEmail(ctx context.Context, email string) (*entity.Vacataire, error)
	FindAllActive(ctx context.Context) ([]*entity.Vacataire, error)
	Transaction(ctx context.Context, fn func(repo VacataireRepository) error) error
}

type vacataireRepository struct {
	crud.Store[entity.Vacataire]
}

func NewVacataireRepository(db *gorm.DB) VacataireRepository {
	return &vacataireRepository{Store: crud.NewStore[entity.Vacataire](db)}
}

func (r *vacataireRepository) active(ctx context.Context) *gorm.DB {
	return r.DB(ctx).Where("actif = ?", true)
}

func (r *vacataireRepository) FindActiveByID(ctx context.Context, id uint) (*entity.Vacataire, error) {
	var v entity.Vacataire
	if err := r.active(ctx).First(&v, id).Error; err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *vacataireRepository) FindActiveByEmail(ctx context.Context, email string) (*entity.Vacataire, error) {
	var v entity.Vacataire
	if err := r.active(ctx).Where("email = ?", email).First(&v).Error; err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *vacataireRepository) FindByEmail(ctx context.Context, email string) (*entity.Vacataire, error) {
	var v entity.Vacataire
	if err := r.DB(ctx).Where("email = ?", email).First(&v).Error; err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *vacataireRepository) FindAllActive(ctx context.Context) ([]*entity.Vacataire, error) {
	var list []*entity.Vacataire
	if err := r.active(ctx).Order("id").Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *vacataireRepository) Transaction(ctx context.Context, fn func(repo VacataireRepository) error) error {
	return r.DB(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewVacataireRepository(tx))
	})
}
