package service

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"uasz.sn/utilisateursapi/internal/entity"
	"uasz.sn/utilisateursapi/internal/modules/role/dto"
	"uasz.sn/utilisateursapi/internal/modules/role/mapper"
	"uasz.sn/utilisateursapi/internal/modules/role/repository"
	"uasz.sn/utilisateursapi/pkg/apperror"
	"uasz.sn/utilisateursapi/pkg/crud"
)

const resource = "role"

type RoleService interface {
	Create(ctx context.Context, req dto.RoleDTO) (*dto.RoleDTO, error)
	GetByID(ctx context.Context, id uint) (*dto.RoleDTO, error)
	List(ctx context.Context) ([]dto.RoleDTO, error)
	Update(ctx context.Context, id uint, req dto.RoleDTO) (*dto.RoleDTO, error)
	Delete(ctx context.Context, id uint) error
	Resolver
}

// Resolver turns role ids sent by clients into persisted roles.
type Resolver interface {
	Resolve(ctx context.Context, ids []uint) ([]entity.Role, error)
}

type roleService struct {
	repo      repository.RoleRepository
	lifecycle crud.Lifecycle[entity.Role, dto.RoleDTO]
}

func NewRoleService(repo repository.RoleRepository) RoleService {
	return &roleService{
		repo: repo,
		lifecycle: crud.Lifecycle[entity.Role, dto.RoleDTO]{
			NotFound: notFound,
			ToDTO:    mapper.ToDTO,
		},
	}
}

func notFound(id uint) error {
	return apperror.NotFound(resource, "Rôle introuvable avec l'id %d", id)
}

func (s *roleService) Create(ctx context.Context, req dto.RoleDTO) (out *dto.RoleDTO, err error) {
	defer func() { crud.Track(resource, "create", err) }()

	role := mapper.ToEntity(&req)
	role.ID = 0
	if strings.TrimSpace(role.Libelle) == "" {
		return nil, apperror.Validation(resource, "Le libellé du rôle ne peut pas être vide")
	}

	err = s.repo.Transaction(ctx, func(repo repository.RoleRepository) error {
		if err := ensureLibelleFree(ctx, repo, role.Libelle, 0); err != nil {
			return err
		}
		return repo.Create(ctx, role)
	})
	if err = crud.Duplicate(err, func() error { return duplicateLibelle(role.Libelle) }); err != nil {
		return nil, err
	}

	log.Info().Uint("role_id", role.ID).Str("libelle", role.Libelle).Msg("role created")
	return mapper.ToDTO(role), nil
}

func (s *roleService) GetByID(ctx context.Context, id uint) (*dto.RoleDTO, error) {
	return s.lifecycle.Get(ctx, s.repo, id)
}

func (s *roleService) List(ctx context.Context) ([]dto.RoleDTO, error) {
	return s.lifecycle.List(ctx, s.repo)
}

func (s *roleService) Update(ctx context.Context, id uint, req dto.RoleDTO) (out *dto.RoleDTO, err error) {
	defer func() { crud.Track(resource, "update", err) }()

	var role *entity.Role
	var libelle string
	err = s.repo.Transaction(ctx, func(repo repository.RoleRepository) error {
		existing, err := s.lifecycle.Load(ctx, repo, id)
		if err != nil {
			return err
		}
		mapper.UpdateFromDTO(&req, existing)
		libelle = existing.Libelle
		if strings.TrimSpace(existing.Libelle) == "" {
			return apperror.Validation(resource, "Le libellé du rôle ne peut pas être vide")
		}
		if err := ensureLibelleFree(ctx, repo, existing.Libelle, id); err != nil {
			return err
		}
		role = existing
		return repo.Save(ctx, existing)
	})
	if err = crud.Duplicate(err, func() error { return duplicateLibelle(libelle) }); err != nil {
		return nil, err
	}

	log.Info().Uint("role_id", id).Msg("role updated")
	return mapper.ToDTO(role), nil
}

func (s *roleService) Delete(ctx context.Context, id uint) (err error) {
	defer func() { crud.Track(resource, "delete", err) }()

	err = s.repo.Transaction(ctx, func(repo repository.RoleRepository) error {
		role, err := s.lifecycle.Load(ctx, repo, id)
		if err != nil {
			return err
		}
		return repo.Delete(ctx, role)
	})
	if err != nil {
		return err
	}

	log.Info().Uint("role_id", id).Msg("role deleted")
	return nil
}

// Resolve loads every role in ids. An unknown id is a validation error.
func (s *roleService) Resolve(ctx context.Context, ids []uint) ([]entity.Role, error) {
	unique := dedupe(ids)
	if len(unique) == 0 {
		return []entity.Role{}, nil
	}

	roles, err := s.repo.FindByIDs(ctx, unique)
	if err != nil {
		return nil, err
	}
	if len(roles) != len(unique) {
		found := make(map[uint]bool, len(roles))
		for _, r := range roles {
			found[r.ID] = true
		}
		for _, id := range unique {
			if !found[id] {
				return nil, apperror.Validation(resource, "Rôle inconnu: %d", id)
			}
		}
	}
	return roles, nil
}

// ensureLibelleFree fails when another role (id != self) already uses libelle.
func ensureLibelleFree(ctx context.Context, repo repository.RoleRepository, libelle string, self uint) error {
	existing, err := repo.FindByLibelle(ctx, libelle)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}
	if existing.ID != self {
		return duplicateLibelle(libelle)
	}
	return nil
}

func duplicateLibelle(libelle string) error {
	return apperror.Validation(resource, "Un rôle avec le libellé %s existe déjà", libelle)
}

func dedupe(ids []uint) []uint {
	seen := make(map[uint]bool, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if id == 0 || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
