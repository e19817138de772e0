package service

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"gorm.io/datatypes"

	"uasz.sn/utilisateursapi/internal/entity"
	annuaire "uasz.sn/utilisateursapi/internal/modules/annuaire/service"
	"uasz.sn/utilisateursapi/internal/modules/enseignant/dto"
	"uasz.sn/utilisateursapi/internal/modules/enseignant/mapper"
	"uasz.sn/utilisateursapi/internal/modules/enseignant/repository"
	role "uasz.sn/utilisateursapi/internal/modules/role/service"
	"uasz.sn/utilisateursapi/pkg/apperror"
	"uasz.sn/utilisateursapi/pkg/crud"
)

const (
	resource      = "enseignant"
	defaultAuthor = "SYSTEM"
)

type EnseignantService interface {
	Create(ctx context.Context, req dto.EnseignantDTO) (*dto.EnseignantDTO, error)
	GetByID(ctx context.Context, id uint) (*dto.EnseignantDTO, error)
	List(ctx context.Context) ([]dto.EnseignantDTO, error)
	SearchByNom(ctx context.Context, nom string) ([]dto.EnseignantDTO, error)
	Update(ctx context.Context, id uint, req dto.EnseignantDTO) (*dto.EnseignantDTO, error)
	Patch(ctx context.Context, id uint, req dto.EnseignantPatchDTO) (*dto.EnseignantDTO, error)
	Delete(ctx context.Context, id uint) error
	Activate(ctx context.Context, id uint) (*dto.EnseignantDTO, error)
	Deactivate(ctx context.Context, id uint) (*dto.EnseignantDTO, error)
}

type enseignantService struct {
	repo      repository.EnseignantRepository
	roles     role.Resolver
	directory annuaire.Indexer
	lifecycle crud.Lifecycle[entity.Enseignant, dto.EnseignantDTO]
	now       func() time.Time
}

func NewEnseignantService(repo repository.EnseignantRepository, roles role.Resolver, directory annuaire.Indexer) EnseignantService {
	return &enseignantService{
		repo:      repo,
		roles:     roles,
		directory: directory,
		lifecycle: crud.Lifecycle[entity.Enseignant, dto.EnseignantDTO]{
			NotFound: notFound,
			ToDTO:    mapper.ToDTO,
		},
		now: time.Now,
	}
}

func notFound(id uint) error {
	return apperror.NotFound(resource, "Enseignant introuvable avec l'id %d", id)
}

func duplicateEmail(email string) error {
	return apperror.Validation(resource, "Un enseignant avec l'email %s existe déjà", email)
}

func (s *enseignantService) Create(ctx context.Context, req dto.EnseignantDTO) (out *dto.EnseignantDTO, err error) {
	defer func() { crud.Track(resource, "create", err) }()

	e := mapper.ToEntity(&req)
	e.ID = 0
	e.Roles = nil
	if strings.TrimSpace(e.CreatedBy) == "" {
		e.CreatedBy = defaultAuthor
	}
	if time.Time(e.CreatedAt).IsZero() {
		e.CreatedAt = today(s.now())
	}
	if err := crud.CheckNames(resource, e.Nom, e.Prenom); err != nil {
		return nil, err
	}

	roles, err := s.roles.Resolve(ctx, req.RoleIDs)
	if err != nil {
		return nil, err
	}

	err = s.repo.Transaction(ctx, func(repo repository.EnseignantRepository) error {
		exists, err := repo.ExistsByEmail(ctx, e.Email)
		if err != nil {
			return err
		}
		if exists {
			return duplicateEmail(e.Email)
		}
		if err := repo.Create(ctx, e); err != nil {
			return err
		}
		return repo.ReplaceRoles(ctx, e, roles)
	})
	if err = crud.Duplicate(err, func() error { return duplicateEmail(e.Email) }); err != nil {
		return nil, err
	}

	log.Info().Uint("enseignant_id", e.ID).Str("email", e.Email).Msg("enseignant created")
	s.publish(ctx, e)
	return mapper.ToDTO(e), nil
}

func (s *enseignantService) GetByID(ctx context.Context, id uint) (*dto.EnseignantDTO, error) {
	return s.lifecycle.Get(ctx, s.repo, id)
}

func (s *enseignantService) List(ctx context.Context) ([]dto.EnseignantDTO, error) {
	return s.lifecycle.List(ctx, s.repo)
}

func (s *enseignantService) SearchByNom(ctx context.Context, nom string) ([]dto.EnseignantDTO, error) {
	nom = strings.TrimSpace(nom)
	if nom == "" {
		return nil, apperror.Validation(resource, "Le nom recherché est obligatoire")
	}
	list, err := s.repo.SearchByNom(ctx, nom)
	if err != nil {
		return nil, err
	}
	return s.lifecycle.MapAll(list), nil
}

func (s *enseignantService) Update(ctx context.Context, id uint, req dto.EnseignantDTO) (out *dto.EnseignantDTO, err error) {
	defer func() { crud.Track(resource, "update", err) }()

	return s.modify(ctx, id, req.RoleIDs, func(e *entity.Enseignant) {
		mapper.UpdateFromDTO(&req, e)
	})
}

func (s *enseignantService) Patch(ctx context.Context, id uint, req dto.EnseignantPatchDTO) (out *dto.EnseignantDTO, err error) {
	defer func() { crud.Track(resource, "patch", err) }()

	return s.modify(ctx, id, req.RoleIDs, func(e *entity.Enseignant) {
		mapper.PatchFromDTO(&req, e)
	})
}

// modify loads the record, applies change and saves it in one transaction.
// A nil roleIDs leaves the roles as they are.
func (s *enseignantService) modify(ctx context.Context, id uint, roleIDs []uint, change func(e *entity.Enseignant)) (*dto.EnseignantDTO, error) {
	var roles []entity.Role
	if roleIDs != nil {
		var err error
		if roles, err = s.roles.Resolve(ctx, roleIDs); err != nil {
			return nil, err
		}
	}

	var updated *entity.Enseignant
	var email string
	err := s.repo.Transaction(ctx, func(repo repository.EnseignantRepository) error {
		e, err := s.lifecycle.Load(ctx, repo, id)
		if err != nil {
			return err
		}

		previousEmail := e.Email
		change(e)
		if err := crud.CheckNames(resource, e.Nom, e.Prenom); err != nil {
			return err
		}
		email = e.Email
		if e.Email != previousEmail {
			exists, err := repo.ExistsByEmail(ctx, e.Email)
			if err != nil {
				return err
			}
			if exists {
				return duplicateEmail(e.Email)
			}
		}

		if err := repo.Save(ctx, e); err != nil {
			return err
		}
		if roleIDs != nil {
			if err := repo.ReplaceRoles(ctx, e, roles); err != nil {
				return err
			}
		}
		updated = e
		return nil
	})
	if err = crud.Duplicate(err, func() error { return duplicateEmail(email) }); err != nil {
		return nil, err
	}

	log.Info().Uint("enseignant_id", id).Msg("enseignant updated")
	s.publish(ctx, updated)
	return mapper.ToDTO(updated), nil
}

func (s *enseignantService) Delete(ctx context.Context, id uint) (err error) {
	defer func() { crud.Track(resource, "delete", err) }()

	err = s.repo.Transaction(ctx, func(repo repository.EnseignantRepository) error {
		e, err := s.lifecycle.Load(ctx, repo, id)
		if err != nil {
			return err
		}
		return repo.Delete(ctx, e)
	})
	if err != nil {
		return err
	}

	log.Info().Uint("enseignant_id", id).Msg("enseignant deleted")
	if err := s.directory.Remove(ctx, annuaire.KindEnseignant, id); err != nil {
		log.Warn().Err(err).Uint("enseignant_id", id).Msg("failed to remove directory entry")
	}
	return nil
}

func (s *enseignantService) Activate(ctx context.Context, id uint) (out *dto.EnseignantDTO, err error) {
	defer func() { crud.Track(resource, "activate", err) }()
	return s.setActif(ctx, id, true)
}

func (s *enseignantService) Deactivate(ctx context.Context, id uint) (out *dto.EnseignantDTO, err error) {
	defer func() { crud.Track(resource, "deactivate", err) }()
	return s.setActif(ctx, id, false)
}

// setActif moves the record to the target state. Asking for the current state is a conflict.
func (s *enseignantService) setActif(ctx context.Context, id uint, target bool) (*dto.EnseignantDTO, error) {
	var updated *entity.Enseignant
	err := s.repo.Transaction(ctx, func(repo repository.EnseignantRepository) error {
		e, err := s.lifecycle.Load(ctx, repo, id)
		if err != nil {
			return err
		}
		if e.Actif == target {
			if target {
				return apperror.Conflict(resource, "L'enseignant %d est déjà actif", id)
			}
			return apperror.Conflict(resource, "L'enseignant %d est déjà inactif", id)
		}
		e.Actif = target
		updated = e
		return repo.Save(ctx, e)
	})
	if err != nil {
		return nil, err
	}

	log.Info().Uint("enseignant_id", id).Bool("actif", target).Msg("enseignant state changed")
	s.publish(ctx, updated)
	return mapper.ToDTO(updated), nil
}

// publish pushes e to the directory. Failures are logged only.
func (s *enseignantService) publish(ctx context.Context, e *entity.Enseignant) {
	if err := s.directory.Index(ctx, annuaire.FromEnseignant(e)); err != nil {
		log.Warn().Err(err).Uint("enseignant_id", e.ID).Msg("failed to index enseignant")
	}
}

func today(now time.Time) datatypes.Date {
	y, m, d := now.Date()
	return datatypes.Date(time.Date(y, m, d, 0, 0, 0, 0, time.UTC))
}
