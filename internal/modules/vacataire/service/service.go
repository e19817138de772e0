package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"uasz.sn/utilisateursapi/internal/entity"
	annuaire "uasz.sn/utilisateursapi/internal/modules/annuaire/service"
	"uasz.sn/utilisateursapi/internal/modules/vacataire/dto"
	"uasz.sn/utilisateursapi/internal/modules/vacataire/mapper"
	"uasz.sn/utilisateursapi/internal/modules/vacataire/repository"
	"uasz.sn/utilisateursapi/pkg/apperror"
	"uasz.sn/utilisateursapi/pkg/crud"
	"uasz.sn/utilisateursapi/pkg/sanitize"
)

const resource = "vacataire"

// VacataireService only sees active vacataires, except Reactivate which
// reaches any row.
type VacataireService interface {
	Create(ctx context.Context, req dto.VacataireDTO) (*dto.VacataireDTO, error)
	GetByID(ctx context.Context, id uint) (*dto.VacataireDTO, error)
	GetByEmail(ctx context.Context, email string) (*dto.VacataireDTO, error)
	ListActive(ctx context.Context) ([]dto.VacataireDTO, error)
	Update(ctx context.Context, id uint, req dto.VacataireDTO) (*dto.VacataireDTO, error)
	Deactivate(ctx context.Context, id uint) (*dto.VacataireDTO, error)
	Reactivate(ctx context.Context, id uint) (*dto.VacataireDTO, error)
	Delete(ctx context.Context, id uint) error
}

type vacataireService struct {
	repo      repository.VacataireRepository
	directory annuaire.Indexer
	// active scopes lookups to active rows, all reaches every row
	active crud.Lifecycle[entity.Vacataire, dto.VacataireDTO]
	all    crud.Lifecycle[entity.Vacataire, dto.VacataireDTO]
	now    func() time.Time
}

func NewVacataireService(repo repository.VacataireRepository, directory annuaire.Indexer) VacataireService {
	return &vacataireService{
		repo:      repo,
		directory: directory,
		active: crud.Lifecycle[entity.Vacataire, dto.VacataireDTO]{
			NotFound: func(id uint) error {
				return apperror.NotFound(resource, "Aucun vacataire actif avec l'id %d", id)
			},
			ToDTO: mapper.ToDTO,
		},
		all: crud.Lifecycle[entity.Vacataire, dto.VacataireDTO]{
			NotFound: func(id uint) error {
				return apperror.NotFound(resource, "Vacataire introuvable avec l'id %d", id)
			},
			ToDTO: mapper.ToDTO,
		},
		now: time.Now,
	}
}

// activeFinder adapts the active-only lookup to crud.Finder.
type activeFinder struct {
	repo repository.VacataireRepository
}

func (f activeFinder) FindByID(ctx context.Context, id uint) (*entity.Vacataire, error) {
	return f.repo.FindActiveByID(ctx, id)
}

func (s *vacataireService) Create(ctx context.Context, req dto.VacataireDTO) (out *dto.VacataireDTO, err error) {
	defer func() { crud.Track(resource, "create", err) }()

	v := mapper.ToEntity(&req)
	now := s.now()
	v.ID = 0
	v.Actif = true
	v.DateCreation = now
	v.DateModification = now
	if err := crud.CheckNames(resource, v.Nom, v.Prenom); err != nil {
		return nil, err
	}

	err = s.repo.Transaction(ctx, func(repo repository.VacataireRepository) error {
		if err := ensureEmailFree(ctx, repo, v.Email); err != nil {
			return err
		}
		return repo.Create(ctx, v)
	})
	if err = crud.Duplicate(err, func() error { return duplicateEmail(v.Email) }); err != nil {
		return nil, err
	}

	log.Info().Uint("vacataire_id", v.ID).Str("email", v.Email).Msg("vacataire created")
	s.publish(ctx, v)
	return mapper.ToDTO(v), nil
}

func (s *vacataireService) GetByID(ctx context.Context, id uint) (*dto.VacataireDTO, error) {
	return s.active.Get(ctx, activeFinder{s.repo}, id)
}

func (s *vacataireService) GetByEmail(ctx context.Context, email string) (*dto.VacataireDTO, error) {
	email = sanitize.Email(email)
	v, err := s.repo.FindActiveByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound(resource, "Aucun vacataire actif avec l'email %s", email)
		}
		return nil, err
	}
	return mapper.ToDTO(v), nil
}

func (s *vacataireService) ListActive(ctx context.Context) ([]dto.VacataireDTO, error) {
	list, err := s.repo.FindAllActive(ctx)
	if err != nil {
		return nil, err
	}
	return s.active.MapAll(list), nil
}

func (s *vacataireService) Update(ctx context.Context, id uint, req dto.VacataireDTO) (out *dto.VacataireDTO, err error) {
	defer func() { crud.Track(resource, "update", err) }()

	var updated *entity.Vacataire
	var email string
	err = s.repo.Transaction(ctx, func(repo repository.VacataireRepository) error {
		v, err := s.active.Load(ctx, activeFinder{repo}, id)
		if err != nil {
			return err
		}
		previousEmail := v.Email
		mapper.UpdateFromDTO(&req, v)
		if err := crud.CheckNames(resource, v.Nom, v.Prenom); err != nil {
			return err
		}
		email = v.Email
		if v.Email != previousEmail {
			if err := ensureEmailFree(ctx, repo, v.Email); err != nil {
				return err
			}
		}
		v.DateModification = s.now()
		updated = v
		return repo.Save(ctx, v)
	})
	if err = crud.Duplicate(err, func() error { return duplicateEmail(email) }); err != nil {
		return nil, err
	}

	log.Info().Uint("vacataire_id", id).Msg("vacataire updated")
	s.publish(ctx, updated)
	return mapper.ToDTO(updated), nil
}

// Deactivate hides an active vacataire. An inactive one is not visible, so it is NotFound.
func (s *vacataireService) Deactivate(ctx context.Context, id uint) (out *dto.VacataireDTO, err error) {
	defer func() { crud.Track(resource, "deactivate", err) }()

	var updated *entity.Vacataire
	err = s.repo.Transaction(ctx, func(repo repository.VacataireRepository) error {
		v, err := s.active.Load(ctx, activeFinder{repo}, id)
		if err != nil {
			return err
		}
		v.Actif = false
		v.DateModification = s.now()
		updated = v
		return repo.Save(ctx, v)
	})
	if err != nil {
		return nil, err
	}

	log.Info().Uint("vacataire_id", id).Msg("vacataire deactivated")
	s.publish(ctx, updated)
	return mapper.ToDTO(updated), nil
}

func (s *vacataireService) Reactivate(ctx context.Context, id uint) (out *dto.VacataireDTO, err error) {
	defer func() { crud.Track(resource, "reactivate", err) }()

	var updated *entity.Vacataire
	err = s.repo.Transaction(ctx, func(repo repository.VacataireRepository) error {
		v, err := s.all.Load(ctx, repo, id)
		if err != nil {
			return err
		}
		if v.Actif {
			return apperror.Conflict(resource, "Le vacataire %d est déjà actif", id)
		}
		v.Actif = true
		v.DateModification = s.now()
		updated = v
		return repo.Save(ctx, v)
	})
	if err != nil {
		return nil, err
	}

	log.Info().Uint("vacataire_id", id).Msg("vacataire reactivated")
	s.publish(ctx, updated)
	return mapper.ToDTO(updated), nil
}

// Delete removes an active vacataire. Absent and inactive ids are both NotFound.
func (s *vacataireService) Delete(ctx context.Context, id uint) (err error) {
	defer func() { crud.Track(resource, "delete", err) }()

	err = s.repo.Transaction(ctx, func(repo repository.VacataireRepository) error {
		v, err := s.active.Load(ctx, activeFinder{repo}, id)
		if err != nil {
			return err
		}
		return repo.Delete(ctx, v)
	})
	if err != nil {
		return err
	}

	log.Info().Uint("vacataire_id", id).Msg("vacataire deleted")
	if err := s.directory.Remove(ctx, annuaire.KindVacataire, id); err != nil {
		log.Warn().Err(err).Uint("vacataire_id", id).Msg("failed to remove directory entry")
	}
	return nil
}

func (s *vacataireService) publish(ctx context.Context, v *entity.Vacataire) {
	if err := s.directory.Index(ctx, annuaire.FromVacataire(v)); err != nil {
		log.Warn().Err(err).Uint("vacataire_id", v.ID).Msg("failed to index vacataire")
	}
}

// ensureEmailFree checks every row, inactive ones included, since the column is unique.
func ensureEmailFree(ctx context.Context, repo repository.VacataireRepository, email string) error {
	_, err := repo.FindByEmail(ctx, email)
	if err == nil {
		return duplicateEmail(email)
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	return err
}

func duplicateEmail(email string) error {
	return apperror.Validation(resource, "Un vacataire avec l'email %s existe déjà", email)
}
