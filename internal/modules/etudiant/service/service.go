package service

import (
	"context"
	"io"
	"math/rand/v2"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"gorm.io/datatypes"

	"uasz.sn/utilisateursapi/internal/entity"
	annuaire "uasz.sn/utilisateursapi/internal/modules/annuaire/service"
	"uasz.sn/utilisateursapi/internal/modules/etudiant/dto"
	"uasz.sn/utilisateursapi/internal/modules/etudiant/mapper"
	"uasz.sn/utilisateursapi/internal/modules/etudiant/repository"
	role "uasz.sn/utilisateursapi/internal/modules/role/service"
	"uasz.sn/utilisateursapi/pkg/apperror"
	"uasz.sn/utilisateursapi/pkg/crud"
	"uasz.sn/utilisateursapi/pkg/storage"
)

const (
	resource      = "etudiant"
	defaultAuthor = "SYSTEM"

	// MaxPhotoSize bounds an uploaded photo.
	MaxPhotoSize = 5 << 20
)

var photoExtensions = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true, ".webp": true, ".gif": true,
}

type EtudiantService interface {
	Create(ctx context.Context, req dto.EtudiantDTO) (*dto.EtudiantDTO, error)
	GetByID(ctx context.Context, id uint) (*dto.EtudiantDTO, error)
	List(ctx context.Context) ([]dto.EtudiantDTO, error)
	Update(ctx context.Context, id uint, req dto.EtudiantDTO) (*dto.EtudiantDTO, error)
	Delete(ctx context.Context, id uint) error
	SetPhoto(ctx context.Context, id uint, r io.Reader, fileName string, size int64) (*dto.EtudiantDTO, error)
}

type etudiantService struct {
	repo        repository.EtudiantRepository
	roles       role.Resolver
	directory   annuaire.Indexer
	photos      storage.ImageStorage
	photoFolder string
	lifecycle   crud.Lifecycle[entity.Etudiant, dto.EtudiantDTO]
	now         func() time.Time
	draw        func(n int) int
}

// NewEtudiantService wires the student use cases. photos may be nil, in which
// case SetPhoto answers Unavailable.
func NewEtudiantService(
	repo repository.EtudiantRepository,
	roles role.Resolver,
	directory annuaire.Indexer,
	photos storage.ImageStorage,
	photoFolder string,
) EtudiantService {
	return &etudiantService{
		repo:        repo,
		roles:       roles,
		directory:   directory,
		photos:      photos,
		photoFolder: photoFolder,
		lifecycle: crud.Lifecycle[entity.Etudiant, dto.EtudiantDTO]{
			NotFound: notFound,
			ToDTO:    mapper.ToDTO,
		},
		now:  time.Now,
		draw: rand.IntN,
	}
}

func notFound(id uint) error {
	return apperror.NotFound(resource, "Étudiant introuvable avec l'id %d", id)
}

func duplicateMatricule(matricule string) error {
	return apperror.Validation(resource, "Un étudiant avec le matricule %s existe déjà", matricule)
}

func (s *etudiantService) Create(ctx context.Context, req dto.EtudiantDTO) (out *dto.EtudiantDTO, err error) {
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
	if err := checkNames(e); err != nil {
		return nil, err
	}

	roles, err := s.roles.Resolve(ctx, req.RoleIDs)
	if err != nil {
		return nil, err
	}

	err = s.repo.Transaction(ctx, func(repo repository.EtudiantRepository) error {
		exists, err := repo.ExistsByMatricule(ctx, e.Matricule)
		if err != nil {
			return err
		}
		if exists {
			return duplicateMatricule(e.Matricule)
		}
		if e.Email, err = s.uniqueEmail(ctx, repo, e.Nom, e.Prenom, ""); err != nil {
			return err
		}
		if err := repo.Create(ctx, e); err != nil {
			return err
		}
		return repo.ReplaceRoles(ctx, e, roles)
	})
	if err = crud.Duplicate(err, func() error { return s.duplicate(ctx, e.Matricule, e.Email) }); err != nil {
		return nil, err
	}

	log.Info().Uint("etudiant_id", e.ID).Str("email", e.Email).Msg("etudiant created")
	s.publish(ctx, e)
	return mapper.ToDTO(e), nil
}

func (s *etudiantService) GetByID(ctx context.Context, id uint) (*dto.EtudiantDTO, error) {
	return s.lifecycle.Get(ctx, s.repo, id)
}

func (s *etudiantService) List(ctx context.Context) ([]dto.EtudiantDTO, error) {
	return s.lifecycle.List(ctx, s.repo)
}

// Update overwrites the student's fields and derives a fresh email from the
// possibly new name. A nil RoleIDs leaves the roles untouched.
func (s *etudiantService) Update(ctx context.Context, id uint, req dto.EtudiantDTO) (out *dto.EtudiantDTO, err error) {
	defer func() { crud.Track(resource, "update", err) }()

	var roles []entity.Role
	if req.RoleIDs != nil {
		if roles, err = s.roles.Resolve(ctx, req.RoleIDs); err != nil {
			return nil, err
		}
	}

	var updated *entity.Etudiant
	var matricule, email string
	err = s.repo.Transaction(ctx, func(repo repository.EtudiantRepository) error {
		e, err := s.lifecycle.Load(ctx, repo, id)
		if err != nil {
			return err
		}

		previousMatricule := e.Matricule
		mapper.UpdateFromDTO(&req, e)
		if err := checkNames(e); err != nil {
			return err
		}
		if e.Matricule != previousMatricule {
			exists, err := repo.ExistsByMatricule(ctx, e.Matricule)
			if err != nil {
				return err
			}
			if exists {
				return duplicateMatricule(e.Matricule)
			}
		}
		if e.Email, err = s.uniqueEmail(ctx, repo, e.Nom, e.Prenom, e.Email); err != nil {
			return err
		}
		email = e.Email
		if e.Matricule != previousMatricule {
			matricule = e.Matricule
		}

		if err := repo.Save(ctx, e); err != nil {
			return err
		}
		if req.RoleIDs != nil {
			if err := repo.ReplaceRoles(ctx, e, roles); err != nil {
				return err
			}
		}
		updated = e
		return nil
	})
	if err = crud.Duplicate(err, func() error { return s.duplicate(ctx, matricule, email) }); err != nil {
		return nil, err
	}

	log.Info().Uint("etudiant_id", id).Str("email", updated.Email).Msg("etudiant updated")
	s.publish(ctx, updated)
	return mapper.ToDTO(updated), nil
}

func (s *etudiantService) Delete(ctx context.Context, id uint) (err error) {
	defer func() { crud.Track(resource, "delete", err) }()

	var photo *string
	err = s.repo.Transaction(ctx, func(repo repository.EtudiantRepository) error {
		e, err := s.lifecycle.Load(ctx, repo, id)
		if err != nil {
			return err
		}
		photo = e.Photo
		return repo.Delete(ctx, e)
	})
	if err != nil {
		return err
	}

	log.Info().Uint("etudiant_id", id).Msg("etudiant deleted")
	if err := s.directory.Remove(ctx, annuaire.KindEtudiant, id); err != nil {
		log.Warn().Err(err).Uint("etudiant_id", id).Msg("failed to remove directory entry")
	}
	s.discardPhoto(ctx, id, photo)
	return nil
}

// SetPhoto uploads the image, then records its URL. The previous image is
// removed once the new URL is saved.
func (s *etudiantService) SetPhoto(ctx context.Context, id uint, r io.Reader, fileName string, size int64) (out *dto.EtudiantDTO, err error) {
	defer func() { crud.Track(resource, "photo", err) }()

	if s.photos == nil {
		return nil, apperror.Unavailable(resource, "Le stockage des photos n'est pas configuré")
	}
	if err := checkPhoto(fileName, size); err != nil {
		return nil, err
	}
	if _, err := s.lifecycle.Load(ctx, s.repo, id); err != nil {
		return nil, err
	}

	url, err := s.photos.UploadImage(ctx, r, s.photoFolder, fileName)
	if err != nil {
		return nil, apperror.New(http.StatusServiceUnavailable, "Échec du téléversement de la photo", err)
	}

	var previous *string
	var updated *entity.Etudiant
	err = s.repo.Transaction(ctx, func(repo repository.EtudiantRepository) error {
		e, err := s.lifecycle.Load(ctx, repo, id)
		if err != nil {
			return err
		}
		previous = e.Photo
		e.Photo = &url
		updated = e
		return repo.Save(ctx, e)
	})
	if err != nil {
		s.discardPhoto(ctx, id, &url)
		return nil, err
	}

	log.Info().Uint("etudiant_id", id).Str("photo", url).Msg("etudiant photo updated")
	s.discardPhoto(ctx, id, previous)
	return mapper.ToDTO(updated), nil
}

func checkPhoto(fileName string, size int64) error {
	ext := strings.ToLower(filepath.Ext(fileName))
	if !photoExtensions[ext] {
		return apperror.Validation(resource, "Format de photo non supporté: %q (jpg, jpeg, png, webp, gif)", ext)
	}
	if size > MaxPhotoSize {
		return apperror.Validation(resource, "La photo ne doit pas dépasser %d Mo", MaxPhotoSize>>20)
	}
	return nil
}

// discardPhoto deletes a stored image. Failures are logged only.
func (s *etudiantService) discardPhoto(ctx context.Context, id uint, url *string) {
	if s.photos == nil || url == nil || *url == "" {
		return
	}
	if err := s.photos.DeleteImage(ctx, *url); err != nil {
		log.Warn().Err(err).Uint("etudiant_id", id).Str("photo", *url).Msg("failed to delete photo")
	}
}

// uniqueEmail draws addresses until one is free. current is the student's
// own address, which is never a collision.
func (s *etudiantService) uniqueEmail(ctx context.Context, repo repository.EtudiantRepository, nom, prenom, current string) (string, error) {
	if err := checkEmailSource(nom); err != nil {
		return "", err
	}
	for range emailAttempts {
		email := generateEmail(nom, prenom, s.draw(emailSuffixes))
		if email == current {
			return email, nil
		}
		exists, err := repo.ExistsByEmail(ctx, email)
		if err != nil {
			return "", err
		}
		if !exists {
			return email, nil
		}
	}
	return "", apperror.Conflict(resource, "Impossible de générer un email unique pour %s %s", prenom, nom)
}

// checkNames re-checks nom and prenom once markup is stripped.
func checkNames(e *entity.Etudiant) error {
	if err := crud.CheckNames(resource, e.Nom, e.Prenom); err != nil {
		return err
	}
	return checkEmailSource(e.Nom)
}

// duplicate maps a unique-index rejection to the matricule error when the
// written matricule is taken, and to a Conflict on the generated email
// otherwise. An empty matricule means it was not written.
func (s *etudiantService) duplicate(ctx context.Context, matricule, email string) error {
	if matricule == "" {
		return apperror.Conflict(resource, "L'email %s vient d'être attribué, veuillez réessayer", email)
	}
	if exists, err := s.repo.ExistsByMatricule(ctx, matricule); err == nil && exists {
		return duplicateMatricule(matricule)
	}
	return apperror.Conflict(resource, "L'email %s vient d'être attribué, veuillez réessayer", email)
}

// publish pushes e to the directory. Failures are logged only.
func (s *etudiantService) publish(ctx context.Context, e *entity.Etudiant) {
	if err := s.directory.Index(ctx, annuaire.FromEtudiant(e)); err != nil {
		log.Warn().Err(err).Uint("etudiant_id", e.ID).Msg("failed to index etudiant")
	}
}

func today(now time.Time) datatypes.Date {
	y, m, d := now.Date()
	return datatypes.Date(time.Date(y, m, d, 0, 0, 0, 0, time.UTC))
}
