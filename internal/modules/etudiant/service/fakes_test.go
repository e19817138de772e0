package service

import (
	"context"
	"errors"
	"io"

	"gorm.io/gorm"

	"uasz.sn/utilisateursapi/internal/entity"
	annuaire "uasz.sn/utilisateursapi/internal/modules/annuaire/service"
	"uasz.sn/utilisateursapi/internal/modules/etudiant/repository"
	"uasz.sn/utilisateursapi/internal/modules/etudiant/repository/repositorytest"
	"uasz.sn/utilisateursapi/pkg/apperror"
)

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

// fakeStorage hands out sequential URLs and records deletions.
type fakeStorage struct {
	uploads   []string
	deleted   []string
	uploadErr error
}

func (f *fakeStorage) UploadImage(_ context.Context, r io.Reader, folder, fileName string) (string, error) {
	if f.uploadErr != nil {
		return "", f.uploadErr
	}
	if _, err := io.ReadAll(r); err != nil {
		return "", err
	}
	url := "https://res.cloudinary.com/uasz/image/upload/" + folder + "/" + fileName
	f.uploads = append(f.uploads, url)
	return url, nil
}

func (f *fakeStorage) DeleteImage(_ context.Context, url string) error {
	f.deleted = append(f.deleted, url)
	return nil
}

var errCloudinaryDown = errors.New("cloudinary: 502 bad gateway")

// racingRepo passes every existence check but has the unique index reject
// each write, as when a concurrent request commits the same email first.
type racingRepo struct {
	*repositorytest.Memory
}

func (r racingRepo) Create(context.Context, *entity.Etudiant) error { return gorm.ErrDuplicatedKey }
func (r racingRepo) Save(context.Context, *entity.Etudiant) error   { return gorm.ErrDuplicatedKey }

func (r racingRepo) Transaction(_ context.Context, fn func(repo repository.EtudiantRepository) error) error {
	return fn(r)
}
