package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"uasz.sn/utilisateursapi/internal/entity"
	"uasz.sn/utilisateursapi/internal/modules/vacataire/repository"
	"uasz.sn/utilisateursapi/internal/testutil"
)

func newVacataire(nom, email string, actif bool) *entity.Vacataire {
	now := time.Date(2025, 2, 1, 9, 0, 0, 0, time.UTC)
	return &entity.Vacataire{
		Nom: nom, Prenom: "Test", Email: email, Specialite: "Réseaux",
		Actif: actif, DateCreation: now, DateModification: now,
	}
}

func ids(list []*entity.Vacataire) []uint {
	out := make([]uint, 0, len(list))
	for _, v := range list {
		out = append(out, v.ID)
	}
	return out
}

func TestVacataireRepository_ActiveScoping(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewVacataireRepository(db)
	ctx := context.Background()

	active := newVacataire("Ndiaye", "ndiaye.repo@uasz.sn", true)
	inactive := newVacataire("Faye", "faye.repo@uasz.sn", false)
	require.NoError(t, repo.Create(ctx, active))
	require.NoError(t, repo.Create(ctx, inactive))

	got, err := repo.FindActiveByID(ctx, active.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ndiaye", got.Nom)

	_, err = repo.FindActiveByID(ctx, inactive.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	got, err = repo.FindByID(ctx, inactive.ID)
	require.NoError(t, err)
	assert.False(t, got.Actif)
}

func TestVacataireRepository_Email(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewVacataireRepository(db)
	ctx := context.Background()

	active := newVacataire("Sarr", "sarr.repo@uasz.sn", true)
	inactive := newVacataire("Mbaye", "mbaye.repo@uasz.sn", false)
	require.NoError(t, repo.Create(ctx, active))
	require.NoError(t, repo.Create(ctx, inactive))

	got, err := repo.FindActiveByEmail(ctx, "sarr.repo@uasz.sn")
	require.NoError(t, err)
	assert.Equal(t, active.ID, got.ID)

	_, err = repo.FindActiveByEmail(ctx, "mbaye.repo@uasz.sn")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	got, err = repo.FindByEmail(ctx, "mbaye.repo@uasz.sn")
	require.NoError(t, err)
	assert.Equal(t, inactive.ID, got.ID)

	_, err = repo.FindByEmail(ctx, "absent.repo@uasz.sn")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestVacataireRepository_FindAllActive(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewVacataireRepository(db)
	ctx := context.Background()

	first := newVacataire("Diallo", "diallo.repo@uasz.sn", true)
	hidden := newVacataire("Cisse", "cisse.repo@uasz.sn", false)
	second := newVacataire("Toure", "toure.repo@uasz.sn", true)
	for _, v := range []*entity.Vacataire{first, hidden, second} {
		require.NoError(t, repo.Create(ctx, v))
	}

	list, err := repo.FindAllActive(ctx)
	require.NoError(t, err)
	got := ids(list)
	assert.Contains(t, got, first.ID)
	assert.Contains(t, got, second.ID)
	assert.NotContains(t, got, hidden.ID)
	assert.IsIncreasing(t, got)

	all, err := repo.FindAll(ctx)
	require.NoError(t, err)
	assert.Contains(t, ids(all), hidden.ID)
}

func TestVacataireRepository_SaveAndDelete(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewVacataireRepository(db)
	ctx := context.Background()

	v := newVacataire("Gaye", "gaye.repo@uasz.sn", true)
	require.NoError(t, repo.Create(ctx, v))

	v.Actif = false
	require.NoError(t, repo.Save(ctx, v))
	_, err := repo.FindActiveByID(ctx, v.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	require.NoError(t, repo.Delete(ctx, v))
	_, err = repo.FindByID(ctx, v.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestVacataireRepository_DuplicateEmailIsTranslated(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewVacataireRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, newVacataire("Kebe", "kebe.repo@uasz.sn", false)))

	// The failed insert aborts the test transaction, so nothing runs after it.
	err := repo.Create(ctx, newVacataire("Kebe", "kebe.repo@uasz.sn", true))
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
}
