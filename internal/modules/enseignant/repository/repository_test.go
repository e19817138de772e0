package repository_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"uasz.sn/utilisateursapi/internal/entity"
	"uasz.sn/utilisateursapi/internal/modules/enseignant/repository"
	"uasz.sn/utilisateursapi/internal/testutil"
)

func newEnseignant(nom, email string) *entity.Enseignant {
	return &entity.Enseignant{
		Nom: nom, Prenom: "Test", Email: email, Matricule: "M-" + nom,
		Grade: entity.GradeProfesseur, CreatedBy: "SYSTEM", Actif: true,
	}
}

func TestEnseignantRepository_CRUD(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewEnseignantRepository(db)
	ctx := context.Background()

	e := newEnseignant("Diop", "diop.repo@uasz.sn")
	require.NoError(t, repo.Create(ctx, e))
	require.NotZero(t, e.ID)

	exists, err := repo.ExistsByEmail(ctx, "diop.repo@uasz.sn")
	require.NoError(t, err)
	assert.True(t, exists)

	byEmail, err := repo.FindByEmail(ctx, "diop.repo@uasz.sn")
	require.NoError(t, err)
	assert.Equal(t, e.ID, byEmail.ID)

	e.Actif = false
	require.NoError(t, repo.Save(ctx, e))
	got, err := repo.FindByID(ctx, e.ID)
	require.NoError(t, err)
	assert.False(t, got.Actif)

	require.NoError(t, repo.Delete(ctx, got))
	_, err = repo.FindByID(ctx, e.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestEnseignantRepository_SearchByNom(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewEnseignantRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, newEnseignant("Ndiayezz", "n1.repo@uasz.sn")))
	require.NoError(t, repo.Create(ctx, newEnseignant("Ba", "b1.repo@uasz.sn")))

	list, err := repo.SearchByNom(ctx, "DIAYEZ")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Ndiayezz", list[0].Nom)
}

func TestEnseignantRepository_ReplaceRoles(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewEnseignantRepository(db)
	ctx := context.Background()

	a := entity.Role{Libelle: "TEST_R1"}
	b := entity.Role{Libelle: "TEST_R2"}
	require.NoError(t, db.Create(&a).Error)
	require.NoError(t, db.Create(&b).Error)

	e := newEnseignant("Fall", "fall.repo@uasz.sn")
	require.NoError(t, repo.Create(ctx, e))

	require.NoError(t, repo.ReplaceRoles(ctx, e, []entity.Role{a, b}))
	got, err := repo.FindByID(ctx, e.ID)
	require.NoError(t, err)
	assert.Len(t, got.Roles, 2)

	require.NoError(t, repo.ReplaceRoles(ctx, got, nil))
	got, err = repo.FindByID(ctx, e.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Roles)
}

func TestEnseignantRepository_TransactionRollsBack(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewEnseignantRepository(db)
	ctx := context.Background()
	boom := errors.New("boom")

	err := repo.Transaction(ctx, func(tx repository.EnseignantRepository) error {
		if err := tx.Create(ctx, newEnseignant("Gueye", "gueye.repo@uasz.sn")); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	exists, err := repo.ExistsByEmail(ctx, "gueye.repo@uasz.sn")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestEnseignantRepository_SearchByNomMatchesWildcardsLiterally(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewEnseignantRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, newEnseignant("Sow_zz", "sow.repo@uasz.sn")))
	require.NoError(t, repo.Create(ctx, newEnseignant("Sowazz", "sowa.repo@uasz.sn")))

	list, err := repo.SearchByNom(ctx, "sow_z")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Sow_zz", list[0].Nom)

	list, err = repo.SearchByNom(ctx, "%zz%zz")
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestEnseignantRepository_DuplicateEmailIsTranslated(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewEnseignantRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, newEnseignant("Kane", "kane.repo@uasz.sn")))

	// The failed insert aborts the test transaction, so nothing runs after it.
	err := repo.Create(ctx, newEnseignant("Kane2", "kane.repo@uasz.sn"))
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
}
