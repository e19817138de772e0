package repository_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"uasz.sn/utilisateursapi/internal/entity"
	"uasz.sn/utilisateursapi/internal/modules/etudiant/repository"
	"uasz.sn/utilisateursapi/internal/testutil"
)

func TestEtudiantRepository_CRUD(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewEtudiantRepository(db)
	ctx := context.Background()

	e := &entity.Etudiant{
		Nom: "Ndiaye", Prenom: "Fatou", Matricule: "E-REPO-1",
		Email: "ndiayefn1@zig.univ.sn", CreatedBy: "SYSTEM",
	}
	require.NoError(t, repo.Create(ctx, e))
	require.NotZero(t, e.ID)

	exists, err := repo.ExistsByMatricule(ctx, "E-REPO-1")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.ExistsByEmail(ctx, "ndiayefn1@zig.univ.sn")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.ExistsByEmail(ctx, "absent@zig.univ.sn")
	require.NoError(t, err)
	assert.False(t, exists)

	photo := "https://res.cloudinary.com/uasz/image/upload/etudiants/p.webp"
	e.Photo = &photo
	require.NoError(t, repo.Save(ctx, e))

	got, err := repo.FindByID(ctx, e.ID)
	require.NoError(t, err)
	require.NotNil(t, got.Photo)
	assert.Equal(t, photo, *got.Photo)

	require.NoError(t, repo.Delete(ctx, got))
	_, err = repo.FindByID(ctx, e.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestEtudiantRepository_ReplaceRoles(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewEtudiantRepository(db)
	ctx := context.Background()

	r := entity.Role{Libelle: "TEST_ETU_ROLE"}
	require.NoError(t, db.Create(&r).Error)

	e := &entity.Etudiant{Nom: "Sarr", Prenom: "Moussa", Matricule: "E-REPO-2", Email: "sarrms2@zig.univ.sn"}
	require.NoError(t, repo.Create(ctx, e))
	require.NoError(t, repo.ReplaceRoles(ctx, e, []entity.Role{r}))

	got, err := repo.FindByID(ctx, e.ID)
	require.NoError(t, err)
	require.Len(t, got.Roles, 1)
	assert.Equal(t, "TEST_ETU_ROLE", got.Roles[0].Libelle)

	require.NoError(t, repo.ReplaceRoles(ctx, got, nil))
	got, err = repo.FindByID(ctx, e.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Roles)
}
