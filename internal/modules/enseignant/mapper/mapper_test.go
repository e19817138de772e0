package mapper

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"gorm.io/datatypes"

	"uasz.sn/utilisateursapi/internal/entity"
	"uasz.sn/utilisateursapi/internal/modules/enseignant/dto"
)

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }

func TestRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		in   dto.EnseignantDTO
	}{
		{
			name: "all fields",
			in: dto.EnseignantDTO{
				ID: 5, Nom: "Diop", Prenom: "Ibrahima", Email: "diop@uasz.sn",
				Telephone: strPtr("+221771234567"), Matricule: "M1", Grade: "PROFESSEUR",
				CreateBy: "admin", CreateAt: "2024-09-01", Actif: boolPtr(false), RoleIDs: []uint{1, 3},
			},
		},
		{
			name: "optional fields absent",
			in: dto.EnseignantDTO{
				Nom: "Sow", Prenom: "Awa", Email: "sow@uasz.sn", Matricule: "M2",
				Grade: "ASSISTANT", Actif: boolPtr(true),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := tt.in
			assert.Equal(t, &in, ToDTO(ToEntity(&in)))
		})
	}
}

func TestToEntity_DefaultsActif(t *testing.T) {
	e := ToEntity(&dto.EnseignantDTO{Nom: "Diop", Grade: "PROFESSEUR"})
	assert.True(t, e.Actif)
	assert.Equal(t, entity.GradeProfesseur, e.Grade)
	assert.True(t, time.Time(e.CreatedAt).IsZero())
}

func TestNilSafe(t *testing.T) {
	assert.Nil(t, ToDTO(nil))
	assert.Nil(t, ToEntity(nil))
	assert.NotPanics(t, func() {
		UpdateFromDTO(nil, &entity.Enseignant{})
		PatchFromDTO(nil, &entity.Enseignant{})
	})
}

func TestUpdateFromDTO_KeepsServerFields(t *testing.T) {
	created := datatypes.Date(time.Date(2023, 1, 10, 0, 0, 0, 0, time.UTC))
	e := &entity.Enseignant{ID: 2, Nom: "Diop", Actif: false, CreatedBy: "SYSTEM", CreatedAt: created}

	UpdateFromDTO(&dto.EnseignantDTO{
		ID: 99, Nom: "Ndiaye", Prenom: "Fatou", Email: "ndiaye@uasz.sn",
		Matricule: "M9", Grade: "DOCTORANT", Actif: boolPtr(true), CreateBy: "intrus",
	}, e)

	assert.Equal(t, uint(2), e.ID)
	assert.Equal(t, "Ndiaye", e.Nom)
	assert.Equal(t, entity.GradeDoctorant, e.Grade)
	assert.False(t, e.Actif)
	assert.Equal(t, "SYSTEM", e.CreatedBy)
	assert.Equal(t, created, e.CreatedAt)
}

func TestPatchFromDTO(t *testing.T) {
	e := &entity.Enseignant{Nom: "Diop", Prenom: "Ibrahima", Email: "diop@uasz.sn", Grade: entity.GradeProfesseur}

	PatchFromDTO(&dto.EnseignantPatchDTO{Prenom: strPtr("<i>Ibou</i>"), Grade: strPtr("PROFESSEUR_TITULAIRE")}, e)

	assert.Equal(t, "Diop", e.Nom)
	assert.Equal(t, "Ibou", e.Prenom)
	assert.Equal(t, "diop@uasz.sn", e.Email)
	assert.Equal(t, entity.GradeProfesseurTitulaire, e.Grade)
}

func TestEmailNormalized(t *testing.T) {
	e := ToEntity(&dto.EnseignantDTO{Nom: "Diop", Email: " Diop@UASZ.sn "})
	assert.Equal(t, "diop@uasz.sn", e.Email)

	UpdateFromDTO(&dto.EnseignantDTO{Nom: "Diop", Email: "IBOU.Diop@uasz.sn"}, e)
	assert.Equal(t, "ibou.diop@uasz.sn", e.Email)

	PatchFromDTO(&dto.EnseignantPatchDTO{Email: strPtr("SARR@uasz.sn ")}, e)
	assert.Equal(t, "sarr@uasz.sn", e.Email)
}
