package validator

import (
	"errors"
	"testing"

	"github.com/gin-gonic/gin/binding"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Nom       string `binding:"required,min=2,max=50"`
	Email     string `binding:"required,email"`
	Telephone string `binding:"omitempty,telephone"`
	Grade     string `binding:"required,sample_grade"`
}

func TestFormatValidationError(t *testing.T) {
	RegisterEnum("sample_grade", "%s n'est pas un grade reconnu", func(s string) bool { return s == "PROFESSEUR" })

	err := binding.Validator.ValidateStruct(&sample{
		Nom:       "D",
		Email:     "not-an-email",
		Telephone: "12ab",
		Grade:     "RECTEUR",
	})
	require.Error(t, err)

	msg := FormatValidationError(err)
	assert.Contains(t, msg, "Le nom doit contenir au moins 2 caractères")
	assert.Contains(t, msg, "L'email doit être une adresse email valide")
	assert.Contains(t, msg, "Le téléphone doit respecter le format international")
	assert.Contains(t, msg, "Le grade n'est pas un grade reconnu")
}

func TestValidStruct(t *testing.T) {
	RegisterEnum("sample_grade", "%s n'est pas un grade reconnu", func(s string) bool { return s == "PROFESSEUR" })

	err := binding.Validator.ValidateStruct(&sample{
		Nom:       "Diop",
		Email:     "diop@uasz.sn",
		Telephone: "+221771234567",
		Grade:     "PROFESSEUR",
	})
	assert.NoError(t, err)
}

func TestEnumMessagePerTag(t *testing.T) {
	RegisterEnum("sample_statut", "%s doit être ACTIF ou INACTIF", func(s string) bool {
		return s == "ACTIF" || s == "INACTIF"
	})

	type statutHolder struct {
		Statut string `binding:"required,sample_statut"`
		Grade  string `binding:"required,sample_grade"`
	}
	RegisterEnum("sample_grade", "%s n'est pas un grade reconnu", func(s string) bool { return s == "PROFESSEUR" })

	err := binding.Validator.ValidateStruct(&statutHolder{Statut: "SUSPENDU", Grade: "RECTEUR"})
	require.Error(t, err)

	msg := FormatValidationError(err)
	assert.Contains(t, msg, "Statut doit être ACTIF ou INACTIF")
	assert.Contains(t, msg, "Le grade n'est pas un grade reconnu")
	assert.NotContains(t, msg, "est invalide")
}

func TestIsTelephone(t *testing.T) {
	assert.True(t, IsTelephone("+221771234567"))
	assert.True(t, IsTelephone("770000000"))
	assert.False(t, IsTelephone("+22177"))
	assert.False(t, IsTelephone("77 123 45 67"))
}

func TestFormatValidationError_NonValidationError(t *testing.T) {
	msg := FormatValidationError(errors.New("unexpected EOF"))
	assert.Equal(t, "corps de requête invalide: unexpected EOF", msg)
}
