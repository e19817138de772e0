package crud

import (
	"errors"
	"strings"
	"unicode/utf8"

	"gorm.io/gorm"

	"uasz.sn/utilisateursapi/pkg/apperror"
)

// Name bounds applied to nom and prenom once markup has been stripped.
const (
	NameMin = 2
	NameMax = 50
)

// CheckLength fails with a validation error when value has fewer than min
// or more than max runes. label is the field as it appears in the message.
func CheckLength(resource, label, value string, min, max int) error {
	n := utf8.RuneCountInString(value)
	switch {
	case n < min:
		return apperror.Validation(resource, "%s doit contenir au moins %d caractères", label, min)
	case n > max:
		return apperror.Validation(resource, "%s ne doit pas dépasser %d caractères", label, max)
	}
	return nil
}

// CheckNames re-applies the name bounds after sanitizing, so markup-only
// input never reaches the database as an empty string.
func CheckNames(resource, nom, prenom string) error {
	if err := CheckLength(resource, "Le nom", nom, NameMin, NameMax); err != nil {
		return err
	}
	return CheckLength(resource, "Le prénom", prenom, NameMin, NameMax)
}

// Duplicate replaces a unique-index violation with the error built by
// onDuplicate. Other errors pass through unchanged.
func Duplicate(err error, onDuplicate func() error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return onDuplicate()
	}
	return err
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// EscapeLike makes s match literally inside a LIKE/ILIKE pattern.
func EscapeLike(s string) string {
	return likeEscaper.Replace(s)
}
