package validator

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var (
	telephonePattern = regexp.MustCompile(`^\+?[0-9]{9,15}$`)
	setupOnce        sync.Once
	enumMu           sync.RWMutex
	enumMessages     = map[string]string{}
)

// Setup registers the custom tags on gin's validator engine.
func Setup() {
	setupOnce.Do(func() {
		if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
			_ = v.RegisterValidation("telephone", func(fl validator.FieldLevel) bool {
				return telephonePattern.MatchString(fl.Field().String())
			})
		}
	})
}

// RegisterEnum binds tag to a membership check on string fields. message is
// the error text for a rejected value; %s receives the field label.
func RegisterEnum(tag, message string, valid func(string) bool) {
	Setup()
	enumMu.Lock()
	defer enumMu.Unlock()
	enumMessages[tag] = message
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
			return valid(fl.Field().String())
		})
	}
}

func enumMessage(tag string) (string, bool) {
	enumMu.RLock()
	defer enumMu.RUnlock()
	message, ok := enumMessages[tag]
	return message, ok
}

// IsTelephone reports whether s matches the accepted international format.
func IsTelephone(s string) bool {
	return telephonePattern.MatchString(s)
}

func FormatValidationError(err error) string {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		var messages []string
		for _, fieldError := range validationErrors {
			message := getFieldErrorMessage(fieldError)
			messages = append(messages, message)
		}
		return strings.Join(messages, "; ")
	}
	return fmt.Sprintf("corps de requête invalide: %v", err)
}

func getFieldErrorMessage(fe validator.FieldError) string {
	field := getFieldName(fe.Field())

	if message, ok := enumMessage(fe.Tag()); ok {
		return fmt.Sprintf(message, field)
	}

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s est obligatoire", field)
	case "email":
		return fmt.Sprintf("%s doit être une adresse email valide", field)
	case "min":
		if fe.Kind().String() == "string" {
			return fmt.Sprintf("%s doit contenir au moins %s caractères", field, fe.Param())
		}
		return fmt.Sprintf("%s doit être au moins %s", field, fe.Param())
	case "max":
		if fe.Kind().String() == "string" {
			return fmt.Sprintf("%s ne doit pas dépasser %s caractères", field, fe.Param())
		}
		return fmt.Sprintf("%s ne doit pas dépasser %s", field, fe.Param())
	case "telephone":
		return fmt.Sprintf("%s doit respecter le format international (+221771234567)", field)
	case "datetime":
		return fmt.Sprintf("%s doit être une date au format %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s est invalide", field)
	}
}

func getFieldName(field string) string {
	fieldNames := map[string]string{
		"Nom":           "Le nom",
		"Prenom":        "Le prénom",
		"Email":         "L'email",
		"Telephone":     "Le téléphone",
		"Matricule":     "Le matricule",
		"Grade":         "Le grade",
		"Specialite":    "La spécialité",
		"DateNaissance": "La date de naissance",
		"LieuNaissance": "Le lieu de naissance",
		"Libelle":       "Le libellé",
		"Description":   "La description",
		"CreateAt":      "La date de création",
		"ID":            "L'identifiant",
	}

	if name, ok := fieldNames[field]; ok {
		return name
	}
	return field
}
