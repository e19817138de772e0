package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrNotFound          = errors.New("resource not found")
	ErrConflict          = errors.New("conflicting state")
	ErrValidation        = errors.New("validation failed")
	ErrBadRequest        = errors.New("bad request")
	ErrInfrastructure    = errors.New("infrastructure failure")
	ErrDataInit          = errors.New("data initialization failed")
	ErrUnavailable       = errors.New("service unavailable")
	ErrRateLimitExceeded = errors.New("rate limit exceeded")
	ErrInternal          = errors.New("internal server error")
)

// Kind is the closed set of error categories the API exposes.
type Kind int

const (
	KindUnknown Kind = iota
	KindNotFound
	KindConflict
	KindValidation
	KindInfrastructure
	KindUnavailable
	KindRateLimited
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "Ressource introuvable"
	case KindConflict:
		return "Conflit d'état"
	case KindValidation:
		return "Requête invalide"
	case KindInfrastructure:
		return "Erreur d'infrastructure"
	case KindUnavailable:
		return "Service indisponible"
	case KindRateLimited:
		return "Trop de requêtes"
	default:
		return "Erreur interne"
	}
}

// AppError is a custom error type that can hold an HTTP status code
type AppError struct {
	Code     int
	Kind     Kind
	Resource string
	Message  string
	Err      error
}

func (e *AppError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Kind.String()
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError
func New(code int, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Kind:    kindForStatus(code),
		Message: message,
		Err:     err,
	}
}

// NotFound reports a lookup by id or email that found nothing.
func NotFound(resource, format string, args ...any) *AppError {
	return &AppError{
		Code:     http.StatusNotFound,
		Kind:     KindNotFound,
		Resource: resource,
		Message:  fmt.Sprintf(format, args...),
		Err:      ErrNotFound,
	}
}

// Conflict reports a state transition to the state the record is already in.
func Conflict(resource, format string, args ...any) *AppError {
	return &AppError{
		Code:     http.StatusConflict,
		Kind:     KindConflict,
		Resource: resource,
		Message:  fmt.Sprintf(format, args...),
		Err:      ErrConflict,
	}
}

// Validation reports a business rule violation such as a duplicate email.
func Validation(resource, format string, args ...any) *AppError {
	return &AppError{
		Code:     http.StatusBadRequest,
		Kind:     KindValidation,
		Resource: resource,
		Message:  fmt.Sprintf(format, args...),
		Err:      ErrValidation,
	}
}

// DataInitialization wraps a failure while migrating or seeding at startup.
func DataInitialization(step string, err error) *AppError {
	return &AppError{
		Code:    http.StatusInternalServerError,
		Kind:    KindInfrastructure,
		Message: fmt.Sprintf("échec de l'initialisation des données (%s): %v", step, err),
		Err:     errors.Join(ErrDataInit, ErrInfrastructure, err),
	}
}

// Unavailable reports an optional integration that is not configured.
func Unavailable(resource, format string, args ...any) *AppError {
	return &AppError{
		Code:     http.StatusServiceUnavailable,
		Kind:     KindUnavailable,
		Resource: resource,
		Message:  fmt.Sprintf(format, args...),
		Err:      ErrUnavailable,
	}
}

// KindOf returns the category of err, KindUnknown for anything unrecognised.
func KindOf(err error) Kind {
	var appErr *AppError
	if errors.As(err, &appErr) && appErr.Kind != KindUnknown {
		return appErr.Kind
	}
	switch {
	case errors.Is(err, ErrNotFound):
		return KindNotFound
	case errors.Is(err, ErrConflict):
		return KindConflict
	case errors.Is(err, ErrValidation), errors.Is(err, ErrBadRequest):
		return KindValidation
	case errors.Is(err, ErrRateLimitExceeded):
		return KindRateLimited
	case errors.Is(err, ErrUnavailable):
		return KindUnavailable
	case errors.Is(err, ErrInfrastructure), errors.Is(err, ErrDataInit):
		return KindInfrastructure
	}
	return KindUnknown
}

// MapErrorToStatus maps common errors to HTTP status codes
func MapErrorToStatus(err error) int {
	switch KindOf(err) {
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	case KindValidation:
		return http.StatusBadRequest
	case KindRateLimited:
		return http.StatusTooManyRequests
	case KindUnavailable:
		return http.StatusServiceUnavailable
	}
	// Default to internal server error
	return http.StatusInternalServerError
}

func kindForStatus(code int) Kind {
	switch code {
	case http.StatusNotFound:
		return KindNotFound
	case http.StatusConflict:
		return KindConflict
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return KindValidation
	case http.StatusTooManyRequests:
		return KindRateLimited
	case http.StatusServiceUnavailable:
		return KindUnavailable
	case http.StatusInternalServerError:
		return KindInfrastructure
	}
	return KindUnknown
}
