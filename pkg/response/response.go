package response

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"uasz.sn/utilisateursapi/pkg/apperror"
)

const genericMessage = "Une erreur inattendue est survenue"

// ErrorBody is the structured error payload returned by every endpoint.
type ErrorBody struct {
	Timestamp time.Time `json:"timestamp"`
	Status    int       `json:"status"`
	Error     string    `json:"error"`
	Message   string    `json:"message"`
}

// ResponseError standardized error response
func ResponseError(c *gin.Context, err error) {
	code := apperror.MapErrorToStatus(err)
	kind := apperror.KindOf(err)
	message := err.Error()

	// Internals stay in the logs
	if code == http.StatusInternalServerError {
		log.Error().
			Err(err).
			Str("method", c.Request.Method).
			Str("path", c.FullPath()).
			Str("request_id", c.GetString(RequestIDKey)).
			Msg("internal error")
		message = genericMessage
	}

	c.AbortWithStatusJSON(code, ErrorBody{
		Timestamp: time.Now().UTC(),
		Status:    code,
		Error:     kind.String(),
		Message:   message,
	})
}

// BadRequest writes a 400 with the given message, used for malformed input
// rejected before any service call.
func BadRequest(c *gin.Context, message string) {
	ResponseError(c, apperror.New(http.StatusBadRequest, message, apperror.ErrBadRequest))
}

// Recovery converts panics into the standard 500 payload.
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		log.Error().
			Interface("panic", recovered).
			Str("path", c.Request.URL.Path).
			Msg("recovered from panic")
		ResponseError(c, apperror.ErrInternal)
	})
}

// RequestIDKey is the gin context key holding the request id.
const RequestIDKey = "request_id"
