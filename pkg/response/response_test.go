package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"uasz.sn/utilisateursapi/pkg/apperror"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func serve(t *testing.T, handler gin.HandlerFunc) (*httptest.ResponseRecorder, ErrorBody) {
	t.Helper()

	router := gin.New()
	router.Use(Recovery())
	router.GET("/test", handler)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	router.ServeHTTP(w, req)

	var body ErrorBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w, body
}

func TestResponseError_NotFound(t *testing.T) {
	w, body := serve(t, func(c *gin.Context) {
		ResponseError(c, apperror.NotFound("vacataire", "Vacataire avec l'ID 4 non trouvé"))
	})

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, http.StatusNotFound, body.Status)
	assert.Equal(t, "Ressource introuvable", body.Error)
	assert.Equal(t, "Vacataire avec l'ID 4 non trouvé", body.Message)
	assert.False(t, body.Timestamp.IsZero())
}

func TestResponseError_Conflict(t *testing.T) {
	w, body := serve(t, func(c *gin.Context) {
		ResponseError(c, apperror.Conflict("enseignant", "L'enseignant est déjà inactif"))
	})

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "L'enseignant est déjà inactif", body.Message)
}

func TestResponseError_HidesInternalMessage(t *testing.T) {
	w, body := serve(t, func(c *gin.Context) {
		ResponseError(c, errors.New("pq: password authentication failed for user \"postgres\""))
	})

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, genericMessage, body.Message)
	assert.NotContains(t, w.Body.String(), "postgres")
}

func TestRecovery(t *testing.T) {
	w, body := serve(t, func(c *gin.Context) {
		panic("boom")
	})

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, genericMessage, body.Message)
}

func TestBadRequest(t *testing.T) {
	w, body := serve(t, func(c *gin.Context) {
		BadRequest(c, "identifiant invalide")
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "identifiant invalide", body.Message)
	assert.Equal(t, "Requête invalide", body.Error)
}
