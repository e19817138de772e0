package crud

import (
	"github.com/gin-gonic/gin"

	"uasz.sn/utilisateursapi/pkg/response"
	"uasz.sn/utilisateursapi/pkg/validator"
)

// IDRequest binds the :id path segment.
type IDRequest struct {
	ID uint `uri:"id" binding:"required,min=1"`
}

// BindID reads :id. On failure it writes a 400 and returns false.
func BindID(c *gin.Context) (uint, bool) {
	var req IDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		response.BadRequest(c, "identifiant invalide: "+c.Param("id"))
		return 0, false
	}
	return req.ID, true
}

// BindJSON decodes and validates the body. On failure it writes a 400 and returns false.
func BindJSON[T any](c *gin.Context) (T, bool) {
	var req T
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, validator.FormatValidationError(err))
		return req, false
	}
	return req, true
}
