package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"uasz.sn/utilisateursapi/internal/modules/annuaire/dto"
	annuaire "uasz.sn/utilisateursapi/internal/modules/annuaire/service"
	"uasz.sn/utilisateursapi/pkg/response"
	"uasz.sn/utilisateursapi/pkg/validator"
)

type AnnuaireHandler struct {
	service annuaire.AnnuaireService
}

func NewAnnuaireHandler(service annuaire.AnnuaireService) *AnnuaireHandler {
	return &AnnuaireHandler{service: service}
}

func (h *AnnuaireHandler) Register(rg *gin.RouterGroup) {
	rg.GET("/annuaire", h.Search)
}

func (h *AnnuaireHandler) Search(c *gin.Context) {
	var query dto.SearchQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.BadRequest(c, validator.FormatValidationError(err))
		return
	}

	res, err := h.service.Search(c.Request.Context(), query.Q, query.Limit)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}
