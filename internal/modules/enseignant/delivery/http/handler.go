package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"uasz.sn/utilisateursapi/internal/modules/enseignant/dto"
	enseignant "uasz.sn/utilisateursapi/internal/modules/enseignant/service"
	"uasz.sn/utilisateursapi/pkg/crud"
	"uasz.sn/utilisateursapi/pkg/response"
	"uasz.sn/utilisateursapi/pkg/validator"
)

type EnseignantHandler struct {
	service enseignant.EnseignantService
}

func NewEnseignantHandler(service enseignant.EnseignantService) *EnseignantHandler {
	return &EnseignantHandler{service: service}
}

func (h *EnseignantHandler) Register(rg *gin.RouterGroup) {
	enseignants := rg.Group("/enseignants")
	enseignants.POST("", h.CreateEnseignant)
	enseignants.GET("", h.ListEnseignants)
	enseignants.GET("/recherche", h.SearchEnseignants)
	enseignants.GET("/:id", h.GetEnseignant)
	enseignants.PUT("/:id", h.UpdateEnseignant)
	enseignants.PATCH("/:id", h.PatchEnseignant)
	enseignants.DELETE("/:id", h.DeleteEnseignant)
	enseignants.PUT("/:id/activer", h.ActivateEnseignant)
	enseignants.PUT("/:id/desactiver", h.DeactivateEnseignant)
}

func (h *EnseignantHandler) CreateEnseignant(c *gin.Context) {
	req, ok := crud.BindJSON[dto.EnseignantDTO](c)
	if !ok {
		return
	}

	res, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusCreated, res)
}

func (h *EnseignantHandler) ListEnseignants(c *gin.Context) {
	res, err := h.service.List(c.Request.Context())
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

func (h *EnseignantHandler) SearchEnseignants(c *gin.Context) {
	var query dto.SearchQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.BadRequest(c, validator.FormatValidationError(err))
		return
	}

	res, err := h.service.SearchByNom(c.Request.Context(), query.Nom)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

func (h *EnseignantHandler) GetEnseignant(c *gin.Context) {
	id, ok := crud.BindID(c)
	if !ok {
		return
	}

	res, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

func (h *EnseignantHandler) UpdateEnseignant(c *gin.Context) {
	id, ok := crud.BindID(c)
	if !ok {
		return
	}
	req, ok := crud.BindJSON[dto.EnseignantDTO](c)
	if !ok {
		return
	}

	res, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

func (h *EnseignantHandler) PatchEnseignant(c *gin.Context) {
	id, ok := crud.BindID(c)
	if !ok {
		return
	}
	req, ok := crud.BindJSON[dto.EnseignantPatchDTO](c)
	if !ok {
		return
	}

	res, err := h.service.Patch(c.Request.Context(), id, req)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

func (h *EnseignantHandler) DeleteEnseignant(c *gin.Context) {
	id, ok := crud.BindID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		response.ResponseError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *EnseignantHandler) ActivateEnseignant(c *gin.Context) {
	id, ok := crud.BindID(c)
	if !ok {
		return
	}

	res, err := h.service.Activate(c.Request.Context(), id)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

func (h *EnseignantHandler) DeactivateEnseignant(c *gin.Context) {
	id, ok := crud.BindID(c)
	if !ok {
		return
	}

	res, err := h.service.Deactivate(c.Request.Context(), id)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}
