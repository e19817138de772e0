package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"uasz.sn/utilisateursapi/internal/modules/vacataire/dto"
	vacataire "uasz.sn/utilisateursapi/internal/modules/vacataire/service"
	"uasz.sn/utilisateursapi/pkg/crud"
	"uasz.sn/utilisateursapi/pkg/response"
	"uasz.sn/utilisateursapi/pkg/validator"
)

type VacataireHandler struct {
	service vacataire.VacataireService
}

func NewVacataireHandler(service vacataire.VacataireService) *VacataireHandler {
	return &VacataireHandler{service: service}
}

func (h *VacataireHandler) Register(rg *gin.RouterGroup) {
	vacataires := rg.Group("/vacataires")
	vacataires.POST("", h.CreateVacataire)
	vacataires.GET("", h.ListVacataires)
	vacataires.GET("/email/:email", h.GetVacataireByEmail)
	vacataires.GET("/:id", h.GetVacataire)
	vacataires.PUT("/:id", h.UpdateVacataire)
	vacataires.DELETE("/:id", h.DeleteVacataire)
	vacataires.POST("/:id/desactiver", h.DeactivateVacataire)
	vacataires.POST("/:id/reactiver", h.ReactivateVacataire)
}

func (h *VacataireHandler) CreateVacataire(c *gin.Context) {
	req, ok := crud.BindJSON[dto.VacataireDTO](c)
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

func (h *VacataireHandler) ListVacataires(c *gin.Context) {
	res, err := h.service.ListActive(c.Request.Context())
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

func (h *VacataireHandler) GetVacataireByEmail(c *gin.Context) {
	var req dto.EmailRequest
	if err := c.ShouldBindUri(&req); err != nil {
		response.BadRequest(c, validator.FormatValidationError(err))
		return
	}

	res, err := h.service.GetByEmail(c.Request.Context(), req.Email)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

func (h *VacataireHandler) GetVacataire(c *gin.Context) {
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

func (h *VacataireHandler) UpdateVacataire(c *gin.Context) {
	id, ok := crud.BindID(c)
	if !ok {
		return
	}
	req, ok := crud.BindJSON[dto.VacataireDTO](c)
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

func (h *VacataireHandler) DeleteVacataire(c *gin.Context) {
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

func (h *VacataireHandler) DeactivateVacataire(c *gin.Context) {
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

func (h *VacataireHandler) ReactivateVacataire(c *gin.Context) {
	id, ok := crud.BindID(c)
	if !ok {
		return
	}

	res, err := h.service.Reactivate(c.Request.Context(), id)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}
