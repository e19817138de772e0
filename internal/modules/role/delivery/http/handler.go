package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"uasz.sn/utilisateursapi/internal/modules/role/dto"
	role "uasz.sn/utilisateursapi/internal/modules/role/service"
	"uasz.sn/utilisateursapi/pkg/crud"
	"uasz.sn/utilisateursapi/pkg/response"
)

type RoleHandler struct {
	service role.RoleService
}

func NewRoleHandler(service role.RoleService) *RoleHandler {
	return &RoleHandler{service: service}
}

// Register mounts the role routes on rg.
func (h *RoleHandler) Register(rg *gin.RouterGroup) {
	roles := rg.Group("/roles")
	roles.POST("", h.CreateRole)
	roles.GET("", h.ListRoles)
	roles.GET("/:id", h.GetRole)
	roles.PUT("/:id", h.UpdateRole)
	roles.DELETE("/:id", h.DeleteRole)
}

func (h *RoleHandler) CreateRole(c *gin.Context) {
	req, ok := crud.BindJSON[dto.RoleDTO](c)
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

func (h *RoleHandler) ListRoles(c *gin.Context) {
	res, err := h.service.List(c.Request.Context())
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

func (h *RoleHandler) GetRole(c *gin.Context) {
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

func (h *RoleHandler) UpdateRole(c *gin.Context) {
	id, ok := crud.BindID(c)
	if !ok {
		return
	}
	req, ok := crud.BindJSON[dto.RoleDTO](c)
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

func (h *RoleHandler) DeleteRole(c *gin.Context) {
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
