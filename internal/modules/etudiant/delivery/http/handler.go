package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"uasz.sn/utilisateursapi/internal/modules/etudiant/dto"
	etudiant "uasz.sn/utilisateursapi/internal/modules/etudiant/service"
	"uasz.sn/utilisateursapi/pkg/crud"
	"uasz.sn/utilisateursapi/pkg/response"
)

// photoField is the multipart field carrying the image.
const photoField = "photo"

type EtudiantHandler struct {
	service etudiant.EtudiantService
}

func NewEtudiantHandler(service etudiant.EtudiantService) *EtudiantHandler {
	return &EtudiantHandler{service: service}
}

func (h *EtudiantHandler) Register(rg *gin.RouterGroup) {
	etudiants := rg.Group("/etudiants")
	etudiants.POST("", h.CreateEtudiant)
	etudiants.GET("", h.ListEtudiants)
	etudiants.GET("/:id", h.GetEtudiant)
	etudiants.PUT("/:id", h.UpdateEtudiant)
	etudiants.DELETE("/:id", h.DeleteEtudiant)
	etudiants.POST("/:id/photo", h.UploadPhoto)
}

func (h *EtudiantHandler) CreateEtudiant(c *gin.Context) {
	req, ok := crud.BindJSON[dto.EtudiantDTO](c)
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

func (h *EtudiantHandler) ListEtudiants(c *gin.Context) {
	res, err := h.service.List(c.Request.Context())
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

func (h *EtudiantHandler) GetEtudiant(c *gin.Context) {
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

func (h *EtudiantHandler) UpdateEtudiant(c *gin.Context) {
	id, ok := crud.BindID(c)
	if !ok {
		return
	}
	req, ok := crud.BindJSON[dto.EtudiantDTO](c)
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

func (h *EtudiantHandler) DeleteEtudiant(c *gin.Context) {
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

func (h *EtudiantHandler) UploadPhoto(c *gin.Context) {
	id, ok := crud.BindID(c)
	if !ok {
		return
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, etudiant.MaxPhotoSize+1<<20)
	file, err := c.FormFile(photoField)
	if err != nil {
		response.BadRequest(c, "La photo est obligatoire (champ multipart \"photo\", 5 Mo maximum)")
		return
	}

	f, err := file.Open()
	if err != nil {
		response.BadRequest(c, "Impossible de lire la photo")
		return
	}
	defer f.Close()

	res, err := h.service.SetPhoto(c.Request.Context(), id, f, file.Filename, file.Size)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}
