package dto

import (
	"uasz.sn/utilisateursapi/internal/entity"
	"uasz.sn/utilisateursapi/pkg/validator"
)

// DateLayout is the wire format of createAt.
const DateLayout = "2006-01-02"

func init() {
	validator.RegisterEnum("grade", "%s n'est pas un grade reconnu", func(s string) bool {
		return entity.Grade(s).Valid()
	})
}

type EnseignantDTO struct {
	ID        uint    `json:"id"`
	Nom       string  `json:"nom" binding:"required,min=2,max=50"`
	Prenom    string  `json:"prenom" binding:"required,min=2,max=50"`
	Email     string  `json:"email" binding:"required,email,max=100"`
	Telephone *string `json:"telephone,omitempty" binding:"omitempty,telephone"`
	Matricule string  `json:"matricule" binding:"required,max=50"`
	Grade     string  `json:"grade" binding:"required,grade"`
	CreateBy  string  `json:"createBy,omitempty" binding:"max=100"`
	CreateAt  string  `json:"createAt,omitempty" binding:"omitempty,datetime=2006-01-02"`
	Actif     *bool   `json:"actif,omitempty"`
	RoleIDs   []uint  `json:"roleIds,omitempty" binding:"omitempty,dive,min=1"`
}

// EnseignantPatchDTO carries a partial update; nil fields are left untouched.
type EnseignantPatchDTO struct {
	Nom       *string `json:"nom" binding:"omitempty,min=2,max=50"`
	Prenom    *string `json:"prenom" binding:"omitempty,min=2,max=50"`
	Email     *string `json:"email" binding:"omitempty,email,max=100"`
	Telephone *string `json:"telephone" binding:"omitempty,telephone"`
	Matricule *string `json:"matricule" binding:"omitempty,min=1,max=50"`
	Grade     *string `json:"grade" binding:"omitempty,grade"`
	RoleIDs   []uint  `json:"roleIds" binding:"omitempty,dive,min=1"`
}

type SearchQuery struct {
	Nom string `form:"nom" binding:"required,max=50"`
}
