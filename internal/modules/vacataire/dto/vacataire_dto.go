package dto

import "time"

type VacataireDTO struct {
	ID               uint       `json:"id"`
	Nom              string     `json:"nom" binding:"required,min=2,max=50"`
	Prenom           string     `json:"prenom" binding:"required,min=2,max=50"`
	Email            string     `json:"email" binding:"required,email,max=100"`
	Telephone        *string    `json:"telephone,omitempty" binding:"omitempty,telephone"`
	Specialite       string     `json:"specialite" binding:"max=100"`
	Actif            bool       `json:"actif"`
	DateCreation     *time.Time `json:"dateCreation,omitempty"`
	DateModification *time.Time `json:"dateModification,omitempty"`
}

type EmailRequest struct {
	Email string `uri:"email" binding:"required,email"`
}
