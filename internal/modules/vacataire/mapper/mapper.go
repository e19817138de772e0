package mapper

import (
	"time"

	"uasz.sn/utilisateursapi/internal/entity"
	"uasz.sn/utilisateursapi/internal/modules/vacataire/dto"
	"uasz.sn/utilisateursapi/pkg/sanitize"
)

func ToDTO(v *entity.Vacataire) *dto.VacataireDTO {
	if v == nil {
		return nil
	}
	return &dto.VacataireDTO{
		ID:               v.ID,
		Nom:              v.Nom,
		Prenom:           v.Prenom,
		Email:            v.Email,
		Telephone:        v.Telephone,
		Specialite:       v.Specialite,
		Actif:            v.Actif,
		DateCreation:     timePtr(v.DateCreation),
		DateModification: timePtr(v.DateModification),
	}
}

func ToEntity(d *dto.VacataireDTO) *entity.Vacataire {
	if d == nil {
		return nil
	}
	v := &entity.Vacataire{
		ID:         d.ID,
		Nom:        sanitize.Text(d.Nom),
		Prenom:     sanitize.Text(d.Prenom),
		Email:      sanitize.Email(d.Email),
		Telephone:  d.Telephone,
		Specialite: sanitize.Text(d.Specialite),
		Actif:      d.Actif,
	}
	if d.DateCreation != nil {
		v.DateCreation = *d.DateCreation
	}
	if d.DateModification != nil {
		v.DateModification = *d.DateModification
	}
	return v
}

// UpdateFromDTO overwrites the contact fields. State and audit dates stay server-owned.
func UpdateFromDTO(d *dto.VacataireDTO, v *entity.Vacataire) {
	if d == nil || v == nil {
		return
	}
	v.Nom = sanitize.Text(d.Nom)
	v.Prenom = sanitize.Text(d.Prenom)
	v.Email = sanitize.Email(d.Email)
	v.Telephone = d.Telephone
	v.Specialite = sanitize.Text(d.Specialite)
}

func timePtr(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}
