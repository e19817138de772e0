// Package mapper is the single translation point between the enseignant
// entity and its wire shape.
package mapper

import (
	"time"

	"gorm.io/datatypes"

	"uasz.sn/utilisateursapi/internal/entity"
	"uasz.sn/utilisateursapi/internal/modules/enseignant/dto"
	"uasz.sn/utilisateursapi/pkg/sanitize"
)

func ToDTO(e *entity.Enseignant) *dto.EnseignantDTO {
	if e == nil {
		return nil
	}
	actif := e.Actif
	return &dto.EnseignantDTO{
		ID:        e.ID,
		Nom:       e.Nom,
		Prenom:    e.Prenom,
		Email:     e.Email,
		Telephone: e.Telephone,
		Matricule: e.Matricule,
		Grade:     string(e.Grade),
		CreateBy:  e.CreatedBy,
		CreateAt:  formatDate(e.CreatedAt),
		Actif:     &actif,
		RoleIDs:   roleIDs(e.Roles),
	}
}

// ToEntity builds an entity from d. Roles only carry their ids; the service
// resolves them.
func ToEntity(d *dto.EnseignantDTO) *entity.Enseignant {
	if d == nil {
		return nil
	}
	e := &entity.Enseignant{
		ID:        d.ID,
		Nom:       sanitize.Text(d.Nom),
		Prenom:    sanitize.Text(d.Prenom),
		Email:     sanitize.Email(d.Email),
		Telephone: d.Telephone,
		Matricule: sanitize.Text(d.Matricule),
		Grade:     entity.Grade(d.Grade),
		CreatedBy: sanitize.Text(d.CreateBy),
		CreatedAt: parseDate(d.CreateAt),
		Actif:     true,
	}
	if d.Actif != nil {
		e.Actif = *d.Actif
	}
	for _, id := range d.RoleIDs {
		e.Roles = append(e.Roles, entity.Role{ID: id})
	}
	return e
}

// UpdateFromDTO overwrites the identity and contact fields. Id, state and
// audit fields belong to the server and are kept.
func UpdateFromDTO(d *dto.EnseignantDTO, e *entity.Enseignant) {
	if d == nil || e == nil {
		return
	}
	e.Nom = sanitize.Text(d.Nom)
	e.Prenom = sanitize.Text(d.Prenom)
	e.Email = sanitize.Email(d.Email)
	e.Telephone = d.Telephone
	e.Matricule = sanitize.Text(d.Matricule)
	e.Grade = entity.Grade(d.Grade)
}

// PatchFromDTO overwrites only the fields present in p.
func PatchFromDTO(p *dto.EnseignantPatchDTO, e *entity.Enseignant) {
	if p == nil || e == nil {
		return
	}
	if p.Nom != nil {
		e.Nom = sanitize.Text(*p.Nom)
	}
	if p.Prenom != nil {
		e.Prenom = sanitize.Text(*p.Prenom)
	}
	if p.Email != nil {
		e.Email = sanitize.Email(*p.Email)
	}
	if p.Telephone != nil {
		e.Telephone = p.Telephone
	}
	if p.Matricule != nil {
		e.Matricule = sanitize.Text(*p.Matricule)
	}
	if p.Grade != nil {
		e.Grade = entity.Grade(*p.Grade)
	}
}

func roleIDs(roles []entity.Role) []uint {
	if len(roles) == 0 {
		return nil
	}
	ids := make([]uint, 0, len(roles))
	for _, r := range roles {
		ids = append(ids, r.ID)
	}
	return ids
}

func formatDate(d datatypes.Date) string {
	t := time.Time(d)
	if t.IsZero() {
		return ""
	}
	return t.Format(dto.DateLayout)
}

func parseDate(s string) datatypes.Date {
	t, err := time.Parse(dto.DateLayout, s)
	if err != nil {
		return datatypes.Date{}
	}
	return datatypes.Date(t)
}
