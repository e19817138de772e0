package mapper

import (
	"time"

	"gorm.io/datatypes"

	"uasz.sn/utilisateursapi/internal/entity"
	"uasz.sn/utilisateursapi/internal/modules/etudiant/dto"
	"uasz.sn/utilisateursapi/pkg/sanitize"
)

func ToDTO(e *entity.Etudiant) *dto.EtudiantDTO {
	if e == nil {
		return nil
	}
	return &dto.EtudiantDTO{
		ID:            e.ID,
		Nom:           e.Nom,
		Prenom:        e.Prenom,
		Matricule:     e.Matricule,
		Email:         e.Email,
		DateNaissance: formatDate(e.DateNaissance),
		LieuNaissance: e.LieuNaissance,
		Photo:         e.Photo,
		CreateBy:      e.CreatedBy,
		CreateAt:      formatDate(e.CreatedAt),
		RoleIDs:       roleIDs(e.Roles),
	}
}

// ToEntity copies the client-owned fields. Email and photo are left empty.
func ToEntity(d *dto.EtudiantDTO) *entity.Etudiant {
	if d == nil {
		return nil
	}
	e := &entity.Etudiant{
		ID:            d.ID,
		Nom:           sanitize.Text(d.Nom),
		Prenom:        sanitize.Text(d.Prenom),
		Matricule:     sanitize.Text(d.Matricule),
		DateNaissance: parseDate(d.DateNaissance),
		LieuNaissance: sanitize.Text(d.LieuNaissance),
		CreatedBy:     sanitize.Text(d.CreateBy),
		CreatedAt:     parseDate(d.CreateAt),
	}
	for _, id := range d.RoleIDs {
		e.Roles = append(e.Roles, entity.Role{ID: id})
	}
	return e
}

func UpdateFromDTO(d *dto.EtudiantDTO, e *entity.Etudiant) {
	if d == nil || e == nil {
		return
	}
	e.Nom = sanitize.Text(d.Nom)
	e.Prenom = sanitize.Text(d.Prenom)
	e.Matricule = sanitize.Text(d.Matricule)
	e.DateNaissance = parseDate(d.DateNaissance)
	e.LieuNaissance = sanitize.Text(d.LieuNaissance)
}

func roleIDs(roles []entity.Role) []uint {
	if len(roles) == 0 {
		return nil
	}
	ids := make([]uint, len(roles))
	for i, r := range roles {
		ids[i] = r.ID
	}
	return ids
}

func formatDate(d datatypes.Date) string {
	if time.Time(d).IsZero() {
		return ""
	}
	return time.Time(d).Format(dto.DateLayout)
}

func parseDate(s string) datatypes.Date {
	if s == "" {
		return datatypes.Date{}
	}
	t, err := time.Parse(dto.DateLayout, s)
	if err != nil {
		return datatypes.Date{}
	}
	return datatypes.Date(t)
}
