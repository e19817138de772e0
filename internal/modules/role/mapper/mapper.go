// Package mapper converts between the role entity and its wire shape.
package mapper

import (
	"uasz.sn/utilisateursapi/internal/entity"
	"uasz.sn/utilisateursapi/internal/modules/role/dto"
	"uasz.sn/utilisateursapi/pkg/sanitize"
)

func ToDTO(r *entity.Role) *dto.RoleDTO {
	if r == nil {
		return nil
	}
	return &dto.RoleDTO{
		ID:          r.ID,
		Libelle:     r.Libelle,
		Description: r.Description,
	}
}

func ToEntity(d *dto.RoleDTO) *entity.Role {
	if d == nil {
		return nil
	}
	return &entity.Role{
		ID:          d.ID,
		Libelle:     sanitize.Text(d.Libelle),
		Description: sanitize.Optional(d.Description),
	}
}

// UpdateFromDTO overwrites the mutable fields of r. The id is left alone.
func UpdateFromDTO(d *dto.RoleDTO, r *entity.Role) {
	if d == nil || r == nil {
		return
	}
	r.Libelle = sanitize.Text(d.Libelle)
	r.Description = sanitize.Optional(d.Description)
}
