package dto

type RoleDTO struct {
	ID          uint    `json:"id"`
	Libelle     string  `json:"libelle" binding:"required,max=50"`
	Description *string `json:"description,omitempty" binding:"omitempty,max=255"`
}
