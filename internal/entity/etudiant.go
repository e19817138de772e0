package entity

import "gorm.io/datatypes"

type Etudiant struct {
	ID            uint           `gorm:"primaryKey" json:"id"`
	Nom           string         `gorm:"size:50;not null" json:"nom"`
	Prenom        string         `gorm:"size:50;not null" json:"prenom"`
	Matricule     string         `gorm:"size:50;uniqueIndex;not null" json:"matricule"`
	Email         string         `gorm:"size:100;uniqueIndex;not null" json:"email"`
	DateNaissance datatypes.Date `json:"date_naissance"`
	LieuNaissance string         `gorm:"size:100" json:"lieu_naissance"`
	Photo         *string        `gorm:"type:text" json:"photo,omitempty"`
	Roles         []Role         `gorm:"many2many:etudiant_roles;" json:"roles,omitempty"`
	CreatedBy     string         `gorm:"size:100" json:"created_by"`
	CreatedAt     datatypes.Date `gorm:"autoCreateTime:false" json:"created_at"`
}
