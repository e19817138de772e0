package entity

import "gorm.io/datatypes"

type Enseignant struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Nom       string         `gorm:"size:50;not null" json:"nom"`
	Prenom    string         `gorm:"size:50;not null" json:"prenom"`
	Email     string         `gorm:"size:100;uniqueIndex;not null" json:"email"`
	Telephone *string        `gorm:"size:20" json:"telephone,omitempty"`
	Matricule string         `gorm:"size:50;not null" json:"matricule"`
	Grade     Grade          `gorm:"size:30;not null" json:"grade"`
	CreatedBy string         `gorm:"size:100" json:"created_by"`
	CreatedAt datatypes.Date `gorm:"autoCreateTime:false" json:"created_at"`
	Actif     bool           `gorm:"not null" json:"actif"`
	Roles     []Role         `gorm:"many2many:enseignant_roles;" json:"roles,omitempty"`
}
