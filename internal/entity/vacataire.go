package entity

import "time"

type Vacataire struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	Nom              string    `gorm:"size:50;not null" json:"nom"`
	Prenom           string    `gorm:"size:50;not null" json:"prenom"`
	Email            string    `gorm:"size:100;uniqueIndex;not null" json:"email"`
	Telephone        *string   `gorm:"size:20" json:"telephone,omitempty"`
	Specialite       string    `gorm:"size:100" json:"specialite"`
	Actif            bool      `gorm:"not null;index" json:"actif"`
	DateCreation     time.Time `gorm:"not null" json:"date_creation"`
	DateModification time.Time `gorm:"not null" json:"date_modification"`
}
