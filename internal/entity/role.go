package entity

// Role is shared reference data: Enseignant and Etudiant point at it through
// join tables, it keeps no list of its holders.
type Role struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	Libelle     string  `gorm:"size:50;uniqueIndex;not null" json:"libelle"`
	Description *string `gorm:"size:255" json:"description,omitempty"`
}

// Seeded role labels.
const (
	RoleAdmin       = "ADMIN"
	RoleEtudiant    = "ETUDIANT"
	RoleEnseignant  = "ENSEIGNANT"
	RoleResponsable = "RESPONSABLE"
	RoleVisiteur    = "VISITEUR"
)
