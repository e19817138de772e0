package dto

// DateLayout is the wire format of dateNaissance and createAt.
const DateLayout = "2006-01-02"

// EtudiantDTO is the student wire shape. Email and photo are produced by the
// server and ignored on input.
type EtudiantDTO struct {
	ID            uint    `json:"id"`
	Nom           string  `json:"nom" binding:"required,min=2,max=50"`
	Prenom        string  `json:"prenom" binding:"required,min=2,max=50"`
	Matricule     string  `json:"matricule" binding:"required,max=50"`
	Email         string  `json:"email,omitempty"`
	DateNaissance string  `json:"dateNaissance,omitempty" binding:"omitempty,datetime=2006-01-02"`
	LieuNaissance string  `json:"lieuNaissance,omitempty" binding:"max=100"`
	Photo         *string `json:"photo,omitempty"`
	CreateBy      string  `json:"createBy,omitempty" binding:"max=100"`
	CreateAt      string  `json:"createAt,omitempty" binding:"omitempty,datetime=2006-01-02"`
	RoleIDs       []uint  `json:"roleIds,omitempty" binding:"omitempty,dive,min=1"`
}
