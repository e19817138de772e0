package service

import (
	"fmt"

	"uasz.sn/utilisateursapi/internal/entity"
	"uasz.sn/utilisateursapi/pkg/sanitize"
)

// Kind tells which registry a directory entry comes from.
type Kind string

const (
	KindEnseignant Kind = "enseignant"
	KindVacataire  Kind = "vacataire"
	KindEtudiant   Kind = "etudiant"
)

// Entry is one person in the directory index.
type Entry struct {
	ID     string `json:"id"`
	Kind   Kind   `json:"kind"`
	RefID  uint   `json:"refId"`
	Nom    string `json:"nom"`
	Prenom string `json:"prenom"`
	Email  string `json:"email"`
	Actif  bool   `json:"actif"`
}

// DocumentID is the index primary key, unique across kinds.
func DocumentID(kind Kind, id uint) string {
	return fmt.Sprintf("%s-%d", kind, id)
}

func newEntry(kind Kind, id uint, nom, prenom, email string, actif bool) Entry {
	return Entry{
		ID:     DocumentID(kind, id),
		Kind:   kind,
		RefID:  id,
		Nom:    sanitize.Text(nom),
		Prenom: sanitize.Text(prenom),
		Email:  sanitize.Text(email),
		Actif:  actif,
	}
}

func FromEnseignant(e *entity.Enseignant) Entry {
	return newEntry(KindEnseignant, e.ID, e.Nom, e.Prenom, e.Email, e.Actif)
}

func FromVacataire(v *entity.Vacataire) Entry {
	return newEntry(KindVacataire, v.ID, v.Nom, v.Prenom, v.Email, v.Actif)
}

// Students have no active flag; they are listed as active.
func FromEtudiant(e *entity.Etudiant) Entry {
	return newEntry(KindEtudiant, e.ID, e.Nom, e.Prenom, e.Email, true)
}
