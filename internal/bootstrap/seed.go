package bootstrap

import (
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"uasz.sn/utilisateursapi/internal/entity"
	"uasz.sn/utilisateursapi/pkg/apperror"
)

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&entity.Role{},
		&entity.Enseignant{},
		&entity.Vacataire{},
		&entity.Etudiant{},
	); err != nil {
		return apperror.DataInitialization("migration", err)
	}
	return nil
}

func strPtr(s string) *string {
	return &s
}

// DefaultRoles is the reference set inserted at startup.
func DefaultRoles() []entity.Role {
	return []entity.Role{
		{Libelle: entity.RoleAdmin, Description: strPtr("Administrateur ayant tous les droits.")},
		{Libelle: entity.RoleEtudiant, Description: strPtr("Utilisateur étudiant ayant un accès limité.")},
		{Libelle: entity.RoleEnseignant, Description: strPtr("Membre du personnel enseignant.")},
		{Libelle: entity.RoleResponsable, Description: strPtr("Responsable pédagogique ou administratif.")},
		{Libelle: entity.RoleVisiteur, Description: strPtr("Utilisateur sans compte permanent.")},
	}
}

// SeedRoles inserts the missing default roles. Running it twice is a no-op.
func SeedRoles(db *gorm.DB) error {
	created := 0
	err := db.Transaction(func(tx *gorm.DB) error {
		for _, role := range DefaultRoles() {
			var count int64
			if err := tx.Model(&entity.Role{}).
				Where("libelle = ?", role.Libelle).
				Count(&count).Error; err != nil {
				return err
			}

			if count == 0 {
				if err := tx.Create(&role).Error; err != nil {
					return err
				}
				created++
			}
		}
		return nil
	})
	if err != nil {
		return apperror.DataInitialization("rôles", err)
	}

	log.Info().Int("created", created).Msg("default roles seeded")
	return nil
}
