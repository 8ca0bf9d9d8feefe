package config

import (
	"errors"
	"log"

	"assurgest/internal/adapters/persistence/models"
	"assurgest/internal/core/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SeedReferenceData seeds folder states and the usual insurance types
func SeedReferenceData(db *gorm.DB) error {
	if err := seedFolderStates(db); err != nil {
		return err
	}
	if err := seedInsuranceTypes(db); err != nil {
		return err
	}

	log.Println("✅ Reference data seeded successfully")
	return nil
}

func seedFolderStates(db *gorm.DB) error {
	states := []models.FolderState{
		{Name: domain.FolderStateOpen, Description: "Dossier ouvert, en attente de traitement"},
		{Name: domain.FolderStateInProgress, Description: "Dossier en cours d'instruction"},
		{Name: domain.FolderStateClosed, Description: "Dossier clôturé"},
	}

	for _, st := range states {
		var existing models.FolderState
		err := db.Where("nom_etat = ?", st.Name).First(&existing).Error
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		st.ID = uuid.New()
		if err := db.Create(&st).Error; err != nil {
			return err
		}
		log.Printf("   Created folder state: %s", st.Name)
	}
	return nil
}

func seedInsuranceTypes(db *gorm.DB) error {
	types := []models.InsuranceType{
		{Name: "Automobile", Description: "Responsabilité civile et dommages aux véhicules"},
		{Name: "Habitation", Description: "Multirisque habitation"},
		{Name: "Santé", Description: "Frais médicaux et hospitalisation"},
		{Name: "Vie", Description: "Assurance vie et prévoyance"},
		{Name: "Voyage", Description: "Assistance et frais à l'étranger"},
	}

	for _, it := range types {
		var existing models.InsuranceType
		err := db.Where("nom = ?", it.Name).First(&existing).Error
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		it.ID = uuid.New()
		if err := db.Create(&it).Error; err != nil {
			return err
		}
		log.Printf("   Created insurance type: %s", it.Name)
	}
	return nil
}
