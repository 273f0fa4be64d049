package database

import (
	"log/slog"

	"github.com/locavor/account-service/internal/models"
	"gorm.io/gorm"
)

var defaultProfessions = []models.Profession{
	{Code: "maraicher", NameEn: "Market gardener", NameFr: "Maraîcher"},
	{Code: "arboriculteur", NameEn: "Fruit grower", NameFr: "Arboriculteur"},
	{Code: "eleveur", NameEn: "Livestock farmer", NameFr: "Éleveur"},
	{Code: "fromager", NameEn: "Cheesemaker", NameFr: "Fromager"},
	{Code: "apiculteur", NameEn: "Beekeeper", NameFr: "Apiculteur"},
	{Code: "vigneron", NameEn: "Winemaker", NameFr: "Vigneron"},
	{Code: "brasseur", NameEn: "Brewer", NameFr: "Brasseur"},
	{Code: "boulanger", NameEn: "Baker", NameFr: "Boulanger"},
	{Code: "pecheur", NameEn: "Fisherman", NameFr: "Pêcheur"},
	{Code: "cerealier", NameEn: "Cereal farmer", NameFr: "Céréalier"},
}

// SeedProfessions fills an empty profession catalog so a fresh deployment
// can validate producer profiles. Existing rows are never touched.
func SeedProfessions(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Profession{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	professions := make([]models.Profession, len(defaultProfessions))
	copy(professions, defaultProfessions)
	if err := db.Create(&professions).Error; err != nil {
		return err
	}
	slog.Info("profession catalog seeded", "count", len(professions))
	return nil
}
