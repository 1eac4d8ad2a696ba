package database

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"volunteer-api/internal/domain"
)

// SeedRoles inserts the built-in role catalog. Safe to run on every start.
func SeedRoles(db *gorm.DB) error {
	for _, name := range domain.DefaultRoles {
		role := domain.Role{Name: name}
		if err := db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}},
			DoNothing: true,
		}).Create(&role).Error; err != nil {
			return err
		}
	}
	return nil
}
