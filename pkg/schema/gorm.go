package schema

import (
	"gorm.io/gorm"
)

// AllModels returns all schema models for GORM AutoMigrate.
func AllModels() []any {
	return []any{
		&Person{},
		&AcquisitionFact{},
		&Run{},
	}
}

// AllGenerators returns all models as DDL generators, in creation order.
func AllGenerators() []DDLGenerator {
	return []DDLGenerator{
		Person{},
		AcquisitionFact{},
		Run{},
	}
}

// Migrate runs GORM AutoMigrate to create or update schema.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(AllModels()...)
}
