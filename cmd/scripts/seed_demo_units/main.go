package main

import (
	"fmt"
	"log"
	"os"

	"github.com/basecode360/traintrack/internal/config"
	"github.com/basecode360/traintrack/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Seeds a small demo hierarchy: one battalion with two companies, each with
// platoons and squads. Intended for local development only; refuses to run
// against a database that already has units.
func main() {
	cfg, err := config.Load(os.Getenv("CONFIG_PATH"))
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := models.InitDB(&cfg.Database); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := models.AutoMigrate(); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
	db := models.GetDB()

	var existing int64
	db.Model(&models.Unit{}).Count(&existing)
	if existing > 0 {
		log.Fatalf("Database already has %d units, refusing to seed", existing)
	}

	battalion := createUnit(db, "2-87 Infantry Battalion", "battalion", nil)

	for _, companyName := range []string{"Alpha Company", "Bravo Company"} {
		company := createUnit(db, companyName, "company", &battalion.ID)

		for p := 1; p <= 2; p++ {
			platoon := createUnit(db, fmt.Sprintf("%s, %d Platoon", companyName, p), "platoon", &company.ID)

			for s := 1; s <= 2; s++ {
				createUnit(db, fmt.Sprintf("%s, %d PLT, %d Squad", companyName, p, s), "squad", &platoon.ID)
			}
		}
	}

	var total int64
	db.Model(&models.Unit{}).Count(&total)
	fmt.Printf("Seeded %d units\n", total)
}

func createUnit(db *gorm.DB, name, level string, parentID *uint) *models.Unit {
	unit := models.Unit{
		Name:         name,
		UnitLevel:    level,
		ParentID:     parentID,
		ReferralCode: uuid.NewString(),
	}
	if err := db.Create(&unit).Error; err != nil {
		log.Fatalf("Failed to create unit %q: %v", name, err)
	}
	return &unit
}
