package boot

import (
	"log"
	"os"
	"tms/src/db"
	"tms/src/models"
	"tms/src/types"
	"tms/src/utils"

	"gorm.io/gorm"
)

func InitDb() *gorm.DB {
	db := db.GetDb()

	err := db.AutoMigrate(
		&models.Company{},
		&models.User{},
		&models.TravelRequest{},
		&models.FlightSegment{},
		&models.HotelSegment{},
		&models.CabSegment{},
		&models.Passenger{},
		&models.TravelOption{},
		&models.BookingRecord{},
		&models.TravelDocument{},
	)
	if err != nil {
		log.Fatalf("error migration: %s", err.Error())
	}

	return db
}

// SeedMasterAdmin provisions the platform operator account from env on a
// fresh database. A no-op when one exists or when the env vars are unset.
func SeedMasterAdmin() {
	email := os.Getenv("MASTER_ADMIN_EMAIL")
	password := os.Getenv("MASTER_ADMIN_PASSWORD")
	if email == "" || password == "" {
		return
	}
	gdb := db.GetDb()
	if err := gdb.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.
			Model(&models.User{}).
			Where("role = ?", types.ROLE_MASTER_ADMIN).
			Count(&count).
			Error; err != nil {
			return err
		}
		if count > 0 {
			return nil
		}
		hash, err := utils.HashPassword(password)
		if err != nil {
			return err
		}
		master := models.User{
			Name:         "Master Admin",
			Email:        email,
			PasswordHash: hash,
			Role:         types.ROLE_MASTER_ADMIN,
		}
		return tx.Create(&master).Error
	}); err != nil {
		log.Printf("Error seeding master admin: %s\n", err.Error())
	}
}
