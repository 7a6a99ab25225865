package main

import (
	"log"
	"os"

	"hotel-booking-be/internal/model"
	"hotel-booking-be/pkg/database"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	color.Cyan("🚀 Seeding development data\n")

	admin := model.User{
		ID:       uuid.MustParse("00000000-0000-0000-0000-000000000001"),
		Email:    "admin@example.com",
		FullName: "Platform Admin",
		Role:     "admin",
		Status:   "active",
	}
	owner := model.User{
		ID:       uuid.MustParse("00000000-0000-0000-0000-000000000002"),
		Email:    "owner@example.com",
		FullName: "Hotel Owner",
		Role:     "hotelOwner",
		Status:   "active",
	}
	guest := model.User{
		ID:       uuid.MustParse("00000000-0000-0000-0000-000000000003"),
		Email:    "guest@example.com",
		FullName: "Regular Guest",
		Role:     "user",
		Status:   "active",
	}

	color.Yellow("\n[1] Users")
	seedUsers(db, []model.User{admin, owner, guest})

	color.Yellow("\n[2] Hotels")
	hotels := []model.Hotel{
		{
			ID:            uuid.MustParse("10000000-0000-0000-0000-000000000001"),
			OwnerID:       owner.ID,
			Name:          "Harbor View Hotel",
			City:          "Jakarta",
			Country:       "Indonesia",
			NightlyPrice:  850000,
			Currency:      "IDR",
			DailyCapacity: 12,
			Status:        "approved",
		},
		{
			ID:            uuid.MustParse("10000000-0000-0000-0000-000000000002"),
			OwnerID:       owner.ID,
			Name:          "Hillside Retreat",
			City:          "Bandung",
			Country:       "Indonesia",
			NightlyPrice:  40,
			Currency:      "USD",
			DailyCapacity: 0, // unlimited
			Status:        "pending",
		},
	}
	seedHotels(db, hotels)

	color.Green("\n✅ Seed complete")
}

func seedUsers(db *gorm.DB, users []model.User) {
	for _, u := range users {
		err := db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoNothing: true,
		}).Create(&u).Error
		if err != nil {
			color.Red("Failed to seed user %s: %v", u.Email, err)
			continue
		}
		color.Green("Seeded user %s (%s)", u.Email, u.Role)
	}
}

func seedHotels(db *gorm.DB, hotels []model.Hotel) {
	for _, h := range hotels {
		err := db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoNothing: true,
		}).Create(&h).Error
		if err != nil {
			color.Red("Failed to seed hotel %s: %v", h.Name, err)
			continue
		}
		color.Green("Seeded hotel %s (%s)", h.Name, h.Status)
	}
}
