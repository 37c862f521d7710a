package main

import (
	"log"

	"subscription-be/internal/config"
	"subscription-be/internal/model"
	"subscription-be/pkg/database"
)

func main() {
	cfg := config.Load()

	gormDB, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Panicf("Unable to connect to GORM DB: %v", err)
	}

	log.Println("Running migrations...")
	err = gormDB.AutoMigrate(
		&model.Plan{},
		&model.Subscription{},
		&model.BillingEventLog{},
	)
	if err != nil {
		log.Panicf("Migration failed: %v", err)
	}

	log.Println("Migrations completed")
}
