package client

import (
	"log"
	"time"

	"medieaze-storefront/internal/model"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func InitSqliteClient(databaseURL string) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(databaseURL), &gorm.Config{})
	if err != nil {
		log.Fatal("failed to open database:", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatal(err)
	}

	// single writer, sqlite does not like concurrent writers
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err := db.AutoMigrate(
		&model.Product{},
		&model.StorageRecord{},
	); err != nil {
		log.Fatal(err)
	}

	return db
}
