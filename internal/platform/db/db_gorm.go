package db

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	gpostgres "gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	adentity "adboard_backend/internal/feature/ads/domain/entity"
	authentity "adboard_backend/internal/feature/auth/domain/entity"
	fileentity "adboard_backend/internal/feature/files/domain/entity"
)

// OpenDB opens the relational engine and runs migrations.
// When DB_HOST is set it connects to PostgreSQL, otherwise it falls back
// to a local SQLite file (development default).
// TranslateError is enabled so unique-constraint violations surface as
// gorm.ErrDuplicatedKey regardless of the driver.
func OpenDB() *gorm.DB {
	cfg := &gorm.Config{TranslateError: true}

	var (
		db  *gorm.DB
		err error
	)

	if host := os.Getenv("DB_HOST"); host != "" {
		user := os.Getenv("DB_USER")
		pass := os.Getenv("DB_PASSWORD")
		name := os.Getenv("DB_NAME")
		port := os.Getenv("DB_PORT")
		if port == "" {
			port = "5432"
		}
		dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
			host, user, pass, name, port)
		db, err = gorm.Open(gpostgres.Open(dsn), cfg)
		if err != nil {
			log.Fatalf("failed to connect database: %v", err)
		}
		log.Println("USING_POSTGRES:", host)
	} else {
		path := os.Getenv("DB_PATH")
		if path == "" {
			path = "./adboard.db"
		}
		db, err = gorm.Open(sqlite.Open(path), cfg)
		if err != nil {
			log.Fatalf("failed to connect database: %v", err)
		}
		abs, _ := filepath.Abs(path)
		log.Println("USING_SQLITE:", abs)
	}

	// マイグレーション（User, Advertisement, StoredFile）
	if err := db.AutoMigrate(
		&authentity.User{},
		&adentity.Advertisement{},
		&fileentity.StoredFile{},
	); err != nil {
		log.Fatalf("failed to migrate: %v", err)
	}

	return db
}
