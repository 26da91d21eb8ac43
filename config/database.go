package config

import (
	"os"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/studytok/api/models"
)

var Database *gorm.DB

// Connect opens the database and migrates the schema. Postgres is used when
// DB_URL is set; otherwise a local SQLite file keeps development simple.
func Connect() error {
	var err error
	if dbURL := os.Getenv("DB_URL"); dbURL != "" {
		Database, err = gorm.Open(postgres.Open(dbURL), &gorm.Config{})
	} else {
		path := os.Getenv("DB_PATH")
		if path == "" {
			path = "studytok.db"
		}
		Database, err = gorm.Open(sqlite.Open(path), &gorm.Config{})
	}
	if err != nil {
		panic("failed to connect database")
	}

	err = Database.AutoMigrate(
		&models.User{},
		&models.Deck{},
		&models.Card{},
		&models.Progress{},
		&models.Import{},
	)
	if err != nil {
		panic("failed to auto migrate database")
	}

	return nil
}
