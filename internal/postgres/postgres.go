package postgres

import (
	"log"
	"time"

	"geolink/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Init opens the database connection and migrates the schema. The
// returned handle is passed explicitly to every service that needs it;
// there is no ambient global connection.
func Init(url string) *gorm.DB {
	// Configure GORM logger with higher slow SQL threshold
	gormLogger := logger.New(
		log.New(log.Writer(), "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold: time.Millisecond * 500,
		},
	)

	db, err := gorm.Open(postgres.Open(url), &gorm.Config{
		Logger: gormLogger,
	})

	if err != nil {
		log.Fatalln(err)
	}

	// AutoMigrate models
	err = db.AutoMigrate(&model.Profile{}, &model.UserLocation{})
	if err != nil {
		log.Fatalln("Failed to migrate location models:", err)
	}

	return db
}
