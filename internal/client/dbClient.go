package client

import (
	"log"
	"time"

	"carita-payment-api/internal/model"

	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// InitDBClient opens the order database. An empty databaseURL falls back to a
// local sqlite file so the service runs standalone; anything else is treated
// as a MySQL DSN. TranslateError is on so duplicate-key violations surface as
// gorm.ErrDuplicatedKey on both drivers.
func InitDBClient(databaseURL string) *gorm.DB {
	var dialector gorm.Dialector = sqlite.Open("carita.db")
	if databaseURL != "" {
		dialector = mysql.Open(databaseURL)
	}

	db, err := gorm.Open(dialector, &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatal("failed to connect to database:", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatal(err)
	}

	// Connection pool (important for webhooks)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(50)
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err := db.AutoMigrate(
		&model.Order{},
		&model.OrderItem{},
		&model.WebhookEvent{},
	); err != nil {
		log.Fatal(err)
	}

	return db
}
