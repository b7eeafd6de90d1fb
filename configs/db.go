package configs

import (
	"backend/entity"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func ConnectionDB(cfg *Config) (*gorm.DB, error) {
	// TranslateError ทำให้ unique violation กลายเป็น gorm.ErrDuplicatedKey
	return gorm.Open(sqlite.Open(cfg.DBSource), &gorm.Config{TranslateError: true})
}

func SetupDatabase(db *gorm.DB) error {
	// Migrate the schema
	return db.AutoMigrate(
		&entity.User{},
		&entity.Order{},
		&entity.ChatRoom{},
		&entity.Message{},
	)
}
