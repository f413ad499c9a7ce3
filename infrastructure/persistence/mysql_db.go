package persistence

import (
	"fmt"
	"time"

	"stream-engage/domain/model"
	"stream-engage/infrastructure/configuration"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// NewMySQLDB opens the gorm connection backing the join-log audit trail in
// local/dev environments.
func NewMySQLDB() (*gorm.DB, error) {
	cfg := configuration.C.Database.MySql
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
		cfg.User, cfg.Password, cfg.Host, cfg.Port, cfg.Name)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)

	return db, nil
}

// EnsureJoinLogSchema migrates the join_logs table. Safe to call at startup.
func EnsureJoinLogSchema(db *gorm.DB) error {
	return db.AutoMigrate(&model.JoinLogEntry{})
}
