// api/db/db.go
package db

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/fixhub-app/fixhub/api/config"
	logger "github.com/fixhub-app/fixhub/api/logging"
	"github.com/fixhub-app/fixhub/api/model"
)

var DB *gorm.DB

func InitPostgres() error {
	dsn := config.GetString("postgres.dsn")

	gdb, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return fmt.Errorf("failed to connect to Postgres: %w", err)
	}

	if err := gdb.AutoMigrate(
		&model.Profile{},
		&model.Customer{},
		&model.Ticket{},
		&model.Order{},
		&model.OrderItem{},
		&model.Product{},
		&model.SecondHandProduct{},
		&model.ChatMessage{},
	); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	DB = gdb
	logger.Info("Successfully connected to Postgres")
	return nil
}

func ClosePostgres() {
	if DB == nil {
		return
	}
	sqlDB, err := DB.DB()
	if err != nil {
		return
	}
	if err := sqlDB.Close(); err != nil {
		logger.Error("Error closing Postgres connection")
	}
}
