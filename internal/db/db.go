package db

import (
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/pro-master/backend/internal/config"
	"github.com/pro-master/backend/internal/models"
)

// GormConfig is shared by the postgres connection and the test datastore so
// both translate unique violations into gorm.ErrDuplicatedKey.
func GormConfig() *gorm.Config {
	return &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Warn),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	}
}

func NewDB(cfg *config.Config, log *zap.Logger) (*gorm.DB, error) {
	gcfg := GormConfig()
	gcfg.PrepareStmt = true

	db, err := gorm.Open(postgres.Open(cfg.DBUrl), gcfg)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.DBMaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.DBMaxIdleConns)
	sqlDB.SetConnMaxLifetime(time.Duration(cfg.DBConnMaxLifetimeM) * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := Migrate(db); err != nil {
		return nil, err
	}

	log.Info("database ready", zap.Int("max_open_conns", cfg.DBMaxOpenConns))
	return db, nil
}

// Migrate creates or updates every table. Parents come before children so
// foreign keys can be attached.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.User{},
		&models.ClientProfile{},
		&models.Category{},
		&models.Service{},
		&models.ServiceProfile{},
		&models.ServiceProfileCategory{},
		&models.ServiceProfileService{},
		&models.Image{},
		&models.Employee{},
		&models.Review{},
		&models.Comment{},
		&models.Favorite{},
		&models.Schedule{},
		&models.Appointment{},
		&models.AuditLog{},
	); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}
