package config

import (
	"fmt"
	"log"
	"net/url"
	"os"
	"strings"
	"time"

	"hotel-booking/models"

	"gorm.io/datatypes"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func mysqlDSNFromURL(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}

	user := u.User.Username()
	pass, _ := u.User.Password()
	host := u.Hostname()
	port := u.Port()
	if port == "" {
		port = "3306"
	}

	dbName := strings.TrimPrefix(u.Path, "/")
	if dbName == "" {
		return "", fmt.Errorf("mysql url missing database name")
	}

	q := u.Query()
	if q.Get("charset") == "" {
		q.Set("charset", "utf8mb4")
	}
	if q.Get("parseTime") == "" {
		q.Set("parseTime", "True")
	}
	if q.Get("loc") == "" {
		q.Set("loc", "UTC")
	}

	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?%s", user, pass, host, port, dbName, q.Encode()), nil
}

func resolveMySQLDSN(cfg *Config) (string, error) {
	raw := strings.TrimSpace(os.Getenv("MYSQL_URL"))
	if raw == "" {
		raw = strings.TrimSpace(cfg.DatabaseURL)
	}

	if raw != "" {
		if strings.HasPrefix(raw, "mysql://") {
			return mysqlDSNFromURL(raw)
		}
		return raw, nil
	}

	user := envOrDefault("DB_USER", "root")
	pass := envOrDefault("DB_PASS", "")
	host := envOrDefault("DB_HOST", "127.0.0.1")
	port := envOrDefault("DB_PORT", "3306")
	dbName := envOrDefault("DB_NAME", "hotel_booking")

	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
		user, pass, host, port, dbName,
	), nil
}

func resolvePostgresDSN(cfg *Config) string {
	if raw := strings.TrimSpace(cfg.DatabaseURL); raw != "" {
		return raw
	}
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=UTC",
		envOrDefault("DB_HOST", "127.0.0.1"),
		envOrDefault("DB_USER", "postgres"),
		envOrDefault("DB_PASS", ""),
		envOrDefault("DB_NAME", "hotel_booking"),
		envOrDefault("DB_PORT", "5432"),
	)
}

// Dialector picks the gorm driver for cfg.DBDriver.
func Dialector(cfg *Config) (gorm.Dialector, error) {
	switch cfg.DBDriver {
	case DriverMySQL, "":
		dsn, err := resolveMySQLDSN(cfg)
		if err != nil {
			return nil, err
		}
		return mysql.Open(dsn), nil
	case DriverPostgres:
		return postgres.Open(resolvePostgresDSN(cfg)), nil
	case DriverSQLite:
		path := strings.TrimSpace(cfg.DatabaseURL)
		if path == "" {
			path = "hotel_booking.db"
		}
		return sqlite.Open(path), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.DBDriver)
	}
}

func newGormLogger(cfg *Config) logger.Interface {
	level := logger.Warn
	if cfg.LogSQL {
		level = logger.Info
	}
	return logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  level,
			IgnoreRecordNotFoundError: true,
			Colorful:                  true,
		},
	)
}

// ConnectDatabase opens the store, migrates every model and optionally seeds
// demo rooms.
func ConnectDatabase(cfg *Config) (*gorm.DB, error) {
	dialector, err := Dialector(cfg)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         newGormLogger(cfg),
		TranslateError: true,
		// user_id / room_id are plain references, not enforced foreign keys
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		return nil, err
	}

	if cfg.DBDriver == DriverSQLite {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.SetMaxOpenConns(1)
		}
	}

	if err := Migrate(db); err != nil {
		CloseDatabase(db)
		return nil, err
	}
	if cfg.SeedDemoData {
		if err := SeedDatabase(db); err != nil {
			log.Printf("warning: failed to seed demo data: %v", err)
		}
	}
	return db, nil
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(models.All()...)
}

// SeedDatabase inserts a few demo rooms when the rooms table is empty.
func SeedDatabase(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Room{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		log.Println("Rooms already seeded")
		return nil
	}

	rooms := []models.Room{
		{
			Name:         "Standard Room",
			Description:  "Queen bed, city view",
			Price:        80,
			Capacity:     2,
			Amenities:    datatypes.JSONSlice[string]{"wifi", "air conditioning"},
			Images:       datatypes.JSONSlice[string]{},
			Availability: true,
		},
		{
			Name:         "Deluxe Room",
			Description:  "King bed, balcony",
			Price:        140,
			Capacity:     3,
			Amenities:    datatypes.JSONSlice[string]{"wifi", "minibar", "balcony"},
			Images:       datatypes.JSONSlice[string]{},
			Availability: true,
		},
		{
			Name:         "Family Suite",
			Description:  "Two bedrooms and a kitchenette",
			Price:        220,
			Capacity:     5,
			Amenities:    datatypes.JSONSlice[string]{"wifi", "kitchenette", "sofa bed"},
			Images:       datatypes.JSONSlice[string]{},
			Availability: true,
		},
	}
	if err := db.Create(&rooms).Error; err != nil {
		return err
	}
	log.Println("Rooms seeded")
	return nil
}

func CloseDatabase(db *gorm.DB) {
	if db == nil {
		return
	}
	sqlDB, err := db.DB()
	if err != nil {
		log.Printf("info: cannot get raw sql.DB: %v", err)
		return
	}
	if err := sqlDB.Close(); err != nil {
		log.Printf("warning: failed to close database: %v", err)
	}
}
