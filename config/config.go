package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Config is resolved in three layers: defaults, the optional YAML file named
// by CONFIG_FILE, then environment variables.
type Config struct {
	Port         string        `yaml:"port"`
	DBDriver     string        `yaml:"db_driver"`
	DatabaseURL  string        `yaml:"database_url"`
	JWTSecret    string        `yaml:"jwt_secret"`
	JWTTTL       time.Duration `yaml:"jwt_ttl"`
	CORSOrigins  []string      `yaml:"cors_origins"`
	RedisAddr    string        `yaml:"redis_addr"`
	KafkaBrokers []string      `yaml:"kafka_brokers"`
	KafkaTopic   string        `yaml:"kafka_topic"`
	SeedDemoData bool          `yaml:"seed_demo_data"`
	LogSQL       bool          `yaml:"log_sql"`
}

func Default() Config {
	return Config{
		Port:     "8080",
		DBDriver: DriverMySQL,
		JWTTTL:   time.Hour,
		CORSOrigins: []string{
			"http://localhost:3000",
			"http://localhost:5173",
		},
		KafkaTopic: "hotel.bookings",
	}
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("warning: .env not found or couldn't load it; continuing with environment variables")
	}

	cfg := Default()
	if path := strings.TrimSpace(os.Getenv("CONFIG_FILE")); path != "" {
		if err := loadFile(path, &cfg); err != nil {
			return nil, err
		}
	}
	if err := applyEnv(&cfg); err != nil {
		return nil, err
	}

	cfg.DBDriver = strings.ToLower(strings.TrimSpace(cfg.DBDriver))
	switch cfg.DBDriver {
	case DriverMySQL, DriverPostgres, DriverSQLite:
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}
	return &cfg, nil
}

// Validate checks what the HTTP server needs beyond a database.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.JWTSecret) == "" {
		return errors.New("JWT_SECRET environment variable is not set")
	}
	if c.JWTTTL <= 0 {
		return errors.New("JWT_TTL must be positive")
	}
	return nil
}

func loadFile(path string, cfg *Config) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

func applyEnv(cfg *Config) error {
	cfg.Port = envOrDefault("PORT", cfg.Port)
	cfg.DBDriver = envOrDefault("DB_DRIVER", cfg.DBDriver)
	cfg.DatabaseURL = envOrDefault("DATABASE_URL", cfg.DatabaseURL)
	cfg.JWTSecret = envOrDefault("JWT_SECRET", cfg.JWTSecret)
	cfg.RedisAddr = envOrDefault("REDIS_ADDR", cfg.RedisAddr)
	cfg.KafkaTopic = envOrDefault("KAFKA_TOPIC", cfg.KafkaTopic)

	if v := os.Getenv("CORS_ORIGINS"); strings.TrimSpace(v) != "" {
		cfg.CORSOrigins = splitList(v)
	}
	if v := os.Getenv("KAFKA_BROKERS"); strings.TrimSpace(v) != "" {
		cfg.KafkaBrokers = splitList(v)
	}
	if v := strings.TrimSpace(os.Getenv("JWT_TTL")); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid JWT_TTL %q: %w", v, err)
		}
		cfg.JWTTTL = d
	}

	var err error
	if cfg.SeedDemoData, err = envBool("SEED_DEMO_DATA", cfg.SeedDemoData); err != nil {
		return err
	}
	if cfg.LogSQL, err = envBool("LOG_SQL", cfg.LogSQL); err != nil {
		return err
	}
	return nil
}

func envOrDefault(key, def string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	return value
}

func envBool(key string, def bool) (bool, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return def, fmt.Errorf("invalid %s %q: %w", key, value, err)
	}
	return b, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
