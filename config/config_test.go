package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"hotel-booking/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"CONFIG_FILE", "PORT", "DB_DRIVER", "DATABASE_URL", "MYSQL_URL", "JWT_SECRET", "JWT_TTL",
		"CORS_ORIGINS", "REDIS_ADDR", "KAFKA_BROKERS", "KAFKA_TOPIC", "SEED_DEMO_DATA", "LOG_SQL",
		"DB_USER", "DB_PASS", "DB_HOST", "DB_PORT", "DB_NAME",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, DriverMySQL, cfg.DBDriver)
	assert.Equal(t, time.Hour, cfg.JWTTTL)
	assert.Empty(t, cfg.KafkaBrokers)
	assert.Error(t, cfg.Validate())
}

func TestLoadFileThenEnv(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
port: "9000"
db_driver: sqlite
database_url: ":memory:"
jwt_secret: from-file
jwt_ttl: 30m
kafka_brokers: [broker-1:9092]
seed_demo_data: true
`), 0o600))

	t.Setenv("CONFIG_FILE", path)
	t.Setenv("PORT", "9100")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("KAFKA_BROKERS", "k1:9092,k2:9092")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "9100", cfg.Port)
	assert.Equal(t, DriverSQLite, cfg.DBDriver)
	assert.Equal(t, "from-file", cfg.JWTSecret)
	assert.Equal(t, 30*time.Minute, cfg.JWTTTL)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.KafkaBrokers)
	assert.True(t, cfg.SeedDemoData)
	assert.NoError(t, cfg.Validate())
}

func TestLoadRejectsBadValues(t *testing.T) {
	clearEnv(t)
	t.Setenv("DB_DRIVER", "oracle")
	_, err := Load()
	assert.Error(t, err)

	clearEnv(t)
	t.Setenv("JWT_TTL", "forever")
	_, err = Load()
	assert.Error(t, err)

	clearEnv(t)
	t.Setenv("SEED_DEMO_DATA", "maybe")
	_, err = Load()
	assert.Error(t, err)

	clearEnv(t)
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "missing.yaml"))
	_, err = Load()
	assert.Error(t, err)
}

func TestMySQLDSNFromURL(t *testing.T) {
	dsn, err := mysqlDSNFromURL("mysql://app:pw@db.internal/hotel")
	require.NoError(t, err)
	assert.Equal(t, "app:pw@tcp(db.internal:3306)/hotel?charset=utf8mb4&loc=UTC&parseTime=True", dsn)

	_, err = mysqlDSNFromURL("mysql://app:pw@db.internal:3306/")
	assert.Error(t, err)
}

func TestResolveMySQLDSNFromParts(t *testing.T) {
	clearEnv(t)
	t.Setenv("DB_USER", "app")
	t.Setenv("DB_PASS", "pw")
	t.Setenv("DB_NAME", "hotel")

	dsn, err := resolveMySQLDSN(&Config{})
	require.NoError(t, err)
	assert.Equal(t, "app:pw@tcp(127.0.0.1:3306)/hotel?charset=utf8mb4&parseTime=True&loc=UTC", dsn)

	dsn, err = resolveMySQLDSN(&Config{DatabaseURL: "u:p@tcp(h:1)/d"})
	require.NoError(t, err)
	assert.Equal(t, "u:p@tcp(h:1)/d", dsn)
}

func TestDialector(t *testing.T) {
	clearEnv(t)
	for driver, name := range map[string]string{
		DriverMySQL:    "mysql",
		DriverPostgres: "postgres",
		DriverSQLite:   "sqlite",
	} {
		d, err := Dialector(&Config{DBDriver: driver})
		require.NoError(t, err)
		assert.Equal(t, name, d.Name())
	}

	_, err := Dialector(&Config{DBDriver: "oracle"})
	assert.Error(t, err)
}

func TestConnectDatabaseSQLiteSeeds(t *testing.T) {
	cfg := &Config{DBDriver: DriverSQLite, DatabaseURL: ":memory:", SeedDemoData: true}

	db, err := ConnectDatabase(cfg)
	require.NoError(t, err)
	defer CloseDatabase(db)

	var rooms int64
	require.NoError(t, db.Model(&models.Room{}).Count(&rooms).Error)
	assert.Equal(t, int64(3), rooms)

	// a second seed is a no-op
	require.NoError(t, SeedDatabase(db))
	require.NoError(t, db.Model(&models.Room{}).Count(&rooms).Error)
	assert.Equal(t, int64(3), rooms)

	for _, m := range models.All() {
		assert.True(t, db.Migrator().HasTable(m))
	}
}
