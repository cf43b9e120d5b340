package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	Cart         CartConfig
	Freight      FreightConfig
	GCP          GCPConfig
	PubSub       PubSubConfig
	FeatureFlags FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"CLICKPRATO_APP_ENV" required:"true"`
	Port         string `envconfig:"CLICKPRATO_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"CLICKPRATO_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"CLICKPRATO_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"CLICKPRATO_DB_DSN"`
	Driver string `envconfig:"CLICKPRATO_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"CLICKPRATO_DB_HOST"`
	LegacyPort     int    `envconfig:"CLICKPRATO_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"CLICKPRATO_DB_USER"`
	LegacyPassword string `envconfig:"CLICKPRATO_DB_PASSWORD"`
	LegacyName     string `envconfig:"CLICKPRATO_DB_NAME"`
	LegacySSLMode  string `envconfig:"CLICKPRATO_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"CLICKPRATO_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"CLICKPRATO_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"CLICKPRATO_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"CLICKPRATO_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"CLICKPRATO_REDIS_URL" required:"true"`
	Address      string        `envconfig:"CLICKPRATO_REDIS_ADDR"`
	Password     string        `envconfig:"CLICKPRATO_REDIS_PASSWORD"`
	DB           int           `envconfig:"CLICKPRATO_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"CLICKPRATO_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"CLICKPRATO_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"CLICKPRATO_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"CLICKPRATO_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"CLICKPRATO_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// CartConfig governs persisted cart snapshots.
type CartConfig struct {
	SnapshotTTL time.Duration `envconfig:"CLICKPRATO_CART_SNAPSHOT_TTL" default:"168h"`
}

// FreightConfig carries the flat freight fallback used when the external
// freight collaborator is not wired.
type FreightConfig struct {
	FlatAmount string `envconfig:"CLICKPRATO_FREIGHT_FLAT_AMOUNT" default:"8.00"`
}

type GCPConfig struct {
	ProjectID              string `envconfig:"CLICKPRATO_GCP_PROJECT_ID"`
	CredentialsJSON        string `envconfig:"CLICKPRATO_GCP_CREDENTIALS_JSON"`
	ApplicationCredentials string `envconfig:"CLICKPRATO_GOOGLE_APPLICATION_CREDENTIALS"`
}

type PubSubConfig struct {
	OrdersTopic  string `envconfig:"CLICKPRATO_PUBSUB_ORDERS_TOPIC" default:"cp-order-events"`
	LoyaltyTopic string `envconfig:"CLICKPRATO_PUBSUB_LOYALTY_TOPIC" default:"cp-loyalty-events"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"CLICKPRATO_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"CLICKPRATO_AUTO_MIGRATE" default:"false"`
	PubSubSink  bool `envconfig:"CLICKPRATO_PUBSUB_SINK" default:"false"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	legacyValues := map[string]string{
		EnvDBHost: db.LegacyHost,
		EnvDBUser: db.LegacyUser,
		EnvDBName: db.LegacyName,
	}
	for _, env := range legacyDBEnvVars {
		if legacyValues[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.LegacyUser)
	if db.LegacyPassword != "" {
		userInfo = url.UserPassword(db.LegacyUser, db.LegacyPassword)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.LegacyHost, db.LegacyPort),
		Path:   db.LegacyName,
	}

	if db.LegacySSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.LegacySSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
