package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = "sweetquest"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	EnvDBDSN  = "SWEETQUEST_DB_DSN"
	EnvDBHost = "SWEETQUEST_DB_HOST"
	EnvDBUser = "SWEETQUEST_DB_USER"
	EnvDBName = "SWEETQUEST_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}

type Config struct {
	App           AppConfig
	DB            DBConfig
	Redis         RedisConfig
	JWT           JWTConfig
	Password      PasswordConfig
	AuthRateLimit AuthRateLimitConfig
	FeatureFlags  FeatureFlagsConfig
	Referral      ReferralConfig
	Checkout      CheckoutConfig
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
	Env          string `envconfig:"SWEETQUEST_APP_ENV" required:"true"`
	Port         string `envconfig:"SWEETQUEST_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"SWEETQUEST_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"SWEETQUEST_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"SWEETQUEST_DB_DSN"`
	Driver string `envconfig:"SWEETQUEST_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"SWEETQUEST_DB_HOST"`
	LegacyPort     int    `envconfig:"SWEETQUEST_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"SWEETQUEST_DB_USER"`
	LegacyPassword string `envconfig:"SWEETQUEST_DB_PASSWORD"`
	LegacyName     string `envconfig:"SWEETQUEST_DB_NAME"`
	LegacySSLMode  string `envconfig:"SWEETQUEST_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"SWEETQUEST_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"SWEETQUEST_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"SWEETQUEST_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"SWEETQUEST_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"SWEETQUEST_REDIS_URL" required:"true"`
	Address      string        `envconfig:"SWEETQUEST_REDIS_ADDR"`
	Password     string        `envconfig:"SWEETQUEST_REDIS_PASSWORD"`
	DB           int           `envconfig:"SWEETQUEST_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"SWEETQUEST_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"SWEETQUEST_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"SWEETQUEST_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"SWEETQUEST_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"SWEETQUEST_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret            string `envconfig:"SWEETQUEST_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"SWEETQUEST_JWT_ISSUER" required:"true"`
	ExpirationMinutes int    `envconfig:"SWEETQUEST_JWT_EXPIRATION_MINUTES" default:"60"`
}

// AccessTokenTTL returns the access token lifetime configured in minutes.
func (j JWTConfig) AccessTokenTTL() time.Duration {
	if j.ExpirationMinutes <= 0 {
		return 0
	}
	return time.Duration(j.ExpirationMinutes) * time.Minute
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"SWEETQUEST_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"SWEETQUEST_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"SWEETQUEST_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"SWEETQUEST_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"SWEETQUEST_ARGON_KEY_LEN" default:"32"`
}

type AuthRateLimitConfig struct {
	LoginWindow     time.Duration `envconfig:"SWEETQUEST_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginEmailLimit int           `envconfig:"SWEETQUEST_AUTH_RATE_LIMIT_LOGIN_EMAIL_LIMIT" default:"5"`
	LoginIPLimit    int           `envconfig:"SWEETQUEST_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"SWEETQUEST_AUTO_MIGRATE" default:"false"`
}

type ReferralConfig struct {
	// SessionTTL bounds how long a visitor's cached referral code survives
	// between visits.
	SessionTTL time.Duration `envconfig:"SWEETQUEST_REFERRAL_SESSION_TTL" default:"24h"`
}

type CheckoutConfig struct {
	MessengerPageID string        `envconfig:"SWEETQUEST_MESSENGER_PAGE_ID" required:"true"`
	CartTTL         time.Duration `envconfig:"SWEETQUEST_CART_TTL" default:"6h"`
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
