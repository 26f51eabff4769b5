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
	JWT          JWTConfig
	Admin        AdminConfig
	Password     PasswordConfig
	RateLimit    RateLimitConfig
	FeatureFlags FeatureFlagsConfig
	Uploads      UploadsConfig
	CORS         CORSConfig
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

// LoadPasswordConfig reads only the argon2id parameters, for tools that hash
// passwords without running the service.
func LoadPasswordConfig() (PasswordConfig, error) {
	var cfg PasswordConfig
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return PasswordConfig{}, fmt.Errorf("parsing password config: %w", err)
	}
	return cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"YOGA_APP_ENV" required:"true"`
	Port         string `envconfig:"YOGA_APP_PORT" default:"5000"`
	LogLevel     string `envconfig:"YOGA_LOG_LEVEL" default:"info"`
	LogFormat    string `envconfig:"YOGA_LOG_FORMAT" default:"json"`
	LogWarnStack bool   `envconfig:"YOGA_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"YOGA_DB_DSN"`
	Driver string `envconfig:"YOGA_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"YOGA_DB_HOST"`
	LegacyPort     int    `envconfig:"YOGA_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"YOGA_DB_USER"`
	LegacyPassword string `envconfig:"YOGA_DB_PASSWORD"`
	LegacyName     string `envconfig:"YOGA_DB_NAME"`
	LegacySSLMode  string `envconfig:"YOGA_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"YOGA_DB_MAX_OPEN_CONNS" default:"10"`
	MaxIdleConns    int           `envconfig:"YOGA_DB_MAX_IDLE_CONNS" default:"5"`
	ConnMaxLifetime time.Duration `envconfig:"YOGA_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"YOGA_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

// IsSQLite reports whether the record store runs on the embedded driver.
func (db DBConfig) IsSQLite() bool {
	return strings.EqualFold(strings.TrimSpace(db.Driver), DBDriverSQLite)
}

type RedisConfig struct {
	URL          string        `envconfig:"YOGA_REDIS_URL"`
	Address      string        `envconfig:"YOGA_REDIS_ADDR"`
	Password     string        `envconfig:"YOGA_REDIS_PASSWORD"`
	DB           int           `envconfig:"YOGA_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"YOGA_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"YOGA_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"YOGA_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"YOGA_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"YOGA_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret            string `envconfig:"YOGA_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"YOGA_JWT_ISSUER" default:"yoga-studio"`
	ExpirationMinutes int    `envconfig:"YOGA_JWT_EXPIRATION_MINUTES" default:"720"`
}

// SessionTTL is how long an admin login stays valid.
func (j JWTConfig) SessionTTL() time.Duration {
	if j.ExpirationMinutes <= 0 {
		return 0
	}
	return time.Duration(j.ExpirationMinutes) * time.Minute
}

type AdminConfig struct {
	PasswordHash string `envconfig:"YOGA_ADMIN_PASSWORD_HASH" required:"true"`
	CookieSecret string `envconfig:"YOGA_ADMIN_COOKIE_SECRET" required:"true"`
	CookieSecure bool   `envconfig:"YOGA_ADMIN_COOKIE_SECURE" default:"true"`
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"YOGA_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"YOGA_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"YOGA_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"YOGA_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"YOGA_ARGON_KEY_LEN" default:"32"`
}

type RateLimitConfig struct {
	LoginWindow        time.Duration `envconfig:"YOGA_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginIPLimit       int           `envconfig:"YOGA_RATE_LIMIT_LOGIN_IP_LIMIT" default:"10"`
	SubmitWindow       time.Duration `envconfig:"YOGA_RATE_LIMIT_SUBMIT_WINDOW" default:"10m"`
	SubmitIPLimit      int           `envconfig:"YOGA_RATE_LIMIT_SUBMIT_IP_LIMIT" default:"20"`
	SubmitContactLimit int           `envconfig:"YOGA_RATE_LIMIT_SUBMIT_CONTACT_LIMIT" default:"3"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"YOGA_AUTO_MIGRATE" default:"false"`
}

// CORSConfig lists the origins allowed to call the public API from a browser.
type CORSConfig struct {
	AllowedOrigins []string      `envconfig:"YOGA_CORS_ALLOWED_ORIGINS" default:"http://localhost:3000"`
	MaxAge         time.Duration `envconfig:"YOGA_CORS_MAX_AGE" default:"5m"`
}

type UploadsConfig struct {
	Dir         string `envconfig:"YOGA_UPLOADS_DIR" default:"uploads"`
	MaxUploadMB int    `envconfig:"YOGA_MAX_UPLOAD_MB" default:"16"`
}

// MaxUploadBytes returns the multipart body limit for admin uploads.
func (u UploadsConfig) MaxUploadBytes() int64 {
	if u.MaxUploadMB <= 0 {
		return 16 << 20
	}
	return int64(u.MaxUploadMB) << 20
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}
	if db.IsSQLite() {
		return fmt.Errorf("%s is required for the sqlite driver", EnvDBDSN)
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
