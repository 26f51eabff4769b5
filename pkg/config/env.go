package config

const EnvPrefix = "YOGA"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	DBDriverPostgres = "postgres"
	DBDriverSQLite   = "sqlite"
)

const (
	EnvAppEnv       = "YOGA_APP_ENV"
	EnvPort         = "YOGA_APP_PORT"
	EnvDBDSN        = "YOGA_DB_DSN"
	EnvDBDriver     = "YOGA_DB_DRIVER"
	EnvDBHost       = "YOGA_DB_HOST"
	EnvDBUser       = "YOGA_DB_USER"
	EnvDBName       = "YOGA_DB_NAME"
	EnvRedisURL     = "YOGA_REDIS_URL"
	EnvJWTSecret    = "YOGA_JWT_SECRET"
	EnvAdminHash    = "YOGA_ADMIN_PASSWORD_HASH"
	EnvCookieSecret = "YOGA_ADMIN_COOKIE_SECRET"
	EnvUploadsDir   = "YOGA_UPLOADS_DIR"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
