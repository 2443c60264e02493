package config

// EnvPrefix is passed to envconfig; individual fields carry explicit names so
// the prefix only matters for variables without a tag.
const EnvPrefix = "HOMECRAFT"

const (
	AppEnvDev  = "development"
	AppEnvProd = "production"
)

// Environment variable names referenced outside struct tags (tests, error
// messages).
const (
	EnvAppEnv     = "HOMECRAFT_APP_ENV"
	EnvPort       = "HOMECRAFT_APP_PORT"
	EnvDBDSN      = "HOMECRAFT_DB_DSN"
	EnvDBHost     = "HOMECRAFT_DB_HOST"
	EnvDBUser     = "HOMECRAFT_DB_USER"
	EnvDBName     = "HOMECRAFT_DB_NAME"
	EnvRedisURL   = "HOMECRAFT_REDIS_URL"
	EnvJWTSecret  = "HOMECRAFT_JWT_SECRET"
	EnvJWTIssuer  = "HOMECRAFT_JWT_ISSUER"
	EnvJWTExpMins = "HOMECRAFT_JWT_EXPIRATION_MINUTES"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
