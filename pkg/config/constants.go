package config

// EnvPrefix is the envconfig prefix shared by every variable.
const EnvPrefix = "CLICKPRATO"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

// Environment variable names referenced outside struct tags (tests, error messages).
const (
	EnvAppEnv   = "CLICKPRATO_APP_ENV"
	EnvPort     = "CLICKPRATO_APP_PORT"
	EnvDBDSN    = "CLICKPRATO_DB_DSN"
	EnvDBHost   = "CLICKPRATO_DB_HOST"
	EnvDBUser   = "CLICKPRATO_DB_USER"
	EnvDBName   = "CLICKPRATO_DB_NAME"
	EnvRedisURL = "CLICKPRATO_REDIS_URL"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
