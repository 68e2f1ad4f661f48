package config

// EnvPrefix is the envconfig prefix shared by every Supplyline binary.
const EnvPrefix = "SL"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	EnvDBDSN  = "SL_DB_DSN"
	EnvDBHost = "SL_DB_HOST"
	EnvDBUser = "SL_DB_USER"
	EnvDBName = "SL_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
