package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App           AppConfig
	DB            DBConfig
	Redis         RedisConfig
	JWT           JWTConfig
	Password      PasswordConfig
	AuthRateLimit AuthRateLimitConfig
	FeatureFlags  FeatureFlagsConfig
	GCP           GCPConfig
	PubSub        PubSubConfig
	Outbox        OutboxConfig
	Eventing      EventingConfig
	Cron          CronConfig
	PoolCommit    PoolCommitConfig
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
	Env          string `envconfig:"SL_APP_ENV" required:"true"`
	Port         string `envconfig:"SL_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"SL_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"SL_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"SL_DB_DSN"`
	Driver string `envconfig:"SL_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"SL_DB_HOST"`
	LegacyPort     int    `envconfig:"SL_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"SL_DB_USER"`
	LegacyPassword string `envconfig:"SL_DB_PASSWORD"`
	LegacyName     string `envconfig:"SL_DB_NAME"`
	LegacySSLMode  string `envconfig:"SL_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"SL_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"SL_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"SL_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"SL_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"SL_REDIS_URL" required:"true"`
	Address      string        `envconfig:"SL_REDIS_ADDR"`
	Password     string        `envconfig:"SL_REDIS_PASSWORD"`
	DB           int           `envconfig:"SL_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"SL_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"SL_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"SL_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"SL_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"SL_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret            string `envconfig:"SL_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"SL_JWT_ISSUER" required:"true"`
	ExpirationMinutes int    `envconfig:"SL_JWT_EXPIRATION_MINUTES" default:"60"`
	SessionTTLMinutes int    `envconfig:"SL_SESSION_TTL_MINUTES" default:"43200"`
}

// SessionTTL returns the Redis session lifetime configured in minutes.
func (j JWTConfig) SessionTTL() time.Duration {
	if j.SessionTTLMinutes <= 0 {
		return 0
	}
	return time.Duration(j.SessionTTLMinutes) * time.Minute
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"SL_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"SL_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"SL_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"SL_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"SL_ARGON_KEY_LEN" default:"32"`
}

type AuthRateLimitConfig struct {
	LoginWindow     time.Duration `envconfig:"SL_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginEmailLimit int           `envconfig:"SL_AUTH_RATE_LIMIT_LOGIN_EMAIL_LIMIT" default:"5"`
	LoginIPLimit    int           `envconfig:"SL_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"SL_APP_AUTO_MIGRATE" default:"false"`
}

type GCPConfig struct {
	ProjectID              string `envconfig:"SL_GCP_PROJECT_ID" required:"true"`
	CredentialsJSON        string `envconfig:"SL_GCP_CREDENTIALS_JSON"`
	ApplicationCredentials string `envconfig:"SL_GOOGLE_APPLICATION_CREDENTIALS"`
}

type PubSubConfig struct {
	DomainTopic        string `envconfig:"SL_PUBSUB_DOMAIN_TOPIC" default:"sl-domain-events"`
	DomainSubscription string `envconfig:"SL_PUBSUB_DOMAIN_SUBSCRIPTION" required:"true"`
}

type OutboxConfig struct {
	BatchSize      int `envconfig:"SL_OUTBOX_PUBLISH_BATCH_SIZE" default:"50"`
	PollIntervalMS int `envconfig:"SL_OUTBOX_PUBLISH_POLL_MS" default:"500"`
	MaxAttempts    int `envconfig:"SL_OUTBOX_MAX_ATTEMPTS" default:"10"`
}

type EventingConfig struct {
	ConsumerIdempotencyTTL time.Duration `envconfig:"SL_EVENTING_IDEMPOTENCY_TTL" default:"720h"`
}

type CronConfig struct {
	OutboxRetention       time.Duration `envconfig:"SL_CRON_OUTBOX_RETENTION" default:"720h"`
	NotificationRetention time.Duration `envconfig:"SL_CRON_NOTIFICATION_RETENTION" default:"2160h"`
	StalePoolAge          time.Duration `envconfig:"SL_CRON_STALE_POOL_AGE" default:"168h"`
}

type PoolCommitConfig struct {
	LockTTL time.Duration `envconfig:"SL_POOL_COMMIT_LOCK_TTL" default:"30s"`
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
