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
	OTP           OTPConfig
	Cart          CartConfig
	AuthRateLimit AuthRateLimitConfig
	FeatureFlags  FeatureFlagsConfig
	Razorpay      RazorpayConfig
	Sendgrid      SendgridConfig
	GCP           GCPConfig
	GCS           GCSConfig
	Uploads       UploadConfig
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
	Env          string `envconfig:"HOMECRAFT_APP_ENV" required:"true"`
	Port         string `envconfig:"HOMECRAFT_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"HOMECRAFT_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"HOMECRAFT_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN string `envconfig:"HOMECRAFT_DB_DSN"`

	LegacyHost     string `envconfig:"HOMECRAFT_DB_HOST"`
	LegacyPort     int    `envconfig:"HOMECRAFT_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"HOMECRAFT_DB_USER"`
	LegacyPassword string `envconfig:"HOMECRAFT_DB_PASSWORD"`
	LegacyName     string `envconfig:"HOMECRAFT_DB_NAME"`
	LegacySSLMode  string `envconfig:"HOMECRAFT_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"HOMECRAFT_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"HOMECRAFT_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"HOMECRAFT_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"HOMECRAFT_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"HOMECRAFT_REDIS_URL" required:"true"`
	Address      string        `envconfig:"HOMECRAFT_REDIS_ADDR"`
	Password     string        `envconfig:"HOMECRAFT_REDIS_PASSWORD"`
	DB           int           `envconfig:"HOMECRAFT_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"HOMECRAFT_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"HOMECRAFT_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"HOMECRAFT_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"HOMECRAFT_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"HOMECRAFT_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret                 string `envconfig:"HOMECRAFT_JWT_SECRET" required:"true"`
	Issuer                 string `envconfig:"HOMECRAFT_JWT_ISSUER" required:"true"`
	ExpirationMinutes      int    `envconfig:"HOMECRAFT_JWT_EXPIRATION_MINUTES" required:"true"`
	RefreshTokenTTLMinutes int    `envconfig:"HOMECRAFT_REFRESH_TOKEN_TTL_MINUTES" default:"43200"`
}

// RefreshTokenTTL returns the refresh token TTL configured in minutes.
func (j JWTConfig) RefreshTokenTTL() time.Duration {
	if j.RefreshTokenTTLMinutes <= 0 {
		return 0
	}
	return time.Duration(j.RefreshTokenTTLMinutes) * time.Minute
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"HOMECRAFT_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"HOMECRAFT_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"HOMECRAFT_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"HOMECRAFT_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"HOMECRAFT_ARGON_KEY_LEN" default:"32"`
}

type OTPConfig struct {
	TTL         time.Duration `envconfig:"HOMECRAFT_OTP_TTL" default:"5m"`
	Digits      int           `envconfig:"HOMECRAFT_OTP_DIGITS" default:"6"`
	MaxAttempts int           `envconfig:"HOMECRAFT_OTP_MAX_ATTEMPTS" default:"5"`
}

type CartConfig struct {
	TTL      time.Duration `envconfig:"HOMECRAFT_CART_TTL" default:"72h"`
	MaxLines int           `envconfig:"HOMECRAFT_CART_MAX_LINES" default:"25"`
}

type AuthRateLimitConfig struct {
	OTPWindow     time.Duration `envconfig:"HOMECRAFT_AUTH_RATE_LIMIT_OTP_WINDOW" default:"1m"`
	OTPEmailLimit int           `envconfig:"HOMECRAFT_AUTH_RATE_LIMIT_OTP_EMAIL_LIMIT" default:"3"`
	OTPIPLimit    int           `envconfig:"HOMECRAFT_AUTH_RATE_LIMIT_OTP_IP_LIMIT" default:"10"`
	LoginWindow   time.Duration `envconfig:"HOMECRAFT_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginIPLimit  int           `envconfig:"HOMECRAFT_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"HOMECRAFT_AUTO_MIGRATE" default:"false"`
}

type RazorpayConfig struct {
	KeyID     string `envconfig:"HOMECRAFT_RAZORPAY_KEY_ID"`
	KeySecret string `envconfig:"HOMECRAFT_RAZORPAY_KEY_SECRET"`
	Currency  string `envconfig:"HOMECRAFT_RAZORPAY_CURRENCY" default:"INR"`
}

// Configured reports whether both gateway credentials are present.
func (r RazorpayConfig) Configured() bool {
	return strings.TrimSpace(r.KeyID) != "" && strings.TrimSpace(r.KeySecret) != ""
}

type SendgridConfig struct {
	APIKey       string `envconfig:"HOMECRAFT_SENDGRID_API_KEY"`
	FromEmail    string `envconfig:"HOMECRAFT_SENDGRID_FROM_EMAIL"`
	FromName     string `envconfig:"HOMECRAFT_SENDGRID_FROM_NAME" default:"Homecraft"`
	EnquiryInbox string `envconfig:"HOMECRAFT_ENQUIRY_INBOX"`
}

// Configured reports whether outbound mail can be sent.
func (s SendgridConfig) Configured() bool {
	return strings.TrimSpace(s.APIKey) != "" && strings.TrimSpace(s.FromEmail) != ""
}

type GCPConfig struct {
	ProjectID              string `envconfig:"HOMECRAFT_GCP_PROJECT_ID"`
	CredentialsJSON        string `envconfig:"HOMECRAFT_GCP_CREDENTIALS_JSON"`
	ApplicationCredentials string `envconfig:"HOMECRAFT_GOOGLE_APPLICATION_CREDENTIALS"`
}

type GCSConfig struct {
	BucketName string `envconfig:"HOMECRAFT_GCS_BUCKET_NAME"`
	PublicHost string `envconfig:"HOMECRAFT_GCS_PUBLIC_HOST" default:"https://storage.googleapis.com"`
}

type UploadConfig struct {
	MaxUploadMB int `envconfig:"HOMECRAFT_MAX_UPLOAD_MB" default:"10"`
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
