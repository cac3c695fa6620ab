package app

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Avatar storage backends.
const (
	AvatarBackendFS = "fs"
	AvatarBackendS3 = "s3"
)

// Config is read from ROSTER_* environment variables.
type Config struct {
	Addr                string        `env:"ADDR" envDefault:":8080"`
	Issuer              string        `env:"ISSUER" envDefault:"roster"`
	Audience            []string      `env:"AUDIENCE" envDefault:"roster-client" envSeparator:","`
	TokenTTL            time.Duration `env:"TOKEN_TTL" envDefault:"12h"`
	BootstrapToken      string        `env:"BOOTSTRAP_TOKEN"` // empty disables bootstrap
	Env                 string        `env:"ENV" envDefault:"dev"`
	ShutdownGracePeriod time.Duration `env:"SHUTDOWN_GRACE_PERIOD" envDefault:"10s"`

	DB           DB           `envPrefix:"DB_"`
	Keys         Keys         `envPrefix:"KEYS_"`
	Log          Log          `envPrefix:"LOG_"`
	Avatar       Avatar       `envPrefix:"AVATAR_"`
	S3           S3           `envPrefix:"S3_"`
	CORS         CORS         `envPrefix:"CORS_"`
	Housekeeping Housekeeping `envPrefix:"HOUSEKEEPING_"`
}

type DB struct {
	Path string `env:"PATH" envDefault:"roster.db"`
}

type Keys struct {
	// SigningKeyFile holds the Ed25519 PEM key. It is created on first
	// start; without it every restart invalidates issued tokens.
	SigningKeyFile string `env:"SIGNING_KEY_FILE" envDefault:"signing.pem"`
	PepperFile     string `env:"PEPPER_FILE" envDefault:"pepper"`
}

type Log struct {
	Level  string `env:"LEVEL" envDefault:"info"`
	Format string `env:"FORMAT" envDefault:"json"`
}

type Avatar struct {
	Backend  string `env:"BACKEND" envDefault:"fs"`
	Dir      string `env:"DIR" envDefault:"avatars"`
	MaxBytes int64  `env:"MAX_BYTES" envDefault:"2097152"`
}

type S3 struct {
	Endpoint  string `env:"ENDPOINT" envDefault:"localhost:9000"`
	AccessKey string `env:"ACCESS_KEY"`
	SecretKey string `env:"SECRET_KEY"`
	Bucket    string `env:"BUCKET" envDefault:"roster-avatars"`
	UseSSL    bool   `env:"USE_SSL" envDefault:"false"`
}

type CORS struct {
	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envDefault:"http://localhost:3000" envSeparator:","`
}

type Housekeeping struct {
	Interval time.Duration `env:"INTERVAL" envDefault:"1h"`
}

// LoadConfig parses the environment.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: "ROSTER_"}); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	switch c.Avatar.Backend {
	case AvatarBackendFS, AvatarBackendS3:
	default:
		return fmt.Errorf("invalid ROSTER_AVATAR_BACKEND %q: want %s or %s", c.Avatar.Backend, AvatarBackendFS, AvatarBackendS3)
	}
	if c.Avatar.Backend == AvatarBackendS3 && (c.S3.AccessKey == "" || c.S3.SecretKey == "") {
		return errors.New("ROSTER_S3_ACCESS_KEY and ROSTER_S3_SECRET_KEY are required for the s3 avatar backend")
	}
	if c.TokenTTL <= 0 {
		return errors.New("ROSTER_TOKEN_TTL must be positive")
	}
	if c.Avatar.MaxBytes <= 0 {
		return errors.New("ROSTER_AVATAR_MAX_BYTES must be positive")
	}
	return nil
}
