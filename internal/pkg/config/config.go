package config

import (
	"context"
	"errors"
	"fmt"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	// The two token namespaces sign with different mandatory secrets; a
	// staff token must never verify as a member token even if both claims
	// sets look plausible.
	StaffJWTSecret  string `env:"STAFF_JWT_SECRET,  required"`
	MemberJWTSecret string `env:"MEMBER_JWT_SECRET, required"`

	// SetupSecret guards the one-time bootstrap of the first admin account.
	SetupSecret string `env:"SETUP_SECRET, required"`

	Mongo    MongoConfig
	Redis    RedisConfig
	Storage  StorageConfig
	Calendar CalendarConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=parish_cms"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

type StorageConfig struct {
	Endpoint  string `env:"MINIO_ENDPOINT,   default=localhost:9000"`
	AccessKey string `env:"MINIO_ACCESS_KEY, required"`
	SecretKey string `env:"MINIO_SECRET_KEY, required"`
	Bucket    string `env:"MINIO_BUCKET,     default=parish-bulletins"`
	UseSSL    bool   `env:"MINIO_USE_SSL,    default=false"`
}

type CalendarConfig struct {
	FeedURL string `env:"CALENDAR_FEED_URL"`
	Token   string `env:"CALENDAR_FEED_TOKEN"`
}

// Load reads configuration from environment variables and applies the
// cross-field checks that env tags cannot express.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	if cfg.StaffJWTSecret == cfg.MemberJWTSecret {
		return nil, errors.New("config: STAFF_JWT_SECRET and MEMBER_JWT_SECRET must differ")
	}

	return &cfg, nil
}
