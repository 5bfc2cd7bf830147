// Package config loads the service configuration from the environment.
package config

import (
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/pkg/errors"
)

// Config is the configuration of the whole service. It is loaded once at
// startup and never modified afterwards.
type Config struct {
	MediaConvert MediaConvert
	Server       Server
	Log          Log
	Redis        Redis
	Sentry       Sentry
	Tracing      Tracing
}

// MediaConvert holds the buckets, role and credentials used to submit jobs
// to AWS Elemental MediaConvert.
type MediaConvert struct {
	InputBucket      string `envconfig:"MEDIACONVERT_INPUT_BUCKET" required:"true"`
	InputBucketPath  string `envconfig:"MEDIACONVERT_INPUT_BUCKET_PATH" required:"true"`
	OutputBucket     string `envconfig:"MEDIACONVERT_OUTPUT_BUCKET" required:"true"`
	OutputBucketPath string `envconfig:"MEDIACONVERT_OUTPUT_BUCKET_PATH" required:"true"`
	RoleARN          string `envconfig:"MEDIACONVERT_ROLE_ARN" required:"true"`
	AccessKeyID      string `envconfig:"MEDIACONVERT_ACCESS_KEY" required:"true"`
	SecretAccessKey  string `envconfig:"MEDIACONVERT_SECRET_KEY" required:"true"`

	Region   string `envconfig:"MEDIACONVERT_REGION" default:"ap-northeast-2"`
	QueueARN string `envconfig:"MEDIACONVERT_QUEUE_ARN"`

	// Endpoint is the account specific API endpoint. When empty it is
	// discovered with DescribeEndpoints at startup.
	Endpoint     string `envconfig:"MEDIACONVERT_ENDPOINT"`
	MaxEndpoints int64  `envconfig:"MEDIACONVERT_MAX_ENDPOINTS" default:"20"`
}

// Server configures the HTTP listener.
type Server struct {
	HTTPPort     int           `envconfig:"HTTP_PORT" default:"8080"`
	ReadTimeout  time.Duration `envconfig:"HTTP_READ_TIMEOUT" default:"30s"`
	WriteTimeout time.Duration `envconfig:"HTTP_WRITE_TIMEOUT" default:"30s"`
}

// Redis configures the optional submission log. An empty address disables
// it.
type Redis struct {
	Addr string `envconfig:"REDIS_ADDR"`
	DB   int    `envconfig:"REDIS_DB"`
}

// Sentry configures exception reporting. An empty DSN disables it.
type Sentry struct {
	DSN string `envconfig:"SENTRY_DSN"`
	Env string `envconfig:"ENV" default:"dev"`
}

// Load reads every section of the configuration from the environment and
// fails if any required variable is missing.
func Load() (*Config, error) {
	var cfg Config
	sections := []struct {
		name string
		spec interface{}
	}{
		{"mediaconvert", &cfg.MediaConvert},
		{"server", &cfg.Server},
		{"log", &cfg.Log},
		{"redis", &cfg.Redis},
		{"sentry", &cfg.Sentry},
		{"tracing", &cfg.Tracing},
	}
	for _, s := range sections {
		if err := envconfig.Process("", s.spec); err != nil {
			return nil, errors.Wrapf(err, "loading %s config", s.name)
		}
	}
	return &cfg, nil
}
