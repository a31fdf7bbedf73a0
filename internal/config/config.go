// Package config loads the ETL run configuration from the environment
// (populated from an optional .env file in main.go).
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/BartekS5/review-etl/pkg/database"
)

// Source kinds.
const (
	SourceS3   = "s3"
	SourceGCS  = "gcs"
	SourceFile = "file"
)

const (
	DefaultDestination   = "amazon_reviews.db"
	DefaultMongoDatabase = "reviews"
	DefaultRegion        = "us-east-1"
	DefaultFetchTimeout  = 2 * time.Minute
	DefaultLoadTimeout   = 5 * time.Minute
)

// Config holds everything a run needs. Source location and credentials have
// no defaults and must be supplied.
type Config struct {
	SourceKind string
	Bucket     string
	Key        string

	AccessKeyID     string
	SecretAccessKey string
	SessionToken    string
	Region          string
	Endpoint        string

	GCSCredentialsFile string

	DestDriver    string
	Destination   string
	MongoDatabase string

	FetchTimeout time.Duration
	LoadTimeout  time.Duration

	LogLevel  string
	LogFormat string
	LogFile   string

	PushgatewayURL string
}

// LoadConfig reads the configuration from environment variables. It does not
// validate; call Validate once flag overrides are applied.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		SourceKind:         env("ETL_SOURCE_KIND", SourceS3),
		Bucket:             os.Getenv("ETL_SOURCE_BUCKET"),
		Key:                os.Getenv("ETL_SOURCE_KEY"),
		AccessKeyID:        os.Getenv("AWS_ACCESS_KEY_ID"),
		SecretAccessKey:    os.Getenv("AWS_SECRET_ACCESS_KEY"),
		SessionToken:       os.Getenv("AWS_SESSION_TOKEN"),
		Region:             env("ETL_S3_REGION", DefaultRegion),
		Endpoint:           os.Getenv("ETL_S3_ENDPOINT"),
		GCSCredentialsFile: os.Getenv("ETL_GCS_CREDENTIALS_FILE"),
		DestDriver:         env("ETL_DEST_DRIVER", database.DriverSQLite),
		Destination:        env("ETL_DEST", DefaultDestination),
		MongoDatabase:      env("ETL_MONGO_DATABASE", DefaultMongoDatabase),
		LogLevel:           env("ETL_LOG_LEVEL", "info"),
		LogFormat:          env("ETL_LOG_FORMAT", "json"),
		LogFile:            os.Getenv("ETL_LOG_FILE"),
		PushgatewayURL:     os.Getenv("ETL_PUSHGATEWAY_URL"),
	}

	var err error
	if cfg.FetchTimeout, err = duration("ETL_FETCH_TIMEOUT", DefaultFetchTimeout); err != nil {
		return nil, err
	}
	if cfg.LoadTimeout, err = duration("ETL_LOAD_TIMEOUT", DefaultLoadTimeout); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports every missing or inconsistent setting at once.
func (c *Config) Validate() error {
	var errs []error
	if c.Bucket == "" {
		errs = append(errs, errors.New("source bucket is required (ETL_SOURCE_BUCKET)"))
	}
	if c.Key == "" {
		errs = append(errs, errors.New("source key is required (ETL_SOURCE_KEY)"))
	}

	switch c.SourceKind {
	case SourceS3:
		if c.AccessKeyID == "" {
			errs = append(errs, errors.New("AWS_ACCESS_KEY_ID is required for the s3 source"))
		}
		if c.SecretAccessKey == "" {
			errs = append(errs, errors.New("AWS_SECRET_ACCESS_KEY is required for the s3 source"))
		}
	case SourceGCS:
		if c.GCSCredentialsFile == "" {
			errs = append(errs, errors.New("ETL_GCS_CREDENTIALS_FILE is required for the gcs source"))
		}
	case SourceFile:
	default:
		errs = append(errs, fmt.Errorf("unknown source kind %q (want s3, gcs or file)", c.SourceKind))
	}

	switch c.DestDriver {
	case database.DriverSQLite, database.DriverSQLServer, database.DriverMongo:
	default:
		errs = append(errs, fmt.Errorf("unknown destination driver %q (want sqlite, sqlserver or mongodb)", c.DestDriver))
	}
	if c.Destination == "" {
		errs = append(errs, errors.New("destination is required (ETL_DEST)"))
	}
	if c.DestDriver == database.DriverMongo && c.MongoDatabase == "" {
		errs = append(errs, errors.New("ETL_MONGO_DATABASE is required for the mongodb destination"))
	}
	if c.FetchTimeout < 0 || c.LoadTimeout < 0 {
		errs = append(errs, errors.New("timeouts must not be negative"))
	}
	return errors.Join(errs...)
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func duration(k string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(k)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", k, err)
	}
	return d, nil
}
