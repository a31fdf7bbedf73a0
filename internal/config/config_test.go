package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"ETL_SOURCE_KIND", "ETL_SOURCE_BUCKET", "ETL_SOURCE_KEY",
		"AWS_ACCESS_KEY_ID", "AWS_SECRET_ACCESS_KEY", "AWS_SESSION_TOKEN",
		"ETL_S3_REGION", "ETL_S3_ENDPOINT", "ETL_GCS_CREDENTIALS_FILE",
		"ETL_DEST_DRIVER", "ETL_DEST", "ETL_MONGO_DATABASE",
		"ETL_FETCH_TIMEOUT", "ETL_LOAD_TIMEOUT",
		"ETL_LOG_LEVEL", "ETL_LOG_FORMAT", "ETL_LOG_FILE", "ETL_PUSHGATEWAY_URL",
	} {
		t.Setenv(k, "")
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, SourceS3, cfg.SourceKind)
	assert.Equal(t, "sqlite", cfg.DestDriver)
	assert.Equal(t, DefaultDestination, cfg.Destination)
	assert.Equal(t, DefaultFetchTimeout, cfg.FetchTimeout)
	assert.Equal(t, DefaultLoadTimeout, cfg.LoadTimeout)
	assert.Empty(t, cfg.AccessKeyID)
	assert.Empty(t, cfg.SecretAccessKey)
}

func TestLoadConfigFromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("ETL_SOURCE_BUCKET", "etla")
	t.Setenv("ETL_SOURCE_KEY", "awsdata.parquet")
	t.Setenv("AWS_ACCESS_KEY_ID", "AKIA")
	t.Setenv("AWS_SECRET_ACCESS_KEY", "secret")
	t.Setenv("ETL_FETCH_TIMEOUT", "30s")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "etla", cfg.Bucket)
	assert.Equal(t, 30*time.Second, cfg.FetchTimeout)
	assert.NoError(t, cfg.Validate())
}

func TestLoadConfigBadDuration(t *testing.T) {
	clearEnv(t)
	t.Setenv("ETL_LOAD_TIMEOUT", "soon")

	_, err := LoadConfig()
	assert.ErrorContains(t, err, "ETL_LOAD_TIMEOUT")
}

func TestValidate(t *testing.T) {
	base := func() Config {
		return Config{
			SourceKind: SourceFile, Bucket: "data", Key: "reviews.parquet",
			DestDriver: "sqlite", Destination: "out.db",
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "valid file source", mutate: func(*Config) {}},
		{name: "missing bucket", mutate: func(c *Config) { c.Bucket = "" }, wantErr: "source bucket is required"},
		{name: "missing key", mutate: func(c *Config) { c.Key = "" }, wantErr: "source key is required"},
		{name: "s3 without credentials", mutate: func(c *Config) { c.SourceKind = SourceS3 }, wantErr: "AWS_ACCESS_KEY_ID"},
		{name: "gcs without credentials", mutate: func(c *Config) { c.SourceKind = SourceGCS }, wantErr: "ETL_GCS_CREDENTIALS_FILE"},
		{name: "unknown source", mutate: func(c *Config) { c.SourceKind = "ftp" }, wantErr: "unknown source kind"},
		{name: "unknown driver", mutate: func(c *Config) { c.DestDriver = "oracle" }, wantErr: "unknown destination driver"},
		{name: "mongo without database", mutate: func(c *Config) { c.DestDriver = "mongodb" }, wantErr: "ETL_MONGO_DATABASE"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := base()
			tt.mutate(&c)
			err := c.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}
