package storage

import (
	"context"
	"errors"
	"testing"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"

	"sitecms/internal/config"
)

func TestNewMinIO_RequiresSettings(t *testing.T) {
	full := config.MinIOConfig{Endpoint: "localhost:9000", AccessKey: "ak", SecretKey: "sk", Bucket: "assets"}

	tests := []struct {
		name    string
		mutate  func(c *config.MinIOConfig)
		wantErr string
	}{
		{"endpoint", func(c *config.MinIOConfig) { c.Endpoint = "" }, "endpoint is required"},
		{"access key", func(c *config.MinIOConfig) { c.AccessKey = "" }, "credentials are required"},
		{"secret key", func(c *config.MinIOConfig) { c.SecretKey = "" }, "credentials are required"},
		{"bucket", func(c *config.MinIOConfig) { c.Bucket = "" }, "bucket is required"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := full
			tt.mutate(&cfg)
			st, err := NewMinIO(context.Background(), cfg)
			assert.Nil(t, st)
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestMapMinioError(t *testing.T) {
	missing := minio.ErrorResponse{Code: "NoSuchKey", Message: "The specified key does not exist."}
	assert.ErrorIs(t, mapMinioError(missing), ErrNotFound)

	denied := minio.ErrorResponse{Code: "AccessDenied"}
	err := mapMinioError(denied)
	assert.NotErrorIs(t, err, ErrNotFound)
	assert.Equal(t, denied, err)

	plain := errors.New("dial tcp: connection refused")
	assert.Same(t, plain, mapMinioError(plain))
}
