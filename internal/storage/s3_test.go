package storage

import (
	"errors"
	"net/http"
	"testing"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsNotFound(t *testing.T) {
	// the S3 not-found codes map to absent
	assert.True(t, isNotFound(minio.ErrorResponse{Code: "NoSuchKey"}))
	assert.True(t, isNotFound(minio.ErrorResponse{Code: "NotFound"}))
	assert.True(t, isNotFound(minio.ErrorResponse{StatusCode: http.StatusNotFound}))

	// everything else is a hard error for the caller
	assert.False(t, isNotFound(minio.ErrorResponse{Code: "AccessDenied", StatusCode: http.StatusForbidden}))
	assert.False(t, isNotFound(errors.New("connection reset")))
}

func TestNewS3Client_ValidatesConfig(t *testing.T) {
	cfg := S3Config{
		Endpoint:  "s3.example.com",
		AccessKey: "ak",
		SecretKey: "sk",
		Bucket:    "bucket",
	}

	_, err := NewS3Client(cfg)
	require.NoError(t, err)

	missingEndpoint := cfg
	missingEndpoint.Endpoint = ""
	_, err = NewS3Client(missingEndpoint)
	assert.Error(t, err)

	missingCreds := cfg
	missingCreds.SecretKey = ""
	_, err = NewS3Client(missingCreds)
	assert.Error(t, err)

	missingBucket := cfg
	missingBucket.Bucket = ""
	_, err = NewS3Client(missingBucket)
	assert.Error(t, err)
}

func TestNewS3Client_StripsEndpointScheme(t *testing.T) {
	_, err := NewS3Client(S3Config{
		Endpoint:  "https://s3.example.com",
		AccessKey: "ak",
		SecretKey: "sk",
		Bucket:    "bucket",
		UseSSL:    true,
	})
	assert.NoError(t, err)
}
