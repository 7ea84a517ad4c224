// Package sitesync provides tests for client initialization and configuration.
package sitesync

import (
	"log/slog"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/input-output-hk/catalyst-forge-libs/fs/billy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/webfleet/sitesync/internal/testutil"
	"github.com/webfleet/sitesync/sitetypes"
)

// TestClient_New tests the New() constructor with default configuration.
func TestClient_New(t *testing.T) {
	tests := []struct {
		name string
		opts []sitetypes.Option
	}{
		{
			name: "default configuration",
			opts: nil,
		},
		{
			name: "with region option",
			opts: []sitetypes.Option{WithRegion("us-west-2")},
		},
		{
			name: "with multiple options",
			opts: []sitetypes.Option{WithRegion("us-east-1"), WithMaxRetries(5)},
		},
		{
			name: "with endpoint and path style",
			opts: []sitetypes.Option{
				WithEndpoint("http://localhost:4566"),
				WithForcePathStyle(true),
			},
		},
		{
			name: "with timeout",
			opts: []sitetypes.Option{WithTimeout(30 * time.Second)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := New(tt.opts...)
			require.NoError(t, err)
			require.NotNil(t, client)
			assert.NotNil(t, client.s3Client)
			assert.NotNil(t, client.fs)
			assert.NotNil(t, client.logger)
		})
	}
}

// TestClient_New_WithRegion verifies the region option reaches the AWS config.
func TestClient_New_WithRegion(t *testing.T) {
	client, err := New(WithRegion("eu-west-1"))
	require.NoError(t, err)
	assert.Equal(t, "eu-west-1", client.Region())
}

// TestClient_New_RegionFallback verifies a usable default region.
func TestClient_New_RegionFallback(t *testing.T) {
	cfg := aws.Config{}
	client, err := New(WithAWSConfig(&cfg))
	require.NoError(t, err)
	assert.Equal(t, "us-east-1", client.Region())
}

// TestClient_New_WithCustomAWSConfig verifies a provided config is used as-is.
func TestClient_New_WithCustomAWSConfig(t *testing.T) {
	cfg := aws.Config{Region: "ap-south-1"}
	client, err := New(WithAWSConfig(&cfg))
	require.NoError(t, err)
	assert.Equal(t, "ap-south-1", client.Region())
}

// TestClient_New_WithFilesystem verifies a custom filesystem is wired in.
func TestClient_New_WithFilesystem(t *testing.T) {
	fsys := billy.NewInMemoryFS()
	client, err := New(WithFilesystem(fsys))
	require.NoError(t, err)
	assert.Equal(t, fsys, client.fs)
}

// TestClient_New_WithLogger verifies a custom logger is wired in.
func TestClient_New_WithLogger(t *testing.T) {
	logger := slog.New(slog.DiscardHandler)
	client, err := New(WithLogger(logger))
	require.NoError(t, err)
	assert.Equal(t, logger, client.logger)
}

// TestNewWithClient verifies mock injection for tests.
func TestNewWithClient(t *testing.T) {
	mock := &testutil.MockS3Client{}
	client := NewWithClient(mock)
	require.NotNil(t, client)
	assert.Equal(t, mock, client.s3Client)
	assert.NotNil(t, client.fs)
	assert.NotNil(t, client.logger)
}

// TestClient_SetFilesystem verifies the filesystem can be swapped after creation.
func TestClient_SetFilesystem(t *testing.T) {
	client := NewWithClient(&testutil.MockS3Client{})
	fsys := billy.NewInMemoryFS()
	client.SetFilesystem(fsys)
	assert.Equal(t, fsys, client.fs)
}

// TestClient_SetLogger_Nil verifies a nil logger falls back to a discard logger.
func TestClient_SetLogger_Nil(t *testing.T) {
	client := NewWithClient(&testutil.MockS3Client{})
	client.SetLogger(nil)
	assert.NotNil(t, client.logger)
}

// TestClient_Close verifies Close is a safe no-op.
func TestClient_Close(t *testing.T) {
	client := NewWithClient(&testutil.MockS3Client{})
	assert.NoError(t, client.Close())
}
