package sitesync

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/input-output-hk/catalyst-forge-libs/fs"
	"github.com/input-output-hk/catalyst-forge-libs/fs/billy"

	"github.com/webfleet/sitesync/internal/s3api"
	"github.com/webfleet/sitesync/sitetypes"
)

// Client is the main S3 client for static site publishing.
// It provides bucket management, uploads, and incremental sync with
// built-in validation and error handling.
type Client struct {
	// s3Client is the interface for S3 operations (allows mocking)
	s3Client s3api.S3API

	// rawClient is the actual AWS S3 client (used when we need the concrete type)
	rawClient *s3.Client

	// config holds the AWS configuration
	config aws.Config

	// logger records operation-level events
	logger *slog.Logger

	// mu protects concurrent access to client state
	mu sync.RWMutex

	// fs is the filesystem abstraction for file operations
	fs fs.Filesystem
}

// New creates a new S3 client with the provided options.
// It uses the AWS SDK's default credential chain for authentication.
func New(opts ...sitetypes.Option) (*Client, error) {
	// Apply options to build configuration
	cfg := &sitetypes.ClientConfig{
		Region:     "", // Will use AWS default region resolution
		MaxRetries: 3,
		Timeout:    0, // No timeout by default
	}

	for _, opt := range opts {
		opt(cfg)
	}

	// Load AWS configuration
	var awsCfg aws.Config
	var err error

	if cfg.CustomAWSConfig != nil {
		awsCfg = *cfg.CustomAWSConfig
	} else {
		// Load default AWS configuration
		loadOpts := []func(*config.LoadOptions) error{}

		if cfg.Region != "" {
			loadOpts = append(loadOpts, config.WithRegion(cfg.Region))
		}

		awsCfg, err = config.LoadDefaultConfig(context.Background(), loadOpts...)
		if err != nil {
			return nil, fmt.Errorf("failed to load AWS config: %w", err)
		}
	}

	// Ensure a usable region
	if awsCfg.Region == "" {
		awsCfg.Region = "us-east-1"
	}

	// Apply custom retry configuration
	if cfg.MaxRetries > 0 {
		awsCfg.RetryMaxAttempts = cfg.MaxRetries
	}

	// Create S3 client options
	s3Opts := []func(*s3.Options){}

	if cfg.Endpoint != "" {
		s3Opts = append(s3Opts, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		})
	}

	if cfg.ForcePathStyle {
		s3Opts = append(s3Opts, func(o *s3.Options) {
			o.UsePathStyle = true
		})
	}

	if cfg.Timeout > 0 {
		s3Opts = append(s3Opts, func(o *s3.Options) {
			o.HTTPClient = &http.Client{
				Timeout: cfg.Timeout,
			}
		})
	}

	if cfg.CustomHTTPClient != nil {
		s3Opts = append(s3Opts, func(o *s3.Options) {
			o.HTTPClient = cfg.CustomHTTPClient
		})
	}

	// Create the S3 client
	rawClient := s3.NewFromConfig(awsCfg, s3Opts...)

	// Set up filesystem (default to OS filesystem if not provided)
	filesystem := cfg.Filesystem
	if filesystem == nil {
		filesystem = billy.NewOSFS("/")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &Client{
		s3Client:  rawClient,
		rawClient: rawClient,
		config:    awsCfg,
		logger:    logger,
		fs:        filesystem,
	}, nil
}

// NewWithClient creates a Client with a custom S3 API implementation.
// This is primarily used for testing with mock clients.
func NewWithClient(s3Client s3api.S3API) *Client {
	return &Client{
		s3Client: s3Client,
		logger:   slog.New(slog.DiscardHandler),
		fs:       billy.NewOSFS("/"),
	}
}

// SetFilesystem sets the filesystem implementation for the client.
// This is primarily used for testing with in-memory filesystems.
func (c *Client) SetFilesystem(filesystem fs.Filesystem) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.fs = filesystem
}

// SetLogger sets the structured logger for the client.
func (c *Client) SetLogger(logger *slog.Logger) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	c.logger = logger
}

// Region returns the AWS region the client is configured for.
func (c *Client) Region() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.config.Region == "" {
		return "us-east-1"
	}
	return c.config.Region
}

// Close cleans up any resources held by the client.
// Currently this is a no-op but is provided for future compatibility.
func (c *Client) Close() error {
	return nil
}
