// Package sitesync provides functional options for configuring client behavior.
// These options follow the functional options pattern for clean, composable configuration.
package sitesync

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/input-output-hk/catalyst-forge-libs/fs"

	"github.com/webfleet/sitesync/sitetypes"
)

// WithRegion sets the AWS region for S3 operations.
// If not specified, uses the default AWS region from the credential chain.
func WithRegion(region string) sitetypes.Option {
	return func(c *sitetypes.ClientConfig) {
		c.Region = region
	}
}

// WithEndpoint sets a custom S3 endpoint URL.
// This is useful for S3-compatible services or local testing with LocalStack.
func WithEndpoint(endpoint string) sitetypes.Option {
	return func(c *sitetypes.ClientConfig) {
		c.Endpoint = endpoint
	}
}

// WithMaxRetries sets the maximum number of retry attempts for failed operations.
// Default is 3 retries. Set to 0 to disable retries.
func WithMaxRetries(maxRetries int) sitetypes.Option {
	return func(c *sitetypes.ClientConfig) {
		c.MaxRetries = maxRetries
	}
}

// WithTimeout sets the timeout for individual S3 operations.
// Default is no timeout (0). Values should be positive durations.
func WithTimeout(timeout time.Duration) sitetypes.Option {
	return func(c *sitetypes.ClientConfig) {
		c.Timeout = timeout
	}
}

// WithForcePathStyle forces the use of path-style URLs instead of virtual-hosted style.
// This is required for S3-compatible services that don't support virtual hosting.
// Default is false (uses virtual-hosted style).
func WithForcePathStyle(forcePathStyle bool) sitetypes.Option {
	return func(c *sitetypes.ClientConfig) {
		c.ForcePathStyle = forcePathStyle
	}
}

// WithAWSConfig allows providing a custom AWS configuration.
// This overrides the default configuration loading behavior.
// Use this when you need fine-grained control over AWS SDK configuration.
func WithAWSConfig(config *aws.Config) sitetypes.Option {
	return func(c *sitetypes.ClientConfig) {
		c.CustomAWSConfig = config
	}
}

// WithHTTPClient allows providing a custom HTTP client.
// This gives full control over HTTP behavior including timeouts and proxies.
func WithHTTPClient(client *http.Client) sitetypes.Option {
	return func(c *sitetypes.ClientConfig) {
		c.CustomHTTPClient = client
	}
}

// WithFilesystem sets a custom filesystem implementation for file operations.
// This allows using in-memory filesystems for testing or virtual filesystems.
// If not specified, defaults to the OS filesystem.
func WithFilesystem(filesystem fs.Filesystem) sitetypes.Option {
	return func(c *sitetypes.ClientConfig) {
		c.Filesystem = filesystem
	}
}

// WithLogger sets the structured logger used for operation logging.
// If not specified, logging is disabled.
func WithLogger(logger *slog.Logger) sitetypes.Option {
	return func(c *sitetypes.ClientConfig) {
		c.Logger = logger
	}
}

// WithContentType sets the content type for upload operations.
// If not specified, the content type is derived from the object key's
// extension, falling back to content sniffing.
func WithContentType(contentType string) sitetypes.UploadOption {
	return func(c *sitetypes.UploadOptionConfig) {
		c.ContentType = contentType
	}
}

// WithACL sets the canned ACL for upload operations.
func WithACL(acl sitetypes.ObjectACL) sitetypes.UploadOption {
	return func(c *sitetypes.UploadOptionConfig) {
		c.ACL = acl
	}
}

// WithMetadata sets metadata for upload operations.
func WithMetadata(metadata map[string]string) sitetypes.UploadOption {
	return func(c *sitetypes.UploadOptionConfig) {
		if c.Metadata == nil {
			c.Metadata = make(map[string]string)
		}
		for k, v := range metadata {
			c.Metadata[k] = v
		}
	}
}

// WithPrefix restricts listing to keys beginning with the given prefix.
func WithPrefix(prefix string) sitetypes.ListOption {
	return func(c *sitetypes.ListOptionConfig) {
		c.Prefix = prefix
	}
}

// WithMaxKeys limits the number of keys returned per listing page.
func WithMaxKeys(maxKeys int32) sitetypes.ListOption {
	return func(c *sitetypes.ListOptionConfig) {
		if maxKeys > 0 {
			c.MaxKeys = maxKeys
		}
	}
}

// WithBucketRegion sets the region a new bucket is created in.
// If not specified, the client's region is used.
func WithBucketRegion(region string) sitetypes.BucketOption {
	return func(c *sitetypes.BucketOptionConfig) {
		c.Region = region
	}
}

// WithIndexDocument sets the index document for website hosting.
// Default is "index.html".
func WithIndexDocument(index string) sitetypes.WebsiteOption {
	return func(c *sitetypes.WebsiteOptionConfig) {
		c.IndexDocument = index
	}
}

// WithErrorDocument sets the error document for website hosting.
// Default is "error.html".
func WithErrorDocument(errorDoc string) sitetypes.WebsiteOption {
	return func(c *sitetypes.WebsiteOptionConfig) {
		c.ErrorDocument = errorDoc
	}
}

// WithDryRun previews a sync without performing any uploads.
func WithDryRun(dryRun bool) sitetypes.SyncOption {
	return func(c *sitetypes.SyncOptionConfig) {
		c.DryRun = dryRun
	}
}

// WithExcludePatterns skips local files whose relative path matches any
// of the given glob patterns. Exclude patterns take precedence over
// include patterns.
func WithExcludePatterns(patterns ...string) sitetypes.SyncOption {
	return func(c *sitetypes.SyncOptionConfig) {
		c.ExcludePatterns = append(c.ExcludePatterns, patterns...)
	}
}

// WithIncludePatterns restricts a sync to local files whose relative path
// matches at least one of the given glob patterns.
func WithIncludePatterns(patterns ...string) sitetypes.SyncOption {
	return func(c *sitetypes.SyncOptionConfig) {
		c.IncludePatterns = append(c.IncludePatterns, patterns...)
	}
}

// WithSyncPrefix prepends the given key prefix to every object key
// produced by a sync.
func WithSyncPrefix(prefix string) sitetypes.SyncOption {
	return func(c *sitetypes.SyncOptionConfig) {
		c.Prefix = prefix
	}
}

// WithSyncParallelism sets the number of concurrent uploads a sync may
// perform. Default is 1 (sequential, deterministic key order).
func WithSyncParallelism(parallelism int) sitetypes.SyncOption {
	return func(c *sitetypes.SyncOptionConfig) {
		if parallelism > 0 {
			c.Parallelism = parallelism
		}
	}
}
