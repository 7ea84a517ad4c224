// Package sitetypes provides shared type definitions for the sitesync module.
package sitetypes

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/input-output-hk/catalyst-forge-libs/fs"
)

// ObjectKind identifies what a local path refers to when uploading.
type ObjectKind string

// Predefined object kinds
const (
	// KindFile uploads a single file under its base name
	KindFile ObjectKind = "file"

	// KindDir uploads every regular file beneath the directory
	KindDir ObjectKind = "dir"
)

// ObjectACL represents the access control list for S3 objects.
type ObjectACL string

// Predefined object ACLs
const (
	// ACLPrivate grants private access (default)
	ACLPrivate ObjectACL = "private"

	// ACLPublicRead grants public read access
	ACLPublicRead ObjectACL = "public-read"
)

// Object represents an S3 object with its basic metadata.
type Object struct {
	// Key is the S3 object key (path)
	Key string

	// Size is the object size in bytes
	Size int64

	// LastModified is when the object was last modified
	LastModified time.Time

	// ETag is the S3 entity tag for the object, quoted as S3 returns it
	ETag string
}

// Bucket represents an S3 bucket.
type Bucket struct {
	// Name is the bucket name
	Name string

	// CreationDate is when the bucket was created
	CreationDate time.Time
}

// LocalFile represents a file on the local filesystem during sync operations.
type LocalFile struct {
	// Path is the local file path
	Path string

	// Key is the object key the file maps to in the bucket
	Key string

	// Size is the file size in bytes
	Size int64

	// ModTime is the file modification time
	ModTime time.Time
}

// UploadResult contains the result of an upload operation.
type UploadResult struct {
	// Key is the S3 object key that was uploaded
	Key string

	// Size is the size of the uploaded object in bytes
	Size int64

	// ETag is the S3 entity tag for the uploaded object
	ETag string

	// Duration is how long the upload took
	Duration time.Duration
}

// ListResult contains the result of a list operation.
type ListResult struct {
	// Objects contains the listed objects
	Objects []Object

	// IsTruncated indicates if the results were truncated
	IsTruncated bool

	// NextContinuationToken is the token for the next page of results
	NextContinuationToken string
}

// SyncResult contains the result of a sync operation.
type SyncResult struct {
	// FilesUploaded is the number of files uploaded
	FilesUploaded int

	// FilesSkipped is the number of files skipped (unchanged)
	FilesSkipped int

	// BytesUploaded is the total bytes uploaded
	BytesUploaded int64

	// Errors contains any errors that occurred during sync
	Errors []SyncError

	// Duration is how long the sync operation took
	Duration time.Duration

	// Operations describes every planned action, populated for dry runs
	Operations []SyncOperation
}

// SyncOperation describes a planned action for a single local file.
type SyncOperation struct {
	// Type is the operation type ("upload" or "skip")
	Type string

	// LocalPath is the local file path
	LocalPath string

	// Key is the object key the file maps to
	Key string

	// Size is the file size in bytes
	Size int64

	// Reason describes why the operation was planned
	Reason string
}

// SyncError represents an error that occurred during a sync operation.
type SyncError struct {
	// Path is the local file path that caused the error
	Path string

	// Key is the object key the file maps to
	Key string

	// Message is the error message
	Message string
}

// Configuration types for functional options

// ClientConfig holds configuration for the sitesync client.
type ClientConfig struct {
	Region           string
	Endpoint         string
	MaxRetries       int
	Timeout          time.Duration
	ForcePathStyle   bool
	CustomAWSConfig  *aws.Config
	CustomHTTPClient *http.Client
	Filesystem       fs.Filesystem // Filesystem abstraction for file operations
	Logger           *slog.Logger
}

// UploadOptionConfig holds configuration for upload operations via functional options.
type UploadOptionConfig struct {
	ContentType string
	ACL         ObjectACL
	Metadata    map[string]string
}

// ListOptionConfig holds configuration for list operations via functional options.
type ListOptionConfig struct {
	Prefix  string
	MaxKeys int32
}

// BucketOptionConfig holds configuration for bucket operations via functional options.
type BucketOptionConfig struct {
	Region string
}

// WebsiteOptionConfig holds configuration for website operations via functional options.
type WebsiteOptionConfig struct {
	IndexDocument string
	ErrorDocument string
}

// SyncOptionConfig holds configuration for sync operations via functional options.
type SyncOptionConfig struct {
	DryRun          bool
	ExcludePatterns []string
	IncludePatterns []string
	Prefix          string
	Parallelism     int
}

// Option is a functional option for configuring the sitesync client.
type (
	Option func(*ClientConfig)
	// UploadOption is a functional option for configuring upload operations.
	UploadOption func(*UploadOptionConfig)
	// ListOption is a functional option for configuring list operations.
	ListOption func(*ListOptionConfig)
	// BucketOption is a functional option for configuring bucket operations.
	BucketOption func(*BucketOptionConfig)
	// WebsiteOption is a functional option for configuring website operations.
	WebsiteOption func(*WebsiteOptionConfig)
	// SyncOption is a functional option for configuring sync operations.
	SyncOption func(*SyncOptionConfig)
)
