// Package sync provides shared types for the sync functionality.
package sync

import (
	"time"

	"github.com/webfleet/sitesync/sitetypes"
)

// Config holds configuration for a sync operation.
type Config struct {
	// LocalPath is the local directory to sync from
	LocalPath string

	// Bucket is the S3 bucket to sync to
	Bucket string

	// Prefix is the S3 key prefix to sync to
	Prefix string

	// IncludePatterns are glob patterns for files to include
	IncludePatterns []string

	// ExcludePatterns are glob patterns for files to exclude
	ExcludePatterns []string

	// DryRun determines if this should be a dry run (no actual changes)
	DryRun bool

	// Parallelism controls the number of concurrent uploads (1 = sequential)
	Parallelism int
}

// Result contains the results of a sync operation.
type Result struct {
	// FilesUploaded is the number of files uploaded
	FilesUploaded int

	// FilesSkipped is the number of files skipped (unchanged)
	FilesSkipped int

	// BytesUploaded is the total bytes uploaded
	BytesUploaded int64

	// Errors contains any per-file errors that occurred during sync
	Errors []sitetypes.SyncError

	// Duration is how long the sync operation took
	Duration time.Duration

	// Operations contains details about planned operations (for dry run)
	Operations []Operation
}

// Operation is the externally visible view of a planned operation.
type Operation struct {
	// Type is the operation type (upload or skip)
	Type OperationType

	// LocalPath is the local file path
	LocalPath string

	// Key is the S3 object key
	Key string

	// Size is the file size
	Size int64

	// Reason describes why this operation is needed
	Reason string
}

// OperationType defines the type of sync operation.
type OperationType string

const (
	// OperationUpload indicates a file needs to be uploaded
	OperationUpload OperationType = "upload"

	// OperationSkip indicates a file is unchanged and should be skipped
	OperationSkip OperationType = "skip"
)
