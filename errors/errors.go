// Package errors provides error types and handling for sitesync operations.
package errors

import (
	"errors"
	"fmt"
)

// Error represents a failed operation with context about where it failed.
// It wraps the underlying AWS SDK or filesystem error for error chaining.
type Error struct {
	// Op is the operation that failed (e.g., "sync", "createBucket")
	Op string

	// Bucket is the S3 bucket name (if applicable)
	Bucket string

	// Key is the S3 object key (if applicable)
	Key string

	// Err is the underlying error from the AWS SDK or other source
	Err error
}

// Error implements the error interface by providing a formatted error message.
func (e *Error) Error() string {
	if e.Bucket != "" && e.Key != "" {
		return fmt.Sprintf("sitesync.%s %s/%s: %v", e.Op, e.Bucket, e.Key, e.Err)
	}
	if e.Bucket != "" {
		return fmt.Sprintf("sitesync.%s bucket %s: %v", e.Op, e.Bucket, e.Err)
	}
	if e.Key != "" {
		return fmt.Sprintf("sitesync.%s object %s: %v", e.Op, e.Key, e.Err)
	}
	return fmt.Sprintf("sitesync.%s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error for error chaining support.
func (e *Error) Unwrap() error {
	return e.Err
}

// WithBucket adds bucket context to an existing error.
func (e *Error) WithBucket(bucket string) *Error {
	e.Bucket = bucket
	return e
}

// WithKey adds object key context to an existing error.
func (e *Error) WithKey(key string) *Error {
	e.Key = key
	return e
}

// WithMessage wraps the underlying error with a custom message.
func (e *Error) WithMessage(message string) *Error {
	e.Err = fmt.Errorf("%s: %w", message, e.Err)
	return e
}

// NewError creates a new Error with the given operation and underlying error.
func NewError(op string, err error) *Error {
	return &Error{
		Op:  op,
		Err: err,
	}
}

// NewBucketError creates a new Error with bucket context.
func NewBucketError(op, bucket string, err error) *Error {
	return &Error{
		Op:     op,
		Bucket: bucket,
		Err:    err,
	}
}

// NewObjectError creates a new Error with bucket and key context.
func NewObjectError(op, bucket, key string, err error) *Error {
	return &Error{
		Op:     op,
		Bucket: bucket,
		Key:    key,
		Err:    err,
	}
}

// Sentinel errors for the failure classes callers branch on: input
// validation, remote-call failures, and manifest conditions.
// These can be used with errors.Is() for error checking.
var (
	// ErrInvalidInput indicates that the provided input is invalid
	ErrInvalidInput = errors.New("sitesync: invalid input")

	// ErrInvalidBucketName indicates that the bucket name is invalid
	ErrInvalidBucketName = errors.New("sitesync: invalid bucket name")

	// ErrInvalidObjectKey indicates that the object key is invalid
	ErrInvalidObjectKey = errors.New("sitesync: invalid object key")

	// ErrInvalidObjectKind indicates an unrecognized upload kind
	// (neither KindFile nor KindDir)
	ErrInvalidObjectKind = errors.New("sitesync: invalid object kind")

	// ErrBucketNotFound indicates that the requested bucket does not exist
	ErrBucketNotFound = errors.New("sitesync: bucket not found")

	// ErrBucketAlreadyExists indicates that the bucket already exists
	ErrBucketAlreadyExists = errors.New("sitesync: bucket already exists")

	// ErrAccessDenied indicates that access to the resource is denied
	ErrAccessDenied = errors.New("sitesync: access denied")

	// ErrManifestUnavailable indicates the remote object listing could not
	// be retrieved. An empty bucket is not an error; a failed listing is,
	// so a sync never silently degrades into a full re-upload.
	ErrManifestUnavailable = errors.New("sitesync: manifest unavailable")

	// ErrUnknownRegion indicates a region with no known website endpoint
	ErrUnknownRegion = errors.New("sitesync: unknown website region")
)

// IsInvalidInput checks if an error indicates invalid input.
// This is a convenience function that handles both sentinel errors and wrapped errors.
func IsInvalidInput(err error) bool {
	return errors.Is(err, ErrInvalidInput) ||
		errors.Is(err, ErrInvalidBucketName) ||
		errors.Is(err, ErrInvalidObjectKey) ||
		errors.Is(err, ErrInvalidObjectKind)
}

// IsBucketNotFound checks if an error indicates that a bucket was not found.
func IsBucketNotFound(err error) bool {
	return errors.Is(err, ErrBucketNotFound)
}

// IsAccessDenied checks if an error indicates access was denied.
func IsAccessDenied(err error) bool {
	return errors.Is(err, ErrAccessDenied)
}

// IsManifestUnavailable checks if an error indicates the remote manifest
// could not be loaded.
func IsManifestUnavailable(err error) bool {
	return errors.Is(err, ErrManifestUnavailable)
}
