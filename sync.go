package sitesync

import (
	"context"
	"fmt"

	"github.com/webfleet/sitesync/errors"
	"github.com/webfleet/sitesync/internal/sync/sync"
	"github.com/webfleet/sitesync/internal/validation"
	"github.com/webfleet/sitesync/sitetypes"
)

// Sync incrementally synchronizes a local directory with an S3 bucket.
//
// The sync follows a three-phase approach:
//  1. Inventory: scan the local tree and load the bucket's manifest
//     (key to ETag) via paginated listing
//  2. Planning: digest each local file with the chunked scheme S3 uses
//     for ETags and diff it against the manifest
//  3. Execution: upload only new or modified files, skipping everything
//     whose digest already matches
//
// A file is re-uploaded if and only if its freshly computed digest
// differs from the manifest's digest for the same key, so an unchanged
// tree syncs with zero uploads. Per-file failures are recorded in
// SyncResult.Errors and never abort the remaining files.
//
// Errors:
//   - ErrInvalidInput: if localPath or bucket is invalid
//   - ErrManifestUnavailable: if the remote listing could not be loaded
//     (a failed listing is never treated as an empty bucket)
//
// Example:
//
//	result, err := client.Sync(ctx, "/site", "my-site",
//	    sitesync.WithExcludePatterns("*.tmp"),
//	    sitesync.WithDryRun(true),
//	)
//	if err != nil {
//	    return fmt.Errorf("sync failed: %w", err)
//	}
//	fmt.Printf("uploaded %d files (%d bytes), skipped %d\n",
//	    result.FilesUploaded, result.BytesUploaded, result.FilesSkipped)
func (c *Client) Sync(
	ctx context.Context,
	localPath, bucket string,
	opts ...sitetypes.SyncOption,
) (*sitetypes.SyncResult, error) {
	if localPath == "" {
		return nil, errors.NewBucketError("sync", bucket,
			fmt.Errorf("%w: local path is required", errors.ErrInvalidInput))
	}
	if err := validation.ValidateBucketName(bucket); err != nil {
		return nil, errors.NewBucketError("sync", bucket, err)
	}

	config := &sitetypes.SyncOptionConfig{
		Parallelism: 1,
	}
	for _, opt := range opts {
		opt(config)
	}

	manager := sync.NewManager(c.s3Client, c.fs, c.logger)
	result, err := manager.Sync(ctx, &sync.Config{
		LocalPath:       localPath,
		Bucket:          bucket,
		Prefix:          config.Prefix,
		IncludePatterns: config.IncludePatterns,
		ExcludePatterns: config.ExcludePatterns,
		DryRun:          config.DryRun,
		Parallelism:     config.Parallelism,
	})
	if err != nil {
		// Manager errors already carry operation and bucket context.
		return nil, err
	}

	c.logger.Info("sync complete",
		"bucket", bucket,
		"uploaded", result.FilesUploaded,
		"skipped", result.FilesSkipped,
		"bytes", result.BytesUploaded,
		"errors", len(result.Errors),
		"dry_run", config.DryRun)

	return &sitetypes.SyncResult{
		FilesUploaded: result.FilesUploaded,
		FilesSkipped:  result.FilesSkipped,
		BytesUploaded: result.BytesUploaded,
		Errors:        result.Errors,
		Duration:      result.Duration,
		Operations:    convertSyncOperations(result.Operations),
	}, nil
}

// convertSyncOperations converts the internal plan view to the public one.
func convertSyncOperations(ops []sync.Operation) []sitetypes.SyncOperation {
	if len(ops) == 0 {
		return nil
	}
	converted := make([]sitetypes.SyncOperation, len(ops))
	for i, op := range ops {
		converted[i] = sitetypes.SyncOperation{
			Type:      string(op.Type),
			LocalPath: op.LocalPath,
			Key:       op.Key,
			Size:      op.Size,
			Reason:    op.Reason,
		}
	}
	return converted
}
