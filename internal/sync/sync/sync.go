package sync

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/input-output-hk/catalyst-forge-libs/fs"

	"github.com/webfleet/sitesync/internal/manifest"
	"github.com/webfleet/sitesync/internal/s3api"
	"github.com/webfleet/sitesync/internal/sync/executor"
	"github.com/webfleet/sitesync/internal/sync/planner"
	"github.com/webfleet/sitesync/internal/sync/scanner"
)

// Manager coordinates the three phases of a sync:
// 1. Inventory: scan the local tree and load the bucket manifest
// 2. Planning: digest local files and diff them against the manifest
// 3. Execution: upload what changed, skip what didn't
type Manager struct {
	s3Client   s3api.S3API
	filesystem fs.Filesystem
	logger     *slog.Logger
}

// NewManager creates a new sync manager.
func NewManager(s3Client s3api.S3API, filesystem fs.Filesystem, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Manager{
		s3Client:   s3Client,
		filesystem: filesystem,
		logger:     logger,
	}
}

// Sync executes a complete sync operation.
func (sm *Manager) Sync(ctx context.Context, config *Config) (*Result, error) {
	startTime := time.Now()

	// Phase 1: Inventory
	localFiles, err := scanner.NewScanner(sm.filesystem).ScanLocal(
		ctx, config.LocalPath, config.Prefix, config.IncludePatterns, config.ExcludePatterns)
	if err != nil {
		return nil, fmt.Errorf("failed to scan local directory: %w", err)
	}

	remote, err := manifest.Load(ctx, sm.s3Client, config.Bucket, config.Prefix)
	if err != nil {
		return nil, err
	}

	sm.logger.Debug("inventory built",
		"local_files", len(localFiles),
		"remote_objects", len(remote))

	// Phase 2: Planning
	plan, err := planner.NewPlanner(sm.filesystem).Plan(ctx, localFiles, remote)
	if err != nil {
		return nil, fmt.Errorf("failed to plan operations: %w", err)
	}

	stats := plan.Stats()
	sm.logger.Debug("plan ready",
		"uploads", stats.Uploads,
		"skips", stats.Skips,
		"bytes_to_upload", stats.BytesToUpload)

	if config.DryRun {
		return &Result{
			FilesSkipped: stats.Skips,
			Errors:       plan.Failures,
			Operations:   convertOperations(plan.Operations),
			Duration:     time.Since(startTime),
		}, nil
	}

	// Phase 3: Execution
	exec := executor.NewExecutor(sm.s3Client, sm.filesystem, config.Parallelism, sm.logger)
	execResult, err := exec.ExecuteUploads(ctx, config.Bucket, plan.Operations)
	if err != nil {
		return nil, fmt.Errorf("failed to execute operations: %w", err)
	}

	result := &Result{
		FilesUploaded: execResult.FilesUploaded(),
		FilesSkipped:  stats.Skips,
		BytesUploaded: execResult.BytesUploaded(),
		Errors:        append(plan.Failures, execResult.Errors()...),
		Duration:      time.Since(startTime),
	}
	return result, nil
}

// convertOperations converts planner operations to the external view.
func convertOperations(plannerOps []*planner.Operation) []Operation {
	ops := make([]Operation, len(plannerOps))
	for i, op := range plannerOps {
		ops[i] = Operation{
			Type:      OperationType(op.Type),
			LocalPath: op.LocalPath,
			Key:       op.Key,
			Size:      op.Size,
			Reason:    op.Reason,
		}
	}
	return ops
}
