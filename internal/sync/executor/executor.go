package executor

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	awstypes "github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/input-output-hk/catalyst-forge-libs/fs"

	"github.com/webfleet/sitesync/internal/contenttype"
	"github.com/webfleet/sitesync/internal/pool"
	"github.com/webfleet/sitesync/internal/s3api"
	"github.com/webfleet/sitesync/internal/sync/planner"
	"github.com/webfleet/sitesync/internal/transfer/multipart"
	"github.com/webfleet/sitesync/sitetypes"
)

// Executor uploads the files a plan calls for.
//
// Uploads run one at a time unless a higher parallelism is configured, and
// a failed upload never stops the rest: it is recorded and the run moves
// on to the next file.
type Executor struct {
	s3Client    s3api.S3API
	filesystem  fs.Filesystem
	parallelism int
	logger      *slog.Logger
}

// NewExecutor creates a new executor. Parallelism values below 1 mean
// sequential execution.
func NewExecutor(s3Client s3api.S3API, filesystem fs.Filesystem, parallelism int, logger *slog.Logger) *Executor {
	if parallelism < 1 {
		parallelism = 1
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Executor{
		s3Client:    s3Client,
		filesystem:  filesystem,
		parallelism: parallelism,
		logger:      logger,
	}
}

// Result accumulates the outcome of executing a plan's uploads.
type Result struct {
	filesUploaded int64
	bytesUploaded int64

	mu     sync.Mutex
	errors []sitetypes.SyncError
}

// FilesUploaded returns the number of files uploaded.
func (r *Result) FilesUploaded() int {
	return int(atomic.LoadInt64(&r.filesUploaded))
}

// BytesUploaded returns the total bytes uploaded.
func (r *Result) BytesUploaded() int64 {
	return atomic.LoadInt64(&r.bytesUploaded)
}

// Errors returns the per-file failures recorded during execution.
func (r *Result) Errors() []sitetypes.SyncError {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]sitetypes.SyncError(nil), r.errors...)
}

func (r *Result) recordError(op *planner.Operation, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.errors = append(r.errors, sitetypes.SyncError{
		Path:    op.LocalPath,
		Key:     op.Key,
		Message: err.Error(),
	})
}

// ExecuteUploads uploads every upload operation in the plan. Per-file
// failures are collected in the Result; only a cancelled context stops
// the run early.
func (e *Executor) ExecuteUploads(
	ctx context.Context,
	bucket string,
	operations []*planner.Operation,
) (*Result, error) {
	result := &Result{}

	uploads := make([]*planner.Operation, 0, len(operations))
	for _, op := range operations {
		if op.Type == planner.OperationUpload {
			uploads = append(uploads, op)
		}
	}
	if len(uploads) == 0 {
		return result, nil
	}

	if e.parallelism == 1 {
		for _, op := range uploads {
			select {
			case <-ctx.Done():
				return result, fmt.Errorf("sync cancelled: %w", ctx.Err())
			default:
			}
			e.uploadOne(ctx, bucket, op, result)
		}
		return result, nil
	}

	return result, e.executeParallel(ctx, bucket, uploads, result)
}

// executeParallel runs uploads under a semaphore when parallelism > 1.
func (e *Executor) executeParallel(
	ctx context.Context,
	bucket string,
	uploads []*planner.Operation,
	result *Result,
) error {
	var wg sync.WaitGroup
	semaphore := make(chan struct{}, e.parallelism)

	for _, op := range uploads {
		select {
		case semaphore <- struct{}{}:
		case <-ctx.Done():
			wg.Wait()
			return fmt.Errorf("sync cancelled: %w", ctx.Err())
		}

		wg.Add(1)
		go func(op *planner.Operation) {
			defer func() {
				<-semaphore
				wg.Done()
			}()
			e.uploadOne(ctx, bucket, op, result)
		}(op)
	}

	wg.Wait()
	return nil
}

// uploadOne uploads a single planned file, recording rather than
// returning failures.
func (e *Executor) uploadOne(ctx context.Context, bucket string, op *planner.Operation, result *Result) {
	start := time.Now()

	file, err := e.filesystem.Open(op.LocalPath)
	if err != nil {
		e.logger.Warn("upload failed", "key", op.Key, "error", err)
		result.recordError(op, fmt.Errorf("failed to open file: %w", err))
		return
	}
	defer file.Close()

	config := &sitetypes.UploadOptionConfig{
		ContentType: contenttype.ForFile(e.filesystem, op.LocalPath),
	}

	if op.Size > pool.ChunkSize {
		uploader := multipart.NewUploader(e.s3Client)
		if _, err := uploader.Upload(ctx, bucket, op.Key, file, config, start); err != nil {
			e.logger.Warn("upload failed", "key", op.Key, "error", err)
			result.recordError(op, err)
			return
		}
	} else {
		input := &s3.PutObjectInput{
			Bucket:      &bucket,
			Key:         &op.Key,
			Body:        file,
			ContentType: &config.ContentType,
		}
		if config.ACL != "" {
			input.ACL = awstypes.ObjectCannedACL(config.ACL)
		}
		if _, err := e.s3Client.PutObject(ctx, input); err != nil {
			e.logger.Warn("upload failed", "key", op.Key, "error", err)
			result.recordError(op, fmt.Errorf("failed to upload: %w", err))
			return
		}
	}

	atomic.AddInt64(&result.filesUploaded, 1)
	atomic.AddInt64(&result.bytesUploaded, op.Size)
	e.logger.Info("uploaded",
		"key", op.Key,
		"size", op.Size,
		"reason", op.Reason,
		"duration", time.Since(start))
}
