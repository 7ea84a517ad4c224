package planner

import (
	"context"
	"sort"

	"github.com/input-output-hk/catalyst-forge-libs/fs"

	"github.com/webfleet/sitesync/internal/digest"
	"github.com/webfleet/sitesync/internal/manifest"
	"github.com/webfleet/sitesync/sitetypes"
)

// Planner diffs scanned local files against the bucket manifest and decides
// what must be uploaded.
type Planner struct {
	filesystem fs.Filesystem
}

// NewPlanner creates a new planner over the provided filesystem.
func NewPlanner(filesystem fs.Filesystem) *Planner {
	return &Planner{
		filesystem: filesystem,
	}
}

// OperationType defines the type of sync operation.
type OperationType string

const (
	// OperationUpload indicates a file needs to be uploaded
	OperationUpload OperationType = "upload"

	// OperationSkip indicates a file is unchanged and should be skipped
	OperationSkip OperationType = "skip"
)

// Operation represents a planned sync operation.
type Operation struct {
	// Type of operation (upload or skip)
	Type OperationType

	// LocalPath is the local file path
	LocalPath string

	// Key is the S3 object key
	Key string

	// Size is the file size in bytes
	Size int64

	// Digest is the computed content digest of the local file
	Digest string

	// Reason describes why this operation was planned
	Reason string
}

// Plan is the ordered set of operations a sync will execute, plus the
// files that could not be planned.
type Plan struct {
	// Operations, ordered by object key
	Operations []*Operation

	// Failures holds files whose digest could not be computed. They do
	// not stop the rest of the plan.
	Failures []sitetypes.SyncError
}

// Stats summarizes a plan.
type Stats struct {
	// Number of files to upload
	Uploads int

	// Number of files to skip
	Skips int

	// Total bytes to upload
	BytesToUpload int64
}

// Plan computes the content digest of every local file and compares it to
// the manifest entry for the file's key. A file is uploaded when its key
// is absent from the manifest or when the digests differ; a file whose
// digest equals the manifest entry is skipped. Operations are returned in
// key order so runs are deterministic.
func (p *Planner) Plan(
	ctx context.Context,
	localFiles []*sitetypes.LocalFile,
	m manifest.Manifest,
) (*Plan, error) {
	plan := &Plan{}

	for _, file := range localFiles {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		d, err := digest.File(p.filesystem, file.Path)
		if err != nil {
			plan.Failures = append(plan.Failures, sitetypes.SyncError{
				Path:    file.Path,
				Key:     file.Key,
				Message: err.Error(),
			})
			continue
		}

		op := &Operation{
			LocalPath: file.Path,
			Key:       file.Key,
			Size:      file.Size,
			Digest:    d,
		}

		switch remote := m.Digest(file.Key); {
		case remote == "":
			op.Type = OperationUpload
			op.Reason = "new file"
		case remote != d:
			op.Type = OperationUpload
			op.Reason = "modified"
		default:
			op.Type = OperationSkip
			op.Reason = "unchanged"
		}

		plan.Operations = append(plan.Operations, op)
	}

	sort.Slice(plan.Operations, func(i, j int) bool {
		return plan.Operations[i].Key < plan.Operations[j].Key
	})

	return plan, nil
}

// Uploads returns only the upload operations of a plan, in key order.
func (pl *Plan) Uploads() []*Operation {
	var uploads []*Operation
	for _, op := range pl.Operations {
		if op.Type == OperationUpload {
			uploads = append(uploads, op)
		}
	}
	return uploads
}

// Stats returns statistics about the planned operations.
func (pl *Plan) Stats() Stats {
	stats := Stats{}
	for _, op := range pl.Operations {
		switch op.Type {
		case OperationUpload:
			stats.Uploads++
			stats.BytesToUpload += op.Size
		case OperationSkip:
			stats.Skips++
		}
	}
	return stats
}
