// Package multipart handles multipart upload operations for files above the
// chunk size, with abort-on-failure cleanup.
package multipart

import (
	"bytes"
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	awstypes "github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/webfleet/sitesync/errors"
	"github.com/webfleet/sitesync/internal/pool"
	"github.com/webfleet/sitesync/internal/s3api"
	"github.com/webfleet/sitesync/sitetypes"
)

// Uploader handles multipart upload operations.
//
// Parts are exactly pool.ChunkSize bytes (except the last), uploaded in
// order. Keeping the part size equal to the digest chunk size means the
// ETag S3 computes for the completed upload equals the locally computed
// content digest, which is what makes incremental sync decisions sound.
type Uploader struct {
	s3Client s3api.S3API
}

// NewUploader creates a new multipart uploader.
func NewUploader(s3Client s3api.S3API) *Uploader {
	return &Uploader{
		s3Client: s3Client,
	}
}

// Upload performs a multipart upload of data from an io.Reader.
// On any part failure the upload is aborted so no orphaned parts accrue.
func (u *Uploader) Upload(
	ctx context.Context,
	bucket, key string,
	reader io.Reader,
	config *sitetypes.UploadOptionConfig,
	startTime time.Time,
) (*sitetypes.UploadResult, error) {
	uploadID, err := u.create(ctx, bucket, key, config)
	if err != nil {
		return nil, err
	}

	parts, totalSize, err := u.uploadParts(ctx, bucket, key, uploadID, reader)
	if err != nil {
		u.abort(ctx, bucket, key, uploadID)
		return nil, err
	}

	return u.complete(ctx, bucket, key, uploadID, parts, totalSize, startTime)
}

// create starts a new multipart upload.
func (u *Uploader) create(
	ctx context.Context,
	bucket, key string,
	config *sitetypes.UploadOptionConfig,
) (string, error) {
	input := &s3.CreateMultipartUploadInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	}
	if config.ContentType != "" {
		input.ContentType = aws.String(config.ContentType)
	}
	if config.ACL != "" {
		input.ACL = awstypes.ObjectCannedACL(config.ACL)
	}
	if len(config.Metadata) > 0 {
		input.Metadata = config.Metadata
	}

	output, err := u.s3Client.CreateMultipartUpload(ctx, input)
	if err != nil {
		return "", errors.NewError("createMultipartUpload", err).WithBucket(bucket).WithKey(key)
	}

	return aws.ToString(output.UploadId), nil
}

// uploadParts streams the reader one chunk at a time, uploading each chunk
// as the next part.
func (u *Uploader) uploadParts(
	ctx context.Context,
	bucket, key, uploadID string,
	reader io.Reader,
) ([]awstypes.CompletedPart, int64, error) {
	buf := pool.GetChunk()
	defer pool.PutChunk(buf)

	var parts []awstypes.CompletedPart
	var totalSize int64
	partNumber := int32(1)

	for {
		n, err := io.ReadFull(reader, buf)
		if n > 0 {
			etag, upErr := u.uploadPart(ctx, bucket, key, uploadID, partNumber, buf[:n])
			if upErr != nil {
				return nil, 0, upErr
			}
			parts = append(parts, awstypes.CompletedPart{
				ETag:       aws.String(etag),
				PartNumber: aws.Int32(partNumber),
			})
			totalSize += int64(n)
			partNumber++
		}
		if stderrors.Is(err, io.EOF) || stderrors.Is(err, io.ErrUnexpectedEOF) {
			break
		}
		if err != nil {
			return nil, 0, fmt.Errorf("failed to read part %d: %w", partNumber, err)
		}
	}

	if len(parts) == 0 {
		return nil, 0, fmt.Errorf("no data to upload for %s/%s", bucket, key)
	}

	return parts, totalSize, nil
}

// uploadPart uploads a single part.
func (u *Uploader) uploadPart(
	ctx context.Context,
	bucket, key, uploadID string,
	partNumber int32,
	data []byte,
) (string, error) {
	input := &s3.UploadPartInput{
		Bucket:     aws.String(bucket),
		Key:        aws.String(key),
		UploadId:   aws.String(uploadID),
		PartNumber: aws.Int32(partNumber),
		Body:       bytes.NewReader(data),
	}

	output, err := u.s3Client.UploadPart(ctx, input)
	if err != nil {
		return "", errors.NewError("uploadPart", err).WithBucket(bucket).WithKey(key)
	}

	return aws.ToString(output.ETag), nil
}

// complete finalizes the multipart upload.
func (u *Uploader) complete(
	ctx context.Context,
	bucket, key, uploadID string,
	parts []awstypes.CompletedPart,
	totalSize int64,
	startTime time.Time,
) (*sitetypes.UploadResult, error) {
	input := &s3.CompleteMultipartUploadInput{
		Bucket:   aws.String(bucket),
		Key:      aws.String(key),
		UploadId: aws.String(uploadID),
		MultipartUpload: &awstypes.CompletedMultipartUpload{
			Parts: parts,
		},
	}

	output, err := u.s3Client.CompleteMultipartUpload(ctx, input)
	if err != nil {
		u.abort(ctx, bucket, key, uploadID)
		return nil, errors.NewError("completeMultipartUpload", err).WithBucket(bucket).WithKey(key)
	}

	return &sitetypes.UploadResult{
		Key:      key,
		Size:     totalSize,
		ETag:     aws.ToString(output.ETag),
		Duration: time.Since(startTime),
	}, nil
}

// abort cleans up a failed multipart upload.
func (u *Uploader) abort(ctx context.Context, bucket, key, uploadID string) {
	input := &s3.AbortMultipartUploadInput{
		Bucket:   aws.String(bucket),
		Key:      aws.String(key),
		UploadId: aws.String(uploadID),
	}
	// Ignore errors during cleanup
	_, _ = u.s3Client.AbortMultipartUpload(ctx, input)
}
