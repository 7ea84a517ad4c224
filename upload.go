package sitesync

import (
	"bytes"
	"context"
	goerrors "errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	awstypes "github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/webfleet/sitesync/errors"
	"github.com/webfleet/sitesync/internal/contenttype"
	"github.com/webfleet/sitesync/internal/pool"
	"github.com/webfleet/sitesync/internal/transfer/multipart"
	"github.com/webfleet/sitesync/internal/validation"
	"github.com/webfleet/sitesync/sitetypes"
)

// Upload uploads data from an io.Reader to the bucket under key.
//
// Payloads that fit in a single chunk are uploaded with a simple put;
// anything larger streams through a multipart upload with parts equal to
// the digest chunk size, so the stored ETag stays comparable with
// locally computed digests.
//
// Example:
//
//	result, err := client.Upload(ctx, "my-site", "index.html", f,
//	    sitesync.WithContentType("text/html"),
//	)
func (c *Client) Upload(
	ctx context.Context,
	bucket, key string,
	reader io.Reader,
	opts ...sitetypes.UploadOption,
) (*sitetypes.UploadResult, error) {
	startTime := time.Now()

	config, err := c.uploadConfig(bucket, key, opts)
	if err != nil {
		return nil, err
	}

	// Peek one chunk to decide between a simple put and multipart.
	buf := pool.GetChunk()
	defer pool.PutChunk(buf)

	n, err := io.ReadFull(reader, buf)
	if err != nil && !goerrors.Is(err, io.EOF) && !goerrors.Is(err, io.ErrUnexpectedEOF) {
		return nil, errors.NewObjectError("upload", bucket, key, fmt.Errorf("read payload: %w", err))
	}

	if config.ContentType == "" {
		config.ContentType = contenttype.ForKey(key, buf[:n])
	}

	if n == pool.ChunkSize {
		// The payload may extend past one chunk. Probe one byte; if
		// anything is there, this is a multipart upload.
		var probe [1]byte
		m, perr := io.ReadFull(reader, probe[:])
		if perr != nil && !goerrors.Is(perr, io.EOF) && !goerrors.Is(perr, io.ErrUnexpectedEOF) {
			return nil, errors.NewObjectError("upload", bucket, key, fmt.Errorf("read payload: %w", perr))
		}
		if m > 0 {
			body := io.MultiReader(bytes.NewReader(buf[:n]), bytes.NewReader(probe[:m]), reader)
			return multipart.NewUploader(c.s3Client).Upload(ctx, bucket, key, body, config, startTime)
		}
	}

	return c.putObject(ctx, bucket, key, bytes.NewReader(buf[:n]), int64(n), config, startTime)
}

// UploadFile uploads a local file to the bucket under key.
//
// When no content type is given, it is inferred from the file's
// extension, then from its content, defaulting to text/plain.
func (c *Client) UploadFile(
	ctx context.Context,
	bucket, key, filePath string,
	opts ...sitetypes.UploadOption,
) (*sitetypes.UploadResult, error) {
	startTime := time.Now()

	config, err := c.uploadConfig(bucket, key, opts)
	if err != nil {
		return nil, err
	}

	info, err := c.fs.Stat(filePath)
	if err != nil {
		return nil, errors.NewObjectError("uploadFile", bucket, key, fmt.Errorf("stat %s: %w", filePath, err))
	}
	if info.IsDir() {
		return nil, errors.NewObjectError("uploadFile", bucket, key,
			fmt.Errorf("%w: %s is a directory", errors.ErrInvalidInput, filePath))
	}

	if config.ContentType == "" {
		config.ContentType = contenttype.ForFile(c.fs, filePath)
	}

	file, err := c.fs.Open(filePath)
	if err != nil {
		return nil, errors.NewObjectError("uploadFile", bucket, key, fmt.Errorf("open %s: %w", filePath, err))
	}
	defer file.Close()

	if info.Size() > pool.ChunkSize {
		return multipart.NewUploader(c.s3Client).Upload(ctx, bucket, key, file, config, startTime)
	}
	return c.putObject(ctx, bucket, key, file, info.Size(), config, startTime)
}

// UploadPath uploads a local path to the bucket.
//
// KindFile uploads the file under its base name. KindDir walks the
// directory and uploads every regular file, keyed by the directory's
// base name plus the file's path relative to it. Any other kind fails
// with ErrInvalidObjectKind before any network call.
func (c *Client) UploadPath(
	ctx context.Context,
	bucket, localPath string,
	kind sitetypes.ObjectKind,
	opts ...sitetypes.UploadOption,
) ([]*sitetypes.UploadResult, error) {
	switch kind {
	case sitetypes.KindFile, sitetypes.KindDir:
	default:
		return nil, errors.NewBucketError("uploadPath", bucket,
			fmt.Errorf("%w: %q", errors.ErrInvalidObjectKind, kind))
	}

	info, err := c.fs.Stat(localPath)
	if err != nil {
		return nil, errors.NewBucketError("uploadPath", bucket, fmt.Errorf("stat %s: %w", localPath, err))
	}

	if kind == sitetypes.KindFile {
		if info.IsDir() {
			return nil, errors.NewBucketError("uploadPath", bucket,
				fmt.Errorf("%w: %s is not a file", errors.ErrInvalidInput, localPath))
		}
		result, err := c.UploadFile(ctx, bucket, filepath.Base(localPath), localPath, opts...)
		if err != nil {
			return nil, err
		}
		return []*sitetypes.UploadResult{result}, nil
	}

	if !info.IsDir() {
		return nil, errors.NewBucketError("uploadPath", bucket,
			fmt.Errorf("%w: %s is not a directory", errors.ErrInvalidInput, localPath))
	}
	return c.uploadDir(ctx, bucket, localPath, opts)
}

// uploadDir walks root and uploads every regular file beneath it, keyed
// by the directory's base name followed by the file's slash-separated
// path relative to root.
func (c *Client) uploadDir(
	ctx context.Context,
	bucket, root string,
	opts []sitetypes.UploadOption,
) ([]*sitetypes.UploadResult, error) {
	var results []*sitetypes.UploadResult
	keyPrefix := filepath.Base(root)

	walkErr := c.fs.Walk(root, func(filePath string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() || !info.Mode().IsRegular() {
			return nil
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}

		relPath, err := filepath.Rel(root, filePath)
		if err != nil {
			return fmt.Errorf("compute relative path for %s: %w", filePath, err)
		}
		key := path.Join(keyPrefix, filepath.ToSlash(relPath))

		result, err := c.UploadFile(ctx, bucket, key, filePath, opts...)
		if err != nil {
			return err
		}
		results = append(results, result)
		return nil
	})
	if walkErr != nil {
		return results, errors.NewBucketError("uploadPath", bucket, walkErr)
	}
	return results, nil
}

// uploadConfig validates upload inputs and applies upload options.
func (c *Client) uploadConfig(bucket, key string, opts []sitetypes.UploadOption) (*sitetypes.UploadOptionConfig, error) {
	if err := validation.ValidateBucketName(bucket); err != nil {
		return nil, errors.NewObjectError("upload", bucket, key, err)
	}
	if err := validation.ValidateObjectKey(key); err != nil {
		return nil, errors.NewObjectError("upload", bucket, key, err)
	}

	config := &sitetypes.UploadOptionConfig{}
	for _, opt := range opts {
		opt(config)
	}

	if config.ContentType != "" {
		if err := validation.ValidateContentType(config.ContentType); err != nil {
			return nil, errors.NewObjectError("upload", bucket, key, err)
		}
	}
	if len(config.Metadata) > 0 {
		if err := validation.ValidateMetadata(config.Metadata); err != nil {
			return nil, errors.NewObjectError("upload", bucket, key, err)
		}
	}
	return config, nil
}

// putObject performs a single-request upload.
func (c *Client) putObject(
	ctx context.Context,
	bucket, key string,
	body io.Reader,
	size int64,
	config *sitetypes.UploadOptionConfig,
	startTime time.Time,
) (*sitetypes.UploadResult, error) {
	input := &s3.PutObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
		Body:   body,
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

	output, err := c.s3Client.PutObject(ctx, input)
	if err != nil {
		return nil, errors.NewObjectError("upload", bucket, key, mapAPIError(err))
	}

	c.logger.Info("uploaded", "bucket", bucket, "key", key, "size", size)

	return &sitetypes.UploadResult{
		Key:      key,
		Size:     size,
		ETag:     aws.ToString(output.ETag),
		Duration: time.Since(startTime),
	}, nil
}
