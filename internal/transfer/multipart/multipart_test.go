package multipart

import (
	"bytes"
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/webfleet/sitesync/internal/pool"
	"github.com/webfleet/sitesync/internal/testutil"
	"github.com/webfleet/sitesync/sitetypes"
)

func TestUpload_TwoParts(t *testing.T) {
	var mu sync.Mutex
	var partSizes []int
	var partNumbers []int32
	aborted := false

	mock := &testutil.MockS3Client{
		CreateMultipartUploadFunc: func(_ context.Context, params *s3.CreateMultipartUploadInput, _ ...func(*s3.Options)) (*s3.CreateMultipartUploadOutput, error) {
			assert.Equal(t, "video/mp4", aws.ToString(params.ContentType))
			return &s3.CreateMultipartUploadOutput{UploadId: aws.String("upload-1")}, nil
		},
		UploadPartFunc: func(_ context.Context, params *s3.UploadPartInput, _ ...func(*s3.Options)) (*s3.UploadPartOutput, error) {
			data, err := io.ReadAll(params.Body)
			require.NoError(t, err)
			mu.Lock()
			partSizes = append(partSizes, len(data))
			partNumbers = append(partNumbers, aws.ToInt32(params.PartNumber))
			mu.Unlock()
			return &s3.UploadPartOutput{ETag: aws.String(`"part-etag"`)}, nil
		},
		CompleteMultipartUploadFunc: func(_ context.Context, params *s3.CompleteMultipartUploadInput, _ ...func(*s3.Options)) (*s3.CompleteMultipartUploadOutput, error) {
			assert.Equal(t, "upload-1", aws.ToString(params.UploadId))
			assert.Len(t, params.MultipartUpload.Parts, 2)
			return &s3.CompleteMultipartUploadOutput{ETag: aws.String(`"final-etag-2"`)}, nil
		},
		AbortMultipartUploadFunc: func(_ context.Context, _ *s3.AbortMultipartUploadInput, _ ...func(*s3.Options)) (*s3.AbortMultipartUploadOutput, error) {
			aborted = true
			return &s3.AbortMultipartUploadOutput{}, nil
		},
	}

	// One full chunk plus one megabyte spills into a second part.
	size := pool.ChunkSize + 1024*1024
	data := bytes.Repeat([]byte{0x42}, size)

	u := NewUploader(mock)
	result, err := u.Upload(context.Background(), "bucket", "videos/clip.mp4",
		bytes.NewReader(data),
		&sitetypes.UploadOptionConfig{ContentType: "video/mp4"},
		time.Now())
	require.NoError(t, err)

	assert.Equal(t, []int32{1, 2}, partNumbers)
	assert.Equal(t, []int{pool.ChunkSize, 1024 * 1024}, partSizes)
	assert.Equal(t, int64(size), result.Size)
	assert.Equal(t, `"final-etag-2"`, result.ETag)
	assert.False(t, aborted)
}

func TestUpload_PartFailureAborts(t *testing.T) {
	aborted := false
	mock := &testutil.MockS3Client{
		CreateMultipartUploadFunc: func(_ context.Context, _ *s3.CreateMultipartUploadInput, _ ...func(*s3.Options)) (*s3.CreateMultipartUploadOutput, error) {
			return &s3.CreateMultipartUploadOutput{UploadId: aws.String("upload-2")}, nil
		},
		UploadPartFunc: func(_ context.Context, _ *s3.UploadPartInput, _ ...func(*s3.Options)) (*s3.UploadPartOutput, error) {
			return nil, errors.New("part upload failed")
		},
		AbortMultipartUploadFunc: func(_ context.Context, params *s3.AbortMultipartUploadInput, _ ...func(*s3.Options)) (*s3.AbortMultipartUploadOutput, error) {
			assert.Equal(t, "upload-2", aws.ToString(params.UploadId))
			aborted = true
			return &s3.AbortMultipartUploadOutput{}, nil
		},
	}

	u := NewUploader(mock)
	_, err := u.Upload(context.Background(), "bucket", "big.bin",
		bytes.NewReader(bytes.Repeat([]byte{1}, pool.ChunkSize+1)),
		&sitetypes.UploadOptionConfig{},
		time.Now())

	require.Error(t, err)
	assert.True(t, aborted)
}

func TestUpload_CreateFails(t *testing.T) {
	mock := &testutil.MockS3Client{
		CreateMultipartUploadFunc: func(_ context.Context, _ *s3.CreateMultipartUploadInput, _ ...func(*s3.Options)) (*s3.CreateMultipartUploadOutput, error) {
			return nil, errors.New("access denied")
		},
	}

	u := NewUploader(mock)
	_, err := u.Upload(context.Background(), "bucket", "big.bin",
		bytes.NewReader([]byte("data")),
		&sitetypes.UploadOptionConfig{},
		time.Now())
	assert.Error(t, err)
}
