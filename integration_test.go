//go:build integration
// +build integration

package sitesync_test

import (
	"context"
	"strings"
	"testing"

	"github.com/input-output-hk/catalyst-forge-libs/fs/billy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/webfleet/sitesync"
	"github.com/webfleet/sitesync/internal/testutil"
	"github.com/webfleet/sitesync/sitetypes"
)

// TestIntegration_BucketLifecycle provisions a bucket, enables website
// hosting, and attaches a public-read policy against LocalStack.
func TestIntegration_BucketLifecycle(t *testing.T) {
	ctx := context.Background()
	stack := testutil.SetupLocalStack(t)

	client, err := sitesync.New(
		sitesync.WithRegion(stack.Region()),
		sitesync.WithEndpoint(stack.Endpoint()),
		sitesync.WithForcePathStyle(true),
	)
	require.NoError(t, err)

	bucketName := testutil.GenerateTestBucketName("sitesync-it")

	require.NoError(t, client.CreateBucket(ctx, bucketName))
	t.Cleanup(func() {
		raw, err := stack.GetS3Client(context.Background())
		if err == nil {
			_ = testutil.CleanupTestBucket(context.Background(), raw, bucketName)
		}
	})

	err = client.CreateBucket(ctx, bucketName)
	require.Error(t, err, "duplicate create should fail")

	require.NoError(t, client.EnableWebsite(ctx, bucketName))
	require.NoError(t, client.MakePublic(ctx, bucketName))

	buckets, err := client.ListBuckets(ctx)
	require.NoError(t, err)
	found := false
	for _, b := range buckets {
		if b.Name == bucketName {
			found = true
		}
	}
	assert.True(t, found, "created bucket should be listed")
}

// TestIntegration_UploadAndList uploads files and lists them back.
func TestIntegration_UploadAndList(t *testing.T) {
	ctx := context.Background()
	stack := testutil.SetupLocalStack(t)

	client, err := sitesync.New(
		sitesync.WithRegion(stack.Region()),
		sitesync.WithEndpoint(stack.Endpoint()),
		sitesync.WithForcePathStyle(true),
	)
	require.NoError(t, err)

	bucketName := testutil.GenerateTestBucketName("sitesync-it")
	require.NoError(t, client.CreateBucket(ctx, bucketName))
	t.Cleanup(func() {
		raw, err := stack.GetS3Client(context.Background())
		if err == nil {
			_ = testutil.CleanupTestBucket(context.Background(), raw, bucketName)
		}
	})

	result, err := client.Upload(ctx, bucketName, "index.html",
		strings.NewReader("<html><body>hello</body></html>"),
		sitesync.WithContentType("text/html"),
	)
	require.NoError(t, err)
	assert.NotEmpty(t, result.ETag)

	listing, err := client.ListObjects(ctx, bucketName)
	require.NoError(t, err)
	require.Len(t, listing.Objects, 1)
	assert.Equal(t, "index.html", listing.Objects[0].Key)
	assert.Equal(t, result.ETag, listing.Objects[0].ETag)
}

// TestIntegration_Sync runs two sync passes against LocalStack and
// verifies the second one uploads nothing.
func TestIntegration_Sync(t *testing.T) {
	ctx := context.Background()
	stack := testutil.SetupLocalStack(t)

	fsys := billy.NewInMemoryFS()
	testutil.WriteTree(t, fsys, "/site", map[string]string{
		"index.html":    "<html></html>",
		"error.html":    "not found",
		"css/style.css": "body { margin: 0 }",
	})

	client, err := sitesync.New(
		sitesync.WithRegion(stack.Region()),
		sitesync.WithEndpoint(stack.Endpoint()),
		sitesync.WithForcePathStyle(true),
		sitesync.WithFilesystem(fsys),
	)
	require.NoError(t, err)

	bucketName := testutil.GenerateTestBucketName("sitesync-it")
	require.NoError(t, client.CreateBucket(ctx, bucketName))
	t.Cleanup(func() {
		raw, err := stack.GetS3Client(context.Background())
		if err == nil {
			_ = testutil.CleanupTestBucket(context.Background(), raw, bucketName)
		}
	})

	first, err := client.Sync(ctx, "/site", bucketName)
	require.NoError(t, err)
	assert.Equal(t, 3, first.FilesUploaded)
	assert.Empty(t, first.Errors)

	second, err := client.Sync(ctx, "/site", bucketName)
	require.NoError(t, err)
	assert.Zero(t, second.FilesUploaded, "unchanged tree should sync with zero uploads")
	assert.Equal(t, 3, second.FilesSkipped)

	// Change one file; exactly one upload should follow.
	require.NoError(t, fsys.WriteFile("/site/index.html", []byte("<html>v2</html>"), 0o644))

	third, err := client.Sync(ctx, "/site", bucketName)
	require.NoError(t, err)
	assert.Equal(t, 1, third.FilesUploaded)
	assert.Equal(t, 2, third.FilesSkipped)
}

// TestIntegration_UploadPathDir uploads a directory with KindDir and
// verifies the keys.
func TestIntegration_UploadPathDir(t *testing.T) {
	ctx := context.Background()
	stack := testutil.SetupLocalStack(t)

	fsys := billy.NewInMemoryFS()
	testutil.WriteTree(t, fsys, "/docs", map[string]string{
		"readme.txt":   "hello",
		"img/logo.png": "png-bytes",
	})

	client, err := sitesync.New(
		sitesync.WithRegion(stack.Region()),
		sitesync.WithEndpoint(stack.Endpoint()),
		sitesync.WithForcePathStyle(true),
		sitesync.WithFilesystem(fsys),
	)
	require.NoError(t, err)

	bucketName := testutil.GenerateTestBucketName("sitesync-it")
	require.NoError(t, client.CreateBucket(ctx, bucketName))
	t.Cleanup(func() {
		raw, err := stack.GetS3Client(context.Background())
		if err == nil {
			_ = testutil.CleanupTestBucket(context.Background(), raw, bucketName)
		}
	})

	results, err := client.UploadPath(ctx, bucketName, "/docs", sitetypes.KindDir)
	require.NoError(t, err)
	assert.Len(t, results, 2)

	listing, err := client.ListObjects(ctx, bucketName)
	require.NoError(t, err)
	keys := make([]string, 0, len(listing.Objects))
	for _, obj := range listing.Objects {
		keys = append(keys, obj.Key)
	}
	assert.ElementsMatch(t, []string{"docs/readme.txt", "docs/img/logo.png"}, keys)
}
