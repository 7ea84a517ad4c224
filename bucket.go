package sitesync

import (
	"context"
	goerrors "errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	awstypes "github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"

	"github.com/webfleet/sitesync/errors"
	"github.com/webfleet/sitesync/internal/validation"
	"github.com/webfleet/sitesync/internal/website"
	"github.com/webfleet/sitesync/sitetypes"
)

// publicReadPolicy is the bucket policy template granting anonymous
// read access to every object in the bucket.
const publicReadPolicy = `{
	"Version": "2012-10-17",
	"Statement": [{
		"Sid": "PublicReadGetObject",
		"Effect": "Allow",
		"Principal": "*",
		"Action": ["s3:GetObject"],
		"Resource": ["arn:aws:s3:::%s/*"]
	}]
}`

// CreateBucket creates a new S3 bucket.
//
// The bucket is created in the client's region unless overridden with
// WithBucketRegion. Creating a bucket that already exists (owned by
// anyone, including the caller) returns ErrBucketAlreadyExists.
//
// Example:
//
//	err := client.CreateBucket(ctx, "my-site",
//	    sitesync.WithBucketRegion("eu-west-1"),
//	)
func (c *Client) CreateBucket(ctx context.Context, bucket string, opts ...sitetypes.BucketOption) error {
	if err := validation.ValidateBucketName(bucket); err != nil {
		return errors.NewBucketError("createBucket", bucket, err)
	}

	config := &sitetypes.BucketOptionConfig{}
	for _, opt := range opts {
		opt(config)
	}

	region := config.Region
	if region == "" {
		region = c.Region()
	}

	input := &s3.CreateBucketInput{
		Bucket: aws.String(bucket),
	}

	// us-east-1 is the default location and must not be sent as a
	// location constraint.
	if region != "us-east-1" {
		input.CreateBucketConfiguration = &awstypes.CreateBucketConfiguration{
			LocationConstraint: awstypes.BucketLocationConstraint(region),
		}
	}

	if _, err := c.s3Client.CreateBucket(ctx, input); err != nil {
		return errors.NewBucketError("createBucket", bucket, mapAPIError(err))
	}

	c.logger.Info("bucket created", "bucket", bucket, "region", region)
	return nil
}

// EnableWebsite configures static website hosting on the bucket.
//
// The index document defaults to "index.html" and the error document to
// "error.html"; both can be overridden with WithIndexDocument and
// WithErrorDocument.
func (c *Client) EnableWebsite(ctx context.Context, bucket string, opts ...sitetypes.WebsiteOption) error {
	if err := validation.ValidateBucketName(bucket); err != nil {
		return errors.NewBucketError("enableWebsite", bucket, err)
	}

	config := &sitetypes.WebsiteOptionConfig{
		IndexDocument: "index.html",
		ErrorDocument: "error.html",
	}
	for _, opt := range opts {
		opt(config)
	}

	input := &s3.PutBucketWebsiteInput{
		Bucket: aws.String(bucket),
		WebsiteConfiguration: &awstypes.WebsiteConfiguration{
			IndexDocument: &awstypes.IndexDocument{
				Suffix: aws.String(config.IndexDocument),
			},
			ErrorDocument: &awstypes.ErrorDocument{
				Key: aws.String(config.ErrorDocument),
			},
		},
	}

	if _, err := c.s3Client.PutBucketWebsite(ctx, input); err != nil {
		return errors.NewBucketError("enableWebsite", bucket, mapAPIError(err))
	}

	c.logger.Info("website hosting enabled",
		"bucket", bucket,
		"index", config.IndexDocument,
		"error", config.ErrorDocument)
	return nil
}

// MakePublic attaches a bucket policy granting anonymous read access to
// every object in the bucket.
func (c *Client) MakePublic(ctx context.Context, bucket string) error {
	if err := validation.ValidateBucketName(bucket); err != nil {
		return errors.NewBucketError("makePublic", bucket, err)
	}

	input := &s3.PutBucketPolicyInput{
		Bucket: aws.String(bucket),
		Policy: aws.String(fmt.Sprintf(publicReadPolicy, bucket)),
	}

	if _, err := c.s3Client.PutBucketPolicy(ctx, input); err != nil {
		return errors.NewBucketError("makePublic", bucket, mapAPIError(err))
	}

	c.logger.Info("public read policy attached", "bucket", bucket)
	return nil
}

// ListBuckets returns all buckets owned by the authenticated account.
func (c *Client) ListBuckets(ctx context.Context) ([]sitetypes.Bucket, error) {
	result, err := c.s3Client.ListBuckets(ctx, &s3.ListBucketsInput{})
	if err != nil {
		return nil, errors.NewError("listBuckets", mapAPIError(err))
	}

	buckets := make([]sitetypes.Bucket, 0, len(result.Buckets))
	for _, b := range result.Buckets {
		bucket := sitetypes.Bucket{}
		if b.Name != nil {
			bucket.Name = *b.Name
		}
		if b.CreationDate != nil {
			bucket.CreationDate = *b.CreationDate
		}
		buckets = append(buckets, bucket)
	}
	return buckets, nil
}

// ListObjects lists objects in the bucket with optional prefix filtering
// and pagination via WithPrefix and WithMaxKeys.
//
// A single call returns at most one page of results; check
// ListResult.IsTruncated and feed NextContinuationToken into a
// subsequent listing when walking large buckets.
func (c *Client) ListObjects(ctx context.Context, bucket string, opts ...sitetypes.ListOption) (*sitetypes.ListResult, error) {
	if err := validation.ValidateBucketName(bucket); err != nil {
		return nil, errors.NewBucketError("listObjects", bucket, err)
	}

	config := &sitetypes.ListOptionConfig{}
	for _, opt := range opts {
		opt(config)
	}

	input := &s3.ListObjectsV2Input{
		Bucket: aws.String(bucket),
	}
	if config.Prefix != "" {
		input.Prefix = aws.String(config.Prefix)
	}
	if config.MaxKeys > 0 {
		input.MaxKeys = aws.Int32(config.MaxKeys)
	}

	result, err := c.s3Client.ListObjectsV2(ctx, input)
	if err != nil {
		return nil, errors.NewBucketError("listObjects", bucket, mapAPIError(err))
	}

	listResult := &sitetypes.ListResult{
		Objects: make([]sitetypes.Object, 0, len(result.Contents)),
	}
	if result.IsTruncated != nil {
		listResult.IsTruncated = *result.IsTruncated
	}
	if result.NextContinuationToken != nil {
		listResult.NextContinuationToken = *result.NextContinuationToken
	}

	for _, obj := range result.Contents {
		object := sitetypes.Object{}
		if obj.Key != nil {
			object.Key = *obj.Key
		}
		if obj.Size != nil {
			object.Size = *obj.Size
		}
		if obj.LastModified != nil {
			object.LastModified = *obj.LastModified
		}
		if obj.ETag != nil {
			object.ETag = *obj.ETag
		}
		listResult.Objects = append(listResult.Objects, object)
	}
	return listResult, nil
}

// ObjectExists reports whether the bucket contains an object under key.
func (c *Client) ObjectExists(ctx context.Context, bucket, key string) (bool, error) {
	if err := validation.ValidateBucketName(bucket); err != nil {
		return false, errors.NewObjectError("objectExists", bucket, key, err)
	}
	if err := validation.ValidateObjectKey(key); err != nil {
		return false, errors.NewObjectError("objectExists", bucket, key, err)
	}

	_, err := c.s3Client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var apiErr smithy.APIError
		if goerrors.As(err, &apiErr) && (apiErr.ErrorCode() == "NotFound" || apiErr.ErrorCode() == "NoSuchKey") {
			return false, nil
		}
		return false, errors.NewObjectError("objectExists", bucket, key, mapAPIError(err))
	}
	return true, nil
}

// ListAllObjects lists every object in the bucket, following
// continuation tokens until the listing is exhausted.
func (c *Client) ListAllObjects(ctx context.Context, bucket string, opts ...sitetypes.ListOption) ([]sitetypes.Object, error) {
	if err := validation.ValidateBucketName(bucket); err != nil {
		return nil, errors.NewBucketError("listAllObjects", bucket, err)
	}

	var objects []sitetypes.Object
	var continuation string

	config := &sitetypes.ListOptionConfig{}
	for _, opt := range opts {
		opt(config)
	}

	for {
		input := &s3.ListObjectsV2Input{
			Bucket: aws.String(bucket),
		}
		if config.Prefix != "" {
			input.Prefix = aws.String(config.Prefix)
		}
		if config.MaxKeys > 0 {
			input.MaxKeys = aws.Int32(config.MaxKeys)
		}
		if continuation != "" {
			input.ContinuationToken = aws.String(continuation)
		}

		result, err := c.s3Client.ListObjectsV2(ctx, input)
		if err != nil {
			return nil, errors.NewBucketError("listAllObjects", bucket, mapAPIError(err))
		}

		for _, obj := range result.Contents {
			object := sitetypes.Object{}
			if obj.Key != nil {
				object.Key = *obj.Key
			}
			if obj.Size != nil {
				object.Size = *obj.Size
			}
			if obj.LastModified != nil {
				object.LastModified = *obj.LastModified
			}
			if obj.ETag != nil {
				object.ETag = *obj.ETag
			}
			objects = append(objects, object)
		}

		if !aws.ToBool(result.IsTruncated) || result.NextContinuationToken == nil {
			return objects, nil
		}
		continuation = *result.NextContinuationToken
	}
}

// GetBucketRegion returns the region the bucket was created in.
// Buckets in us-east-1 report an empty location constraint; that is
// normalized to "us-east-1".
func (c *Client) GetBucketRegion(ctx context.Context, bucket string) (string, error) {
	if err := validation.ValidateBucketName(bucket); err != nil {
		return "", errors.NewBucketError("getBucketRegion", bucket, err)
	}

	result, err := c.s3Client.GetBucketLocation(ctx, &s3.GetBucketLocationInput{
		Bucket: aws.String(bucket),
	})
	if err != nil {
		return "", errors.NewBucketError("getBucketRegion", bucket, mapAPIError(err))
	}

	region := string(result.LocationConstraint)
	if region == "" {
		region = "us-east-1"
	}
	return region, nil
}

// WebsiteURL returns the static website URL for the bucket, using the
// website endpoint of the region the bucket lives in.
//
// The returned URL has the form http://<bucket>.<website-endpoint>.
func (c *Client) WebsiteURL(ctx context.Context, bucket string) (string, error) {
	region, err := c.GetBucketRegion(ctx, bucket)
	if err != nil {
		return "", err
	}

	url, err := website.URL(bucket, region)
	if err != nil {
		return "", errors.NewBucketError("websiteURL", bucket, err)
	}
	return url, nil
}

// mapAPIError translates AWS API error codes into the package's
// sentinel errors so callers can branch with errors.Is. Errors with no
// mapping are returned unchanged.
func mapAPIError(err error) error {
	var apiErr smithy.APIError
	if !goerrors.As(err, &apiErr) {
		return err
	}

	switch apiErr.ErrorCode() {
	case "BucketAlreadyExists", "BucketAlreadyOwnedByYou":
		return fmt.Errorf("%w: %w", errors.ErrBucketAlreadyExists, err)
	case "NoSuchBucket", "NotFound":
		return fmt.Errorf("%w: %w", errors.ErrBucketNotFound, err)
	case "AccessDenied":
		return fmt.Errorf("%w: %w", errors.ErrAccessDenied, err)
	default:
		return err
	}
}
