// Package manifest loads the digest manifest of a bucket.
//
// The manifest is the source of truth for what a bucket already holds: a
// map from object key to the ETag S3 reported for it. Sync decisions are
// made entirely against this snapshot, so a failed listing must surface as
// an error rather than an empty manifest.
package manifest

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/webfleet/sitesync/errors"
	"github.com/webfleet/sitesync/internal/s3api"
)

// Manifest maps object keys to their quoted ETags, exactly as S3
// returned them.
type Manifest map[string]string

// Load retrieves every object in the bucket (optionally restricted to a
// key prefix) and returns the key to ETag mapping. An empty bucket yields
// an empty, non-nil Manifest.
func Load(ctx context.Context, api s3api.S3API, bucket, prefix string) (Manifest, error) {
	m := make(Manifest)

	input := &s3.ListObjectsV2Input{
		Bucket: aws.String(bucket),
	}
	if prefix != "" {
		input.Prefix = aws.String(prefix)
	}

	for {
		output, err := api.ListObjectsV2(ctx, input)
		if err != nil {
			return nil, errors.NewBucketError("loadManifest", bucket,
				fmt.Errorf("%w: %w", errors.ErrManifestUnavailable, err))
		}

		for _, obj := range output.Contents {
			if obj.Key == nil || obj.ETag == nil {
				continue
			}
			m[*obj.Key] = *obj.ETag
		}

		if output.IsTruncated == nil || !*output.IsTruncated {
			break
		}
		input.ContinuationToken = output.NextContinuationToken
	}

	return m, nil
}

// Digest returns the stored ETag for a key, or "" when the bucket does
// not hold the key.
func (m Manifest) Digest(key string) string {
	return m[key]
}
