// Package sitesync publishes static websites to AWS S3.
// It wraps AWS SDK v2 to provide bucket provisioning, website hosting
// configuration, uploads, and a content-addressed incremental sync that
// only transfers files whose content actually changed.
//
// The sync engine computes each local file's digest with the same
// chunked scheme S3 uses for ETags, so the remote listing doubles as a
// manifest of what is already uploaded. An unchanged tree syncs with
// zero uploads.
//
// Key features:
//   - Simple, zero-configuration usage with AWS credential chain
//   - Progressive enhancement through functional options
//   - Incremental directory sync with include/exclude patterns and dry-run
//   - Automatic multipart upload for files above the digest chunk size
//   - Bucket provisioning: create, website hosting, public-read policy
//   - Comprehensive error handling with context
//
// Example usage:
//
//	client, err := sitesync.New(sitesync.WithRegion("us-east-1"))
//	if err != nil {
//	    return err
//	}
//
//	// Publish a site
//	result, err := client.Sync(ctx, "/local/site", "my-site")
//	if err != nil {
//	    return err
//	}
package sitesync
