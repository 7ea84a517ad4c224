// Package multipart handles multipart upload operations.
// Parts match the digest chunk size so completed-upload ETags equal
// locally computed content digests.
//
// Failed uploads are aborted so no orphaned parts accrue in the bucket.
package multipart
