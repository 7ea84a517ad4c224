// Package scanner discovers local files for sync operations.
// This includes walking directory trees, mapping files to object keys,
// and applying include/exclude glob patterns.
//
// Non-regular files such as symlinks are never candidates for upload.
package scanner
