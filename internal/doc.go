// Package internal contains private implementation details for the sitesync module.
// These packages are not intended for external use and may change without notice.
//
// The internal packages are organized as follows:
//   - contenttype: Content-Type resolution for uploads
//   - digest: Chunked content digest computation
//   - manifest: Remote bucket manifest loading
//   - sync: Directory synchronization functionality
//   - transfer: Multipart upload management
//   - validation: Input validation logic
//   - website: Static website endpoint tables
//   - pool: Buffer reuse
package internal
