// Package transfer manages multipart S3 uploads.
// This includes part management, completion, and abort-on-failure handling
// for files above the chunk size.
package transfer
