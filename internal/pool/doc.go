// Package pool provides reusable fixed-size buffers.
// Digest computation and multipart uploads both read files one chunk at
// a time, so chunk buffers are pooled to reduce allocations.
//
// The pool package keeps a sync over a large tree from allocating a
// fresh 8 MiB slice per file.
package pool
