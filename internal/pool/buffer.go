package pool

import (
	"sync"
)

// ChunkSize is the size of a content chunk in bytes (8 MiB). It is both
// the unit of digest computation and the part size for multipart uploads,
// matching the S3 transfer manager default so computed digests line up
// with the ETags S3 reports.
const ChunkSize = 8 * 1024 * 1024

// SizedPool manages reusable buffers of a single fixed size.
type SizedPool struct {
	size int
	pool *sync.Pool
}

// NewSizedPool creates a pool of buffers with the given length.
func NewSizedPool(size int) *SizedPool {
	return &SizedPool{
		size: size,
		pool: &sync.Pool{
			New: func() interface{} {
				buf := make([]byte, size)
				return &buf
			},
		},
	}
}

// Get returns a full-length buffer from the pool.
// The caller is responsible for calling Put to return the buffer.
func (sp *SizedPool) Get() []byte {
	bufPtr := sp.pool.Get().(*[]byte)
	return (*bufPtr)[:sp.size]
}

// Put returns a buffer to the pool. Buffers whose capacity does not match
// the pool size are dropped rather than pooled.
func (sp *SizedPool) Put(buf []byte) {
	if cap(buf) != sp.size {
		return
	}
	buf = buf[:sp.size]
	sp.pool.Put(&buf)
}

// Global chunk pool shared by digest computation and multipart transfers.
var chunkPool = NewSizedPool(ChunkSize)

// GetChunk returns a ChunkSize buffer from the global pool.
func GetChunk() []byte {
	return chunkPool.Get()
}

// PutChunk returns a chunk buffer to the global pool.
func PutChunk(buf []byte) {
	chunkPool.Put(buf)
}
