// Package digest computes chunked MD5 content digests compatible with the
// ETags S3 assigns to uploaded objects.
//
// A file at or below ChunkSize digests to the quoted hex MD5 of its
// contents, which is what S3 returns for single-part uploads. A larger
// file digests to the quoted hex MD5 of the concatenated raw per-chunk
// MD5 sums, suffixed with "-<chunk count>", matching multipart ETags when
// the upload used the same part size.
package digest

import (
	"crypto/md5" //nolint:gosec // MD5 is the digest S3 ETags are built from, not a security boundary
	"encoding/hex"
	"errors"
	"fmt"
	"io"

	"github.com/input-output-hk/catalyst-forge-libs/fs"

	"github.com/webfleet/sitesync/internal/pool"
)

// ChunkSize is the number of bytes hashed per chunk. It must equal the
// multipart part size or computed digests will not match remote ETags.
const ChunkSize = pool.ChunkSize

// File computes the content digest of the file at path using the given
// filesystem abstraction.
func File(fsys fs.Filesystem, path string) (string, error) {
	f, err := fsys.Open(path)
	if err != nil {
		return "", fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	d, err := Reader(f)
	if err != nil {
		return "", fmt.Errorf("digest %s: %w", path, err)
	}
	return d, nil
}

// Reader computes the content digest of everything readable from r.
// An empty reader produces the quoted MD5 of no data, the same value S3
// reports for a zero-byte object.
func Reader(r io.Reader) (string, error) {
	buf := pool.GetChunk()
	defer pool.PutChunk(buf)

	var sums [][]byte
	for {
		n, err := io.ReadFull(r, buf)
		if n > 0 {
			sum := md5.Sum(buf[:n]) //nolint:gosec // see package doc
			sums = append(sums, sum[:])
		}
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			break
		}
		if err != nil {
			return "", fmt.Errorf("read chunk: %w", err)
		}
	}

	// A zero-byte input still hashes as one empty chunk.
	if len(sums) == 0 {
		sum := md5.Sum(nil) //nolint:gosec // see package doc
		sums = append(sums, sum[:])
	}

	if len(sums) == 1 {
		return fmt.Sprintf("%q", hex.EncodeToString(sums[0])), nil
	}

	h := md5.New() //nolint:gosec // see package doc
	for _, sum := range sums {
		h.Write(sum)
	}
	return fmt.Sprintf("%q", fmt.Sprintf("%s-%d", hex.EncodeToString(h.Sum(nil)), len(sums))), nil
}
