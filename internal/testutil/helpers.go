// Package testutil provides test helper functions.
package testutil

import (
	"crypto/md5" //nolint:gosec // S3 ETags are MD5 by convention
	"fmt"
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/input-output-hk/catalyst-forge-libs/fs"
	"github.com/stretchr/testify/require"
)

// GenerateTestBucketName generates a valid, DNS-compliant test bucket name.
// Bucket names must be globally unique, so a timestamp and random suffix
// keep parallel test runs from colliding.
func GenerateTestBucketName(prefix string) string {
	timestamp := time.Now().Unix()
	random := rand.Int31n(10000)
	name := fmt.Sprintf("%s-%d-%d", prefix, timestamp, random)
	name = strings.ToLower(name)
	name = strings.ReplaceAll(name, "_", "-")
	if len(name) > 63 {
		name = name[:63]
	}
	return name
}

// QuotedETag returns the ETag S3 assigns a single-request upload of data:
// the hex MD5 of the bytes, wrapped in double quotes.
func QuotedETag(data []byte) string {
	sum := md5.Sum(data) //nolint:gosec
	return fmt.Sprintf("%q", fmt.Sprintf("%x", sum))
}

// WriteTree writes a file tree onto a filesystem, creating parent
// directories as needed. Keys are paths relative to root using forward
// slashes; values are file contents.
func WriteTree(t *testing.T, fsys fs.Filesystem, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		full := root + "/" + rel
		if idx := strings.LastIndex(full, "/"); idx > 0 {
			require.NoError(t, fsys.MkdirAll(full[:idx], 0o755))
		}
		require.NoError(t, fsys.WriteFile(full, []byte(content), 0o644))
	}
}
