// Package contenttype resolves the Content-Type an object is served with.
//
// Website hosting makes this load-bearing: browsers render a page only when
// S3 returns the right type, and S3 stores whatever the uploader said.
// Extension lookup runs first so .css and .js files are typed correctly
// even though their content sniffs as plain text; content sniffing covers
// extensionless files.
package contenttype

import (
	"mime"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/input-output-hk/catalyst-forge-libs/fs"
)

// Default is used when neither the extension nor the content identifies
// the file.
const Default = "text/plain"

// sniffLen is how many leading bytes content detection looks at.
const sniffLen = 512

// ForFile resolves the content type of the file at path.
func ForFile(fsys fs.Filesystem, path string) string {
	if ct := ByExtension(path); ct != "" {
		return ct
	}

	f, err := fsys.Open(path)
	if err != nil {
		return Default
	}
	defer f.Close()

	buf := make([]byte, sniffLen)
	n, _ := f.Read(buf)
	return sniff(buf[:n])
}

// ForKey resolves the content type for an object key whose leading
// bytes are already in hand.
func ForKey(key string, head []byte) string {
	if ct := ByExtension(key); ct != "" {
		return ct
	}
	return sniff(head)
}

// ByExtension resolves a content type from the path's extension alone.
// Returns "" when the extension is unknown.
func ByExtension(path string) string {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == "" {
		return ""
	}
	return mime.TypeByExtension(ext)
}

// sniff detects a content type from leading bytes.
func sniff(head []byte) string {
	if len(head) == 0 {
		return Default
	}
	mt := mimetype.Detect(head)
	if mt == nil || mt.Is("application/octet-stream") {
		return Default
	}
	return mt.String()
}
