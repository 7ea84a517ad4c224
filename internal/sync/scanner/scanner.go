package scanner

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"

	"github.com/input-output-hk/catalyst-forge-libs/fs"

	"github.com/webfleet/sitesync/sitetypes"
)

// Scanner discovers the local files that participate in a sync.
type Scanner struct {
	filesystem     fs.Filesystem
	patternMatcher *PatternMatcher
}

// NewScanner creates a new scanner over the provided filesystem.
func NewScanner(filesystem fs.Filesystem) *Scanner {
	return &Scanner{
		filesystem:     filesystem,
		patternMatcher: NewPatternMatcher(),
	}
}

// ScanLocal walks the tree rooted at localPath and returns every regular
// file that passes the include/exclude patterns. Each file carries the
// object key it maps to: its slash-separated path relative to the root,
// prefixed with keyPrefix when one is set. Symlinks and other non-regular
// files are skipped.
func (s *Scanner) ScanLocal(
	ctx context.Context,
	localPath string,
	keyPrefix string,
	includePatterns []string,
	excludePatterns []string,
) ([]*sitetypes.LocalFile, error) {
	var files []*sitetypes.LocalFile

	err := s.filesystem.Walk(localPath, func(filePath string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if info.IsDir() {
			return nil
		}
		if !info.Mode().IsRegular() {
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		relPath, err := filepath.Rel(localPath, filePath)
		if err != nil {
			return fmt.Errorf("failed to get relative path for %s: %w", filePath, err)
		}

		if !s.patternMatcher.ShouldIncludeFile(relPath, includePatterns, excludePatterns) {
			return nil
		}

		files = append(files, &sitetypes.LocalFile{
			Path:    filePath,
			Key:     path.Join(keyPrefix, filepath.ToSlash(relPath)),
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk directory %s: %w", localPath, err)
	}

	return files, nil
}
