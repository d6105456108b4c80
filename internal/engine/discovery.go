package engine

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// SourceExt is the file extension Discover looks for inside directories.
const SourceExt = ".rsc"

// Discover expands paths into source files. Files are kept as given;
// directories are walked for files ending in SourceExt, in lexical order.
func Discover(paths []string) ([]string, error) {
	var files []string
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, fmt.Errorf("failed to stat %s: %w", p, err)
		}
		if !info.IsDir() {
			files = append(files, p)
			continue
		}

		err = filepath.WalkDir(p, func(path string, d fs.DirEntry, walkErr error) error {
			if walkErr != nil {
				return walkErr
			}
			if !d.IsDir() && strings.HasSuffix(d.Name(), SourceExt) {
				files = append(files, path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("failed to walk %s: %w", p, err)
		}
	}
	return files, nil
}

// ReadSources reads every file into a Source named by its path.
func ReadSources(files []string) ([]Source, error) {
	sources := make([]Source, 0, len(files))
	for _, f := range files {
		content, err := os.ReadFile(f) //nolint:gosec // G304: paths come from the command line
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", f, err)
		}
		sources = append(sources, Source{Name: f, Text: string(content)})
	}
	return sources, nil
}

// HashContent returns the hex SHA-256 of content.
func HashContent(content []byte) string {
	sum := sha256.Sum256(content)
	return hex.EncodeToString(sum[:])
}

// Changed reports whether content differs from what was last recorded for
// path, and records it. The first call for a path always reports true.
func (e *Engine) Changed(path string, content []byte) bool {
	hash := HashContent(content)

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.hashes[path] == hash {
		e.logger.Debug("skipping unchanged file", "path", path)
		return false
	}
	e.hashes[path] = hash
	return true
}
