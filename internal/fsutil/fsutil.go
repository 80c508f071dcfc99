// Package fsutil provides file system utility functions.
package fsutil

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// compressionSuffixes are stripped before the data extension when deriving a
// sample name.
var compressionSuffixes = []string{".gz", ".bgz", ".bz2"}

// Stem returns the base name of path without its directory, a trailing
// compression suffix and one further extension:
// "/data/s1.tsv.gz" becomes "s1".
func Stem(path string) string {
	name := filepath.Base(path)
	lower := strings.ToLower(name)
	for _, suffix := range compressionSuffixes {
		if strings.HasSuffix(lower, suffix) && len(name) > len(suffix) {
			name = name[:len(name)-len(suffix)]
			break
		}
	}
	if ext := filepath.Ext(name); ext != "" && ext != name {
		name = strings.TrimSuffix(name, ext)
	}
	return name
}

// CopyFromFS copies the file name in fsys to dst, truncating dst if it
// exists.
func CopyFromFS(fsys fs.FS, name, dst string) error {
	src, err := fsys.Open(name)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", name, err)
	}
	defer src.Close()

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", dst, err)
	}
	if _, err := io.Copy(out, src); err != nil {
		out.Close()
		return fmt.Errorf("failed to copy %s to %s: %w", name, dst, err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", dst, err)
	}
	return nil
}
