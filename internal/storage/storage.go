// Package storage publishes finished artifacts to object storage.
package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/docna/docna/internal/ctxlog"
)

// Storage is the minimal object-store contract used to publish artifacts.
type Storage interface {
	Put(ctx context.Context, key string, source io.Reader) error
}

// Key joins prefix and the base name of file into an object key.
func Key(prefix, file string) string {
	name := filepath.Base(file)
	prefix = strings.Trim(prefix, "/")
	if prefix == "" {
		return name
	}
	return path.Join(prefix, name)
}

// Publish uploads each file under prefix and returns the keys written, in
// order. It stops at the first failure.
func Publish(ctx context.Context, store Storage, prefix string, files []string) ([]string, error) {
	logger := ctxlog.FromContext(ctx)
	keys := make([]string, 0, len(files))
	for _, file := range files {
		key := Key(prefix, file)
		if err := putFile(ctx, store, key, file); err != nil {
			return keys, err
		}
		logger.Info("Artifact published.", "file", file, "key", key)
		keys = append(keys, key)
	}
	return keys, nil
}

func putFile(ctx context.Context, store Storage, key, file string) error {
	f, err := os.Open(file)
	if err != nil {
		return fmt.Errorf("unable to open '%s' for upload: %w", file, err)
	}
	defer f.Close()
	return store.Put(ctx, key, f)
}
