// Package storagefakes holds test doubles for storage.Storage.
package storagefakes

import (
	"context"
	"io"
	"sync"
)

// FakeStorage records every Put in memory.
type FakeStorage struct {
	mu      sync.Mutex
	objects map[string][]byte
	keys    []string

	// PutErr, when set, is returned by every Put.
	PutErr error
}

// Put implements storage.Storage.
func (f *FakeStorage) Put(_ context.Context, key string, source io.Reader) error {
	if f.PutErr != nil {
		return f.PutErr
	}
	data, err := io.ReadAll(source)
	if err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.objects == nil {
		f.objects = make(map[string][]byte)
	}
	f.objects[key] = data
	f.keys = append(f.keys, key)
	return nil
}

// Keys returns the keys written, in call order.
func (f *FakeStorage) Keys() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.keys...)
}

// Object returns the bytes stored under key.
func (f *FakeStorage) Object(key string) ([]byte, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	data, ok := f.objects[key]
	return data, ok
}
