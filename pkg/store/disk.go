package store

import (
	"context"
	"errors"
	"os"

	"github.com/peterbourgon/diskv/v3"
)

// DiskStore persists values as files under a base directory via diskv.
// This is the default backend for CLI usage.
type DiskStore struct {
	d *diskv.Diskv
}

// NewDiskStore creates a disk store rooted at dir. The directory is created
// on first write.
func NewDiskStore(dir string) *DiskStore {
	return &DiskStore{
		d: diskv.New(diskv.Options{
			BasePath:     dir,
			CacheSizeMax: 1024 * 1024, // 1MB
		}),
	}
}

// Get retrieves a value from disk.
func (s *DiskStore) Get(ctx context.Context, key string) (string, error) {
	data, err := s.d.Read(key)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", ErrNotFound
		}
		return "", err
	}
	return string(data), nil
}

// Set writes a value to disk.
func (s *DiskStore) Set(ctx context.Context, key, value string) error {
	return s.d.Write(key, []byte(value))
}

// Close does nothing for the disk store.
func (s *DiskStore) Close() error {
	return nil
}

// Ensure DiskStore implements Store.
var _ Store = (*DiskStore)(nil)
