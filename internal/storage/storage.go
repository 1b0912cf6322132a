package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Logical buckets. Object names inside a bucket are opaque slash-
// separated paths.
const (
	BucketAvatars         = "avatars"
	BucketTaskAttachments = "task_attachments"
)

// ObjectStore is the contract for blob storage. Uploads overwrite,
// downloads return the full blob.
type ObjectStore interface {
	Upload(bucket, name string, data []byte) error
	Download(bucket, name string) ([]byte, error)
	Delete(bucket, name string) error
}

// DiskStore implements ObjectStore on the local filesystem, one
// directory per bucket under the store root.
type DiskStore struct {
	root string
}

// NewDiskStore creates a DiskStore rooted at dir, creating the bucket
// directories if needed.
func NewDiskStore(dir string) (*DiskStore, error) {
	for _, bucket := range []string{BucketAvatars, BucketTaskAttachments} {
		if err := os.MkdirAll(filepath.Join(dir, bucket), 0755); err != nil {
			return nil, fmt.Errorf("failed to create bucket %s: %w", bucket, err)
		}
	}
	return &DiskStore{root: dir}, nil
}

// Upload writes the blob, creating intermediate directories for
// slash-separated object names.
func (s *DiskStore) Upload(bucket, name string, data []byte) error {
	path, err := s.objectPath(bucket, name)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create object directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write object: %w", err)
	}
	return nil
}

// Download reads a blob back.
func (s *DiskStore) Download(bucket, name string) ([]byte, error) {
	path, err := s.objectPath(bucket, name)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read object: %w", err)
	}
	return data, nil
}

// Delete removes a blob. Deleting a missing object is not an error.
func (s *DiskStore) Delete(bucket, name string) error {
	path, err := s.objectPath(bucket, name)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete object: %w", err)
	}
	return nil
}

// objectPath maps (bucket, name) to a filesystem path, refusing names
// that would escape the bucket directory.
func (s *DiskStore) objectPath(bucket, name string) (string, error) {
	if name == "" {
		return "", fmt.Errorf("object name is required")
	}
	clean := filepath.Clean(filepath.FromSlash(name))
	if strings.HasPrefix(clean, "..") || filepath.IsAbs(clean) {
		return "", fmt.Errorf("invalid object name %q", name)
	}
	return filepath.Join(s.root, bucket, clean), nil
}
