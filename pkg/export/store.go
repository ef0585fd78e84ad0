package export

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Store persists report bytes under a key.
type Store interface {
	Put(ctx context.Context, key string, data []byte) error
}

// DirStore stores reports as files below a root directory.
type DirStore struct {
	root string
}

// NewDirStore creates a store rooted at dir. The directory is created on
// first write.
func NewDirStore(dir string) *DirStore {
	return &DirStore{root: dir}
}

// Root returns the store's directory.
func (d *DirStore) Root() string {
	return d.root
}

// Put writes data to root/key, creating parent directories.
func (d *DirStore) Put(ctx context.Context, key string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	path, err := d.path(key)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create report directory: %w", err)
	}

	// Write through a temp file so readers never see a partial report.
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

// path resolves key below root and rejects keys that escape it.
func (d *DirStore) path(key string) (string, error) {
	clean := filepath.Clean(filepath.FromSlash(key))
	if clean == "." || filepath.IsAbs(clean) || clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("invalid report key %q", key)
	}
	return filepath.Join(d.root, clean), nil
}
