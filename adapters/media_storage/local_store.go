package media_storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/SubhajitChakrabort/ProfilePage/internal/application/service"
)

// LocalDiskStore keeps uploaded binaries in a single directory, referenced
// by generated filename only.
type LocalDiskStore struct {
	root string
}

func NewLocalDiskStore(root string) (service.BinaryStore, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create uploads directory: %w", err)
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve uploads directory: %w", err)
	}
	return &LocalDiskStore{root: abs}, nil
}

func (s *LocalDiskStore) Save(ctx context.Context, name string, r io.Reader) (int64, error) {
	f, err := os.OpenFile(s.Path(name), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return 0, fmt.Errorf("create file %s: %w", name, err)
	}

	n, err := io.Copy(f, r)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(s.Path(name))
		return 0, fmt.Errorf("write file %s: %w", name, err)
	}
	return n, nil
}

func (s *LocalDiskStore) Delete(name string) error {
	err := os.Remove(s.Path(name))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("delete file %s: %w", name, err)
	}
	return nil
}

func (s *LocalDiskStore) Exists(name string) bool {
	info, err := os.Stat(s.Path(name))
	return err == nil && !info.IsDir()
}

func (s *LocalDiskStore) Path(name string) string {
	return filepath.Join(s.root, filepath.Base(name))
}

func (s *LocalDiskStore) List() ([]string, error) {
	entries, err := os.ReadDir(s.root)
	if err != nil {
		return nil, fmt.Errorf("read uploads directory: %w", err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() {
			names = append(names, e.Name())
		}
	}
	return names, nil
}

func (s *LocalDiskStore) Root() string {
	return s.root
}
