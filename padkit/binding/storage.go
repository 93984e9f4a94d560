package binding

import (
	"os"
	"path/filepath"
)

// Storage abstracts the persistence layer for binding files. Both
// operations are synchronous, whole-file reads and writes.
type Storage interface {
	Read(name string) ([]byte, error)
	Write(name string, data []byte) error
}

// DirStorage keeps shipped binding defaults in a read-only base
// directory and saved bindings in a mutable directory. Reads consult
// the mutable directory first so saved bindings override the defaults.
type DirStorage struct {
	BaseDir    string
	MutableDir string
}

func (s DirStorage) Read(name string) ([]byte, error) {
	if s.MutableDir != "" {
		data, err := os.ReadFile(filepath.Join(s.MutableDir, name+Ext))
		if err == nil {
			return data, nil
		}
	}
	return os.ReadFile(filepath.Join(s.BaseDir, name+Ext))
}

func (s DirStorage) Write(name string, data []byte) error {
	dir := s.MutableDir
	if dir == "" {
		dir = s.BaseDir
	}
	return os.WriteFile(filepath.Join(dir, name+Ext), data, 0644)
}
