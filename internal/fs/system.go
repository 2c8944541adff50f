package fs

import (
	"io"
	"os"
	"path/filepath"
)

// ModeExec matches any of the owner, group, or other execute bits.
const ModeExec os.FileMode = 0o111

// System provides an abstraction over file system operations.
// This allows for easy mocking in tests.
type System interface {
	// File operations
	ReadFile(path string) ([]byte, error)
	WriteFile(path string, data []byte, perm os.FileMode) error
	Stat(path string) (os.FileInfo, error)
	Remove(path string) error
	Chmod(path string, perm os.FileMode) error
	CopyFile(src, dst string) error

	// Directory operations
	MkdirAll(path string, perm os.FileMode) error
	ReadDir(path string) ([]os.DirEntry, error)

	// Path operations
	Exists(path string) bool
	IsDir(path string) bool
	// Writable reports whether the current user may create files in dir.
	Writable(dir string) bool

	// Path utilities
	Join(elem ...string) string
	Dir(path string) string
	Base(path string) string
	TempDir() string

	// Home directory
	UserHomeDir() (string, error)
}

// RealSystem implements System using the real file system.
type RealSystem struct{}

// Compile-time interface check.
var _ System = (*RealSystem)(nil)

// New returns a new RealSystem.
func New() *RealSystem {
	return &RealSystem{}
}

func (r *RealSystem) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

func (r *RealSystem) WriteFile(path string, data []byte, perm os.FileMode) error {
	return os.WriteFile(path, data, perm)
}

func (r *RealSystem) Stat(path string) (os.FileInfo, error) {
	return os.Stat(path)
}

func (r *RealSystem) Remove(path string) error {
	return os.Remove(path)
}

func (r *RealSystem) Chmod(path string, perm os.FileMode) error {
	return os.Chmod(path, perm)
}

// CopyFile copies src over dst, truncating dst when it already exists.
// The mode of an existing dst is kept; callers chmod afterwards.
func (r *RealSystem) CopyFile(src, dst string) error {
	sourceFile, err := os.Open(src)
	if err != nil {
		return err
	}
	defer func() { _ = sourceFile.Close() }()

	info, err := sourceFile.Stat()
	if err != nil {
		return err
	}

	destFile, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode())
	if err != nil {
		return err
	}

	if _, err := io.Copy(destFile, sourceFile); err != nil {
		_ = destFile.Close()
		return err
	}
	return destFile.Close()
}

func (r *RealSystem) MkdirAll(path string, perm os.FileMode) error {
	return os.MkdirAll(path, perm)
}

func (r *RealSystem) ReadDir(path string) ([]os.DirEntry, error) {
	return os.ReadDir(path)
}

func (r *RealSystem) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func (r *RealSystem) IsDir(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.IsDir()
}

func (r *RealSystem) Writable(dir string) bool {
	return writable(dir)
}

func (r *RealSystem) Join(elem ...string) string {
	return filepath.Join(elem...)
}

func (r *RealSystem) Dir(path string) string {
	return filepath.Dir(path)
}

func (r *RealSystem) Base(path string) string {
	return filepath.Base(path)
}

func (r *RealSystem) TempDir() string {
	return os.TempDir()
}

func (r *RealSystem) UserHomeDir() (string, error) {
	return os.UserHomeDir()
}
