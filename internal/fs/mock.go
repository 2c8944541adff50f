package fs

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"
)

// MockSystem implements System for testing purposes.
type MockSystem struct {
	Files map[string][]byte
	Modes map[string]os.FileMode
	Dirs  map[string]bool
	// ReadOnly marks directories the current user cannot create or delete
	// files in, and files the current user cannot overwrite or chmod.
	ReadOnly map[string]bool
	HomeDir  string
	Temp     string
}

// Compile-time interface check.
var _ System = (*MockSystem)(nil)

// NewMock returns a new MockSystem with an existing, writable temp directory.
func NewMock() *MockSystem {
	return &MockSystem{
		Files:    make(map[string][]byte),
		Modes:    make(map[string]os.FileMode),
		Dirs:     map[string]bool{"/tmp": true},
		ReadOnly: make(map[string]bool),
		HomeDir:  "/home/test",
		Temp:     "/tmp",
	}
}

// AddFile stores data at path with the given permission bits.
func (m *MockSystem) AddFile(path string, data []byte, perm os.FileMode) {
	path = m.normalizePath(path)
	m.Files[path] = data
	m.Modes[path] = perm
}

func (m *MockSystem) ReadFile(path string) ([]byte, error) {
	path = m.normalizePath(path)
	if data, ok := m.Files[path]; ok {
		return slices.Clone(data), nil
	}
	return nil, os.ErrNotExist
}

func (m *MockSystem) WriteFile(path string, data []byte, perm os.FileMode) error {
	path = m.normalizePath(path)
	dir := filepath.Dir(path)
	if !m.Dirs[dir] {
		return os.ErrNotExist
	}
	if m.ReadOnly[dir] || m.ReadOnly[path] {
		return os.ErrPermission
	}
	if _, ok := m.Files[path]; !ok {
		m.Modes[path] = perm
	}
	m.Files[path] = slices.Clone(data)
	return nil
}

func (m *MockSystem) Stat(path string) (os.FileInfo, error) {
	path = m.normalizePath(path)
	if data, ok := m.Files[path]; ok {
		return &mockFileInfo{name: filepath.Base(path), size: int64(len(data)), mode: m.Modes[path]}, nil
	}
	if m.Dirs[path] {
		return &mockFileInfo{name: filepath.Base(path), isDir: true, mode: os.ModeDir | 0o755}, nil
	}
	return nil, os.ErrNotExist
}

func (m *MockSystem) Remove(path string) error {
	path = m.normalizePath(path)
	_, isFile := m.Files[path]
	if !isFile && !m.Dirs[path] {
		return os.ErrNotExist
	}
	if m.ReadOnly[filepath.Dir(path)] {
		return os.ErrPermission
	}
	delete(m.Files, path)
	delete(m.Modes, path)
	delete(m.Dirs, path)
	return nil
}

func (m *MockSystem) Chmod(path string, perm os.FileMode) error {
	path = m.normalizePath(path)
	if _, ok := m.Files[path]; !ok {
		return os.ErrNotExist
	}
	if m.ReadOnly[path] {
		return os.ErrPermission
	}
	m.Modes[path] = perm
	return nil
}

func (m *MockSystem) CopyFile(src, dst string) error {
	src = m.normalizePath(src)
	data, ok := m.Files[src]
	if !ok {
		return os.ErrNotExist
	}
	return m.WriteFile(dst, data, m.Modes[src])
}

func (m *MockSystem) MkdirAll(path string, _ os.FileMode) error {
	path = m.normalizePath(path)
	for dir := path; dir != "/" && dir != "."; dir = filepath.Dir(dir) {
		if m.Dirs[dir] {
			break
		}
		if m.ReadOnly[filepath.Dir(dir)] {
			return os.ErrPermission
		}
	}
	for dir := path; dir != "/" && dir != "."; dir = filepath.Dir(dir) {
		m.Dirs[dir] = true
	}
	return nil
}

func (m *MockSystem) ReadDir(path string) ([]os.DirEntry, error) {
	path = m.normalizePath(path)

	if !m.Dirs[path] {
		return nil, os.ErrNotExist
	}

	var entries []os.DirEntry
	prefix := path + "/"

	for p, data := range m.Files {
		rel, ok := strings.CutPrefix(p, prefix)
		if ok && !strings.Contains(rel, "/") {
			entries = append(entries, &mockDirEntry{info: mockFileInfo{name: rel, size: int64(len(data)), mode: m.Modes[p]}})
		}
	}
	for p := range m.Dirs {
		rel, ok := strings.CutPrefix(p, prefix)
		if ok && rel != "" && !strings.Contains(rel, "/") {
			entries = append(entries, &mockDirEntry{info: mockFileInfo{name: rel, isDir: true, mode: os.ModeDir | 0o755}})
		}
	}

	// os.ReadDir returns entries sorted by filename.
	slices.SortFunc(entries, func(a, b os.DirEntry) int {
		return strings.Compare(a.Name(), b.Name())
	})
	return entries, nil
}

func (m *MockSystem) Exists(path string) bool {
	path = m.normalizePath(path)
	if _, ok := m.Files[path]; ok {
		return true
	}
	return m.Dirs[path]
}

func (m *MockSystem) IsDir(path string) bool {
	return m.Dirs[m.normalizePath(path)]
}

func (m *MockSystem) Writable(dir string) bool {
	dir = m.normalizePath(dir)
	return m.Dirs[dir] && !m.ReadOnly[dir]
}

func (m *MockSystem) Join(elem ...string) string {
	return filepath.Join(elem...)
}

func (m *MockSystem) Dir(path string) string {
	return filepath.Dir(path)
}

func (m *MockSystem) Base(path string) string {
	return filepath.Base(path)
}

func (m *MockSystem) TempDir() string {
	return m.Temp
}

func (m *MockSystem) UserHomeDir() (string, error) {
	return m.HomeDir, nil
}

func (m *MockSystem) normalizePath(path string) string {
	// Replace ~ with home directory
	if strings.HasPrefix(path, "~") {
		path = m.HomeDir + path[1:]
	}
	return filepath.Clean(path)
}

// mockFileInfo implements os.FileInfo for testing
type mockFileInfo struct {
	name  string
	size  int64
	isDir bool
	mode  os.FileMode
}

func (m *mockFileInfo) Name() string       { return m.name }
func (m *mockFileInfo) Size() int64        { return m.size }
func (m *mockFileInfo) Mode() os.FileMode  { return m.mode }
func (m *mockFileInfo) ModTime() time.Time { return time.Time{} }
func (m *mockFileInfo) IsDir() bool        { return m.isDir }
func (m *mockFileInfo) Sys() any           { return nil }

// mockDirEntry implements os.DirEntry for testing
type mockDirEntry struct {
	info mockFileInfo
}

func (m *mockDirEntry) Name() string               { return m.info.name }
func (m *mockDirEntry) IsDir() bool                { return m.info.isDir }
func (m *mockDirEntry) Type() os.FileMode          { return m.info.mode.Type() }
func (m *mockDirEntry) Info() (os.FileInfo, error) { return &m.info, nil }
