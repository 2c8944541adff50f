// Package store reads and writes shortcut scripts in the protected shortcut
// directory, escalating writes through an elevation broker when needed.
package store

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/kballard/go-shellquote"

	"github.com/shorts-cli/shorts/internal/elevate"
	"github.com/shorts-cli/shorts/internal/fs"
	"github.com/shorts-cli/shorts/internal/shortcut"
)

const (
	// DefaultDir is where shortcuts are installed.
	DefaultDir = "/usr/local/bin"
	// DefaultWriteTimeout bounds the broker call that places a shortcut.
	DefaultWriteTimeout = 10 * time.Second
	// DefaultDirTimeout bounds the broker call that creates the shortcut directory.
	DefaultDirTimeout = 5 * time.Second

	// ScriptMode is the mode of every installed shortcut.
	ScriptMode os.FileMode = 0o755
	stageMode  os.FileMode = 0o700
)

// Options configures a Store.
type Options struct {
	Dir          string
	WriteTimeout time.Duration
	DirTimeout   time.Duration
	Logger       *log.Logger
}

// Store manages shortcut files in a single directory.
type Store struct {
	fs     fs.System
	broker elevate.Broker
	dir    string

	writeTimeout time.Duration
	dirTimeout   time.Duration
	logger       *log.Logger
}

// New creates a new Store. broker may be nil when no elevation mechanism
// exists; writes that need one then fail with ErrBrokerUnavailable.
func New(fsys fs.System, broker elevate.Broker, opts Options) *Store {
	s := &Store{
		fs:           fsys,
		broker:       broker,
		dir:          opts.Dir,
		writeTimeout: opts.WriteTimeout,
		dirTimeout:   opts.DirTimeout,
		logger:       opts.Logger,
	}
	if s.dir == "" {
		s.dir = DefaultDir
	}
	if s.writeTimeout <= 0 {
		s.writeTimeout = DefaultWriteTimeout
	}
	if s.dirTimeout <= 0 {
		s.dirTimeout = DefaultDirTimeout
	}
	if s.logger == nil {
		s.logger = log.New(io.Discard)
	}
	return s
}

// Dir returns the shortcut directory.
func (s *Store) Dir() string {
	return s.dir
}

// Path returns the file path of the named shortcut.
func (s *Store) Path(name string) string {
	return s.fs.Join(s.dir, name)
}

// List returns the names of executable regular files in the shortcut
// directory, in lexicographic order. Entries whose names fail
// shortcut.Validate, dotfiles included, are skipped.
func (s *Store) List(_ context.Context) ([]string, error) {
	entries, err := s.fs.ReadDir(s.dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: shortcuts directory does not exist: %s", shortcut.ErrNotFound, s.dir)
		}
		return nil, fmt.Errorf("%w: failed to read shortcuts directory %s: %w", shortcut.ErrIOFailure, s.dir, err)
	}

	var names []string
	for _, entry := range entries {
		name := entry.Name()
		// Names this tool cannot read or delete are not its shortcuts.
		if !shortcut.Validate(name) {
			continue
		}
		if !s.isShortcut(s.Path(name)) {
			continue
		}
		names = append(names, name)
	}

	slices.Sort(names)
	return names, nil
}

// Exists reports whether name is a shortcut List would return.
func (s *Store) Exists(_ context.Context, name string) bool {
	return shortcut.Validate(name) && s.isShortcut(s.Path(name))
}

// Occupied reports whether anything at all is present at the shortcut's
// path, shortcut or not.
func (s *Store) Occupied(_ context.Context, name string) bool {
	return shortcut.Validate(name) && s.fs.Exists(s.Path(name))
}

// Read returns the script text of the named shortcut.
func (s *Store) Read(_ context.Context, name string) (string, error) {
	if err := shortcut.ValidateName(name); err != nil {
		return "", err
	}

	data, err := s.fs.ReadFile(s.Path(name))
	if err != nil {
		return "", opError("read", name, err)
	}
	return string(data), nil
}

// Write installs text as the named shortcut with ScriptMode permissions.
//
// The text is staged in the user's temp directory first. A writable
// directory gets a direct copy; otherwise, or when the direct copy is
// denied, the broker runs a generated install script that copies and
// chmods in one step. Staged files are removed on every path.
func (s *Store) Write(ctx context.Context, name, text string) error {
	if err := shortcut.ValidateName(name); err != nil {
		return err
	}

	staged, err := s.stage("shortcut_", []byte(text), ScriptMode)
	if err != nil {
		return shortcut.NewOpError("save", name, shortcut.ErrIOFailure, fmt.Errorf("%w: %w", shortcut.ErrIOFailure, err))
	}
	defer s.discard(staged)

	if err := s.ensureDir(ctx); err != nil {
		return shortcut.NewOpError("save", name, kindOf(err), err)
	}

	dst := s.Path(name)
	if s.fs.Writable(s.dir) {
		s.logger.Debug("writing shortcut directly", "path", dst)
		err := s.install(staged, dst)
		if err == nil {
			return nil
		}
		// An existing shortcut owned by root still needs the broker.
		if !errors.Is(err, os.ErrPermission) {
			return opError("save", name, err)
		}
		s.logger.Debug("direct write denied, escalating", "path", dst, "err", err)
	}

	install := fmt.Sprintf("cp -f %s %s && chmod %o %s",
		shellquote.Join(staged), shellquote.Join(dst), ScriptMode, shellquote.Join(dst))
	if err := s.elevate(ctx, install, s.writeTimeout); err != nil {
		return shortcut.NewOpError("save", name, kindOf(err), err)
	}
	return nil
}

// Remove deletes the named shortcut. It never escalates: a permission
// failure is returned to the caller as ErrPermissionDenied.
func (s *Store) Remove(_ context.Context, name string) error {
	if err := shortcut.ValidateName(name); err != nil {
		return err
	}

	path := s.Path(name)
	if !s.isShortcut(path) {
		return shortcut.NewOpError("delete", name, shortcut.ErrNotFound, nil)
	}
	if err := s.fs.Remove(path); err != nil {
		return opError("delete", name, err)
	}
	return nil
}

// install copies staged over dst and sets ScriptMode.
func (s *Store) install(staged, dst string) error {
	if err := s.fs.CopyFile(staged, dst); err != nil {
		return err
	}
	return s.fs.Chmod(dst, ScriptMode)
}

// isShortcut reports whether path is a regular file with an execute bit.
// Stat follows symlinks, so linked executables count as shortcuts.
func (s *Store) isShortcut(path string) bool {
	info, err := s.fs.Stat(path)
	if err != nil {
		return false
	}
	return info.Mode().IsRegular() && info.Mode().Perm()&fs.ModeExec != 0
}

// ensureDir creates the shortcut directory when it is missing, through the
// broker if the parent is protected.
func (s *Store) ensureDir(ctx context.Context) error {
	if s.fs.IsDir(s.dir) {
		return nil
	}

	err := s.fs.MkdirAll(s.dir, 0o755)
	if err == nil {
		return nil
	}
	if !errors.Is(err, os.ErrPermission) {
		return fmt.Errorf("%w: failed to create %s: %w", shortcut.ErrIOFailure, s.dir, err)
	}

	dir := shellquote.Join(s.dir)
	return s.elevate(ctx, fmt.Sprintf("mkdir -p %s && chmod 755 %s", dir, dir), s.dirTimeout)
}

// elevate stages an install script holding command and runs it through the broker.
func (s *Store) elevate(ctx context.Context, command string, timeout time.Duration) error {
	if s.broker == nil {
		return shortcut.ErrBrokerUnavailable
	}

	script, err := s.stage("shortcut_install_", []byte("#!/bin/sh\n"+command+"\n"), stageMode)
	if err != nil {
		return fmt.Errorf("%w: %w", shortcut.ErrIOFailure, err)
	}
	defer s.discard(script)

	s.logger.Debug("running elevation broker", "broker", s.broker.Name(), "timeout", timeout)
	res, err := s.broker.Elevate(ctx, script, timeout)
	if err != nil {
		return err
	}
	s.logger.Debug("elevation broker finished", "broker", s.broker.Name(), "duration", res.Duration)
	return nil
}

// stage writes data to a uniquely named file in the temp directory.
func (s *Store) stage(prefix string, data []byte, perm os.FileMode) (string, error) {
	path := s.fs.Join(s.fs.TempDir(), prefix+uuid.NewString()+".sh")
	if err := s.fs.WriteFile(path, data, perm); err != nil {
		return "", fmt.Errorf("failed to create temporary file: %w", err)
	}
	// WriteFile leaves the mode of an existing file alone and is subject to umask.
	if err := s.fs.Chmod(path, perm); err != nil {
		s.discard(path)
		return "", fmt.Errorf("failed to set permissions on temporary file: %w", err)
	}
	return path, nil
}

func (s *Store) discard(path string) {
	if err := s.fs.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		s.logger.Warn("failed to remove temporary file", "path", path, "err", err)
	}
}

// opError classifies a file system error for op on name.
func opError(op, name string, err error) error {
	return shortcut.NewOpError(op, name, kindOf(err), err)
}

func kindOf(err error) error {
	for _, kind := range []error{
		shortcut.ErrNotFound,
		shortcut.ErrPermissionDenied,
		shortcut.ErrTimeout,
		shortcut.ErrBrokerUnavailable,
		shortcut.ErrIOFailure,
	} {
		if errors.Is(err, kind) {
			return kind
		}
	}
	switch {
	case errors.Is(err, os.ErrNotExist):
		return shortcut.ErrNotFound
	case errors.Is(err, os.ErrPermission):
		return shortcut.ErrPermissionDenied
	default:
		return shortcut.ErrIOFailure
	}
}
