// Package registry drives a shortcut editing session: listing, loading,
// saving, and deleting shortcuts with caller-supplied confirmations.
package registry

import (
	"context"
	"fmt"
	"io"
	"slices"

	"github.com/charmbracelet/log"

	"github.com/shorts-cli/shorts/internal/shortcut"
)

// State is the session state.
type State int

const (
	// StateEmpty means no shortcut is loaded and nothing has been edited.
	StateEmpty State = iota
	// StateLoaded means the draft mirrors a shortcut on disk.
	StateLoaded
	// StateEdited means the draft has unsaved changes.
	StateEdited
)

func (s State) String() string {
	switch s {
	case StateEmpty:
		return "empty"
	case StateLoaded:
		return "loaded"
	case StateEdited:
		return "edited"
	default:
		return "unknown"
	}
}

// Store abstracts shortcut persistence (implemented by store.Store).
type Store interface {
	List(ctx context.Context) ([]string, error)
	Exists(ctx context.Context, name string) bool
	Occupied(ctx context.Context, name string) bool
	Read(ctx context.Context, name string) (string, error)
	Write(ctx context.Context, name, text string) error
	Remove(ctx context.Context, name string) error
}

// Confirmer asks the user a yes/no question.
type Confirmer interface {
	Confirm(prompt string) (bool, error)
}

// ConfirmFunc adapts a function to Confirmer.
type ConfirmFunc func(prompt string) (bool, error)

// Confirm calls f.
func (f ConfirmFunc) Confirm(prompt string) (bool, error) {
	return f(prompt)
}

// Options configures a Session.
type Options struct {
	Composer shortcut.Composer
	// StrictSyntax rejects commands that fail shortcut.Lint instead of
	// only logging a warning.
	StrictSyntax bool
	Logger       *log.Logger
}

// Session is a single editing session over the shortcut directory.
// It is not safe for concurrent use.
type Session struct {
	store    Store
	confirm  Confirmer
	composer shortcut.Composer
	strict   bool
	logger   *log.Logger

	names   []string
	current string
	draft   shortcut.Draft
	state   State
}

// New creates an empty Session. A nil confirm declines every prompt.
func New(store Store, confirm Confirmer, opts Options) *Session {
	if confirm == nil {
		confirm = ConfirmFunc(func(string) (bool, error) { return false, nil })
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Session{
		store:    store,
		confirm:  confirm,
		composer: opts.Composer,
		strict:   opts.StrictSyntax,
		logger:   logger,
	}
}

// State returns the current session state.
func (s *Session) State() State { return s.state }

// Names returns the shortcut names from the last refresh.
func (s *Session) Names() []string { return slices.Clone(s.names) }

// Current returns the name of the loaded shortcut, or "".
func (s *Session) Current() string { return s.current }

// Draft returns the working draft.
func (s *Session) Draft() shortcut.Draft { return s.draft }

// Refresh re-reads the shortcut directory and loads the first shortcut.
func (s *Session) Refresh(ctx context.Context) (string, error) {
	names, err := s.store.List(ctx)
	if err != nil {
		s.names = nil
		return "", err
	}
	s.names = names

	if len(names) == 0 {
		return "No shortcuts found", nil
	}
	return s.Load(ctx, names[0])
}

// Load reads the named shortcut into the draft.
func (s *Session) Load(ctx context.Context, name string) (string, error) {
	text, err := s.store.Read(ctx, name)
	if err != nil {
		return "", err
	}

	parsed := shortcut.Parse(text)
	s.draft = parsed.Draft(name)
	s.current = name
	s.state = StateLoaded

	s.logger.Debug("loaded shortcut", "name", name, "line", parsed.Line, "modifiers", parsed.Modifiers)
	return fmt.Sprintf("Loaded shortcut: %s", name), nil
}

// Edit replaces the working draft.
func (s *Session) Edit(d shortcut.Draft) {
	s.draft = d
	s.state = StateEdited
}

// Preview returns the command line d would be saved with.
func (s *Session) Preview(d shortcut.Draft) string {
	d = d.Normalize()
	if d.Command == "" {
		return ""
	}
	return shortcut.CommandLine(d.Command, d.Modifiers)
}

// Save writes d to the shortcut directory.
//
// Saving over an existing shortcut other than the loaded one needs a yes
// from the Confirmer; a no leaves the file untouched and returns a status
// without error. On success the session is refreshed and cleared.
func (s *Session) Save(ctx context.Context, d shortcut.Draft) (string, error) {
	d = d.Normalize()
	s.Edit(d)

	if d.Name == "" || d.Command == "" {
		return "", shortcut.ErrEmptyInput
	}
	if err := shortcut.ValidateName(d.Name); err != nil {
		return "", err
	}
	if err := shortcut.Lint(d.Command, d.Modifiers); err != nil {
		if s.strict {
			return "", err
		}
		s.logger.Warn("saving command that does not parse", "name", d.Name, "err", err)
	}

	if d.Name != s.current && s.store.Occupied(ctx, d.Name) {
		ok, err := s.confirm.Confirm(fmt.Sprintf("A shortcut named '%s' already exists. Do you want to overwrite it?", d.Name))
		if err != nil {
			return "", err
		}
		if !ok {
			return fmt.Sprintf("Kept existing shortcut '%s'", d.Name), nil
		}
	}

	if err := s.store.Write(ctx, d.Name, s.composer.Compose(d.Command, d.Modifiers)); err != nil {
		return "", err
	}

	s.refreshAfter(ctx, "save")
	return fmt.Sprintf("Shortcut '%s' saved successfully!", d.Name), nil
}

// Delete removes the named shortcut after confirmation. An empty name
// deletes the loaded shortcut.
func (s *Session) Delete(ctx context.Context, name string) (string, error) {
	if name == "" {
		name = s.current
	}
	if name == "" {
		return "", shortcut.ErrEmptyInput
	}
	if err := shortcut.ValidateName(name); err != nil {
		return "", err
	}
	if !s.store.Exists(ctx, name) {
		return "", shortcut.NewOpError("delete", name, shortcut.ErrNotFound, nil)
	}

	ok, err := s.confirm.Confirm(fmt.Sprintf("Are you sure you want to delete the shortcut '%s'?", name))
	if err != nil {
		return "", err
	}
	if !ok {
		return "Deletion cancelled", nil
	}

	if err := s.store.Remove(ctx, name); err != nil {
		return "", err
	}

	s.refreshAfter(ctx, "delete")
	return fmt.Sprintf("Shortcut '%s' deleted", name), nil
}

// Clear resets the session without any I/O.
func (s *Session) Clear() string {
	s.current = ""
	s.draft = shortcut.Draft{}
	s.state = StateEmpty
	return "Form cleared"
}

// refreshAfter updates the listing after a successful write and clears
// the session. A failed refresh does not undo the write.
func (s *Session) refreshAfter(ctx context.Context, op string) {
	if _, err := s.Refresh(ctx); err != nil {
		s.logger.Warn("failed to refresh shortcuts", "after", op, "err", err)
	}
	s.Clear()
}
