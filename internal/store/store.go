package store

import (
	"encoding/json" // For JSON encoding and decoding of the datastore file
	"fmt"
	"os"            // For file system operations like reading and writing files
	"path/filepath" // For creating the datastore's parent directory
	"time"

	"github.com/TRC-Loop/mak/internal/logger"
	"github.com/google/uuid"
)

// Store gives access to the macros and keybinds persisted at Path.
// Invocations are short-lived single-shot processes, so the file is
// re-read on every operation; there is deliberately no in-memory cache
// and no file locking (last writer wins across concurrent invocations).
type Store struct {
	Path string
}

// New returns a Store bound to the datastore file at path.
func New(path string) *Store {
	return &Store{Path: path}
}

// load reads and parses the datastore file. A missing file yields an
// empty store; a file that exists but fails to parse is ErrStoreCorrupt,
// never silently treated as empty.
func (s *Store) load() (*data, error) {
	raw, err := os.ReadFile(s.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return &data{}, nil
		}
		return nil, fmt.Errorf("failed to read datastore %s: %w", s.Path, err)
	}

	var d data
	if err := json.Unmarshal(raw, &d); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrStoreCorrupt, s.Path, err)
	}
	return &d, nil
}

// save writes the datastore back to disk, pretty-printed for hand editing.
func (s *Store) save(d *data) error {
	raw, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal datastore: %w", err)
	}

	if dir := filepath.Dir(s.Path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create datastore directory %s: %w", dir, err)
		}
	}

	logger.Debug("[DEBUG] Writing datastore to %s:\n%s\n", s.Path, string(raw))

	if err := os.WriteFile(s.Path, raw, 0644); err != nil {
		return fmt.Errorf("failed to write datastore %s: %w", s.Path, err)
	}
	return nil
}

// ResolveMacro returns the macro with the given name, or ErrNotFound.
func (s *Store) ResolveMacro(name string) (*Macro, error) {
	d, err := s.load()
	if err != nil {
		return nil, err
	}
	for i := range d.Macros {
		if d.Macros[i].Name == name {
			return &d.Macros[i], nil
		}
	}
	return nil, fmt.Errorf("macro %q: %w", name, ErrNotFound)
}

// AddMacro stores a macro. An existing macro with the same name is a
// conflict unless overwrite is set, in which case it is replaced in
// place (keeping its list position and original ID/creation time).
func (s *Store) AddMacro(m Macro, overwrite bool) error {
	if !ValidName(m.Name) {
		return fmt.Errorf("invalid macro name %q (allowed: letters, digits, hyphen, underscore)", m.Name)
	}
	if len(m.Steps) == 0 {
		return fmt.Errorf("macro %q has no steps", m.Name)
	}

	d, err := s.load()
	if err != nil {
		return err
	}

	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	if m.Created.IsZero() {
		m.Created = time.Now().UTC()
	}

	for i := range d.Macros {
		if d.Macros[i].Name == m.Name {
			if !overwrite {
				return fmt.Errorf("macro %q: %w", m.Name, ErrConflict)
			}
			m.ID = d.Macros[i].ID
			m.Created = d.Macros[i].Created
			d.Macros[i] = m
			return s.save(d)
		}
	}

	d.Macros = append(d.Macros, m)
	return s.save(d)
}

// RemoveMacro deletes the macro with the given name, or returns ErrNotFound.
func (s *Store) RemoveMacro(name string) error {
	d, err := s.load()
	if err != nil {
		return err
	}
	for i := range d.Macros {
		if d.Macros[i].Name == name {
			d.Macros = append(d.Macros[:i], d.Macros[i+1:]...)
			return s.save(d)
		}
	}
	return fmt.Errorf("macro %q: %w", name, ErrNotFound)
}

// Macros returns all stored macros in insertion order.
func (s *Store) Macros() ([]Macro, error) {
	d, err := s.load()
	if err != nil {
		return nil, err
	}
	return d.Macros, nil
}

// ResolveKeybind returns the keybind with the given chord, or ErrNotFound.
func (s *Store) ResolveKeybind(chord string) (*Keybind, error) {
	d, err := s.load()
	if err != nil {
		return nil, err
	}
	for i := range d.Keybinds {
		if d.Keybinds[i].Chord == chord {
			return &d.Keybinds[i], nil
		}
	}
	return nil, fmt.Errorf("keybind %q: %w", chord, ErrNotFound)
}

// AddKeybind stores a keybind. The chord must be unique; the target must
// be exactly one of a macro name or an inline command.
func (s *Store) AddKeybind(k Keybind, overwrite bool) error {
	if k.Chord == "" {
		return fmt.Errorf("keybind chord must not be empty")
	}
	if (k.Macro == "") == (k.Command == "") {
		return fmt.Errorf("keybind %q must target exactly one of a macro or a command", k.Chord)
	}

	d, err := s.load()
	if err != nil {
		return err
	}

	for i := range d.Keybinds {
		if d.Keybinds[i].Chord == k.Chord {
			if !overwrite {
				return fmt.Errorf("keybind %q: %w", k.Chord, ErrConflict)
			}
			d.Keybinds[i] = k
			return s.save(d)
		}
	}

	d.Keybinds = append(d.Keybinds, k)
	return s.save(d)
}

// RemoveKeybind deletes the keybind with the given chord, or returns ErrNotFound.
func (s *Store) RemoveKeybind(chord string) error {
	d, err := s.load()
	if err != nil {
		return err
	}
	for i := range d.Keybinds {
		if d.Keybinds[i].Chord == chord {
			d.Keybinds = append(d.Keybinds[:i], d.Keybinds[i+1:]...)
			return s.save(d)
		}
	}
	return fmt.Errorf("keybind %q: %w", chord, ErrNotFound)
}

// Keybinds returns all stored keybinds in insertion order.
func (s *Store) Keybinds() ([]Keybind, error) {
	d, err := s.load()
	if err != nil {
		return nil, err
	}
	return d.Keybinds, nil
}
