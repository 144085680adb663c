package store

import (
	"errors"
	"regexp"
	"time"
)

// Sentinel errors returned by Store operations. Callers match them with
// errors.Is to pick an exit code or a user-facing message.
var (
	// ErrNotFound means the requested macro or keybind does not exist in the datastore.
	ErrNotFound = errors.New("not found")
	// ErrConflict means an entry with the same name already exists and overwrite was not requested.
	ErrConflict = errors.New("already exists")
	// ErrStoreCorrupt means the datastore file exists but could not be parsed.
	// It is fatal for the invocation; the store is never silently replaced by an empty one.
	ErrStoreCorrupt = errors.New("datastore corrupt")
)

// StepKind classifies how a single step must be executed.
type StepKind string

const (
	// KindProcess steps run as an isolated child process. Their output is
	// captured/forwarded and they cannot affect the invoking shell.
	KindProcess StepKind = "process"
	// KindStateful steps mutate the invoking shell's own state (working
	// directory, environment) and therefore cannot run as a child; in
	// shell-integration mode they are emitted as source text instead.
	KindStateful StepKind = "stateful"
)

// Step is a single shell command line plus its execution classification.
type Step struct {
	Command string   `json:"command"` // The literal shell command text
	Kind    StepKind `json:"kind"`    // "process" or "stateful"
}

// Macro is a named, ordered, non-empty chain of steps.
// - Name: unique case-sensitive identifier, matching [A-Za-z0-9_-]+.
// - Description: optional free-form text shown in listings.
// - ID/Created: metadata assigned once when the macro is first stored.
type Macro struct {
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	ID          string    `json:"id"`
	Created     time.Time `json:"created"`
	Steps       []Step    `json:"steps"`
}

// Keybind binds a key-chord identifier (e.g. "ctrl+alt+m") to either an
// existing macro by name or a single inline command. Exactly one of
// Macro and Command is set.
type Keybind struct {
	Chord   string `json:"chord"`
	Macro   string `json:"macro,omitempty"`
	Command string `json:"command,omitempty"`
}

// data is the on-disk document. Macros and keybinds are stored as arrays
// (not maps) so that insertion order round-trips exactly.
type data struct {
	Macros   []Macro   `json:"macros"`
	Keybinds []Keybind `json:"keybinds"`
}

// nameRE is the identifier grammar for macro names.
var nameRE = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

var (
	spaceRE   = regexp.MustCompile(`[ \t]+`)
	invalidRE = regexp.MustCompile(`[^A-Za-z0-9_-]`)
)

// ValidName reports whether name is a legal macro identifier.
func ValidName(name string) bool {
	return nameRE.MatchString(name)
}

// SanitizeName turns free-form user input into a legal identifier:
// runs of whitespace become a single hyphen, everything outside
// [A-Za-z0-9_-] is dropped. Case and underscores are preserved since
// identifiers are case-sensitive.
func SanitizeName(name string) string {
	name = spaceRE.ReplaceAllString(name, "-")
	return invalidRE.ReplaceAllString(name, "")
}
