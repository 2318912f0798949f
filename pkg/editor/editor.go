package editor

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/goliatone/go-configform/pkg/client"
	"github.com/goliatone/go-configform/pkg/configdoc"
	"github.com/goliatone/go-configform/pkg/configschema"
	"github.com/goliatone/go-configform/pkg/diff"
	"github.com/goliatone/go-configform/pkg/uischema"
)

// State identifies where an edit session is in its lifecycle.
type State int

const (
	// StateUninitialized is the state before Load is called.
	StateUninitialized State = iota
	// StateLoading is the state while the initial fetch is in flight.
	StateLoading
	// StateReady means a configuration is loaded and editable.
	StateReady
	// StateSaving is the state while an update is in flight.
	StateSaving
	// StateFailed is terminal: the initial fetch failed and the session
	// cannot be used without constructing a fresh editor.
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	case StateSaving:
		return "saving"
	case StateFailed:
		return "failed"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

var (
	// ErrNotLoaded is returned when an operation requires a loaded
	// configuration and none is present.
	ErrNotLoaded = errors.New("editor: configuration is not loaded")
	// ErrAlreadyLoaded is returned when Load is called on a session that
	// already performed its fetch.
	ErrAlreadyLoaded = errors.New("editor: session already loaded")
	// ErrSessionFailed is returned for any operation on a session whose
	// initial load failed.
	ErrSessionFailed = errors.New("editor: session failed to load")
	// ErrSaveInFlight is returned when Save is called while a previous save
	// has not completed. The second save is rejected, never interleaved.
	ErrSaveInFlight = errors.New("editor: save already in flight")
	// ErrNotDirty is returned when Save is called with no pending changes.
	ErrNotDirty = errors.New("editor: no changes to save")
)

// Remote is the consumed surface of the configuration service.
// *client.Client satisfies it.
type Remote interface {
	GetConfig(ctx context.Context, assistantID string) (client.Envelope, error)
	UpdateConfig(ctx context.Context, assistantID string, config configdoc.Document) (configdoc.Document, error)
}

var _ Remote = (*client.Client)(nil)

// Option customises an Editor.
type Option func(*Editor)

// WithHintOverrides layers client-local UI hints over whatever the service
// returns. Overrides apply at load time only and are never persisted.
func WithHintOverrides(overrides uischema.Hints) Option {
	return func(e *Editor) {
		e.overrides = overrides
	}
}

// WithSchemaOverride substitutes a locally supplied schema for the one in the
// fetched envelope. Defaults extraction and any form built from the session
// use the override; the configuration document itself still comes from the
// service.
func WithSchemaOverride(schema *configschema.Schema) Option {
	return func(e *Editor) {
		e.schemaOverride = schema
	}
}

// Editor is one edit session for one assistant identity. The documented
// ownership model is a single goroutine per session; the single-active-save
// invariant is still enforced internally so concurrent misuse surfaces as
// ErrSaveInFlight rather than interleaved updates.
type Editor struct {
	remote         Remote
	assistantID    string
	overrides      uischema.Hints
	schemaOverride *configschema.Schema

	mu         sync.Mutex
	state      State
	dirty      bool
	lastSynced configdoc.Document
	formState  configdoc.Document
	schema     *configschema.Schema
	hints      uischema.Hints
}

// New constructs an Editor for the given assistant identity.
func New(remote Remote, assistantID string, options ...Option) (*Editor, error) {
	if remote == nil {
		return nil, errors.New("editor: remote is required")
	}
	if assistantID == "" {
		return nil, errors.New("editor: assistant id is required")
	}

	e := &Editor{
		remote:      remote,
		assistantID: assistantID,
		state:       StateUninitialized,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(e)
	}
	return e, nil
}

// Load fetches the configuration envelope and readies the session. A load
// failure is terminal: the error propagates to the caller and every later
// operation reports ErrSessionFailed.
func (e *Editor) Load(ctx context.Context) error {
	e.mu.Lock()
	switch e.state {
	case StateUninitialized:
	case StateFailed:
		e.mu.Unlock()
		return ErrSessionFailed
	default:
		e.mu.Unlock()
		return ErrAlreadyLoaded
	}
	e.state = StateLoading
	e.mu.Unlock()

	envelope, err := e.remote.GetConfig(ctx, e.assistantID)

	e.mu.Lock()
	defer e.mu.Unlock()
	if err != nil {
		e.state = StateFailed
		return fmt.Errorf("%w: %w", ErrSessionFailed, err)
	}

	e.lastSynced = envelope.Config.Clone()
	e.formState = envelope.Config.Clone()
	e.schema = envelope.Schema
	if e.schemaOverride != nil {
		e.schema = e.schemaOverride
	}
	e.hints = envelope.UIHints.Merge(e.overrides)
	e.dirty = false
	e.state = StateReady
	return nil
}

// SetFormState replaces the in-edit document and recomputes the dirty flag.
// It never blocks on the remote and may be called arbitrarily often; during
// a save it still applies, but it cannot start another save.
func (e *Editor) SetFormState(doc configdoc.Document) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.requireLoadedLocked(); err != nil {
		return err
	}
	e.formState = doc.Clone()
	e.dirty = !diff.Equal(e.lastSynced, e.formState)
	return nil
}

// SetValue writes a single value at the nested path in the form state, a
// convenience for per-field edit surfaces.
func (e *Editor) SetValue(path []string, value any) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.requireLoadedLocked(); err != nil {
		return err
	}
	updated, err := e.formState.WithValue(path, configdoc.CloneValue(value))
	if err != nil {
		return err
	}
	e.formState = updated
	e.dirty = !diff.Equal(e.lastSynced, e.formState)
	return nil
}

// Save merges the form state into the full last-synced document and pushes
// the result to the service. On success the merged-and-saved document becomes
// both snapshots and the dirty flag clears. On failure the form state and
// dirty flag are left untouched so the caller can retry or abandon.
func (e *Editor) Save(ctx context.Context) error {
	e.mu.Lock()
	switch e.state {
	case StateSaving:
		e.mu.Unlock()
		return ErrSaveInFlight
	case StateReady:
	case StateFailed:
		e.mu.Unlock()
		return ErrSessionFailed
	default:
		e.mu.Unlock()
		return ErrNotLoaded
	}
	if !e.dirty {
		e.mu.Unlock()
		return ErrNotDirty
	}
	merged := e.lastSynced.Merge(e.formState)
	e.state = StateSaving
	e.mu.Unlock()

	saved, err := e.remote.UpdateConfig(ctx, e.assistantID, merged)

	e.mu.Lock()
	defer e.mu.Unlock()
	e.state = StateReady
	if err != nil {
		return fmt.Errorf("editor: save configuration: %w", err)
	}

	if saved == nil {
		saved = merged
	}
	e.lastSynced = saved.Clone()
	e.formState = saved.Clone()
	e.dirty = false
	return nil
}

// Reset discards the form state in favor of the last-synced document and
// clears the dirty flag. Purely local; the remote is never contacted.
func (e *Editor) Reset() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.requireLoadedLocked(); err != nil {
		return err
	}
	e.formState = e.lastSynced.Clone()
	e.dirty = false
	return nil
}

// LoadDefaults replaces the form state with the defaults document extracted
// from the schema. Nothing is saved; the dirty flag is recomputed against the
// last-synced document. Schema problems encountered during extraction are
// returned as non-fatal diagnostics.
func (e *Editor) LoadDefaults() ([]configschema.Diagnostic, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.requireLoadedLocked(); err != nil {
		return nil, err
	}
	if e.schema == nil {
		return nil, errors.New("editor: no schema available for this session")
	}

	defaults, diagnostics := e.schema.Defaults()
	e.formState = defaults
	e.dirty = !diff.Equal(e.lastSynced, e.formState)
	return diagnostics, nil
}

// State returns the session's lifecycle state.
func (e *Editor) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// Dirty reports whether the form state differs structurally from the
// last-synced document.
func (e *Editor) Dirty() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.dirty
}

// FormState returns a copy of the in-edit document.
func (e *Editor) FormState() configdoc.Document {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.formState.Clone()
}

// LastSynced returns a copy of the last document confirmed by the service.
func (e *Editor) LastSynced() configdoc.Document {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.lastSynced.Clone()
}

// PendingChanges returns the paths at which the form state differs from the
// last-synced document.
func (e *Editor) PendingChanges() []diff.Path {
	e.mu.Lock()
	defer e.mu.Unlock()
	return diff.Changed(e.lastSynced, e.formState)
}

// Schema returns the schema fetched with the configuration.
func (e *Editor) Schema() *configschema.Schema {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.schema
}

// Hints returns the merged UI hints for the session.
func (e *Editor) Hints() uischema.Hints {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.hints
}

// AssistantID returns the identity this session edits.
func (e *Editor) AssistantID() string {
	return e.assistantID
}

func (e *Editor) requireLoadedLocked() error {
	switch e.state {
	case StateReady, StateSaving:
		return nil
	case StateFailed:
		return ErrSessionFailed
	default:
		return ErrNotLoaded
	}
}
