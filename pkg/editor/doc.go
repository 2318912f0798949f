// Package editor keeps a locally-editable assistant configuration
// synchronized with the remote source of truth. It holds two named document
// snapshots, the last-synced configuration and the in-edit form state, and
// derives a dirty flag from their structural difference. The schema fetched
// with the configuration drives both the editing surface and the
// load-defaults operation.
package editor
