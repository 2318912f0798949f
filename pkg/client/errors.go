package client

import "fmt"

// FetchError reports a failed configuration fetch. A fetch failure is fatal
// to the edit session; the surrounding application decides how to surface it.
type FetchError struct {
	AssistantID string
	Status      int
	Err         error
}

func (e *FetchError) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("client: fetch config for %q: unexpected status %d", e.AssistantID, e.Status)
	}
	return fmt.Sprintf("client: fetch config for %q: %v", e.AssistantID, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// SaveError reports a failed configuration update. Saves are recoverable:
// the editor keeps its form state and dirty flag so the caller can retry.
type SaveError struct {
	AssistantID string
	Status      int
	Err         error
}

func (e *SaveError) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("client: update config for %q: unexpected status %d", e.AssistantID, e.Status)
	}
	return fmt.Sprintf("client: update config for %q: %v", e.AssistantID, e.Err)
}

func (e *SaveError) Unwrap() error { return e.Err }
