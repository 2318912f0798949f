// Package uischema models the presentation hints the configuration service
// publishes alongside each schema: widget choices, labels, help text, and
// submit-button behavior. Hints are merged with client-local overrides at
// render time only and are never persisted back to the service.
package uischema
