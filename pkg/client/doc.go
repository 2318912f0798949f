// Package client talks to the remote configuration service. It implements
// the two consumed operations, fetching the configuration envelope and
// replacing the stored configuration, and surfaces failures as typed errors the
// editor can branch on.
package client
