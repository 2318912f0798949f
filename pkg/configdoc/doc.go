// Package configdoc models assistant configuration documents as generic
// JSON-shaped mappings. Documents are owned by the remote configuration
// service; this package provides the local-copy plumbing (deep clone, deep
// merge, path access) the editor needs without interpreting any keys.
package configdoc
