// Package configschema parses the JSON-Schema-shaped descriptors the
// configuration service publishes for each assistant. The schema is read-only
// from the client's perspective: it drives the editing surface (see
// pkg/formmodel) and supplies the defaults document extracted by Defaults.
package configschema
