// Package formmodel flattens a configuration schema and its UI hints into
// the field list an edit surface consumes. Each schema node kind (object,
// array, primitive, reference) is handled by a single traversal function so
// rendering never needs open-ended type dispatch.
package formmodel
