// Package unit is the operation driver. It reads an invocation context,
// resolves the path items of every data type and routes them to the export
// or import pipeline.
//
// A context has two recognised top-level keys:
//
//	home:    data type -> path string or list of path entries
//	options: {overwrite: bool}, the global overwrite default
//
// Any other key is rejected with ErrUnknownContextItem.
package unit
