// Package datastore manages the metadata homevault keeps next to the data
// inside each vault directory: the link index and the format version marker.
//
// Both are hidden files whose names derive from a configurable prefix
// (see Layout), and both are accessed through types.FS so they can be
// exercised against in-memory filesystems.
package datastore
