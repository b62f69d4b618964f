// Package copier implements the low-level copy primitives the transfer
// engine is built on.
//
// Files are copied with their content, permission bits, ownership and
// access/modification times. Trees are copied recursively with "update"
// semantics: an entry is written only when the destination is absent or
// not newer than the source. Symlinks met inside a tree are followed.
//
// Metadata preservation is best effort. Failures are logged as warnings
// and never abort a copy.
package copier
