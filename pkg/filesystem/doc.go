// Package filesystem provides filesystem implementations for homevault.
//
// This package contains implementations of the types.FS interface used to
// persist vault metadata: the standard OS filesystem and an afero-backed
// filesystem for tests and alternative backends.
package filesystem
