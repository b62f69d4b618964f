// Package types defines the core types and interfaces shared by the
// homevault packages: the PathItem transfer unit, the LinkRecord kept in a
// vault's link index, and the FS interface used to persist vault metadata.
package types
