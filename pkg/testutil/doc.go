// Package testutil provides utilities for testing homevault components.
//
// Key components:
//   - Home: a throwaway home directory with a vault root, built on t.TempDir
//   - TestFS: an in-memory synthfs filesystem implementing types.FS
//   - NewMemFS: an afero MemMapFs implementing types.FS
//
// Usage guidelines:
//   - Link index and version gate tests should use the in-memory filesystems
//   - Transfer tests need real symlinks and metadata, so they use Home
//   - All test data should be defined inline, not in external files
package testutil
