// Package types defines the core data model shared across qdeck packages:
// the persisted configuration tree (profiles, pages, buttons), navigation
// snapshots, action results, undo entries, and the filesystem interface
// used to keep persistence testable.
package types
