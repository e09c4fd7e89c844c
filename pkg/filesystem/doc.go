// Package filesystem provides types.FS implementations: the real OS
// filesystem for production and an afero-backed one used to run store
// tests against an in-memory filesystem.
package filesystem
