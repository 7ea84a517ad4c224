// Package sync implements directory synchronization functionality.
// This includes scanning local files, diffing them against the remote
// manifest, and executing the resulting uploads.
//
// The sync package provides the complete implementation for the public Sync API.
package sync
