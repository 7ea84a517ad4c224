// Package planner creates operation plans for sync operations.
// This includes digesting local files and diffing them against the
// bucket manifest to decide what needs uploading.
//
// A file is uploaded exactly when its key is missing from the manifest
// or its content digest differs from the manifest entry.
package planner
