// Package sync provides the main sync orchestration logic.
// This includes coordinating the inventory, planning, and execution phases.
//
// This package acts as the main entry point for all sync-related operations.
package sync
