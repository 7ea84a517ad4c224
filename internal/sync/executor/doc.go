// Package executor carries out the uploads a sync plan calls for.
// Uploads run sequentially by default, with optional bounded parallelism.
//
// A failed upload is recorded and the run continues with the next file.
package executor
