// Package backup exports store snapshots to object storage.
//
// A snapshot is one JSON object per collection under a timestamped prefix
// (snapshots/<timestamp>/<collection>.json). Snapshots are full copies; Prune
// keeps the N most recent and removes the rest.
package backup
