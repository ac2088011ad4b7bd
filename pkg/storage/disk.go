// Package storage is the filesystem abstraction the maintenance passes use
// to persist their JSON reports.
//
// Two drivers:
//   - "local" writes under STORAGE_LOCAL_ROOT (default ./storage)
//   - "s3"    writes to S3_BUCKET on any S3-compatible store (AWS, MinIO, R2)
//
// STORAGE_DISK selects the default:
//
//	mgr, err := storage.NewManager(ctx)
//	err = mgr.Default().Put(ctx, "reports/backfill-1700000000.json", data)
package storage

import "context"

// Disk is implemented by every driver.
type Disk interface {
	// Put writes content to path, creating parents as needed.
	Put(ctx context.Context, path string, content []byte) error
	// URL returns a locator for path suitable for printing.
	URL(path string) string
}
