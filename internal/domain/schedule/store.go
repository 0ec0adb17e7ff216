// internal/domain/schedule/store.go
package schedule

import "context"

// Store persists the scheduled-job list as a whole. The list is small and is
// always read-modify-written by a single tick goroutine; implementations
// serialize concurrent writers.
type Store interface {
	// Load returns all persisted jobs. A missing or unreadable list loads as
	// empty rather than failing the tick.
	Load(ctx context.Context) ([]Job, error)
	Save(ctx context.Context, jobs []Job) error
}
