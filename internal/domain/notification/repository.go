// internal/domain/notification/repository.go
package notification

import (
	"context"
	"time"
)

// Repository defines the persistence operations the emitter needs against
// the notifications table.
type Repository interface {
	Create(ctx context.Context, n *Notification) error

	// FindRecent returns the most recent notification for the given user,
	// category and related entity created at or after 'since', used for the
	// dedup lookback. Implementations return ErrNotificationNotFound from
	// the infra layer when no such row exists.
	FindRecent(ctx context.Context, userID, category, relatedEntityID string, since time.Time) (*Notification, error)
}
