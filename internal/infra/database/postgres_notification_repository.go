// internal/infra/database/postgres_notification_repository.go
package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"business_notification_service/internal/domain/notification"
)

// ErrNotificationNotFound is returned when no notification row matches a lookup.
var ErrNotificationNotFound = fmt.Errorf("notification not found")

type PostgresNotificationRepository struct {
	db *sql.DB
}

func NewPostgresNotificationRepository(db *sql.DB) *PostgresNotificationRepository {
	return &PostgresNotificationRepository{db: db}
}

func (r *PostgresNotificationRepository) Create(ctx context.Context, n *notification.Notification) error {
	query := `INSERT INTO notifications
                (id, user_id, company_id, category, type, priority, title, message,
                 action_required, action_text, action_url,
                 related_entity_id, related_entity_type, auto_resolve)
               VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
               RETURNING created_at`
	err := r.db.QueryRowContext(ctx, query,
		n.ID, n.UserID, n.CompanyID, n.Category, n.Type, n.Priority, n.Title, n.Message,
		n.ActionRequired, n.ActionText, n.ActionURL,
		n.RelatedEntityID, n.RelatedEntityType, n.AutoResolve,
	).Scan(&n.CreatedAt)
	if err != nil {
		return fmt.Errorf("error creating notification: %w", err)
	}
	return nil
}

func (r *PostgresNotificationRepository) FindRecent(ctx context.Context, userID, category, relatedEntityID string, since time.Time) (*notification.Notification, error) {
	query := `SELECT id, user_id, company_id, category, type, priority, title, message,
                     action_required, action_text, action_url,
                     related_entity_id, related_entity_type, auto_resolve, created_at
               FROM notifications
               WHERE user_id = $1 AND category = $2 AND related_entity_id = $3 AND created_at >= $4
               ORDER BY created_at DESC
               LIMIT 1`
	n := notification.Notification{}
	err := r.db.QueryRowContext(ctx, query, userID, category, relatedEntityID, since).Scan(
		&n.ID, &n.UserID, &n.CompanyID, &n.Category, &n.Type, &n.Priority, &n.Title, &n.Message,
		&n.ActionRequired, &n.ActionText, &n.ActionURL,
		&n.RelatedEntityID, &n.RelatedEntityType, &n.AutoResolve, &n.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotificationNotFound
		}
		return nil, fmt.Errorf("error finding recent notification: %w", err)
	}
	return &n, nil
}
