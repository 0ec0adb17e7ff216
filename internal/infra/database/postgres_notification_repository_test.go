package database

import (
	"context"
	"regexp"
	"testing"
	"time"

	"business_notification_service/internal/domain/notification"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostgresNotificationRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewPostgresNotificationRepository(db)
	createdAt := time.Date(2026, time.August, 28, 10, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO notifications")).
		WithArgs("n1", "u1", "c1", "inventory", "warning", "medium",
			"Low stock alert", "Blue Paint is down to 3 units (minimum 10).",
			true, "Restock", "/inventory/p1",
			"p1", "product", false).
		WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(createdAt))

	n := &notification.Notification{
		ID:                "n1",
		UserID:            "u1",
		CompanyID:         "c1",
		Category:          "inventory",
		Type:              notification.TypeWarning,
		Priority:          "medium",
		Title:             "Low stock alert",
		Message:           "Blue Paint is down to 3 units (minimum 10).",
		ActionRequired:    true,
		ActionText:        "Restock",
		ActionURL:         "/inventory/p1",
		RelatedEntityID:   "p1",
		RelatedEntityType: "product",
	}
	require.NoError(t, repo.Create(context.Background(), n))
	assert.Equal(t, createdAt, n.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresNotificationRepository_FindRecent(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewPostgresNotificationRepository(db)
	since := time.Date(2026, time.August, 27, 10, 0, 0, 0, time.UTC)
	createdAt := since.Add(2 * time.Hour)

	columns := []string{"id", "user_id", "company_id", "category", "type", "priority",
		"title", "message", "action_required", "action_text", "action_url",
		"related_entity_id", "related_entity_type", "auto_resolve", "created_at"}

	mock.ExpectQuery(regexp.QuoteMeta("FROM notifications")).
		WithArgs("u1", "inventory", "p1", since).
		WillReturnRows(sqlmock.NewRows(columns).AddRow(
			"n1", "u1", "c1", "inventory", "warning", "medium",
			"Low stock alert", "msg", true, "Restock", "/inventory/p1",
			"p1", "product", false, createdAt))

	n, err := repo.FindRecent(context.Background(), "u1", "inventory", "p1", since)
	require.NoError(t, err)
	assert.Equal(t, "n1", n.ID)
	assert.Equal(t, notification.TypeWarning, n.Type)
	assert.Equal(t, createdAt, n.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresNotificationRepository_FindRecentNoRows(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewPostgresNotificationRepository(db)
	since := time.Now().Add(-24 * time.Hour)

	mock.ExpectQuery(regexp.QuoteMeta("FROM notifications")).
		WithArgs("u1", "inventory", "p1", since).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	n, err := repo.FindRecent(context.Background(), "u1", "inventory", "p1", since)
	assert.Nil(t, n)
	assert.ErrorIs(t, err, ErrNotificationNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
