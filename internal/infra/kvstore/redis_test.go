package kvstore

import (
	"context"
	"io"
	"testing"
	"time"

	"business_notification_service/internal/domain/rule"
	"business_notification_service/internal/domain/schedule"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) (*RedisJobStore, *RedisRuleOverrideStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	log := logrus.New()
	log.SetOutput(io.Discard)
	return NewRedisJobStore(client, log), NewRedisRuleOverrideStore(client, log), mr
}

func TestRedisJobStore_LoadMissingKeyIsEmpty(t *testing.T) {
	store, _, _ := newTestStore(t)

	jobs, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, jobs)
}

func TestRedisJobStore_SaveLoadRoundTrip(t *testing.T) {
	store, _, _ := newTestStore(t)
	ctx := context.Background()

	at := time.Date(2026, time.August, 31, 10, 0, 0, 0, time.UTC)
	in := []schedule.Job{
		{
			ID:           "j1",
			UserID:       "u1",
			Category:     "invoices",
			Type:         "due_reminder",
			ScheduledFor: at,
			Data:         map[string]interface{}{"entity_id": "i1"},
			CreatedAt:    at.Add(-time.Hour),
		},
		{
			ID:           "j2",
			UserID:       "u1",
			Category:     "inventory",
			Type:         "low_stock",
			ScheduledFor: at.AddDate(0, 0, 1),
			Recurring:    true,
			Frequency:    rule.FrequencyDaily,
			Executed:     true,
			Attempts:     2,
			CreatedAt:    at.Add(-time.Hour),
		},
	}
	require.NoError(t, store.Save(ctx, in))

	out, err := store.Load(ctx)
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, "j1", out[0].ID)
	assert.True(t, out[0].ScheduledFor.Equal(at))
	assert.Equal(t, "i1", out[0].Data["entity_id"])
	assert.True(t, out[1].Executed)
	assert.True(t, out[1].Recurring)
	assert.Equal(t, rule.FrequencyDaily, out[1].Frequency)
	assert.Equal(t, 2, out[1].Attempts)
}

func TestRedisJobStore_MalformedDocumentLoadsEmpty(t *testing.T) {
	store, _, mr := newTestStore(t)
	require.NoError(t, mr.Set(jobListKey, "{not json"))

	jobs, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, jobs)
}

func TestRedisRuleOverrideStore_RoundTrip(t *testing.T) {
	_, store, _ := newTestStore(t)
	ctx := context.Background()

	in := map[string]bool{"security/backup_reminder": false}
	require.NoError(t, store.Save(ctx, in))

	out, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestRedisRuleOverrideStore_MissingAndMalformed(t *testing.T) {
	_, store, mr := newTestStore(t)

	out, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, out)

	require.NoError(t, mr.Set(ruleOverridesKey, "42"))
	out, err = store.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, out)
}
