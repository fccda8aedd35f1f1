//go:build integration

package integration

import (
	"context"
	"database/sql"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/relievo/restroom-finder/backend/internal/adapters/database"
	"github.com/relievo/restroom-finder/backend/internal/adapters/events"
	"github.com/relievo/restroom-finder/backend/internal/application/services"
	"github.com/relievo/restroom-finder/backend/internal/domain/entities"
	"github.com/relievo/restroom-finder/backend/internal/domain/providers"
)

func TestRedisEventBusFanoutIntegration(t *testing.T) {
	if os.Getenv("TEST_REDIS_HOST") == "" {
		t.Skip("Skipping integration test: TEST_REDIS_HOST not set")
	}

	redisClient := newTestRedisClient(t)
	defer redisClient.Close()

	eventBus := events.NewRedisEventBus(redisClient)
	defer eventBus.Close()

	channel := providers.EventChannelRestroomUpdates
	ctx1, cancel1 := context.WithCancel(context.Background())
	ctx2, cancel2 := context.WithCancel(context.Background())
	defer cancel1()
	defer cancel2()

	sub1, err := eventBus.Subscribe(ctx1, channel)
	require.NoError(t, err)
	sub2, err := eventBus.Subscribe(ctx2, channel)
	require.NoError(t, err)
	time.Sleep(50 * time.Millisecond)

	event := entities.NewRestroomEvent(
		"rr-redis-1",
		entities.RestroomEventTypeAnalyticsUpdate,
		map[string]interface{}{"pros": 3, "cons": 1},
	)

	err = eventBus.Publish(context.Background(), channel, event)
	require.NoError(t, err)

	received1 := waitForRestroomEvent(t, sub1)
	received2 := waitForRestroomEvent(t, sub2)

	assert.Equal(t, event.ID, received1.ID)
	assert.Equal(t, event.ID, received2.ID)
}

func TestReviewService_Create_PublishesEvent(t *testing.T) {
	if os.Getenv("TEST_DB_HOST") == "" || os.Getenv("TEST_REDIS_HOST") == "" {
		t.Skip("Skipping integration test: TEST_DB_HOST or TEST_REDIS_HOST not set")
	}

	dbClient := newTestPostgresClient(t)
	defer dbClient.Close()

	db := dbClient.DB()
	runMigrations(t, db, "../../migrations/001_initial_schema.sql")
	cleanupReviewEventData(t, db)
	seedReviewEventData(t, db)

	redisClient := newTestRedisClient(t)
	defer redisClient.Close()

	eventBus := events.NewRedisEventBus(redisClient)
	defer eventBus.Close()

	reviewRepo := database.NewReviewAdapter(dbClient)
	restroomRepo := database.NewRestroomAdapter(dbClient)

	service := services.NewReviewService(reviewRepo, restroomRepo)
	service.SetEventBus(eventBus)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	eventChan, err := eventBus.Subscribe(ctx, providers.EventChannelRestroomUpdates)
	require.NoError(t, err)
	time.Sleep(50 * time.Millisecond)

	review := &entities.Review{
		RestroomID: "rr-event-1",
		UserName:   "dana",
		Rating:     4,
		Comment:    "Well stocked",
	}
	err = service.Create(ctx, review)
	require.NoError(t, err)

	received := waitForRestroomEvent(t, eventChan)
	assert.Equal(t, entities.RestroomEventTypeReviewCreated, received.EventType)
	assert.Equal(t, "rr-event-1", received.RestroomID)
	assert.Equal(t, review.ID, received.ChangedFields["review_id"])

	cleanupReviewEventData(t, db)
}

func runMigrations(t *testing.T, db *sql.DB, paths ...string) {
	t.Helper()
	for _, path := range paths {
		migrationSQL, err := os.ReadFile(path)
		require.NoError(t, err)
		_, err = db.Exec(string(migrationSQL))
		require.NoError(t, err)
	}
}

func cleanupReviewEventData(t *testing.T, db *sql.DB) {
	t.Helper()
	tables := []string{
		"reviews",
		"restrooms",
	}
	for _, table := range tables {
		_, err := db.Exec("DELETE FROM " + table)
		require.NoError(t, err)
	}
}

func seedReviewEventData(t *testing.T, db *sql.DB) {
	t.Helper()

	_, err := db.Exec(`
		INSERT INTO restrooms (id, name, address, hours, created_at, updated_at)
		VALUES ('rr-event-1', 'Event Test Restroom', '1 Event Plaza', '24/7', NOW(), NOW())
	`)
	require.NoError(t, err)
}

func waitForRestroomEvent(t *testing.T, ch <-chan *entities.RestroomEvent) *entities.RestroomEvent {
	t.Helper()
	select {
	case event := <-ch:
		require.NotNil(t, event)
		return event
	case <-time.After(3 * time.Second):
		t.Fatal("timed out waiting for restroom event")
		return nil
	}
}
