package entities

import (
	"crypto/rand"
	"encoding/hex"
	"time"
)

// RestroomEventType represents the type of restroom event
type RestroomEventType string

const (
	RestroomEventTypeCreated                 RestroomEventType = "restroom_created"
	RestroomEventTypeReviewCreated           RestroomEventType = "review_created"
	RestroomEventTypeAnalyticsUpdate         RestroomEventType = "analytics_update"
	RestroomEventTypeMenstrualProductsUpdate RestroomEventType = "menstrual_products_update"
)

// RestroomEvent represents a real-time update event for a restroom
type RestroomEvent struct {
	ID            string                 `json:"id"`
	RestroomID    string                 `json:"restroom_id"`
	EventType     RestroomEventType      `json:"event_type"`
	Timestamp     time.Time              `json:"timestamp"`
	ChangedFields map[string]interface{} `json:"changed_fields"`
}

// NewRestroomEvent creates a new restroom event
func NewRestroomEvent(restroomID string, eventType RestroomEventType, changedFields map[string]interface{}) *RestroomEvent {
	return &RestroomEvent{
		ID:            generateEventID(),
		RestroomID:    restroomID,
		EventType:     eventType,
		Timestamp:     time.Now(),
		ChangedFields: changedFields,
	}
}

// generateEventID generates a unique event ID
func generateEventID() string {
	return time.Now().Format("20060102150405") + "-" + randomString(8)
}

// randomString generates a random string of specified length
func randomString(length int) string {
	bytes := make([]byte, length/2+1)
	if _, err := rand.Read(bytes); err != nil {
		// Fallback to timestamp-based if crypto/rand fails
		return time.Now().Format("150405.000")
	}
	return hex.EncodeToString(bytes)[:length]
}
