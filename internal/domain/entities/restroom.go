package entities

import "time"

// Restroom represents one physical facility in the directory.
// The id is immutable once created; features is treated as an unordered
// set of free-text labels.
type Restroom struct {
	ID        string    `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Address   string    `json:"address" db:"address"`
	Hours     string    `json:"hours" db:"hours"`
	Images    []string  `json:"images" db:"-"`
	Features  []string  `json:"features" db:"-"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

// DefaultHours is stored when a submission omits opening hours.
const DefaultHours = "Not specified"

// RestroomDetail is the composed read model for one restroom detail view:
// the restroom's own fields plus the read-time rating summary, the derived
// analytics snapshot, the menstrual product record, and the full review list.
// Analytics and MenstrualProducts are nil when no record exists.
type RestroomDetail struct {
	Restroom
	RatingSummary
	Analytics         *Analytics              `json:"analytics"`
	MenstrualProducts *MenstrualProductRecord `json:"menstrualProducts"`
	Reviews           []*Review               `json:"reviews"`
}
