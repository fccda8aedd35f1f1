package entities

import "time"

// MenstrualProductRecord tracks menstrual product availability for one
// restroom. At most one record exists per restroom, with a lifecycle
// independent from the restroom itself.
type MenstrualProductRecord struct {
	ID            string    `json:"id" db:"id"`
	RestroomID    string    `json:"restroomId" db:"restroom_id"`
	Available     bool      `json:"available" db:"available"`
	DispenserType string    `json:"dispenserType" db:"dispenser_type"`
	Images        []string  `json:"images" db:"-"`
	RestockDate   time.Time `json:"restockDate" db:"restock_date"`
}
