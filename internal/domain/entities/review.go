package entities

import "time"

// Review is a user-submitted rating plus comment tied to one restroom.
// Ratings follow the 1-5 domain convention; the data layer does not
// enforce the range. Reviews are never updated or deleted; the vote
// counters are the only mutable fields.
type Review struct {
	ID            string    `json:"id" db:"id"`
	RestroomID    string    `json:"restroomId" db:"restroom_id"`
	UserName      string    `json:"userName" db:"user_name"`
	Rating        int       `json:"rating" db:"rating"`
	Cleanliness   int       `json:"cleanliness" db:"cleanliness"`
	Accessibility int       `json:"accessibility" db:"accessibility"`
	Privacy       int       `json:"privacy" db:"privacy"`
	Comment       string    `json:"comment" db:"comment"`
	Helpful       int       `json:"helpful" db:"helpful"`
	Unhelpful     int       `json:"unhelpful" db:"unhelpful"`
	CreatedAt     time.Time `json:"createdAt" db:"created_at"`
}

// RatingSummary is the read-time rating rollup for one restroom. It is
// always recomputed from the current review set, never persisted.
type RatingSummary struct {
	AverageRating float64 `json:"averageRating"`
	ReviewCount   int     `json:"reviewCount"`
	Cleanliness   float64 `json:"cleanliness"`
	Privacy       float64 `json:"privacy"`
	Accessibility float64 `json:"accessibility"`
}

// SummarizeRatings computes the arithmetic mean of each rating dimension
// across the supplied reviews. An empty set yields all zeros; the result is
// invariant to review ordering.
func SummarizeRatings(reviews []*Review) RatingSummary {
	summary := RatingSummary{ReviewCount: len(reviews)}
	if len(reviews) == 0 {
		return summary
	}

	var rating, cleanliness, privacy, accessibility int
	for _, review := range reviews {
		rating += review.Rating
		cleanliness += review.Cleanliness
		privacy += review.Privacy
		accessibility += review.Accessibility
	}

	count := float64(len(reviews))
	summary.AverageRating = float64(rating) / count
	summary.Cleanliness = float64(cleanliness) / count
	summary.Privacy = float64(privacy) / count
	summary.Accessibility = float64(accessibility) / count
	return summary
}
