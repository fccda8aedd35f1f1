package entities

// Analytics is the derived pros/cons/feature snapshot for one restroom,
// produced by the comment and image classifiers at some past point in time.
// It is persisted as-is and not recomputed when new reviews or images
// arrive; staleness is an accepted limitation.
type Analytics struct {
	ID               string   `json:"id" db:"id"`
	RestroomID       string   `json:"restroomId" db:"restroom_id"`
	Pros             []string `json:"pros" db:"-"`
	Cons             []string `json:"cons" db:"-"`
	DetectedFeatures []string `json:"features" db:"-"`
}

// LabelScore is one candidate label re-ranked by the zero-shot classifier.
type LabelScore struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// CommentTags is the zero-shot classification result: per polarity, the
// top-scoring vocabulary labels at or above the confidence floor.
type CommentTags struct {
	Pros []LabelScore `json:"pros"`
	Cons []LabelScore `json:"cons"`
}

// CommentSummary is the generative classification result, parsed from the
// model's bulleted response. RawResponse preserves the unparsed text.
type CommentSummary struct {
	Pros        []string `json:"pros"`
	Cons        []string `json:"cons"`
	RawResponse string   `json:"rawResponse"`
}

// ImageAnalysis maps the fixed feature vocabulary to presence and
// confidence for one or more analyzed images. DetectedFeatures lists the
// feature names currently true, in vocabulary order.
type ImageAnalysis struct {
	Features         map[string]bool    `json:"features"`
	Confidence       map[string]float64 `json:"confidence"`
	DetectedFeatures []string           `json:"detectedFeatures"`
}
