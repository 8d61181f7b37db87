package domain

import "time"

// Exercise is one catalog entry. IDs come from the upstream ExerciseDB API
// and are kept as-is so re-syncs upsert instead of duplicating.
type Exercise struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Target       string    `json:"target"`
	BodyPart     string    `json:"bodyPart"`
	Equipment    string    `json:"equipment"`
	GifURL       string    `json:"gifUrl"`
	APISource    string    `json:"-"`
	LastSyncedAt time.Time `json:"-"`
}
