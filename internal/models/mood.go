package models

import "time"

// MoodEntry is one persisted analysis result plus optional authorship
// and note. Entries are immutable; corrections are delete and recreate.
type MoodEntry struct {
	ID        int64              `json:"id"`
	Timestamp time.Time          `json:"timestamp"` // Assigned server-side, UTC
	Dominant  string             `json:"dominant"`
	Intensity float64            `json:"intensity"` // Score of the dominant label, 0-100
	Emotions  map[string]float64 `json:"emotions"`  // All labels from one inference call
	Note      *string            `json:"note"`
	Username  *string            `json:"username"` // nil means anonymous
}

// MoodEntryDB is the raw mood_history row. The emotions map is stored
// as JSON text in a single column.
type MoodEntryDB struct {
	ID        int64     `db:"id"`
	Timestamp time.Time `db:"timestamp"`
	Dominant  string    `db:"dominant"`
	Intensity float64   `db:"intensity"`
	Emotions  string    `db:"emotions"`
	Note      *string   `db:"note"`
	Username  *string   `db:"username"`
}
