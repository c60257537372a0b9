package entities

import "time"

// ScoreRecord is one completed quiz attempt. Records are append-only and
// never updated or deleted.
type ScoreRecord struct {
	UserID    int64
	Subject   string
	Score     int
	CreatedAt time.Time
}
