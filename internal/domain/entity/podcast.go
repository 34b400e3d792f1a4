package entity

import "time"

// Podcast is a generated episode. It is immutable after creation except for
// the three stat counters, which only ever increase by one per accepted
// stat-update request.
type Podcast struct {
	ID           string
	UserID       string // owner; empty when the episode was generated anonymously
	Topic        string
	Script       string
	AudioURL     string
	ThumbnailURL string
	Voice        string
	Language     string
	Plays        int64
	Likes        int64
	Shares       int64
	CreatedAt    time.Time
}
