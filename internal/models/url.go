package models

import "time"

// URL represents a shortened URL and its associated metadata.
type URL struct {
	// ShortID is the short identifier the original URL is reachable under.
	ShortID string
	// TargetURL is the original, full-length URL that the short identifier points to.
	TargetURL string
	// Clicks tracks the number of successful redirects through the short identifier.
	Clicks int64
	// CreatedAt is the timestamp indicating when the shortened URL was created.
	CreatedAt time.Time
}
