package domain

import "time"

// Movie is the denormalized copy of a catalog record that gets persisted
// alongside a showtime. The catalog remains the source for browsing; this row
// only pins the fields a reservation needs after the fact.
type Movie struct {
	ID          int
	Title       string
	ImdbID      string
	Stars       string
	ReleaseDate time.Time
}
