package domain

import "context"

// Seat is one position in an auditorium, identified by (row, seat number).
// The layout is fixed when the auditorium is created.
type Seat struct {
	AuditoriumID int
	Row          int
	SeatNumber   int
}

type Auditorium struct {
	ID   int
	Name string

	// Seats are ordered by row, then seat number. Repositories must return
	// them that way; the availability scan relies on it.
	Seats []Seat
}

type AuditoriumRepository interface {
	Get(ctx context.Context, id int) (*Auditorium, error)
}
