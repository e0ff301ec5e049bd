package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

type Showtime struct {
	ID           int
	AuditoriumID int
	SessionDate  time.Time
	BasePrice    decimal.Decimal
	Movie        Movie
}

type ShowtimeRepository interface {
	// GetWithMovieById returns the showtime together with its denormalized
	// movie record, or ErrRecordNotFound.
	GetWithMovieById(ctx context.Context, id int) (*Showtime, error)

	// Create persists the showtime and its movie copy, filling in ID.
	Create(ctx context.Context, showtime *Showtime) error
}
