package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// HoldWindow is how long an unpaid ticket keeps its seats occupied. Once the
// window has elapsed the ticket is expired on read; the row itself is never
// mutated or deleted.
const HoldWindow = 10 * time.Minute

type TicketStatus int

const (
	TicketPending TicketStatus = iota
	TicketExpired
	TicketPaid
)

func (s TicketStatus) String() string {
	switch s {
	case TicketPending:
		return "pending"
	case TicketExpired:
		return "expired"
	case TicketPaid:
		return "paid"
	default:
		return "unknown"
	}
}

// Ticket is a hold on a contiguous block of seats for one showtime.
// Contiguity is enforced at creation by the availability scan and not
// re-validated afterwards.
type Ticket struct {
	ID         uuid.UUID
	ShowtimeID int
	CreatedAt  time.Time
	Paid       bool
	Seats      []Seat
}

// StatusAt derives the lifecycle state at the given instant. Expiry is a pure
// function of (paid, createdAt); it is never stored.
func (t *Ticket) StatusAt(now time.Time) TicketStatus {
	if t.Paid {
		return TicketPaid
	}

	if now.Sub(t.CreatedAt) >= HoldWindow {
		return TicketExpired
	}

	return TicketPending
}

// OccupiesSeatsAt reports whether the ticket's seats count as taken: paid
// tickets always do, unpaid ones only inside the hold window.
func (t *Ticket) OccupiesSeatsAt(now time.Time) bool {
	return t.StatusAt(now) != TicketExpired
}

type TicketRepository interface {
	// Create persists a new unpaid ticket holding the given seats. The
	// insert must be atomic: either the ticket and all its seats land, or
	// nothing does.
	Create(ctx context.Context, showtime *Showtime, seats []Seat) (*Ticket, error)

	// Get returns the ticket with its seats, or ErrRecordNotFound.
	Get(ctx context.Context, id uuid.UUID) (*Ticket, error)

	// GetEnrichedByShowtime returns every ticket for the showtime, each
	// enriched with its seats.
	GetEnrichedByShowtime(ctx context.Context, showtimeID int) ([]Ticket, error)

	// ConfirmPayment marks the ticket as paid.
	ConfirmPayment(ctx context.Context, ticket *Ticket) error
}
