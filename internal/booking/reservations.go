package booking

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/karavil/cinema-booking-api/internal/domain"
)

// ReservationSummary is what a successful Reserve call hands back to the
// transport layer.
type ReservationSummary struct {
	ReservationID uuid.UUID
	AuditoriumID  int
	MovieTitle    string
	NumberOfSeats int
}

// ReservationService orchestrates the availability scan against the entity
// store. The load-scan-create sequence for a showtime runs under a
// per-showtime mutex, so two concurrent Reserve calls on the same showtime
// cannot both observe the same free block.
type ReservationService struct {
	showtimeRepo   domain.ShowtimeRepository
	auditoriumRepo domain.AuditoriumRepository
	ticketRepo     domain.TicketRepository
	logger         *slog.Logger

	locks showtimeLocks
	now   func() time.Time
}

func NewReservationService(
	showtimeRepo domain.ShowtimeRepository,
	auditoriumRepo domain.AuditoriumRepository,
	ticketRepo domain.TicketRepository,
	logger *slog.Logger) *ReservationService {

	return &ReservationService{
		showtimeRepo:   showtimeRepo,
		auditoriumRepo: auditoriumRepo,
		ticketRepo:     ticketRepo,
		logger:         logger,
		now:            time.Now,
	}
}

// Reserve finds a contiguous block of numberOfSeats free seats for the
// showtime and persists an unpaid ticket holding them.
func (s *ReservationService) Reserve(ctx context.Context, showtimeID, numberOfSeats int) (*ReservationSummary, error) {
	unlock := s.locks.lock(showtimeID)
	defer unlock()

	showtime, err := s.showtimeRepo.GetWithMovieById(ctx, showtimeID)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return nil, domain.ShowtimeNotFoundError{ShowtimeID: showtimeID}
		}

		return nil, err
	}

	auditorium, err := s.auditoriumRepo.Get(ctx, showtime.AuditoriumID)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return nil, domain.AuditoriumNotFoundError{AuditoriumID: showtime.AuditoriumID}
		}

		return nil, err
	}

	tickets, err := s.ticketRepo.GetEnrichedByShowtime(ctx, showtimeID)
	if err != nil {
		return nil, err
	}

	block := FindContiguousBlock(auditorium.Seats, tickets, numberOfSeats, s.now())
	if block == nil {
		return nil, domain.SeatsNotAvailableError{NumberOfSeats: numberOfSeats, ShowtimeID: showtimeID}
	}

	ticket, err := s.ticketRepo.Create(ctx, showtime, block)
	if err != nil {
		return nil, err
	}

	s.logger.Info("seats reserved",
		"reservation_id", ticket.ID,
		"showtime_id", showtimeID,
		"seats", len(ticket.Seats),
	)

	return &ReservationSummary{
		ReservationID: ticket.ID,
		AuditoriumID:  auditorium.ID,
		MovieTitle:    showtime.Movie.Title,
		NumberOfSeats: len(ticket.Seats),
	}, nil
}

// ConfirmReservation marks a pending hold as paid. Expired and already-paid
// holds are rejected with their respective conflict errors.
func (s *ReservationService) ConfirmReservation(ctx context.Context, reservationID uuid.UUID) error {
	ticket, err := s.ticketRepo.Get(ctx, reservationID)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return domain.ReservationNotFoundError{ReservationID: reservationID}
		}

		return err
	}

	switch ticket.StatusAt(s.now()) {
	case domain.TicketExpired:
		return domain.ReservationExpiredError{ReservationID: reservationID}
	case domain.TicketPaid:
		return domain.ReservationAlreadyConfirmedError{ReservationID: reservationID}
	}

	err = s.ticketRepo.ConfirmPayment(ctx, ticket)
	if err != nil {
		return err
	}

	s.logger.Info("reservation confirmed", "reservation_id", reservationID)

	return nil
}

// showtimeLocks hands out one mutex per showtime ID. Entries are never
// removed; the map is bounded by the number of showtimes an instance serves.
type showtimeLocks struct {
	mu    sync.Mutex
	locks map[int]*sync.Mutex
}

func (l *showtimeLocks) lock(showtimeID int) func() {
	l.mu.Lock()

	if l.locks == nil {
		l.locks = make(map[int]*sync.Mutex)
	}

	m, ok := l.locks[showtimeID]
	if !ok {
		m = &sync.Mutex{}
		l.locks[showtimeID] = m
	}

	l.mu.Unlock()

	m.Lock()

	return m.Unlock
}
