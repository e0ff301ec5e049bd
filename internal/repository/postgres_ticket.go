package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/karavil/cinema-booking-api/internal/domain"
)

type PostgresTicketRepository struct {
	db *pgxpool.Pool
}

func NewPostgresTicketRepository(db *pgxpool.Pool) *PostgresTicketRepository {
	return &PostgresTicketRepository{
		db: db,
	}
}

func (p *PostgresTicketRepository) Create(
	ctx context.Context,
	showtime *domain.Showtime,
	seats []domain.Seat) (*domain.Ticket, error) {

	ticket := domain.Ticket{
		ID:         uuid.New(),
		ShowtimeID: showtime.ID,
		Seats:      seats,
	}

	err := runInTx(ctx, p.db, func(tx pgx.Tx) error {
		query := `
			INSERT INTO tickets (id, showtime_id)
			VALUES ($1, $2)
			RETURNING created_at, paid
		`

		err := tx.QueryRow(ctx, query, ticket.ID, ticket.ShowtimeID).Scan(&ticket.CreatedAt, &ticket.Paid)
		if err != nil {
			return err
		}

		rows := make([][]any, 0, len(seats))
		for _, seat := range seats {
			rows = append(rows, []any{
				ticket.ID,
				seat.AuditoriumID,
				seat.Row,
				seat.SeatNumber,
			})
		}

		_, err = tx.CopyFrom(
			ctx,
			pgx.Identifier{"ticket_seats"},
			[]string{"ticket_id", "auditorium_id", "seat_row", "seat_number"},
			pgx.CopyFromRows(rows),
		)

		return err
	})

	if err != nil {
		return nil, err
	}

	return &ticket, nil
}

func (p *PostgresTicketRepository) Get(ctx context.Context, id uuid.UUID) (*domain.Ticket, error) {
	query := `
		SELECT id, showtime_id, created_at, paid
		FROM tickets
		WHERE id = $1
	`

	var ticket domain.Ticket

	err := p.db.QueryRow(ctx, query, id).Scan(
		&ticket.ID,
		&ticket.ShowtimeID,
		&ticket.CreatedAt,
		&ticket.Paid,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}

		return nil, err
	}

	seats, err := p.retrieveTicketSeats(ctx, id)
	if err != nil {
		return nil, err
	}

	ticket.Seats = seats

	return &ticket, nil
}

func (p *PostgresTicketRepository) GetEnrichedByShowtime(ctx context.Context, showtimeID int) ([]domain.Ticket, error) {
	query := `
		SELECT t.id, t.showtime_id, t.created_at, t.paid, ts.auditorium_id, ts.seat_row, ts.seat_number
		FROM tickets t
		JOIN ticket_seats ts ON ts.ticket_id = t.id
		WHERE t.showtime_id = $1
		ORDER BY t.id, ts.seat_row, ts.seat_number
	`

	rows, err := p.db.Query(ctx, query, showtimeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tickets := make([]domain.Ticket, 0)

	for rows.Next() {
		var ticket domain.Ticket
		var seat domain.Seat

		err = rows.Scan(
			&ticket.ID,
			&ticket.ShowtimeID,
			&ticket.CreatedAt,
			&ticket.Paid,
			&seat.AuditoriumID,
			&seat.Row,
			&seat.SeatNumber,
		)

		if err != nil {
			return nil, err
		}

		// Rows are ordered by ticket ID, so seats for one ticket arrive
		// together.
		if n := len(tickets); n > 0 && tickets[n-1].ID == ticket.ID {
			tickets[n-1].Seats = append(tickets[n-1].Seats, seat)
			continue
		}

		ticket.Seats = []domain.Seat{seat}
		tickets = append(tickets, ticket)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return tickets, nil
}

func (p *PostgresTicketRepository) ConfirmPayment(ctx context.Context, ticket *domain.Ticket) error {
	query := `
		UPDATE tickets
		SET paid = true
		WHERE id = $1
	`

	tag, err := p.db.Exec(ctx, query, ticket.ID)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrRecordNotFound
	}

	ticket.Paid = true

	return nil
}

func (p *PostgresTicketRepository) retrieveTicketSeats(ctx context.Context, ticketID uuid.UUID) ([]domain.Seat, error) {
	query := `
		SELECT auditorium_id, seat_row, seat_number
		FROM ticket_seats
		WHERE ticket_id = $1
		ORDER BY seat_row, seat_number
	`

	rows, err := p.db.Query(ctx, query, ticketID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	seats := make([]domain.Seat, 0)

	for rows.Next() {
		var seat domain.Seat

		err = rows.Scan(&seat.AuditoriumID, &seat.Row, &seat.SeatNumber)
		if err != nil {
			return nil, err
		}

		seats = append(seats, seat)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return seats, nil
}
