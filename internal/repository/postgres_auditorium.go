package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/karavil/cinema-booking-api/internal/domain"
)

type PostgresAuditoriumRepository struct {
	db *pgxpool.Pool
}

func NewPostgresAuditoriumRepository(db *pgxpool.Pool) *PostgresAuditoriumRepository {
	return &PostgresAuditoriumRepository{
		db: db,
	}
}

func (p *PostgresAuditoriumRepository) Get(ctx context.Context, id int) (*domain.Auditorium, error) {
	query := `
		SELECT id, name
		FROM auditoriums
		WHERE id = $1
	`

	var auditorium domain.Auditorium

	err := p.db.QueryRow(ctx, query, id).Scan(&auditorium.ID, &auditorium.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}

		return nil, err
	}

	seats, err := p.retrieveSeats(ctx, id)
	if err != nil {
		return nil, err
	}

	auditorium.Seats = seats

	return &auditorium, nil
}

func (p *PostgresAuditoriumRepository) retrieveSeats(ctx context.Context, auditoriumID int) ([]domain.Seat, error) {
	query := `
		SELECT auditorium_id, seat_row, seat_number
		FROM seats
		WHERE auditorium_id = $1
		ORDER BY seat_row, seat_number
	`

	rows, err := p.db.Query(ctx, query, auditoriumID)
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
