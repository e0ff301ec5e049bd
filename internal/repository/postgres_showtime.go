package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/karavil/cinema-booking-api/internal/domain"
	"github.com/shopspring/decimal"
)

type PostgresShowtimeRepository struct {
	db *pgxpool.Pool
}

func NewPostgresShowtimeRepository(db *pgxpool.Pool) *PostgresShowtimeRepository {
	return &PostgresShowtimeRepository{
		db: db,
	}
}

func (p *PostgresShowtimeRepository) GetWithMovieById(ctx context.Context, id int) (*domain.Showtime, error) {
	query := `
		SELECT
			s.id,
			s.auditorium_id,
			s.session_date,
			s.base_price,
			m.id,
			m.title,
			m.imdb_id,
			m.stars,
			m.release_date
		FROM showtimes s
		JOIN movies m ON s.movie_id = m.id
		WHERE s.id = $1
	`

	var showtime domain.Showtime
	var basePrice pgtype.Numeric

	err := p.db.QueryRow(ctx, query, id).Scan(
		&showtime.ID,
		&showtime.AuditoriumID,
		&showtime.SessionDate,
		&basePrice,
		&showtime.Movie.ID,
		&showtime.Movie.Title,
		&showtime.Movie.ImdbID,
		&showtime.Movie.Stars,
		&showtime.Movie.ReleaseDate,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}

		return nil, err
	}

	price, err := numericToDecimal(basePrice)
	if err != nil {
		return nil, err
	}

	showtime.BasePrice = price

	return &showtime, nil
}

func (p *PostgresShowtimeRepository) Create(ctx context.Context, showtime *domain.Showtime) error {
	err := runInTx(ctx, p.db, func(tx pgx.Tx) error {
		query := `
			INSERT INTO movies (title, imdb_id, stars, release_date)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (imdb_id) DO UPDATE
			SET title = EXCLUDED.title, stars = EXCLUDED.stars, release_date = EXCLUDED.release_date
			RETURNING id
		`

		err := tx.QueryRow(
			ctx,
			query,
			showtime.Movie.Title,
			showtime.Movie.ImdbID,
			showtime.Movie.Stars,
			showtime.Movie.ReleaseDate).Scan(&showtime.Movie.ID)

		if err != nil {
			return err
		}

		query = `
			INSERT INTO showtimes (movie_id, auditorium_id, session_date, base_price)
			VALUES ($1, $2, $3, $4)
			RETURNING id
		`

		return tx.QueryRow(
			ctx,
			query,
			showtime.Movie.ID,
			showtime.AuditoriumID,
			showtime.SessionDate,
			showtime.BasePrice.String()).Scan(&showtime.ID)
	})

	if err != nil {
		// The auditorium was checked before the insert; a FK violation here
		// means it was removed in between.
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.ForeignKeyViolation {
			return domain.ErrRecordNotFound
		}

		return err
	}

	return nil
}

func numericToDecimal(n pgtype.Numeric) (decimal.Decimal, error) {
	if !n.Valid {
		return decimal.Zero, nil
	}

	value, err := n.Value()
	if err != nil {
		return decimal.Zero, err
	}

	s, ok := value.(string)
	if !ok {
		return decimal.Zero, nil
	}

	return decimal.NewFromString(s)
}
