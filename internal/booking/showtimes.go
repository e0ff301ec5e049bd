package booking

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"time"

	"github.com/karavil/cinema-booking-api/internal/catalog"
	"github.com/karavil/cinema-booking-api/internal/domain"
	"github.com/shopspring/decimal"
)

// ShowtimeService creates showtimes, resolving the movie through the catalog
// client and pinning a denormalized copy of the catalog record next to the
// showtime row.
type ShowtimeService struct {
	catalog        catalog.Client
	showtimeRepo   domain.ShowtimeRepository
	auditoriumRepo domain.AuditoriumRepository
	logger         *slog.Logger
}

func NewShowtimeService(
	catalogClient catalog.Client,
	showtimeRepo domain.ShowtimeRepository,
	auditoriumRepo domain.AuditoriumRepository,
	logger *slog.Logger) *ShowtimeService {

	return &ShowtimeService{
		catalog:        catalogClient,
		showtimeRepo:   showtimeRepo,
		auditoriumRepo: auditoriumRepo,
		logger:         logger,
	}
}

func (s *ShowtimeService) Create(
	ctx context.Context,
	movieID string,
	sessionDate time.Time,
	auditoriumID int,
	basePrice decimal.Decimal) (int, error) {

	movie, err := s.catalog.GetByID(ctx, movieID)
	if err != nil {
		return 0, err
	}

	if movie == nil {
		return 0, domain.MovieNotFoundError{MovieID: movieID}
	}

	_, err = s.auditoriumRepo.Get(ctx, auditoriumID)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return 0, domain.AuditoriumNotFoundError{AuditoriumID: auditoriumID}
		}

		return 0, err
	}

	releaseDate, err := releaseDateFromYear(movie.Year)
	if err != nil {
		return 0, domain.UnexpectedError{Err: err}
	}

	showtime := domain.Showtime{
		AuditoriumID: auditoriumID,
		SessionDate:  sessionDate,
		BasePrice:    basePrice,
		Movie: domain.Movie{
			Title:       movie.Title,
			ImdbID:      movie.ID,
			Stars:       movie.Crew,
			ReleaseDate: releaseDate,
		},
	}

	err = s.showtimeRepo.Create(ctx, &showtime)
	if err != nil {
		return 0, domain.UnexpectedError{Err: err}
	}

	s.logger.Info("showtime created",
		"showtime_id", showtime.ID,
		"movie_id", movieID,
		"auditorium_id", auditoriumID,
	)

	return showtime.ID, nil
}

// The catalog only exposes a release year; it is pinned to January 1st.
func releaseDateFromYear(year string) (time.Time, error) {
	y, err := strconv.Atoi(year)
	if err != nil {
		return time.Time{}, err
	}

	return time.Date(y, time.January, 1, 0, 0, 0, 0, time.UTC), nil
}
