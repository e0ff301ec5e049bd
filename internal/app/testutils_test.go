package app

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/karavil/cinema-booking-api/api"
	"github.com/karavil/cinema-booking-api/internal/booking"
	"github.com/karavil/cinema-booking-api/internal/domain"
	"github.com/karavil/cinema-booking-api/internal/event"
	"github.com/karavil/cinema-booking-api/internal/mocks"
	appvalidator "github.com/karavil/cinema-booking-api/internal/validator"
	"github.com/stretchr/testify/require"
)

// testMocks bundles the doubles a test application is wired with so suites
// can program expectations per test case.
type testMocks struct {
	showtimeRepo   *mocks.MockShowtimeRepo
	auditoriumRepo *mocks.MockAuditoriumRepo
	ticketRepo     *mocks.MockTicketRepo
	catalogClient  *mocks.MockCatalogClient
}

func newTestApplication(t *testing.T) (*application, *testMocks) {
	t.Helper()

	m := &testMocks{
		showtimeRepo:   new(mocks.MockShowtimeRepo),
		auditoriumRepo: new(mocks.MockAuditoriumRepo),
		ticketRepo:     new(mocks.MockTicketRepo),
		catalogClient:  &mocks.MockCatalogClient{},
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	app := &application{
		config:         config{env: "test"},
		logger:         logger,
		validator:      appvalidator.NewValidator(),
		showtimeRepo:   m.showtimeRepo,
		auditoriumRepo: m.auditoriumRepo,
		ticketRepo:     m.ticketRepo,
		catalogClient:  m.catalogClient,
		publisher:      event.NopPublisher{},
	}

	app.reservations = booking.NewReservationService(m.showtimeRepo, m.auditoriumRepo, m.ticketRepo, logger)
	app.showtimes = booking.NewShowtimeService(m.catalogClient, m.showtimeRepo, m.auditoriumRepo, logger)

	return app, m
}

func executeRequest(app *application, req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	app.routes().ServeHTTP(rr, req)

	return rr
}

func checkErrorResponse(t *testing.T, rr *httptest.ResponseRecorder, wantStatus int, wantMessage string) {
	t.Helper()

	require.Equal(t, wantStatus, rr.Code)

	var resp api.ErrorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.Equal(t, wantMessage, resp.Message)
}

// auditoriumLayout builds a rectangular seat map ordered by row then seat
// number, the order the reservation engine relies on.
func auditoriumLayout(auditoriumID, rows, seatsPerRow int) []domain.Seat {
	seats := make([]domain.Seat, 0, rows*seatsPerRow)
	for row := 1; row <= rows; row++ {
		for number := 1; number <= seatsPerRow; number++ {
			seats = append(seats, domain.Seat{
				AuditoriumID: auditoriumID,
				Row:          row,
				SeatNumber:   number,
			})
		}
	}

	return seats
}
