package app

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/karavil/cinema-booking-api/api"
	"github.com/karavil/cinema-booking-api/internal/domain"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type ReservationHandlersTestSuite struct {
	suite.Suite
	app   *application
	mocks *testMocks
}

func (s *ReservationHandlersTestSuite) SetupTest() {
	s.app, s.mocks = newTestApplication(s.T())
}

func TestReservationHandlersSuite(t *testing.T) {
	suite.Run(t, new(ReservationHandlersTestSuite))
}

func (s *ReservationHandlersTestSuite) reserve(body string) *http.Request {
	req, err := http.NewRequest(http.MethodPost, "/reservations", bytes.NewBufferString(body))
	s.Require().NoError(err)

	return req
}

func (s *ReservationHandlersTestSuite) TestReserveSeats() {
	showtime := &domain.Showtime{
		ID:           1,
		AuditoriumID: 7,
		Movie:        domain.Movie{ID: 3, Title: "Wild Strawberries"},
	}
	auditorium := &domain.Auditorium{ID: 7, Seats: auditoriumLayout(7, 2, 10)}

	s.Run("rejects malformed JSON", func() {
		s.SetupTest()

		rr := executeRequest(s.app, s.reserve(`{"showtimeId": }`))

		s.Equal(http.StatusBadRequest, rr.Code)
	})

	s.Run("rejects a non-positive seat count", func() {
		s.SetupTest()

		rr := executeRequest(s.app, s.reserve(`{"showtimeId": 1, "numberOfSeats": -2}`))

		s.Equal(http.StatusUnprocessableEntity, rr.Code)

		var resp api.ValidationErrorResponse
		s.Require().NoError(json.Unmarshal(rr.Body.Bytes(), &resp))
		s.Require().Len(resp.ValidationErrors, 1)
		s.Equal("NumberOfSeats", resp.ValidationErrors[0].Field)
	})

	s.Run("returns 404 for an unknown showtime", func() {
		s.SetupTest()

		s.mocks.showtimeRepo.On("GetWithMovieById", mock.Anything, 99).Return(nil, domain.ErrRecordNotFound)

		rr := executeRequest(s.app, s.reserve(`{"showtimeId": 99, "numberOfSeats": 2}`))

		checkErrorResponse(s.T(), rr, http.StatusNotFound, domain.ShowtimeNotFoundError{ShowtimeID: 99}.Error())
	})

	s.Run("returns 409 when no contiguous block exists", func() {
		s.SetupTest()

		s.mocks.showtimeRepo.On("GetWithMovieById", mock.Anything, 1).Return(showtime, nil)
		s.mocks.auditoriumRepo.On("Get", mock.Anything, 7).Return(auditorium, nil)
		s.mocks.ticketRepo.On("GetEnrichedByShowtime", mock.Anything, 1).Return([]domain.Ticket{}, nil)

		rr := executeRequest(s.app, s.reserve(`{"showtimeId": 1, "numberOfSeats": 11}`))

		s.Equal(http.StatusConflict, rr.Code)
		s.mocks.ticketRepo.AssertNotCalled(s.T(), "Create")
	})

	s.Run("creates a reservation", func() {
		s.SetupTest()

		ticket := &domain.Ticket{
			ID:         uuid.New(),
			ShowtimeID: 1,
			CreatedAt:  time.Now(),
			Seats:      auditorium.Seats[:3],
		}

		s.mocks.showtimeRepo.On("GetWithMovieById", mock.Anything, 1).Return(showtime, nil)
		s.mocks.auditoriumRepo.On("Get", mock.Anything, 7).Return(auditorium, nil)
		s.mocks.ticketRepo.On("GetEnrichedByShowtime", mock.Anything, 1).Return([]domain.Ticket{}, nil)
		s.mocks.ticketRepo.On("Create", mock.Anything, showtime, auditorium.Seats[:3]).Return(ticket, nil)

		rr := executeRequest(s.app, s.reserve(`{"showtimeId": 1, "numberOfSeats": 3}`))

		s.Require().Equal(http.StatusCreated, rr.Code)

		var resp api.ReserveSeatsResponse
		s.Require().NoError(json.Unmarshal(rr.Body.Bytes(), &resp))
		s.Equal(ticket.ID.String(), resp.ReservationId)
		s.Equal(7, resp.AuditoriumId)
		s.Equal("Wild Strawberries", resp.MovieTitle)
		s.Equal(3, resp.NumberOfSeats)
	})
}

func (s *ReservationHandlersTestSuite) TestConfirmReservation() {
	reservationId := uuid.New()
	target := fmt.Sprintf("/reservations/%s/confirmation", reservationId)

	s.Run("rejects a malformed reservation ID", func() {
		s.SetupTest()

		req, err := http.NewRequest(http.MethodPost, "/reservations/not-a-uuid/confirmation", nil)
		s.Require().NoError(err)

		rr := executeRequest(s.app, req)

		checkErrorResponse(s.T(), rr, http.StatusBadRequest, "invalid reservation ID")
	})

	s.Run("returns 404 for an unknown reservation", func() {
		s.SetupTest()

		s.mocks.ticketRepo.On("Get", mock.Anything, reservationId).Return(nil, domain.ErrRecordNotFound)

		req, err := http.NewRequest(http.MethodPost, target, nil)
		s.Require().NoError(err)

		rr := executeRequest(s.app, req)

		checkErrorResponse(s.T(), rr, http.StatusNotFound, domain.ReservationNotFoundError{ReservationID: reservationId}.Error())
	})

	s.Run("returns 409 for an expired hold", func() {
		s.SetupTest()

		ticket := &domain.Ticket{ID: reservationId, CreatedAt: time.Now().Add(-time.Hour)}
		s.mocks.ticketRepo.On("Get", mock.Anything, reservationId).Return(ticket, nil)

		req, err := http.NewRequest(http.MethodPost, target, nil)
		s.Require().NoError(err)

		rr := executeRequest(s.app, req)

		s.Equal(http.StatusConflict, rr.Code)
		s.mocks.ticketRepo.AssertNotCalled(s.T(), "ConfirmPayment")
	})

	s.Run("confirms a pending hold", func() {
		s.SetupTest()

		ticket := &domain.Ticket{ID: reservationId, CreatedAt: time.Now().Add(-time.Minute)}
		s.mocks.ticketRepo.On("Get", mock.Anything, reservationId).Return(ticket, nil)
		s.mocks.ticketRepo.On("ConfirmPayment", mock.Anything, ticket).Return(nil)

		req, err := http.NewRequest(http.MethodPost, target, nil)
		s.Require().NoError(err)

		rr := executeRequest(s.app, req)

		s.Equal(http.StatusNoContent, rr.Code)
		s.Empty(rr.Body.Bytes())
		s.mocks.ticketRepo.AssertExpectations(s.T())
	})
}
