package app

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/karavil/cinema-booking-api/api"
	"github.com/karavil/cinema-booking-api/internal/event"
)

func (app *application) ReserveSeatsHandler(w http.ResponseWriter, r *http.Request) {
	var input api.ReserveSeatsRequest

	err := app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.validator.Struct(input)
	if err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	summary, err := app.reservations.Reserve(r.Context(), input.ShowtimeId, input.NumberOfSeats)
	if err != nil {
		app.domainErrorResponse(w, r, err)
		return
	}

	resp := api.ReserveSeatsResponse{
		ReservationId: summary.ReservationID.String(),
		AuditoriumId:  summary.AuditoriumID,
		MovieTitle:    summary.MovieTitle,
		NumberOfSeats: summary.NumberOfSeats,
	}

	err = app.writeJSON(w, http.StatusCreated, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) ConfirmReservationHandler(w http.ResponseWriter, r *http.Request) {
	reservationId, err := uuid.Parse(chi.URLParam(r, "reservationId"))
	if err != nil {
		app.badRequestResponse(w, r, fmt.Errorf("invalid reservation ID"))
		return
	}

	err = app.reservations.ConfirmReservation(r.Context(), reservationId)
	if err != nil {
		app.domainErrorResponse(w, r, err)
		return
	}

	// Best-effort: a broker outage must not fail a confirmed payment.
	err = app.publisher.Publish(r.Context(), event.ReservationConfirmedQueue, event.ReservationConfirmedEvent{
		ReservationID: reservationId.String(),
		ConfirmedAt:   time.Now(),
	})
	if err != nil {
		app.logger.Error("failed to publish reservation confirmed event",
			"reservation_id", reservationId, "error", err)
	}

	w.WriteHeader(http.StatusNoContent)
}
