package app

import (
	"net/http"

	"github.com/karavil/cinema-booking-api/api"
	"github.com/karavil/cinema-booking-api/internal/event"
)

func (app *application) CreateShowtimeHandler(w http.ResponseWriter, r *http.Request) {
	var input api.CreateShowtimeRequest

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

	showtimeId, err := app.showtimes.Create(r.Context(), input.MovieId, input.SessionDate, input.AuditoriumId, input.BasePrice)
	if err != nil {
		app.domainErrorResponse(w, r, err)
		return
	}

	err = app.publisher.Publish(r.Context(), event.ShowtimeCreatedQueue, event.ShowtimeCreatedEvent{
		ShowtimeID:   showtimeId,
		MovieID:      input.MovieId,
		AuditoriumID: input.AuditoriumId,
		SessionDate:  input.SessionDate,
	})
	if err != nil {
		app.logger.Error("failed to publish showtime created event",
			"showtime_id", showtimeId, "error", err)
	}

	resp := api.CreateShowtimeResponse{
		ShowtimeId: showtimeId,
	}

	err = app.writeJSON(w, http.StatusCreated, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}
