package app

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/karavil/cinema-booking-api/api"
	"github.com/karavil/cinema-booking-api/internal/domain"
	appvalidator "github.com/karavil/cinema-booking-api/internal/validator"
)

const ErrInternalServer = "The server encountered a problem and could not process your request"

func (app *application) logError(r *http.Request, err error) {
	var (
		method = r.Method
		uri    = r.URL.RequestURI()
	)

	app.logger.Error(err.Error(), "method", method, "uri", uri)
}

// The errorResponse() method is a generic helper for sending JSON-formatted error
// messages to the client with a given status code.
func (app *application) errorResponse(w http.ResponseWriter, r *http.Request, status int, message string) {
	resp := api.ErrorResponse{
		Message:   message,
		RequestId: middleware.GetReqID(r.Context()),
		Timestamp: time.Now(),
	}

	err := app.writeJSON(w, status, resp, nil)
	if err != nil {
		app.logError(r, err)
		w.WriteHeader(500)
	}
}

func (app *application) serverErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.logError(r, err)

	app.errorResponse(w, r, http.StatusInternalServerError, ErrInternalServer)
}

func (app *application) notFoundResponse(w http.ResponseWriter, r *http.Request) {
	message := "The requested resource not found"
	app.errorResponse(w, r, http.StatusNotFound, message)
}

func (app *application) badRequestResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.errorResponse(w, r, http.StatusBadRequest, err.Error())
}

func (app *application) conflictResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.errorResponse(w, r, http.StatusConflict, err.Error())
}

func (app *application) failedValidationResponse(w http.ResponseWriter, r *http.Request, err error) {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		app.serverErrorResponse(w, r, err)
		return
	}

	fieldErrors := make([]api.ValidationError, 0, len(validationErrors))
	for _, fieldError := range validationErrors {
		fieldErrors = append(fieldErrors, api.ValidationError{
			Field: fieldError.Field(),
			Issue: appvalidator.ValidationMessage(fieldError),
		})
	}

	resp := api.ValidationErrorResponse{
		Message:          "Validation failed",
		ValidationErrors: fieldErrors,
		RequestId:        middleware.GetReqID(r.Context()),
		Timestamp:        time.Now(),
	}

	writeErr := app.writeJSON(w, http.StatusUnprocessableEntity, resp, nil)
	if writeErr != nil {
		app.logError(r, writeErr)
		w.WriteHeader(500)
	}
}

// domainErrorResponse maps the typed business errors onto client-error
// responses. Not-found kinds become 404, conflicts become 409; anything else,
// including domain.UnexpectedError, is a server fault.
func (app *application) domainErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	var (
		showtimeNotFound   domain.ShowtimeNotFoundError
		auditoriumNotFound domain.AuditoriumNotFoundError
		movieNotFound      domain.MovieNotFoundError
		resNotFound        domain.ReservationNotFoundError
		resExpired         domain.ReservationExpiredError
		resConfirmed       domain.ReservationAlreadyConfirmedError
		seatsNotAvailable  domain.SeatsNotAvailableError
	)

	switch {
	case errors.As(err, &showtimeNotFound),
		errors.As(err, &auditoriumNotFound),
		errors.As(err, &movieNotFound),
		errors.As(err, &resNotFound):
		app.errorResponse(w, r, http.StatusNotFound, err.Error())

	case errors.As(err, &resExpired),
		errors.As(err, &resConfirmed),
		errors.As(err, &seatsNotAvailable):
		app.conflictResponse(w, r, err)

	default:
		app.serverErrorResponse(w, r, err)
	}
}
