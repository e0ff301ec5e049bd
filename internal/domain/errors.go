package domain

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var (
	ErrRecordNotFound = errors.New("record not found")
)

// ShowtimeNotFoundError is returned when a showtime ID does not resolve to a row.
type ShowtimeNotFoundError struct {
	ShowtimeID int
}

func (e ShowtimeNotFoundError) Error() string {
	return fmt.Sprintf("showtime with id %d not found", e.ShowtimeID)
}

type AuditoriumNotFoundError struct {
	AuditoriumID int
}

func (e AuditoriumNotFoundError) Error() string {
	return fmt.Sprintf("auditorium with id %d not found", e.AuditoriumID)
}

type MovieNotFoundError struct {
	MovieID string
}

func (e MovieNotFoundError) Error() string {
	return fmt.Sprintf("movie with id %s not found", e.MovieID)
}

type ReservationNotFoundError struct {
	ReservationID uuid.UUID
}

func (e ReservationNotFoundError) Error() string {
	return fmt.Sprintf("reservation with id %s not found", e.ReservationID)
}

// ReservationExpiredError is returned when payment is attempted on a hold whose
// ten-minute window has elapsed.
type ReservationExpiredError struct {
	ReservationID uuid.UUID
}

func (e ReservationExpiredError) Error() string {
	return fmt.Sprintf("reservation with id %s has expired", e.ReservationID)
}

type ReservationAlreadyConfirmedError struct {
	ReservationID uuid.UUID
}

func (e ReservationAlreadyConfirmedError) Error() string {
	return fmt.Sprintf("reservation with id %s has already been confirmed", e.ReservationID)
}

type SeatsNotAvailableError struct {
	NumberOfSeats int
	ShowtimeID    int
}

func (e SeatsNotAvailableError) Error() string {
	return fmt.Sprintf(
		"could not find %d contiguous seats available for showtime with id %d",
		e.NumberOfSeats,
		e.ShowtimeID,
	)
}

// UnexpectedError wraps faults that are neither a not-found nor a business
// conflict: persistence failures, cache write failures and the like.
type UnexpectedError struct {
	Err error
}

func (e UnexpectedError) Error() string {
	if e.Err == nil {
		return "unexpected error"
	}

	return fmt.Sprintf("unexpected error: %s", e.Err)
}

func (e UnexpectedError) Unwrap() error {
	return e.Err
}
