// Package api holds the request and response types of the HTTP surface.
package api

import (
	"time"

	"github.com/shopspring/decimal"
)

type ErrorResponse struct {
	Message   string    `json:"message"`
	RequestId string    `json:"requestId,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

type ValidationError struct {
	Field string `json:"field"`
	Issue string `json:"issue"`
}

type ValidationErrorResponse struct {
	Message          string            `json:"message"`
	ValidationErrors []ValidationError `json:"validationErrors"`
	RequestId        string            `json:"requestId,omitempty"`
	Timestamp        time.Time         `json:"timestamp"`
}

type CreateShowtimeRequest struct {
	MovieId      string          `json:"movieId" validate:"required"`
	SessionDate  time.Time       `json:"sessionDate" validate:"required"`
	AuditoriumId int             `json:"auditoriumId" validate:"required,gt=0"`
	BasePrice    decimal.Decimal `json:"basePrice"`
}

type CreateShowtimeResponse struct {
	ShowtimeId int `json:"showtimeId"`
}

type ReserveSeatsRequest struct {
	ShowtimeId    int `json:"showtimeId" validate:"required,gt=0"`
	NumberOfSeats int `json:"numberOfSeats" validate:"required,gt=0"`
}

type ReserveSeatsResponse struct {
	ReservationId string `json:"reservationId"`
	AuditoriumId  int    `json:"auditoriumId"`
	MovieTitle    string `json:"movieTitle"`
	NumberOfSeats int    `json:"numberOfSeats"`
}

type MovieResponse struct {
	Id     string `json:"id"`
	Title  string `json:"title"`
	Year   string `json:"year"`
	Rating string `json:"rating"`
	Crew   string `json:"crew"`
}

type MovieListResponse struct {
	Movies []MovieResponse `json:"movies"`
}

type SystemInfo struct {
	Version     string `json:"version"`
	Environment string `json:"environment"`
}

type HealthcheckResponse struct {
	Status     string     `json:"status"`
	SystemInfo SystemInfo `json:"systemInfo"`
}
