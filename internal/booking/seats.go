package booking

import (
	"time"

	"github.com/karavil/cinema-booking-api/internal/domain"
)

type seatPosition struct {
	row    int
	number int
}

// FindContiguousBlock returns the first run of numberOfSeats free seats that
// sit in a single row with consecutive seat numbers, or nil when no such run
// exists.
//
// A seat counts as occupied when it belongs to any ticket that is paid, or
// unpaid but still inside the hold window at the given instant. Rows are
// visited in the auditorium's natural order and within a row the window with
// the lowest starting seat number wins; the search stops at the first match.
func FindContiguousBlock(
	auditoriumSeats []domain.Seat,
	tickets []domain.Ticket,
	numberOfSeats int,
	now time.Time) []domain.Seat {

	if numberOfSeats < 1 {
		return nil
	}

	occupied := occupiedSeats(tickets, now)

	for _, row := range groupByRow(auditoriumSeats) {
		if block := scanRow(row, occupied, numberOfSeats); block != nil {
			return block
		}
	}

	return nil
}

func occupiedSeats(tickets []domain.Ticket, now time.Time) map[seatPosition]bool {
	occupied := make(map[seatPosition]bool)

	for _, ticket := range tickets {
		if !ticket.OccupiesSeatsAt(now) {
			continue
		}

		for _, seat := range ticket.Seats {
			occupied[seatPosition{row: seat.Row, number: seat.SeatNumber}] = true
		}
	}

	return occupied
}

// groupByRow splits the seat list into rows. Seats are pre-sorted by row and
// seat number, so a single pass is enough.
func groupByRow(seats []domain.Seat) [][]domain.Seat {
	var rows [][]domain.Seat

	start := 0
	for i := 1; i <= len(seats); i++ {
		if i == len(seats) || seats[i].Row != seats[start].Row {
			rows = append(rows, seats[start:i])
			start = i
		}
	}

	return rows
}

func scanRow(row []domain.Seat, occupied map[seatPosition]bool, numberOfSeats int) []domain.Seat {
	for start := 0; start+numberOfSeats <= len(row); start++ {
		if fits(row[start:start+numberOfSeats], occupied) {
			return row[start : start+numberOfSeats]
		}
	}

	return nil
}

func fits(window []domain.Seat, occupied map[seatPosition]bool) bool {
	for i, seat := range window {
		if occupied[seatPosition{row: seat.Row, number: seat.SeatNumber}] {
			return false
		}

		// Layouts may have gaps in the numbering (aisles); a block must not
		// span one.
		if i > 0 && seat.SeatNumber != window[i-1].SeatNumber+1 {
			return false
		}
	}

	return true
}
