// Package seatmap holds the pure seat-grid arithmetic used by the booking
// workflow. A hall is a rectangle of rows × seatsPerRow seats; seats are
// addressed either by (row, seat) coordinates or by a 1-based linear index.
package seatmap

import (
	"fmt"

	"github.com/andriyko-dev/cinema-booking-system/internal/domain"
)

// Position converts a 1-based linear seat index into 1-based (row, seat)
// coordinates for a hall with seatsPerRow seats in each row.
func Position(globalSeat, seatsPerRow int) (row, seat int, err error) {
	if seatsPerRow <= 0 {
		return 0, 0, fmt.Errorf("%w: seats per row must be greater than zero", domain.ErrInvalidArgument)
	}
	if globalSeat <= 0 {
		return 0, 0, fmt.Errorf("%w: seat number must be greater than zero", domain.ErrInvalidArgument)
	}

	row = (globalSeat-1)/seatsPerRow + 1
	seat = (globalSeat-1)%seatsPerRow + 1

	return row, seat, nil
}

// Index is the inverse of Position: it maps (row, seat) back to the linear
// seat index.
func Index(row, seat, seatsPerRow int) (int, error) {
	if seatsPerRow <= 0 || row <= 0 || seat <= 0 {
		return 0, fmt.Errorf("%w: row, seat and seats per row must be greater than zero", domain.ErrInvalidArgument)
	}
	if seat > seatsPerRow {
		return 0, fmt.Errorf("%w: seat %d exceeds row width %d", domain.ErrInvalidArgument, seat, seatsPerRow)
	}

	return (row-1)*seatsPerRow + seat, nil
}

// AvailableSeatsInRow returns the seat numbers 1..seatsPerRow that are not in
// booked, in ascending order. Booked entries outside the row width are
// ignored.
func AvailableSeatsInRow(booked []int, seatsPerRow int) []int {
	taken := make(map[int]bool, len(booked))
	for _, s := range booked {
		taken[s] = true
	}

	available := make([]int, 0, seatsPerRow)
	for s := 1; s <= seatsPerRow; s++ {
		if !taken[s] {
			available = append(available, s)
		}
	}

	return available
}

// RowsWithCapacity returns the rows 1..totalRows whose booked-seat count is
// strictly less than seatsPerRow, in ascending order.
func RowsWithCapacity(bookedByRow map[int]int, totalRows, seatsPerRow int) []int {
	rows := make([]int, 0, totalRows)
	for row := 1; row <= totalRows; row++ {
		if bookedByRow[row] < seatsPerRow {
			rows = append(rows, row)
		}
	}

	return rows
}
