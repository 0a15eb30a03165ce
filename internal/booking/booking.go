// Package booking implements seat availability checks and the ticket booking
// workflow on top of the session, hall and ticket stores.
package booking

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/andriyko-dev/cinema-booking-system/internal/domain"
	"github.com/andriyko-dev/cinema-booking-system/internal/seatmap"
)

type Service struct {
	logger   *slog.Logger
	tickets  domain.TicketRepository
	sessions domain.SessionRepository
	halls    domain.HallRepository
}

func NewService(
	logger *slog.Logger,
	tickets domain.TicketRepository,
	sessions domain.SessionRepository,
	halls domain.HallRepository) *Service {

	return &Service{
		logger:   logger,
		tickets:  tickets,
		sessions: sessions,
		halls:    halls,
	}
}

// IsSeatAvailable reports whether (row, seat) is free for the session. A
// session with no booked tickets is fully available. Store errors propagate:
// this check gates a write and must not guess.
func (s *Service) IsSeatAvailable(ctx context.Context, sessionID, row, seat int) (bool, error) {
	if sessionID <= 0 || row <= 0 || seat <= 0 {
		return false, fmt.Errorf("%w: session, row and seat must be greater than zero", domain.ErrInvalidArgument)
	}

	booked, err := s.tickets.GetBookedBySession(ctx, sessionID)
	if err != nil {
		return false, err
	}

	for _, t := range booked {
		if t.Row == row && t.Seat == seat {
			return false, nil
		}
	}

	return true, nil
}

// AvailableSeatsForRow returns the free seat numbers of one row, ascending.
func (s *Service) AvailableSeatsForRow(ctx context.Context, sessionID, row, seatsPerRow int) ([]int, error) {
	if sessionID <= 0 || row <= 0 || seatsPerRow <= 0 {
		return nil, fmt.Errorf("%w: session, row and seats per row must be greater than zero", domain.ErrInvalidArgument)
	}

	booked, err := s.tickets.GetBookedBySession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	bookedInRow := make([]int, 0, len(booked))
	for _, t := range booked {
		if t.Row == row {
			bookedInRow = append(bookedInRow, t.Seat)
		}
	}

	return seatmap.AvailableSeatsInRow(bookedInRow, seatsPerRow), nil
}

// RowsWithAvailableSeats returns the rows that still have at least one free
// seat. The row list is presentation data, so a failing or inconsistent
// ticket lookup degrades to "all rows available" instead of blocking the
// booking page; the definitive check happens again in BookSeat.
func (s *Service) RowsWithAvailableSeats(ctx context.Context, sessionID, totalRows, seatsPerRow int) ([]int, error) {
	if sessionID <= 0 || totalRows <= 0 || seatsPerRow <= 0 {
		return nil, fmt.Errorf("%w: session, rows and seats per row must be greater than zero", domain.ErrInvalidArgument)
	}

	booked, err := s.tickets.GetBookedBySession(ctx, sessionID)
	if err != nil {
		s.logger.Warn("ticket lookup failed, assuming all rows available",
			"session_id", sessionID, "error", err)

		return allRows(totalRows), nil
	}

	if len(booked) == 0 {
		return allRows(totalRows), nil
	}

	bookedByRow := make(map[int]int)
	for _, t := range booked {
		bookedByRow[t.Row]++
	}

	rows := seatmap.RowsWithCapacity(bookedByRow, totalRows, seatsPerRow)

	if len(rows) == 0 && len(booked) < totalRows*seatsPerRow {
		s.logger.Warn("booked tickets inconsistent with hall capacity, assuming all rows available",
			"session_id", sessionID, "booked", len(booked))

		return allRows(totalRows), nil
	}

	return rows, nil
}

func allRows(totalRows int) []int {
	rows := make([]int, totalRows)
	for i := range rows {
		rows[i] = i + 1
	}

	return rows
}

// BookSeat reserves (row, seat) in the session's hall for the user. The
// availability check is a fast path only; the ticket store enforces seat
// uniqueness and reports a lost race as ErrSeatAlreadyBooked.
func (s *Service) BookSeat(ctx context.Context, sessionID, userID, row, seat int) (*domain.Ticket, error) {
	if sessionID <= 0 || userID <= 0 || row <= 0 || seat <= 0 {
		return nil, fmt.Errorf("%w: session, user, row and seat must be greater than zero", domain.ErrInvalidArgument)
	}

	session, err := s.sessions.GetById(ctx, sessionID)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return nil, domain.ErrSessionNotFound
		}

		return nil, err
	}

	hall, err := s.halls.GetById(ctx, session.HallID)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return nil, domain.ErrHallNotFound
		}

		return nil, err
	}

	if !hall.Contains(row, seat) {
		return nil, fmt.Errorf("%w: row %d seat %d in a %dx%d hall",
			domain.ErrSeatOutOfBounds, row, seat, hall.Rows, hall.SeatsPerRow)
	}

	available, err := s.IsSeatAvailable(ctx, sessionID, row, seat)
	if err != nil {
		return nil, err
	}
	if !available {
		return nil, domain.ErrSeatAlreadyBooked
	}

	ticket := &domain.Ticket{
		SessionID:   sessionID,
		UserID:      userID,
		Row:         row,
		Seat:        seat,
		BookingTime: time.Now().UTC(),
		Status:      domain.TicketBooked,
	}

	err = s.tickets.Create(ctx, ticket)
	if err != nil {
		return nil, err
	}

	s.logger.Info("ticket booked",
		"ticket_id", ticket.ID, "session_id", sessionID, "row", row, "seat", seat)

	return ticket, nil
}

// ReassignSeat moves an existing ticket to a new (row, seat). Bounds and
// availability are re-checked only when the seat actually changes, so an
// edit that keeps the ticket on its own seat is not rejected.
func (s *Service) ReassignSeat(ctx context.Context, ticketID, row, seat int) (*domain.Ticket, error) {
	if ticketID <= 0 || row <= 0 || seat <= 0 {
		return nil, fmt.Errorf("%w: ticket, row and seat must be greater than zero", domain.ErrInvalidArgument)
	}

	ticket, err := s.tickets.GetById(ctx, ticketID)
	if err != nil {
		return nil, err
	}

	if ticket.Row != row || ticket.Seat != seat {
		hall, err := s.halls.GetBySession(ctx, ticket.SessionID)
		if err != nil {
			if errors.Is(err, domain.ErrRecordNotFound) {
				return nil, domain.ErrHallNotFound
			}

			return nil, err
		}

		if !hall.Contains(row, seat) {
			return nil, fmt.Errorf("%w: row %d seat %d in a %dx%d hall",
				domain.ErrSeatOutOfBounds, row, seat, hall.Rows, hall.SeatsPerRow)
		}

		available, err := s.IsSeatAvailable(ctx, ticket.SessionID, row, seat)
		if err != nil {
			return nil, err
		}
		if !available {
			return nil, domain.ErrSeatAlreadyBooked
		}
	}

	ticket.Row = row
	ticket.Seat = seat

	err = s.tickets.Update(ctx, ticket)
	if err != nil {
		return nil, err
	}

	return ticket, nil
}
