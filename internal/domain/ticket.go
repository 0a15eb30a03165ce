package domain

import (
	"context"
	"time"
)

type TicketStatus string

const (
	TicketBooked    TicketStatus = "Booked"
	TicketPending   TicketStatus = "Pending"
	TicketCancelled TicketStatus = "Cancelled"
)

func (s TicketStatus) IsValid() bool {
	switch s {
	case TicketBooked, TicketPending, TicketCancelled:
		return true
	}

	return false
}

type Ticket struct {
	ID          int
	SessionID   int
	UserID      int
	Row         int
	Seat        int
	BookingTime time.Time
	Status      TicketStatus
}

type TicketRepository interface {
	// GetBookedBySession returns tickets for the session with status Booked,
	// ordered by (row, seat).
	GetBookedBySession(ctx context.Context, sessionID int) ([]Ticket, error)
	GetById(ctx context.Context, id int) (*Ticket, error)
	GetByUser(ctx context.Context, userID int) ([]Ticket, error)
	GetAll(ctx context.Context, pagination Pagination) ([]Ticket, *Metadata, error)

	// Create persists the ticket and returns ErrSeatAlreadyBooked when the
	// store-level uniqueness of (session, row, seat) for Booked tickets is
	// violated.
	Create(ctx context.Context, ticket *Ticket) error
	Update(ctx context.Context, ticket *Ticket) error
	Delete(ctx context.Context, id int) error
}
