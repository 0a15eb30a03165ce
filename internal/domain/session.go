package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Session is a scheduled screening of a movie in a hall. EndTime is always
// derived from StartTime plus the movie duration, never supplied by callers.
type Session struct {
	ID         int
	MovieID    int
	HallID     int
	MovieTitle string
	HallName   string
	StartTime  time.Time
	EndTime    time.Time
	Price      decimal.Decimal
}

type SessionFilters struct {
	Date    *time.Time
	MovieID *int
}

type SessionRepository interface {
	GetAll(ctx context.Context, filters SessionFilters, pagination Pagination) ([]Session, *Metadata, error)
	GetById(ctx context.Context, id int) (*Session, error)
	Create(ctx context.Context, session *Session) error
	Update(ctx context.Context, session *Session) error
	Delete(ctx context.Context, id int) error

	// IsHallAvailable reports whether no other session in the hall overlaps
	// [start, end). excludeSessionID skips the session being edited; pass 0
	// when creating.
	IsHallAvailable(ctx context.Context, hallID int, start, end time.Time, excludeSessionID int) (bool, error)
}
