package domain

import "context"

type Hall struct {
	ID          int
	Name        string
	Description string
	Rows        int
	SeatsPerRow int
	Active      bool
}

// Capacity is the total addressable seat space of the hall.
func (h Hall) Capacity() int {
	return h.Rows * h.SeatsPerRow
}

// Contains reports whether (row, seat) addresses a seat inside the hall layout.
func (h Hall) Contains(row, seat int) bool {
	return row >= 1 && row <= h.Rows && seat >= 1 && seat <= h.SeatsPerRow
}

type HallRepository interface {
	GetAll(ctx context.Context) ([]Hall, error)
	GetById(ctx context.Context, id int) (*Hall, error)
	GetBySession(ctx context.Context, sessionID int) (*Hall, error)
	Create(ctx context.Context, hall *Hall) error
	Update(ctx context.Context, hall *Hall) error
	Delete(ctx context.Context, id int) error
}
