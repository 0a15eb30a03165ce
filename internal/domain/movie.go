package domain

import (
	"context"
	"time"
)

type Movie struct {
	ID          int
	Title       string
	Description string
	Genre       string
	Duration    int
	PosterUrl   string
	ReleaseDate time.Time
}

type MovieRepository interface {
	GetAll(ctx context.Context, pagination Pagination) ([]Movie, *Metadata, error)
	GetById(ctx context.Context, id int) (*Movie, error)
	Create(ctx context.Context, movie *Movie) error
	Update(ctx context.Context, movie *Movie) error
	Delete(ctx context.Context, id int) error
}
