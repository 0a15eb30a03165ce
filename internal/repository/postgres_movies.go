package repository

import (
	"context"
	"errors"

	"github.com/andriyko-dev/cinema-booking-system/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresMovieRepository struct {
	db *pgxpool.Pool
}

func NewPostgresMovieRepository(db *pgxpool.Pool) *PostgresMovieRepository {
	return &PostgresMovieRepository{
		db: db,
	}
}

func (p *PostgresMovieRepository) GetAll(
	ctx context.Context,
	pagination domain.Pagination) ([]domain.Movie, *domain.Metadata, error) {

	query := `
		SELECT COUNT(*) OVER(), id, title, description, genre, duration_minutes, poster_url, release_date
		FROM movies
		ORDER BY title
		LIMIT $1 OFFSET $2
	`

	rows, err := p.db.Query(ctx, query, pagination.Limit(), pagination.Offset())
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	movies := make([]domain.Movie, 0)
	totalRecords := 0

	for rows.Next() {
		var movie domain.Movie

		err = rows.Scan(
			&totalRecords,
			&movie.ID,
			&movie.Title,
			&movie.Description,
			&movie.Genre,
			&movie.Duration,
			&movie.PosterUrl,
			&movie.ReleaseDate,
		)
		if err != nil {
			return nil, nil, err
		}

		movies = append(movies, movie)
	}

	if err = rows.Err(); err != nil {
		return nil, nil, err
	}

	metadata := domain.NewMetadata(totalRecords, pagination.Page, pagination.PageSize)

	return movies, metadata, nil
}

func (p *PostgresMovieRepository) GetById(ctx context.Context, id int) (*domain.Movie, error) {
	query := `
		SELECT id, title, description, genre, duration_minutes, poster_url, release_date
		FROM movies
		WHERE id = $1
	`

	var movie domain.Movie

	err := p.db.QueryRow(ctx, query, id).Scan(
		&movie.ID,
		&movie.Title,
		&movie.Description,
		&movie.Genre,
		&movie.Duration,
		&movie.PosterUrl,
		&movie.ReleaseDate,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}

		return nil, err
	}

	return &movie, nil
}

func (p *PostgresMovieRepository) Create(ctx context.Context, movie *domain.Movie) error {
	query := `
		INSERT INTO movies (title, description, genre, duration_minutes, poster_url, release_date)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`

	return p.db.QueryRow(
		ctx,
		query,
		movie.Title,
		movie.Description,
		movie.Genre,
		movie.Duration,
		movie.PosterUrl,
		movie.ReleaseDate,
	).Scan(&movie.ID)
}

func (p *PostgresMovieRepository) Update(ctx context.Context, movie *domain.Movie) error {
	query := `
		UPDATE movies
		SET title = $1, description = $2, genre = $3, duration_minutes = $4, poster_url = $5, release_date = $6
		WHERE id = $7
	`

	result, err := p.db.Exec(
		ctx,
		query,
		movie.Title,
		movie.Description,
		movie.Genre,
		movie.Duration,
		movie.PosterUrl,
		movie.ReleaseDate,
		movie.ID,
	)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return domain.ErrRecordNotFound
	}

	return nil
}

func (p *PostgresMovieRepository) Delete(ctx context.Context, id int) error {
	result, err := p.db.Exec(ctx, `DELETE FROM movies WHERE id = $1`, id)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return domain.ErrRecordNotFound
	}

	return nil
}
