package repository

import (
	"context"
	"errors"
	"time"

	"github.com/andriyko-dev/cinema-booking-system/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresSessionRepository struct {
	db *pgxpool.Pool
}

func NewPostgresSessionRepository(db *pgxpool.Pool) *PostgresSessionRepository {
	return &PostgresSessionRepository{
		db: db,
	}
}

func (p *PostgresSessionRepository) GetAll(
	ctx context.Context,
	filters domain.SessionFilters,
	pagination domain.Pagination) ([]domain.Session, *domain.Metadata, error) {

	query := `
		SELECT
			COUNT(*) OVER(),
			s.id, s.movie_id, s.hall_id, m.title, h.name,
			s.start_time, s.end_time, s.price
		FROM sessions s
		JOIN movies m ON s.movie_id = m.id
		JOIN halls h ON s.hall_id = h.id
		WHERE ($1::date IS NULL OR s.start_time::date = $1)
		  AND ($2::int IS NULL OR s.movie_id = $2)
		ORDER BY s.start_time
		LIMIT $3 OFFSET $4
	`

	rows, err := p.db.Query(ctx, query, filters.Date, filters.MovieID, pagination.Limit(), pagination.Offset())
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	sessions := make([]domain.Session, 0)
	totalRecords := 0

	for rows.Next() {
		var session domain.Session

		err = rows.Scan(
			&totalRecords,
			&session.ID,
			&session.MovieID,
			&session.HallID,
			&session.MovieTitle,
			&session.HallName,
			&session.StartTime,
			&session.EndTime,
			&session.Price,
		)
		if err != nil {
			return nil, nil, err
		}

		sessions = append(sessions, session)
	}

	if err = rows.Err(); err != nil {
		return nil, nil, err
	}

	metadata := domain.NewMetadata(totalRecords, pagination.Page, pagination.PageSize)

	return sessions, metadata, nil
}

func (p *PostgresSessionRepository) GetById(ctx context.Context, id int) (*domain.Session, error) {
	query := `
		SELECT
			s.id, s.movie_id, s.hall_id, m.title, h.name,
			s.start_time, s.end_time, s.price
		FROM sessions s
		JOIN movies m ON s.movie_id = m.id
		JOIN halls h ON s.hall_id = h.id
		WHERE s.id = $1
	`

	var session domain.Session

	err := p.db.QueryRow(ctx, query, id).Scan(
		&session.ID,
		&session.MovieID,
		&session.HallID,
		&session.MovieTitle,
		&session.HallName,
		&session.StartTime,
		&session.EndTime,
		&session.Price,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}

		return nil, err
	}

	return &session, nil
}

// Create inserts the session after re-checking hall availability inside the
// same transaction, so two admins scheduling the same slot cannot both
// succeed.
func (p *PostgresSessionRepository) Create(ctx context.Context, session *domain.Session) error {
	return runInTx(ctx, p.db, func(tx pgx.Tx) error {
		available, err := isHallAvailable(ctx, tx, session.HallID, session.StartTime, session.EndTime, 0)
		if err != nil {
			return err
		}
		if !available {
			return domain.ErrHallNotAvailable
		}

		query := `
			INSERT INTO sessions (movie_id, hall_id, start_time, end_time, price)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id
		`

		return tx.QueryRow(
			ctx,
			query,
			session.MovieID,
			session.HallID,
			session.StartTime,
			session.EndTime,
			session.Price,
		).Scan(&session.ID)
	})
}

func (p *PostgresSessionRepository) Update(ctx context.Context, session *domain.Session) error {
	return runInTx(ctx, p.db, func(tx pgx.Tx) error {
		available, err := isHallAvailable(ctx, tx, session.HallID, session.StartTime, session.EndTime, session.ID)
		if err != nil {
			return err
		}
		if !available {
			return domain.ErrHallNotAvailable
		}

		query := `
			UPDATE sessions
			SET movie_id = $1, hall_id = $2, start_time = $3, end_time = $4, price = $5
			WHERE id = $6
		`

		result, err := tx.Exec(
			ctx,
			query,
			session.MovieID,
			session.HallID,
			session.StartTime,
			session.EndTime,
			session.Price,
			session.ID,
		)
		if err != nil {
			return err
		}

		if result.RowsAffected() == 0 {
			return domain.ErrRecordNotFound
		}

		return nil
	})
}

func (p *PostgresSessionRepository) Delete(ctx context.Context, id int) error {
	result, err := p.db.Exec(ctx, `DELETE FROM sessions WHERE id = $1`, id)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return domain.ErrRecordNotFound
	}

	return nil
}

func (p *PostgresSessionRepository) IsHallAvailable(
	ctx context.Context,
	hallID int,
	start, end time.Time,
	excludeSessionID int) (bool, error) {

	return isHallAvailable(ctx, p.db, hallID, start, end, excludeSessionID)
}

type querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Two sessions overlap when their [start, end) intervals intersect.
func isHallAvailable(
	ctx context.Context,
	q querier,
	hallID int,
	start, end time.Time,
	excludeSessionID int) (bool, error) {

	query := `
		SELECT NOT EXISTS (
			SELECT 1
			FROM sessions
			WHERE hall_id = $1
			  AND id <> $2
			  AND start_time < $4
			  AND end_time > $3
		)
	`

	var available bool

	err := q.QueryRow(ctx, query, hallID, excludeSessionID, start, end).Scan(&available)
	if err != nil {
		return false, err
	}

	return available, nil
}

func runInTx(ctx context.Context, db *pgxpool.Pool, fn func(tx pgx.Tx) error) error {
	var txOptions pgx.TxOptions

	tx, err := db.BeginTx(ctx, txOptions)
	if err != nil {
		return err
	}

	err = fn(tx)
	if err == nil {
		return tx.Commit(ctx)
	}

	rollbackErr := tx.Rollback(ctx)
	if rollbackErr != nil {
		return errors.Join(err, rollbackErr)
	}

	return err
}
