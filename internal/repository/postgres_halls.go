package repository

import (
	"context"
	"errors"

	"github.com/andriyko-dev/cinema-booking-system/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresHallRepository struct {
	db *pgxpool.Pool
}

func NewPostgresHallRepository(db *pgxpool.Pool) *PostgresHallRepository {
	return &PostgresHallRepository{
		db: db,
	}
}

func (p *PostgresHallRepository) GetAll(ctx context.Context) ([]domain.Hall, error) {
	query := `
		SELECT id, name, description, rows_count, seats_per_row, is_active
		FROM halls
		ORDER BY id
	`

	rows, err := p.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	halls := make([]domain.Hall, 0)

	for rows.Next() {
		var hall domain.Hall

		err = rows.Scan(
			&hall.ID,
			&hall.Name,
			&hall.Description,
			&hall.Rows,
			&hall.SeatsPerRow,
			&hall.Active,
		)
		if err != nil {
			return nil, err
		}

		halls = append(halls, hall)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return halls, nil
}

func (p *PostgresHallRepository) GetById(ctx context.Context, id int) (*domain.Hall, error) {
	query := `
		SELECT id, name, description, rows_count, seats_per_row, is_active
		FROM halls
		WHERE id = $1
	`

	var hall domain.Hall

	err := p.db.QueryRow(ctx, query, id).Scan(
		&hall.ID,
		&hall.Name,
		&hall.Description,
		&hall.Rows,
		&hall.SeatsPerRow,
		&hall.Active,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}

		return nil, err
	}

	return &hall, nil
}

func (p *PostgresHallRepository) GetBySession(ctx context.Context, sessionID int) (*domain.Hall, error) {
	query := `
		SELECT h.id, h.name, h.description, h.rows_count, h.seats_per_row, h.is_active
		FROM halls h
		JOIN sessions s ON s.hall_id = h.id
		WHERE s.id = $1
	`

	var hall domain.Hall

	err := p.db.QueryRow(ctx, query, sessionID).Scan(
		&hall.ID,
		&hall.Name,
		&hall.Description,
		&hall.Rows,
		&hall.SeatsPerRow,
		&hall.Active,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}

		return nil, err
	}

	return &hall, nil
}

func (p *PostgresHallRepository) Create(ctx context.Context, hall *domain.Hall) error {
	query := `
		INSERT INTO halls (name, description, rows_count, seats_per_row, is_active)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	return p.db.QueryRow(
		ctx,
		query,
		hall.Name,
		hall.Description,
		hall.Rows,
		hall.SeatsPerRow,
		hall.Active,
	).Scan(&hall.ID)
}

func (p *PostgresHallRepository) Update(ctx context.Context, hall *domain.Hall) error {
	query := `
		UPDATE halls
		SET name = $1, description = $2, rows_count = $3, seats_per_row = $4, is_active = $5
		WHERE id = $6
	`

	result, err := p.db.Exec(
		ctx,
		query,
		hall.Name,
		hall.Description,
		hall.Rows,
		hall.SeatsPerRow,
		hall.Active,
		hall.ID,
	)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return domain.ErrRecordNotFound
	}

	return nil
}

func (p *PostgresHallRepository) Delete(ctx context.Context, id int) error {
	result, err := p.db.Exec(ctx, `DELETE FROM halls WHERE id = $1`, id)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return domain.ErrRecordNotFound
	}

	return nil
}
