package repository

import (
	"context"
	"errors"

	"github.com/andriyko-dev/cinema-booking-system/internal/domain"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresTicketRepository struct {
	db *pgxpool.Pool
}

func NewPostgresTicketRepository(db *pgxpool.Pool) *PostgresTicketRepository {
	return &PostgresTicketRepository{
		db: db,
	}
}

func (p *PostgresTicketRepository) GetBookedBySession(ctx context.Context, sessionID int) ([]domain.Ticket, error) {
	query := `
		SELECT id, session_id, user_id, row_number, seat_number, booking_time, status
		FROM tickets
		WHERE session_id = $1 AND status = 'Booked'
		ORDER BY row_number, seat_number
	`

	rows, err := p.db.Query(ctx, query, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tickets := make([]domain.Ticket, 0)

	for rows.Next() {
		var ticket domain.Ticket

		err = rows.Scan(
			&ticket.ID,
			&ticket.SessionID,
			&ticket.UserID,
			&ticket.Row,
			&ticket.Seat,
			&ticket.BookingTime,
			&ticket.Status,
		)
		if err != nil {
			return nil, err
		}

		tickets = append(tickets, ticket)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return tickets, nil
}

func (p *PostgresTicketRepository) GetById(ctx context.Context, id int) (*domain.Ticket, error) {
	query := `
		SELECT id, session_id, user_id, row_number, seat_number, booking_time, status
		FROM tickets
		WHERE id = $1
	`

	var ticket domain.Ticket

	err := p.db.QueryRow(ctx, query, id).Scan(
		&ticket.ID,
		&ticket.SessionID,
		&ticket.UserID,
		&ticket.Row,
		&ticket.Seat,
		&ticket.BookingTime,
		&ticket.Status,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}

		return nil, err
	}

	return &ticket, nil
}

func (p *PostgresTicketRepository) GetByUser(ctx context.Context, userID int) ([]domain.Ticket, error) {
	query := `
		SELECT id, session_id, user_id, row_number, seat_number, booking_time, status
		FROM tickets
		WHERE user_id = $1
		ORDER BY booking_time DESC
	`

	rows, err := p.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tickets := make([]domain.Ticket, 0)

	for rows.Next() {
		var ticket domain.Ticket

		err = rows.Scan(
			&ticket.ID,
			&ticket.SessionID,
			&ticket.UserID,
			&ticket.Row,
			&ticket.Seat,
			&ticket.BookingTime,
			&ticket.Status,
		)
		if err != nil {
			return nil, err
		}

		tickets = append(tickets, ticket)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return tickets, nil
}

func (p *PostgresTicketRepository) GetAll(
	ctx context.Context,
	pagination domain.Pagination) ([]domain.Ticket, *domain.Metadata, error) {

	query := `
		SELECT COUNT(*) OVER(), id, session_id, user_id, row_number, seat_number, booking_time, status
		FROM tickets
		ORDER BY booking_time DESC
		LIMIT $1 OFFSET $2
	`

	rows, err := p.db.Query(ctx, query, pagination.Limit(), pagination.Offset())
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	tickets := make([]domain.Ticket, 0)
	totalRecords := 0

	for rows.Next() {
		var ticket domain.Ticket

		err = rows.Scan(
			&totalRecords,
			&ticket.ID,
			&ticket.SessionID,
			&ticket.UserID,
			&ticket.Row,
			&ticket.Seat,
			&ticket.BookingTime,
			&ticket.Status,
		)
		if err != nil {
			return nil, nil, err
		}

		tickets = append(tickets, ticket)
	}

	if err = rows.Err(); err != nil {
		return nil, nil, err
	}

	metadata := domain.NewMetadata(totalRecords, pagination.Page, pagination.PageSize)

	return tickets, metadata, nil
}

// Create inserts the ticket. The tickets table carries a partial unique index
// on (session_id, row_number, seat_number) for status = 'Booked', so a booking
// that loses the race surfaces here as ErrSeatAlreadyBooked.
func (p *PostgresTicketRepository) Create(ctx context.Context, ticket *domain.Ticket) error {
	query := `
		INSERT INTO tickets (session_id, user_id, row_number, seat_number, booking_time, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`

	err := p.db.QueryRow(
		ctx,
		query,
		ticket.SessionID,
		ticket.UserID,
		ticket.Row,
		ticket.Seat,
		ticket.BookingTime,
		ticket.Status,
	).Scan(&ticket.ID)

	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrSeatAlreadyBooked
		}

		return err
	}

	return nil
}

func (p *PostgresTicketRepository) Update(ctx context.Context, ticket *domain.Ticket) error {
	query := `
		UPDATE tickets
		SET row_number = $1, seat_number = $2, status = $3
		WHERE id = $4
	`

	result, err := p.db.Exec(ctx, query, ticket.Row, ticket.Seat, ticket.Status, ticket.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrSeatAlreadyBooked
		}

		return err
	}

	if result.RowsAffected() == 0 {
		return domain.ErrRecordNotFound
	}

	return nil
}

func (p *PostgresTicketRepository) Delete(ctx context.Context, id int) error {
	result, err := p.db.Exec(ctx, `DELETE FROM tickets WHERE id = $1`, id)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return domain.ErrRecordNotFound
	}

	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError

	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation
}
