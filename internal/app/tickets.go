package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/andriyko-dev/cinema-booking-system/internal/domain"
	"github.com/andriyko-dev/cinema-booking-system/internal/seatmap"
)

type BookingPageResponse struct {
	SessionId     int            `json:"sessionId"`
	MovieTitle    string         `json:"movieTitle"`
	HallName      string         `json:"hallName"`
	StartTime     time.Time      `json:"startTime"`
	TotalRows     int            `json:"totalRows"`
	SeatsPerRow   int            `json:"seatsPerRow"`
	AvailableRows []int          `json:"availableRows"`
	BookedSeats   []SeatPosition `json:"bookedSeats"`
}

type SeatPosition struct {
	Row  int `json:"row"`
	Seat int `json:"seat"`
}

type AvailableSeatsResponse struct {
	SessionId int   `json:"sessionId"`
	Row       int   `json:"row"`
	Seats     []int `json:"seats"`
}

// BookTicketRequest addresses a seat either by row and seat within the row, or
// by a single seat number counted across the whole hall. All three arrive as
// strings from the booking form.
type BookTicketRequest struct {
	Row        string `json:"row" validate:"omitempty,seat_number"`
	Seat       string `json:"seat" validate:"omitempty,seat_number"`
	SeatNumber string `json:"seatNumber" validate:"omitempty,seat_number"`
}

type ReassignTicketRequest struct {
	Row  string `json:"row" validate:"required,seat_number"`
	Seat string `json:"seat" validate:"required,seat_number"`
}

type TicketResponse struct {
	Id          int       `json:"id"`
	SessionId   int       `json:"sessionId"`
	Row         int       `json:"row"`
	Seat        int       `json:"seat"`
	BookingTime time.Time `json:"bookingTime"`
	Status      string    `json:"status"`
}

type TicketListResponse struct {
	Tickets  []TicketResponse  `json:"tickets"`
	Metadata *MetadataResponse `json:"metadata,omitempty"`
}

func (app *Application) GetBookingPageHandler(w http.ResponseWriter, r *http.Request) {
	sessionId, err := app.readIDParam(r, "sessionId")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	session, err := app.sessionRepo.GetById(r.Context(), sessionId)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	hall, err := app.hallRepo.GetBySession(r.Context(), sessionId)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	rows, err := app.booking.RowsWithAvailableSeats(r.Context(), sessionId, hall.Rows, hall.SeatsPerRow)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	// The seat map is presentation data. A failing lookup leaves it empty
	// rather than blocking the page; BookSeat re-checks everything.
	bookedSeats := []SeatPosition{}

	booked, err := app.ticketRepo.GetBookedBySession(r.Context(), sessionId)
	if err != nil {
		app.contextGetLogger(r).Warn("failed to load booked seats for booking page",
			"sessionId", sessionId, "error", err)
	} else {
		for _, ticket := range booked {
			bookedSeats = append(bookedSeats, SeatPosition{Row: ticket.Row, Seat: ticket.Seat})
		}
	}

	resp := BookingPageResponse{
		SessionId:     sessionId,
		MovieTitle:    session.MovieTitle,
		HallName:      session.HallName,
		StartTime:     session.StartTime,
		TotalRows:     hall.Rows,
		SeatsPerRow:   hall.SeatsPerRow,
		AvailableRows: rows,
		BookedSeats:   bookedSeats,
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) GetAvailableSeatsHandler(w http.ResponseWriter, r *http.Request) {
	sessionId, err := app.readIDParam(r, "sessionId")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	row, err := app.readIDParam(r, "row")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	hall, err := app.hallRepo.GetBySession(r.Context(), sessionId)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	if row > hall.Rows {
		app.badRequestResponse(w, r, fmt.Errorf("row %d does not exist in a hall with %d rows", row, hall.Rows))
		return
	}

	seats, err := app.booking.AvailableSeatsForRow(r.Context(), sessionId, row, hall.SeatsPerRow)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	resp := AvailableSeatsResponse{
		SessionId: sessionId,
		Row:       row,
		Seats:     seats,
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) BookTicketHandler(w http.ResponseWriter, r *http.Request) {
	logger := app.contextGetLogger(r)

	sessionId, err := app.readIDParam(r, "sessionId")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	var input BookTicketRequest

	err = app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.validator.Struct(input)
	if err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	row, seat, err := app.resolveSeat(r.Context(), sessionId, input)
	if err != nil {
		app.bookingErrorResponse(w, r, err)
		return
	}

	userId := app.contextGetUserId(r)

	ticket, err := app.booking.BookSeat(r.Context(), sessionId, userId, row, seat)
	if err != nil {
		app.bookingErrorResponse(w, r, err)
		return
	}

	app.sendBookingConfirmation(r, ticket, userId)
	logger.Info("ticket booked", "ticketId", ticket.ID, "sessionId", sessionId)

	err = app.writeJSON(w, http.StatusCreated, toTicketResponse(ticket), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// resolveSeat turns the request into a concrete (row, seat) address. A global
// seat number takes precedence and is mapped through the hall layout.
func (app *Application) resolveSeat(ctx context.Context, sessionId int, input BookTicketRequest) (int, int, error) {
	if input.SeatNumber != "" {
		hall, err := app.hallRepo.GetBySession(ctx, sessionId)
		if err != nil {
			if errors.Is(err, domain.ErrRecordNotFound) {
				return 0, 0, domain.ErrSessionNotFound
			}

			return 0, 0, err
		}

		seatNumber, _ := strconv.Atoi(input.SeatNumber)

		return seatmap.Position(seatNumber, hall.SeatsPerRow)
	}

	if input.Row == "" || input.Seat == "" {
		return 0, 0, fmt.Errorf("%w: either seatNumber or both row and seat are required", domain.ErrInvalidArgument)
	}

	row, _ := strconv.Atoi(input.Row)
	seat, _ := strconv.Atoi(input.Seat)

	return row, seat, nil
}

func (app *Application) bookingErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrSessionNotFound),
		errors.Is(err, domain.ErrHallNotFound),
		errors.Is(err, domain.ErrRecordNotFound):
		app.notFoundResponse(w, r)
	case errors.Is(err, domain.ErrSeatOutOfBounds):
		app.errorResponse(w, r, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, domain.ErrSeatAlreadyBooked):
		app.seatAlreadyBookedResponse(w, r)
	case errors.Is(err, domain.ErrInvalidArgument):
		app.badRequestResponse(w, r, err)
	default:
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) sendBookingConfirmation(r *http.Request, ticket *domain.Ticket, userId int) {
	go func(ctx context.Context) {
		// new logger for this goroutine, inheriting context from the request
		// important for tracing across async boundaries
		gLogger := app.contextGetLogger(r.WithContext(ctx))

		defer func() {
			if err := recover(); err != nil {
				gLogger.Error("panic occurred during sending booking confirmation mail", "panic", err)
			}
		}()

		sendCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 30*time.Second)
		defer cancel()

		user, err := app.userRepo.GetById(sendCtx, userId)
		if err != nil {
			gLogger.Error("failed to load user for booking confirmation", "error", err)
			return
		}

		session, err := app.sessionRepo.GetById(sendCtx, ticket.SessionID)
		if err != nil {
			gLogger.Error("failed to load session for booking confirmation", "error", err)
			return
		}

		data := map[string]any{
			"Name":       user.Name,
			"MovieTitle": session.MovieTitle,
			"HallName":   session.HallName,
			"StartTime":  session.StartTime,
			"Row":        ticket.Row,
			"Seat":       ticket.Seat,
			"TicketID":   ticket.ID,
		}

		err = app.mailer.Send(user.Email, "booking_confirmation.tmpl", data)
		if err != nil {
			gLogger.Error("failed to send booking confirmation email", "error", err)
		} else {
			gLogger.Info("booking confirmation email sent")
		}
	}(r.Context())
}

func (app *Application) GetMyTicketsHandler(w http.ResponseWriter, r *http.Request) {
	userId := app.contextGetUserId(r)

	tickets, err := app.ticketRepo.GetByUser(r.Context(), userId)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	resp := TicketListResponse{Tickets: toTicketResponses(tickets)}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) ListTicketsHandler(w http.ResponseWriter, r *http.Request) {
	pagination, err := app.readPagination(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	tickets, metadata, err := app.ticketRepo.GetAll(r.Context(), pagination)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	metadataResp := toMetadataResponse(metadata)
	resp := TicketListResponse{
		Tickets:  toTicketResponses(tickets),
		Metadata: &metadataResp,
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) ReassignTicketHandler(w http.ResponseWriter, r *http.Request) {
	ticketId, err := app.readIDParam(r, "ticketId")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	var input ReassignTicketRequest

	err = app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.validator.Struct(input)
	if err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	row, _ := strconv.Atoi(input.Row)
	seat, _ := strconv.Atoi(input.Seat)

	ticket, err := app.booking.ReassignSeat(r.Context(), ticketId, row, seat)
	if err != nil {
		app.bookingErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, toTicketResponse(ticket), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) DeleteTicketHandler(w http.ResponseWriter, r *http.Request) {
	ticketId, err := app.readIDParam(r, "ticketId")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.ticketRepo.Delete(r.Context(), ticketId)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func toTicketResponse(ticket *domain.Ticket) TicketResponse {
	return TicketResponse{
		Id:          ticket.ID,
		SessionId:   ticket.SessionID,
		Row:         ticket.Row,
		Seat:        ticket.Seat,
		BookingTime: ticket.BookingTime,
		Status:      string(ticket.Status),
	}
}

func toTicketResponses(tickets []domain.Ticket) []TicketResponse {
	responses := make([]TicketResponse, len(tickets))

	for i := range tickets {
		responses[i] = toTicketResponse(&tickets[i])
	}

	return responses
}
