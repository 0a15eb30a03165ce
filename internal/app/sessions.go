package app

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/andriyko-dev/cinema-booking-system/internal/domain"
)

type SessionResponse struct {
	Id         int             `json:"id"`
	MovieId    int             `json:"movieId"`
	HallId     int             `json:"hallId"`
	MovieTitle string          `json:"movieTitle"`
	HallName   string          `json:"hallName"`
	StartTime  time.Time       `json:"startTime"`
	EndTime    time.Time       `json:"endTime"`
	Price      decimal.Decimal `json:"price"`
}

type SessionListResponse struct {
	Sessions []SessionResponse `json:"sessions"`
	Metadata MetadataResponse  `json:"metadata"`
}

type CreateSessionRequest struct {
	MovieId   int             `json:"movieId" validate:"required,gt=0"`
	HallId    int             `json:"hallId" validate:"required,gt=0"`
	StartTime time.Time       `json:"startTime" validate:"required"`
	Price     decimal.Decimal `json:"price" validate:"required"`
}

type UpdateSessionRequest struct {
	MovieId   *int             `json:"movieId" validate:"omitempty,gt=0"`
	HallId    *int             `json:"hallId" validate:"omitempty,gt=0"`
	StartTime *time.Time       `json:"startTime"`
	Price     *decimal.Decimal `json:"price"`
}

func (app *Application) ListSessionsHandler(w http.ResponseWriter, r *http.Request) {
	pagination, err := app.readPagination(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	var filters domain.SessionFilters

	if s := r.URL.Query().Get("date"); s != "" {
		date, err := time.Parse("2006-01-02", s)
		if err != nil {
			app.badRequestResponse(w, r, fmt.Errorf("date must be in YYYY-MM-DD format"))
			return
		}
		filters.Date = &date
	}

	movieId, err := app.readIntQuery(r, "movieId", 0)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}
	if movieId > 0 {
		filters.MovieID = &movieId
	}

	sessions, metadata, err := app.sessionRepo.GetAll(r.Context(), filters, pagination)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	resp := SessionListResponse{
		Sessions: toSessionResponses(sessions),
		Metadata: toMetadataResponse(metadata),
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) GetSessionHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r, "sessionId")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	session, err := app.sessionRepo.GetById(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	err = app.writeJSON(w, http.StatusOK, toSessionResponse(session), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) CreateSessionHandler(w http.ResponseWriter, r *http.Request) {
	var input CreateSessionRequest

	err := app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.validator.Struct(input)
	if err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	movie, err := app.movieRepo.GetById(r.Context(), input.MovieId)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.badRequestResponse(w, r, fmt.Errorf("movie %d does not exist", input.MovieId))
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	hall, err := app.hallRepo.GetById(r.Context(), input.HallId)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.badRequestResponse(w, r, fmt.Errorf("hall %d does not exist", input.HallId))
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	if !hall.Active {
		app.errorResponse(w, r, http.StatusUnprocessableEntity, domain.ErrHallInactive.Error())
		return
	}

	session := domain.Session{
		MovieID:   input.MovieId,
		HallID:    input.HallId,
		StartTime: input.StartTime,
		EndTime:   input.StartTime.Add(time.Duration(movie.Duration) * time.Minute),
		Price:     input.Price,
	}

	err = app.sessionRepo.Create(r.Context(), &session)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrHallNotAvailable):
			app.errorResponse(w, r, http.StatusConflict, "The hall is already booked for this time slot")
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	session.MovieTitle = movie.Title
	session.HallName = hall.Name

	err = app.writeJSON(w, http.StatusCreated, toSessionResponse(&session), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) UpdateSessionHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r, "sessionId")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	var input UpdateSessionRequest

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

	session, err := app.sessionRepo.GetById(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	if input.MovieId != nil {
		session.MovieID = *input.MovieId
	}
	if input.HallId != nil {
		session.HallID = *input.HallId
	}
	if input.StartTime != nil {
		session.StartTime = *input.StartTime
	}
	if input.Price != nil {
		session.Price = *input.Price
	}

	movie, err := app.movieRepo.GetById(r.Context(), session.MovieID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.badRequestResponse(w, r, fmt.Errorf("movie %d does not exist", session.MovieID))
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	hall, err := app.hallRepo.GetById(r.Context(), session.HallID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.badRequestResponse(w, r, fmt.Errorf("hall %d does not exist", session.HallID))
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	if input.HallId != nil && !hall.Active {
		app.errorResponse(w, r, http.StatusUnprocessableEntity, domain.ErrHallInactive.Error())
		return
	}

	// The end time always follows from the start time and the movie runtime.
	session.EndTime = session.StartTime.Add(time.Duration(movie.Duration) * time.Minute)

	err = app.sessionRepo.Update(r.Context(), session)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		case errors.Is(err, domain.ErrHallNotAvailable):
			app.errorResponse(w, r, http.StatusConflict, "The hall is already booked for this time slot")
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	session.MovieTitle = movie.Title
	session.HallName = hall.Name

	err = app.writeJSON(w, http.StatusOK, toSessionResponse(session), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) DeleteSessionHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r, "sessionId")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.sessionRepo.Delete(r.Context(), id)
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

func toSessionResponse(session *domain.Session) SessionResponse {
	return SessionResponse{
		Id:         session.ID,
		MovieId:    session.MovieID,
		HallId:     session.HallID,
		MovieTitle: session.MovieTitle,
		HallName:   session.HallName,
		StartTime:  session.StartTime,
		EndTime:    session.EndTime,
		Price:      session.Price,
	}
}

func toSessionResponses(sessions []domain.Session) []SessionResponse {
	responses := make([]SessionResponse, len(sessions))

	for i := range sessions {
		responses[i] = toSessionResponse(&sessions[i])
	}

	return responses
}
