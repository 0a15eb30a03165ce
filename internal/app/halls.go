package app

import (
	"errors"
	"net/http"

	"github.com/andriyko-dev/cinema-booking-system/internal/domain"
)

type HallResponse struct {
	Id          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Rows        int    `json:"rows"`
	SeatsPerRow int    `json:"seatsPerRow"`
	Capacity    int    `json:"capacity"`
	Active      bool   `json:"active"`
}

type HallListResponse struct {
	Halls []HallResponse `json:"halls"`
}

type CreateHallRequest struct {
	Name        string `json:"name" validate:"required,max=100"`
	Description string `json:"description" validate:"max=1000"`
	Rows        int    `json:"rows" validate:"required,gt=0,lte=100"`
	SeatsPerRow int    `json:"seatsPerRow" validate:"required,gt=0,lte=100"`
	Active      bool   `json:"active"`
}

type UpdateHallRequest struct {
	Name        *string `json:"name" validate:"omitempty,max=100"`
	Description *string `json:"description" validate:"omitempty,max=1000"`
	Rows        *int    `json:"rows" validate:"omitempty,gt=0,lte=100"`
	SeatsPerRow *int    `json:"seatsPerRow" validate:"omitempty,gt=0,lte=100"`
	Active      *bool   `json:"active"`
}

func (app *Application) ListHallsHandler(w http.ResponseWriter, r *http.Request) {
	halls, err := app.hallRepo.GetAll(r.Context())
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	resp := HallListResponse{Halls: toHallResponses(halls)}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) GetHallHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r, "hallId")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	hall, err := app.hallRepo.GetById(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	err = app.writeJSON(w, http.StatusOK, toHallResponse(hall), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) CreateHallHandler(w http.ResponseWriter, r *http.Request) {
	var input CreateHallRequest

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

	hall := domain.Hall{
		Name:        input.Name,
		Description: input.Description,
		Rows:        input.Rows,
		SeatsPerRow: input.SeatsPerRow,
		Active:      input.Active,
	}

	err = app.hallRepo.Create(r.Context(), &hall)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusCreated, toHallResponse(&hall), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) UpdateHallHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r, "hallId")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	var input UpdateHallRequest

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

	hall, err := app.hallRepo.GetById(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	if input.Name != nil {
		hall.Name = *input.Name
	}
	if input.Description != nil {
		hall.Description = *input.Description
	}
	if input.Rows != nil {
		hall.Rows = *input.Rows
	}
	if input.SeatsPerRow != nil {
		hall.SeatsPerRow = *input.SeatsPerRow
	}
	if input.Active != nil {
		hall.Active = *input.Active
	}

	err = app.hallRepo.Update(r.Context(), hall)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	err = app.writeJSON(w, http.StatusOK, toHallResponse(hall), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) DeleteHallHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r, "hallId")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.hallRepo.Delete(r.Context(), id)
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

func toHallResponse(hall *domain.Hall) HallResponse {
	return HallResponse{
		Id:          hall.ID,
		Name:        hall.Name,
		Description: hall.Description,
		Rows:        hall.Rows,
		SeatsPerRow: hall.SeatsPerRow,
		Capacity:    hall.Capacity(),
		Active:      hall.Active,
	}
}

func toHallResponses(halls []domain.Hall) []HallResponse {
	responses := make([]HallResponse, len(halls))

	for i := range halls {
		responses[i] = toHallResponse(&halls[i])
	}

	return responses
}
