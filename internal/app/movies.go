package app

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/andriyko-dev/cinema-booking-system/internal/domain"
)

const (
	DefaultPage     = 1
	DefaultPageSize = 20
)

type MovieResponse struct {
	Id          int       `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Genre       string    `json:"genre"`
	Duration    int       `json:"duration"`
	PosterUrl   string    `json:"posterUrl"`
	ReleaseDate time.Time `json:"releaseDate"`
}

type MovieListResponse struct {
	Movies   []MovieResponse  `json:"movies"`
	Metadata MetadataResponse `json:"metadata"`
}

type MetadataResponse struct {
	CurrentPage  int `json:"currentPage"`
	FirstPage    int `json:"firstPage"`
	LastPage     int `json:"lastPage"`
	PageSize     int `json:"pageSize"`
	TotalRecords int `json:"totalRecords"`
}

type CreateMovieRequest struct {
	Title       string    `json:"title" validate:"required,max=200"`
	Description string    `json:"description" validate:"max=2000"`
	Genre       string    `json:"genre" validate:"required,max=100"`
	Duration    int       `json:"duration" validate:"required,gt=0"`
	PosterUrl   string    `json:"posterUrl" validate:"omitempty,url"`
	ReleaseDate time.Time `json:"releaseDate" validate:"required"`
}

type UpdateMovieRequest struct {
	Title       *string    `json:"title" validate:"omitempty,max=200"`
	Description *string    `json:"description" validate:"omitempty,max=2000"`
	Genre       *string    `json:"genre" validate:"omitempty,max=100"`
	Duration    *int       `json:"duration" validate:"omitempty,gt=0"`
	PosterUrl   *string    `json:"posterUrl" validate:"omitempty,url"`
	ReleaseDate *time.Time `json:"releaseDate"`
}

func (app *Application) ListMoviesHandler(w http.ResponseWriter, r *http.Request) {
	pagination, err := app.readPagination(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	movies, metadata, err := app.movieRepo.GetAll(r.Context(), pagination)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	resp := MovieListResponse{
		Movies:   toMovieResponses(movies),
		Metadata: toMetadataResponse(metadata),
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) GetMovieHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r, "movieId")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	movie, err := app.movieRepo.GetById(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	err = app.writeJSON(w, http.StatusOK, toMovieResponse(movie), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) CreateMovieHandler(w http.ResponseWriter, r *http.Request) {
	var input CreateMovieRequest

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

	movie := domain.Movie{
		Title:       input.Title,
		Description: input.Description,
		Genre:       input.Genre,
		Duration:    input.Duration,
		PosterUrl:   input.PosterUrl,
		ReleaseDate: input.ReleaseDate,
	}

	err = app.movieRepo.Create(r.Context(), &movie)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusCreated, toMovieResponse(&movie), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) UpdateMovieHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r, "movieId")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	var input UpdateMovieRequest

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

	movie, err := app.movieRepo.GetById(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	if input.Title != nil {
		movie.Title = *input.Title
	}
	if input.Description != nil {
		movie.Description = *input.Description
	}
	if input.Genre != nil {
		movie.Genre = *input.Genre
	}
	if input.Duration != nil {
		movie.Duration = *input.Duration
	}
	if input.PosterUrl != nil {
		movie.PosterUrl = *input.PosterUrl
	}
	if input.ReleaseDate != nil {
		movie.ReleaseDate = *input.ReleaseDate
	}

	err = app.movieRepo.Update(r.Context(), movie)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	err = app.writeJSON(w, http.StatusOK, toMovieResponse(movie), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) DeleteMovieHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r, "movieId")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.movieRepo.Delete(r.Context(), id)
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

func (app *Application) readPagination(r *http.Request) (domain.Pagination, error) {
	page, err := app.readIntQuery(r, "page", DefaultPage)
	if err != nil {
		return domain.Pagination{}, err
	}

	pageSize, err := app.readIntQuery(r, "pageSize", DefaultPageSize)
	if err != nil {
		return domain.Pagination{}, err
	}

	if page < 1 || pageSize < 1 || pageSize > 100 {
		return domain.Pagination{}, fmt.Errorf("page must be positive and pageSize must be between 1 and 100")
	}

	return domain.Pagination{Page: page, PageSize: pageSize}, nil
}

func toMovieResponse(movie *domain.Movie) MovieResponse {
	return MovieResponse{
		Id:          movie.ID,
		Title:       movie.Title,
		Description: movie.Description,
		Genre:       movie.Genre,
		Duration:    movie.Duration,
		PosterUrl:   movie.PosterUrl,
		ReleaseDate: movie.ReleaseDate,
	}
}

func toMovieResponses(movies []domain.Movie) []MovieResponse {
	responses := make([]MovieResponse, len(movies))

	for i := range movies {
		responses[i] = toMovieResponse(&movies[i])
	}

	return responses
}

func toMetadataResponse(metadata *domain.Metadata) MetadataResponse {
	if metadata == nil {
		return MetadataResponse{}
	}

	return MetadataResponse{
		CurrentPage:  metadata.CurrentPage,
		FirstPage:    metadata.FirstPage,
		LastPage:     metadata.LastPage,
		PageSize:     metadata.PageSize,
		TotalRecords: metadata.TotalRecords,
	}
}
