package app

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/andriyko-dev/cinema-booking-system/internal/domain"
	"github.com/andriyko-dev/cinema-booking-system/internal/mocks"
)

type SessionsTestSuite struct {
	suite.Suite
	app         *Application
	sessionRepo *mocks.MockSessionRepo
	movieRepo   *mocks.MockMovieRepo
	hallRepo    *mocks.MockHallRepo
}

func (s *SessionsTestSuite) SetupTest() {
	s.sessionRepo = new(mocks.MockSessionRepo)
	s.movieRepo = new(mocks.MockMovieRepo)
	s.hallRepo = new(mocks.MockHallRepo)

	s.app = newTestApplication(func(a *Application) {
		a.sessionRepo = s.sessionRepo
		a.movieRepo = s.movieRepo
		a.hallRepo = s.hallRepo
	})
}

func TestSessionsSuite(t *testing.T) {
	suite.Run(t, new(SessionsTestSuite))
}

func (s *SessionsTestSuite) TestCreateSessionHandler() {
	startTime := time.Date(2026, 9, 12, 18, 30, 0, 0, time.UTC)

	movie := &domain.Movie{ID: 10, Title: "Interstellar", Duration: 169}
	hall := &domain.Hall{ID: 2, Name: "Main Hall", Rows: 10, SeatsPerRow: 12, Active: true}

	tests := []struct {
		name           string
		body           CreateSessionRequest
		setupMocks     func()
		wantStatus     int
		wantErrMessage string
	}{
		{
			name: "should create a session with the end time derived from the movie runtime",
			body: CreateSessionRequest{
				MovieId:   10,
				HallId:    2,
				StartTime: startTime,
				Price:     decimal.NewFromInt(12),
			},
			setupMocks: func() {
				s.movieRepo.On("GetById", mock.Anything, 10).Return(movie, nil)
				s.hallRepo.On("GetById", mock.Anything, 2).Return(hall, nil)
				s.sessionRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Session")).
					Run(func(args mock.Arguments) {
						args.Get(1).(*domain.Session).ID = 3
					}).
					Return(nil)
			},
			wantStatus: http.StatusCreated,
		},
		{
			name: "should fail when the movie does not exist",
			body: CreateSessionRequest{
				MovieId:   99,
				HallId:    2,
				StartTime: startTime,
				Price:     decimal.NewFromInt(12),
			},
			setupMocks: func() {
				s.movieRepo.On("GetById", mock.Anything, 99).Return(nil, domain.ErrRecordNotFound)
			},
			wantStatus:     http.StatusBadRequest,
			wantErrMessage: "movie 99 does not exist",
		},
		{
			name: "should fail when the hall is not active",
			body: CreateSessionRequest{
				MovieId:   10,
				HallId:    4,
				StartTime: startTime,
				Price:     decimal.NewFromInt(12),
			},
			setupMocks: func() {
				s.movieRepo.On("GetById", mock.Anything, 10).Return(movie, nil)
				s.hallRepo.On("GetById", mock.Anything, 4).Return(&domain.Hall{ID: 4, Rows: 5, SeatsPerRow: 5}, nil)
			},
			wantStatus:     http.StatusUnprocessableEntity,
			wantErrMessage: domain.ErrHallInactive.Error(),
		},
		{
			name: "should fail when the hall is booked for an overlapping session",
			body: CreateSessionRequest{
				MovieId:   10,
				HallId:    2,
				StartTime: startTime,
				Price:     decimal.NewFromInt(12),
			},
			setupMocks: func() {
				s.movieRepo.On("GetById", mock.Anything, 10).Return(movie, nil)
				s.hallRepo.On("GetById", mock.Anything, 2).Return(hall, nil)
				s.sessionRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Session")).
					Return(domain.ErrHallNotAvailable)
			},
			wantStatus:     http.StatusConflict,
			wantErrMessage: "The hall is already booked for this time slot",
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			s.SetupTest()

			defer s.movieRepo.AssertExpectations(s.T())
			defer s.hallRepo.AssertExpectations(s.T())
			defer s.sessionRepo.AssertExpectations(s.T())

			if tt.setupMocks != nil {
				tt.setupMocks()
			}

			w, r := executeRequest(s.T(), http.MethodPost, "/sessions", tt.body)

			s.app.CreateSessionHandler(w, r)

			s.Equal(tt.wantStatus, w.Code)

			if tt.wantStatus == http.StatusCreated {
				var resp SessionResponse
				s.Require().NoError(json.NewDecoder(w.Body).Decode(&resp))

				s.Equal(3, resp.Id)
				s.Equal(startTime, resp.StartTime)
				s.Equal(startTime.Add(169*time.Minute), resp.EndTime)
				s.Equal("Interstellar", resp.MovieTitle)
			}

			checkErrorResponse(s.T(), w, tt.wantStatus, tt.wantErrMessage)
		})
	}
}

func (s *SessionsTestSuite) TestUpdateSessionHandler() {
	startTime := time.Date(2026, 9, 12, 18, 30, 0, 0, time.UTC)
	newStart := startTime.Add(2 * time.Hour)

	existing := func() *domain.Session {
		return &domain.Session{
			ID:        3,
			MovieID:   10,
			HallID:    2,
			StartTime: startTime,
			EndTime:   startTime.Add(169 * time.Minute),
			Price:     decimal.NewFromInt(12),
		}
	}

	movie := &domain.Movie{ID: 10, Title: "Interstellar", Duration: 169}
	hall := &domain.Hall{ID: 2, Name: "Main Hall", Rows: 10, SeatsPerRow: 12, Active: true}

	s.Run("should recompute the end time when the start time moves", func() {
		s.SetupTest()

		s.sessionRepo.On("GetById", mock.Anything, 3).Return(existing(), nil)
		s.movieRepo.On("GetById", mock.Anything, 10).Return(movie, nil)
		s.hallRepo.On("GetById", mock.Anything, 2).Return(hall, nil)
		s.sessionRepo.On("Update", mock.Anything, mock.AnythingOfType("*domain.Session")).Return(nil)

		w, r := executeRequest(s.T(), http.MethodPatch, "/sessions/3", UpdateSessionRequest{StartTime: &newStart})
		r = withURLParams(r, map[string]string{"sessionId": "3"})

		s.app.UpdateSessionHandler(w, r)

		s.Equal(http.StatusOK, w.Code)

		var resp SessionResponse
		s.Require().NoError(json.NewDecoder(w.Body).Decode(&resp))
		s.Equal(newStart.Add(169*time.Minute), resp.EndTime)

		s.sessionRepo.AssertExpectations(s.T())
	})

	s.Run("should fail when the session does not exist", func() {
		s.SetupTest()

		s.sessionRepo.On("GetById", mock.Anything, 3).Return(nil, domain.ErrRecordNotFound)

		w, r := executeRequest(s.T(), http.MethodPatch, "/sessions/3", UpdateSessionRequest{StartTime: &newStart})
		r = withURLParams(r, map[string]string{"sessionId": "3"})

		s.app.UpdateSessionHandler(w, r)

		s.Equal(http.StatusNotFound, w.Code)
	})
}

func (s *SessionsTestSuite) TestListSessionsHandler() {
	s.Run("should fail when the date filter is malformed", func() {
		s.SetupTest()

		w, r := executeRequest(s.T(), http.MethodGet, "/sessions?date=12-09-2026", nil)

		s.app.ListSessionsHandler(w, r)

		s.Equal(http.StatusBadRequest, w.Code)
	})

	s.Run("should pass date and movie filters to the store", func() {
		s.SetupTest()

		date := time.Date(2026, 9, 12, 0, 0, 0, 0, time.UTC)

		s.sessionRepo.On("GetAll", mock.Anything,
			domain.SessionFilters{Date: &date, MovieID: ptr(10)},
			domain.Pagination{Page: 1, PageSize: 20},
		).Return([]domain.Session{}, domain.NewMetadata(0, 1, 20), nil)

		w, r := executeRequest(s.T(), http.MethodGet, "/sessions?date=2026-09-12&movieId=10", nil)

		s.app.ListSessionsHandler(w, r)

		s.Equal(http.StatusOK, w.Code)
		s.sessionRepo.AssertExpectations(s.T())
	})
}
