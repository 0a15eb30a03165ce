package app

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/andriyko-dev/cinema-booking-system/internal/domain"
	"github.com/andriyko-dev/cinema-booking-system/internal/mocks"
)

type TicketsTestSuite struct {
	suite.Suite
	app         *Application
	ticketRepo  *mocks.MockTicketRepo
	sessionRepo *mocks.MockSessionRepo
	hallRepo    *mocks.MockHallRepo
	userRepo    *mocks.MockUserRepo
}

func (s *TicketsTestSuite) SetupTest() {
	s.ticketRepo = new(mocks.MockTicketRepo)
	s.sessionRepo = new(mocks.MockSessionRepo)
	s.hallRepo = new(mocks.MockHallRepo)
	s.userRepo = new(mocks.MockUserRepo)

	s.app = newTestApplication(func(a *Application) {
		a.ticketRepo = s.ticketRepo
		a.sessionRepo = s.sessionRepo
		a.hallRepo = s.hallRepo
		a.userRepo = s.userRepo
	})
}

func TestTicketsSuite(t *testing.T) {
	suite.Run(t, new(TicketsTestSuite))
}

func (s *TicketsTestSuite) testSession() *domain.Session {
	return &domain.Session{
		ID:         1,
		MovieID:    10,
		HallID:     2,
		MovieTitle: "Interstellar",
		HallName:   "Main Hall",
	}
}

func (s *TicketsTestSuite) testHall() *domain.Hall {
	return &domain.Hall{
		ID:          2,
		Name:        "Main Hall",
		Rows:        3,
		SeatsPerRow: 2,
		Active:      true,
	}
}

func bookedTicket(row, seat int) domain.Ticket {
	return domain.Ticket{
		SessionID: 1,
		Row:       row,
		Seat:      seat,
		Status:    domain.TicketBooked,
	}
}

func (s *TicketsTestSuite) TestGetBookingPageHandler() {
	tests := []struct {
		name       string
		sessionId  string
		setupMocks func()
		wantStatus int
		wantRows   []int
		wantBooked []SeatPosition
	}{
		{
			name:       "should fail when session does not exist",
			sessionId:  "99",
			setupMocks: func() {
				s.sessionRepo.On("GetById", mock.Anything, 99).Return(nil, domain.ErrRecordNotFound)
			},
			wantStatus: http.StatusNotFound,
		},
		{
			name:      "should return all rows when no tickets are booked",
			sessionId: "1",
			setupMocks: func() {
				s.sessionRepo.On("GetById", mock.Anything, 1).Return(s.testSession(), nil)
				s.hallRepo.On("GetBySession", mock.Anything, 1).Return(s.testHall(), nil)
				s.ticketRepo.On("GetBookedBySession", mock.Anything, 1).Return([]domain.Ticket{}, nil)
			},
			wantStatus: http.StatusOK,
			wantRows:   []int{1, 2, 3},
		},
		{
			name:      "should exclude fully booked rows",
			sessionId: "1",
			setupMocks: func() {
				s.sessionRepo.On("GetById", mock.Anything, 1).Return(s.testSession(), nil)
				s.hallRepo.On("GetBySession", mock.Anything, 1).Return(s.testHall(), nil)
				s.ticketRepo.On("GetBookedBySession", mock.Anything, 1).Return([]domain.Ticket{
					bookedTicket(1, 1),
					bookedTicket(1, 2),
					bookedTicket(2, 1),
				}, nil)
			},
			wantStatus: http.StatusOK,
			wantRows:   []int{2, 3},
			wantBooked: []SeatPosition{{Row: 1, Seat: 1}, {Row: 1, Seat: 2}, {Row: 2, Seat: 1}},
		},
		{
			name:      "should fall back to all rows when ticket lookup fails",
			sessionId: "1",
			setupMocks: func() {
				s.sessionRepo.On("GetById", mock.Anything, 1).Return(s.testSession(), nil)
				s.hallRepo.On("GetBySession", mock.Anything, 1).Return(s.testHall(), nil)
				s.ticketRepo.On("GetBookedBySession", mock.Anything, 1).Return(nil, fmt.Errorf("database error"))
			},
			wantStatus: http.StatusOK,
			wantRows:   []int{1, 2, 3},
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			s.SetupTest()

			defer s.sessionRepo.AssertExpectations(s.T())
			defer s.ticketRepo.AssertExpectations(s.T())

			if tt.setupMocks != nil {
				tt.setupMocks()
			}

			w, r := executeRequest(s.T(), http.MethodGet, "/sessions/"+tt.sessionId+"/booking", nil)
			r = withURLParams(r, map[string]string{"sessionId": tt.sessionId})

			s.app.GetBookingPageHandler(w, r)

			s.Equal(tt.wantStatus, w.Code)

			if tt.wantRows != nil {
				var resp BookingPageResponse
				s.Require().NoError(json.NewDecoder(w.Body).Decode(&resp))

				diff := cmp.Diff(tt.wantRows, resp.AvailableRows)
				s.Empty(diff, "Available rows mismatch (-want +got):\n%s", diff)
				s.Equal("Interstellar", resp.MovieTitle)
				s.Equal(3, resp.TotalRows)
				s.Equal(2, resp.SeatsPerRow)

				if tt.wantBooked != nil {
					diff = cmp.Diff(tt.wantBooked, resp.BookedSeats)
					s.Empty(diff, "Booked seats mismatch (-want +got):\n%s", diff)
				}
			}
		})
	}
}

func (s *TicketsTestSuite) TestGetAvailableSeatsHandler() {
	tests := []struct {
		name       string
		row        string
		setupMocks func()
		wantStatus int
		wantSeats  []int
	}{
		{
			name: "should return free seats of the row",
			row:  "1",
			setupMocks: func() {
				s.hallRepo.On("GetBySession", mock.Anything, 1).Return(s.testHall(), nil)
				s.ticketRepo.On("GetBookedBySession", mock.Anything, 1).Return([]domain.Ticket{
					bookedTicket(1, 1),
				}, nil)
			},
			wantStatus: http.StatusOK,
			wantSeats:  []int{2},
		},
		{
			name: "should fail when row is outside the hall layout",
			row:  "9",
			setupMocks: func() {
				s.hallRepo.On("GetBySession", mock.Anything, 1).Return(s.testHall(), nil)
			},
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "should fail when session does not exist",
			row:  "1",
			setupMocks: func() {
				s.hallRepo.On("GetBySession", mock.Anything, 1).Return(nil, domain.ErrRecordNotFound)
			},
			wantStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			s.SetupTest()

			defer s.hallRepo.AssertExpectations(s.T())
			defer s.ticketRepo.AssertExpectations(s.T())

			if tt.setupMocks != nil {
				tt.setupMocks()
			}

			w, r := executeRequest(s.T(), http.MethodGet, "/sessions/1/rows/"+tt.row+"/seats", nil)
			r = withURLParams(r, map[string]string{"sessionId": "1", "row": tt.row})

			s.app.GetAvailableSeatsHandler(w, r)

			s.Equal(tt.wantStatus, w.Code)

			if tt.wantSeats != nil {
				var resp AvailableSeatsResponse
				s.Require().NoError(json.NewDecoder(w.Body).Decode(&resp))

				diff := cmp.Diff(tt.wantSeats, resp.Seats)
				s.Empty(diff, "Seats mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func (s *TicketsTestSuite) TestBookTicketHandler() {
	tests := []struct {
		name           string
		body           BookTicketRequest
		setupMocks     func()
		wantStatus     int
		wantRow        int
		wantSeat       int
		wantErrMessage string
	}{
		{
			name: "should book a seat addressed by row and seat",
			body: BookTicketRequest{Row: "2", Seat: "1"},
			setupMocks: func() {
				s.sessionRepo.On("GetById", mock.Anything, 1).Return(s.testSession(), nil)
				s.hallRepo.On("GetById", mock.Anything, 2).Return(s.testHall(), nil)
				s.ticketRepo.On("GetBookedBySession", mock.Anything, 1).Return([]domain.Ticket{}, nil)
				s.ticketRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Ticket")).
					Run(func(args mock.Arguments) {
						args.Get(1).(*domain.Ticket).ID = 42
					}).
					Return(nil)
				s.userRepo.On("GetById", mock.Anything, 7).Return(&domain.User{ID: 7, Name: "Alice", Email: "alice@example.com"}, nil).Maybe()
			},
			wantStatus: http.StatusCreated,
			wantRow:    2,
			wantSeat:   1,
		},
		{
			name: "should book a seat addressed by a global seat number",
			body: BookTicketRequest{SeatNumber: "5"},
			setupMocks: func() {
				s.hallRepo.On("GetBySession", mock.Anything, 1).Return(s.testHall(), nil)
				s.sessionRepo.On("GetById", mock.Anything, 1).Return(s.testSession(), nil)
				s.hallRepo.On("GetById", mock.Anything, 2).Return(s.testHall(), nil)
				s.ticketRepo.On("GetBookedBySession", mock.Anything, 1).Return([]domain.Ticket{}, nil)
				s.ticketRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Ticket")).
					Run(func(args mock.Arguments) {
						args.Get(1).(*domain.Ticket).ID = 43
					}).
					Return(nil)
				s.userRepo.On("GetById", mock.Anything, 7).Return(&domain.User{ID: 7, Name: "Alice", Email: "alice@example.com"}, nil).Maybe()
			},
			wantStatus: http.StatusCreated,
			wantRow:    3,
			wantSeat:   1,
		},
		{
			name: "should fail when the seat is already booked",
			body: BookTicketRequest{Row: "1", Seat: "1"},
			setupMocks: func() {
				s.sessionRepo.On("GetById", mock.Anything, 1).Return(s.testSession(), nil)
				s.hallRepo.On("GetById", mock.Anything, 2).Return(s.testHall(), nil)
				s.ticketRepo.On("GetBookedBySession", mock.Anything, 1).Return([]domain.Ticket{
					bookedTicket(1, 1),
				}, nil)
			},
			wantStatus:     http.StatusConflict,
			wantErrMessage: "The requested seat is already booked for this session",
		},
		{
			name: "should fail when the seat race is lost at the store",
			body: BookTicketRequest{Row: "1", Seat: "2"},
			setupMocks: func() {
				s.sessionRepo.On("GetById", mock.Anything, 1).Return(s.testSession(), nil)
				s.hallRepo.On("GetById", mock.Anything, 2).Return(s.testHall(), nil)
				s.ticketRepo.On("GetBookedBySession", mock.Anything, 1).Return([]domain.Ticket{}, nil)
				s.ticketRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Ticket")).
					Return(domain.ErrSeatAlreadyBooked)
			},
			wantStatus:     http.StatusConflict,
			wantErrMessage: "The requested seat is already booked for this session",
		},
		{
			name: "should fail when the seat is outside the hall layout",
			body: BookTicketRequest{Row: "9", Seat: "1"},
			setupMocks: func() {
				s.sessionRepo.On("GetById", mock.Anything, 1).Return(s.testSession(), nil)
				s.hallRepo.On("GetById", mock.Anything, 2).Return(s.testHall(), nil)
			},
			wantStatus: http.StatusUnprocessableEntity,
		},
		{
			name: "should fail when session does not exist",
			body: BookTicketRequest{Row: "1", Seat: "1"},
			setupMocks: func() {
				s.sessionRepo.On("GetById", mock.Anything, 1).Return(nil, domain.ErrRecordNotFound)
			},
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "should fail when the seat address is not numeric",
			body:       BookTicketRequest{Row: "abc", Seat: "1"},
			wantStatus: http.StatusUnprocessableEntity,
		},
		{
			name:       "should fail when no seat address is given",
			body:       BookTicketRequest{},
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			s.SetupTest()

			defer s.sessionRepo.AssertExpectations(s.T())
			defer s.ticketRepo.AssertExpectations(s.T())

			if tt.setupMocks != nil {
				tt.setupMocks()
			}

			w, r := executeRequest(s.T(), http.MethodPost, "/sessions/1/tickets", tt.body)
			r = withURLParams(r, map[string]string{"sessionId": "1"})
			r = withAuthenticatedUser(r, 7)

			s.app.BookTicketHandler(w, r)

			s.Equal(tt.wantStatus, w.Code)

			if tt.wantStatus == http.StatusCreated {
				var resp TicketResponse
				s.Require().NoError(json.NewDecoder(w.Body).Decode(&resp))

				s.Equal(tt.wantRow, resp.Row)
				s.Equal(tt.wantSeat, resp.Seat)
				s.Equal(string(domain.TicketBooked), resp.Status)
			}

			checkErrorResponse(s.T(), w, tt.wantStatus, tt.wantErrMessage)
		})
	}
}

func (s *TicketsTestSuite) TestReassignTicketHandler() {
	tests := []struct {
		name       string
		body       ReassignTicketRequest
		setupMocks func()
		wantStatus int
	}{
		{
			name: "should keep a ticket on its own seat without availability checks",
			body: ReassignTicketRequest{Row: "2", Seat: "2"},
			setupMocks: func() {
				s.ticketRepo.On("GetById", mock.Anything, 5).Return(&domain.Ticket{
					ID:        5,
					SessionID: 1,
					Row:       2,
					Seat:      2,
					Status:    domain.TicketBooked,
				}, nil)
				s.ticketRepo.On("Update", mock.Anything, mock.AnythingOfType("*domain.Ticket")).Return(nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name: "should fail when the new seat is already booked",
			body: ReassignTicketRequest{Row: "1", Seat: "1"},
			setupMocks: func() {
				s.ticketRepo.On("GetById", mock.Anything, 5).Return(&domain.Ticket{
					ID:        5,
					SessionID: 1,
					Row:       2,
					Seat:      2,
					Status:    domain.TicketBooked,
				}, nil)
				s.hallRepo.On("GetBySession", mock.Anything, 1).Return(s.testHall(), nil)
				s.ticketRepo.On("GetBookedBySession", mock.Anything, 1).Return([]domain.Ticket{
					bookedTicket(1, 1),
				}, nil)
			},
			wantStatus: http.StatusConflict,
		},
		{
			name: "should fail when the ticket does not exist",
			body: ReassignTicketRequest{Row: "1", Seat: "1"},
			setupMocks: func() {
				s.ticketRepo.On("GetById", mock.Anything, 5).Return(nil, domain.ErrRecordNotFound)
			},
			wantStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			s.SetupTest()

			defer s.ticketRepo.AssertExpectations(s.T())
			defer s.hallRepo.AssertExpectations(s.T())

			if tt.setupMocks != nil {
				tt.setupMocks()
			}

			w, r := executeRequest(s.T(), http.MethodPatch, "/tickets/5", tt.body)
			r = withURLParams(r, map[string]string{"ticketId": "5"})

			s.app.ReassignTicketHandler(w, r)

			s.Equal(tt.wantStatus, w.Code)
		})
	}
}

func (s *TicketsTestSuite) TestGetMyTicketsHandler() {
	s.ticketRepo.On("GetByUser", mock.Anything, 7).Return([]domain.Ticket{
		{ID: 1, SessionID: 1, UserID: 7, Row: 1, Seat: 1, Status: domain.TicketBooked},
		{ID: 2, SessionID: 2, UserID: 7, Row: 3, Seat: 4, Status: domain.TicketBooked},
	}, nil)

	w, r := executeRequest(s.T(), http.MethodGet, "/users/me/tickets", nil)
	r = withAuthenticatedUser(r, 7)

	s.app.GetMyTicketsHandler(w, r)

	s.Equal(http.StatusOK, w.Code)

	var resp TicketListResponse
	s.Require().NoError(json.NewDecoder(w.Body).Decode(&resp))
	s.Len(resp.Tickets, 2)

	s.ticketRepo.AssertExpectations(s.T())
}

func (s *TicketsTestSuite) TestDeleteTicketHandler() {
	tests := []struct {
		name       string
		setupMocks func()
		wantStatus int
	}{
		{
			name: "should delete an existing ticket",
			setupMocks: func() {
				s.ticketRepo.On("Delete", mock.Anything, 5).Return(nil)
			},
			wantStatus: http.StatusNoContent,
		},
		{
			name: "should fail when the ticket does not exist",
			setupMocks: func() {
				s.ticketRepo.On("Delete", mock.Anything, 5).Return(domain.ErrRecordNotFound)
			},
			wantStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			s.SetupTest()

			defer s.ticketRepo.AssertExpectations(s.T())

			if tt.setupMocks != nil {
				tt.setupMocks()
			}

			w, r := executeRequest(s.T(), http.MethodDelete, "/tickets/5", nil)
			r = withURLParams(r, map[string]string{"ticketId": "5"})

			s.app.DeleteTicketHandler(w, r)

			s.Equal(tt.wantStatus, w.Code)
		})
	}
}
