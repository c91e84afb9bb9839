// Package handler implements the HTTP handlers for the trip planner API.
// All handlers are methods on Server, split into resource-specific files
// (trip.go, stay.go, etc.) but sharing the same Server struct so they can
// access its dependencies.
package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/tripcanvas/backend/internal/domain"
	"github.com/tripcanvas/backend/internal/live"
	"github.com/tripcanvas/backend/internal/service"
	"github.com/tripcanvas/backend/spec"
)

// Service interfaces are defined here, in the consumer package, following
// the Go convention: "accept interfaces, return concrete types". Handler
// tests inject mocks without touching the database or service layer.

// TripServicer defines the business operations the trip handlers depend on.
type TripServicer interface {
	Create(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error)
	List(ctx context.Context) ([]domain.Trip, error)
	Update(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// DayServicer defines the business operations the day handlers depend on.
type DayServicer interface {
	Create(ctx context.Context, day domain.TripDay) (domain.TripDay, error)
	GetByID(ctx context.Context, tripID, dayID uuid.UUID) (domain.TripDay, error)
	ListByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.TripDay, error)
	Update(ctx context.Context, day domain.TripDay) (domain.TripDay, error)
	Delete(ctx context.Context, tripID, dayID uuid.UUID) error
	AddActivity(ctx context.Context, tripID uuid.UUID, activity domain.DayActivity) (domain.DayActivity, error)
	ListActivities(ctx context.Context, dayID uuid.UUID) ([]domain.DayActivity, error)
	UpdateActivity(ctx context.Context, activity domain.DayActivity) (domain.DayActivity, error)
	DeleteActivity(ctx context.Context, dayID, activityID uuid.UUID) error
}

// StayServicer defines the business operations the stay handlers depend on.
type StayServicer interface {
	Create(ctx context.Context, stay domain.AccommodationStay) (domain.AccommodationStay, error)
	GetByID(ctx context.Context, tripID, stayID uuid.UUID) (domain.AccommodationStay, error)
	ListByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.AccommodationStay, error)
	Update(ctx context.Context, stay domain.AccommodationStay) (domain.AccommodationStay, error)
	Delete(ctx context.Context, tripID, stayID uuid.UUID) error
}

// TransportationServicer defines the business operations the transportation
// handlers depend on.
type TransportationServicer interface {
	Create(ctx context.Context, event domain.TransportationEvent) (domain.TransportationEvent, error)
	GetByID(ctx context.Context, tripID, eventID uuid.UUID) (domain.TransportationEvent, error)
	ListByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.TransportationEvent, error)
	Update(ctx context.Context, event domain.TransportationEvent) (domain.TransportationEvent, error)
	Delete(ctx context.Context, tripID, eventID uuid.UUID) error
}

// ExpenseServicer defines the business operations the expense handlers
// depend on.
type ExpenseServicer interface {
	Create(ctx context.Context, expense domain.Expense) (domain.Expense, error)
	GetByID(ctx context.Context, tripID, expenseID uuid.UUID) (domain.Expense, error)
	ListByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.Expense, error)
	Update(ctx context.Context, expense domain.Expense) (domain.Expense, error)
	Delete(ctx context.Context, tripID, expenseID uuid.UUID) error
}

// ReservationServicer defines the business operations the dining
// reservation handlers depend on.
type ReservationServicer interface {
	Add(ctx context.Context, tripID uuid.UUID, reservation domain.DiningReservation) (domain.DiningReservation, error)
	List(ctx context.Context, dayID uuid.UUID) ([]domain.DiningReservation, error)
	Update(ctx context.Context, reservation domain.DiningReservation) (domain.DiningReservation, error)
	Delete(ctx context.Context, dayID, reservationID uuid.UUID) error
}

// TimelineServicer derives the grouped itinerary view for a trip.
type TimelineServicer interface {
	View(ctx context.Context, tripID uuid.UUID) (service.TimelineView, error)
}

// BudgetServicer derives budget totals for a trip in a display currency.
type BudgetServicer interface {
	Summary(ctx context.Context, tripID uuid.UUID, displayCurrency string) (service.BudgetSummary, error)
}

// Subscriber hands out per-trip change subscriptions with a release func.
// Satisfied by *live.Broker.
type Subscriber interface {
	Subscribe(tripID uuid.UUID) (<-chan live.Change, func())
}

// Server holds the handler dependencies for all API endpoints.
// Methods are in resource-specific files but all operate on this struct.
type Server struct {
	trips        TripServicer
	days         DayServicer
	stays        StayServicer
	transport    TransportationServicer
	expenses     ExpenseServicer
	reservations ReservationServicer
	timeline     TimelineServicer
	budget       BudgetServicer
	changes      Subscriber
}

// NewServer constructs the Server with all its dependencies.
func NewServer(
	trips TripServicer,
	days DayServicer,
	stays StayServicer,
	transport TransportationServicer,
	expenses ExpenseServicer,
	reservations ReservationServicer,
	timeline TimelineServicer,
	budget BudgetServicer,
	changes Subscriber,
) *Server {
	return &Server{
		trips:        trips,
		days:         days,
		stays:        stays,
		transport:    transport,
		expenses:     expenses,
		reservations: reservations,
		timeline:     timeline,
		budget:       budget,
		changes:      changes,
	}
}

// Routes builds the chi router for the full API surface.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/healthz", s.GetHealth)
	r.Get("/openapi.yaml", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/yaml")
		w.Write(spec.OpenAPI)
	})

	r.Route("/api/v1/trips", func(r chi.Router) {
		r.Post("/", s.CreateTrip)
		r.Get("/", s.ListTrips)

		r.Route("/{tripID}", func(r chi.Router) {
			r.Get("/", s.GetTrip)
			r.Put("/", s.UpdateTrip)
			r.Delete("/", s.DeleteTrip)

			r.Get("/timeline", s.GetTimeline)
			r.Get("/budget", s.GetBudget)
			r.Get("/events", s.StreamChanges)

			r.Route("/days", func(r chi.Router) {
				r.Post("/", s.CreateDay)
				r.Get("/", s.ListDays)
				r.Route("/{dayID}", func(r chi.Router) {
					r.Get("/", s.GetDay)
					r.Put("/", s.UpdateDay)
					r.Delete("/", s.DeleteDay)

					r.Route("/activities", func(r chi.Router) {
						r.Post("/", s.CreateActivity)
						r.Get("/", s.ListActivities)
						r.Put("/{activityID}", s.UpdateActivity)
						r.Delete("/{activityID}", s.DeleteActivity)
					})

					r.Route("/reservations", func(r chi.Router) {
						r.Post("/", s.CreateReservation)
						r.Get("/", s.ListReservations)
						r.Put("/{reservationID}", s.UpdateReservation)
						r.Delete("/{reservationID}", s.DeleteReservation)
					})
				})
			})

			r.Route("/stays", func(r chi.Router) {
				r.Post("/", s.CreateStay)
				r.Get("/", s.ListStays)
				r.Get("/{stayID}", s.GetStay)
				r.Put("/{stayID}", s.UpdateStay)
				r.Delete("/{stayID}", s.DeleteStay)
			})

			r.Route("/transportation", func(r chi.Router) {
				r.Post("/", s.CreateTransportation)
				r.Get("/", s.ListTransportation)
				r.Get("/{eventID}", s.GetTransportation)
				r.Put("/{eventID}", s.UpdateTransportation)
				r.Delete("/{eventID}", s.DeleteTransportation)
			})

			r.Route("/expenses", func(r chi.Router) {
				r.Post("/", s.CreateExpense)
				r.Get("/", s.ListExpenses)
				r.Get("/{expenseID}", s.GetExpense)
				r.Put("/{expenseID}", s.UpdateExpense)
				r.Delete("/{expenseID}", s.DeleteExpense)
			})
		})
	})

	return r
}
