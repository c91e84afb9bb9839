package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/tripcanvas/backend/internal/domain"
	"github.com/tripcanvas/backend/internal/handler"
	"github.com/tripcanvas/backend/internal/live"
	"github.com/tripcanvas/backend/internal/service"
)

// Test doubles for the handler-side service interfaces. Function fields
// keep each test explicit about which calls it expects.

type mockTripServicer struct {
	create  func(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	getByID func(ctx context.Context, id uuid.UUID) (domain.Trip, error)
	list    func(ctx context.Context) ([]domain.Trip, error)
	update  func(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	delete  func(ctx context.Context, id uuid.UUID) error
}

func (m *mockTripServicer) Create(ctx context.Context, t domain.Trip) (domain.Trip, error) {
	return m.create(ctx, t)
}
func (m *mockTripServicer) GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	return m.getByID(ctx, id)
}
func (m *mockTripServicer) List(ctx context.Context) ([]domain.Trip, error) {
	return m.list(ctx)
}
func (m *mockTripServicer) Update(ctx context.Context, t domain.Trip) (domain.Trip, error) {
	return m.update(ctx, t)
}
func (m *mockTripServicer) Delete(ctx context.Context, id uuid.UUID) error {
	return m.delete(ctx, id)
}

var _ handler.TripServicer = (*mockTripServicer)(nil)

type mockStayServicer struct {
	create       func(ctx context.Context, stay domain.AccommodationStay) (domain.AccommodationStay, error)
	getByID      func(ctx context.Context, tripID, stayID uuid.UUID) (domain.AccommodationStay, error)
	listByTripID func(ctx context.Context, tripID uuid.UUID) ([]domain.AccommodationStay, error)
	update       func(ctx context.Context, stay domain.AccommodationStay) (domain.AccommodationStay, error)
	delete       func(ctx context.Context, tripID, stayID uuid.UUID) error
}

func (m *mockStayServicer) Create(ctx context.Context, s domain.AccommodationStay) (domain.AccommodationStay, error) {
	return m.create(ctx, s)
}
func (m *mockStayServicer) GetByID(ctx context.Context, tripID, stayID uuid.UUID) (domain.AccommodationStay, error) {
	return m.getByID(ctx, tripID, stayID)
}
func (m *mockStayServicer) ListByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.AccommodationStay, error) {
	return m.listByTripID(ctx, tripID)
}
func (m *mockStayServicer) Update(ctx context.Context, s domain.AccommodationStay) (domain.AccommodationStay, error) {
	return m.update(ctx, s)
}
func (m *mockStayServicer) Delete(ctx context.Context, tripID, stayID uuid.UUID) error {
	return m.delete(ctx, tripID, stayID)
}

var _ handler.StayServicer = (*mockStayServicer)(nil)

type mockDayServicer struct {
	create         func(ctx context.Context, day domain.TripDay) (domain.TripDay, error)
	getByID        func(ctx context.Context, tripID, dayID uuid.UUID) (domain.TripDay, error)
	listByTripID   func(ctx context.Context, tripID uuid.UUID) ([]domain.TripDay, error)
	update         func(ctx context.Context, day domain.TripDay) (domain.TripDay, error)
	delete         func(ctx context.Context, tripID, dayID uuid.UUID) error
	addActivity    func(ctx context.Context, tripID uuid.UUID, activity domain.DayActivity) (domain.DayActivity, error)
	listActivities func(ctx context.Context, dayID uuid.UUID) ([]domain.DayActivity, error)
	updateActivity func(ctx context.Context, activity domain.DayActivity) (domain.DayActivity, error)
	deleteActivity func(ctx context.Context, dayID, activityID uuid.UUID) error
}

func (m *mockDayServicer) Create(ctx context.Context, d domain.TripDay) (domain.TripDay, error) {
	return m.create(ctx, d)
}
func (m *mockDayServicer) GetByID(ctx context.Context, tripID, dayID uuid.UUID) (domain.TripDay, error) {
	return m.getByID(ctx, tripID, dayID)
}
func (m *mockDayServicer) ListByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.TripDay, error) {
	return m.listByTripID(ctx, tripID)
}
func (m *mockDayServicer) Update(ctx context.Context, d domain.TripDay) (domain.TripDay, error) {
	return m.update(ctx, d)
}
func (m *mockDayServicer) Delete(ctx context.Context, tripID, dayID uuid.UUID) error {
	return m.delete(ctx, tripID, dayID)
}
func (m *mockDayServicer) AddActivity(ctx context.Context, tripID uuid.UUID, a domain.DayActivity) (domain.DayActivity, error) {
	return m.addActivity(ctx, tripID, a)
}
func (m *mockDayServicer) ListActivities(ctx context.Context, dayID uuid.UUID) ([]domain.DayActivity, error) {
	return m.listActivities(ctx, dayID)
}
func (m *mockDayServicer) UpdateActivity(ctx context.Context, a domain.DayActivity) (domain.DayActivity, error) {
	return m.updateActivity(ctx, a)
}
func (m *mockDayServicer) DeleteActivity(ctx context.Context, dayID, activityID uuid.UUID) error {
	return m.deleteActivity(ctx, dayID, activityID)
}

var _ handler.DayServicer = (*mockDayServicer)(nil)

type mockExpenseServicer struct {
	create       func(ctx context.Context, expense domain.Expense) (domain.Expense, error)
	getByID      func(ctx context.Context, tripID, expenseID uuid.UUID) (domain.Expense, error)
	listByTripID func(ctx context.Context, tripID uuid.UUID) ([]domain.Expense, error)
	update       func(ctx context.Context, expense domain.Expense) (domain.Expense, error)
	delete       func(ctx context.Context, tripID, expenseID uuid.UUID) error
}

func (m *mockExpenseServicer) Create(ctx context.Context, e domain.Expense) (domain.Expense, error) {
	return m.create(ctx, e)
}
func (m *mockExpenseServicer) GetByID(ctx context.Context, tripID, expenseID uuid.UUID) (domain.Expense, error) {
	return m.getByID(ctx, tripID, expenseID)
}
func (m *mockExpenseServicer) ListByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.Expense, error) {
	return m.listByTripID(ctx, tripID)
}
func (m *mockExpenseServicer) Update(ctx context.Context, e domain.Expense) (domain.Expense, error) {
	return m.update(ctx, e)
}
func (m *mockExpenseServicer) Delete(ctx context.Context, tripID, expenseID uuid.UUID) error {
	return m.delete(ctx, tripID, expenseID)
}

var _ handler.ExpenseServicer = (*mockExpenseServicer)(nil)

type mockTransportationServicer struct {
	create       func(ctx context.Context, event domain.TransportationEvent) (domain.TransportationEvent, error)
	getByID      func(ctx context.Context, tripID, eventID uuid.UUID) (domain.TransportationEvent, error)
	listByTripID func(ctx context.Context, tripID uuid.UUID) ([]domain.TransportationEvent, error)
	update       func(ctx context.Context, event domain.TransportationEvent) (domain.TransportationEvent, error)
	delete       func(ctx context.Context, tripID, eventID uuid.UUID) error
}

func (m *mockTransportationServicer) Create(ctx context.Context, e domain.TransportationEvent) (domain.TransportationEvent, error) {
	return m.create(ctx, e)
}
func (m *mockTransportationServicer) GetByID(ctx context.Context, tripID, eventID uuid.UUID) (domain.TransportationEvent, error) {
	return m.getByID(ctx, tripID, eventID)
}
func (m *mockTransportationServicer) ListByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.TransportationEvent, error) {
	return m.listByTripID(ctx, tripID)
}
func (m *mockTransportationServicer) Update(ctx context.Context, e domain.TransportationEvent) (domain.TransportationEvent, error) {
	return m.update(ctx, e)
}
func (m *mockTransportationServicer) Delete(ctx context.Context, tripID, eventID uuid.UUID) error {
	return m.delete(ctx, tripID, eventID)
}

var _ handler.TransportationServicer = (*mockTransportationServicer)(nil)

type mockReservationServicer struct {
	add    func(ctx context.Context, tripID uuid.UUID, reservation domain.DiningReservation) (domain.DiningReservation, error)
	list   func(ctx context.Context, dayID uuid.UUID) ([]domain.DiningReservation, error)
	update func(ctx context.Context, reservation domain.DiningReservation) (domain.DiningReservation, error)
	delete func(ctx context.Context, dayID, reservationID uuid.UUID) error
}

func (m *mockReservationServicer) Add(ctx context.Context, tripID uuid.UUID, res domain.DiningReservation) (domain.DiningReservation, error) {
	return m.add(ctx, tripID, res)
}
func (m *mockReservationServicer) List(ctx context.Context, dayID uuid.UUID) ([]domain.DiningReservation, error) {
	return m.list(ctx, dayID)
}
func (m *mockReservationServicer) Update(ctx context.Context, res domain.DiningReservation) (domain.DiningReservation, error) {
	return m.update(ctx, res)
}
func (m *mockReservationServicer) Delete(ctx context.Context, dayID, reservationID uuid.UUID) error {
	return m.delete(ctx, dayID, reservationID)
}

var _ handler.ReservationServicer = (*mockReservationServicer)(nil)

type mockTimelineServicer struct {
	view func(ctx context.Context, tripID uuid.UUID) (service.TimelineView, error)
}

func (m *mockTimelineServicer) View(ctx context.Context, tripID uuid.UUID) (service.TimelineView, error) {
	return m.view(ctx, tripID)
}

var _ handler.TimelineServicer = (*mockTimelineServicer)(nil)

type mockBudgetServicer struct {
	summary func(ctx context.Context, tripID uuid.UUID, displayCurrency string) (service.BudgetSummary, error)
}

func (m *mockBudgetServicer) Summary(ctx context.Context, tripID uuid.UUID, displayCurrency string) (service.BudgetSummary, error) {
	return m.summary(ctx, tripID, displayCurrency)
}

var _ handler.BudgetServicer = (*mockBudgetServicer)(nil)

// serverOptions bundles the Server dependencies so each test overrides only
// what it exercises; everything else stays nil and panics if touched.
type serverOptions struct {
	trips        handler.TripServicer
	days         handler.DayServicer
	stays        handler.StayServicer
	transport    handler.TransportationServicer
	expenses     handler.ExpenseServicer
	reservations handler.ReservationServicer
	timeline     handler.TimelineServicer
	budget       handler.BudgetServicer
	changes      handler.Subscriber
}

func newTestHandler(opts serverOptions) http.Handler {
	if opts.changes == nil {
		opts.changes = live.NewBroker()
	}
	srv := handler.NewServer(opts.trips, opts.days, opts.stays, opts.transport, opts.expenses,
		opts.reservations, opts.timeline, opts.budget, opts.changes)
	return srv.Routes()
}

func jsonBody(t *testing.T, v any) *bytes.Buffer {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewBuffer(b)
}

func tripFixture() domain.Trip {
	arrival := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	departure := time.Date(2025, 5, 4, 0, 0, 0, 0, time.UTC)
	return domain.Trip{
		ID:            uuid.New(),
		Destination:   "Lisbon",
		ArrivalDate:   &arrival,
		DepartureDate: &departure,
		CreatedAt:     time.Now().UTC(),
		UpdatedAt:     time.Now().UTC(),
	}
}
