package service_test

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/tripcanvas/backend/internal/domain"
	"github.com/tripcanvas/backend/internal/repo"
)

// Hand-written test doubles for the repo interfaces. Each method is a
// function field — set only the ones your test needs; an unset method that
// gets called panics, which is exactly the signal you want in a unit test.

type mockTripRepo struct {
	create  func(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	getByID func(ctx context.Context, id uuid.UUID) (domain.Trip, error)
	list    func(ctx context.Context) ([]domain.Trip, error)
	update  func(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	delete  func(ctx context.Context, id uuid.UUID) error
}

func (m *mockTripRepo) Create(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	return m.create(ctx, trip)
}
func (m *mockTripRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	return m.getByID(ctx, id)
}
func (m *mockTripRepo) List(ctx context.Context) ([]domain.Trip, error) {
	return m.list(ctx)
}
func (m *mockTripRepo) Update(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	return m.update(ctx, trip)
}
func (m *mockTripRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.delete(ctx, id)
}

var _ repo.TripRepo = (*mockTripRepo)(nil)

type mockDayRepo struct {
	create       func(ctx context.Context, day domain.TripDay) (domain.TripDay, error)
	ensure       func(ctx context.Context, tripID uuid.UUID, date time.Time, title string) error
	getByID      func(ctx context.Context, tripID, dayID uuid.UUID) (domain.TripDay, error)
	listByTripID func(ctx context.Context, tripID uuid.UUID) ([]domain.TripDay, error)
	update       func(ctx context.Context, day domain.TripDay) (domain.TripDay, error)
	delete       func(ctx context.Context, tripID, dayID uuid.UUID) error
}

func (m *mockDayRepo) Create(ctx context.Context, day domain.TripDay) (domain.TripDay, error) {
	return m.create(ctx, day)
}
func (m *mockDayRepo) Ensure(ctx context.Context, tripID uuid.UUID, date time.Time, title string) error {
	return m.ensure(ctx, tripID, date, title)
}
func (m *mockDayRepo) GetByID(ctx context.Context, tripID, dayID uuid.UUID) (domain.TripDay, error) {
	return m.getByID(ctx, tripID, dayID)
}
func (m *mockDayRepo) ListByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.TripDay, error) {
	return m.listByTripID(ctx, tripID)
}
func (m *mockDayRepo) Update(ctx context.Context, day domain.TripDay) (domain.TripDay, error) {
	return m.update(ctx, day)
}
func (m *mockDayRepo) Delete(ctx context.Context, tripID, dayID uuid.UUID) error {
	return m.delete(ctx, tripID, dayID)
}

var _ repo.DayRepo = (*mockDayRepo)(nil)

type mockReservationRepo struct {
	create      func(ctx context.Context, reservation domain.DiningReservation) (domain.DiningReservation, error)
	listByDayID func(ctx context.Context, dayID uuid.UUID) ([]domain.DiningReservation, error)
	update      func(ctx context.Context, reservation domain.DiningReservation) (domain.DiningReservation, error)
	delete      func(ctx context.Context, dayID, reservationID uuid.UUID) error
}

func (m *mockReservationRepo) Create(ctx context.Context, res domain.DiningReservation) (domain.DiningReservation, error) {
	return m.create(ctx, res)
}
func (m *mockReservationRepo) ListByDayID(ctx context.Context, dayID uuid.UUID) ([]domain.DiningReservation, error) {
	return m.listByDayID(ctx, dayID)
}
func (m *mockReservationRepo) Update(ctx context.Context, res domain.DiningReservation) (domain.DiningReservation, error) {
	return m.update(ctx, res)
}
func (m *mockReservationRepo) Delete(ctx context.Context, dayID, reservationID uuid.UUID) error {
	return m.delete(ctx, dayID, reservationID)
}

var _ repo.ReservationRepo = (*mockReservationRepo)(nil)

type mockStayRepo struct {
	create       func(ctx context.Context, stay domain.AccommodationStay) (domain.AccommodationStay, error)
	getByID      func(ctx context.Context, tripID, stayID uuid.UUID) (domain.AccommodationStay, error)
	listByTripID func(ctx context.Context, tripID uuid.UUID) ([]domain.AccommodationStay, error)
	update       func(ctx context.Context, stay domain.AccommodationStay) (domain.AccommodationStay, error)
	delete       func(ctx context.Context, tripID, stayID uuid.UUID) error
}

func (m *mockStayRepo) Create(ctx context.Context, stay domain.AccommodationStay) (domain.AccommodationStay, error) {
	return m.create(ctx, stay)
}
func (m *mockStayRepo) GetByID(ctx context.Context, tripID, stayID uuid.UUID) (domain.AccommodationStay, error) {
	return m.getByID(ctx, tripID, stayID)
}
func (m *mockStayRepo) ListByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.AccommodationStay, error) {
	return m.listByTripID(ctx, tripID)
}
func (m *mockStayRepo) Update(ctx context.Context, stay domain.AccommodationStay) (domain.AccommodationStay, error) {
	return m.update(ctx, stay)
}
func (m *mockStayRepo) Delete(ctx context.Context, tripID, stayID uuid.UUID) error {
	return m.delete(ctx, tripID, stayID)
}

var _ repo.StayRepo = (*mockStayRepo)(nil)

type mockActivityRepo struct {
	create       func(ctx context.Context, activity domain.DayActivity) (domain.DayActivity, error)
	listByDayID  func(ctx context.Context, dayID uuid.UUID) ([]domain.DayActivity, error)
	listByTripID func(ctx context.Context, tripID uuid.UUID) ([]domain.DayActivity, error)
	update       func(ctx context.Context, activity domain.DayActivity) (domain.DayActivity, error)
	delete       func(ctx context.Context, dayID, activityID uuid.UUID) error
}

func (m *mockActivityRepo) Create(ctx context.Context, activity domain.DayActivity) (domain.DayActivity, error) {
	return m.create(ctx, activity)
}
func (m *mockActivityRepo) ListByDayID(ctx context.Context, dayID uuid.UUID) ([]domain.DayActivity, error) {
	return m.listByDayID(ctx, dayID)
}
func (m *mockActivityRepo) ListByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.DayActivity, error) {
	return m.listByTripID(ctx, tripID)
}
func (m *mockActivityRepo) Update(ctx context.Context, activity domain.DayActivity) (domain.DayActivity, error) {
	return m.update(ctx, activity)
}
func (m *mockActivityRepo) Delete(ctx context.Context, dayID, activityID uuid.UUID) error {
	return m.delete(ctx, dayID, activityID)
}

var _ repo.ActivityRepo = (*mockActivityRepo)(nil)

type mockTransportationRepo struct {
	create       func(ctx context.Context, event domain.TransportationEvent) (domain.TransportationEvent, error)
	getByID      func(ctx context.Context, tripID, eventID uuid.UUID) (domain.TransportationEvent, error)
	listByTripID func(ctx context.Context, tripID uuid.UUID) ([]domain.TransportationEvent, error)
	update       func(ctx context.Context, event domain.TransportationEvent) (domain.TransportationEvent, error)
	delete       func(ctx context.Context, tripID, eventID uuid.UUID) error
}

func (m *mockTransportationRepo) Create(ctx context.Context, event domain.TransportationEvent) (domain.TransportationEvent, error) {
	return m.create(ctx, event)
}
func (m *mockTransportationRepo) GetByID(ctx context.Context, tripID, eventID uuid.UUID) (domain.TransportationEvent, error) {
	return m.getByID(ctx, tripID, eventID)
}
func (m *mockTransportationRepo) ListByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.TransportationEvent, error) {
	return m.listByTripID(ctx, tripID)
}
func (m *mockTransportationRepo) Update(ctx context.Context, event domain.TransportationEvent) (domain.TransportationEvent, error) {
	return m.update(ctx, event)
}
func (m *mockTransportationRepo) Delete(ctx context.Context, tripID, eventID uuid.UUID) error {
	return m.delete(ctx, tripID, eventID)
}

var _ repo.TransportationRepo = (*mockTransportationRepo)(nil)

type mockExpenseRepo struct {
	create       func(ctx context.Context, expense domain.Expense) (domain.Expense, error)
	getByID      func(ctx context.Context, tripID, expenseID uuid.UUID) (domain.Expense, error)
	listByTripID func(ctx context.Context, tripID uuid.UUID) ([]domain.Expense, error)
	update       func(ctx context.Context, expense domain.Expense) (domain.Expense, error)
	delete       func(ctx context.Context, tripID, expenseID uuid.UUID) error
}

func (m *mockExpenseRepo) Create(ctx context.Context, expense domain.Expense) (domain.Expense, error) {
	return m.create(ctx, expense)
}
func (m *mockExpenseRepo) GetByID(ctx context.Context, tripID, expenseID uuid.UUID) (domain.Expense, error) {
	return m.getByID(ctx, tripID, expenseID)
}
func (m *mockExpenseRepo) ListByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.Expense, error) {
	return m.listByTripID(ctx, tripID)
}
func (m *mockExpenseRepo) Update(ctx context.Context, expense domain.Expense) (domain.Expense, error) {
	return m.update(ctx, expense)
}
func (m *mockExpenseRepo) Delete(ctx context.Context, tripID, expenseID uuid.UUID) error {
	return m.delete(ctx, tripID, expenseID)
}

var _ repo.ExpenseRepo = (*mockExpenseRepo)(nil)

type mockRateRepo struct {
	listForDisplay func(ctx context.Context, from []string, display string) ([]domain.ExchangeRate, error)
	upsert         func(ctx context.Context, rate domain.ExchangeRate) error
}

func (m *mockRateRepo) ListForDisplay(ctx context.Context, from []string, display string) ([]domain.ExchangeRate, error) {
	return m.listForDisplay(ctx, from, display)
}
func (m *mockRateRepo) Upsert(ctx context.Context, rate domain.ExchangeRate) error {
	return m.upsert(ctx, rate)
}

var _ repo.RateRepo = (*mockRateRepo)(nil)

// --- shared fixtures --------------------------------------------------------

func utcDate(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// foundTripRepo answers GetByID affirmatively for any ID. Used by services
// that only check the parent trip exists.
func foundTripRepo() *mockTripRepo {
	return &mockTripRepo{
		getByID: func(_ context.Context, id uuid.UUID) (domain.Trip, error) {
			return domain.Trip{ID: id, Destination: "Lisbon"}, nil
		},
	}
}

// noopDayRepo accepts every Ensure call. Used when a test does not care
// about day materialization.
func noopDayRepo() *mockDayRepo {
	return &mockDayRepo{
		ensure: func(_ context.Context, _ uuid.UUID, _ time.Time, _ string) error { return nil },
	}
}
