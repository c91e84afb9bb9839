package repo_test

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tripcanvas/backend/internal/domain"
	"github.com/tripcanvas/backend/internal/repo"
)

// createDay inserts a parent day for tests of the day-scoped repos.
func createDay(t *testing.T, tx pgx.Tx) domain.TripDay {
	t.Helper()
	trip := createTrip(t, tx)

	day, err := repo.NewDayRepo(tx).Create(context.Background(), domain.TripDay{
		TripID: trip.ID,
		Date:   time.Date(2025, 5, 2, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err, "create parent day")
	return day
}

func TestReservationRepo_Create(t *testing.T) {
	tx := testTx(t)
	r := repo.NewReservationRepo(tx)
	ctx := context.Background()

	day := createDay(t, tx)
	people := 2
	rating := 4.5
	cost := decimal.RequireFromString("85.50")

	got, err := r.Create(ctx, domain.DiningReservation{
		DayID:              day.ID,
		RestaurantName:     "Cervejaria Ramiro",
		Address:            "Av. Almirante Reis 1",
		PhoneNumber:        "+351 218 851 024",
		ConfirmationNumber: "RES-4411",
		ReservationTime:    "20:00",
		NumberOfPeople:     &people,
		Rating:             &rating,
		Cost:               &cost,
		Currency:           "EUR",
	})

	require.NoError(t, err)
	assert.Equal(t, day.ID, got.DayID)
	assert.Equal(t, "Cervejaria Ramiro", got.RestaurantName)
	assert.Equal(t, "20:00", got.ReservationTime)
	require.NotNil(t, got.NumberOfPeople)
	assert.Equal(t, 2, *got.NumberOfPeople)
	require.NotNil(t, got.Rating)
	assert.InDelta(t, 4.5, *got.Rating, 0.001)
	require.NotNil(t, got.Cost)
	assert.True(t, got.Cost.Equal(cost))
	assert.Equal(t, "EUR", got.Currency)
	assert.False(t, got.CreatedAt.IsZero())
}

func TestReservationRepo_Create_NullableFieldsStayNil(t *testing.T) {
	tx := testTx(t)
	r := repo.NewReservationRepo(tx)

	day := createDay(t, tx)

	got, err := r.Create(context.Background(), domain.DiningReservation{
		DayID:          day.ID,
		RestaurantName: "Pastéis de Belém",
	})

	require.NoError(t, err)
	assert.Nil(t, got.NumberOfPeople)
	assert.Nil(t, got.Rating)
	assert.Nil(t, got.Cost)
	assert.Empty(t, got.ReservationTime)
}

func TestReservationRepo_ListByDayID_OrderedByOrderIndex(t *testing.T) {
	tx := testTx(t)
	r := repo.NewReservationRepo(tx)
	ctx := context.Background()

	day := createDay(t, tx)

	// Insert out of order; List must sort by order_index ascending.
	_, err := r.Create(ctx, domain.DiningReservation{DayID: day.ID, RestaurantName: "Dinner", OrderIndex: 1})
	require.NoError(t, err)
	_, err = r.Create(ctx, domain.DiningReservation{DayID: day.ID, RestaurantName: "Lunch", OrderIndex: 0})
	require.NoError(t, err)

	reservations, err := r.ListByDayID(ctx, day.ID)

	require.NoError(t, err)
	require.Len(t, reservations, 2)
	assert.Equal(t, "Lunch", reservations[0].RestaurantName)
	assert.Equal(t, "Dinner", reservations[1].RestaurantName)
}

func TestReservationRepo_Update(t *testing.T) {
	tx := testTx(t)
	r := repo.NewReservationRepo(tx)
	ctx := context.Background()

	day := createDay(t, tx)
	created, err := r.Create(ctx, domain.DiningReservation{DayID: day.ID, RestaurantName: "Belcanto"})
	require.NoError(t, err)

	people := 6
	created.RestaurantName = "Belcanto (rebooked)"
	created.ReservationTime = "21:30"
	created.NumberOfPeople = &people

	updated, err := r.Update(ctx, created)

	require.NoError(t, err)
	assert.Equal(t, "Belcanto (rebooked)", updated.RestaurantName)
	assert.Equal(t, "21:30", updated.ReservationTime)
	require.NotNil(t, updated.NumberOfPeople)
	assert.Equal(t, 6, *updated.NumberOfPeople)
}

func TestReservationRepo_Update_WrongDay(t *testing.T) {
	tx := testTx(t)
	r := repo.NewReservationRepo(tx)
	ctx := context.Background()

	day := createDay(t, tx)
	created, err := r.Create(ctx, domain.DiningReservation{DayID: day.ID, RestaurantName: "Ramiro"})
	require.NoError(t, err)

	// A valid reservation ID under the wrong day must not resolve.
	created.DayID = ghostID()
	_, err = r.Update(ctx, created)

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestReservationRepo_Delete(t *testing.T) {
	tx := testTx(t)
	r := repo.NewReservationRepo(tx)
	ctx := context.Background()

	day := createDay(t, tx)
	created, err := r.Create(ctx, domain.DiningReservation{DayID: day.ID, RestaurantName: "Ramiro"})
	require.NoError(t, err)

	require.NoError(t, r.Delete(ctx, day.ID, created.ID))

	reservations, err := r.ListByDayID(ctx, day.ID)
	require.NoError(t, err)
	assert.Empty(t, reservations)
}

func TestReservationRepo_Delete_NotFound(t *testing.T) {
	tx := testTx(t)
	r := repo.NewReservationRepo(tx)

	day := createDay(t, tx)

	err := r.Delete(context.Background(), day.ID, ghostID())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
