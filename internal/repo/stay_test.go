package repo_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tripcanvas/backend/internal/domain"
	"github.com/tripcanvas/backend/internal/repo"
)

func stayInput(tripID uuid.UUID) domain.AccommodationStay {
	cost := decimal.RequireFromString("450.00")
	return domain.AccommodationStay{
		TripID:       tripID,
		Name:         "Hotel Avenida",
		Address:      "Av. da Liberdade 180",
		CheckinDate:  time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC),
		CheckoutDate: time.Date(2025, 5, 4, 0, 0, 0, 0, time.UTC),
		Cost:         &cost,
		Currency:     "EUR",
	}
}

func TestStayRepo_Create(t *testing.T) {
	tx := testTx(t)
	r := repo.NewStayRepo(tx)
	ctx := context.Background()

	trip := createTrip(t, tx)
	input := stayInput(trip.ID)

	got, err := r.Create(ctx, input)

	require.NoError(t, err)
	assert.Equal(t, input.Name, got.Name)
	assert.True(t, got.CheckinDate.Equal(input.CheckinDate))
	assert.True(t, got.CheckoutDate.Equal(input.CheckoutDate))
	require.NotNil(t, got.Cost)
	assert.True(t, got.Cost.Equal(*input.Cost), "Cost should round-trip exactly")
	assert.Equal(t, "EUR", got.Currency)
}

func TestStayRepo_ListByTripID_OrderedByCheckin(t *testing.T) {
	tx := testTx(t)
	r := repo.NewStayRepo(tx)
	ctx := context.Background()

	trip := createTrip(t, tx)

	second := stayInput(trip.ID)
	second.Name = "Porto Guesthouse"
	second.CheckinDate = time.Date(2025, 5, 4, 0, 0, 0, 0, time.UTC)
	second.CheckoutDate = time.Date(2025, 5, 6, 0, 0, 0, 0, time.UTC)

	_, err := r.Create(ctx, second)
	require.NoError(t, err)
	_, err = r.Create(ctx, stayInput(trip.ID))
	require.NoError(t, err)

	stays, err := r.ListByTripID(ctx, trip.ID)

	require.NoError(t, err)
	require.Len(t, stays, 2)
	assert.Equal(t, "Hotel Avenida", stays[0].Name)
	assert.Equal(t, "Porto Guesthouse", stays[1].Name)
}

func TestStayRepo_Update(t *testing.T) {
	tx := testTx(t)
	r := repo.NewStayRepo(tx)
	ctx := context.Background()

	trip := createTrip(t, tx)
	created, err := r.Create(ctx, stayInput(trip.ID))
	require.NoError(t, err)

	created.Name = "Hotel Mundial"
	created.CheckoutDate = time.Date(2025, 5, 5, 0, 0, 0, 0, time.UTC)

	updated, err := r.Update(ctx, created)

	require.NoError(t, err)
	assert.Equal(t, "Hotel Mundial", updated.Name)
	assert.True(t, updated.CheckoutDate.Equal(created.CheckoutDate))
}

func TestStayRepo_Delete_LeavesDays(t *testing.T) {
	tx := testTx(t)
	stays := repo.NewStayRepo(tx)
	days := repo.NewDayRepo(tx)
	ctx := context.Background()

	trip := createTrip(t, tx)
	stay, err := stays.Create(ctx, stayInput(trip.ID))
	require.NoError(t, err)

	require.NoError(t, days.Ensure(ctx, trip.ID, stay.CheckinDate, "Day 1"))

	require.NoError(t, stays.Delete(ctx, trip.ID, stay.ID))

	remaining, err := days.ListByTripID(ctx, trip.ID)
	require.NoError(t, err)
	assert.Len(t, remaining, 1, "materialized days survive stay deletion")
}

func TestStayRepo_GetByID_NotFound(t *testing.T) {
	tx := testTx(t)
	r := repo.NewStayRepo(tx)

	trip := createTrip(t, tx)

	_, err := r.GetByID(context.Background(), trip.ID, ghostID())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
