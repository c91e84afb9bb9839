package handler_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tripcanvas/backend/internal/domain"
)

func TestCreateTrip_201(t *testing.T) {
	fixture := tripFixture()
	svc := &mockTripServicer{
		create: func(_ context.Context, trip domain.Trip) (domain.Trip, error) {
			assert.Equal(t, "Lisbon", trip.Destination)
			require.NotNil(t, trip.ArrivalDate)
			return fixture, nil
		},
	}

	body := jsonBody(t, map[string]any{
		"destination":    "Lisbon",
		"arrival_date":   "2025-05-01",
		"departure_date": "2025-05-04",
	})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/trips", body)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	newTestHandler(serverOptions{trips: svc}).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)

	var resp map[string]any
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, fixture.ID.String(), resp["id"])
	assert.Equal(t, "Lisbon", resp["destination"])
	assert.Equal(t, "2025-05-01", resp["arrival_date"])
}

func TestCreateTrip_422_ValidationError(t *testing.T) {
	svc := &mockTripServicer{
		create: func(_ context.Context, _ domain.Trip) (domain.Trip, error) {
			return domain.Trip{}, fmt.Errorf("service.TripService.Create: %w: destination is required", domain.ErrValidation)
		},
	}

	body := jsonBody(t, map[string]any{"destination": ""})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/trips", body)
	rec := httptest.NewRecorder()

	newTestHandler(serverOptions{trips: svc}).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var resp struct {
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "validation_error", resp.Error.Code)
	assert.Equal(t, "destination is required", resp.Error.Message)
}

func TestCreateTrip_422_MalformedDate(t *testing.T) {
	// "not-a-date" fails openapi date decoding before any service call.
	svc := &mockTripServicer{
		create: func(_ context.Context, _ domain.Trip) (domain.Trip, error) {
			t.Fatal("service must not be called for a malformed date")
			return domain.Trip{}, nil
		},
	}

	body := jsonBody(t, map[string]any{
		"destination":  "Lisbon",
		"arrival_date": "not-a-date",
	})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/trips", body)
	rec := httptest.NewRecorder()

	newTestHandler(serverOptions{trips: svc}).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestCreateTrip_422_UnknownField(t *testing.T) {
	body := jsonBody(t, map[string]any{"destination": "Lisbon", "bogus": true})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/trips", body)
	rec := httptest.NewRecorder()

	newTestHandler(serverOptions{trips: &mockTripServicer{}}).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestGetTrip_200(t *testing.T) {
	fixture := tripFixture()
	svc := &mockTripServicer{
		getByID: func(_ context.Context, id uuid.UUID) (domain.Trip, error) {
			assert.Equal(t, fixture.ID, id)
			return fixture, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/trips/"+fixture.ID.String(), nil)
	rec := httptest.NewRecorder()

	newTestHandler(serverOptions{trips: svc}).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestGetTrip_404(t *testing.T) {
	svc := &mockTripServicer{
		getByID: func(_ context.Context, _ uuid.UUID) (domain.Trip, error) {
			return domain.Trip{}, fmt.Errorf("service.TripService.GetByID: %w", domain.ErrNotFound)
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/trips/"+uuid.NewString(), nil)
	rec := httptest.NewRecorder()

	newTestHandler(serverOptions{trips: svc}).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetTrip_422_BadUUID(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/trips/not-a-uuid", nil)
	rec := httptest.NewRecorder()

	newTestHandler(serverOptions{trips: &mockTripServicer{}}).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestListTrips_200_WrapsData(t *testing.T) {
	svc := &mockTripServicer{
		list: func(_ context.Context) ([]domain.Trip, error) {
			return []domain.Trip{tripFixture(), tripFixture()}, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/trips", nil)
	rec := httptest.NewRecorder()

	newTestHandler(serverOptions{trips: svc}).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Data []json.RawMessage `json:"data"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Len(t, resp.Data, 2)
}

func TestDeleteTrip_204(t *testing.T) {
	svc := &mockTripServicer{
		delete: func(_ context.Context, _ uuid.UUID) error { return nil },
	}

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/trips/"+uuid.NewString(), nil)
	rec := httptest.NewRecorder()

	newTestHandler(serverOptions{trips: svc}).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestUpdateTrip_500_OpaqueError(t *testing.T) {
	svc := &mockTripServicer{
		update: func(_ context.Context, _ domain.Trip) (domain.Trip, error) {
			return domain.Trip{}, fmt.Errorf("service.TripService.Update: connection refused")
		},
	}

	body := jsonBody(t, map[string]any{"destination": "Lisbon"})
	req := httptest.NewRequest(http.MethodPut, "/api/v1/trips/"+uuid.NewString(), body)
	rec := httptest.NewRecorder()

	newTestHandler(serverOptions{trips: svc}).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	// Internal detail must not leak into the body.
	assert.NotContains(t, rec.Body.String(), "connection refused")
}
