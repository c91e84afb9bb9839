package handler

import (
	"net/http"
	"time"

	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/tripcanvas/backend/internal/domain"
)

// tripRequest is the JSON body for creating or updating a trip.
// Date fields use the date-only wire format ("2006-01-02"); anything else
// fails decoding and is rejected with 422 before the service layer.
type tripRequest struct {
	Destination   string              `json:"destination"`
	ArrivalDate   *openapi_types.Date `json:"arrival_date,omitempty"`
	DepartureDate *openapi_types.Date `json:"departure_date,omitempty"`
	CoverImageURL *string             `json:"cover_image_url,omitempty"`
}

// tripResponse is the JSON representation of a trip.
type tripResponse struct {
	ID            string              `json:"id"`
	Destination   string              `json:"destination"`
	ArrivalDate   *openapi_types.Date `json:"arrival_date,omitempty"`
	DepartureDate *openapi_types.Date `json:"departure_date,omitempty"`
	CoverImageURL string              `json:"cover_image_url,omitempty"`
	CreatedAt     time.Time           `json:"created_at"`
	UpdatedAt     time.Time           `json:"updated_at"`
}

// CreateTrip handles POST /api/v1/trips.
func (s *Server) CreateTrip(w http.ResponseWriter, r *http.Request) {
	var req tripRequest
	if !decodeBody(w, r, &req) {
		return
	}

	created, err := s.trips.Create(r.Context(), req.toDomain())
	if err != nil {
		serviceError(w, err, "trip")
		return
	}
	writeJSON(w, http.StatusCreated, tripToResponse(created))
}

// ListTrips handles GET /api/v1/trips.
func (s *Server) ListTrips(w http.ResponseWriter, r *http.Request) {
	trips, err := s.trips.List(r.Context())
	if err != nil {
		serviceError(w, err, "trip")
		return
	}

	data := make([]tripResponse, len(trips))
	for i, t := range trips {
		data[i] = tripToResponse(t)
	}
	writeJSON(w, http.StatusOK, map[string]any{"data": data})
}

// GetTrip handles GET /api/v1/trips/{tripID}.
func (s *Server) GetTrip(w http.ResponseWriter, r *http.Request) {
	tripID, ok := pathUUID(w, r, "tripID")
	if !ok {
		return
	}

	trip, err := s.trips.GetByID(r.Context(), tripID)
	if err != nil {
		serviceError(w, err, "trip")
		return
	}
	writeJSON(w, http.StatusOK, tripToResponse(trip))
}

// UpdateTrip handles PUT /api/v1/trips/{tripID}.
func (s *Server) UpdateTrip(w http.ResponseWriter, r *http.Request) {
	tripID, ok := pathUUID(w, r, "tripID")
	if !ok {
		return
	}
	var req tripRequest
	if !decodeBody(w, r, &req) {
		return
	}

	trip := req.toDomain()
	trip.ID = tripID
	updated, err := s.trips.Update(r.Context(), trip)
	if err != nil {
		serviceError(w, err, "trip")
		return
	}
	writeJSON(w, http.StatusOK, tripToResponse(updated))
}

// DeleteTrip handles DELETE /api/v1/trips/{tripID}.
func (s *Server) DeleteTrip(w http.ResponseWriter, r *http.Request) {
	tripID, ok := pathUUID(w, r, "tripID")
	if !ok {
		return
	}

	if err := s.trips.Delete(r.Context(), tripID); err != nil {
		serviceError(w, err, "trip")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// --- mapping helpers --------------------------------------------------------

func (req tripRequest) toDomain() domain.Trip {
	t := domain.Trip{Destination: req.Destination}
	if req.ArrivalDate != nil {
		ad := req.ArrivalDate.Time
		t.ArrivalDate = &ad
	}
	if req.DepartureDate != nil {
		dd := req.DepartureDate.Time
		t.DepartureDate = &dd
	}
	if req.CoverImageURL != nil {
		t.CoverImageURL = *req.CoverImageURL
	}
	return t
}

func tripToResponse(t domain.Trip) tripResponse {
	resp := tripResponse{
		ID:            t.ID.String(),
		Destination:   t.Destination,
		CoverImageURL: t.CoverImageURL,
		CreatedAt:     t.CreatedAt,
		UpdatedAt:     t.UpdatedAt,
	}
	if t.ArrivalDate != nil {
		resp.ArrivalDate = &openapi_types.Date{Time: *t.ArrivalDate}
	}
	if t.DepartureDate != nil {
		resp.DepartureDate = &openapi_types.Date{Time: *t.DepartureDate}
	}
	return resp
}
