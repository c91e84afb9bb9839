package handler

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	openapi_types "github.com/oapi-codegen/runtime/types"
	"github.com/shopspring/decimal"

	"github.com/tripcanvas/backend/internal/domain"
)

// transportationRequest is the JSON body for creating or updating a
// transportation event. Times are local clock strings ("HH:MM").
type transportationRequest struct {
	Type               string              `json:"type"`
	Provider           string              `json:"provider,omitempty"`
	ConfirmationNumber string              `json:"confirmation_number,omitempty"`
	DepartureLocation  string              `json:"departure_location,omitempty"`
	ArrivalLocation    string              `json:"arrival_location,omitempty"`
	StartDate          *openapi_types.Date `json:"start_date"`
	StartTime          string              `json:"start_time,omitempty"`
	EndDate            *openapi_types.Date `json:"end_date,omitempty"`
	EndTime            string              `json:"end_time,omitempty"`
	Cost               *decimal.Decimal    `json:"cost,omitempty"`
	Currency           string              `json:"currency,omitempty"`
}

// transportationResponse is the JSON representation of a transportation event.
type transportationResponse struct {
	ID                 string              `json:"id"`
	TripID             string              `json:"trip_id"`
	Type               string              `json:"type"`
	Provider           string              `json:"provider,omitempty"`
	ConfirmationNumber string              `json:"confirmation_number,omitempty"`
	DepartureLocation  string              `json:"departure_location,omitempty"`
	ArrivalLocation    string              `json:"arrival_location,omitempty"`
	StartDate          openapi_types.Date  `json:"start_date"`
	StartTime          string              `json:"start_time,omitempty"`
	EndDate            *openapi_types.Date `json:"end_date,omitempty"`
	EndTime            string              `json:"end_time,omitempty"`
	Cost               *decimal.Decimal    `json:"cost,omitempty"`
	Currency           string              `json:"currency,omitempty"`
	CreatedAt          time.Time           `json:"created_at"`
	UpdatedAt          time.Time           `json:"updated_at"`
}

// CreateTransportation handles POST /api/v1/trips/{tripID}/transportation.
func (s *Server) CreateTransportation(w http.ResponseWriter, r *http.Request) {
	tripID, ok := pathUUID(w, r, "tripID")
	if !ok {
		return
	}
	var req transportationRequest
	if !decodeBody(w, r, &req) {
		return
	}
	event, ok2 := req.toDomain(w, tripID)
	if !ok2 {
		return
	}

	created, err := s.transport.Create(r.Context(), event)
	if err != nil {
		serviceError(w, err, "transportation event")
		return
	}
	writeJSON(w, http.StatusCreated, transportationToResponse(created))
}

// ListTransportation handles GET /api/v1/trips/{tripID}/transportation.
func (s *Server) ListTransportation(w http.ResponseWriter, r *http.Request) {
	tripID, ok := pathUUID(w, r, "tripID")
	if !ok {
		return
	}

	events, err := s.transport.ListByTripID(r.Context(), tripID)
	if err != nil {
		serviceError(w, err, "transportation event")
		return
	}

	data := make([]transportationResponse, len(events))
	for i, e := range events {
		data[i] = transportationToResponse(e)
	}
	writeJSON(w, http.StatusOK, map[string]any{"data": data})
}

// GetTransportation handles GET /api/v1/trips/{tripID}/transportation/{eventID}.
func (s *Server) GetTransportation(w http.ResponseWriter, r *http.Request) {
	tripID, ok := pathUUID(w, r, "tripID")
	if !ok {
		return
	}
	eventID, ok := pathUUID(w, r, "eventID")
	if !ok {
		return
	}

	event, err := s.transport.GetByID(r.Context(), tripID, eventID)
	if err != nil {
		serviceError(w, err, "transportation event")
		return
	}
	writeJSON(w, http.StatusOK, transportationToResponse(event))
}

// UpdateTransportation handles PUT /api/v1/trips/{tripID}/transportation/{eventID}.
func (s *Server) UpdateTransportation(w http.ResponseWriter, r *http.Request) {
	tripID, ok := pathUUID(w, r, "tripID")
	if !ok {
		return
	}
	eventID, ok := pathUUID(w, r, "eventID")
	if !ok {
		return
	}
	var req transportationRequest
	if !decodeBody(w, r, &req) {
		return
	}
	event, ok2 := req.toDomain(w, tripID)
	if !ok2 {
		return
	}
	event.ID = eventID

	updated, err := s.transport.Update(r.Context(), event)
	if err != nil {
		serviceError(w, err, "transportation event")
		return
	}
	writeJSON(w, http.StatusOK, transportationToResponse(updated))
}

// DeleteTransportation handles DELETE /api/v1/trips/{tripID}/transportation/{eventID}.
func (s *Server) DeleteTransportation(w http.ResponseWriter, r *http.Request) {
	tripID, ok := pathUUID(w, r, "tripID")
	if !ok {
		return
	}
	eventID, ok := pathUUID(w, r, "eventID")
	if !ok {
		return
	}

	if err := s.transport.Delete(r.Context(), tripID, eventID); err != nil {
		serviceError(w, err, "transportation event")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// --- mapping helpers --------------------------------------------------------

func (req transportationRequest) toDomain(w http.ResponseWriter, tripID uuid.UUID) (domain.TransportationEvent, bool) {
	if req.StartDate == nil {
		badRequest(w, "start_date is required")
		return domain.TransportationEvent{}, false
	}
	event := domain.TransportationEvent{
		TripID:             tripID,
		Type:               domain.TransportType(req.Type),
		Provider:           req.Provider,
		ConfirmationNumber: req.ConfirmationNumber,
		DepartureLocation:  req.DepartureLocation,
		ArrivalLocation:    req.ArrivalLocation,
		StartDate:          req.StartDate.Time,
		StartTime:          req.StartTime,
		EndTime:            req.EndTime,
		Cost:               req.Cost,
		Currency:           req.Currency,
	}
	if req.EndDate != nil {
		ed := req.EndDate.Time
		event.EndDate = &ed
	}
	return event, true
}

func transportationToResponse(e domain.TransportationEvent) transportationResponse {
	resp := transportationResponse{
		ID:                 e.ID.String(),
		TripID:             e.TripID.String(),
		Type:               string(e.Type),
		Provider:           e.Provider,
		ConfirmationNumber: e.ConfirmationNumber,
		DepartureLocation:  e.DepartureLocation,
		ArrivalLocation:    e.ArrivalLocation,
		StartDate:          openapi_types.Date{Time: e.StartDate},
		StartTime:          e.StartTime,
		EndTime:            e.EndTime,
		Cost:               e.Cost,
		Currency:           e.Currency,
		CreatedAt:          e.CreatedAt,
		UpdatedAt:          e.UpdatedAt,
	}
	if e.EndDate != nil {
		resp.EndDate = &openapi_types.Date{Time: *e.EndDate}
	}
	return resp
}
