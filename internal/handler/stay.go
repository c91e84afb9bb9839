package handler

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	openapi_types "github.com/oapi-codegen/runtime/types"
	"github.com/shopspring/decimal"

	"github.com/tripcanvas/backend/internal/domain"
)

// stayRequest is the JSON body for creating or updating an accommodation
// stay. CheckoutDate is the exclusive upper bound of day coverage.
type stayRequest struct {
	Name         string              `json:"name"`
	Details      string              `json:"details,omitempty"`
	URL          string              `json:"url,omitempty"`
	Address      string              `json:"address,omitempty"`
	Phone        string              `json:"phone,omitempty"`
	PlaceID      string              `json:"place_id,omitempty"`
	Website      string              `json:"website,omitempty"`
	CheckinDate  *openapi_types.Date `json:"checkin_date"`
	CheckoutDate *openapi_types.Date `json:"checkout_date"`
	Cost         *decimal.Decimal    `json:"cost,omitempty"`
	Currency     string              `json:"currency,omitempty"`
}

// stayResponse is the JSON representation of an accommodation stay.
type stayResponse struct {
	ID           string             `json:"id"`
	TripID       string             `json:"trip_id"`
	Name         string             `json:"name"`
	Details      string             `json:"details,omitempty"`
	URL          string             `json:"url,omitempty"`
	Address      string             `json:"address,omitempty"`
	Phone        string             `json:"phone,omitempty"`
	PlaceID      string             `json:"place_id,omitempty"`
	Website      string             `json:"website,omitempty"`
	CheckinDate  openapi_types.Date `json:"checkin_date"`
	CheckoutDate openapi_types.Date `json:"checkout_date"`
	Nights       int                `json:"nights"`
	Cost         *decimal.Decimal   `json:"cost,omitempty"`
	Currency     string             `json:"currency,omitempty"`
	CreatedAt    time.Time          `json:"created_at"`
	UpdatedAt    time.Time          `json:"updated_at"`
}

// CreateStay handles POST /api/v1/trips/{tripID}/stays.
func (s *Server) CreateStay(w http.ResponseWriter, r *http.Request) {
	tripID, ok := pathUUID(w, r, "tripID")
	if !ok {
		return
	}
	var req stayRequest
	if !decodeBody(w, r, &req) {
		return
	}
	stay, ok2 := req.toDomain(w, tripID)
	if !ok2 {
		return
	}

	created, err := s.stays.Create(r.Context(), stay)
	if err != nil {
		serviceError(w, err, "stay")
		return
	}
	writeJSON(w, http.StatusCreated, stayToResponse(created))
}

// ListStays handles GET /api/v1/trips/{tripID}/stays.
func (s *Server) ListStays(w http.ResponseWriter, r *http.Request) {
	tripID, ok := pathUUID(w, r, "tripID")
	if !ok {
		return
	}

	stays, err := s.stays.ListByTripID(r.Context(), tripID)
	if err != nil {
		serviceError(w, err, "stay")
		return
	}

	data := make([]stayResponse, len(stays))
	for i, st := range stays {
		data[i] = stayToResponse(st)
	}
	writeJSON(w, http.StatusOK, map[string]any{"data": data})
}

// GetStay handles GET /api/v1/trips/{tripID}/stays/{stayID}.
func (s *Server) GetStay(w http.ResponseWriter, r *http.Request) {
	tripID, ok := pathUUID(w, r, "tripID")
	if !ok {
		return
	}
	stayID, ok := pathUUID(w, r, "stayID")
	if !ok {
		return
	}

	stay, err := s.stays.GetByID(r.Context(), tripID, stayID)
	if err != nil {
		serviceError(w, err, "stay")
		return
	}
	writeJSON(w, http.StatusOK, stayToResponse(stay))
}

// UpdateStay handles PUT /api/v1/trips/{tripID}/stays/{stayID}.
func (s *Server) UpdateStay(w http.ResponseWriter, r *http.Request) {
	tripID, ok := pathUUID(w, r, "tripID")
	if !ok {
		return
	}
	stayID, ok := pathUUID(w, r, "stayID")
	if !ok {
		return
	}
	var req stayRequest
	if !decodeBody(w, r, &req) {
		return
	}
	stay, ok2 := req.toDomain(w, tripID)
	if !ok2 {
		return
	}
	stay.ID = stayID

	updated, err := s.stays.Update(r.Context(), stay)
	if err != nil {
		serviceError(w, err, "stay")
		return
	}
	writeJSON(w, http.StatusOK, stayToResponse(updated))
}

// DeleteStay handles DELETE /api/v1/trips/{tripID}/stays/{stayID}.
func (s *Server) DeleteStay(w http.ResponseWriter, r *http.Request) {
	tripID, ok := pathUUID(w, r, "tripID")
	if !ok {
		return
	}
	stayID, ok := pathUUID(w, r, "stayID")
	if !ok {
		return
	}

	if err := s.stays.Delete(r.Context(), tripID, stayID); err != nil {
		serviceError(w, err, "stay")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// --- mapping helpers --------------------------------------------------------

// toDomain converts the request into a domain stay, writing a 422 and
// returning false when a required date is missing.
func (req stayRequest) toDomain(w http.ResponseWriter, tripID uuid.UUID) (domain.AccommodationStay, bool) {
	if req.CheckinDate == nil || req.CheckoutDate == nil {
		badRequest(w, "checkin_date and checkout_date are required")
		return domain.AccommodationStay{}, false
	}
	return domain.AccommodationStay{
		TripID:       tripID,
		Name:         req.Name,
		Details:      req.Details,
		URL:          req.URL,
		Address:      req.Address,
		Phone:        req.Phone,
		PlaceID:      req.PlaceID,
		Website:      req.Website,
		CheckinDate:  req.CheckinDate.Time,
		CheckoutDate: req.CheckoutDate.Time,
		Cost:         req.Cost,
		Currency:     req.Currency,
	}, true
}

func stayToResponse(st domain.AccommodationStay) stayResponse {
	return stayResponse{
		ID:           st.ID.String(),
		TripID:       st.TripID.String(),
		Name:         st.Name,
		Details:      st.Details,
		URL:          st.URL,
		Address:      st.Address,
		Phone:        st.Phone,
		PlaceID:      st.PlaceID,
		Website:      st.Website,
		CheckinDate:  openapi_types.Date{Time: st.CheckinDate},
		CheckoutDate: openapi_types.Date{Time: st.CheckoutDate},
		Nights:       st.Nights(),
		Cost:         st.Cost,
		Currency:     st.Currency,
		CreatedAt:    st.CreatedAt,
		UpdatedAt:    st.UpdatedAt,
	}
}
