package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tripcanvas/backend/internal/domain"
)

// reservationRequest is the JSON body for creating or updating a dining
// reservation. ReservationTime is a local clock string ("HH:MM").
type reservationRequest struct {
	RestaurantName     string           `json:"restaurant_name"`
	Address            string           `json:"address,omitempty"`
	PhoneNumber        string           `json:"phone_number,omitempty"`
	Website            string           `json:"website,omitempty"`
	PlaceID            string           `json:"place_id,omitempty"`
	ConfirmationNumber string           `json:"confirmation_number,omitempty"`
	Notes              string           `json:"notes,omitempty"`
	ReservationTime    string           `json:"reservation_time,omitempty"`
	NumberOfPeople     *int             `json:"number_of_people,omitempty"`
	Rating             *float64         `json:"rating,omitempty"`
	Cost               *decimal.Decimal `json:"cost,omitempty"`
	Currency           string           `json:"currency,omitempty"`
	OrderIndex         int              `json:"order_index,omitempty"`
}

// CreateReservation handles POST /api/v1/trips/{tripID}/days/{dayID}/reservations.
func (s *Server) CreateReservation(w http.ResponseWriter, r *http.Request) {
	tripID, ok := pathUUID(w, r, "tripID")
	if !ok {
		return
	}
	dayID, ok := pathUUID(w, r, "dayID")
	if !ok {
		return
	}
	var req reservationRequest
	if !decodeBody(w, r, &req) {
		return
	}

	created, err := s.reservations.Add(r.Context(), tripID, req.toDomain(dayID))
	if err != nil {
		serviceError(w, err, "reservation")
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// ListReservations handles GET /api/v1/trips/{tripID}/days/{dayID}/reservations.
func (s *Server) ListReservations(w http.ResponseWriter, r *http.Request) {
	dayID, ok := pathUUID(w, r, "dayID")
	if !ok {
		return
	}

	reservations, err := s.reservations.List(r.Context(), dayID)
	if err != nil {
		serviceError(w, err, "reservation")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"data": reservations})
}

// UpdateReservation handles PUT /api/v1/trips/{tripID}/days/{dayID}/reservations/{reservationID}.
func (s *Server) UpdateReservation(w http.ResponseWriter, r *http.Request) {
	dayID, ok := pathUUID(w, r, "dayID")
	if !ok {
		return
	}
	reservationID, ok := pathUUID(w, r, "reservationID")
	if !ok {
		return
	}
	var req reservationRequest
	if !decodeBody(w, r, &req) {
		return
	}

	reservation := req.toDomain(dayID)
	reservation.ID = reservationID
	updated, err := s.reservations.Update(r.Context(), reservation)
	if err != nil {
		serviceError(w, err, "reservation")
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// DeleteReservation handles DELETE /api/v1/trips/{tripID}/days/{dayID}/reservations/{reservationID}.
func (s *Server) DeleteReservation(w http.ResponseWriter, r *http.Request) {
	dayID, ok := pathUUID(w, r, "dayID")
	if !ok {
		return
	}
	reservationID, ok := pathUUID(w, r, "reservationID")
	if !ok {
		return
	}

	if err := s.reservations.Delete(r.Context(), dayID, reservationID); err != nil {
		serviceError(w, err, "reservation")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// --- mapping helpers --------------------------------------------------------

func (req reservationRequest) toDomain(dayID uuid.UUID) domain.DiningReservation {
	return domain.DiningReservation{
		DayID:              dayID,
		RestaurantName:     req.RestaurantName,
		Address:            req.Address,
		PhoneNumber:        req.PhoneNumber,
		Website:            req.Website,
		PlaceID:            req.PlaceID,
		ConfirmationNumber: req.ConfirmationNumber,
		Notes:              req.Notes,
		ReservationTime:    req.ReservationTime,
		NumberOfPeople:     req.NumberOfPeople,
		Rating:             req.Rating,
		Cost:               req.Cost,
		Currency:           req.Currency,
		OrderIndex:         req.OrderIndex,
	}
}
