package handler

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	openapi_types "github.com/oapi-codegen/runtime/types"
	"github.com/shopspring/decimal"

	"github.com/tripcanvas/backend/internal/domain"
)

// dayRequest is the JSON body for creating or updating a trip day.
// Date is required on create and ignored on update (a day's date is
// immutable).
type dayRequest struct {
	Date        *openapi_types.Date `json:"date,omitempty"`
	Title       string              `json:"title,omitempty"`
	Description string              `json:"description,omitempty"`
	ImageURL    string              `json:"image_url,omitempty"`
}

// dayResponse is the JSON representation of a trip day.
type dayResponse struct {
	ID          string             `json:"id"`
	TripID      string             `json:"trip_id"`
	Date        openapi_types.Date `json:"date"`
	Title       string             `json:"title,omitempty"`
	Description string             `json:"description,omitempty"`
	ImageURL    string             `json:"image_url,omitempty"`
	CreatedAt   time.Time          `json:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at"`
}

// activityRequest is the JSON body for creating or updating a day activity.
type activityRequest struct {
	Title       string           `json:"title"`
	Description string           `json:"description,omitempty"`
	StartTime   string           `json:"start_time,omitempty"`
	EndTime     string           `json:"end_time,omitempty"`
	Cost        *decimal.Decimal `json:"cost,omitempty"`
	Currency    string           `json:"currency,omitempty"`
	OrderIndex  int              `json:"order_index,omitempty"`
}

// CreateDay handles POST /api/v1/trips/{tripID}/days.
func (s *Server) CreateDay(w http.ResponseWriter, r *http.Request) {
	tripID, ok := pathUUID(w, r, "tripID")
	if !ok {
		return
	}
	var req dayRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Date == nil {
		badRequest(w, "date is required")
		return
	}

	day := domain.TripDay{
		TripID:      tripID,
		Date:        req.Date.Time,
		Title:       req.Title,
		Description: req.Description,
		ImageURL:    req.ImageURL,
	}
	created, err := s.days.Create(r.Context(), day)
	if err != nil {
		serviceError(w, err, "day")
		return
	}
	writeJSON(w, http.StatusCreated, dayToResponse(created))
}

// ListDays handles GET /api/v1/trips/{tripID}/days.
func (s *Server) ListDays(w http.ResponseWriter, r *http.Request) {
	tripID, ok := pathUUID(w, r, "tripID")
	if !ok {
		return
	}

	days, err := s.days.ListByTripID(r.Context(), tripID)
	if err != nil {
		serviceError(w, err, "day")
		return
	}

	data := make([]dayResponse, len(days))
	for i, d := range days {
		data[i] = dayToResponse(d)
	}
	writeJSON(w, http.StatusOK, map[string]any{"data": data})
}

// GetDay handles GET /api/v1/trips/{tripID}/days/{dayID}.
func (s *Server) GetDay(w http.ResponseWriter, r *http.Request) {
	tripID, ok := pathUUID(w, r, "tripID")
	if !ok {
		return
	}
	dayID, ok := pathUUID(w, r, "dayID")
	if !ok {
		return
	}

	day, err := s.days.GetByID(r.Context(), tripID, dayID)
	if err != nil {
		serviceError(w, err, "day")
		return
	}
	writeJSON(w, http.StatusOK, dayToResponse(day))
}

// UpdateDay handles PUT /api/v1/trips/{tripID}/days/{dayID}.
func (s *Server) UpdateDay(w http.ResponseWriter, r *http.Request) {
	tripID, ok := pathUUID(w, r, "tripID")
	if !ok {
		return
	}
	dayID, ok := pathUUID(w, r, "dayID")
	if !ok {
		return
	}
	var req dayRequest
	if !decodeBody(w, r, &req) {
		return
	}

	day := domain.TripDay{
		ID:          dayID,
		TripID:      tripID,
		Title:       req.Title,
		Description: req.Description,
		ImageURL:    req.ImageURL,
	}
	updated, err := s.days.Update(r.Context(), day)
	if err != nil {
		serviceError(w, err, "day")
		return
	}
	writeJSON(w, http.StatusOK, dayToResponse(updated))
}

// DeleteDay handles DELETE /api/v1/trips/{tripID}/days/{dayID}.
func (s *Server) DeleteDay(w http.ResponseWriter, r *http.Request) {
	tripID, ok := pathUUID(w, r, "tripID")
	if !ok {
		return
	}
	dayID, ok := pathUUID(w, r, "dayID")
	if !ok {
		return
	}

	if err := s.days.Delete(r.Context(), tripID, dayID); err != nil {
		serviceError(w, err, "day")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// CreateActivity handles POST /api/v1/trips/{tripID}/days/{dayID}/activities.
func (s *Server) CreateActivity(w http.ResponseWriter, r *http.Request) {
	tripID, ok := pathUUID(w, r, "tripID")
	if !ok {
		return
	}
	dayID, ok := pathUUID(w, r, "dayID")
	if !ok {
		return
	}
	var req activityRequest
	if !decodeBody(w, r, &req) {
		return
	}

	created, err := s.days.AddActivity(r.Context(), tripID, req.toDomain(dayID))
	if err != nil {
		serviceError(w, err, "activity")
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// ListActivities handles GET /api/v1/trips/{tripID}/days/{dayID}/activities.
func (s *Server) ListActivities(w http.ResponseWriter, r *http.Request) {
	dayID, ok := pathUUID(w, r, "dayID")
	if !ok {
		return
	}

	activities, err := s.days.ListActivities(r.Context(), dayID)
	if err != nil {
		serviceError(w, err, "activity")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"data": activities})
}

// UpdateActivity handles PUT /api/v1/trips/{tripID}/days/{dayID}/activities/{activityID}.
func (s *Server) UpdateActivity(w http.ResponseWriter, r *http.Request) {
	dayID, ok := pathUUID(w, r, "dayID")
	if !ok {
		return
	}
	activityID, ok := pathUUID(w, r, "activityID")
	if !ok {
		return
	}
	var req activityRequest
	if !decodeBody(w, r, &req) {
		return
	}

	activity := req.toDomain(dayID)
	activity.ID = activityID
	updated, err := s.days.UpdateActivity(r.Context(), activity)
	if err != nil {
		serviceError(w, err, "activity")
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// DeleteActivity handles DELETE /api/v1/trips/{tripID}/days/{dayID}/activities/{activityID}.
func (s *Server) DeleteActivity(w http.ResponseWriter, r *http.Request) {
	dayID, ok := pathUUID(w, r, "dayID")
	if !ok {
		return
	}
	activityID, ok := pathUUID(w, r, "activityID")
	if !ok {
		return
	}

	if err := s.days.DeleteActivity(r.Context(), dayID, activityID); err != nil {
		serviceError(w, err, "activity")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// --- mapping helpers --------------------------------------------------------

func (req activityRequest) toDomain(dayID uuid.UUID) domain.DayActivity {
	return domain.DayActivity{
		DayID:       dayID,
		Title:       req.Title,
		Description: req.Description,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		Cost:        req.Cost,
		Currency:    req.Currency,
		OrderIndex:  req.OrderIndex,
	}
}

func dayToResponse(d domain.TripDay) dayResponse {
	return dayResponse{
		ID:          d.ID.String(),
		TripID:      d.TripID.String(),
		Date:        openapi_types.Date{Time: d.Date},
		Title:       d.Title,
		Description: d.Description,
		ImageURL:    d.ImageURL,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}
