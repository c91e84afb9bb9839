package handler

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	openapi_types "github.com/oapi-codegen/runtime/types"
	"github.com/shopspring/decimal"

	"github.com/tripcanvas/backend/internal/domain"
)

// expenseRequest is the JSON body for creating or updating an expense.
// Type is stored verbatim; values outside the budget categories are legal
// but contribute to no bucket.
type expenseRequest struct {
	Title    string              `json:"title"`
	Type     string              `json:"type"`
	Cost     *decimal.Decimal    `json:"cost,omitempty"`
	Currency string              `json:"currency,omitempty"`
	Paid     bool                `json:"paid"`
	Date     *openapi_types.Date `json:"date,omitempty"`
}

// expenseResponse is the JSON representation of an expense.
type expenseResponse struct {
	ID        string              `json:"id"`
	TripID    string              `json:"trip_id"`
	Title     string              `json:"title"`
	Type      string              `json:"type"`
	Cost      *decimal.Decimal    `json:"cost,omitempty"`
	Currency  string              `json:"currency,omitempty"`
	Paid      bool                `json:"paid"`
	Date      *openapi_types.Date `json:"date,omitempty"`
	CreatedAt time.Time           `json:"created_at"`
	UpdatedAt time.Time           `json:"updated_at"`
}

// CreateExpense handles POST /api/v1/trips/{tripID}/expenses.
func (s *Server) CreateExpense(w http.ResponseWriter, r *http.Request) {
	tripID, ok := pathUUID(w, r, "tripID")
	if !ok {
		return
	}
	var req expenseRequest
	if !decodeBody(w, r, &req) {
		return
	}

	created, err := s.expenses.Create(r.Context(), req.toDomain(tripID))
	if err != nil {
		serviceError(w, err, "expense")
		return
	}
	writeJSON(w, http.StatusCreated, expenseToResponse(created))
}

// ListExpenses handles GET /api/v1/trips/{tripID}/expenses.
func (s *Server) ListExpenses(w http.ResponseWriter, r *http.Request) {
	tripID, ok := pathUUID(w, r, "tripID")
	if !ok {
		return
	}

	expenses, err := s.expenses.ListByTripID(r.Context(), tripID)
	if err != nil {
		serviceError(w, err, "expense")
		return
	}

	data := make([]expenseResponse, len(expenses))
	for i, e := range expenses {
		data[i] = expenseToResponse(e)
	}
	writeJSON(w, http.StatusOK, map[string]any{"data": data})
}

// GetExpense handles GET /api/v1/trips/{tripID}/expenses/{expenseID}.
func (s *Server) GetExpense(w http.ResponseWriter, r *http.Request) {
	tripID, ok := pathUUID(w, r, "tripID")
	if !ok {
		return
	}
	expenseID, ok := pathUUID(w, r, "expenseID")
	if !ok {
		return
	}

	expense, err := s.expenses.GetByID(r.Context(), tripID, expenseID)
	if err != nil {
		serviceError(w, err, "expense")
		return
	}
	writeJSON(w, http.StatusOK, expenseToResponse(expense))
}

// UpdateExpense handles PUT /api/v1/trips/{tripID}/expenses/{expenseID}.
func (s *Server) UpdateExpense(w http.ResponseWriter, r *http.Request) {
	tripID, ok := pathUUID(w, r, "tripID")
	if !ok {
		return
	}
	expenseID, ok := pathUUID(w, r, "expenseID")
	if !ok {
		return
	}
	var req expenseRequest
	if !decodeBody(w, r, &req) {
		return
	}

	expense := req.toDomain(tripID)
	expense.ID = expenseID
	updated, err := s.expenses.Update(r.Context(), expense)
	if err != nil {
		serviceError(w, err, "expense")
		return
	}
	writeJSON(w, http.StatusOK, expenseToResponse(updated))
}

// DeleteExpense handles DELETE /api/v1/trips/{tripID}/expenses/{expenseID}.
func (s *Server) DeleteExpense(w http.ResponseWriter, r *http.Request) {
	tripID, ok := pathUUID(w, r, "tripID")
	if !ok {
		return
	}
	expenseID, ok := pathUUID(w, r, "expenseID")
	if !ok {
		return
	}

	if err := s.expenses.Delete(r.Context(), tripID, expenseID); err != nil {
		serviceError(w, err, "expense")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// --- mapping helpers --------------------------------------------------------

func (req expenseRequest) toDomain(tripID uuid.UUID) domain.Expense {
	expense := domain.Expense{
		TripID:   tripID,
		Title:    req.Title,
		Type:     req.Type,
		Cost:     req.Cost,
		Currency: req.Currency,
		Paid:     req.Paid,
	}
	if req.Date != nil {
		d := req.Date.Time
		expense.Date = &d
	}
	return expense
}

func expenseToResponse(e domain.Expense) expenseResponse {
	resp := expenseResponse{
		ID:        e.ID.String(),
		TripID:    e.TripID.String(),
		Title:     e.Title,
		Type:      e.Type,
		Cost:      e.Cost,
		Currency:  e.Currency,
		Paid:      e.Paid,
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
	if e.Date != nil {
		resp.Date = &openapi_types.Date{Time: *e.Date}
	}
	return resp
}
