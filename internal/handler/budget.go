package handler

import "net/http"

// defaultDisplayCurrency is used when the request omits ?currency=.
const defaultDisplayCurrency = "USD"

// GetBudget handles GET /api/v1/trips/{tripID}/budget.
// The optional ?currency= query parameter selects the display currency.
func (s *Server) GetBudget(w http.ResponseWriter, r *http.Request) {
	tripID, ok := pathUUID(w, r, "tripID")
	if !ok {
		return
	}

	currency := r.URL.Query().Get("currency")
	if currency == "" {
		currency = defaultDisplayCurrency
	}

	summary, err := s.budget.Summary(r.Context(), tripID, currency)
	if err != nil {
		serviceError(w, err, "budget")
		return
	}
	writeJSON(w, http.StatusOK, summary)
}
