package handler

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/bellcorp/expense-tracker/internal/domain"
	"github.com/bellcorp/expense-tracker/internal/service"
)

const (
	defaultPage  = 1
	defaultLimit = 10
)

// TransactionHandler handles transaction-related HTTP requests.
type TransactionHandler struct {
	transactions *service.TransactionService
}

// NewTransactionHandler creates a new TransactionHandler.
func NewTransactionHandler(transactions *service.TransactionService) *TransactionHandler {
	return &TransactionHandler{transactions: transactions}
}

// HandleList serves the filtered, paginated transaction explorer query.
// GET /api/transactions?page=&limit=&search=&category=&startDate=&endDate=
// Response: {"transactions":[...],"totalPages":N,"currentPage":N,"totalTransactions":N}
func (h *TransactionHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Not authorized, no token provided")
		return
	}

	query, err := parseListQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.transactions.List(r.Context(), user.ID, query)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		slog.Error("list transactions", "error", err, "user_id", user.ID)
		writeError(w, http.StatusInternalServerError, "Server Error")
		return
	}

	writeJSON(w, http.StatusOK, toListResponseDTO(result))
}

// HandleSummary serves the dashboard aggregates.
// GET /api/transactions/summary
// Response: {"totalExpenses":N,"categoryBreakdown":{...},"recentTransactions":[...]}
func (h *TransactionHandler) HandleSummary(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Not authorized, no token provided")
		return
	}

	summary, err := h.transactions.Summarize(r.Context(), user.ID)
	if err != nil {
		slog.Error("summarize transactions", "error", err, "user_id", user.ID)
		writeError(w, http.StatusInternalServerError, "Server Error")
		return
	}

	writeJSON(w, http.StatusOK, toSummaryResponseDTO(summary))
}

// HandleCreate persists a new transaction for the caller.
// POST /api/transactions
func (h *TransactionHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Not authorized, no token provided")
		return
	}

	input, err := parseTransactionBody(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	tx, err := h.transactions.Create(r.Context(), user.ID, input)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			writeError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		slog.Error("create transaction", "error", err, "user_id", user.ID)
		writeError(w, http.StatusInternalServerError, "Server Error")
		return
	}

	writeJSON(w, http.StatusCreated, toTransactionDTO(tx))
}

// HandleUpdate applies a partial update to an owned transaction.
// PUT /api/transactions/{id}
func (h *TransactionHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Not authorized, no token provided")
		return
	}

	input, err := parseTransactionBody(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	tx, err := h.transactions.Update(r.Context(), user.ID, r.PathValue("id"), input)
	if err != nil {
		h.writeMutationError(w, "update transaction", user.ID, err)
		return
	}

	writeJSON(w, http.StatusOK, toTransactionDTO(tx))
}

// HandleDelete permanently removes an owned transaction.
// DELETE /api/transactions/{id}
func (h *TransactionHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Not authorized, no token provided")
		return
	}

	if err := h.transactions.Delete(r.Context(), user.ID, r.PathValue("id")); err != nil {
		h.writeMutationError(w, "delete transaction", user.ID, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Transaction removed successfully"})
}

func (h *TransactionHandler) writeMutationError(w http.ResponseWriter, op string, userID int64, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "Transaction not found")
	case errors.Is(err, domain.ErrForbidden):
		writeError(w, http.StatusForbidden, "Not authorized to modify this transaction")
	case errors.Is(err, domain.ErrInvalidInput):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	default:
		slog.Error(op, "error", err, "user_id", userID)
		writeError(w, http.StatusInternalServerError, "Server Error")
	}
}

// parseListQuery validates and defaults the untrusted query parameters
// of a list request. Absent page/limit take their defaults; supplied
// values must be positive integers, so limit=0 is rejected rather than
// read as "no limit".
func parseListQuery(r *http.Request) (service.ListQuery, error) {
	q := service.ListQuery{Page: defaultPage, Limit: defaultLimit}
	params := r.URL.Query()

	if v := params.Get("page"); v != "" {
		page, err := strconv.Atoi(v)
		if err != nil || page < 1 {
			return q, fmt.Errorf("page must be a positive integer, got %q", v)
		}
		q.Page = page
	}

	if v := params.Get("limit"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil || limit < 1 {
			return q, fmt.Errorf("limit must be a positive integer, got %q", v)
		}
		q.Limit = limit
	}

	q.Filter.Search = params.Get("search")
	q.Filter.Category = params.Get("category")

	// The end bound is an inclusive timestamp ceiling: a date-only value
	// means midnight, not end of day. Callers wanting a full day supply
	// a time component.
	if v := params.Get("startDate"); v != "" {
		t, err := parseDate(v)
		if err != nil {
			return q, fmt.Errorf("startDate must be RFC 3339 or YYYY-MM-DD, got %q", v)
		}
		q.Filter.StartDate = &t
	}
	if v := params.Get("endDate"); v != "" {
		t, err := parseDate(v)
		if err != nil {
			return q, fmt.Errorf("endDate must be RFC 3339 or YYYY-MM-DD, got %q", v)
		}
		q.Filter.EndDate = &t
	}

	return q, nil
}

// parseTransactionBody decodes a create/update body. All fields are
// optional at this layer; the service decides which are required.
func parseTransactionBody(r *http.Request) (service.TransactionInput, error) {
	var req struct {
		Title    *string  `json:"title"`
		Amount   *float64 `json:"amount"`
		Category *string  `json:"category"`
		Date     *string  `json:"date"`
		Notes    *string  `json:"notes"`
	}
	if err := readJSON(r, &req); err != nil {
		return service.TransactionInput{}, fmt.Errorf("invalid request body")
	}

	input := service.TransactionInput{
		Title:    req.Title,
		Amount:   req.Amount,
		Category: req.Category,
		Notes:    req.Notes,
	}

	if req.Date != nil {
		t, err := parseDate(*req.Date)
		if err != nil {
			return input, fmt.Errorf("date must be RFC 3339 or YYYY-MM-DD, got %q", *req.Date)
		}
		input.Date = &t
	}

	return input, nil
}

func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC(), nil
	}
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}
