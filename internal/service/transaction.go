package service

import (
	"context"
	"fmt"
	"time"

	"github.com/bellcorp/expense-tracker/internal/domain"
	"github.com/google/uuid"
)

// recentLimit is the number of transactions shown on the dashboard.
const recentLimit = 5

// TransactionService handles transaction queries, aggregation, and
// owner-scoped mutations.
type TransactionService struct {
	transactions domain.TransactionRepository
}

// NewTransactionService creates a new TransactionService.
func NewTransactionService(transactions domain.TransactionRepository) *TransactionService {
	return &TransactionService{transactions: transactions}
}

// ListQuery is the validated parameter set of a list query. Page and
// Limit must be positive; handlers default absent values before calling.
type ListQuery struct {
	Page   int
	Limit  int
	Filter domain.ListFilter
}

// ListResult is one page of a filtered transaction query together with
// totals computed over the full filtered set.
type ListResult struct {
	Transactions      []domain.Transaction
	TotalPages        int64
	CurrentPage       int
	TotalTransactions int64
}

// Summary aggregates all transactions owned by one user.
type Summary struct {
	TotalExpenses      float64
	CategoryBreakdown  map[string]float64
	RecentTransactions []domain.Transaction
}

// TransactionInput carries the fields of a create or partial-update
// request. Nil means the field was not supplied.
type TransactionInput struct {
	Title    *string
	Amount   *float64
	Category *string
	Date     *time.Time
	Notes    *string
}

// List executes a paginated, filtered query scoped to the owner.
// TotalPages and TotalTransactions always reflect the full filtered
// set; a page past the end yields an empty page, not an error.
func (s *TransactionService) List(ctx context.Context, userID int64, q ListQuery) (*ListResult, error) {
	if q.Page < 1 {
		return nil, fmt.Errorf("%w: page must be a positive integer", domain.ErrInvalidInput)
	}
	if q.Limit < 1 {
		return nil, fmt.Errorf("%w: limit must be a positive integer", domain.ErrInvalidInput)
	}

	total, err := s.transactions.Count(ctx, userID, q.Filter)
	if err != nil {
		return nil, fmt.Errorf("count transactions: %w", err)
	}

	offset := (q.Page - 1) * q.Limit
	txs, err := s.transactions.List(ctx, userID, q.Filter, offset, q.Limit)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}

	limit := int64(q.Limit)
	return &ListResult{
		Transactions:      txs,
		TotalPages:        (total + limit - 1) / limit,
		CurrentPage:       q.Page,
		TotalTransactions: total,
	}, nil
}

// Summarize computes the dashboard aggregates for one owner: total
// expenses, per-category sums, and the five most recent transactions.
// The recent slice comes from a second query against the same account
// state; skew between the two reads is tolerated.
func (s *TransactionService) Summarize(ctx context.Context, userID int64) (*Summary, error) {
	all, err := s.transactions.ListAll(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list all transactions: %w", err)
	}

	var total float64
	breakdown := make(map[string]float64)
	for _, tx := range all {
		total += tx.Amount
		breakdown[tx.Category] += tx.Amount
	}

	recent, err := s.transactions.List(ctx, userID, domain.ListFilter{}, 0, recentLimit)
	if err != nil {
		return nil, fmt.Errorf("list recent transactions: %w", err)
	}

	return &Summary{
		TotalExpenses:      total,
		CategoryBreakdown:  breakdown,
		RecentTransactions: recent,
	}, nil
}

// Create validates and persists a new transaction for the owner. The
// owner always comes from the verified caller, never from the input.
func (s *TransactionService) Create(ctx context.Context, userID int64, in TransactionInput) (*domain.Transaction, error) {
	if in.Title == nil || *in.Title == "" {
		return nil, fmt.Errorf("%w: title is required", domain.ErrInvalidInput)
	}
	if in.Amount == nil {
		return nil, fmt.Errorf("%w: amount is required", domain.ErrInvalidInput)
	}
	if in.Category == nil || *in.Category == "" {
		return nil, fmt.Errorf("%w: category is required", domain.ErrInvalidInput)
	}

	tx := &domain.Transaction{
		ID:       uuid.NewString(),
		UserID:   userID,
		Title:    *in.Title,
		Amount:   *in.Amount,
		Category: *in.Category,
		Date:     time.Now().UTC(),
	}
	if in.Date != nil {
		tx.Date = *in.Date
	}
	if in.Notes != nil {
		tx.Notes = *in.Notes
	}

	if err := s.transactions.Create(ctx, tx); err != nil {
		return nil, fmt.Errorf("create transaction: %w", err)
	}
	return tx, nil
}

// Update applies a partial update to an owned transaction. The
// ownership check precedes any mutation; unsupplied fields keep their
// prior values, so an empty input is an idempotent no-op.
func (s *TransactionService) Update(ctx context.Context, userID int64, id string, in TransactionInput) (*domain.Transaction, error) {
	tx, err := s.transactions.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if tx.UserID != userID {
		return nil, domain.ErrForbidden
	}

	if in.Title != nil {
		tx.Title = *in.Title
	}
	if in.Amount != nil {
		tx.Amount = *in.Amount
	}
	if in.Category != nil {
		tx.Category = *in.Category
	}
	if in.Date != nil {
		tx.Date = *in.Date
	}
	if in.Notes != nil {
		tx.Notes = *in.Notes
	}

	if tx.Title == "" {
		return nil, fmt.Errorf("%w: title is required", domain.ErrInvalidInput)
	}
	if tx.Category == "" {
		return nil, fmt.Errorf("%w: category is required", domain.ErrInvalidInput)
	}

	if err := s.transactions.Update(ctx, tx); err != nil {
		return nil, err
	}
	return tx, nil
}

// Delete permanently removes an owned transaction. Deleting an already
// deleted transaction reports NotFound.
func (s *TransactionService) Delete(ctx context.Context, userID int64, id string) error {
	tx, err := s.transactions.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if tx.UserID != userID {
		return domain.ErrForbidden
	}

	return s.transactions.Delete(ctx, id)
}
