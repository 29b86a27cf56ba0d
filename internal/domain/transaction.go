package domain

import (
	"context"
	"time"
)

// Standard expense categories offered by the client. The field itself is
// free-form; these are conventions, not an enum.
const (
	CategoryFood          = "Food"
	CategoryTransport     = "Transport"
	CategoryEntertainment = "Entertainment"
	CategoryBills         = "Bills"
	CategoryOther         = "Other"
)

// Transaction is a single expense record owned by exactly one user.
// The owner reference is immutable after creation.
type Transaction struct {
	ID        string
	UserID    int64
	Title     string
	Amount    float64
	Category  string
	Date      time.Time
	Notes     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ListFilter describes the optional predicates of a transaction list
// query. All present predicates are combined conjunctively; owner
// scoping is always applied on top and is not part of the filter.
type ListFilter struct {
	// Search matches the title as a case-insensitive substring.
	Search string
	// Category is an exact match when non-empty.
	Category string
	// StartDate and EndDate bound the transaction date inclusively.
	// EndDate is a timestamp ceiling, not an end-of-day bound.
	StartDate *time.Time
	EndDate   *time.Time
}

// TransactionRepository defines persistence operations for transactions.
// List and ListAll return results ordered by date descending, ties in
// insertion order.
type TransactionRepository interface {
	Create(ctx context.Context, tx *Transaction) error
	GetByID(ctx context.Context, id string) (*Transaction, error)
	List(ctx context.Context, userID int64, f ListFilter, offset, limit int) ([]Transaction, error)
	Count(ctx context.Context, userID int64, f ListFilter) (int64, error)
	ListAll(ctx context.Context, userID int64) ([]Transaction, error)
	Update(ctx context.Context, tx *Transaction) error
	Delete(ctx context.Context, id string) error
}
