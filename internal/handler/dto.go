package handler

import (
	"time"

	"github.com/bellcorp/expense-tracker/internal/domain"
	"github.com/bellcorp/expense-tracker/internal/service"
)

// UserDTO is the JSON representation of a user.
type UserDTO struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

func toUserDTO(u *domain.User) UserDTO {
	return UserDTO{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		CreatedAt: u.CreatedAt.Format(time.RFC3339),
		UpdatedAt: u.UpdatedAt.Format(time.RFC3339),
	}
}

// TransactionDTO is the JSON representation of a transaction.
type TransactionDTO struct {
	ID        string  `json:"id"`
	UserID    int64   `json:"userId"`
	Title     string  `json:"title"`
	Amount    float64 `json:"amount"`
	Category  string  `json:"category"`
	Date      string  `json:"date"`
	Notes     string  `json:"notes,omitempty"`
	CreatedAt string  `json:"createdAt"`
	UpdatedAt string  `json:"updatedAt"`
}

func toTransactionDTO(t *domain.Transaction) TransactionDTO {
	return TransactionDTO{
		ID:        t.ID,
		UserID:    t.UserID,
		Title:     t.Title,
		Amount:    t.Amount,
		Category:  t.Category,
		Date:      t.Date.Format(time.RFC3339),
		Notes:     t.Notes,
		CreatedAt: t.CreatedAt.Format(time.RFC3339),
		UpdatedAt: t.UpdatedAt.Format(time.RFC3339),
	}
}

func toTransactionDTOs(txs []domain.Transaction) []TransactionDTO {
	dtos := make([]TransactionDTO, len(txs))
	for i := range txs {
		dtos[i] = toTransactionDTO(&txs[i])
	}
	return dtos
}

// ListResponseDTO is the envelope of a paginated list query.
type ListResponseDTO struct {
	Transactions      []TransactionDTO `json:"transactions"`
	TotalPages        int64            `json:"totalPages"`
	CurrentPage       int              `json:"currentPage"`
	TotalTransactions int64            `json:"totalTransactions"`
}

func toListResponseDTO(res *service.ListResult) ListResponseDTO {
	return ListResponseDTO{
		Transactions:      toTransactionDTOs(res.Transactions),
		TotalPages:        res.TotalPages,
		CurrentPage:       res.CurrentPage,
		TotalTransactions: res.TotalTransactions,
	}
}

// SummaryResponseDTO is the envelope of the dashboard summary.
type SummaryResponseDTO struct {
	TotalExpenses      float64            `json:"totalExpenses"`
	CategoryBreakdown  map[string]float64 `json:"categoryBreakdown"`
	RecentTransactions []TransactionDTO   `json:"recentTransactions"`
}

func toSummaryResponseDTO(s *service.Summary) SummaryResponseDTO {
	return SummaryResponseDTO{
		TotalExpenses:      s.TotalExpenses,
		CategoryBreakdown:  s.CategoryBreakdown,
		RecentTransactions: toTransactionDTOs(s.RecentTransactions),
	}
}
