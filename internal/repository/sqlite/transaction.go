package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/bellcorp/expense-tracker/internal/domain"
)

// transactionRepo implements domain.TransactionRepository using SQLite.
type transactionRepo struct {
	db *sql.DB
}

const transactionColumns = "id, user_id, title, amount, category, date, notes, created_at, updated_at"

func (r *transactionRepo) Create(ctx context.Context, tx *domain.Transaction) error {
	now := time.Now().UTC()
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO transactions (id, user_id, title, amount, category, date, notes, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		tx.ID, tx.UserID, tx.Title, tx.Amount, tx.Category, tx.Date.UTC(), tx.Notes, now, now,
	)
	if err != nil {
		return fmt.Errorf("insert transaction: %w", err)
	}

	tx.CreatedAt = now
	tx.UpdatedAt = now
	return nil
}

func (r *transactionRepo) GetByID(ctx context.Context, id string) (*domain.Transaction, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+transactionColumns+` FROM transactions WHERE id = ?`, id)

	tx, err := scanTransaction(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("query transaction by id: %w", err)
	}
	return tx, nil
}

// List returns the offset/limit window of the owner's transactions
// matching the filter, ordered by date descending. Ties share a date
// and fall back to insertion order (rowid).
func (r *transactionRepo) List(ctx context.Context, userID int64, f domain.ListFilter, offset, limit int) ([]domain.Transaction, error) {
	where, args := buildFilter(userID, f)
	args = append(args, limit, offset)

	rows, err := r.db.QueryContext(ctx,
		`SELECT `+transactionColumns+` FROM transactions `+where+
			` ORDER BY date DESC, rowid ASC LIMIT ? OFFSET ?`, args...)
	if err != nil {
		return nil, fmt.Errorf("query transactions: %w", err)
	}
	defer rows.Close()

	return collectTransactions(rows)
}

// Count returns the number of the owner's transactions matching the
// filter, independent of any pagination window.
func (r *transactionRepo) Count(ctx context.Context, userID int64, f domain.ListFilter) (int64, error) {
	where, args := buildFilter(userID, f)

	var total int64
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM transactions `+where, args...).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("count transactions: %w", err)
	}
	return total, nil
}

// ListAll returns every transaction owned by the user, ordered like List.
func (r *transactionRepo) ListAll(ctx context.Context, userID int64) ([]domain.Transaction, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+transactionColumns+` FROM transactions
		 WHERE user_id = ? ORDER BY date DESC, rowid ASC`, userID)
	if err != nil {
		return nil, fmt.Errorf("query all transactions: %w", err)
	}
	defer rows.Close()

	return collectTransactions(rows)
}

func (r *transactionRepo) Update(ctx context.Context, tx *domain.Transaction) error {
	now := time.Now().UTC()
	result, err := r.db.ExecContext(ctx,
		`UPDATE transactions
		 SET title = ?, amount = ?, category = ?, date = ?, notes = ?, updated_at = ?
		 WHERE id = ?`,
		tx.Title, tx.Amount, tx.Category, tx.Date.UTC(), tx.Notes, now, tx.ID,
	)
	if err != nil {
		return fmt.Errorf("update transaction: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}
	// A concurrent delete between lookup and write lands here.
	if affected == 0 {
		return domain.ErrNotFound
	}

	tx.UpdatedAt = now
	return nil
}

func (r *transactionRepo) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM transactions WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}
	if affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// buildFilter composes the conjunctive WHERE clause for a list query.
// Owner scoping is unconditional; the search term is bound as a plain
// parameter so user input never reaches a pattern engine.
func buildFilter(userID int64, f domain.ListFilter) (string, []any) {
	where := "WHERE user_id = ?"
	args := []any{userID}

	if f.Search != "" {
		where += " AND instr(lower(title), lower(?)) > 0"
		args = append(args, f.Search)
	}
	if f.Category != "" {
		where += " AND category = ?"
		args = append(args, f.Category)
	}
	if f.StartDate != nil {
		where += " AND date >= ?"
		args = append(args, f.StartDate.UTC())
	}
	if f.EndDate != nil {
		where += " AND date <= ?"
		args = append(args, f.EndDate.UTC())
	}

	return where, args
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTransaction(row rowScanner) (*domain.Transaction, error) {
	tx := &domain.Transaction{}
	err := row.Scan(&tx.ID, &tx.UserID, &tx.Title, &tx.Amount, &tx.Category,
		&tx.Date, &tx.Notes, &tx.CreatedAt, &tx.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return tx, nil
}

func collectTransactions(rows *sql.Rows) ([]domain.Transaction, error) {
	var txs []domain.Transaction
	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		txs = append(txs, *tx)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transactions: %w", err)
	}
	return txs, nil
}
