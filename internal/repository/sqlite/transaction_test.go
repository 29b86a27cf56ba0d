package sqlite_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/bellcorp/expense-tracker/internal/domain"
	"github.com/bellcorp/expense-tracker/internal/repository/sqlite"
	"github.com/google/uuid"
)

func seedTransaction(t *testing.T, db *sqlite.DB, userID int64, title, category string, amount float64, date time.Time) string {
	t.Helper()
	tx := &domain.Transaction{
		ID:       uuid.NewString(),
		UserID:   userID,
		Title:    title,
		Amount:   amount,
		Category: category,
		Date:     date,
	}
	if err := db.Transactions().Create(context.Background(), tx); err != nil {
		t.Fatalf("seed transaction: %v", err)
	}
	return tx.ID
}

func TestTransactionRepo_CreateAndGet(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	userID := seedUser(t, db, "txcreate@example.com")

	date := time.Date(2026, 3, 15, 12, 30, 0, 0, time.UTC)
	id := seedTransaction(t, db, userID, "Groceries", domain.CategoryFood, 42.50, date)

	got, err := db.Transactions().GetByID(ctx, id)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Title != "Groceries" || got.Amount != 42.50 || got.Category != domain.CategoryFood {
		t.Fatalf("unexpected transaction: %+v", got)
	}
	if !got.Date.Equal(date) {
		t.Fatalf("expected date %v, got %v", date, got.Date)
	}
	if got.UserID != userID {
		t.Fatalf("expected user %d, got %d", userID, got.UserID)
	}
}

func TestTransactionRepo_GetMissing(t *testing.T) {
	db := newTestDB(t)

	_, err := db.Transactions().GetByID(context.Background(), uuid.NewString())
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestTransactionRepo_ListOrdering(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	userID := seedUser(t, db, "order@example.com")

	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	seedTransaction(t, db, userID, "oldest", domain.CategoryOther, 1, base)
	seedTransaction(t, db, userID, "newest", domain.CategoryOther, 1, base.AddDate(0, 0, 2))
	seedTransaction(t, db, userID, "middle", domain.CategoryOther, 1, base.AddDate(0, 0, 1))

	txs, err := db.Transactions().List(ctx, userID, domain.ListFilter{}, 0, 10)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(txs) != 3 {
		t.Fatalf("expected 3 transactions, got %d", len(txs))
	}
	want := []string{"newest", "middle", "oldest"}
	for i, title := range want {
		if txs[i].Title != title {
			t.Fatalf("position %d: expected %q, got %q", i, title, txs[i].Title)
		}
	}
}

func TestTransactionRepo_ListEqualDatesKeepInsertionOrder(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	userID := seedUser(t, db, "ties@example.com")

	date := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	seedTransaction(t, db, userID, "first", domain.CategoryOther, 1, date)
	seedTransaction(t, db, userID, "second", domain.CategoryOther, 1, date)
	seedTransaction(t, db, userID, "third", domain.CategoryOther, 1, date)

	txs, err := db.Transactions().List(ctx, userID, domain.ListFilter{}, 0, 10)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	want := []string{"first", "second", "third"}
	for i, title := range want {
		if txs[i].Title != title {
			t.Fatalf("position %d: expected %q, got %q", i, title, txs[i].Title)
		}
	}
}

func TestTransactionRepo_SearchFilter(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	userID := seedUser(t, db, "search@example.com")

	now := time.Now().UTC()
	seedTransaction(t, db, userID, "Morning Coffee", domain.CategoryFood, 4.50, now)
	seedTransaction(t, db, userID, "Bus ticket", domain.CategoryTransport, 2.75, now)

	// Case-insensitive substring match on the title.
	txs, err := db.Transactions().List(ctx, userID, domain.ListFilter{Search: "coffee"}, 0, 10)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(txs) != 1 || txs[0].Title != "Morning Coffee" {
		t.Fatalf("expected only Morning Coffee, got %+v", txs)
	}

	// A regex metacharacter is a literal, not a pattern.
	txs, err = db.Transactions().List(ctx, userID, domain.ListFilter{Search: ".*"}, 0, 10)
	if err != nil {
		t.Fatalf("List with metacharacters: %v", err)
	}
	if len(txs) != 0 {
		t.Fatalf("expected no matches for literal %q, got %d", ".*", len(txs))
	}
}

func TestTransactionRepo_CategoryAndDateFilters(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	userID := seedUser(t, db, "filters@example.com")

	jan := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)
	feb := time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC)
	mar := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	seedTransaction(t, db, userID, "January rent", domain.CategoryBills, 900, jan)
	seedTransaction(t, db, userID, "February rent", domain.CategoryBills, 900, feb)
	seedTransaction(t, db, userID, "March takeout", domain.CategoryFood, 25, mar)

	txs, err := db.Transactions().List(ctx, userID, domain.ListFilter{Category: domain.CategoryBills}, 0, 10)
	if err != nil {
		t.Fatalf("List by category: %v", err)
	}
	if len(txs) != 2 {
		t.Fatalf("expected 2 bills, got %d", len(txs))
	}

	// Date bounds are inclusive on both ends.
	txs, err = db.Transactions().List(ctx, userID, domain.ListFilter{StartDate: &jan, EndDate: &feb}, 0, 10)
	if err != nil {
		t.Fatalf("List by date range: %v", err)
	}
	if len(txs) != 2 {
		t.Fatalf("expected 2 in [jan, feb], got %d", len(txs))
	}

	count, err := db.Transactions().Count(ctx, userID, domain.ListFilter{Category: domain.CategoryBills, EndDate: &jan})
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected count 1, got %d", count)
	}
}

func TestTransactionRepo_OwnerScoping(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	alice := seedUser(t, db, "alice@example.com")
	bob := seedUser(t, db, "bob@example.com")

	now := time.Now().UTC()
	seedTransaction(t, db, alice, "Alice lunch", domain.CategoryFood, 12, now)
	seedTransaction(t, db, bob, "Bob lunch", domain.CategoryFood, 15, now)

	txs, err := db.Transactions().List(ctx, alice, domain.ListFilter{}, 0, 10)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(txs) != 1 || txs[0].Title != "Alice lunch" {
		t.Fatalf("expected only Alice's transaction, got %+v", txs)
	}

	all, err := db.Transactions().ListAll(ctx, bob)
	if err != nil {
		t.Fatalf("ListAll: %v", err)
	}
	if len(all) != 1 || all[0].Title != "Bob lunch" {
		t.Fatalf("expected only Bob's transaction, got %+v", all)
	}
}

func TestTransactionRepo_UpdateMissing(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	userID := seedUser(t, db, "updmiss@example.com")

	tx := &domain.Transaction{
		ID:       uuid.NewString(),
		UserID:   userID,
		Title:    "Ghost",
		Amount:   1,
		Category: domain.CategoryOther,
		Date:     time.Now().UTC(),
	}
	// Never inserted: the write matches zero rows, as it would if a
	// concurrent delete interleaved between lookup and write.
	err := db.Transactions().Update(ctx, tx)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestTransactionRepo_Delete(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	userID := seedUser(t, db, "delete@example.com")

	id := seedTransaction(t, db, userID, "Doomed", domain.CategoryOther, 5, time.Now().UTC())

	if err := db.Transactions().Delete(ctx, id); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	if _, err := db.Transactions().GetByID(ctx, id); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}

	// Deleting again is NotFound, not success.
	if err := db.Transactions().Delete(ctx, id); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second delete, got %v", err)
	}
}
