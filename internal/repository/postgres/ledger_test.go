package postgres_test

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"

	"community-lunch-backend/internal/domain"
	"community-lunch-backend/internal/repository"
	"community-lunch-backend/internal/repository/postgres"
)

var ledgerCols = []string{
	"id", "entry_type", "category", "description", "value_cents", "date",
	"lunch_id", "package_id", "created_on", "updated_on",
}

func TestLedgerRepository_FindByPackage(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewLedgerRepository(db)
	ctx := context.Background()

	t.Run("Entry found", func(t *testing.T) {
		rows := sqlmock.NewRows(ledgerCols).AddRow(
			9, "INFLOW", "MEAL_PAYMENT", "Package payment - Maria Souza - 2025-03-01",
			15000, date("2025-03-01"), nil, 42, date("2025-03-01"), date("2025-03-01"))

		mock.ExpectQuery("SELECT (.+) FROM ledger_entries WHERE package_id").
			WithArgs(int32(42)).
			WillReturnRows(rows)

		entry, err := repo.FindByPackage(ctx, 42)
		assert.NoError(t, err)
		assert.NotNil(t, entry)
		assert.Equal(t, int32(42), *entry.PackageID)
		assert.Nil(t, entry.LunchID)
	})

	t.Run("No entry yields nil without error", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM ledger_entries WHERE package_id").
			WithArgs(int32(42)).
			WillReturnRows(sqlmock.NewRows(ledgerCols))

		entry, err := repo.FindByPackage(ctx, 42)
		assert.NoError(t, err)
		assert.Nil(t, entry)
	})
}

func TestLedgerRepository_Summary(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewLedgerRepository(db)
	ctx := context.Background()

	mock.ExpectQuery("SELECT (.+) FROM ledger_entries WHERE date").
		WithArgs(domain.EntryTypeInflow, domain.EntryTypeOutflow, date("2025-03-01"), date("2025-03-31")).
		WillReturnRows(sqlmock.NewRows([]string{"inflow", "outflow"}).AddRow(90000, 40000))

	summary, err := repo.Summary(ctx, date("2025-03-01"), date("2025-03-31"))
	assert.NoError(t, err)
	assert.Equal(t, int32(90000), summary.InflowCents)
	assert.Equal(t, int32(40000), summary.OutflowCents)
	assert.Equal(t, int32(50000), summary.BalanceCents)
}

func TestLedgerRepository_List(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewLedgerRepository(db)
	ctx := context.Background()

	entryType := domain.EntryTypeOutflow
	min := int32(1000)
	rows := sqlmock.NewRows(ledgerCols).AddRow(
		11, "OUTFLOW", "EXPENSE", "Gas refill", 12000, date("2025-03-05"),
		nil, nil, date("2025-03-05"), date("2025-03-05"))

	mock.ExpectQuery("SELECT (.+) FROM ledger_entries WHERE entry_type = \\$1 AND value_cents >= \\$2").
		WithArgs(entryType, min).
		WillReturnRows(rows)

	entries, err := repo.List(ctx, repository.LedgerFilter{EntryType: &entryType, ValueCentsMin: &min})
	assert.NoError(t, err)
	assert.Len(t, entries, 1)
	assert.Equal(t, "Gas refill", entries[0].Description)
}
