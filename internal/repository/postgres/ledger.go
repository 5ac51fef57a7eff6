package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"community-lunch-backend/internal/domain"
	"community-lunch-backend/internal/repository"
)

type ledgerRepository struct {
	db DBTX
}

func NewLedgerRepository(db DBTX) repository.LedgerRepository {
	return &ledgerRepository{db: db}
}

const ledgerColumns = `id, entry_type, category, description, value_cents, date, lunch_id, package_id, created_on, updated_on`

func (r *ledgerRepository) Create(ctx context.Context, e *domain.LedgerEntry) error {
	query := `INSERT INTO ledger_entries (entry_type, category, description, value_cents, date, lunch_id, package_id, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING id`
	now := time.Now().Format("2006-01-02")
	e.CreatedOn = now
	e.UpdatedOn = now
	return r.db.QueryRowContext(ctx, query,
		e.EntryType, e.Category, e.Description, e.ValueCents, e.Date,
		e.LunchID, e.PackageID, e.CreatedOn, e.UpdatedOn,
	).Scan(&e.ID)
}

func (r *ledgerRepository) GetByID(ctx context.Context, id int32) (*domain.LedgerEntry, error) {
	query := `SELECT ` + ledgerColumns + ` FROM ledger_entries WHERE id = $1`
	return scanEntryFrom(r.db.QueryRowContext(ctx, query, id))
}

func (r *ledgerRepository) Update(ctx context.Context, e *domain.LedgerEntry) error {
	query := `UPDATE ledger_entries SET entry_type=$1, category=$2, description=$3, value_cents=$4, date=$5, updated_on=$6 WHERE id=$7`
	e.UpdatedOn = time.Now().Format("2006-01-02")
	_, err := r.db.ExecContext(ctx, query,
		e.EntryType, e.Category, e.Description, e.ValueCents, e.Date, e.UpdatedOn, e.ID)
	return err
}

func (r *ledgerRepository) Delete(ctx context.Context, id int32) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM ledger_entries WHERE id = $1`, id)
	return err
}

func (r *ledgerRepository) FindByPackage(ctx context.Context, packageID int32) (*domain.LedgerEntry, error) {
	query := `SELECT ` + ledgerColumns + ` FROM ledger_entries WHERE package_id = $1`
	entry, err := scanEntryFrom(r.db.QueryRowContext(ctx, query, packageID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return entry, err
}

func (r *ledgerRepository) FindByLunch(ctx context.Context, lunchID int32) (*domain.LedgerEntry, error) {
	query := `SELECT ` + ledgerColumns + ` FROM ledger_entries WHERE lunch_id = $1`
	entry, err := scanEntryFrom(r.db.QueryRowContext(ctx, query, lunchID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return entry, err
}

func (r *ledgerRepository) List(ctx context.Context, filter repository.LedgerFilter) ([]domain.LedgerEntry, error) {
	query := `SELECT ` + ledgerColumns + ` FROM ledger_entries`
	var conditions []string
	var args []any

	if filter.EntryType != nil {
		args = append(args, *filter.EntryType)
		conditions = append(conditions, fmt.Sprintf("entry_type = $%d", len(args)))
	}
	if filter.Category != nil {
		args = append(args, *filter.Category)
		conditions = append(conditions, fmt.Sprintf("category = $%d", len(args)))
	}
	if filter.DateFrom != nil {
		args = append(args, *filter.DateFrom)
		conditions = append(conditions, fmt.Sprintf("date >= $%d", len(args)))
	}
	if filter.DateTo != nil {
		args = append(args, *filter.DateTo)
		conditions = append(conditions, fmt.Sprintf("date <= $%d", len(args)))
	}
	if filter.ValueCentsMin != nil {
		args = append(args, *filter.ValueCentsMin)
		conditions = append(conditions, fmt.Sprintf("value_cents >= $%d", len(args)))
	}
	if filter.ValueCentsMax != nil {
		args = append(args, *filter.ValueCentsMax)
		conditions = append(conditions, fmt.Sprintf("value_cents <= $%d", len(args)))
	}

	for i, cond := range conditions {
		if i == 0 {
			query += " WHERE " + cond
		} else {
			query += " AND " + cond
		}
	}
	query += " ORDER BY date DESC, created_on DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []domain.LedgerEntry
	for rows.Next() {
		e, err := scanEntryFrom(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, *e)
	}
	return entries, rows.Err()
}

func (r *ledgerRepository) Summary(ctx context.Context, from, to time.Time) (*domain.LedgerSummary, error) {
	summary := &domain.LedgerSummary{}
	query := `SELECT
	            COALESCE(SUM(CASE WHEN entry_type = $1 THEN value_cents ELSE 0 END), 0),
	            COALESCE(SUM(CASE WHEN entry_type = $2 THEN value_cents ELSE 0 END), 0)
	          FROM ledger_entries WHERE date >= $3 AND date <= $4`
	err := r.db.QueryRowContext(ctx, query, domain.EntryTypeInflow, domain.EntryTypeOutflow, from, to).
		Scan(&summary.InflowCents, &summary.OutflowCents)
	if err != nil {
		return nil, err
	}
	summary.BalanceCents = summary.InflowCents - summary.OutflowCents
	return summary, nil
}

func scanEntryFrom(s rowScanner) (*domain.LedgerEntry, error) {
	e := &domain.LedgerEntry{}
	var createdOn, updatedOn time.Time
	err := s.Scan(&e.ID, &e.EntryType, &e.Category, &e.Description, &e.ValueCents,
		&e.Date, &e.LunchID, &e.PackageID, &createdOn, &updatedOn)
	if err != nil {
		return nil, err
	}
	e.CreatedOn = createdOn.Format("2006-01-02")
	e.UpdatedOn = updatedOn.Format("2006-01-02")
	return e, nil
}
