package postgres

import (
	"context"
	"fmt"
	"time"

	"community-lunch-backend/internal/domain"
	"community-lunch-backend/internal/repository"
)

type lunchRepository struct {
	db DBTX
}

func NewLunchRepository(db DBTX) repository.LunchRepository {
	return &lunchRepository{db: db}
}

const lunchColumns = `id, member_id, package_id, value_cents, date, payment_status, payment_mode, created_on, updated_on`

func (r *lunchRepository) Create(ctx context.Context, l *domain.Lunch) error {
	query := `INSERT INTO lunches (member_id, package_id, value_cents, date, payment_status, payment_mode, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id`
	now := time.Now().Format("2006-01-02")
	l.CreatedOn = now
	l.UpdatedOn = now
	return r.db.QueryRowContext(ctx, query,
		l.MemberID, l.PackageID, l.ValueCents, l.Date, l.PaymentStatus, l.PaymentMode,
		l.CreatedOn, l.UpdatedOn,
	).Scan(&l.ID)
}

func (r *lunchRepository) GetByID(ctx context.Context, id int32) (*domain.Lunch, error) {
	query := `SELECT ` + lunchColumns + ` FROM lunches WHERE id = $1`
	return scanLunchFrom(r.db.QueryRowContext(ctx, query, id))
}

func (r *lunchRepository) Update(ctx context.Context, l *domain.Lunch) error {
	query := `UPDATE lunches SET member_id=$1, package_id=$2, value_cents=$3, date=$4, payment_status=$5, payment_mode=$6, updated_on=$7 WHERE id=$8`
	l.UpdatedOn = time.Now().Format("2006-01-02")
	_, err := r.db.ExecContext(ctx, query,
		l.MemberID, l.PackageID, l.ValueCents, l.Date, l.PaymentStatus, l.PaymentMode,
		l.UpdatedOn, l.ID)
	return err
}

func (r *lunchRepository) Delete(ctx context.Context, id int32) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM lunches WHERE id = $1`, id)
	return err
}

func (r *lunchRepository) List(ctx context.Context, filter repository.LunchFilter) ([]domain.Lunch, error) {
	query := `SELECT ` + lunchColumns + ` FROM lunches`
	var conditions []string
	var args []any

	if filter.MemberID != nil {
		args = append(args, *filter.MemberID)
		conditions = append(conditions, fmt.Sprintf("member_id = $%d", len(args)))
	}
	if filter.PackageID != nil {
		args = append(args, *filter.PackageID)
		conditions = append(conditions, fmt.Sprintf("package_id = $%d", len(args)))
	}
	if filter.PaymentStatus != nil {
		args = append(args, *filter.PaymentStatus)
		conditions = append(conditions, fmt.Sprintf("payment_status = $%d", len(args)))
	}
	if filter.Date != nil {
		args = append(args, *filter.Date)
		conditions = append(conditions, fmt.Sprintf("date = $%d", len(args)))
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

	var lunches []domain.Lunch
	for rows.Next() {
		l, err := scanLunchFrom(rows)
		if err != nil {
			return nil, err
		}
		lunches = append(lunches, *l)
	}
	return lunches, rows.Err()
}

func (r *lunchRepository) Count(ctx context.Context) (int32, error) {
	var count int32
	err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM lunches`).Scan(&count)
	return count, err
}

func (r *lunchRepository) CountOpen(ctx context.Context) (int32, error) {
	var count int32
	query := `SELECT count(*) FROM lunches WHERE payment_status = $1`
	err := r.db.QueryRowContext(ctx, query, domain.PaymentStatusOpen).Scan(&count)
	return count, err
}

func (r *lunchRepository) CountBetween(ctx context.Context, from, to time.Time) (int32, error) {
	var count int32
	query := `SELECT count(*) FROM lunches WHERE date >= $1 AND date <= $2`
	err := r.db.QueryRowContext(ctx, query, from, to).Scan(&count)
	return count, err
}

func scanLunchFrom(s rowScanner) (*domain.Lunch, error) {
	l := &domain.Lunch{}
	var createdOn, updatedOn time.Time
	err := s.Scan(&l.ID, &l.MemberID, &l.PackageID, &l.ValueCents, &l.Date,
		&l.PaymentStatus, &l.PaymentMode, &createdOn, &updatedOn)
	if err != nil {
		return nil, err
	}
	l.CreatedOn = createdOn.Format("2006-01-02")
	l.UpdatedOn = updatedOn.Format("2006-01-02")
	return l, nil
}
