package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"community-lunch-backend/internal/domain"
	"community-lunch-backend/internal/repository"
)

type packageRepository struct {
	db DBTX
}

func NewPackageRepository(db DBTX) repository.PackageRepository {
	return &packageRepository{db: db}
}

const packageColumns = `id, member_id, value_cents, unit_value_cents, date, payment_status, payment_mode, quantity, remaining_quantity, expiration, status, created_on, updated_on`

func (r *packageRepository) Create(ctx context.Context, p *domain.Package) error {
	query := `INSERT INTO packages (member_id, value_cents, unit_value_cents, date, payment_status, payment_mode, quantity, remaining_quantity, expiration, status, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12) RETURNING id`
	now := time.Now().Format("2006-01-02")
	p.CreatedOn = now
	p.UpdatedOn = now
	return r.db.QueryRowContext(ctx, query,
		p.MemberID, p.ValueCents, p.UnitValueCents, p.Date, p.PaymentStatus, p.PaymentMode,
		p.Quantity, p.RemainingQuantity, p.Expiration, p.Status, p.CreatedOn, p.UpdatedOn,
	).Scan(&p.ID)
}

func (r *packageRepository) GetByID(ctx context.Context, id int32) (*domain.Package, error) {
	query := `SELECT ` + packageColumns + ` FROM packages WHERE id = $1`
	return scanPackageFrom(r.db.QueryRowContext(ctx, query, id))
}

func (r *packageRepository) GetByIDForUpdate(ctx context.Context, id int32) (*domain.Package, error) {
	query := `SELECT ` + packageColumns + ` FROM packages WHERE id = $1 FOR UPDATE`
	return scanPackageFrom(r.db.QueryRowContext(ctx, query, id))
}

func (r *packageRepository) Update(ctx context.Context, p *domain.Package) error {
	query := `UPDATE packages SET value_cents=$1, unit_value_cents=$2, date=$3, payment_status=$4, payment_mode=$5, quantity=$6, remaining_quantity=$7, expiration=$8, status=$9, updated_on=$10 WHERE id=$11`
	p.UpdatedOn = time.Now().Format("2006-01-02")
	_, err := r.db.ExecContext(ctx, query,
		p.ValueCents, p.UnitValueCents, p.Date, p.PaymentStatus, p.PaymentMode,
		p.Quantity, p.RemainingQuantity, p.Expiration, p.Status, p.UpdatedOn, p.ID)
	return err
}

func (r *packageRepository) UpdateRemainingQuantity(ctx context.Context, id int32, remaining int32) error {
	query := `UPDATE packages SET remaining_quantity=$1, updated_on=$2 WHERE id=$3`
	_, err := r.db.ExecContext(ctx, query, remaining, time.Now().Format("2006-01-02"), id)
	return err
}

func (r *packageRepository) FindOldestEligible(ctx context.Context, memberID int32, onDate time.Time) (*domain.Package, error) {
	query := `SELECT ` + packageColumns + ` FROM packages
	          WHERE member_id = $1 AND remaining_quantity > 0 AND status = $2 AND expiration >= $3
	          ORDER BY date, id LIMIT 1 FOR UPDATE`
	pkg, err := scanPackageFrom(r.db.QueryRowContext(ctx, query, memberID, domain.PackageStatusValid, onDate))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return pkg, err
}

func (r *packageRepository) ListByMember(ctx context.Context, memberID int32) ([]domain.Package, error) {
	query := `SELECT ` + packageColumns + ` FROM packages WHERE member_id = $1 ORDER BY date DESC, id DESC`
	return r.queryPackages(ctx, query, memberID)
}

func (r *packageRepository) List(ctx context.Context) ([]domain.Package, error) {
	query := `SELECT ` + packageColumns + ` FROM packages ORDER BY date DESC, id DESC`
	return r.queryPackages(ctx, query)
}

func (r *packageRepository) Delete(ctx context.Context, id int32) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM packages WHERE id = $1`, id)
	return err
}

func (r *packageRepository) MarkExpired(ctx context.Context, asOf time.Time) (int64, error) {
	query := `UPDATE packages SET status=$1, updated_on=$2 WHERE status=$3 AND expiration < $4`
	result, err := r.db.ExecContext(ctx, query,
		domain.PackageStatusExpired, time.Now().Format("2006-01-02"), domain.PackageStatusValid, asOf)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func (r *packageRepository) queryPackages(ctx context.Context, query string, args ...any) ([]domain.Package, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var pkgs []domain.Package
	for rows.Next() {
		p, err := scanPackageFrom(rows)
		if err != nil {
			return nil, err
		}
		pkgs = append(pkgs, *p)
	}
	return pkgs, rows.Err()
}

func scanPackageFrom(s rowScanner) (*domain.Package, error) {
	p := &domain.Package{}
	var createdOn, updatedOn time.Time
	err := s.Scan(&p.ID, &p.MemberID, &p.ValueCents, &p.UnitValueCents, &p.Date,
		&p.PaymentStatus, &p.PaymentMode, &p.Quantity, &p.RemainingQuantity,
		&p.Expiration, &p.Status, &createdOn, &updatedOn)
	if err != nil {
		return nil, err
	}
	p.CreatedOn = createdOn.Format("2006-01-02")
	p.UpdatedOn = updatedOn.Format("2006-01-02")
	return p, nil
}
