package repository

import (
	"context"
	"time"

	"community-lunch-backend/internal/domain"
)

type MemberRepository interface {
	Create(ctx context.Context, member *domain.Member) error
	GetByID(ctx context.Context, id int32) (*domain.Member, error)
	Update(ctx context.Context, member *domain.Member) error
	// UpdateRole persists only the role column.
	UpdateRole(ctx context.Context, id int32, role domain.Role) error
	List(ctx context.Context) ([]domain.Member, error)
	Count(ctx context.Context) (int32, error)
	CountByRole(ctx context.Context) (map[domain.Role]int32, error)
}

type PackageRepository interface {
	Create(ctx context.Context, pkg *domain.Package) error
	GetByID(ctx context.Context, id int32) (*domain.Package, error)
	// GetByIDForUpdate locks the row for the remainder of the enclosing
	// transaction so balance checks and quota writes cannot race.
	GetByIDForUpdate(ctx context.Context, id int32) (*domain.Package, error)
	Update(ctx context.Context, pkg *domain.Package) error
	UpdateRemainingQuantity(ctx context.Context, id int32, remaining int32) error
	// FindOldestEligible returns the member's package with the earliest
	// purchase date (ties broken by lowest id) that still has credits, is
	// VALID, and does not expire before onDate. Returns (nil, nil) when no
	// package qualifies. The row is locked like GetByIDForUpdate.
	FindOldestEligible(ctx context.Context, memberID int32, onDate time.Time) (*domain.Package, error)
	ListByMember(ctx context.Context, memberID int32) ([]domain.Package, error)
	List(ctx context.Context) ([]domain.Package, error)
	Delete(ctx context.Context, id int32) error
	// MarkExpired stamps EXPIRED on VALID packages whose expiration lies
	// before asOf, returning the number of rows touched.
	MarkExpired(ctx context.Context, asOf time.Time) (int64, error)
}

type LunchFilter struct {
	MemberID      *int32
	PackageID     *int32
	PaymentStatus *domain.PaymentStatus
	Date          *time.Time
}

type LunchRepository interface {
	Create(ctx context.Context, lunch *domain.Lunch) error
	GetByID(ctx context.Context, id int32) (*domain.Lunch, error)
	Update(ctx context.Context, lunch *domain.Lunch) error
	Delete(ctx context.Context, id int32) error
	List(ctx context.Context, filter LunchFilter) ([]domain.Lunch, error)
	Count(ctx context.Context) (int32, error)
	CountOpen(ctx context.Context) (int32, error)
	CountBetween(ctx context.Context, from, to time.Time) (int32, error)
}

type LedgerFilter struct {
	EntryType     *domain.EntryType
	Category      *domain.EntryCategory
	DateFrom      *time.Time
	DateTo        *time.Time
	ValueCentsMin *int32
	ValueCentsMax *int32
}

type LedgerRepository interface {
	Create(ctx context.Context, entry *domain.LedgerEntry) error
	GetByID(ctx context.Context, id int32) (*domain.LedgerEntry, error)
	Update(ctx context.Context, entry *domain.LedgerEntry) error
	Delete(ctx context.Context, id int32) error
	// FindByPackage and FindByLunch resolve the 1:0..1 back-reference from a
	// source record to its ledger entry. Both return (nil, nil) when the
	// source has no entry.
	FindByPackage(ctx context.Context, packageID int32) (*domain.LedgerEntry, error)
	FindByLunch(ctx context.Context, lunchID int32) (*domain.LedgerEntry, error)
	List(ctx context.Context, filter LedgerFilter) ([]domain.LedgerEntry, error)
	Summary(ctx context.Context, from, to time.Time) (*domain.LedgerSummary, error)
}

// Store bundles the repositories over one database handle. ExecTx runs fn
// against a store bound to a single transaction: every repository call made
// through that store commits or rolls back as a unit.
type Store interface {
	Members() MemberRepository
	Packages() PackageRepository
	Lunches() LunchRepository
	Ledger() LedgerRepository
	ExecTx(ctx context.Context, fn func(Store) error) error
}
