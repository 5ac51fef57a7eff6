package service

import (
	"context"
	"time"

	"community-lunch-backend/internal/domain"
	"community-lunch-backend/internal/repository"
)

// Clock supplies "today" to the services so expiration and validity logic is
// deterministic under test. Pass nil to the constructors to use time.Now.
type Clock func() time.Time

type MemberService interface {
	CreateMember(ctx context.Context, member *domain.Member) error
	GetMember(ctx context.Context, id int32) (*domain.Member, error)
	UpdateMember(ctx context.Context, member *domain.Member) error
	ListMembers(ctx context.Context) ([]domain.Member, error)
}

type CreatePackageInput struct {
	MemberID          int32
	UnitValueCents    *int32
	ValueCents        *int32
	Quantity          int32
	RemainingQuantity *int32
	Date              time.Time
	Expiration        time.Time
	PaymentStatus     domain.PaymentStatus
	PaymentMode       domain.PaymentMode
}

// UpdatePackageInput carries partial updates; nil fields keep current values.
type UpdatePackageInput struct {
	UnitValueCents    *int32
	ValueCents        *int32
	Quantity          *int32
	RemainingQuantity *int32
	Date              *time.Time
	Expiration        *time.Time
	PaymentStatus     *domain.PaymentStatus
	PaymentMode       *domain.PaymentMode
}

type PackageService interface {
	CreatePackage(ctx context.Context, input CreatePackageInput) (*domain.Package, error)
	UpdatePackage(ctx context.Context, id int32, input UpdatePackageInput) (*domain.Package, error)
	DeletePackage(ctx context.Context, id int32) error
	GetPackage(ctx context.Context, id int32) (*domain.Package, error)
	ListPackages(ctx context.Context) ([]domain.Package, error)
	ListMemberPackages(ctx context.Context, memberID int32) ([]domain.Package, error)
	DecrementQuota(ctx context.Context, id int32, amount int32) (*domain.Package, error)
	IncrementQuota(ctx context.Context, id int32, amount int32) (*domain.Package, error)
}

type CreateLunchInput struct {
	MemberID      int32
	ValueCents    int32
	Date          time.Time
	PaymentStatus domain.PaymentStatus
	PaymentMode   domain.PaymentMode
	// PackageID links the lunch to an explicit package. UsePackage instead
	// asks the service to pick the member's oldest eligible package.
	PackageID  *int32
	UsePackage bool
}

// UpdateLunchInput carries partial updates. PackageID repoints the lunch to
// another package; ClearPackage unlinks it. Both unset leaves the link alone.
type UpdateLunchInput struct {
	ValueCents    *int32
	Date          *time.Time
	PaymentStatus *domain.PaymentStatus
	PaymentMode   *domain.PaymentMode
	PackageID     *int32
	ClearPackage  bool
}

type LunchService interface {
	CreateLunch(ctx context.Context, input CreateLunchInput) (*domain.Lunch, error)
	UpdateLunch(ctx context.Context, id int32, input UpdateLunchInput) (*domain.Lunch, error)
	DeleteLunch(ctx context.Context, id int32) error
	GetLunch(ctx context.Context, id int32) (*domain.Lunch, error)
	ListLunches(ctx context.Context, filter repository.LunchFilter) ([]domain.Lunch, error)
	// Quota adjustments exist on lunches only to report the error: a lunch
	// record carries no bounded quota.
	DecrementQuota(ctx context.Context, id int32, amount int32) error
	IncrementQuota(ctx context.Context, id int32, amount int32) error
}

type LedgerService interface {
	CreateEntry(ctx context.Context, entry *domain.LedgerEntry) error
	GetEntry(ctx context.Context, id int32) (*domain.LedgerEntry, error)
	UpdateEntry(ctx context.Context, entry *domain.LedgerEntry) error
	DeleteEntry(ctx context.Context, id int32) error
	ListEntries(ctx context.Context, filter repository.LedgerFilter) ([]domain.LedgerEntry, error)
	GetSummary(ctx context.Context, from, to time.Time) (*domain.LedgerSummary, error)
}

type DashboardService interface {
	GetSummary(ctx context.Context) (*domain.DashboardSummary, error)
}
