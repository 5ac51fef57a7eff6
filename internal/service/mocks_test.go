package service_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"community-lunch-backend/internal/domain"
	"community-lunch-backend/internal/repository"
)

// mockStore satisfies repository.Store over the mock repositories. ExecTx
// runs fn against the same store so expectations set on the repos cover
// transactional calls too.
type mockStore struct {
	members  *MockMemberRepo
	packages *MockPackageRepo
	lunches  *MockLunchRepo
	ledger   *MockLedgerRepo
}

func newMockStore() *mockStore {
	return &mockStore{
		members:  new(MockMemberRepo),
		packages: new(MockPackageRepo),
		lunches:  new(MockLunchRepo),
		ledger:   new(MockLedgerRepo),
	}
}

func (s *mockStore) Members() repository.MemberRepository   { return s.members }
func (s *mockStore) Packages() repository.PackageRepository { return s.packages }
func (s *mockStore) Lunches() repository.LunchRepository    { return s.lunches }
func (s *mockStore) Ledger() repository.LedgerRepository    { return s.ledger }

func (s *mockStore) ExecTx(ctx context.Context, fn func(repository.Store) error) error {
	return fn(s)
}

// MockMemberRepo
type MockMemberRepo struct {
	mock.Mock
}

func (m *MockMemberRepo) Create(ctx context.Context, member *domain.Member) error {
	args := m.Called(ctx, member)
	return args.Error(0)
}
func (m *MockMemberRepo) GetByID(ctx context.Context, id int32) (*domain.Member, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Member), args.Error(1)
}
func (m *MockMemberRepo) Update(ctx context.Context, member *domain.Member) error {
	args := m.Called(ctx, member)
	return args.Error(0)
}
func (m *MockMemberRepo) UpdateRole(ctx context.Context, id int32, role domain.Role) error {
	args := m.Called(ctx, id, role)
	return args.Error(0)
}
func (m *MockMemberRepo) List(ctx context.Context) ([]domain.Member, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Member), args.Error(1)
}
func (m *MockMemberRepo) Count(ctx context.Context) (int32, error) {
	args := m.Called(ctx)
	return args.Get(0).(int32), args.Error(1)
}
func (m *MockMemberRepo) CountByRole(ctx context.Context) (map[domain.Role]int32, error) {
	args := m.Called(ctx)
	return args.Get(0).(map[domain.Role]int32), args.Error(1)
}

// MockPackageRepo
type MockPackageRepo struct {
	mock.Mock
}

func (m *MockPackageRepo) Create(ctx context.Context, pkg *domain.Package) error {
	args := m.Called(ctx, pkg)
	return args.Error(0)
}
func (m *MockPackageRepo) GetByID(ctx context.Context, id int32) (*domain.Package, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Package), args.Error(1)
}
func (m *MockPackageRepo) GetByIDForUpdate(ctx context.Context, id int32) (*domain.Package, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Package), args.Error(1)
}
func (m *MockPackageRepo) Update(ctx context.Context, pkg *domain.Package) error {
	args := m.Called(ctx, pkg)
	return args.Error(0)
}
func (m *MockPackageRepo) UpdateRemainingQuantity(ctx context.Context, id int32, remaining int32) error {
	args := m.Called(ctx, id, remaining)
	return args.Error(0)
}
func (m *MockPackageRepo) FindOldestEligible(ctx context.Context, memberID int32, onDate time.Time) (*domain.Package, error) {
	args := m.Called(ctx, memberID, onDate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Package), args.Error(1)
}
func (m *MockPackageRepo) ListByMember(ctx context.Context, memberID int32) ([]domain.Package, error) {
	args := m.Called(ctx, memberID)
	return args.Get(0).([]domain.Package), args.Error(1)
}
func (m *MockPackageRepo) List(ctx context.Context) ([]domain.Package, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Package), args.Error(1)
}
func (m *MockPackageRepo) Delete(ctx context.Context, id int32) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockPackageRepo) MarkExpired(ctx context.Context, asOf time.Time) (int64, error) {
	args := m.Called(ctx, asOf)
	return args.Get(0).(int64), args.Error(1)
}

// MockLunchRepo
type MockLunchRepo struct {
	mock.Mock
}

func (m *MockLunchRepo) Create(ctx context.Context, lunch *domain.Lunch) error {
	args := m.Called(ctx, lunch)
	return args.Error(0)
}
func (m *MockLunchRepo) GetByID(ctx context.Context, id int32) (*domain.Lunch, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Lunch), args.Error(1)
}
func (m *MockLunchRepo) Update(ctx context.Context, lunch *domain.Lunch) error {
	args := m.Called(ctx, lunch)
	return args.Error(0)
}
func (m *MockLunchRepo) Delete(ctx context.Context, id int32) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockLunchRepo) List(ctx context.Context, filter repository.LunchFilter) ([]domain.Lunch, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]domain.Lunch), args.Error(1)
}
func (m *MockLunchRepo) Count(ctx context.Context) (int32, error) {
	args := m.Called(ctx)
	return args.Get(0).(int32), args.Error(1)
}
func (m *MockLunchRepo) CountOpen(ctx context.Context) (int32, error) {
	args := m.Called(ctx)
	return args.Get(0).(int32), args.Error(1)
}
func (m *MockLunchRepo) CountBetween(ctx context.Context, from, to time.Time) (int32, error) {
	args := m.Called(ctx, from, to)
	return args.Get(0).(int32), args.Error(1)
}

// MockLedgerRepo
type MockLedgerRepo struct {
	mock.Mock
}

func (m *MockLedgerRepo) Create(ctx context.Context, entry *domain.LedgerEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}
func (m *MockLedgerRepo) GetByID(ctx context.Context, id int32) (*domain.LedgerEntry, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerEntry), args.Error(1)
}
func (m *MockLedgerRepo) Update(ctx context.Context, entry *domain.LedgerEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}
func (m *MockLedgerRepo) Delete(ctx context.Context, id int32) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockLedgerRepo) FindByPackage(ctx context.Context, packageID int32) (*domain.LedgerEntry, error) {
	args := m.Called(ctx, packageID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerEntry), args.Error(1)
}
func (m *MockLedgerRepo) FindByLunch(ctx context.Context, lunchID int32) (*domain.LedgerEntry, error) {
	args := m.Called(ctx, lunchID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerEntry), args.Error(1)
}
func (m *MockLedgerRepo) List(ctx context.Context, filter repository.LedgerFilter) ([]domain.LedgerEntry, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]domain.LedgerEntry), args.Error(1)
}
func (m *MockLedgerRepo) Summary(ctx context.Context, from, to time.Time) (*domain.LedgerSummary, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerSummary), args.Error(1)
}
