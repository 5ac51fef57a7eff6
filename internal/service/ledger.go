package service

import (
	"context"
	"time"

	"community-lunch-backend/internal/domain"
	"community-lunch-backend/internal/repository"
)

type ledgerService struct {
	store repository.Store
}

func NewLedgerService(store repository.Store) LedgerService {
	return &ledgerService{store: store}
}

// CreateEntry books a manual ledger entry (donations, receipts, staff
// payments, expenses, refunds). Entries tied to a package or lunch are
// created only by the synchronizer, never through here.
func (s *ledgerService) CreateEntry(ctx context.Context, entry *domain.LedgerEntry) error {
	if entry.LunchID != nil || entry.PackageID != nil {
		return domain.NewValidationError("package", domain.ErrInconsistentValue, "manual entries cannot reference a lunch or package")
	}
	if err := entry.Validate(); err != nil {
		return err
	}
	return s.store.Ledger().Create(ctx, entry)
}

func (s *ledgerService) GetEntry(ctx context.Context, id int32) (*domain.LedgerEntry, error) {
	return s.store.Ledger().GetByID(ctx, id)
}

func (s *ledgerService) UpdateEntry(ctx context.Context, entry *domain.LedgerEntry) error {
	if err := entry.Validate(); err != nil {
		return err
	}
	return s.store.ExecTx(ctx, func(tx repository.Store) error {
		current, err := tx.Ledger().GetByID(ctx, entry.ID)
		if err != nil {
			return err
		}
		// Source back-references are immutable.
		entry.LunchID = current.LunchID
		entry.PackageID = current.PackageID
		return tx.Ledger().Update(ctx, entry)
	})
}

func (s *ledgerService) DeleteEntry(ctx context.Context, id int32) error {
	return s.store.Ledger().Delete(ctx, id)
}

func (s *ledgerService) ListEntries(ctx context.Context, filter repository.LedgerFilter) ([]domain.LedgerEntry, error) {
	return s.store.Ledger().List(ctx, filter)
}

func (s *ledgerService) GetSummary(ctx context.Context, from, to time.Time) (*domain.LedgerSummary, error) {
	return s.store.Ledger().Summary(ctx, from, to)
}
