package service

import (
	"context"
	"time"

	"community-lunch-backend/internal/domain"
	"community-lunch-backend/internal/repository"
)

type lunchService struct {
	store repository.Store
	now   Clock
}

func NewLunchService(store repository.Store, now Clock) LunchService {
	if now == nil {
		now = time.Now
	}
	return &lunchService{store: store, now: now}
}

func (s *lunchService) CreateLunch(ctx context.Context, in CreateLunchInput) (*domain.Lunch, error) {
	if in.ValueCents < 0 {
		return nil, domain.NewValidationError("value_cents", domain.ErrInvalidAmount, "value must be zero or positive")
	}
	if in.Date.IsZero() {
		return nil, domain.NewValidationError("date", domain.ErrMissingField, "lunch date is required")
	}
	if in.PaymentStatus == "" {
		return nil, domain.NewValidationError("payment_status", domain.ErrMissingField, "payment status is required")
	}
	if in.PaymentMode == "" {
		in.PaymentMode = domain.PaymentModePix
	}

	lunch := &domain.Lunch{
		MemberID:      in.MemberID,
		ValueCents:    in.ValueCents,
		Date:          in.Date,
		PaymentStatus: in.PaymentStatus,
		PaymentMode:   in.PaymentMode,
	}

	err := s.store.ExecTx(ctx, func(tx repository.Store) error {
		member, err := tx.Members().GetByID(ctx, in.MemberID)
		if err != nil {
			return err
		}

		var pkg *domain.Package
		switch {
		case in.PackageID != nil:
			pkg, err = tx.Packages().GetByIDForUpdate(ctx, *in.PackageID)
			if err != nil {
				return err
			}
			if err := validatePackageLink(pkg, in.MemberID, in.Date); err != nil {
				return err
			}
		case in.UsePackage:
			pkg, err = tx.Packages().FindOldestEligible(ctx, in.MemberID, in.Date)
			if err != nil {
				return err
			}
			if pkg == nil {
				return domain.NewValidationError("package", domain.ErrNoEligiblePackage, "no valid package with remaining credits is available")
			}
		}

		if pkg != nil {
			lunch.PackageID = &pkg.ID
		}
		if err := tx.Lunches().Create(ctx, lunch); err != nil {
			return err
		}
		if pkg != nil {
			if err := tx.Packages().UpdateRemainingQuantity(ctx, pkg.ID, pkg.RemainingQuantity-1); err != nil {
				return err
			}
		}
		if err := promoteMember(ctx, tx, member, domain.RoleMonthly); err != nil {
			return err
		}
		return syncLedgerEntry(ctx, tx.Ledger(), lunchLedgerSource(lunch, member.FullName), nil)
	})
	if err != nil {
		return nil, err
	}
	return lunch, nil
}

func (s *lunchService) UpdateLunch(ctx context.Context, id int32, in UpdateLunchInput) (*domain.Lunch, error) {
	if in.ValueCents != nil && *in.ValueCents < 0 {
		return nil, domain.NewValidationError("value_cents", domain.ErrInvalidAmount, "value must be zero or positive")
	}

	var out *domain.Lunch
	err := s.store.ExecTx(ctx, func(tx repository.Store) error {
		lunch, err := tx.Lunches().GetByID(ctx, id)
		if err != nil {
			return err
		}
		prev := paymentSnapshot{status: lunch.PaymentStatus, valueCents: lunch.ValueCents, date: lunch.Date}

		date := lunch.Date
		if in.Date != nil {
			date = *in.Date
		}

		oldID := lunch.PackageID
		newID := oldID
		if in.ClearPackage {
			newID = nil
		} else if in.PackageID != nil {
			newID = in.PackageID
		}
		same := (oldID == nil && newID == nil) || (oldID != nil && newID != nil && *oldID == *newID)

		// Validate and lock the linked package before touching any balance,
		// so a rejected update writes nothing. The link is re-checked even
		// when it is not changing: moving the lunch date past the package's
		// expiration must fail too.
		var newPkg *domain.Package
		if newID != nil {
			newPkg, err = tx.Packages().GetByIDForUpdate(ctx, *newID)
			if err != nil {
				return err
			}
			if err := validatePackageLink(newPkg, lunch.MemberID, date); err != nil {
				return err
			}
		}

		if !same {
			if oldID != nil {
				oldPkg, err := tx.Packages().GetByIDForUpdate(ctx, *oldID)
				if err != nil {
					return err
				}
				if err := tx.Packages().UpdateRemainingQuantity(ctx, oldPkg.ID, oldPkg.RemainingQuantity+1); err != nil {
					return err
				}
			}
			if newPkg != nil {
				if err := tx.Packages().UpdateRemainingQuantity(ctx, newPkg.ID, newPkg.RemainingQuantity-1); err != nil {
					return err
				}
			}
		}

		lunch.PackageID = newID
		lunch.Date = date
		if in.ValueCents != nil {
			lunch.ValueCents = *in.ValueCents
		}
		if in.PaymentStatus != nil {
			lunch.PaymentStatus = *in.PaymentStatus
		}
		if in.PaymentMode != nil {
			lunch.PaymentMode = *in.PaymentMode
		}

		if err := tx.Lunches().Update(ctx, lunch); err != nil {
			return err
		}
		member, err := tx.Members().GetByID(ctx, lunch.MemberID)
		if err != nil {
			return err
		}
		if err := syncLedgerEntry(ctx, tx.Ledger(), lunchLedgerSource(lunch, member.FullName), &prev); err != nil {
			return err
		}
		out = lunch
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *lunchService) DeleteLunch(ctx context.Context, id int32) error {
	return s.store.ExecTx(ctx, func(tx repository.Store) error {
		if _, err := tx.Lunches().GetByID(ctx, id); err != nil {
			return err
		}
		entry, err := tx.Ledger().FindByLunch(ctx, id)
		if err != nil {
			return err
		}
		if entry != nil {
			if err := tx.Ledger().Delete(ctx, entry.ID); err != nil {
				return err
			}
		}
		return tx.Lunches().Delete(ctx, id)
	})
}

func (s *lunchService) GetLunch(ctx context.Context, id int32) (*domain.Lunch, error) {
	return s.store.Lunches().GetByID(ctx, id)
}

func (s *lunchService) ListLunches(ctx context.Context, filter repository.LunchFilter) ([]domain.Lunch, error) {
	return s.store.Lunches().List(ctx, filter)
}

func (s *lunchService) DecrementQuota(ctx context.Context, id int32, amount int32) error {
	return lunchQuotaError(amount)
}

func (s *lunchService) IncrementQuota(ctx context.Context, id int32, amount int32) error {
	return lunchQuotaError(amount)
}

// The amount is checked first so the two quota endpoints reject bad amounts
// the same way regardless of what record the id points at.
func lunchQuotaError(amount int32) error {
	if amount <= 0 {
		return domain.NewValidationError("amount", domain.ErrInvalidAmount, "amount must be greater than zero")
	}
	return domain.NewValidationError("id", domain.ErrNotAPackage, "quota adjustments apply only to packages")
}

// validatePackageLink enforces the conditions for drawing a lunch on the
// given date from pkg: same owner, at least one remaining credit, and an
// expiration on or after the lunch date.
func validatePackageLink(pkg *domain.Package, memberID int32, date time.Time) error {
	if pkg.MemberID != memberID {
		return domain.NewValidationError("package", domain.ErrPackageOwnershipMismatch, "package does not belong to the member")
	}
	if pkg.RemainingQuantity <= 0 {
		return domain.NewValidationError("package", domain.ErrPackageDepleted, "package has no remaining credits")
	}
	if domain.DateOnly(pkg.Expiration).Before(domain.DateOnly(date)) {
		return domain.NewValidationError("package", domain.ErrPackageExpired, "package is expired for the lunch date")
	}
	return nil
}
