package service

import (
	"context"
	"time"

	"community-lunch-backend/internal/domain"
	"community-lunch-backend/internal/repository"
)

type packageService struct {
	store repository.Store
	now   Clock
}

func NewPackageService(store repository.Store, now Clock) PackageService {
	if now == nil {
		now = time.Now
	}
	return &packageService{store: store, now: now}
}

func (s *packageService) CreatePackage(ctx context.Context, in CreatePackageInput) (*domain.Package, error) {
	if in.Quantity <= 0 {
		return nil, domain.NewValidationError("quantity", domain.ErrMissingField, "quantity is required for a package")
	}
	if in.Date.IsZero() {
		return nil, domain.NewValidationError("date", domain.ErrMissingField, "purchase date is required")
	}
	if in.Expiration.IsZero() {
		return nil, domain.NewValidationError("expiration", domain.ErrMissingField, "package expiration is required")
	}
	if in.PaymentStatus == "" {
		return nil, domain.NewValidationError("payment_status", domain.ErrMissingField, "payment status is required")
	}
	if in.PaymentMode == "" {
		in.PaymentMode = domain.PaymentModePix
	}

	unit, value, err := resolvePackageValue(in.UnitValueCents, in.ValueCents, in.Quantity)
	if err != nil {
		return nil, err
	}

	remaining := in.Quantity
	if in.RemainingQuantity != nil {
		remaining = *in.RemainingQuantity
	}
	if remaining < 0 {
		return nil, domain.NewValidationError("remaining_quantity", domain.ErrInvalidAmount, "remaining quantity must be zero or positive")
	}
	if remaining > in.Quantity {
		return nil, domain.NewValidationError("remaining_quantity", domain.ErrQuantityExceeded, "remaining credits cannot exceed the package quantity")
	}

	pkg := &domain.Package{
		MemberID:          in.MemberID,
		ValueCents:        value,
		UnitValueCents:    unit,
		Date:              in.Date,
		PaymentStatus:     in.PaymentStatus,
		PaymentMode:       in.PaymentMode,
		Quantity:          in.Quantity,
		RemainingQuantity: remaining,
		Expiration:        in.Expiration,
		Status:            domain.StatusOn(in.Expiration, s.now()),
	}

	err = s.store.ExecTx(ctx, func(tx repository.Store) error {
		member, err := tx.Members().GetByID(ctx, in.MemberID)
		if err != nil {
			return err
		}
		if err := tx.Packages().Create(ctx, pkg); err != nil {
			return err
		}
		if err := promoteMember(ctx, tx, member, domain.RoleMonthly); err != nil {
			return err
		}
		return syncLedgerEntry(ctx, tx.Ledger(), packageLedgerSource(pkg, member.FullName), nil)
	})
	if err != nil {
		return nil, err
	}
	return pkg, nil
}

func (s *packageService) UpdatePackage(ctx context.Context, id int32, in UpdatePackageInput) (*domain.Package, error) {
	var out *domain.Package
	err := s.store.ExecTx(ctx, func(tx repository.Store) error {
		pkg, err := tx.Packages().GetByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		prev := paymentSnapshot{status: pkg.PaymentStatus, valueCents: pkg.ValueCents, date: pkg.Date}

		quantity := pkg.Quantity
		if in.Quantity != nil {
			quantity = *in.Quantity
		}
		if quantity <= 0 {
			return domain.NewValidationError("quantity", domain.ErrMissingField, "quantity is required for a package")
		}

		unit, value := pkg.UnitValueCents, pkg.ValueCents
		switch {
		case in.UnitValueCents != nil || in.ValueCents != nil:
			unit, value, err = resolvePackageValue(coalesceUnit(in.UnitValueCents, pkg.UnitValueCents), in.ValueCents, quantity)
			if err != nil {
				return err
			}
		case in.Quantity != nil && pkg.UnitValueCents > 0:
			// Quantity changed with no new prices: keep the stored unit
			// price and recompute the total from it.
			value = pkg.UnitValueCents * quantity
		}

		remaining := pkg.RemainingQuantity
		if in.RemainingQuantity != nil {
			remaining = *in.RemainingQuantity
		}
		if remaining < 0 {
			return domain.NewValidationError("remaining_quantity", domain.ErrInvalidAmount, "remaining quantity must be zero or positive")
		}
		if remaining > quantity {
			return domain.NewValidationError("remaining_quantity", domain.ErrQuantityExceeded, "remaining credits cannot exceed the package quantity")
		}

		if in.Date != nil {
			pkg.Date = *in.Date
		}
		if in.Expiration != nil {
			pkg.Expiration = *in.Expiration
		}
		if in.PaymentStatus != nil {
			pkg.PaymentStatus = *in.PaymentStatus
		}
		if in.PaymentMode != nil {
			pkg.PaymentMode = *in.PaymentMode
		}
		pkg.Quantity = quantity
		pkg.UnitValueCents = unit
		pkg.ValueCents = value
		pkg.RemainingQuantity = remaining
		pkg.Status = domain.StatusOn(pkg.Expiration, s.now())

		if err := tx.Packages().Update(ctx, pkg); err != nil {
			return err
		}
		member, err := tx.Members().GetByID(ctx, pkg.MemberID)
		if err != nil {
			return err
		}
		if err := syncLedgerEntry(ctx, tx.Ledger(), packageLedgerSource(pkg, member.FullName), &prev); err != nil {
			return err
		}
		out = pkg
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *packageService) DeletePackage(ctx context.Context, id int32) error {
	return s.store.ExecTx(ctx, func(tx repository.Store) error {
		if _, err := tx.Packages().GetByID(ctx, id); err != nil {
			return err
		}
		entry, err := tx.Ledger().FindByPackage(ctx, id)
		if err != nil {
			return err
		}
		if entry != nil {
			if err := tx.Ledger().Delete(ctx, entry.ID); err != nil {
				return err
			}
		}
		return tx.Packages().Delete(ctx, id)
	})
}

func (s *packageService) GetPackage(ctx context.Context, id int32) (*domain.Package, error) {
	return s.store.Packages().GetByID(ctx, id)
}

func (s *packageService) ListPackages(ctx context.Context) ([]domain.Package, error) {
	return s.store.Packages().List(ctx)
}

func (s *packageService) ListMemberPackages(ctx context.Context, memberID int32) ([]domain.Package, error) {
	return s.store.Packages().ListByMember(ctx, memberID)
}

func (s *packageService) DecrementQuota(ctx context.Context, id int32, amount int32) (*domain.Package, error) {
	if amount <= 0 {
		return nil, domain.NewValidationError("amount", domain.ErrInvalidAmount, "amount must be greater than zero")
	}
	var out *domain.Package
	err := s.store.ExecTx(ctx, func(tx repository.Store) error {
		pkg, err := tx.Packages().GetByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if pkg.RemainingQuantity < amount {
			return domain.NewValidationError("remaining_quantity", domain.ErrInsufficientBalance, "package does not have enough remaining credits")
		}
		pkg.RemainingQuantity -= amount
		if err := tx.Packages().UpdateRemainingQuantity(ctx, pkg.ID, pkg.RemainingQuantity); err != nil {
			return err
		}
		out = pkg
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *packageService) IncrementQuota(ctx context.Context, id int32, amount int32) (*domain.Package, error) {
	if amount <= 0 {
		return nil, domain.NewValidationError("amount", domain.ErrInvalidAmount, "amount must be greater than zero")
	}
	var out *domain.Package
	err := s.store.ExecTx(ctx, func(tx repository.Store) error {
		pkg, err := tx.Packages().GetByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if pkg.RemainingQuantity+amount > pkg.Quantity {
			return domain.NewValidationError("remaining_quantity", domain.ErrQuantityExceeded, "remaining credits cannot exceed the package quantity")
		}
		pkg.RemainingQuantity += amount
		if err := tx.Packages().UpdateRemainingQuantity(ctx, pkg.ID, pkg.RemainingQuantity); err != nil {
			return err
		}
		out = pkg
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// resolvePackageValue reconciles unit price and total value for a package of
// the given quantity. At least one of unit/total must be present; when both
// are, they must agree.
func resolvePackageValue(unitCents, valueCents *int32, quantity int32) (unit int32, value int32, err error) {
	if unitCents == nil && valueCents == nil {
		return 0, 0, domain.NewValidationError("unit_value_cents", domain.ErrMissingField, "either the unit price or the total value is required")
	}
	if unitCents != nil {
		if *unitCents < 0 {
			return 0, 0, domain.NewValidationError("unit_value_cents", domain.ErrInvalidAmount, "unit price must be zero or positive")
		}
		expected := *unitCents * quantity
		if valueCents != nil && *valueCents != expected {
			return 0, 0, domain.NewValidationError("value_cents", domain.ErrInconsistentValue, "total value must equal unit price times quantity")
		}
		return *unitCents, expected, nil
	}
	if *valueCents < 0 {
		return 0, 0, domain.NewValidationError("value_cents", domain.ErrInvalidAmount, "value must be zero or positive")
	}
	return 0, *valueCents, nil
}

func coalesceUnit(in *int32, current int32) *int32 {
	if in != nil {
		return in
	}
	if current > 0 {
		return &current
	}
	return nil
}

// promoteMember raises the member's role to target when target outranks the
// current role, persisting only the role column.
func promoteMember(ctx context.Context, tx repository.Store, member *domain.Member, target domain.Role) error {
	role, changed := domain.PromoteRole(member.Role, target)
	if !changed {
		return nil
	}
	member.Role = role
	return tx.Members().UpdateRole(ctx, member.ID, role)
}
