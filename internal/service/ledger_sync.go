package service

import (
	"context"
	"fmt"
	"time"

	"community-lunch-backend/internal/domain"
	"community-lunch-backend/internal/repository"
)

// Ledger entry description labels. The label tells package purchases,
// package-drawn lunches, and standalone lunches apart.
const (
	packagePaymentLabel = "Package payment"
	packageLunchLabel   = "Package lunch"
	lunchPaymentLabel   = "Lunch payment"
)

// paymentSnapshot captures the payment-affecting fields of a package or
// lunch before a mutation. A nil snapshot means the source is being created.
type paymentSnapshot struct {
	status     domain.PaymentStatus
	valueCents int32
	date       time.Time
}

// ledgerSource is the view of a package or lunch the synchronizer needs.
// Exactly one of lunchID/packageID is set.
type ledgerSource struct {
	label      string
	memberName string
	valueCents int32
	date       time.Time
	status     domain.PaymentStatus
	lunchID    *int32
	packageID  *int32
}

func packageLedgerSource(pkg *domain.Package, memberName string) ledgerSource {
	id := pkg.ID
	return ledgerSource{
		label:      packagePaymentLabel,
		memberName: memberName,
		valueCents: pkg.ValueCents,
		date:       pkg.Date,
		status:     pkg.PaymentStatus,
		packageID:  &id,
	}
}

func lunchLedgerSource(lunch *domain.Lunch, memberName string) ledgerSource {
	id := lunch.ID
	label := lunchPaymentLabel
	if lunch.PackageID != nil {
		label = packageLunchLabel
	}
	return ledgerSource{
		label:      label,
		memberName: memberName,
		valueCents: lunch.ValueCents,
		date:       lunch.Date,
		status:     lunch.PaymentStatus,
		lunchID:    &id,
	}
}

// syncLedgerEntry reconciles the 0..1 ledger entry owned by a package or
// lunch after a write. Paid with a positive value means exactly one entry
// with the source's value, date, and description; anything else means no
// entry. The function is idempotent: re-running it against an unchanged
// source performs no writes. The entry is updated in place only when value,
// date, or the recomputed description differ from what was last stored.
func syncLedgerEntry(ctx context.Context, ledger repository.LedgerRepository, src ledgerSource, prev *paymentSnapshot) error {
	var entry *domain.LedgerEntry
	var err error
	if src.packageID != nil {
		entry, err = ledger.FindByPackage(ctx, *src.packageID)
	} else {
		entry, err = ledger.FindByLunch(ctx, *src.lunchID)
	}
	if err != nil {
		return fmt.Errorf("find ledger entry: %w", err)
	}

	isPaidNow := src.status == domain.PaymentStatusPaid
	wasPaid := prev != nil && prev.status == domain.PaymentStatusPaid

	if isPaidNow && src.valueCents > 0 {
		description := fmt.Sprintf("%s - %s - %s", src.label, src.memberName, src.date.Format("2006-01-02"))
		if entry != nil {
			changed := prev == nil ||
				prev.valueCents != src.valueCents ||
				!domain.DateOnly(prev.date).Equal(domain.DateOnly(src.date)) ||
				entry.Description != description
			if !changed {
				return nil
			}
			entry.EntryType = domain.EntryTypeInflow
			entry.Category = domain.EntryCategoryMealPayment
			entry.Description = description
			entry.ValueCents = src.valueCents
			entry.Date = src.date
			return ledger.Update(ctx, entry)
		}
		return ledger.Create(ctx, &domain.LedgerEntry{
			EntryType:   domain.EntryTypeInflow,
			Category:    domain.EntryCategoryMealPayment,
			Description: description,
			ValueCents:  src.valueCents,
			Date:        src.date,
			LunchID:     src.lunchID,
			PackageID:   src.packageID,
		})
	}

	if wasPaid && entry != nil {
		return ledger.Delete(ctx, entry.ID)
	}
	return nil
}
