package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"community-lunch-backend/internal/domain"
)

func TestLedgerEntryValidate(t *testing.T) {
	valid := func() *domain.LedgerEntry {
		return &domain.LedgerEntry{
			EntryType:   domain.EntryTypeOutflow,
			Category:    domain.EntryCategoryExpense,
			Description: "Gas refill",
			ValueCents:  12000,
			Date:        date("2025-03-10"),
		}
	}

	assert.NoError(t, valid().Validate())

	t.Run("category must match entry type", func(t *testing.T) {
		e := valid()
		e.Category = domain.EntryCategoryDonation
		err := e.Validate()
		assert.Error(t, err)

		e = valid()
		e.EntryType = domain.EntryTypeInflow
		e.Category = domain.EntryCategoryStaff
		assert.Error(t, e.Validate())
	})

	t.Run("required fields", func(t *testing.T) {
		e := valid()
		e.Description = ""
		assert.Error(t, e.Validate())

		e = valid()
		e.Date = time.Time{}
		assert.Error(t, e.Validate())

		e = valid()
		e.ValueCents = -1
		assert.Error(t, e.Validate())
	})

	t.Run("lunch and package references are exclusive", func(t *testing.T) {
		lunchID, pkgID := int32(5), int32(42)
		e := valid()
		e.EntryType = domain.EntryTypeInflow
		e.Category = domain.EntryCategoryMealPayment
		e.LunchID = &lunchID
		e.PackageID = &pkgID
		assert.Error(t, e.Validate())

		e.PackageID = nil
		assert.NoError(t, e.Validate())
	})
}
