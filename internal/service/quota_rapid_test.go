package service_test

import (
	"context"
	"testing"

	"pgregory.net/rapid"

	"community-lunch-backend/internal/domain"
	"community-lunch-backend/internal/repository"
	"community-lunch-backend/internal/service"
)

// quotaRepo is a single-package in-memory repository for exercising quota
// arithmetic. Unimplemented methods panic through the embedded nil interface.
type quotaRepo struct {
	repository.PackageRepository
	pkg *domain.Package
}

func (r *quotaRepo) GetByIDForUpdate(ctx context.Context, id int32) (*domain.Package, error) {
	clone := *r.pkg
	return &clone, nil
}

func (r *quotaRepo) UpdateRemainingQuantity(ctx context.Context, id int32, remaining int32) error {
	r.pkg.RemainingQuantity = remaining
	return nil
}

type quotaStore struct {
	repository.Store
	repo *quotaRepo
}

func (s *quotaStore) Packages() repository.PackageRepository { return s.repo }

func (s *quotaStore) ExecTx(ctx context.Context, fn func(repository.Store) error) error {
	return fn(s)
}

// Remaining credits stay within [0, quantity] under any sequence of
// increments and decrements; rejected adjustments change nothing.
func TestQuotaAdjustmentsKeepRemainingInBounds(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		quantity := rapid.Int32Range(1, 50).Draw(t, "quantity")
		remaining := rapid.Int32Range(0, quantity).Draw(t, "remaining")

		repo := &quotaRepo{pkg: &domain.Package{ID: 1, Quantity: quantity, RemainingQuantity: remaining}}
		svc := service.NewPackageService(&quotaStore{repo: repo}, nil)
		ctx := context.Background()

		steps := rapid.IntRange(1, 40).Draw(t, "steps")
		for i := 0; i < steps; i++ {
			amount := rapid.Int32Range(-2, 10).Draw(t, "amount")
			before := repo.pkg.RemainingQuantity

			var err error
			if rapid.Bool().Draw(t, "decrement") {
				_, err = svc.DecrementQuota(ctx, 1, amount)
				if amount > 0 && amount <= before && err != nil {
					t.Fatalf("decrement of %d from %d rejected: %v", amount, before, err)
				}
				if (amount <= 0 || amount > before) && err == nil {
					t.Fatalf("decrement of %d from %d accepted", amount, before)
				}
			} else {
				_, err = svc.IncrementQuota(ctx, 1, amount)
				if amount > 0 && before+amount <= quantity && err != nil {
					t.Fatalf("increment of %d from %d rejected: %v", amount, before, err)
				}
				if (amount <= 0 || before+amount > quantity) && err == nil {
					t.Fatalf("increment of %d from %d accepted", amount, before)
				}
			}

			after := repo.pkg.RemainingQuantity
			if err != nil && after != before {
				t.Fatalf("rejected adjustment moved remaining from %d to %d", before, after)
			}
			if after < 0 || after > quantity {
				t.Fatalf("remaining %d out of [0, %d]", after, quantity)
			}
		}
	})
}
