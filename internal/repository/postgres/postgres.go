package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"community-lunch-backend/internal/repository"

	_ "github.com/lib/pq"
)

// DBTX is the subset of database/sql shared by *sql.DB and *sql.Tx, so the
// same repository code runs standalone or inside a transaction.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type Store struct {
	db      *sql.DB
	tx      *sql.Tx
	members repository.MemberRepository
	pkgs    repository.PackageRepository
	lunches repository.LunchRepository
	ledger  repository.LedgerRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:      db,
		members: NewMemberRepository(db),
		pkgs:    NewPackageRepository(db),
		lunches: NewLunchRepository(db),
		ledger:  NewLedgerRepository(db),
	}
}

func (s *Store) Members() repository.MemberRepository   { return s.members }
func (s *Store) Packages() repository.PackageRepository { return s.pkgs }
func (s *Store) Lunches() repository.LunchRepository    { return s.lunches }
func (s *Store) Ledger() repository.LedgerRepository    { return s.ledger }

// ExecTx runs fn against a store whose repositories share one transaction.
// A nil error from fn commits; anything else rolls back every write fn made.
// Calls on a store that is already transactional reuse the open transaction.
func (s *Store) ExecTx(ctx context.Context, fn func(repository.Store) error) error {
	if s.tx != nil {
		return fn(s)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	txStore := &Store{
		db:      s.db,
		tx:      tx,
		members: NewMemberRepository(tx),
		pkgs:    NewPackageRepository(tx),
		lunches: NewLunchRepository(tx),
		ledger:  NewLedgerRepository(tx),
	}

	if err := fn(txStore); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			return fmt.Errorf("rollback failed: %v (after: %w)", rbErr, err)
		}
		return err
	}
	return tx.Commit()
}
