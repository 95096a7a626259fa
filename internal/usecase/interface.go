package usecase

import (
	"context"

	"payments-ledger/internal/domain"
)

// TransactionRepository loads the ordered transaction batch.
// The usecase layer depends on this interface, not on a concrete implementation.
//
//go:generate mockgen -destination=mocks/mock_repository.go -source=interface.go
type TransactionRepository interface {
	GetTransactions(ctx context.Context, path string) ([]domain.Transaction, error)
}

// AccountWriter emits the final account records.
type AccountWriter interface {
	WriteAccounts(ctx context.Context, accounts []domain.Account) error
}
