package usecase

import (
	"context"
	"fmt"

	"payments-ledger/internal/domain"

	"go.uber.org/zap"
)

// LedgerUseCase reads a transaction batch, processes it and writes the
// resulting accounts.
type LedgerUseCase struct {
	repo      TransactionRepository
	writer    AccountWriter
	processor *Processor
	logger    *zap.Logger
}

// NewLedgerUseCase creates a new instance of the usecase.
func NewLedgerUseCase(repo TransactionRepository, writer AccountWriter, processor *Processor, logger *zap.Logger) *LedgerUseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LedgerUseCase{repo: repo, writer: writer, processor: processor, logger: logger}
}

// Run processes the batch at path. A read failure aborts the run before any
// account exists; rejected transactions are returned in the report.
func (uc *LedgerUseCase) Run(ctx context.Context, path string) (*domain.Report, error) {
	transactions, err := uc.repo.GetTransactions(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("could not get transactions: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	accounts, rejected := uc.processor.Process(transactions)
	for _, txErr := range rejected {
		uc.logger.Warn("transaction rejected",
			zap.String("type", string(txErr.Transaction.Type)),
			zap.Uint16("client", txErr.Transaction.Client),
			zap.Uint32("tx", txErr.Transaction.TxID),
			zap.String("cause", string(txErr.Cause)),
			zap.Stringer("reason", txErr.Reason),
		)
	}

	if err := uc.writer.WriteAccounts(ctx, accounts); err != nil {
		return nil, fmt.Errorf("could not write accounts: %w", err)
	}

	uc.logger.Info("batch processed",
		zap.String("path", path),
		zap.Int("transactions", len(transactions)),
		zap.Int("accounts", len(accounts)),
		zap.Int("rejected", len(rejected)),
	)

	return &domain.Report{
		Transactions: len(transactions),
		Accounts:     accounts,
		Rejected:     rejected,
	}, nil
}

// Validate parses the batch at path without processing it and returns the
// number of transactions read.
func (uc *LedgerUseCase) Validate(ctx context.Context, path string) (int, error) {
	transactions, err := uc.repo.GetTransactions(ctx, path)
	if err != nil {
		return 0, fmt.Errorf("could not get transactions: %w", err)
	}
	uc.logger.Debug("batch validated", zap.String("path", path), zap.Int("transactions", len(transactions)))
	return len(transactions), nil
}
