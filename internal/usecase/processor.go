package usecase

import (
	"fmt"
	"strings"

	"payments-ledger/internal/domain"
	"payments-ledger/internal/ledger"
)

// DisputePolicy decides what a dispute does when the disputed amount is no
// longer fully available.
type DisputePolicy string

const (
	// DisputePolicyReject rejects the dispute with InsufficientFunds.
	DisputePolicyReject DisputePolicy = "reject"
	// DisputePolicyAllow moves the funds anyway, leaving available negative.
	DisputePolicyAllow DisputePolicy = "allow"
)

// ParseDisputePolicy maps a configuration value onto a DisputePolicy.
func ParseDisputePolicy(s string) (DisputePolicy, error) {
	switch p := DisputePolicy(strings.ToLower(strings.TrimSpace(s))); p {
	case DisputePolicyReject, DisputePolicyAllow:
		return p, nil
	}
	return "", fmt.Errorf("unknown dispute policy %q", s)
}

// Processor folds an ordered list of transactions over a fresh ledger.
type Processor struct {
	disputePolicy DisputePolicy
}

// ProcessorOption configures a Processor.
type ProcessorOption func(*Processor)

// WithDisputePolicy sets the policy for disputes of already spent funds.
func WithDisputePolicy(p DisputePolicy) ProcessorOption {
	return func(pr *Processor) {
		pr.disputePolicy = p
	}
}

// NewProcessor creates a Processor. The default dispute policy is reject.
func NewProcessor(opts ...ProcessorOption) *Processor {
	p := &Processor{disputePolicy: DisputePolicyReject}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Process applies transactions in order and returns the final accounts,
// ordered by client id, and the rejected transactions in input order.
// Every call starts from empty stores, so equal input gives equal output.
func (p *Processor) Process(transactions []domain.Transaction) ([]domain.Account, []domain.TransactionError) {
	l := ledger.New()
	var rejected []domain.TransactionError

	for _, tx := range transactions {
		if txErr := p.apply(l, tx); txErr != nil {
			rejected = append(rejected, *txErr)
		}
	}

	return l.Accounts.Accounts(), rejected
}

// apply computes the new account for tx and commits it only when every check
// passed. A rejected transaction leaves all stores untouched.
func (p *Processor) apply(l *ledger.Ledger, tx domain.Transaction) *domain.TransactionError {
	op, err := tx.Operation()
	if err != nil {
		return reject(domain.CauseUnknownTransactionType, tx, domain.TransactionOrAccountNotFound)
	}

	switch op := op.(type) {
	case domain.Deposit:
		acct := l.Accounts.GetOrCreate(op.Client)
		available, okAvailable := acct.Available.CheckedAdd(op.Amount)
		total, okTotal := acct.Total.CheckedAdd(op.Amount)
		if !okAvailable || !okTotal {
			return reject(domain.CauseUnsettledDeposit, tx, domain.BalanceOverflow)
		}
		l.Deposits.Record(op)
		acct.Available, acct.Total = available, total
		l.Accounts.Put(acct)
		return nil

	case domain.Withdrawal:
		acct, ok := l.Accounts.Get(op.Client)
		if !ok {
			return reject(domain.CauseAccountlessAction, tx, domain.TransactionOrAccountNotFound)
		}
		available, okAvailable := acct.Available.CheckedSub(op.Amount)
		total, okTotal := acct.Total.CheckedSub(op.Amount)
		if !okAvailable || !okTotal {
			return reject(domain.CauseUnsettledWithdrawal, tx, domain.InsufficientFunds)
		}
		acct.Available, acct.Total = available, total
		l.Accounts.Put(acct)
		return nil

	case domain.Dispute:
		acct, ok := l.Accounts.Get(op.Client)
		deposit, found := l.Deposits.Get(op.Ref)
		if !ok || !found {
			return reject(domain.CauseUnsettledDispute, tx, domain.TransactionOrAccountNotFound)
		}
		var available domain.Currency
		switch p.disputePolicy {
		case DisputePolicyAllow:
			if available, ok = acct.Available.SignedSub(deposit.Amount); !ok {
				return reject(domain.CauseUnsettledDispute, tx, domain.BalanceOverflow)
			}
		default:
			if available, ok = acct.Available.CheckedSub(deposit.Amount); !ok {
				return reject(domain.CauseUnsettledDispute, tx, domain.InsufficientFunds)
			}
		}
		held, ok := acct.Held.CheckedAdd(deposit.Amount)
		if !ok {
			return reject(domain.CauseUnsettledDispute, tx, domain.BalanceOverflow)
		}
		l.Disputes.Open(deposit)
		acct.Available, acct.Held = available, held
		l.Accounts.Put(acct)
		return nil

	case domain.Resolve:
		acct, ok := l.Accounts.Get(op.Client)
		deposit, found := l.Disputes.Get(op.Ref)
		if !ok || !found {
			return reject(domain.CauseUnsettledResolve, tx, domain.TransactionOrAccountNotFound)
		}
		held, ok := acct.Held.CheckedSub(deposit.Amount)
		if !ok {
			return reject(domain.CauseUnsettledResolve, tx, domain.InsufficientFunds)
		}
		available, ok := acct.Available.CheckedAdd(deposit.Amount)
		if !ok {
			return reject(domain.CauseUnsettledResolve, tx, domain.BalanceOverflow)
		}
		acct.Available, acct.Held = available, held
		l.Accounts.Put(acct)
		return nil

	case domain.Chargeback:
		acct, ok := l.Accounts.Get(op.Client)
		deposit, found := l.Disputes.Get(op.Ref)
		if !ok || !found {
			return reject(domain.CauseUnsettledChargeback, tx, domain.TransactionOrAccountNotFound)
		}
		held, okHeld := acct.Held.CheckedSub(deposit.Amount)
		total, okTotal := acct.Total.CheckedSub(deposit.Amount)
		if !okHeld || !okTotal {
			return reject(domain.CauseUnsettledChargeback, tx, domain.InsufficientFunds)
		}
		acct.Held, acct.Total = held, total
		acct.Locked = true
		l.Accounts.Put(acct)
		return nil
	}

	return reject(domain.CauseUnknownTransactionType, tx, domain.TransactionOrAccountNotFound)
}

func reject(cause domain.Cause, tx domain.Transaction, reason domain.UnsettledReason) *domain.TransactionError {
	return &domain.TransactionError{Cause: cause, Transaction: tx, Reason: reason}
}
