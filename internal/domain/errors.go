package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInsufficientFunds is the reason for a rejection caused by a balance
	// that cannot cover the amount.
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrTransactionOrAccountNotFound is the reason for a rejection caused by a
	// missing account or referenced transaction.
	ErrTransactionOrAccountNotFound = errors.New("transaction or account not found")

	// ErrBalanceOverflow is the reason for a rejection whose result would not
	// fit a Currency.
	ErrBalanceOverflow = errors.New("balance overflow")

	ErrInvalidAmount          = errors.New("invalid amount")
	ErrUnknownTransactionType = errors.New("unknown transaction type")
)

// Cause names the operation that was rejected.
type Cause string

const (
	CauseUnsettledDeposit    Cause = "UnsettledDeposit"
	CauseAccountlessAction   Cause = "AccountlessAction"
	CauseUnsettledWithdrawal Cause = "UnsettledWithdrawal"
	CauseUnsettledDispute    Cause = "UnsettledDispute"
	CauseUnsettledResolve    Cause = "UnsettledResolve"
	CauseUnsettledChargeback Cause = "UnsettledChargeback"

	// CauseUnknownTransactionType only occurs for records built outside the
	// reader, which validates the type column.
	CauseUnknownTransactionType Cause = "UnknownTransactionType"
)

// UnsettledReason explains why a transaction could not be settled.
type UnsettledReason int

const (
	InsufficientFunds UnsettledReason = iota + 1
	TransactionOrAccountNotFound
	BalanceOverflow
)

func (r UnsettledReason) String() string {
	switch r {
	case InsufficientFunds:
		return "InsufficientFunds"
	case TransactionOrAccountNotFound:
		return "TransactionOrAccountNotFound"
	case BalanceOverflow:
		return "BalanceOverflow"
	}
	return fmt.Sprintf("UnsettledReason(%d)", int(r))
}

func (r UnsettledReason) sentinel() error {
	switch r {
	case InsufficientFunds:
		return ErrInsufficientFunds
	case BalanceOverflow:
		return ErrBalanceOverflow
	}
	return ErrTransactionOrAccountNotFound
}

// TransactionError is a rejected transaction. It never aborts the batch.
type TransactionError struct {
	Cause       Cause
	Transaction Transaction
	Reason      UnsettledReason
}

func (e TransactionError) Error() string {
	return fmt.Sprintf("%s (%s): %s", e.Cause, e.Reason, e.Transaction)
}

// Unwrap lets errors.Is match ErrInsufficientFunds or
// ErrTransactionOrAccountNotFound.
func (e TransactionError) Unwrap() error {
	return e.Reason.sentinel()
}

// RowError is a row of the input file that could not be parsed.
type RowError struct {
	Line int
	Err  error
}

func (e RowError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e RowError) Unwrap() error { return e.Err }

// ParseErrors rejects a whole input file. It lists every failing row.
type ParseErrors []RowError

func (p ParseErrors) Error() string {
	msgs := make([]string, 0, len(p))
	for _, e := range p {
		msgs = append(msgs, e.Error())
	}
	return fmt.Sprintf("%d malformed row(s): %s", len(p), strings.Join(msgs, "; "))
}

// Unwrap exposes the row errors to errors.Is and errors.As.
func (p ParseErrors) Unwrap() []error {
	errs := make([]error, 0, len(p))
	for _, e := range p {
		errs = append(errs, e)
	}
	return errs
}
