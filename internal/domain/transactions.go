package domain

import (
	"fmt"
	"strings"
)

// TransactionType is the kind of a transaction record.
type TransactionType string

const (
	TransactionTypeDeposit    TransactionType = "deposit"
	TransactionTypeWithdrawal TransactionType = "withdrawal"
	TransactionTypeDispute    TransactionType = "dispute"
	TransactionTypeResolve    TransactionType = "resolve"
	TransactionTypeChargeback TransactionType = "chargeback"
)

// ParseTransactionType maps a wire name onto a TransactionType.
func ParseTransactionType(s string) (TransactionType, error) {
	switch t := TransactionType(strings.ToLower(strings.TrimSpace(s))); t {
	case TransactionTypeDeposit, TransactionTypeWithdrawal, TransactionTypeDispute,
		TransactionTypeResolve, TransactionTypeChargeback:
		return t, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownTransactionType, s)
}

// Transaction is the flat record read from the input file. Amount is
// meaningless for disputes, resolves and chargebacks.
type Transaction struct {
	Type   TransactionType
	Client uint16
	TxID   uint32
	Amount Currency
}

func (t Transaction) String() string {
	return fmt.Sprintf("%s client=%d tx=%d amount=%s", t.Type, t.Client, t.TxID, t.Amount)
}

// Operation is the typed form of a Transaction. Only the variants below
// implement it.
type Operation interface {
	isOperation()
}

// Deposit credits Amount to Client.
type Deposit struct {
	Client uint16
	TxID   uint32
	Amount Currency
}

// Withdrawal debits Amount from Client.
type Withdrawal struct {
	Client uint16
	TxID   uint32
	Amount Currency
}

// Dispute holds the funds of the deposit Ref.
type Dispute struct {
	Client uint16
	Ref    uint32
}

// Resolve releases the held funds of the disputed deposit Ref.
type Resolve struct {
	Client uint16
	Ref    uint32
}

// Chargeback reverses the disputed deposit Ref and locks the account.
type Chargeback struct {
	Client uint16
	Ref    uint32
}

func (Deposit) isOperation()    {}
func (Withdrawal) isOperation() {}
func (Dispute) isOperation()    {}
func (Resolve) isOperation()    {}
func (Chargeback) isOperation() {}

// Operation converts the flat record into its typed variant.
func (t Transaction) Operation() (Operation, error) {
	switch t.Type {
	case TransactionTypeDeposit:
		return Deposit{Client: t.Client, TxID: t.TxID, Amount: t.Amount}, nil
	case TransactionTypeWithdrawal:
		return Withdrawal{Client: t.Client, TxID: t.TxID, Amount: t.Amount}, nil
	case TransactionTypeDispute:
		return Dispute{Client: t.Client, Ref: t.TxID}, nil
	case TransactionTypeResolve:
		return Resolve{Client: t.Client, Ref: t.TxID}, nil
	case TransactionTypeChargeback:
		return Chargeback{Client: t.Client, Ref: t.TxID}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownTransactionType, string(t.Type))
}
