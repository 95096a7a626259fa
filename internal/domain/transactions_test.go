package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTransactionType(t *testing.T) {
	for _, name := range []string{"deposit", "withdrawal", "dispute", "resolve", "chargeback"} {
		got, err := ParseTransactionType(name)
		require.NoError(t, err)
		assert.Equal(t, TransactionType(name), got)
	}

	got, err := ParseTransactionType(" Deposit ")
	require.NoError(t, err)
	assert.Equal(t, TransactionTypeDeposit, got)

	_, err = ParseTransactionType("refund")
	assert.ErrorIs(t, err, ErrUnknownTransactionType)
}

func TestTransaction_Operation(t *testing.T) {
	amount := MustCurrency("1.5")
	tests := []struct {
		name string
		tx   Transaction
		want Operation
	}{
		{
			name: "deposit",
			tx:   Transaction{Type: TransactionTypeDeposit, Client: 1, TxID: 2, Amount: amount},
			want: Deposit{Client: 1, TxID: 2, Amount: amount},
		},
		{
			name: "withdrawal",
			tx:   Transaction{Type: TransactionTypeWithdrawal, Client: 1, TxID: 3, Amount: amount},
			want: Withdrawal{Client: 1, TxID: 3, Amount: amount},
		},
		{
			name: "dispute drops amount",
			tx:   Transaction{Type: TransactionTypeDispute, Client: 1, TxID: 2, Amount: amount},
			want: Dispute{Client: 1, Ref: 2},
		},
		{
			name: "resolve",
			tx:   Transaction{Type: TransactionTypeResolve, Client: 1, TxID: 2},
			want: Resolve{Client: 1, Ref: 2},
		},
		{
			name: "chargeback",
			tx:   Transaction{Type: TransactionTypeChargeback, Client: 1, TxID: 2},
			want: Chargeback{Client: 1, Ref: 2},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.tx.Operation()
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := Transaction{Type: "refund"}.Operation()
	assert.ErrorIs(t, err, ErrUnknownTransactionType)
}

func TestTransactionError(t *testing.T) {
	tx := Transaction{Type: TransactionTypeWithdrawal, Client: 4, TxID: 9, Amount: MustCurrency("25")}
	err := error(TransactionError{Cause: CauseUnsettledWithdrawal, Transaction: tx, Reason: InsufficientFunds})

	assert.True(t, errors.Is(err, ErrInsufficientFunds))
	assert.False(t, errors.Is(err, ErrTransactionOrAccountNotFound))
	assert.Equal(t, "UnsettledWithdrawal (InsufficientFunds): withdrawal client=4 tx=9 amount=25.0000", err.Error())

	var txErr TransactionError
	require.True(t, errors.As(err, &txErr))
	assert.Equal(t, tx, txErr.Transaction)
}

func TestParseErrors(t *testing.T) {
	err := error(ParseErrors{
		{Line: 2, Err: ErrInvalidAmount},
		{Line: 5, Err: ErrUnknownTransactionType},
	})
	assert.Equal(t, "2 malformed row(s): line 2: invalid amount; line 5: unknown transaction type", err.Error())

	var parseErrs ParseErrors
	require.True(t, errors.As(err, &parseErrs))
	assert.Len(t, parseErrs, 2)
	assert.ErrorIs(t, parseErrs[0], ErrInvalidAmount)
	assert.ErrorIs(t, err, ErrUnknownTransactionType)
}

func TestAccount_Balanced(t *testing.T) {
	a := NewAccount(1)
	assert.True(t, a.Balanced())

	a.Available = MustCurrency("1")
	assert.False(t, a.Balanced())

	a.Held = MustCurrency("2")
	a.Total = MustCurrency("3")
	assert.True(t, a.Balanced())
}
