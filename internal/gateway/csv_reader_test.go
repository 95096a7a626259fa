package gateway

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"payments-ledger/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCSVTransactionRepository_GetTransactions(t *testing.T) {
	tests := []struct {
		name      string
		lines     []string
		expected  []domain.Transaction
		wantLines []int
	}{
		{
			name: "valid transactions",
			lines: []string{
				"type, client, tx, amount",
				"deposit, 1, 1, 1.0",
				"deposit, 2, 2, 2.0",
				"withdrawal, 1, 3, 1.5",
				"dispute, 1, 1,",
				"resolve, 1, 1",
				"chargeback, 2, 2, ",
			},
			expected: []domain.Transaction{
				{Type: domain.TransactionTypeDeposit, Client: 1, TxID: 1, Amount: domain.MustCurrency("1.0")},
				{Type: domain.TransactionTypeDeposit, Client: 2, TxID: 2, Amount: domain.MustCurrency("2.0")},
				{Type: domain.TransactionTypeWithdrawal, Client: 1, TxID: 3, Amount: domain.MustCurrency("1.5")},
				{Type: domain.TransactionTypeDispute, Client: 1, TxID: 1},
				{Type: domain.TransactionTypeResolve, Client: 1, TxID: 1},
				{Type: domain.TransactionTypeChargeback, Client: 2, TxID: 2},
			},
		},
		{
			name: "columns in any order",
			lines: []string{
				"client,amount,tx,type",
				"7,0.12345,42,deposit",
			},
			expected: []domain.Transaction{
				{Type: domain.TransactionTypeDeposit, Client: 7, TxID: 42, Amount: domain.NewCurrency(1234)},
			},
		},
		{
			name: "no amount column",
			lines: []string{
				"type,client,tx",
				"dispute,1,1",
			},
			expected: []domain.Transaction{
				{Type: domain.TransactionTypeDispute, Client: 1, TxID: 1},
			},
		},
		{
			name:     "empty file with header only",
			lines:    []string{"type,client,tx,amount"},
			expected: nil,
		},
		{
			name: "invalid amount format",
			lines: []string{
				"type,client,tx,amount",
				"deposit,1,1,abc",
			},
			wantLines: []int{2},
		},
		{
			name: "every malformed row is reported",
			lines: []string{
				"type,client,tx,amount",
				"deposit,1,1,abc",
				"deposit,1,2,1.0",
				"refund,1,3,1.0",
				"deposit,70000,4,1.0",
				"deposit,1,-5,1.0",
				"withdrawal,1,6,-1.0",
			},
			wantLines: []int{2, 4, 5, 6, 7},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpFile := createTempCSVFromLines(t, tt.lines)

			repo := NewCSVTransactionRepository()
			got, err := repo.GetTransactions(context.Background(), tmpFile)

			if tt.wantLines != nil {
				assert.Nil(t, got)
				var parseErrs domain.ParseErrors
				require.True(t, errors.As(err, &parseErrs), "expected ParseErrors, got %v", err)
				lines := make([]int, 0, len(parseErrs))
				for _, rowErr := range parseErrs {
					lines = append(lines, rowErr.Line)
				}
				assert.Equal(t, tt.wantLines, lines)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestCSVTransactionRepository_GetTransactions_RowErrorCauses(t *testing.T) {
	tmpFile := createTempCSVFromLines(t, []string{
		"type,client,tx,amount",
		"deposit,1,1,ten",
		"refund,1,2,1.0",
	})

	_, err := NewCSVTransactionRepository().GetTransactions(context.Background(), tmpFile)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)
	assert.ErrorIs(t, err, domain.ErrUnknownTransactionType)
	assert.Contains(t, err.Error(), "line 2")
	assert.Contains(t, err.Error(), "line 3")
}

func TestCSVTransactionRepository_GetTransactions_FileErrors(t *testing.T) {
	repo := NewCSVTransactionRepository()
	ctx := context.Background()

	t.Run("file not found", func(t *testing.T) {
		_, err := repo.GetTransactions(ctx, "nonexistent_file.csv")
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("file with no header", func(t *testing.T) {
		tmpFile := createTempCSVFromLines(t, nil)
		_, err := repo.GetTransactions(ctx, tmpFile)
		assert.Error(t, err)
	})

	t.Run("header without required column", func(t *testing.T) {
		tmpFile := createTempCSVFromLines(t, []string{"type,client,amount", "deposit,1,1.0"})
		_, err := repo.GetTransactions(ctx, tmpFile)
		require.Error(t, err)
		assert.Contains(t, err.Error(), `"tx"`)
		var parseErrs domain.ParseErrors
		assert.False(t, errors.As(err, &parseErrs))
	})
}

func TestReadTransactions_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := ReadTransactions(ctx, strings.NewReader("type,client,tx,amount\ndeposit,1,1,1.0\n"))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestReadTransactions_ByteOrderMark(t *testing.T) {
	input := "\ufefftype,client,tx,amount\ndeposit,1,1,1.0\n"
	got, err := ReadTransactions(context.Background(), bytes.NewBufferString(input))
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func createTempCSVFromLines(t testing.TB, lines []string) string {
	t.Helper()
	tmpFile := filepath.Join(t.TempDir(), "transactions.csv")
	content := strings.Join(lines, "\n")
	if len(lines) > 0 {
		content += "\n"
	}
	if err := os.WriteFile(tmpFile, []byte(content), 0o600); err != nil {
		t.Fatalf("Failed to create temp CSV file: %v", err)
	}
	return tmpFile
}

func BenchmarkGetTransactions(b *testing.B) {
	lines := []string{"type,client,tx,amount"}
	for i := 0; i < 1000; i++ {
		lines = append(lines, "deposit,1,1,150.0001", "withdrawal,1,2,1.5", "dispute,1,1,")
	}
	tmpFile := createTempCSVFromLines(b, lines)

	repo := NewCSVTransactionRepository()
	ctx := context.Background()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, err := repo.GetTransactions(ctx, tmpFile)
		if err != nil {
			b.Fatalf("Error in benchmark: %v", err)
		}
	}
}
