package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"payments-ledger/internal/domain"
)

// JSONAccountWriter implements the AccountWriter interface as an indented
// JSON array.
type JSONAccountWriter struct {
	out io.Writer
}

// NewJSONAccountWriter creates a writer emitting to out.
func NewJSONAccountWriter(out io.Writer) *JSONAccountWriter {
	return &JSONAccountWriter{out: out}
}

// WriteAccounts writes every account as one JSON document.
func (w *JSONAccountWriter) WriteAccounts(_ context.Context, accounts []domain.Account) error {
	if accounts == nil {
		accounts = []domain.Account{}
	}
	output, err := json.MarshalIndent(accounts, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode accounts: %w", err)
	}
	if _, err := fmt.Fprintln(w.out, string(output)); err != nil {
		return fmt.Errorf("failed to write accounts: %w", err)
	}
	return nil
}
