package gateway

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"payments-ledger/internal/domain"
)

var accountHeader = []string{"client", "available", "held", "total", "locked"}

// CSVAccountWriter implements the AccountWriter interface on top of an io.Writer.
type CSVAccountWriter struct {
	out io.Writer
}

// NewCSVAccountWriter creates a writer emitting to out.
func NewCSVAccountWriter(out io.Writer) *CSVAccountWriter {
	return &CSVAccountWriter{out: out}
}

// WriteAccounts writes a header followed by one row per account.
func (w *CSVAccountWriter) WriteAccounts(_ context.Context, accounts []domain.Account) error {
	writer := csv.NewWriter(w.out)
	if err := writer.Write(accountHeader); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, a := range accounts {
		row := []string{
			strconv.FormatUint(uint64(a.Client), 10),
			a.Available.String(),
			a.Held.String(),
			a.Total.String(),
			strconv.FormatBool(a.Locked),
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write account %d: %w", a.Client, err)
		}
	}
	writer.Flush()
	return writer.Error()
}
