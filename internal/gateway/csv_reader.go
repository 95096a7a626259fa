package gateway

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"payments-ledger/internal/domain"
)

const (
	columnType   = "type"
	columnClient = "client"
	columnTx     = "tx"
	columnAmount = "amount"
)

// CSVTransactionRepository implements the TransactionRepository interface for CSV files.
type CSVTransactionRepository struct{}

// NewCSVTransactionRepository creates a new repository instance.
func NewCSVTransactionRepository() *CSVTransactionRepository {
	return &CSVTransactionRepository{}
}

// GetTransactions reads and parses the transactions CSV file. If any row
// fails to parse, no transaction is returned and the error is a
// domain.ParseErrors naming every failing row.
func (r *CSVTransactionRepository) GetTransactions(ctx context.Context, path string) ([]domain.Transaction, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open transaction file %s: %w", path, err)
	}
	defer file.Close()

	transactions, err := ReadTransactions(ctx, file)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return transactions, nil
}

// ReadTransactions parses a header-tagged transaction stream.
func ReadTransactions(ctx context.Context, in io.Reader) ([]domain.Transaction, error) {
	reader := csv.NewReader(in)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	reader.ReuseRecord = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}
	cols, err := indexColumns(header)
	if err != nil {
		return nil, err
	}

	var (
		transactions []domain.Transaction
		rowErrs      domain.ParseErrors
	)
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				rowErrs = append(rowErrs, domain.RowError{Line: parseErr.StartLine, Err: parseErr.Err})
				continue
			}
			return nil, fmt.Errorf("error reading record: %w", err)
		}

		line, _ := reader.FieldPos(0)
		tx, err := cols.parse(record)
		if err != nil {
			rowErrs = append(rowErrs, domain.RowError{Line: line, Err: err})
			continue
		}
		if rowErrs == nil {
			transactions = append(transactions, tx)
		}
	}

	if len(rowErrs) > 0 {
		return nil, rowErrs
	}
	return transactions, nil
}

type columns struct {
	typ, client, tx, amount int
}

func indexColumns(header []string) (columns, error) {
	cols := columns{typ: -1, client: -1, tx: -1, amount: -1}
	for i, name := range header {
		switch strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))) {
		case columnType:
			cols.typ = i
		case columnClient:
			cols.client = i
		case columnTx:
			cols.tx = i
		case columnAmount:
			cols.amount = i
		}
	}

	for name, idx := range map[string]int{columnType: cols.typ, columnClient: cols.client, columnTx: cols.tx} {
		if idx < 0 {
			return cols, fmt.Errorf("header is missing column %q", name)
		}
	}
	return cols, nil
}

func (c columns) parse(record []string) (domain.Transaction, error) {
	field := func(i int) string {
		if i < 0 || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	txType, err := domain.ParseTransactionType(field(c.typ))
	if err != nil {
		return domain.Transaction{}, err
	}

	client, err := strconv.ParseUint(field(c.client), 10, 16)
	if err != nil {
		return domain.Transaction{}, fmt.Errorf("could not parse client %q: %w", field(c.client), err)
	}

	txID, err := strconv.ParseUint(field(c.tx), 10, 32)
	if err != nil {
		return domain.Transaction{}, fmt.Errorf("could not parse tx %q: %w", field(c.tx), err)
	}

	amount, err := domain.ParseCurrency(field(c.amount))
	if err != nil {
		return domain.Transaction{}, err
	}
	if amount.IsNegative() {
		return domain.Transaction{}, fmt.Errorf("%w: negative amount %q", domain.ErrInvalidAmount, field(c.amount))
	}

	return domain.Transaction{
		Type:   txType,
		Client: uint16(client),
		TxID:   uint32(txID),
		Amount: amount,
	}, nil
}
