package domain

// Report is the outcome of processing one batch.
type Report struct {
	Transactions int
	Accounts     []Account
	Rejected     []TransactionError
}

// HasRejections reports whether any transaction was rejected.
func (r *Report) HasRejections() bool {
	return r != nil && len(r.Rejected) > 0
}
