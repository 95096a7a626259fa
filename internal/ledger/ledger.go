// Package ledger holds the process-scoped stores threaded through one
// processing run. None of the stores are safe for concurrent use.
package ledger

import (
	"sort"

	"payments-ledger/internal/domain"
)

// DepositLedger records every deposit by transaction id. A repeated id
// overwrites the earlier entry. Entries are never removed.
type DepositLedger struct {
	deposits map[uint32]domain.Deposit
}

func NewDepositLedger() *DepositLedger {
	return &DepositLedger{deposits: make(map[uint32]domain.Deposit)}
}

func (l *DepositLedger) Record(d domain.Deposit) {
	l.deposits[d.TxID] = d
}

func (l *DepositLedger) Get(tx uint32) (domain.Deposit, bool) {
	d, ok := l.deposits[tx]
	return d, ok
}

// DisputeLedger records the deposits currently under dispute, keyed by the
// deposit's own transaction id.
type DisputeLedger struct {
	disputed map[uint32]domain.Deposit
}

func NewDisputeLedger() *DisputeLedger {
	return &DisputeLedger{disputed: make(map[uint32]domain.Deposit)}
}

func (l *DisputeLedger) Open(d domain.Deposit) {
	l.disputed[d.TxID] = d
}

func (l *DisputeLedger) Get(tx uint32) (domain.Deposit, bool) {
	d, ok := l.disputed[tx]
	return d, ok
}

// AccountStore keeps one Account per client.
type AccountStore struct {
	accounts map[uint16]domain.Account
}

func NewAccountStore() *AccountStore {
	return &AccountStore{accounts: make(map[uint16]domain.Account)}
}

// Get returns a copy of the client's account.
func (s *AccountStore) Get(client uint16) (domain.Account, bool) {
	a, ok := s.accounts[client]
	return a, ok
}

// GetOrCreate returns the client's account, or a zero-balance one if the
// client has none yet. The new account is not stored until Put.
func (s *AccountStore) GetOrCreate(client uint16) domain.Account {
	if a, ok := s.accounts[client]; ok {
		return a
	}
	return domain.NewAccount(client)
}

// Put commits a whole account record.
func (s *AccountStore) Put(a domain.Account) {
	s.accounts[a.Client] = a
}

// Accounts returns every account ordered by client id.
func (s *AccountStore) Accounts() []domain.Account {
	out := make([]domain.Account, 0, len(s.accounts))
	for _, a := range s.accounts {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Client < out[j].Client })
	return out
}

// Ledger bundles the three stores of a single run.
type Ledger struct {
	Deposits *DepositLedger
	Disputes *DisputeLedger
	Accounts *AccountStore
}

// New returns a Ledger with empty stores.
func New() *Ledger {
	return &Ledger{
		Deposits: NewDepositLedger(),
		Disputes: NewDisputeLedger(),
		Accounts: NewAccountStore(),
	}
}
