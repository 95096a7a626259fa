package domain

// Account is the balance record of one client.
type Account struct {
	Client    uint16   `json:"client"`
	Available Currency `json:"available"`
	Held      Currency `json:"held"`
	Total     Currency `json:"total"`
	Locked    bool     `json:"locked"`
}

// NewAccount returns a zero-balance, unlocked account.
func NewAccount(client uint16) Account {
	return Account{Client: client}
}

// Balanced reports whether total == available + held.
func (a Account) Balanced() bool {
	sum, ok := a.Available.CheckedAdd(a.Held)
	return ok && a.Total.Equal(sum)
}
