package domain

import "github.com/shopspring/decimal"

// Snapshot is an immutable, ordered copy of one owner's transaction set at a
// point in time. Insertion order matters for presentation, not for balances.
// Snapshots are value-like: every logical edit of the ledger produces a new
// snapshot; a snapshot is never mutated in place.
type Snapshot []Transaction

// Equal reports whether two snapshots hold the same transactions in the same order.
func (s Snapshot) Equal(o Snapshot) bool {
	if len(s) != len(o) {
		return false
	}
	for i := range s {
		if !s[i].Equal(o[i]) {
			return false
		}
	}
	return true
}

// Clone returns an independent copy of the snapshot.
func (s Snapshot) Clone() Snapshot {
	if s == nil {
		return nil
	}
	out := make(Snapshot, len(s))
	copy(out, s)
	return out
}

// Balances recomputes the per-account balance implied by the snapshot by
// scanning it, without consulting any cached balance.
func (s Snapshot) Balances() map[string]decimal.Decimal {
	balances := make(map[string]decimal.Decimal)
	for _, txn := range s {
		balances[txn.AccountID] = balances[txn.AccountID].Add(txn.SignedAmount())
	}
	return balances
}
