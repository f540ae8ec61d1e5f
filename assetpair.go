package moneywise

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/google/uuid"
)

// pairShift is the number of bits of a leg in a pair code.
const pairShift = 3

// pairSeparator separates the legs in the textual encoding of a pair.
const pairSeparator = "-"

// pairCode returns the canonical code of (debit, credit).
func pairCode(debit, credit AssetType) int { return int(debit)<<pairShift | int(credit) }

// AssetPair is the canonical descriptor of the kinds of assets on the two
// legs of a transaction. Pairs are interned by an AssetPairManager and
// compared by pointer.
type AssetPair struct {
	debit, credit AssetType
}

// ID returns the canonical code of the pair.
func (p *AssetPair) ID() int { return pairCode(p.debit, p.credit) }

func (p *AssetPair) Debit() AssetType  { return p.debit }
func (p *AssetPair) Credit() AssetType { return p.credit }

// Name returns the textual encoding of the pair, e.g. "Deposit-Payee".
func (p *AssetPair) Name() string { return p.debit.String() + pairSeparator + p.credit.String() }

func (p *AssetPair) String() string { return p.Name() }

// structurallyLegal reports whether assets of the given types can ever be
// the two legs of a transaction, whatever the category.
func structurallyLegal(debit, credit AssetType) bool {
	switch {
	case debit == AssetPayee && credit == AssetPayee:
		return false
	case debit == AssetPortfolio || credit == AssetPortfolio:
		return debit == credit
	case debit == AssetAutoExpense || credit == AssetAutoExpense:
		other := debit
		if other == AssetAutoExpense {
			other = credit
		}
		return other == AssetPayee || other.IsValued()
	default:
		return true
	}
}

// AssetPairManager interns the pairs of one dataset.
type AssetPairManager struct {
	owner  uuid.UUID
	byID   map[int]*AssetPair
	byName map[string]*AssetPair
}

// NewAssetPairManager returns a manager holding every structurally legal
// pair.
func NewAssetPairManager(owner uuid.UUID) *AssetPairManager {
	m := &AssetPairManager{
		owner:  owner,
		byID:   make(map[int]*AssetPair),
		byName: make(map[string]*AssetPair),
	}
	for _, d := range AssetTypes {
		for _, c := range AssetTypes {
			if structurallyLegal(d, c) {
				p := &AssetPair{debit: d, credit: c}
				m.byID[p.ID()] = p
				m.byName[p.Name()] = p
			}
		}
	}
	return m
}

func (m *AssetPairManager) unresolved(ref string) error {
	return fmt.Errorf("dataset %s: asset pair %q: %w", m.owner, ref, ErrUnresolvedReference)
}

// LookUpPair returns the pair with code id.
func (m *AssetPairManager) LookUpPair(id int) (*AssetPair, error) {
	if p, ok := m.byID[id]; ok {
		return p, nil
	}
	return nil, m.unresolved(fmt.Sprint(id))
}

// LookUpName returns the pair with the textual encoding name.
func (m *AssetPairManager) LookUpName(name string) (*AssetPair, error) {
	if p, ok := m.byName[strings.TrimSpace(name)]; ok {
		return p, nil
	}
	return nil, m.unresolved(name)
}

// Pair returns the pair (debit, credit).
func (m *AssetPairManager) Pair(debit, credit AssetType) (*AssetPair, error) {
	return m.LookUpPair(pairCode(debit, credit))
}

// AdjustDebit returns the pair p with the debit leg replaced.
func (m *AssetPairManager) AdjustDebit(p *AssetPair, debit AssetType) (*AssetPair, error) {
	return m.Pair(debit, p.credit)
}

// AdjustCredit returns the pair p with the credit leg replaced.
func (m *AssetPairManager) AdjustCredit(p *AssetPair, credit AssetType) (*AssetPair, error) {
	return m.Pair(p.debit, credit)
}

// Pairs returns every pair ordered by code.
func (m *AssetPairManager) Pairs() []*AssetPair {
	ids := slices.Sorted(maps.Keys(m.byID))
	pairs := make([]*AssetPair, len(ids))
	for i, id := range ids {
		pairs[i] = m.byID[id]
	}
	return pairs
}

// clone returns an independent manager for a derived dataset.
func (m *AssetPairManager) clone(owner uuid.UUID) *AssetPairManager {
	return &AssetPairManager{owner: owner, byID: maps.Clone(m.byID), byName: maps.Clone(m.byName)}
}
