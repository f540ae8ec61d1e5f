package moneywise

import (
	"cmp"

	"github.com/etnz/moneywise/date"
)

// Transaction moves an amount from a debit asset to a credit asset under a
// category. A transaction can be the child of a single parent sharing its
// date, forming a split group.
type Transaction struct{ Item }

func newTransaction() *Transaction { return &Transaction{Item: newItem(KindTransaction, true)} }

func (t *Transaction) Date() date.Date           { return t.getDate(FieldDate) }
func (t *Transaction) SetDate(day date.Date)     { t.set(FieldDate, day) }
func (t *Transaction) IsReconciled() bool        { return t.getBool(FieldReconciled) }
func (t *Transaction) SetReconciled(r bool)      { t.set(FieldReconciled, r) }
func (t *Transaction) IsSplit() bool             { return t.getBool(FieldSplit) }
func (t *Transaction) SetSplit(split bool)       { t.set(FieldSplit, split) }
func (t *Transaction) ParentID() int             { return t.getInt(FieldParent) }
func (t *Transaction) CategoryID() int           { return t.getInt(FieldCategory) }
func (t *Transaction) Tags() []int               { return t.info.Links(InfoTransactionTag) }
func (t *Transaction) Reference() string         { return t.info.Text(InfoReference) }
func (t *Transaction) SetAmount(amount Money)    { t.set(FieldAmount, amount) }
func (t *Transaction) ClearAmount()              { t.set(FieldAmount, nil) }
func (t *Transaction) HasAmount() bool           { return t.get(FieldAmount) != nil }
func (t *Transaction) ClearParent()              { t.setRef(FieldParent, 0) }
func (t *Transaction) SetTags(ids ...int) error  { return t.info.SetLinks(InfoTransactionTag, ids) }
func (t *Transaction) SetReference(s string) error {
	return t.info.SetValue(InfoReference, nilIfEmpty(s))
}

// SetCategory sets the category, nil to clear it.
func (t *Transaction) SetCategory(c *Category) {
	if c == nil {
		t.setRef(FieldCategory, 0)
		return
	}
	t.setRef(FieldCategory, c.id)
}

// SetParent makes t a child of p, nil to clear it.
func (t *Transaction) SetParent(p *Transaction) {
	if p == nil {
		t.setRef(FieldParent, 0)
		return
	}
	t.setRef(FieldParent, p.id)
}

// Amount returns the amount, the zero value when unset.
func (t *Transaction) Amount() Money {
	m, _ := t.get(FieldAmount).(Money)
	return m
}

// Category returns the transaction category or nil.
func (t *Transaction) Category() *Category {
	if t.ds == nil || t.CategoryID() == 0 {
		return nil
	}
	c, _ := t.ds.TransactionCategories.Get(t.CategoryID())
	return c
}

// Parent returns the parent transaction or nil.
func (t *Transaction) Parent() *Transaction {
	if t.ds == nil || t.ParentID() == 0 {
		return nil
	}
	p, _ := t.ds.Transactions.Get(t.ParentID())
	return p
}

// PairCode returns the raw code of the kinds of the two legs.
func (t *Transaction) PairCode() int { return t.getInt(FieldPair) }

// Pair returns the interned pair of the legs, or nil when the legs are
// unset or structurally illegal.
func (t *Transaction) Pair() *AssetPair {
	if t.ds == nil {
		return nil
	}
	p, err := t.ds.Pairs.LookUpPair(t.PairCode())
	if err != nil {
		return nil
	}
	return p
}

func (t *Transaction) debitType() AssetType  { return AssetType(t.PairCode() >> pairShift) }
func (t *Transaction) creditType() AssetType { return AssetType(t.PairCode() & (1<<pairShift - 1)) }

// Debit returns the debit asset or nil.
func (t *Transaction) Debit() Asset { return t.ds.asset(t.debitType(), t.getInt(FieldDebit)) }

// Credit returns the credit asset or nil.
func (t *Transaction) Credit() Asset { return t.ds.asset(t.creditType(), t.getInt(FieldCredit)) }

// assetRef returns the id and type of a leg, zero for a nil leg.
func assetRef(a Asset) (int, AssetType) {
	if a == nil {
		return 0, 0
	}
	return a.ID(), a.AssetType()
}

// SetAssets sets both legs. A nil leg clears it.
func (t *Transaction) SetAssets(debit, credit Asset) {
	debitID, debitType := assetRef(debit)
	creditID, creditType := assetRef(credit)
	t.setRef(FieldDebit, debitID)
	t.setRef(FieldCredit, creditID)
	t.set(FieldPair, pairCode(debitType, creditType))
}

// SetDebit replaces the debit leg, adjusting the pair.
func (t *Transaction) SetDebit(debit Asset) {
	id, typ := assetRef(debit)
	t.setRef(FieldDebit, id)
	if p := t.Pair(); p != nil && debit != nil {
		if q, err := t.ds.Pairs.AdjustDebit(p, typ); err == nil {
			t.set(FieldPair, q.ID())
			return
		}
	}
	t.set(FieldPair, pairCode(typ, t.creditType()))
}

// SetCredit replaces the credit leg, adjusting the pair.
func (t *Transaction) SetCredit(credit Asset) {
	id, typ := assetRef(credit)
	t.setRef(FieldCredit, id)
	if p := t.Pair(); p != nil && credit != nil {
		if q, err := t.ds.Pairs.AdjustCredit(p, typ); err == nil {
			t.set(FieldPair, q.ID())
			return
		}
	}
	t.set(FieldPair, pairCode(t.debitType(), typ))
}

func (t *Transaction) Validate() {
	t.clearErrors()
	if t.Date().IsZero() {
		t.addError(FieldDate, msgMissing)
	}

	c := t.Category()
	switch {
	case t.CategoryID() == 0:
		t.addError(FieldCategory, msgMissing)
	case c == nil:
		t.addError(FieldCategory, msgInvalid)
	case c.IsDeleted():
		t.addError(FieldCategory, msgDeleted)
		c = nil
	case c.Class().IsParent():
		t.addError(FieldCategory, msgNotAllowed)
		c = nil
	case !t.ds.cfg.ClassEnabled(c.Class()):
		t.addError(FieldCategory, msgDisabled)
	}

	debit := t.validateLeg(FieldDebit, t.Debit())
	credit := t.validateLeg(FieldCredit, t.Credit())
	if debit != nil && credit != nil {
		if t.Pair() == nil {
			t.addError(FieldPair, msgIllegalEvent)
		} else if c != nil && !IsValidEvent(c, debit, credit) {
			t.addError(FieldCategory, msgIllegalEvent)
		}
	}

	t.validateAmount(c)
	t.validateParent()
	t.validateUnits(InfoDebitUnits, debit)
	t.validateUnits(InfoCreditUnits, credit)
	t.info.Validate()
}

// validateLeg checks a leg and returns its asset when usable.
func (t *Transaction) validateLeg(f FieldID, a Asset) Asset {
	switch {
	case t.getInt(f) == 0:
		t.addError(f, msgMissing)
	case a == nil:
		t.addError(f, msgInvalid)
	case a.item().IsDeleted():
		t.addError(f, msgDeleted)
	case a.IsClosed() && !t.IsReconciled():
		t.addError(f, msgClosed)
	default:
		return a
	}
	return nil
}

func (t *Transaction) validateAmount(c *Category) {
	amount := t.Amount()
	if c != nil && c.Class().NeedsZeroAmount() {
		if !amount.IsZero() {
			t.addError(FieldAmount, msgZeroAmount)
		}
		return
	}
	switch {
	case !t.HasAmount():
		t.addError(FieldAmount, msgMissing)
	case !amount.IsPositive():
		t.addError(FieldAmount, msgPositive)
	default:
		if cur := t.ds.currency(amount.Currency()); cur == nil || !cur.Enabled() {
			t.addError(FieldAmount, msgDisabled)
		}
	}
}

// validateParent checks the single level of split nesting.
func (t *Transaction) validateParent() {
	if t.ParentID() == 0 {
		return
	}
	p := t.Parent()
	switch {
	case p == nil || p.id == t.id:
		t.addError(FieldParent, msgInvalid)
	case p.IsDeleted():
		t.addError(FieldParent, msgDeleted)
	case p.ParentID() != 0:
		t.addError(FieldParent, msgNestedParent)
	case p.Date() != t.Date():
		t.addError(FieldDate, msgParentDate)
	}
}

// validateUnits checks units are only moved on security legs.
func (t *Transaction) validateUnits(class InfoClass, a Asset) {
	if _, ok := t.info.Units(class); !ok || a == nil {
		return
	}
	if !isSecurity(a, SecurityType.HasUnits) {
		t.addError(class.Field(), msgNotAllowed)
	}
}

func (t *Transaction) touchUnderlyingItems() {
	if c := t.Category(); c != nil {
		c.touch()
	}
	if p := t.Parent(); p != nil {
		p.touch()
	}
	if c := t.ds.currency(t.Amount().Currency()); c != nil {
		c.touch()
	}
	for _, a := range []Asset{t.Debit(), t.Credit()} {
		if a == nil {
			continue
		}
		it := a.item()
		it.touch()
		if a.AssetType() == AssetPayee {
			continue
		}
		if !t.IsReconciled() {
			it.status.busy = true
		}
		if it.status.lastEvent.Before(t.Date()) {
			it.status.lastEvent = t.Date()
		}
	}
	t.info.touch(t.ds)
}

// compareTransactions orders transactions by date then id.
func compareTransactions(a, b *Transaction) int {
	return cmp.Or(a.Date().Compare(b.Date()), cmp.Compare(a.id, b.id))
}
