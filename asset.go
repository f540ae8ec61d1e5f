package moneywise

import (
	"cmp"
	"fmt"
	"unicode/utf8"
)

// AssetType is the kind of asset on one leg of a transaction.
type AssetType int

const (
	AssetPayee AssetType = iota + 1
	AssetDeposit
	AssetCash
	AssetAutoExpense
	AssetLoan
	AssetPortfolio
	AssetSecurity
)

// AssetTypes lists every asset type in code order.
var AssetTypes = []AssetType{
	AssetPayee, AssetDeposit, AssetCash, AssetAutoExpense, AssetLoan, AssetPortfolio, AssetSecurity,
}

func (t AssetType) String() string {
	switch t {
	case AssetPayee:
		return "Payee"
	case AssetDeposit:
		return "Deposit"
	case AssetCash:
		return "Cash"
	case AssetAutoExpense:
		return "AutoExpense"
	case AssetLoan:
		return "Loan"
	case AssetPortfolio:
		return "Portfolio"
	case AssetSecurity:
		return "Security"
	default:
		return fmt.Sprintf("AssetType(%d)", int(t))
	}
}

// IsValued reports whether the asset holds a currency balance.
func (t AssetType) IsValued() bool {
	return t == AssetDeposit || t == AssetCash || t == AssetLoan
}

// ParseAssetType returns the asset type named s.
func ParseAssetType(s string) (AssetType, error) {
	for _, t := range AssetTypes {
		if t.String() == s {
			return t, nil
		}
	}
	return 0, fmt.Errorf("unknown asset type %q", s)
}

// Asset is one leg of a transaction: a payee, an account, a portfolio or a
// security.
type Asset interface {
	element
	ID() int
	Kind() ItemKind
	Name() string
	AssetType() AssetType
	Currency() string
	IsClosed() bool
}

// assetBase holds the fields shared by every asset.
type assetBase struct{ Item }

func (a *assetBase) Name() string               { return a.getString(FieldName) }
func (a *assetBase) SetName(name string)        { a.set(FieldName, name) }
func (a *assetBase) Description() string        { return a.getString(FieldDescription) }
func (a *assetBase) SetDescription(desc string) { a.set(FieldDescription, desc) }
func (a *assetBase) IsClosed() bool             { return a.getBool(FieldClosed) }
func (a *assetBase) SetClosed(closed bool)      { a.set(FieldClosed, closed) }
func (a *assetBase) Currency() string           { return a.getString(FieldCurrency) }

// SetCurrency sets the ISO code of the currency, "" to clear it.
func (a *assetBase) SetCurrency(code string) {
	if code == "" {
		a.set(FieldCurrency, nil)
		return
	}
	a.set(FieldCurrency, code)
}

// ParentID returns the id of the parent payee, 0 when none.
func (a *assetBase) ParentID() int { return a.getInt(FieldParent) }

// Parent returns the parent payee or nil.
func (a *assetBase) Parent() *Payee {
	if a.ds == nil || a.ParentID() == 0 {
		return nil
	}
	p, _ := a.ds.Payees.Get(a.ParentID())
	return p
}

// SetParent sets the parent payee, nil to clear it.
func (a *assetBase) SetParent(p *Payee) {
	if p == nil {
		a.setRef(FieldParent, 0)
		return
	}
	a.setRef(FieldParent, p.id)
}

// IsBusy reports whether the touch pass found activity preventing a close.
func (a *assetBase) IsBusy() bool { return a.status.busy }

// LastEvent returns the date of the latest transaction found by the touch
// pass.
func (a *assetBase) LastEvent() string { return a.status.lastEvent.String() }

// validateName checks the name is set, bounded and unique across assets.
func (a *assetBase) validateName() {
	cfg := a.ds.cfg
	name := a.Name()
	switch {
	case name == "":
		a.addError(FieldName, msgMissing)
	case utf8.RuneCountInString(name) > cfg.NameLength:
		a.addError(FieldName, msgTooLong)
	default:
		if o := a.ds.FindAsset(name); o != nil && (o.Kind() != a.kind || o.ID() != a.id) {
			a.addError(FieldName, msgDuplicate)
		}
	}
	if utf8.RuneCountInString(a.Description()) > cfg.DescriptionLength {
		a.addError(FieldDescription, msgTooLong)
	}
}

// validateCurrency checks the currency is set and enabled, or absent when
// forbidden.
func (a *assetBase) validateCurrency(forbidden bool) {
	code := a.Currency()
	switch {
	case forbidden:
		if code != "" {
			a.addError(FieldCurrency, msgCurrencyFree)
		}
	case code == "":
		a.addError(FieldCurrency, msgMissing)
	default:
		c := a.ds.currency(code)
		switch {
		case c == nil:
			a.addError(FieldCurrency, msgInvalid)
		case !c.Enabled():
			a.addError(FieldCurrency, msgDisabled)
		}
	}
}

// validateParent checks the parent payee.
func (a *assetBase) validateParent(required bool) {
	p := a.Parent()
	switch {
	case p == nil && a.ParentID() != 0:
		a.addError(FieldParent, msgInvalid)
	case p == nil:
		if required {
			a.addError(FieldParent, msgMissing)
		}
	case p.IsDeleted():
		a.addError(FieldParent, msgDeleted)
	case !a.IsClosed() && p.IsClosed():
		a.addError(FieldParent, msgParentClosed)
	}
}

// validateClosed checks a closed asset is closeable.
func (a *assetBase) validateClosed() {
	if a.IsClosed() && a.status.busy {
		a.addError(FieldClosed, msgNotCloseable)
	}
}

// validateCategory checks the category of an account and returns it when
// usable.
func (a *assetBase) validateCategory() *Category {
	id := a.getInt(FieldCategory)
	if id == 0 {
		a.addError(FieldCategory, msgMissing)
		return nil
	}
	c, ok := a.ds.categories(categoryKindFor(a.kind)).Get(id)
	switch {
	case !ok:
		a.addError(FieldCategory, msgInvalid)
		return nil
	case c.IsDeleted():
		a.addError(FieldCategory, msgDeleted)
		return nil
	case c.Class().IsParent():
		a.addError(FieldCategory, msgNotAllowed)
		return nil
	case !a.ds.cfg.ClassEnabled(c.Class()):
		a.addError(FieldCategory, msgDisabled)
	}
	return c
}

// category returns the account category or nil.
func (a *assetBase) category() *Category {
	id := a.getInt(FieldCategory)
	if a.ds == nil || id == 0 {
		return nil
	}
	c, _ := a.ds.categories(categoryKindFor(a.kind)).Get(id)
	return c
}

func (a *assetBase) setCategory(c *Category) {
	if c == nil {
		a.setRef(FieldCategory, 0)
		return
	}
	a.setRef(FieldCategory, c.id)
}

// touchBase marks the currency, category and parent of the asset in use.
func (a *assetBase) touchBase() {
	if c := a.ds.currency(a.Currency()); c != nil {
		c.touch()
	}
	if c := a.category(); c != nil {
		c.touch()
	}
	if p := a.Parent(); p != nil {
		p.touch()
		if !a.IsClosed() {
			p.status.busy = true
		}
	}
	a.info.touch(a.ds)
}

// compareAssets orders assets by name then id.
func compareAssets[T Asset](a, b T) int {
	return cmp.Or(cmp.Compare(a.Name(), b.Name()), cmp.Compare(a.ID(), b.ID()))
}
