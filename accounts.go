package moneywise

import (
	"fmt"

	"github.com/etnz/moneywise/date"
)

// PayeeType is the type of a payee.
type PayeeType int

const (
	PayeeTaxMan PayeeType = iota + 1
	PayeeGovernment
	PayeeMarket
	PayeeEmployer
	PayeeInstitution
	PayeeIndividual
	PayeeAnnuity
	PayeeStandard
)

var payeeTypeNames = map[PayeeType]string{
	PayeeTaxMan:      "TaxMan",
	PayeeGovernment:  "Government",
	PayeeMarket:      "Market",
	PayeeEmployer:    "Employer",
	PayeeInstitution: "Institution",
	PayeeIndividual:  "Individual",
	PayeeAnnuity:     "Annuity",
	PayeeStandard:    "Payee",
}

func (t PayeeType) String() string {
	if s, ok := payeeTypeNames[t]; ok {
		return s
	}
	return fmt.Sprintf("PayeeType(%d)", int(t))
}

// IsSingular reports whether at most one payee can have the type.
func (t PayeeType) IsSingular() bool {
	return t == PayeeTaxMan || t == PayeeGovernment || t == PayeeMarket
}

// ParsePayeeType returns the payee type named s.
func ParsePayeeType(s string) (PayeeType, error) {
	for t, name := range payeeTypeNames {
		if name == s {
			return t, nil
		}
	}
	return 0, fmt.Errorf("unknown payee type %q", s)
}

// SecurityType is the type of a security.
type SecurityType int

const (
	SecurityShares SecurityType = iota + 1
	SecurityUnitTrust
	SecurityLifeBond
	SecurityProperty
	SecurityVehicle
	SecurityStockOption
	SecurityGeneric
)

var securityTypeNames = map[SecurityType]string{
	SecurityShares:      "Shares",
	SecurityUnitTrust:   "UnitTrust",
	SecurityLifeBond:    "LifeBond",
	SecurityProperty:    "Property",
	SecurityVehicle:     "Vehicle",
	SecurityStockOption: "StockOption",
	SecurityGeneric:     "Generic",
}

func (t SecurityType) String() string {
	if s, ok := securityTypeNames[t]; ok {
		return s
	}
	return fmt.Sprintf("SecurityType(%d)", int(t))
}

// IsDividend reports whether the security pays dividends.
func (t SecurityType) IsDividend() bool { return t == SecurityShares || t == SecurityUnitTrust }

// HasUnits reports whether holdings are counted in units.
func (t SecurityType) HasUnits() bool {
	return t == SecurityShares || t == SecurityUnitTrust || t == SecurityLifeBond || t == SecurityStockOption
}

// ParseSecurityType returns the security type named s.
func ParseSecurityType(s string) (SecurityType, error) {
	for t, name := range securityTypeNames {
		if name == s {
			return t, nil
		}
	}
	return 0, fmt.Errorf("unknown security type %q", s)
}

// PortfolioType is the type of a portfolio.
type PortfolioType int

const (
	PortfolioStandard PortfolioType = iota + 1
	PortfolioTaxFree
	PortfolioPension
)

func (t PortfolioType) String() string {
	switch t {
	case PortfolioStandard:
		return "Standard"
	case PortfolioTaxFree:
		return "TaxFree"
	case PortfolioPension:
		return "Pension"
	default:
		return fmt.Sprintf("PortfolioType(%d)", int(t))
	}
}

// ParsePortfolioType returns the portfolio type named s.
func ParsePortfolioType(s string) (PortfolioType, error) {
	for _, t := range []PortfolioType{PortfolioStandard, PortfolioTaxFree, PortfolioPension} {
		if t.String() == s {
			return t, nil
		}
	}
	return 0, fmt.Errorf("unknown portfolio type %q", s)
}

// Payee is a counterparty of transactions.
type Payee struct{ assetBase }

func newPayee() *Payee { return &Payee{assetBase{newItem(KindPayee, true)}} }

func (p *Payee) AssetType() AssetType { return AssetPayee }
func (p *Payee) Type() PayeeType      { return PayeeType(p.getInt(FieldType)) }
func (p *Payee) SetType(t PayeeType)  { p.set(FieldType, int(t)) }

func (p *Payee) Validate() {
	p.clearErrors()
	p.validateName()
	t := p.Type()
	switch {
	case t == 0:
		p.addError(FieldType, msgMissing)
	case t.IsSingular():
		for o := range p.ds.Payees.Live() {
			if o.id != p.id && o.Type() == t {
				p.addError(FieldType, msgSingular)
				break
			}
		}
	}
	if p.IsClosed() && p.status.busy {
		p.addError(FieldClosed, msgChildrenOpen)
	}
	p.info.Validate()
}

func (p *Payee) touchUnderlyingItems() { p.info.touch(p.ds) }

// Deposit is a bank or savings account.
type Deposit struct{ assetBase }

func newDeposit() *Deposit { return &Deposit{assetBase{newItem(KindDeposit, true)}} }

func (d *Deposit) AssetType() AssetType    { return AssetDeposit }
func (d *Deposit) Category() *Category     { return d.category() }
func (d *Deposit) SetCategory(c *Category) { d.setCategory(c) }
func (d *Deposit) Maturity() date.Date     { return d.info.Date(InfoMaturity) }
func (d *Deposit) SortCode() string        { return d.info.Text(InfoSortCode) }
func (d *Deposit) touchUnderlyingItems()   { d.touchBase() }

// SetMaturity sets the maturity date, the zero date clears it.
func (d *Deposit) SetMaturity(day date.Date) error {
	if day.IsZero() {
		return d.info.SetValue(InfoMaturity, nil)
	}
	return d.info.SetValue(InfoMaturity, day)
}

// SetSortCode sets the sort code, "" clears it.
func (d *Deposit) SetSortCode(code string) error {
	return d.info.SetValue(InfoSortCode, nilIfEmpty(code))
}

func (d *Deposit) Validate() {
	d.clearErrors()
	d.validateName()
	c := d.validateCategory()
	d.validateCurrency(false)
	d.validateParent(c == nil || c.Class().NeedsParentPayee())
	d.validateClosed()
	d.info.Validate()
}

// Cash is a cash account. Cash of an auto expense category has no currency
// and books every payment as an expense.
type Cash struct{ assetBase }

func newCash() *Cash { return &Cash{assetBase{newItem(KindCash, true)}} }

func (c *Cash) Category() *Category     { return c.category() }
func (c *Cash) SetCategory(k *Category) { c.setCategory(k) }
func (c *Cash) touchUnderlyingItems()   { c.touchBase() }

// IsAutoExpense reports whether the cash account is an auto expense one.
func (c *Cash) IsAutoExpense() bool {
	k := c.category()
	return k != nil && k.Class().ForbidsCurrency()
}

func (c *Cash) AssetType() AssetType {
	if c.IsAutoExpense() {
		return AssetAutoExpense
	}
	return AssetCash
}

func (c *Cash) Validate() {
	c.clearErrors()
	c.validateName()
	k := c.validateCategory()
	c.validateCurrency(k != nil && k.Class().ForbidsCurrency())
	c.validateParent(false)
	c.validateClosed()
	c.info.Validate()
}

// Loan is a loan or a credit card.
type Loan struct{ assetBase }

func newLoan() *Loan { return &Loan{assetBase{newItem(KindLoan, true)}} }

func (l *Loan) AssetType() AssetType    { return AssetLoan }
func (l *Loan) Category() *Category     { return l.category() }
func (l *Loan) SetCategory(c *Category) { l.setCategory(c) }
func (l *Loan) touchUnderlyingItems()   { l.touchBase() }

func (l *Loan) Validate() {
	l.clearErrors()
	l.validateName()
	c := l.validateCategory()
	l.validateCurrency(false)
	l.validateParent(c == nil || c.Class().NeedsParentPayee())
	l.validateClosed()
	l.info.Validate()
}

// Portfolio groups securities held with an institution.
type Portfolio struct{ assetBase }

func newPortfolio() *Portfolio { return &Portfolio{assetBase{newItem(KindPortfolio, true)}} }

func (p *Portfolio) AssetType() AssetType    { return AssetPortfolio }
func (p *Portfolio) Type() PortfolioType     { return PortfolioType(p.getInt(FieldType)) }
func (p *Portfolio) SetType(t PortfolioType) { p.set(FieldType, int(t)) }
func (p *Portfolio) touchUnderlyingItems()   { p.touchBase() }

func (p *Portfolio) Validate() {
	p.clearErrors()
	p.validateName()
	if p.Type() == 0 {
		p.addError(FieldType, msgMissing)
	}
	p.validateCurrency(false)
	p.validateParent(true)
	p.validateClosed()
	p.info.Validate()
}

// Security is a share, fund, bond or other holding.
type Security struct{ assetBase }

func newSecurity() *Security { return &Security{assetBase{newItem(KindSecurity, true)}} }

func (s *Security) AssetType() AssetType   { return AssetSecurity }
func (s *Security) Type() SecurityType     { return SecurityType(s.getInt(FieldType)) }
func (s *Security) SetType(t SecurityType) { s.set(FieldType, int(t)) }
func (s *Security) Symbol() string         { return s.info.Text(InfoSymbol) }
func (s *Security) touchUnderlyingItems()  { s.touchBase() }

// SetSymbol sets the trading symbol, "" to clear it.
func (s *Security) SetSymbol(symbol string) error {
	return s.info.SetValue(InfoSymbol, nilIfEmpty(symbol))
}

func (s *Security) Validate() {
	s.clearErrors()
	s.validateName()
	if s.Type() == 0 {
		s.addError(FieldType, msgMissing)
	}
	s.validateCurrency(false)
	s.validateParent(true)
	s.validateClosed()
	s.info.Validate()
}

// nilIfEmpty turns an empty string into an unset attribute.
func nilIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}
