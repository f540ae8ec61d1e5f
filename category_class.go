package moneywise

import "fmt"

// CategoryClass is the static class of a category. Each class belongs to one
// category kind and names the class its parent must have.
type CategoryClass int

const (
	// deposit categories
	DepositChecking CategoryClass = iota + 1
	DepositSavings
	DepositTaxFree
	DepositBond
	DepositPeer2Peer
	DepositParent

	// cash categories
	CashStandard
	CashAutoExpense
	CashParent

	// loan categories
	LoanCreditCard
	LoanPrivate
	LoanStandard
	LoanParent

	// income transaction categories
	TaxedIncome
	GrossIncome
	OtherIncome
	GiftedIncome
	Inherited
	Interest
	Dividend
	LoyaltyBonus
	CashBack
	RecoveredExpenses
	RentalIncome
	LoanInterestEarned

	// expense transaction categories
	Expense
	LocalTaxes
	IncomeTax
	WriteOff
	LoanInterestCharged

	// transfers and security operations
	Transfer
	PortfolioXfer
	StockSplit
	StockAdjust
	StockDemerger
	StockTakeover
	SecurityReplace
	StockRightsIssue
	OptionsGrant
	OptionsExercise

	// transaction parents
	IncomeTotals
	ExpenseTotals
	SecurityParent
	Totals
)

// CategoryClasses lists every class in declaration order.
var CategoryClasses []CategoryClass

func init() {
	for c := DepositChecking; c <= Totals; c++ {
		CategoryClasses = append(CategoryClasses, c)
	}
}

type classMeta struct {
	name     string
	kind     ItemKind      // category kind the class belongs to
	parent   CategoryClass // required parent class, 0 for top level classes
	totals   bool          // children names are not prefixed by the parent name
	singular bool
	income   bool
	expense  bool
	zero     bool // transactions need a zero amount
	owned    bool // accounts need a parent payee
	noCur    bool // accounts must not have a currency
}

func (c CategoryClass) meta() classMeta {
	const (
		dep = KindDepositCategory
		csh = KindCashCategory
		lon = KindLoanCategory
		trx = KindTransactionCategory
	)
	switch c {
	case DepositChecking:
		return classMeta{name: "Checking", kind: dep, parent: DepositParent, owned: true}
	case DepositSavings:
		return classMeta{name: "Savings", kind: dep, parent: DepositParent, owned: true}
	case DepositTaxFree:
		return classMeta{name: "TaxFreeSavings", kind: dep, parent: DepositParent, owned: true}
	case DepositBond:
		return classMeta{name: "Bond", kind: dep, parent: DepositParent, owned: true}
	case DepositPeer2Peer:
		return classMeta{name: "Peer2Peer", kind: dep, parent: DepositParent, owned: true}
	case DepositParent:
		return classMeta{name: "DepositParent", kind: dep}
	case CashStandard:
		return classMeta{name: "Cash", kind: csh, parent: CashParent}
	case CashAutoExpense:
		return classMeta{name: "AutoExpense", kind: csh, parent: CashParent, noCur: true}
	case CashParent:
		return classMeta{name: "CashParent", kind: csh}
	case LoanCreditCard:
		return classMeta{name: "CreditCard", kind: lon, parent: LoanParent, owned: true}
	case LoanPrivate:
		return classMeta{name: "PrivateLoan", kind: lon, parent: LoanParent, owned: true}
	case LoanStandard:
		return classMeta{name: "Loan", kind: lon, parent: LoanParent, owned: true}
	case LoanParent:
		return classMeta{name: "LoanParent", kind: lon}
	case TaxedIncome:
		return classMeta{name: "TaxedIncome", kind: trx, parent: IncomeTotals, income: true}
	case GrossIncome:
		return classMeta{name: "GrossIncome", kind: trx, parent: IncomeTotals, income: true}
	case OtherIncome:
		return classMeta{name: "OtherIncome", kind: trx, parent: IncomeTotals, income: true}
	case GiftedIncome:
		return classMeta{name: "GiftedIncome", kind: trx, parent: IncomeTotals, income: true}
	case Inherited:
		return classMeta{name: "Inherited", kind: trx, parent: IncomeTotals, income: true}
	case Interest:
		return classMeta{name: "Interest", kind: trx, parent: IncomeTotals, income: true}
	case Dividend:
		return classMeta{name: "Dividend", kind: trx, parent: IncomeTotals, income: true}
	case LoyaltyBonus:
		return classMeta{name: "LoyaltyBonus", kind: trx, parent: IncomeTotals, income: true}
	case CashBack:
		return classMeta{name: "CashBack", kind: trx, parent: IncomeTotals, income: true}
	case RecoveredExpenses:
		return classMeta{name: "RecoveredExpenses", kind: trx, parent: IncomeTotals, income: true}
	case RentalIncome:
		return classMeta{name: "RentalIncome", kind: trx, parent: IncomeTotals, income: true}
	case LoanInterestEarned:
		return classMeta{name: "LoanInterestEarned", kind: trx, parent: IncomeTotals, income: true}
	case Expense:
		return classMeta{name: "Expense", kind: trx, parent: ExpenseTotals, expense: true}
	case LocalTaxes:
		return classMeta{name: "LocalTaxes", kind: trx, parent: ExpenseTotals, expense: true}
	case IncomeTax:
		return classMeta{name: "IncomeTax", kind: trx, parent: ExpenseTotals, expense: true}
	case WriteOff:
		return classMeta{name: "WriteOff", kind: trx, parent: ExpenseTotals, expense: true}
	case LoanInterestCharged:
		return classMeta{name: "LoanInterestCharged", kind: trx, parent: ExpenseTotals, expense: true}
	case Transfer:
		return classMeta{name: "Transfer", kind: trx, parent: Totals, singular: true}
	case PortfolioXfer:
		return classMeta{name: "PortfolioXfer", kind: trx, parent: SecurityParent, singular: true}
	case StockSplit:
		return classMeta{name: "StockSplit", kind: trx, parent: SecurityParent, singular: true, zero: true}
	case StockAdjust:
		return classMeta{name: "StockAdjust", kind: trx, parent: SecurityParent, singular: true, zero: true}
	case StockDemerger:
		return classMeta{name: "StockDemerger", kind: trx, parent: SecurityParent, singular: true, zero: true}
	case StockTakeover:
		return classMeta{name: "StockTakeover", kind: trx, parent: SecurityParent, singular: true}
	case SecurityReplace:
		return classMeta{name: "SecurityReplace", kind: trx, parent: SecurityParent, singular: true}
	case StockRightsIssue:
		return classMeta{name: "StockRightsIssue", kind: trx, parent: SecurityParent, singular: true}
	case OptionsGrant:
		return classMeta{name: "OptionsGrant", kind: trx, parent: SecurityParent, singular: true, zero: true}
	case OptionsExercise:
		return classMeta{name: "OptionsExercise", kind: trx, parent: SecurityParent, singular: true}
	case IncomeTotals:
		return classMeta{name: "IncomeTotals", kind: trx, parent: Totals}
	case ExpenseTotals:
		return classMeta{name: "ExpenseTotals", kind: trx, parent: Totals}
	case SecurityParent:
		return classMeta{name: "SecurityParent", kind: trx, parent: Totals, singular: true}
	case Totals:
		return classMeta{name: "Totals", kind: trx, totals: true, singular: true}
	default:
		panic(fmt.Sprintf("unknown category class %d", int(c)))
	}
}

func (c CategoryClass) String() string { return c.meta().name }

// Kind returns the kind of category the class applies to.
func (c CategoryClass) Kind() ItemKind { return c.meta().kind }

// Parent returns the class a parent category must have, 0 for top level
// classes.
func (c CategoryClass) Parent() CategoryClass { return c.meta().parent }

// IsTopLevel reports whether categories of the class have no parent.
func (c CategoryClass) IsTopLevel() bool { return c.meta().parent == 0 }

// IsTotals reports whether children of the class are named without prefix.
func (c CategoryClass) IsTotals() bool { return c.meta().totals }

// IsSingular reports whether at most one category can have the class.
func (c CategoryClass) IsSingular() bool { return c.meta().singular }

// IsIncome reports whether the class is an income.
func (c CategoryClass) IsIncome() bool { return c.meta().income }

// IsExpense reports whether the class is an expense.
func (c CategoryClass) IsExpense() bool { return c.meta().expense }

// NeedsZeroAmount reports whether transactions of the class carry no value.
func (c CategoryClass) NeedsZeroAmount() bool { return c.meta().zero }

// NeedsParentPayee reports whether accounts of the class need a parent payee.
func (c CategoryClass) NeedsParentPayee() bool { return c.meta().owned }

// ForbidsCurrency reports whether accounts of the class have no currency.
func (c CategoryClass) ForbidsCurrency() bool { return c.meta().noCur }

// IsParent reports whether the class is only used to group other categories.
func (c CategoryClass) IsParent() bool {
	for _, o := range CategoryClasses {
		if o.Parent() == c {
			return true
		}
	}
	return false
}

// ParseCategoryClass returns the class named s.
func ParseCategoryClass(s string) (CategoryClass, error) {
	for _, c := range CategoryClasses {
		if c.String() == s {
			return c, nil
		}
	}
	return 0, fmt.Errorf("unknown category class %q", s)
}

// categoryKindFor returns the category kind of the accounts of kind.
func categoryKindFor(kind ItemKind) ItemKind {
	switch kind {
	case KindDeposit:
		return KindDepositCategory
	case KindCash:
		return KindCashCategory
	case KindLoan:
		return KindLoanCategory
	case KindTransaction:
		return KindTransactionCategory
	default:
		return 0
	}
}
