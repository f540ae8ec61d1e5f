package moneywise

// IsValidEvent reports whether a transaction of category can move value from
// debit to credit. It has no side effect.
func IsValidEvent(category *Category, debit, credit Asset) bool {
	if category == nil || debit == nil || credit == nil {
		return false
	}
	class := category.Class()
	if class == 0 || class.Kind() != KindTransactionCategory || class.IsParent() {
		return false
	}
	dt, ct := debit.AssetType(), credit.AssetType()
	if !structurallyLegal(dt, ct) {
		return false
	}

	// auto expense cash only transfers to valued accounts or pays payees
	if dt == AssetAutoExpense || ct == AssetAutoExpense {
		other := dt
		if other == AssetAutoExpense {
			other = ct
		}
		switch class {
		case Transfer:
			return other.IsValued()
		case Expense:
			return other == AssetPayee
		default:
			return false
		}
	}

	recursive := sameAsset(debit, credit)
	// expenses are matched with the payer on the debit side
	if class.IsExpense() && !recursive {
		debit, credit = credit, debit
		dt, ct = ct, dt
	}
	refund := dt != AssetPayee && ct == AssetPayee

	switch class {
	case TaxedIncome:
		return !refund && isPayeeOf(debit, PayeeEmployer) && ct.IsValued()
	case GrossIncome, LoyaltyBonus, CashBack:
		return !refund && dt == AssetPayee && ct.IsValued()
	case OtherIncome, RecoveredExpenses, RentalIncome, Expense:
		return isPayeeAndValued(dt, ct)
	case GiftedIncome, Inherited:
		return !refund && isPayeeOf(debit, PayeeIndividual) && ct != AssetPayee
	case Interest:
		return dt == AssetDeposit && (recursive || ct.IsValued())
	case LoanInterestEarned:
		return dt == AssetLoan && (recursive || ct.IsValued())
	case Dividend:
		return isSecurity(debit, SecurityType.IsDividend) && (recursive || ct.IsValued())
	case LocalTaxes:
		return isPayeeAndValued(dt, ct) && (isPayeeOf(debit, PayeeGovernment) || isPayeeOf(credit, PayeeGovernment))
	case IncomeTax:
		return isPayeeAndValued(dt, ct) && (isPayeeOf(debit, PayeeTaxMan) || isPayeeOf(credit, PayeeTaxMan))
	case WriteOff:
		return !refund && dt == AssetPayee && ct == AssetLoan
	case LoanInterestCharged:
		return (recursive && dt == AssetLoan) || (dt == AssetPayee && ct == AssetLoan)
	case Transfer:
		return !recursive && transferable(dt) && transferable(ct) && (dt.IsValued() || ct.IsValued())
	case PortfolioXfer:
		return !recursive && dt == AssetPortfolio && ct == AssetPortfolio
	case StockSplit, StockAdjust:
		return recursive && isSecurity(debit, SecurityType.HasUnits)
	case StockDemerger, StockTakeover:
		return !recursive && isSecurity(debit, isShares) && isSecurity(credit, isShares)
	case SecurityReplace:
		return !recursive && isSecurity(debit, SecurityType.HasUnits) && isSecurity(credit, SecurityType.HasUnits)
	case StockRightsIssue:
		return (dt.IsValued() && isSecurity(credit, isShares)) || (isSecurity(debit, isShares) && ct.IsValued())
	case OptionsGrant:
		return recursive && isSecurity(debit, isOption)
	case OptionsExercise:
		return isSecurity(debit, isOption) && isSecurity(credit, isShares)
	case IncomeTotals, ExpenseTotals, SecurityParent, Totals:
		return false
	default:
		return false
	}
}

// sameAsset reports whether both legs are the same underlying asset.
func sameAsset(a, b Asset) bool { return a.Kind() == b.Kind() && a.ID() == b.ID() }

// isPayeeAndValued reports whether one leg is a payee and the other a valued
// account, in either direction.
func isPayeeAndValued(dt, ct AssetType) bool {
	return (dt == AssetPayee && ct.IsValued()) || (dt.IsValued() && ct == AssetPayee)
}

func isPayeeOf(a Asset, t PayeeType) bool {
	p, ok := a.(*Payee)
	return ok && p.Type() == t
}

func isSecurity(a Asset, is func(SecurityType) bool) bool {
	s, ok := a.(*Security)
	return ok && is(s.Type())
}

func isShares(t SecurityType) bool { return t == SecurityShares }
func isOption(t SecurityType) bool { return t == SecurityStockOption }

// transferable reports whether value can be transferred from or to the type.
func transferable(t AssetType) bool { return t.IsValued() || t == AssetSecurity }
