package moneywise

import (
	"errors"
	"fmt"
	"slices"
	"strconv"

	"github.com/etnz/moneywise/date"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// DataSet is one in-memory edit session over a ledger. It owns every list
// of items, the pair manager and the exchange rate table.
//
// A DataSet is not safe for concurrent use.
type DataSet struct {
	id       uuid.UUID
	cfg      *Config
	log      zerolog.Logger
	version  int
	editable bool

	Currencies            *List[*Currency]
	DepositCategories     *List[*Category]
	CashCategories        *List[*Category]
	LoanCategories        *List[*Category]
	TransactionCategories *List[*Category]
	Tags                  *List[*Tag]
	Payees                *List[*Payee]
	Deposits              *List[*Deposit]
	Cash                  *List[*Cash]
	Loans                 *List[*Loan]
	Portfolios            *List[*Portfolio]
	Securities            *List[*Security]
	Transactions          *List[*Transaction]
	Rates                 *ExchangeRateTable
	Pairs                 *AssetPairManager
}

// Option configures a DataSet.
type Option func(*DataSet)

// WithLogger sets the logger of the dataset.
func WithLogger(log zerolog.Logger) Option { return func(ds *DataSet) { ds.log = log } }

// NewDataSet returns an empty editable dataset holding the currencies of cfg.
// A nil cfg uses the default configuration.
func NewDataSet(cfg *Config, opts ...Option) *DataSet {
	if cfg == nil {
		cfg = NewDefaultConfig()
	}
	ds := &DataSet{id: uuid.New(), cfg: cfg, log: zerolog.Nop(), editable: true}
	for _, opt := range opts {
		opt(ds)
	}
	ds.initLists()
	ds.Pairs = NewAssetPairManager(ds.id)
	for _, code := range cfg.Currencies {
		c := ds.Currencies.New()
		c.SetCode(code)
		c.SetEnabled(true)
		c.SetDefault(code == cfg.DefaultCurrency)
		c.Commit()
	}
	return ds
}

func (ds *DataSet) initLists() {
	ds.Currencies = newList(ds, KindCurrency, newCurrency, compareCurrencies)
	ds.DepositCategories = newList(ds, KindDepositCategory, newCategoryFactory(KindDepositCategory), compareCategories)
	ds.CashCategories = newList(ds, KindCashCategory, newCategoryFactory(KindCashCategory), compareCategories)
	ds.LoanCategories = newList(ds, KindLoanCategory, newCategoryFactory(KindLoanCategory), compareCategories)
	ds.TransactionCategories = newList(ds, KindTransactionCategory, newCategoryFactory(KindTransactionCategory), compareCategories)
	ds.Tags = newList(ds, KindTag, newTag, compareTags)
	ds.Payees = newList(ds, KindPayee, newPayee, compareAssets[*Payee])
	ds.Deposits = newList(ds, KindDeposit, newDeposit, compareAssets[*Deposit])
	ds.Cash = newList(ds, KindCash, newCash, compareAssets[*Cash])
	ds.Loans = newList(ds, KindLoan, newLoan, compareAssets[*Loan])
	ds.Portfolios = newList(ds, KindPortfolio, newPortfolio, compareAssets[*Portfolio])
	ds.Securities = newList(ds, KindSecurity, newSecurity, compareAssets[*Security])
	ds.Transactions = newList(ds, KindTransaction, newTransaction, compareTransactions)
	ds.Rates = &ExchangeRateTable{ds: ds, list: newList(ds, KindExchangeRate, newExchangeRate, compareRates)}
}

// ID returns the identity of the dataset.
func (ds *DataSet) ID() uuid.UUID { return ds.id }

// Config returns the configuration of the dataset.
func (ds *DataSet) Config() *Config { return ds.cfg }

// Logger returns the logger of the dataset.
func (ds *DataSet) Logger() zerolog.Logger { return ds.log }

// Version returns the current change version.
func (ds *DataSet) Version() int { return ds.version }

// IsEditable reports whether the dataset is an edit session rather than a
// view.
func (ds *DataSet) IsEditable() bool { return ds.editable }

// lists returns every list, referenced kinds first.
func (ds *DataSet) lists() []itemList {
	return []itemList{
		ds.Currencies,
		ds.DepositCategories, ds.CashCategories, ds.LoanCategories, ds.TransactionCategories,
		ds.Tags, ds.Payees,
		ds.Deposits, ds.Cash, ds.Loans, ds.Portfolios, ds.Securities,
		ds.Transactions, ds.Rates.list,
	}
}

func (ds *DataSet) list(kind ItemKind) itemList {
	for _, l := range ds.lists() {
		if l.Kind() == kind {
			return l
		}
	}
	return nil
}

// categories returns the category list of kind.
func (ds *DataSet) categories(kind ItemKind) *List[*Category] {
	switch kind {
	case KindDepositCategory:
		return ds.DepositCategories
	case KindCashCategory:
		return ds.CashCategories
	case KindLoanCategory:
		return ds.LoanCategories
	default:
		return ds.TransactionCategories
	}
}

// Categories returns the category list of kind, the transaction categories
// for any other kind.
func (ds *DataSet) Categories(kind ItemKind) *List[*Category] { return ds.categories(kind) }

// live returns the item of kind with id unless missing or deleted.
func (ds *DataSet) live(kind ItemKind, id int) *Item {
	l := ds.list(kind)
	if l == nil {
		return nil
	}
	it := l.lookup(id)
	if it == nil || it.IsDeleted() {
		return nil
	}
	return it
}

// currency returns the currency with the ISO code or nil.
func (ds *DataSet) currency(code string) *Currency {
	if code == "" {
		return nil
	}
	for c := range ds.Currencies.Live() {
		if c.Code() == code {
			return c
		}
	}
	return nil
}

// Currency returns the currency with the ISO code or nil.
func (ds *DataSet) Currency(code string) *Currency { return ds.currency(code) }

// assetKind returns the item kind of the assets of type t.
func assetKind(t AssetType) ItemKind {
	switch t {
	case AssetPayee:
		return KindPayee
	case AssetDeposit:
		return KindDeposit
	case AssetCash, AssetAutoExpense:
		return KindCash
	case AssetLoan:
		return KindLoan
	case AssetPortfolio:
		return KindPortfolio
	case AssetSecurity:
		return KindSecurity
	default:
		return 0
	}
}

// asset returns the asset of type t with id, deleted included, or nil.
func (ds *DataSet) asset(t AssetType, id int) Asset {
	if ds == nil || id == 0 {
		return nil
	}
	var (
		a  Asset
		ok bool
	)
	switch assetKind(t) {
	case KindPayee:
		a, ok = getAsset(ds.Payees, id)
	case KindDeposit:
		a, ok = getAsset(ds.Deposits, id)
	case KindCash:
		a, ok = getAsset(ds.Cash, id)
	case KindLoan:
		a, ok = getAsset(ds.Loans, id)
	case KindPortfolio:
		a, ok = getAsset(ds.Portfolios, id)
	case KindSecurity:
		a, ok = getAsset(ds.Securities, id)
	}
	if !ok {
		return nil
	}
	return a
}

func getAsset[T Asset](l *List[T], id int) (Asset, bool) {
	t, ok := l.Get(id)
	return t, ok
}

// Assets returns every live asset, payees first.
func (ds *DataSet) Assets() []Asset {
	var assets []Asset
	assets = appendAssets(assets, ds.Payees)
	assets = appendAssets(assets, ds.Deposits)
	assets = appendAssets(assets, ds.Cash)
	assets = appendAssets(assets, ds.Loans)
	assets = appendAssets(assets, ds.Portfolios)
	assets = appendAssets(assets, ds.Securities)
	return assets
}

func appendAssets[T Asset](assets []Asset, l *List[T]) []Asset {
	for t := range l.Live() {
		assets = append(assets, t)
	}
	return assets
}

// FindAsset returns the live asset named name or nil. Asset names are
// unique across kinds.
func (ds *DataSet) FindAsset(name string) Asset {
	for _, a := range ds.Assets() {
		if a.Name() == name {
			return a
		}
	}
	return nil
}

// FindCategory returns the live category of kind named name or nil.
func (ds *DataSet) FindCategory(kind ItemKind, name string) *Category {
	for c := range ds.categories(kind).Live() {
		if c.Name() == name {
			return c
		}
	}
	return nil
}

// FindTag returns the live tag named name or nil.
func (ds *DataSet) FindTag(name string) *Tag {
	for t := range ds.Tags.Live() {
		if t.Name() == name {
			return t
		}
	}
	return nil
}

// LiveCount returns the number of items that are not deleted.
func (ds *DataSet) LiveCount() int {
	n := 0
	for _, l := range ds.lists() {
		for _, e := range l.elements() {
			if !e.item().IsDeleted() {
				n++
			}
		}
	}
	return n
}

// BeginChange starts a new undoable change and returns its version. Every
// history frame pushed until the next BeginChange carries that version.
func (ds *DataSet) BeginChange() int {
	ds.version++
	return ds.version
}

// Undo reverts the current change: items created in it are removed and
// every frame pushed in it is popped. It reports whether anything changed.
func (ds *DataSet) Undo() bool {
	v := ds.version
	if v == 0 {
		return false
	}
	n := 0
	for _, l := range ds.lists() {
		n += l.removeCreated(v)
		for _, e := range l.elements() {
			it := e.item()
			for it.history.topVersion() == v {
				it.PopHistory()
				n++
			}
		}
	}
	ds.version--
	ds.log.Debug().Int("version", v).Int("changes", n).Msg("undo")
	return n > 0
}

// TouchAll recomputes the usage status of every item from the live items
// referencing it.
func (ds *DataSet) TouchAll() {
	for _, l := range ds.lists() {
		for _, e := range l.elements() {
			e.item().resetStatus()
		}
	}
	for _, l := range ds.lists() {
		for _, e := range l.elements() {
			if !e.item().IsDeleted() {
				e.touchUnderlyingItems()
			}
		}
	}
}

// Validate validates every live item and returns the items in error.
func (ds *DataSet) Validate() []*Item {
	ds.TouchAll()
	var bad []*Item
	for _, l := range ds.lists() {
		for _, e := range l.elements() {
			it := e.item()
			if it.IsDeleted() {
				it.clearErrors()
				continue
			}
			e.Validate()
			if it.errs.HasErrors() {
				bad = append(bad, it)
			}
		}
	}
	return bad
}

// Commit validates the dataset, then collapses the history of every item
// into its base and drops deleted items. Nothing is committed when an item
// is in error.
func (ds *DataSet) Commit() error {
	if bad := ds.Validate(); len(bad) > 0 {
		errs := []error{ErrCommitBlocked}
		for _, it := range bad {
			errs = append(errs, fmt.Errorf("%s: %w", it, it.errs.Err()))
		}
		return fmt.Errorf("commit dataset %s: %w", ds.id, errors.Join(errs...))
	}
	purged, committed := 0, 0
	for _, l := range ds.lists() {
		purged += l.purgeDeleted()
		for _, e := range l.elements() {
			if err := e.item().Commit(); err != nil {
				return err
			}
			committed++
		}
	}
	ds.version = 0
	ds.log.Debug().Int("committed", committed).Int("purged", purged).Msg("dataset committed")
	return nil
}

// ResolveDataSetLinks turns the references by name of loaded items into
// item ids. The first reference that cannot be resolved aborts the load.
func (ds *DataSet) ResolveDataSetLinks() error {
	n := 0
	for _, l := range ds.lists() {
		for _, e := range l.elements() {
			it := e.item()
			if len(it.refs) == 0 {
				continue
			}
			if err := ds.resolveItem(it); err != nil {
				return fmt.Errorf("resolve dataset %s links: %w", ds.id, err)
			}
			n += len(it.refs)
			it.refs = nil
		}
	}
	ds.log.Debug().Int("references", n).Msg("resolved dataset links")
	return nil
}

// resolveItem resolves the pending references of it.
func (ds *DataSet) resolveItem(it *Item) error {
	fields := make([]FieldID, 0, len(it.refs))
	for f := range it.refs {
		fields = append(fields, f)
	}
	slices.Sort(fields)

	var debit, credit Asset
	for _, f := range fields {
		refs := it.refs[f]
		switch f {
		case FieldDebit, FieldCredit:
			a := ds.FindAsset(refs[0])
			if a == nil {
				return it.unresolved(f, refs[0])
			}
			it.setRef(f, a.ID())
			if f == FieldDebit {
				debit = a
			} else {
				credit = a
			}
		case FieldPair:
			// checked once both legs are known
		case FieldParent, FieldCategory:
			id, err := ds.findRef(ds.refKind(it.kind, f), refs[0])
			if err != nil {
				return it.unresolved(f, refs[0])
			}
			it.setRef(f, id)
		default:
			class, err := ParseInfoClass(string(f))
			if err != nil || class.DataType() != DataLink {
				return it.unresolved(f, refs[0])
			}
			ids := make([]int, 0, len(refs))
			for _, ref := range refs {
				id, err := ds.findRef(class.meta().link, ref)
				if err != nil {
					return it.unresolved(f, ref)
				}
				ids = append(ids, id)
			}
			if err := ds.setLoadedLinks(it, class, ids); err != nil {
				return err
			}
		}
	}

	if debit != nil || credit != nil {
		if debit == nil || credit == nil {
			return it.unresolved(FieldPair, "")
		}
		code := pairCode(debit.AssetType(), credit.AssetType())
		if names, ok := it.refs[FieldPair]; ok {
			p, err := ds.Pairs.LookUpName(names[0])
			if err != nil {
				return fmt.Errorf("%s: %w", it, err)
			}
			if p.ID() != code {
				return it.unresolved(FieldPair, names[0])
			}
		}
		it.set(FieldPair, code)
	}
	return nil
}

// setLoadedLinks stores resolved link attributes on a loaded item.
func (ds *DataSet) setLoadedLinks(it *Item, class InfoClass, ids []int) error {
	if class.IsLinkSet() {
		return it.info.SetLinks(class, ids)
	}
	return it.info.SetValue(class, ids[0])
}

// refKind returns the kind referenced by field f of items of kind.
func (ds *DataSet) refKind(kind ItemKind, f FieldID) ItemKind {
	switch {
	case f == FieldCategory:
		return categoryKindFor(kind)
	case kind == KindTransaction:
		return KindTransaction
	case kind == KindDepositCategory || kind == KindCashCategory || kind == KindLoanCategory || kind == KindTransactionCategory:
		return kind
	default:
		return KindPayee
	}
}

// findRef returns the id of the live item of kind named ref. Transactions
// have no name and are referenced by id.
func (ds *DataSet) findRef(kind ItemKind, ref string) (int, error) {
	var it *Item
	switch kind {
	case KindTransaction:
		id, err := strconv.Atoi(ref)
		if err != nil {
			return 0, err
		}
		it = ds.live(kind, id)
	case KindDepositCategory, KindCashCategory, KindLoanCategory, KindTransactionCategory:
		if c := ds.FindCategory(kind, ref); c != nil {
			it = c.item()
		}
	case KindTag:
		if t := ds.FindTag(ref); t != nil {
			it = t.item()
		}
	default:
		if a := ds.FindAsset(ref); a != nil && a.Kind() == kind {
			it = a.item()
		}
	}
	if it == nil {
		return 0, ErrUnresolvedReference
	}
	return it.id, nil
}

// DeriveEditSet returns an independent editable copy of the dataset. Every
// item of the copy is Clean.
func (ds *DataSet) DeriveEditSet() *DataSet {
	return ds.derive(true, nil)
}

// ViewSet returns a read-only copy of the dataset holding the transactions
// dated within r. Attribute sets of the copy cannot be modified.
func (ds *DataSet) ViewSet(r date.Range) *DataSet {
	return ds.derive(false, func(t *Transaction) bool { return r.Contains(t.Date()) })
}

// ViewAsset returns a read-only copy of the dataset holding the
// transactions dated within r with a on one leg.
func (ds *DataSet) ViewAsset(a Asset, r date.Range) *DataSet {
	return ds.derive(false, func(t *Transaction) bool {
		if !r.Contains(t.Date()) {
			return false
		}
		d, c := t.Debit(), t.Credit()
		return (d != nil && sameAsset(d, a)) || (c != nil && sameAsset(c, a))
	})
}

func (ds *DataSet) derive(editable bool, keep func(*Transaction) bool) *DataSet {
	d := &DataSet{id: uuid.New(), cfg: ds.cfg, log: ds.log, editable: editable}
	d.Currencies = ds.Currencies.derive(d, editable, nil).(*List[*Currency])
	d.DepositCategories = ds.DepositCategories.derive(d, editable, nil).(*List[*Category])
	d.CashCategories = ds.CashCategories.derive(d, editable, nil).(*List[*Category])
	d.LoanCategories = ds.LoanCategories.derive(d, editable, nil).(*List[*Category])
	d.TransactionCategories = ds.TransactionCategories.derive(d, editable, nil).(*List[*Category])
	d.Tags = ds.Tags.derive(d, editable, nil).(*List[*Tag])
	d.Payees = ds.Payees.derive(d, editable, nil).(*List[*Payee])
	d.Deposits = ds.Deposits.derive(d, editable, nil).(*List[*Deposit])
	d.Cash = ds.Cash.derive(d, editable, nil).(*List[*Cash])
	d.Loans = ds.Loans.derive(d, editable, nil).(*List[*Loan])
	d.Portfolios = ds.Portfolios.derive(d, editable, nil).(*List[*Portfolio])
	d.Securities = ds.Securities.derive(d, editable, nil).(*List[*Security])
	if keep == nil {
		d.Transactions = ds.Transactions.DeriveEditList(d)
	} else {
		d.Transactions = ds.Transactions.ViewList(d, keep)
	}
	d.Rates = &ExchangeRateTable{ds: d, list: ds.Rates.list.derive(d, editable, nil).(*List[*ExchangeRate])}
	d.Pairs = ds.Pairs.clone(d.id)
	ds.log.Debug().Stringer("from", ds.id).Stringer("to", d.id).Bool("editable", editable).Msg("derived dataset")
	return d
}
