package moneywise

import (
	"fmt"

	"github.com/etnz/moneywise/date"
	"github.com/shopspring/decimal"
)

// State is the change state of an item relative to its base.
type State int

const (
	Clean State = iota
	New
	Changed
	Deleted
)

func (s State) String() string {
	switch s {
	case Clean:
		return "clean"
	case New:
		return "new"
	case Changed:
		return "changed"
	case Deleted:
		return "deleted"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// EditState is the state of an item within an edit session.
type EditState int

const (
	EditClean EditState = iota
	EditDirty
	EditError
)

func (s EditState) String() string {
	switch s {
	case EditClean:
		return "clean"
	case EditDirty:
		return "dirty"
	case EditError:
		return "error"
	default:
		return fmt.Sprintf("EditState(%d)", int(s))
	}
}

// ItemKind identifies the concrete type of an item.
type ItemKind int

const (
	KindCurrency ItemKind = iota + 1
	KindDepositCategory
	KindCashCategory
	KindLoanCategory
	KindTransactionCategory
	KindTag
	KindPayee
	KindDeposit
	KindCash
	KindLoan
	KindPortfolio
	KindSecurity
	KindTransaction
	KindExchangeRate
)

func (k ItemKind) String() string {
	switch k {
	case KindCurrency:
		return "currency"
	case KindDepositCategory:
		return "deposit category"
	case KindCashCategory:
		return "cash category"
	case KindLoanCategory:
		return "loan category"
	case KindTransactionCategory:
		return "transaction category"
	case KindTag:
		return "tag"
	case KindPayee:
		return "payee"
	case KindDeposit:
		return "deposit"
	case KindCash:
		return "cash"
	case KindLoan:
		return "loan"
	case KindPortfolio:
		return "portfolio"
	case KindSecurity:
		return "security"
	case KindTransaction:
		return "transaction"
	case KindExchangeRate:
		return "exchange rate"
	default:
		return fmt.Sprintf("ItemKind(%d)", int(k))
	}
}

// frame is one entry of a history stack: the values before a change and the
// dataset version that pushed it.
type frame struct {
	values  *Values
	version int
}

// history holds the versioned values of a record: the base (pre-edit)
// snapshot, the current snapshot and the LIFO stack of pushed snapshots.
type history struct {
	base   *Values
	values *Values
	stack  []frame
}

func (h *history) push(version int) {
	h.stack = append(h.stack, frame{values: h.values, version: version})
}

func (h *history) pop() bool {
	n := len(h.stack)
	if n == 0 {
		return false
	}
	h.values = h.stack[n-1].values
	h.stack = h.stack[:n-1]
	return true
}

// topVersion returns the version of the top frame, or -1 for an empty stack.
func (h *history) topVersion() int {
	if len(h.stack) == 0 {
		return -1
	}
	return h.stack[len(h.stack)-1].version
}

func (h *history) changedSinceTop() bool {
	n := len(h.stack)
	return n > 0 && !h.values.Equal(h.stack[n-1].values)
}

func (h *history) dropTop() {
	if n := len(h.stack); n > 0 {
		h.stack = h.stack[:n-1]
	}
}

func (h *history) commit() {
	h.base = h.values
	h.stack = nil
}

func (h *history) set(f FieldID, value any) { h.values = h.values.With(f, value) }

// state derives the State of the record from its own values only.
func (h *history) state() State {
	switch {
	case h.base == nil:
		return New
	case h.values.Deleted():
		return Deleted
	case !h.values.Equal(h.base):
		return Changed
	default:
		return Clean
	}
}

// touchStatus is the derived usage status computed by the touch pass.
type touchStatus struct {
	touches   int       // number of live items referencing this one
	busy      bool      // un-reconciled activity or open children
	lastEvent date.Date // latest transaction date seen
}

// Item is the versioned, validated record every entity of the dataset embeds.
//
// Field values live in an immutable Values snapshot. Mutations go through
// set, which replaces the snapshot; PushHistory saves the current snapshot so
// PopHistory can restore it.
type Item struct {
	kind    ItemKind
	id      int
	history history
	errs    ErrorList
	info    *InfoSet
	ds      *DataSet
	created int // dataset version that created the item, 0 when loaded
	status  touchStatus
	refs    map[FieldID][]string // references by name from an open representation
}

func newItem(kind ItemKind, withInfo bool) Item {
	it := Item{kind: kind, history: history{values: emptyValues}}
	if withInfo {
		it.info = &InfoSet{}
	}
	return it
}

// bind attaches the item (and its attribute set) to its owner address.
func (i *Item) bind() {
	if i.info != nil {
		i.info.owner = i
	}
}

func (i *Item) item() *Item { return i }

// ID returns the identity of the item within its list, 0 when not persisted.
func (i *Item) ID() int { return i.id }

// Kind returns the kind of the item.
func (i *Item) Kind() ItemKind { return i.kind }

// DataSet returns the dataset owning the item, or nil.
func (i *Item) DataSet() *DataSet { return i.ds }

// Info returns the attribute set of the item, nil for items built without one.
func (i *Item) Info() *InfoSet { return i.info }

func (i *Item) String() string { return fmt.Sprintf("%s %d", i.kind, i.id) }

func (i *Item) version() int {
	if i.ds == nil {
		return 0
	}
	return i.ds.version
}

// State returns New, Deleted, Changed or Clean. The attribute set is only
// consulted when the item's own fields are Clean.
func (i *Item) State() State {
	s := i.history.state()
	if s == Clean && i.info != nil {
		return i.info.State()
	}
	return s
}

// EditState returns Error when validation errors are attached, Dirty when
// there is pending history, else Clean.
func (i *Item) EditState() EditState {
	switch {
	case i.errs.HasErrors():
		return EditError
	case len(i.history.stack) > 0:
		return EditDirty
	case i.info != nil:
		return i.info.EditState()
	default:
		return EditClean
	}
}

// HasHistory reports whether there are pushed snapshots to pop.
func (i *Item) HasHistory() bool {
	if len(i.history.stack) > 0 {
		return true
	}
	return i.info != nil && i.info.HasHistory()
}

// Depth returns the number of pushed snapshots.
func (i *Item) Depth() int { return len(i.history.stack) }

// PushHistory saves the current values so the next changes can be undone.
func (i *Item) PushHistory() {
	v := i.version()
	i.history.push(v)
	i.info.pushHistory(v)
}

// PopHistory restores the values saved by the last PushHistory. It is a no-op
// when there is no history.
func (i *Item) PopHistory() {
	i.history.pop()
	i.info.popHistory()
}

// CheckForHistory drops the top snapshot when nothing changed since it was
// pushed, and reports whether a change remains.
func (i *Item) CheckForHistory() bool {
	if !i.HasHistory() {
		return false
	}
	if i.history.changedSinceTop() || i.info.changedSinceTop() {
		return true
	}
	i.history.dropTop()
	i.info.dropTop()
	return false
}

// Rewind pops every snapshot, restoring the values the edit started from.
func (i *Item) Rewind() {
	for i.HasHistory() {
		i.PopHistory()
	}
}

// Commit collapses the history into the base. Items in error cannot be
// committed.
func (i *Item) Commit() error {
	if i.errs.HasErrors() {
		return fmt.Errorf("commit %s: %w: %s", i, ErrCommitBlocked, i.errs)
	}
	i.history.commit()
	i.info.commit()
	i.created = 0
	return nil
}

// Delete tombstones the item. Like any other change it is undone by
// PopHistory.
func (i *Item) Delete() { i.history.values = i.history.values.withDeleted(true) }

// Undelete clears the tombstone.
func (i *Item) Undelete() { i.history.values = i.history.values.withDeleted(false) }

// IsDeleted reports whether the item is tombstoned.
func (i *Item) IsDeleted() bool { return i.history.values.Deleted() }

// Errors returns the validation errors attached by the last validation.
func (i *Item) Errors() ErrorList { return i.errs }

func (i *Item) clearErrors() { i.errs = nil }

func (i *Item) addError(f FieldID, msg string) { i.errs.Add(f, msg) }

// Base returns the pre-edit values, nil for new items.
func (i *Item) Base() *Values { return i.history.base }

// Values returns the current values.
func (i *Item) Values() *Values { return i.history.values }

// ChangedFields returns the fields that differ from the base.
func (i *Item) ChangedFields() []FieldID {
	if i.history.base == nil {
		return i.history.values.Fields()
	}
	return i.history.values.Differs(i.history.base)
}

// IsTouched reports whether a live item references this one.
func (i *Item) IsTouched() bool { return i.status.touches > 0 }

// IsDeletable reports whether the item can be deleted without leaving
// dangling references.
func (i *Item) IsDeletable() bool { return i.status.touches == 0 }

func (i *Item) touch() { i.status.touches++ }

func (i *Item) resetStatus() { i.status = touchStatus{} }

// clone copies the item for a derived dataset. The current values become the
// base of the copy so the copy starts Clean.
func (i *Item) clone(ds *DataSet, editable bool) Item {
	c := Item{
		kind:    i.kind,
		id:      i.id,
		history: history{base: i.history.values, values: i.history.values},
		ds:      ds,
	}
	if i.info != nil {
		c.info = i.info.clone(editable)
	}
	return c
}

// field accessors

func (i *Item) set(f FieldID, value any) { i.history.set(f, value) }

func (i *Item) get(f FieldID) any { return i.history.values.Get(f) }

func (i *Item) getString(f FieldID) string {
	s, _ := i.get(f).(string)
	return s
}

func (i *Item) getInt(f FieldID) int {
	n, _ := i.get(f).(int)
	return n
}

func (i *Item) getBool(f FieldID) bool {
	b, _ := i.get(f).(bool)
	return b
}

func (i *Item) getDate(f FieldID) date.Date {
	d, _ := i.get(f).(date.Date)
	return d
}

func (i *Item) getDecimal(f FieldID) decimal.Decimal {
	d, _ := i.get(f).(decimal.Decimal)
	return d
}

// setRef stores the id of a referenced item, 0 unsets it.
func (i *Item) setRef(f FieldID, id int) {
	if id == 0 {
		i.set(f, nil)
		return
	}
	i.set(f, id)
}

// pendingRef records references by name to resolve once the dataset is
// loaded.
func (i *Item) pendingRef(f FieldID, refs ...string) {
	if len(refs) == 0 || (len(refs) == 1 && refs[0] == "") {
		return
	}
	if i.refs == nil {
		i.refs = make(map[FieldID][]string)
	}
	i.refs[f] = refs
}

func (i *Item) unresolved(f FieldID, ref string) error {
	return &UnresolvedReferenceError{Kind: i.kind, ID: i.id, Field: f, Ref: ref}
}
