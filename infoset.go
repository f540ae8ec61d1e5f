package moneywise

import (
	"fmt"
	"slices"
	"unicode/utf8"

	"github.com/etnz/moneywise/date"
)

// DataType is the type of the value held by an attribute.
type DataType int

const (
	DataString DataType = iota + 1
	DataDate
	DataMoney
	DataUnits
	DataRatio
	DataInteger
	DataLink
)

// InfoClass enumerates the optional attributes an item can carry.
type InfoClass int

const (
	InfoMaturity InfoClass = iota + 1
	InfoSortCode
	InfoAccountNumber
	InfoReference
	InfoWebSite
	InfoNotes
	InfoOpeningBalance
	InfoAutoExpense
	InfoAutoPayee
	InfoSymbol
	InfoComments
	InfoTaxCredit
	InfoWithheld
	InfoDebitUnits
	InfoCreditUnits
	InfoDilution
	InfoQualifyYears
	InfoThirdParty
	InfoCreditDate
	InfoTransactionTag
)

// InfoClasses lists every attribute class in declaration order.
var InfoClasses = []InfoClass{
	InfoMaturity, InfoSortCode, InfoAccountNumber, InfoReference, InfoWebSite,
	InfoNotes, InfoOpeningBalance, InfoAutoExpense, InfoAutoPayee, InfoSymbol,
	InfoComments, InfoTaxCredit, InfoWithheld, InfoDebitUnits, InfoCreditUnits,
	InfoDilution, InfoQualifyYears, InfoThirdParty, InfoCreditDate,
	InfoTransactionTag,
}

var (
	accountKinds     = []ItemKind{KindDeposit, KindCash, KindLoan, KindPortfolio}
	transactionKinds = []ItemKind{KindTransaction}
)

// infoMeta is the static description of an attribute class.
type infoMeta struct {
	name      string
	data      DataType
	owners    []ItemKind
	maxLength int      // string classes
	positive  bool     // money, units, ratio and integer classes
	link      ItemKind // link target for DataLink classes
	multi     bool     // link classes holding a set of targets
}

func (c InfoClass) meta() infoMeta {
	switch c {
	case InfoMaturity:
		return infoMeta{name: "Maturity", data: DataDate, owners: []ItemKind{KindDeposit}}
	case InfoSortCode:
		return infoMeta{name: "SortCode", data: DataString, owners: []ItemKind{KindDeposit}, maxLength: 20}
	case InfoAccountNumber:
		return infoMeta{name: "AccountNumber", data: DataString, owners: []ItemKind{KindDeposit, KindLoan}, maxLength: 20}
	case InfoReference:
		return infoMeta{name: "Reference", data: DataString, owners: []ItemKind{KindDeposit, KindLoan, KindTransaction}, maxLength: 20}
	case InfoWebSite:
		return infoMeta{name: "WebSite", data: DataString, owners: []ItemKind{KindPayee}, maxLength: 50}
	case InfoNotes:
		return infoMeta{name: "Notes", data: DataString, owners: append([]ItemKind{KindPayee, KindSecurity}, accountKinds...), maxLength: 500}
	case InfoOpeningBalance:
		return infoMeta{name: "OpeningBalance", data: DataMoney, owners: []ItemKind{KindDeposit, KindCash, KindLoan}}
	case InfoAutoExpense:
		return infoMeta{name: "AutoExpense", data: DataLink, owners: []ItemKind{KindCash}, link: KindTransactionCategory}
	case InfoAutoPayee:
		return infoMeta{name: "AutoPayee", data: DataLink, owners: []ItemKind{KindCash}, link: KindPayee}
	case InfoSymbol:
		return infoMeta{name: "Symbol", data: DataString, owners: []ItemKind{KindSecurity}, maxLength: 30}
	case InfoComments:
		return infoMeta{name: "Comments", data: DataString, owners: transactionKinds, maxLength: 50}
	case InfoTaxCredit:
		return infoMeta{name: "TaxCredit", data: DataMoney, owners: transactionKinds, positive: true}
	case InfoWithheld:
		return infoMeta{name: "Withheld", data: DataMoney, owners: transactionKinds, positive: true}
	case InfoDebitUnits:
		return infoMeta{name: "DebitUnits", data: DataUnits, owners: transactionKinds, positive: true}
	case InfoCreditUnits:
		return infoMeta{name: "CreditUnits", data: DataUnits, owners: transactionKinds, positive: true}
	case InfoDilution:
		return infoMeta{name: "Dilution", data: DataRatio, owners: transactionKinds, positive: true}
	case InfoQualifyYears:
		return infoMeta{name: "QualifyYears", data: DataInteger, owners: transactionKinds, positive: true}
	case InfoThirdParty:
		return infoMeta{name: "ThirdParty", data: DataLink, owners: transactionKinds, link: KindDeposit}
	case InfoCreditDate:
		return infoMeta{name: "CreditDate", data: DataDate, owners: transactionKinds}
	case InfoTransactionTag:
		return infoMeta{name: "TransactionTag", data: DataLink, owners: transactionKinds, link: KindTag, multi: true}
	default:
		panic(fmt.Sprintf("unknown info class %d", int(c)))
	}
}

func (c InfoClass) String() string { return c.meta().name }

// DataType returns the type of the values of the class.
func (c InfoClass) DataType() DataType { return c.meta().data }

// IsLinkSet reports whether the class holds a set of links.
func (c InfoClass) IsLinkSet() bool { return c.meta().multi }

// Field returns the field id used to report errors on the class.
func (c InfoClass) Field() FieldID { return FieldID(c.meta().name) }

// AllowedOn reports whether items of kind can carry the class.
func (c InfoClass) AllowedOn(kind ItemKind) bool { return slices.Contains(c.meta().owners, kind) }

// ParseInfoClass returns the class named s.
func ParseInfoClass(s string) (InfoClass, error) {
	for _, c := range InfoClasses {
		if c.String() == s {
			return c, nil
		}
	}
	return 0, fmt.Errorf("unknown info class %q", s)
}

// checkType returns an error if value cannot be stored in class.
func (c InfoClass) checkType(value any) error {
	var ok bool
	switch c.DataType() {
	case DataString:
		_, ok = value.(string)
	case DataDate:
		_, ok = value.(date.Date)
	case DataMoney:
		_, ok = value.(Money)
	case DataUnits:
		_, ok = value.(Units)
	case DataRatio:
		_, ok = value.(Ratio)
	case DataInteger, DataLink:
		_, ok = value.(int)
	}
	if !ok {
		return fmt.Errorf("%s: %w: %T", c, ErrWrongInfoType, value)
	}
	return nil
}

// tombstone is the values of an entry that does not exist at some depth.
var tombstone = &Values{deleted: true}

// infoEntry is one versioned attribute value.
type infoEntry struct {
	class   InfoClass
	history history
}

func (e *infoEntry) value() any { return e.history.values.Get(FieldValue) }

func (e *infoEntry) live() bool { return !e.history.values.Deleted() }

// phantom entries were created and deleted within the same edit.
func (e *infoEntry) phantom() bool {
	return e.history.base == nil && e.history.values.Deleted()
}

func (e *infoEntry) changed() bool {
	switch {
	case e.phantom():
		return false
	case e.history.base == nil:
		return true
	default:
		return !e.history.values.Equal(e.history.base)
	}
}

// InfoSet is the side table of optional attributes of an item.
//
// Each entry carries its own history. Entries are pushed and popped together
// with their owner, and an entry created mid-edit is padded with tombstone
// frames so every entry always has the owner's depth.
type InfoSet struct {
	owner    *Item
	entries  []*infoEntry
	readOnly bool
}

// Value returns the live value of class, or nil when unset.
func (s *InfoSet) Value(class InfoClass) any {
	if e := s.entry(class); e != nil {
		return e.value()
	}
	return nil
}

// Date returns the value of a date class, zero when unset.
func (s *InfoSet) Date(class InfoClass) date.Date {
	d, _ := s.Value(class).(date.Date)
	return d
}

// Text returns the value of a string class.
func (s *InfoSet) Text(class InfoClass) string {
	v, _ := s.Value(class).(string)
	return v
}

// Money returns the value of a money class and whether it is set.
func (s *InfoSet) Money(class InfoClass) (Money, bool) {
	m, ok := s.Value(class).(Money)
	return m, ok
}

// Units returns the value of a units class and whether it is set.
func (s *InfoSet) Units(class InfoClass) (Units, bool) {
	u, ok := s.Value(class).(Units)
	return u, ok
}

// Ratio returns the value of a ratio class and whether it is set.
func (s *InfoSet) Ratio(class InfoClass) (Ratio, bool) {
	r, ok := s.Value(class).(Ratio)
	return r, ok
}

// Int returns the value of an integer or single link class, 0 when unset.
func (s *InfoSet) Int(class InfoClass) int {
	n, _ := s.Value(class).(int)
	return n
}

// entry returns the live entry of a single valued class.
func (s *InfoSet) entry(class InfoClass) *infoEntry {
	if s == nil {
		return nil
	}
	for _, e := range s.entries {
		if e.class == class && e.live() {
			return e
		}
	}
	return nil
}

// Links returns the targets of a link set class in creation order.
func (s *InfoSet) Links(class InfoClass) []int {
	if s == nil {
		return nil
	}
	var ids []int
	for _, e := range s.entries {
		if e.class == class && e.live() {
			ids = append(ids, e.value().(int))
		}
	}
	return ids
}

// Classes returns the classes that have a live value.
func (s *InfoSet) Classes() []InfoClass {
	if s == nil {
		return nil
	}
	var classes []InfoClass
	for _, e := range s.entries {
		if e.live() && !slices.Contains(classes, e.class) {
			classes = append(classes, e.class)
		}
	}
	slices.Sort(classes)
	return classes
}

func (s *InfoSet) mutable() error {
	if s == nil || s.readOnly {
		return ErrNoAttributeSet
	}
	return nil
}

// SetValue creates, updates or, for a nil value, deletes the entry of class.
func (s *InfoSet) SetValue(class InfoClass, value any) error {
	if err := s.mutable(); err != nil {
		return fmt.Errorf("set %s: %w", class, err)
	}
	if class.IsLinkSet() {
		return fmt.Errorf("set %s: %w: use SetLinks", class, ErrWrongInfoType)
	}
	if value == nil {
		if e := s.entry(class); e != nil {
			e.history.values = e.history.values.withDeleted(true)
		}
		return nil
	}
	if err := class.checkType(value); err != nil {
		return err
	}
	e := s.entry(class)
	if e == nil {
		e = s.revive(class, nil)
	}
	e.history.set(FieldValue, value)
	return nil
}

// SetLinks replaces the targets of a link set class.
func (s *InfoSet) SetLinks(class InfoClass, ids []int) error {
	if err := s.mutable(); err != nil {
		return fmt.Errorf("set %s: %w", class, err)
	}
	if !class.IsLinkSet() {
		return fmt.Errorf("set %s: %w: not a link set", class, ErrWrongInfoType)
	}
	for _, e := range s.entries {
		if e.class == class && e.live() && !slices.Contains(ids, e.value().(int)) {
			e.history.values = e.history.values.withDeleted(true)
		}
	}
	current := s.Links(class)
	for _, id := range ids {
		if slices.Contains(current, id) {
			continue
		}
		e := s.revive(class, id)
		e.history.set(FieldValue, id)
		current = append(current, id)
	}
	return nil
}

// revive returns a deleted entry of class (holding link for link sets) made
// live again, or a new entry.
func (s *InfoSet) revive(class InfoClass, link any) *infoEntry {
	for _, e := range s.entries {
		if e.class == class && !e.live() && (link == nil || e.value() == link) {
			e.history.values = e.history.values.withDeleted(false)
			return e
		}
	}
	e := &infoEntry{class: class, history: history{values: emptyValues}}
	if s.owner != nil {
		for _, f := range s.owner.history.stack {
			e.history.stack = append(e.history.stack, frame{values: tombstone, version: f.version})
		}
	}
	s.entries = append(s.entries, e)
	return e
}

// State returns Changed if any entry differs from its base, else Clean.
func (s *InfoSet) State() State {
	if s == nil {
		return Clean
	}
	for _, e := range s.entries {
		if e.changed() {
			return Changed
		}
	}
	return Clean
}

// EditState returns Dirty when an entry has history, else Clean. Errors are
// attached to the owner.
func (s *InfoSet) EditState() EditState {
	if s.HasHistory() {
		return EditDirty
	}
	return EditClean
}

// HasHistory reports whether any entry has history.
func (s *InfoSet) HasHistory() bool {
	if s == nil {
		return false
	}
	for _, e := range s.entries {
		if len(e.history.stack) > 0 {
			return true
		}
	}
	return false
}

func (s *InfoSet) pushHistory(version int) {
	if s == nil {
		return
	}
	for _, e := range s.entries {
		e.history.push(version)
	}
}

func (s *InfoSet) popHistory() {
	if s == nil {
		return
	}
	for _, e := range s.entries {
		e.history.pop()
	}
}

func (s *InfoSet) changedSinceTop() bool {
	if s == nil {
		return false
	}
	for _, e := range s.entries {
		if e.history.changedSinceTop() {
			return true
		}
	}
	return false
}

func (s *InfoSet) dropTop() {
	if s == nil {
		return
	}
	for _, e := range s.entries {
		e.history.dropTop()
	}
}

// commit collapses every entry and forgets the deleted ones.
func (s *InfoSet) commit() {
	if s == nil {
		return
	}
	live := s.entries[:0]
	for _, e := range s.entries {
		if e.live() {
			e.history.commit()
			live = append(live, e)
		}
	}
	clear(s.entries[len(live):])
	s.entries = live
}

// clone returns a copy of the live entries, Clean, owned by nobody yet.
func (s *InfoSet) clone(editable bool) *InfoSet {
	c := &InfoSet{readOnly: !editable}
	for _, e := range s.entries {
		if e.live() {
			v := e.history.values
			c.entries = append(c.entries, &infoEntry{class: e.class, history: history{base: v, values: v}})
		}
	}
	return c
}

// Validate checks the attributes against their class constraints and
// attaches errors to the owner.
func (s *InfoSet) Validate() {
	if s == nil || s.owner == nil {
		return
	}
	o := s.owner
	for _, e := range s.entries {
		if !e.live() {
			continue
		}
		m := e.class.meta()
		f := e.class.Field()
		if !e.class.AllowedOn(o.kind) {
			o.addError(f, msgOwnerMismatch)
			continue
		}
		switch v := e.value().(type) {
		case string:
			if utf8.RuneCountInString(v) > m.maxLength {
				o.addError(f, msgTooLong)
			}
		case Money:
			if m.positive && !v.IsPositive() {
				o.addError(f, msgPositive)
			}
		case Units:
			if m.positive && !v.IsPositive() {
				o.addError(f, msgPositive)
			}
		case Ratio:
			if m.positive && !v.IsPositive() {
				o.addError(f, msgPositive)
			}
		case int:
			switch {
			case m.data == DataLink:
				if o.ds != nil && o.ds.live(m.link, v) == nil {
					o.addError(f, msgInvalid)
				}
			case m.positive && v <= 0:
				o.addError(f, msgPositive)
			}
		}
	}
	if s.entry(InfoAutoExpense) != nil && s.entry(InfoOpeningBalance) != nil {
		o.addError(InfoAutoExpense.Field(), msgExclusive)
	}
}

// touch marks every linked item as in use.
func (s *InfoSet) touch(ds *DataSet) {
	if s == nil {
		return
	}
	for _, e := range s.entries {
		if e.live() && e.class.DataType() == DataLink {
			if it := ds.live(e.class.meta().link, e.value().(int)); it != nil {
				it.touch()
			}
		}
	}
}
