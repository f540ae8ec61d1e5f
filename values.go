package moneywise

import (
	"maps"
	"slices"

	"github.com/shopspring/decimal"
)

// FieldID names a field of an item.
type FieldID string

// Fields shared by the items of the dataset.
const (
	FieldName        FieldID = "Name"
	FieldDescription FieldID = "Description"
	FieldClass       FieldID = "Class"
	FieldParent      FieldID = "Parent"
	FieldCategory    FieldID = "Category"
	FieldType        FieldID = "Type"
	FieldCurrency    FieldID = "Currency"
	FieldClosed      FieldID = "Closed"
	FieldCode        FieldID = "Code"
	FieldEnabled     FieldID = "Enabled"
	FieldDefault     FieldID = "Default"
	FieldDate        FieldID = "Date"
	FieldPair        FieldID = "Pair"
	FieldDebit       FieldID = "Debit"
	FieldCredit      FieldID = "Credit"
	FieldAmount      FieldID = "Amount"
	FieldReconciled  FieldID = "Reconciled"
	FieldSplit       FieldID = "Split"
	FieldFrom        FieldID = "From"
	FieldTo          FieldID = "To"
	FieldRatio       FieldID = "Ratio"
	FieldValue       FieldID = "Value"
)

// Values is an immutable snapshot of the field values of an item at one point
// in time. Every mutation produces a new Values, so a snapshot pushed on a
// history stack is never aliased by live state.
type Values struct {
	fields  map[FieldID]any
	deleted bool
}

// emptyValues is shared by every fresh item.
var emptyValues = &Values{}

// Get returns the value of the field or nil when unset.
func (v *Values) Get(f FieldID) any { return v.fields[f] }

// Deleted reports whether the snapshot is a tombstone.
func (v *Values) Deleted() bool { return v.deleted }

// With returns a copy of v where f is set to value; a nil value unsets f.
func (v *Values) With(f FieldID, value any) *Values {
	n := &Values{fields: make(map[FieldID]any, len(v.fields)+1), deleted: v.deleted}
	maps.Copy(n.fields, v.fields)
	if value == nil {
		delete(n.fields, f)
	} else {
		n.fields[f] = value
	}
	return n
}

// withDeleted returns a copy of v with the tombstone flag set to deleted.
func (v *Values) withDeleted(deleted bool) *Values {
	if v.deleted == deleted {
		return v
	}
	return &Values{fields: v.fields, deleted: deleted}
}

// Fields returns the set fields in a stable order.
func (v *Values) Fields() []FieldID {
	return slices.Sorted(maps.Keys(v.fields))
}

// Equal reports whether both snapshots hold the same values.
func (v *Values) Equal(o *Values) bool {
	if v == o {
		return true
	}
	if v == nil || o == nil {
		return false
	}
	if v.deleted && o.deleted {
		// tombstones hide whatever they hold
		return true
	}
	if v.deleted != o.deleted || len(v.fields) != len(o.fields) {
		return false
	}
	for f, a := range v.fields {
		b, ok := o.fields[f]
		if !ok || !valueEqual(a, b) {
			return false
		}
	}
	return true
}

// Differs returns the fields whose value differ between v and o.
func (v *Values) Differs(o *Values) []FieldID {
	var diff []FieldID
	for _, f := range v.Fields() {
		if b, ok := o.fields[f]; !ok || !valueEqual(v.fields[f], b) {
			diff = append(diff, f)
		}
	}
	for _, f := range o.Fields() {
		if _, ok := v.fields[f]; !ok {
			diff = append(diff, f)
		}
	}
	return diff
}

func valueEqual(a, b any) bool {
	switch x := a.(type) {
	case decimal.Decimal:
		y, ok := b.(decimal.Decimal)
		return ok && x.Equal(y)
	case Money:
		y, ok := b.(Money)
		return ok && x.Equal(y)
	case Units:
		y, ok := b.(Units)
		return ok && x.Equal(y)
	case Ratio:
		y, ok := b.(Ratio)
		return ok && x.Equal(y)
	default:
		return a == b
	}
}
