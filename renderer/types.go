package renderer

import (
	"strings"

	"github.com/etnz/moneywise"
)

// Diagnostics is the validation report of a dataset.
type Diagnostics struct {
	DataSet string
	Checked int // number of live items validated
	Items   []ItemDiagnostic
}

// ItemDiagnostic holds the errors of one item.
type ItemDiagnostic struct {
	Kind   string
	ID     int
	Name   string
	State  string
	Errors []moneywise.ValidationError
}

// NewDiagnostics validates ds and collects the items in error.
func NewDiagnostics(ds *moneywise.DataSet) *Diagnostics {
	bad := ds.Validate()
	d := &Diagnostics{DataSet: ds.ID().String(), Checked: ds.LiveCount()}
	for _, it := range bad {
		name, _ := it.Values().Get(moneywise.FieldName).(string)
		if name == "" {
			name = it.String()
		}
		d.Items = append(d.Items, ItemDiagnostic{
			Kind:   it.Kind().String(),
			ID:     it.ID(),
			Name:   escapeCell(name),
			State:  it.State().String(),
			Errors: it.Errors(),
		})
	}
	return d
}

// CategoryTree is one category list in tree order.
type CategoryTree struct {
	Title string
	Rows  []CategoryRow
}

// CategoryRow is a category with its depth rendered as an indent.
type CategoryRow struct {
	Indent      string
	Label       string
	Class       string
	Description string
}

// NewCategoryTree walks the live categories of kind from the roots down.
func NewCategoryTree(ds *moneywise.DataSet, kind moneywise.ItemKind) *CategoryTree {
	t := &CategoryTree{Title: capitalize(kind.String()) + " tree"}
	l := ds.Categories(kind)
	l.Sort()
	var walk func(c *moneywise.Category, depth int)
	walk = func(c *moneywise.Category, depth int) {
		t.Rows = append(t.Rows, CategoryRow{
			Indent:      strings.Repeat("› ", depth),
			Label:       escapeCell(c.SubCategory()),
			Class:       c.Class().String(),
			Description: escapeCell(c.Description()),
		})
		for _, child := range c.Children() {
			walk(child, depth+1)
		}
	}
	for c := range l.Live() {
		if c.ParentID() == 0 {
			walk(c, 0)
		}
	}
	return t
}

// PairTable lists the interned asset pairs.
type PairTable struct {
	Rows []PairRow
}

type PairRow struct {
	Code   int
	Name   string
	Debit  string
	Credit string
}

// NewPairTable lists the pairs of m.
func NewPairTable(m *moneywise.AssetPairManager) *PairTable {
	t := &PairTable{}
	for _, p := range m.Pairs() {
		t.Rows = append(t.Rows, PairRow{Code: p.ID(), Name: p.Name(), Debit: p.Debit().String(), Credit: p.Credit().String()})
	}
	return t
}

// LegalityTable tells which transaction categories can move value between
// two assets.
type LegalityTable struct {
	Debit  string
	Credit string
	Rows   []LegalityRow
}

type LegalityRow struct {
	Name  string
	Class string
	Legal bool
}

// NewLegalityTable checks every live leaf transaction category of ds against
// the debit and credit assets.
func NewLegalityTable(ds *moneywise.DataSet, debit, credit moneywise.Asset) *LegalityTable {
	t := &LegalityTable{Debit: escapeCell(debit.Name()), Credit: escapeCell(credit.Name())}
	l := ds.TransactionCategories
	l.Sort()
	for c := range l.Live() {
		if c.Class() == 0 || c.Class().IsParent() {
			continue
		}
		t.Rows = append(t.Rows, LegalityRow{
			Name:  escapeCell(c.Name()),
			Class: c.Class().String(),
			Legal: moneywise.IsValidEvent(c, debit, credit),
		})
	}
	return t
}

// escapeCell keeps user text from breaking a markdown table.
func escapeCell(s string) string { return strings.ReplaceAll(s, "|", `\|`) }

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
