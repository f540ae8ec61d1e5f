package moneywise

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"os"
	"slices"
	"strconv"

	"github.com/etnz/moneywise/date"
)

// A dataset open representation is a JSONL stream: one item per line, each
// line an object with a "kind" member. References between items are stored
// by name (by id for transaction parents) and resolved once every line has
// been read.
//
//	{"kind":"payee","name":"ACME","type":"Employer"}
//	{"kind":"deposit","name":"Current","category":"Current account","currency":"GBP","parent":"Bank"}
//	{"kind":"transaction","id":1,"date":"2024-01-31","category":"Salary","debit":"ACME","credit":"Current","amount":{"amount":2000,"currency":"GBP"}}

// kindTokens are the "kind" members of the open representation.
var kindTokens = map[ItemKind]string{
	KindCurrency:            "currency",
	KindDepositCategory:     "deposit-category",
	KindCashCategory:        "cash-category",
	KindLoanCategory:        "loan-category",
	KindTransactionCategory: "transaction-category",
	KindTag:                 "tag",
	KindPayee:               "payee",
	KindDeposit:             "deposit",
	KindCash:                "cash",
	KindLoan:                "loan",
	KindPortfolio:           "portfolio",
	KindSecurity:            "security",
	KindTransaction:         "transaction",
	KindExchangeRate:        "rate",
}

// parseKind returns the item kind of a "kind" member.
func parseKind(token string) (ItemKind, error) {
	for k, t := range kindTokens {
		if t == token {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown item kind %q", token)
}

type jsonCurrency struct {
	Kind    string `json:"kind"`
	Code    string `json:"code"`
	Enabled bool   `json:"enabled"`
	Default bool   `json:"default,omitempty"`
}

type jsonCategory struct {
	Kind        string `json:"kind"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Class       string `json:"class"`
	Parent      string `json:"parent,omitempty"`
}

type jsonTag struct {
	Kind        string `json:"kind"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

type jsonAsset struct {
	Kind        string                     `json:"kind"`
	Name        string                     `json:"name"`
	Description string                     `json:"description,omitempty"`
	Type        string                     `json:"type,omitempty"`
	Category    string                     `json:"category,omitempty"`
	Currency    string                     `json:"currency,omitempty"`
	Parent      string                     `json:"parent,omitempty"`
	Closed      bool                       `json:"closed,omitempty"`
	Info        map[string]json.RawMessage `json:"info,omitempty"`
}

type jsonTransaction struct {
	Kind       string                     `json:"kind"`
	ID         int                        `json:"id,omitempty"`
	Date       date.Date                  `json:"date"`
	Category   string                     `json:"category"`
	Pair       string                     `json:"pair,omitempty"`
	Debit      string                     `json:"debit"`
	Credit     string                     `json:"credit"`
	Amount     *Money                     `json:"amount,omitempty"`
	Reconciled bool                       `json:"reconciled,omitempty"`
	Split      bool                       `json:"split,omitempty"`
	Parent     int                        `json:"parent,omitempty"`
	Info       map[string]json.RawMessage `json:"info,omitempty"`
}

type jsonRate struct {
	Kind  string    `json:"kind"`
	Date  date.Date `json:"date"`
	From  string    `json:"from"`
	To    string    `json:"to"`
	Ratio Ratio     `json:"ratio"`
}

// LoadDataSet reads the dataset stored in the JSONL file name.
func LoadDataSet(name string, cfg *Config, opts ...Option) (*DataSet, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, fmt.Errorf("cannot open dataset %q: %w", name, err)
	}
	defer f.Close()
	ds, err := DecodeDataSet(f, cfg, opts...)
	if err != nil {
		return nil, fmt.Errorf("cannot load dataset %q: %w", name, err)
	}
	return ds, nil
}

// DecodeDataSet builds a dataset from its open representation. References are
// resolved with ResolveDataSetLinks and every loaded item is Clean: its base
// is its current values. Items are not validated.
func DecodeDataSet(r io.Reader, cfg *Config, opts ...Option) (*DataSet, error) {
	ds := NewDataSet(cfg, opts...)
	scanner := bufio.NewScanner(r)
	n := 0
	for scanner.Scan() {
		n++
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		if err := ds.decodeLine(line); err != nil {
			return nil, fmt.Errorf("line %d: %w", n, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading from input: %w", err)
	}
	if err := ds.ResolveDataSetLinks(); err != nil {
		return nil, err
	}
	ds.settle()
	for _, l := range ds.lists() {
		ds.log.Debug().Stringer("kind", l.Kind()).Int("items", len(l.elements())).Msg("loaded")
	}
	return ds, nil
}

// settle makes every item Clean without validating it.
func (ds *DataSet) settle() {
	for _, l := range ds.lists() {
		for _, e := range l.elements() {
			it := e.item()
			it.history.commit()
			it.info.commit()
			it.created = 0
		}
	}
	ds.version = 0
}

func (ds *DataSet) decodeLine(line []byte) error {
	var identifier struct {
		Kind string `json:"kind"`
	}
	if err := json.Unmarshal(line, &identifier); err != nil {
		return fmt.Errorf("could not identify item in %q: %w", string(line), err)
	}
	kind, err := parseKind(identifier.Kind)
	if err != nil {
		return err
	}

	switch kind {
	case KindCurrency:
		var j jsonCurrency
		if err := json.Unmarshal(line, &j); err != nil {
			return err
		}
		c := ds.currency(j.Code)
		if c == nil {
			c = ds.Currencies.New()
			c.SetCode(j.Code)
		}
		c.SetEnabled(j.Enabled)
		// only a "default" line moves the pivot away from the configured one
		if j.Default {
			for o := range ds.Currencies.Live() {
				o.SetDefault(o == c)
			}
		}
	case KindDepositCategory, KindCashCategory, KindLoanCategory, KindTransactionCategory:
		var j jsonCategory
		if err := json.Unmarshal(line, &j); err != nil {
			return err
		}
		class, err := ParseCategoryClass(j.Class)
		if err != nil {
			return err
		}
		c := ds.categories(kind).New()
		c.SetName(j.Name)
		c.SetDescription(j.Description)
		c.SetClass(class)
		c.pendingRef(FieldParent, j.Parent)
	case KindTag:
		var j jsonTag
		if err := json.Unmarshal(line, &j); err != nil {
			return err
		}
		t := ds.Tags.New()
		t.SetName(j.Name)
		t.SetDescription(j.Description)
	case KindTransaction:
		return ds.decodeTransaction(line)
	case KindExchangeRate:
		var j jsonRate
		if err := json.Unmarshal(line, &j); err != nil {
			return err
		}
		r := ds.Rates.list.New()
		r.SetDate(j.Date)
		r.SetFrom(j.From)
		r.SetTo(j.To)
		r.SetRatio(j.Ratio)
	default:
		return ds.decodeAsset(kind, line)
	}
	return nil
}

func (ds *DataSet) decodeAsset(kind ItemKind, line []byte) error {
	var j jsonAsset
	if err := json.Unmarshal(line, &j); err != nil {
		return err
	}
	var a interface {
		Asset
		SetName(string)
		SetDescription(string)
		SetClosed(bool)
		SetCurrency(string)
	}
	switch kind {
	case KindPayee:
		p := ds.Payees.New()
		if j.Type != "" {
			t, err := ParsePayeeType(j.Type)
			if err != nil {
				return err
			}
			p.SetType(t)
		}
		a = p
	case KindDeposit:
		a = ds.Deposits.New()
	case KindCash:
		a = ds.Cash.New()
	case KindLoan:
		a = ds.Loans.New()
	case KindPortfolio:
		p := ds.Portfolios.New()
		if j.Type != "" {
			t, err := ParsePortfolioType(j.Type)
			if err != nil {
				return err
			}
			p.SetType(t)
		}
		a = p
	case KindSecurity:
		s := ds.Securities.New()
		if j.Type != "" {
			t, err := ParseSecurityType(j.Type)
			if err != nil {
				return err
			}
			s.SetType(t)
		}
		a = s
	default:
		return fmt.Errorf("%s is not an asset", kind)
	}
	a.SetName(j.Name)
	a.SetDescription(j.Description)
	a.SetClosed(j.Closed)
	a.SetCurrency(j.Currency)
	it := a.item()
	it.pendingRef(FieldCategory, j.Category)
	it.pendingRef(FieldParent, j.Parent)
	return decodeInfo(it, j.Info)
}

func (ds *DataSet) decodeTransaction(line []byte) error {
	var j jsonTransaction
	if err := json.Unmarshal(line, &j); err != nil {
		return err
	}
	if j.ID != 0 {
		if _, ok := ds.Transactions.Get(j.ID); ok {
			return fmt.Errorf("duplicate transaction id %d", j.ID)
		}
	}
	t := newTransaction()
	t.id = j.ID
	ds.Transactions.add(t)
	t.SetDate(j.Date)
	t.SetReconciled(j.Reconciled)
	t.SetSplit(j.Split)
	if j.Amount != nil {
		t.SetAmount(*j.Amount)
	}
	t.pendingRef(FieldCategory, j.Category)
	t.pendingRef(FieldDebit, j.Debit)
	t.pendingRef(FieldCredit, j.Credit)
	t.pendingRef(FieldPair, j.Pair)
	if j.Parent != 0 {
		t.pendingRef(FieldParent, strconv.Itoa(j.Parent))
	}
	return decodeInfo(&t.Item, j.Info)
}

// decodeInfo sets the attributes of it. Link attributes are stored by name
// and left pending.
func decodeInfo(it *Item, info map[string]json.RawMessage) error {
	for _, name := range slices.Sorted(maps.Keys(info)) {
		class, err := ParseInfoClass(name)
		if err != nil {
			return err
		}
		raw := info[name]
		var value any
		switch class.DataType() {
		case DataString:
			value, err = decodeAs[string](raw)
		case DataDate:
			value, err = decodeAs[date.Date](raw)
		case DataMoney:
			value, err = decodeAs[Money](raw)
		case DataUnits:
			value, err = decodeAs[Units](raw)
		case DataRatio:
			value, err = decodeAs[Ratio](raw)
		case DataInteger:
			value, err = decodeAs[int](raw)
		case DataLink:
			var refs []string
			if class.IsLinkSet() {
				refs, err = decodeAs[[]string](raw)
			} else {
				var ref string
				ref, err = decodeAs[string](raw)
				refs = []string{ref}
			}
			if err != nil {
				return fmt.Errorf("%s: %w", class, err)
			}
			it.pendingRef(class.Field(), refs...)
			continue
		}
		if err != nil {
			return fmt.Errorf("%s: %w", class, err)
		}
		if err := it.info.SetValue(class, value); err != nil {
			return fmt.Errorf("%s: %w", it, err)
		}
	}
	return nil
}

func decodeAs[T any](raw json.RawMessage) (T, error) {
	var v T
	err := json.Unmarshal(raw, &v)
	return v, err
}
