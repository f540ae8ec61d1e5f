package moneywise

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/shopspring/decimal"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// EncodeDataSet writes the live items of ds in the open representation read
// by DecodeDataSet, referenced kinds first.
func EncodeDataSet(w io.Writer, ds *DataSet) error {
	for _, l := range ds.lists() {
		for _, e := range l.elements() {
			if e.item().IsDeleted() {
				continue
			}
			v, err := ds.encodeItem(e)
			if err != nil {
				return err
			}
			data, err := json.Marshal(v)
			if err != nil {
				return fmt.Errorf("failed to marshal %s: %w", e.item(), err)
			}
			if _, err := w.Write(append(data, '\n')); err != nil {
				return fmt.Errorf("failed to write %s: %w", e.item(), err)
			}
		}
	}
	return nil
}

func (ds *DataSet) encodeItem(e element) (any, error) {
	it := e.item()
	token := kindTokens[it.kind]
	switch x := e.(type) {
	case *Currency:
		return jsonCurrency{Kind: token, Code: x.Code(), Enabled: x.Enabled(), Default: x.IsDefault()}, nil
	case *Category:
		j := jsonCategory{Kind: token, Name: x.Name(), Description: x.Description(), Class: x.Class().String()}
		if p := x.Parent(); p != nil {
			j.Parent = p.Name()
		}
		return j, nil
	case *Tag:
		return jsonTag{Kind: token, Name: x.Name(), Description: x.Description()}, nil
	case *Transaction:
		j := jsonTransaction{
			Kind:       token,
			ID:         x.id,
			Date:       x.Date(),
			Reconciled: x.IsReconciled(),
			Split:      x.IsSplit(),
			Parent:     x.ParentID(),
		}
		if c := x.Category(); c != nil {
			j.Category = c.Name()
		}
		if p := x.Pair(); p != nil {
			j.Pair = p.Name()
		}
		if a := x.Debit(); a != nil {
			j.Debit = a.Name()
		}
		if a := x.Credit(); a != nil {
			j.Credit = a.Name()
		}
		if x.HasAmount() {
			m := x.Amount()
			j.Amount = &m
		}
		info, err := ds.encodeInfo(it)
		j.Info = info
		return j, err
	case *ExchangeRate:
		return jsonRate{Kind: token, Date: x.Date(), From: x.From(), To: x.To(), Ratio: x.Ratio()}, nil
	case Asset:
		return ds.encodeAsset(x)
	default:
		return nil, fmt.Errorf("cannot encode %s", it)
	}
}

func (ds *DataSet) encodeAsset(a Asset) (any, error) {
	it := a.item()
	j := jsonAsset{
		Kind:     kindTokens[it.kind],
		Name:     a.Name(),
		Currency: a.Currency(),
		Closed:   a.IsClosed(),
	}
	j.Description = it.getString(FieldDescription)
	switch x := a.(type) {
	case *Payee:
		if x.Type() != 0 {
			j.Type = x.Type().String()
		}
	case *Portfolio:
		if x.Type() != 0 {
			j.Type = x.Type().String()
		}
	case *Security:
		if x.Type() != 0 {
			j.Type = x.Type().String()
		}
	}
	if id := it.getInt(FieldCategory); id != 0 {
		if c, ok := ds.categories(categoryKindFor(it.kind)).Get(id); ok {
			j.Category = c.Name()
		}
	}
	if id := it.getInt(FieldParent); id != 0 {
		if p, ok := ds.Payees.Get(id); ok {
			j.Parent = p.Name()
		}
	}
	info, err := ds.encodeInfo(it)
	j.Info = info
	return j, err
}

// encodeInfo returns the live attributes of it, links by name.
func (ds *DataSet) encodeInfo(it *Item) (map[string]json.RawMessage, error) {
	classes := it.info.Classes()
	if len(classes) == 0 {
		return nil, nil
	}
	info := make(map[string]json.RawMessage, len(classes))
	for _, class := range classes {
		var v any
		switch {
		case class.IsLinkSet():
			var names []string
			for _, id := range it.info.Links(class) {
				names = append(names, ds.refName(class.meta().link, id))
			}
			v = names
		case class.DataType() == DataLink:
			v = ds.refName(class.meta().link, it.info.Int(class))
		default:
			v = it.info.Value(class)
		}
		raw, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal %s of %s: %w", class, it, err)
		}
		info[class.String()] = raw
	}
	return info, nil
}

// refName returns the name an item is referenced by in the open
// representation.
func (ds *DataSet) refName(kind ItemKind, id int) string {
	switch kind {
	case KindDepositCategory, KindCashCategory, KindLoanCategory, KindTransactionCategory:
		if c, ok := ds.categories(kind).Get(id); ok {
			return c.Name()
		}
	case KindTag:
		if t, ok := ds.Tags.Get(id); ok {
			return t.Name()
		}
	case KindTransaction:
		return strconv.Itoa(id)
	default:
		for _, t := range AssetTypes {
			if assetKind(t) == kind {
				if a := ds.asset(t, id); a != nil {
					return a.Name()
				}
			}
		}
	}
	return ""
}
