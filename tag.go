package moneywise

import (
	"cmp"
	"unicode/utf8"
)

// Tag is a free label transactions can be linked to.
type Tag struct{ Item }

func newTag() *Tag { return &Tag{Item: newItem(KindTag, false)} }

func (t *Tag) Name() string               { return t.getString(FieldName) }
func (t *Tag) SetName(name string)        { t.set(FieldName, name) }
func (t *Tag) Description() string        { return t.getString(FieldDescription) }
func (t *Tag) SetDescription(desc string) { t.set(FieldDescription, desc) }

func (t *Tag) Validate() {
	t.clearErrors()
	cfg := t.ds.cfg
	name := t.Name()
	switch {
	case name == "":
		t.addError(FieldName, msgMissing)
	case utf8.RuneCountInString(name) > cfg.NameLength:
		t.addError(FieldName, msgTooLong)
	}
	for o := range t.ds.Tags.Live() {
		if o.id != t.id && o.Name() == name {
			t.addError(FieldName, msgDuplicate)
			break
		}
	}
	if utf8.RuneCountInString(t.Description()) > cfg.DescriptionLength {
		t.addError(FieldDescription, msgTooLong)
	}
}

func (t *Tag) touchUnderlyingItems() {}

func compareTags(a, b *Tag) int { return cmp.Or(cmp.Compare(a.Name(), b.Name()), cmp.Compare(a.id, b.id)) }
