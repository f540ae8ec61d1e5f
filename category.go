package moneywise

import (
	"cmp"
	"strings"
	"unicode/utf8"
)

// SubCategorySeparator separates the parent name from the sub-category label
// in a category name.
const SubCategorySeparator = ":"

// Category is a deposit, cash, loan or transaction category. Categories form
// two level trees: a category of a non top level class has a parent of the
// class given by the class table.
type Category struct{ Item }

func newCategoryFactory(kind ItemKind) func() *Category {
	return func() *Category { return &Category{Item: newItem(kind, false)} }
}

// Name returns the full name of the category.
func (c *Category) Name() string { return c.getString(FieldName) }

// SetName sets the full name. The sub-category label follows.
func (c *Category) SetName(name string) { c.set(FieldName, name) }

// SubCategory returns the label after the last separator of the name, or the
// whole name.
func (c *Category) SubCategory() string {
	name := c.Name()
	if i := strings.LastIndex(name, SubCategorySeparator); i >= 0 {
		return name[i+len(SubCategorySeparator):]
	}
	return name
}

func (c *Category) Description() string          { return c.getString(FieldDescription) }
func (c *Category) SetDescription(desc string)   { c.set(FieldDescription, desc) }
func (c *Category) Class() CategoryClass         { return CategoryClass(c.getInt(FieldClass)) }
func (c *Category) SetClass(class CategoryClass) { c.set(FieldClass, int(class)) }

// ParentID returns the id of the parent category, 0 when none.
func (c *Category) ParentID() int { return c.getInt(FieldParent) }

// Parent returns the parent category or nil.
func (c *Category) Parent() *Category {
	if c.ds == nil || c.ParentID() == 0 {
		return nil
	}
	p, _ := c.list().Get(c.ParentID())
	return p
}

// SetParent sets the parent category, nil to clear it.
func (c *Category) SetParent(p *Category) {
	if p == nil {
		c.setRef(FieldParent, 0)
		return
	}
	c.setRef(FieldParent, p.id)
}

func (c *Category) list() *List[*Category] { return c.ds.categories(c.kind) }

// Children returns the live direct children in list order.
func (c *Category) Children() []*Category {
	var children []*Category
	for o := range c.list().Live() {
		if o.ParentID() == c.id {
			children = append(children, o)
		}
	}
	return children
}

// prefixed reports whether the name of c starts with its parent name.
func (c *Category) prefixed() bool {
	p := c.Parent()
	return p != nil && !p.Class().IsTotals()
}

// SetSubCategoryName rebuilds the full name from the parent name and label.
// When the name changes, every direct child is renamed to follow it; each
// child rename is pushed on the child's history at the current dataset
// version so the cascade is undone with the change.
func (c *Category) SetSubCategoryName(label string) {
	name := label
	if c.prefixed() {
		name = c.Parent().Name() + SubCategorySeparator + label
	}
	if name == c.Name() {
		return
	}
	c.SetName(name)
	if c.Class().IsTotals() {
		return
	}
	n := 0
	for _, child := range c.Children() {
		child.PushHistory()
		child.SetName(name + SubCategorySeparator + child.SubCategory())
		if child.CheckForHistory() {
			n++
		}
	}
	if c.ds != nil {
		c.ds.log.Debug().Str("category", name).Int("children", n).Msg("cascaded category rename")
	}
}

// Validate checks the category against its class and its list.
func (c *Category) Validate() {
	c.clearErrors()
	cfg := c.ds.cfg

	name := c.Name()
	switch {
	case name == "":
		c.addError(FieldName, msgMissing)
	case utf8.RuneCountInString(name) > cfg.NameLength:
		c.addError(FieldName, msgTooLong)
	}
	for o := range c.list().Live() {
		if o.id != c.id && o.Name() == name {
			c.addError(FieldName, msgDuplicate)
			break
		}
	}
	if utf8.RuneCountInString(c.Description()) > cfg.DescriptionLength {
		c.addError(FieldDescription, msgTooLong)
	}

	class := c.Class()
	switch {
	case class == 0:
		c.addError(FieldClass, msgMissing)
		return
	case class.Kind() != c.kind:
		c.addError(FieldClass, msgInvalid)
		return
	case !cfg.ClassEnabled(class):
		c.addError(FieldClass, msgDisabled)
	}
	if class.IsSingular() {
		for o := range c.list().Live() {
			if o.id != c.id && o.Class() == class {
				c.addError(FieldClass, msgSingular)
				break
			}
		}
	}

	p := c.Parent()
	switch {
	case class.IsTopLevel():
		if c.ParentID() != 0 {
			c.addError(FieldParent, msgNotAllowed)
		}
	case p == nil:
		c.addError(FieldParent, msgMissing)
	case p.IsDeleted():
		c.addError(FieldParent, msgDeleted)
	case p.Class() != class.Parent():
		c.addError(FieldParent, msgBadParent)
	}

	if name == "" || (p != nil && p.Class() != class.Parent()) {
		return
	}
	if c.prefixed() {
		if name != p.Name()+SubCategorySeparator+c.SubCategory() || c.SubCategory() == "" {
			c.addError(FieldName, msgParentName)
		}
	} else if strings.Contains(name, SubCategorySeparator) {
		c.addError(FieldName, msgBadSeparator)
	}
}

func (c *Category) touchUnderlyingItems() {
	if p := c.Parent(); p != nil {
		p.touch()
	}
}

// compareCategories orders categories by class, name then id.
func compareCategories(a, b *Category) int {
	return cmp.Or(
		cmp.Compare(a.Class(), b.Class()),
		cmp.Compare(a.Name(), b.Name()),
		cmp.Compare(a.id, b.id),
	)
}
