package moneywise

import (
	"iter"
	"slices"
)

// element is implemented by every entity stored in a List.
type element interface {
	item() *Item
	Validate()
	touchUnderlyingItems()
}

// itemList is the kind independent view of a List used by the DataSet.
type itemList interface {
	Kind() ItemKind
	lookup(id int) *Item
	elements() []element
	removeCreated(version int) int
	purgeDeleted() int
	derive(ds *DataSet, editable bool, keep func(*Item) bool) itemList
}

// List is the collection of the items of one kind owned by a DataSet.
type List[T element] struct {
	kind    ItemKind
	ds      *DataSet
	items   []T
	nextID  int
	factory func() T
	compare func(a, b T) int
}

func newList[T element](ds *DataSet, kind ItemKind, factory func() T, compare func(a, b T) int) *List[T] {
	return &List[T]{kind: kind, ds: ds, nextID: 1, factory: factory, compare: compare}
}

// Kind returns the kind of the items of the list.
func (l *List[T]) Kind() ItemKind { return l.kind }

// New creates an item in the list. The item is New until committed.
func (l *List[T]) New() T {
	t := l.factory()
	it := t.item()
	it.id = l.nextID
	it.ds = l.ds
	it.created = l.ds.version
	if !l.ds.editable && it.info != nil {
		it.info.readOnly = true
	}
	it.bind()
	l.nextID++
	l.items = append(l.items, t)
	return t
}

// add inserts an item built elsewhere (a loaded item) keeping its id.
func (l *List[T]) add(t T) {
	it := t.item()
	if it.id == 0 {
		it.id = l.nextID
	}
	it.ds = l.ds
	it.bind()
	l.nextID = max(l.nextID, it.id+1)
	l.items = append(l.items, t)
}

// Get returns the item with id, deleted items included.
func (l *List[T]) Get(id int) (T, bool) {
	for _, t := range l.items {
		if t.item().id == id {
			return t, true
		}
	}
	var zero T
	return zero, false
}

// Len returns the number of items, deleted items included.
func (l *List[T]) Len() int { return len(l.items) }

// All returns every item, deleted items included.
func (l *List[T]) All() []T { return slices.Clone(l.items) }

// Live iterates over the items that are not deleted.
func (l *List[T]) Live() iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, t := range l.items {
			if t.item().IsDeleted() {
				continue
			}
			if !yield(t) {
				return
			}
		}
	}
}

// Sort orders the items with the list natural order.
func (l *List[T]) Sort() {
	if l.compare != nil {
		slices.SortStableFunc(l.items, l.compare)
	}
}

func (l *List[T]) lookup(id int) *Item {
	if t, ok := l.Get(id); ok {
		return t.item()
	}
	return nil
}

func (l *List[T]) elements() []element {
	es := make([]element, len(l.items))
	for i, t := range l.items {
		es[i] = t
	}
	return es
}

// removeCreated drops the items created at version and returns their count.
func (l *List[T]) removeCreated(version int) int {
	n := len(l.items)
	l.items = slices.DeleteFunc(l.items, func(t T) bool { return t.item().created == version })
	return n - len(l.items)
}

// purgeDeleted drops committed tombstones and returns their count.
func (l *List[T]) purgeDeleted() int {
	n := len(l.items)
	l.items = slices.DeleteFunc(l.items, func(t T) bool { return t.item().IsDeleted() })
	return n - len(l.items)
}

// DeriveEditList returns an independent editable copy of the list in ds.
func (l *List[T]) DeriveEditList(ds *DataSet) *List[T] {
	return l.derive(ds, true, nil).(*List[T])
}

// ViewList returns a read-only copy of the live items accepted by keep.
func (l *List[T]) ViewList(ds *DataSet, keep func(T) bool) *List[T] {
	var k func(*Item) bool
	if keep != nil {
		byItem := make(map[*Item]T, len(l.items))
		for _, t := range l.items {
			byItem[t.item()] = t
		}
		k = func(it *Item) bool { return keep(byItem[it]) }
	}
	return l.derive(ds, false, k).(*List[T])
}

func (l *List[T]) derive(ds *DataSet, editable bool, keep func(*Item) bool) itemList {
	c := newList(ds, l.kind, l.factory, l.compare)
	c.nextID = l.nextID
	for _, t := range l.items {
		src := t.item()
		if src.IsDeleted() || (keep != nil && !keep(src)) {
			continue
		}
		n := l.factory()
		*n.item() = src.clone(ds, editable)
		n.item().bind()
		c.items = append(c.items, n)
	}
	return c
}
