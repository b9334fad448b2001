package lr

import (
	"bytes"
	"fmt"

	"github.com/cnf/structhash"
	"github.com/emirpasic/gods/sets/treeset"
	"github.com/emirpasic/gods/utils"
	"github.com/npillmayer/lrzero"
)

// === Items =================================================================

// Item is an LR(0) item, i.e. a rule together with a position within its
// right hand side ("dot"). Two items are equal if they refer to the same
// rule and have the same dot position.
type Item struct {
	rule *Rule
	dot  int
}

// StartItem returns the item for rule r with the dot in front of the RHS.
func StartItem(r *Rule) Item {
	return Item{rule: r, dot: 0}
}

// Rule returns the grammar rule of this item.
func (i Item) Rule() *Rule {
	return i.rule
}

// Dot returns the position of the dot.
func (i Item) Dot() int {
	return i.dot
}

// PeekSymbol returns the symbol after the dot, or "" if the dot is at the end.
func (i Item) PeekSymbol() string {
	if i.dot >= len(i.rule.rhs) {
		return ""
	}
	return i.rule.rhs[i.dot]
}

// Advance returns a new item with the dot moved one symbol to the right.
func (i Item) Advance() Item {
	if i.dot >= len(i.rule.rhs) {
		return i
	}
	return Item{rule: i.rule, dot: i.dot + 1}
}

// AtEnd is true if the dot has passed all symbols of the RHS.
func (i Item) AtEnd() bool {
	return i.dot == len(i.rule.rhs)
}

// IsComplete is true if the item calls for a reduce (or accept), i.e. the dot
// is at the end or the rule is an epsilon rule.
func (i Item) IsComplete() bool {
	return i.AtEnd() || (i.rule.IsEpsilon() && i.dot == 0)
}

// Prefix returns the RHS symbols in front of the dot.
func (i Item) Prefix() []string {
	return i.rule.rhs[:i.dot]
}

func (i Item) String() string {
	rhs := make([]string, 0, len(i.rule.rhs)+1)
	rhs = append(rhs, i.rule.rhs[:i.dot]...)
	rhs = append(rhs, lrzero.Dot)
	rhs = append(rhs, i.rule.rhs[i.dot:]...)
	return fmt.Sprintf("%s → %s", i.rule.LHS, lrzero.JoinSymbols(rhs))
}

// We need this for item sets. It sorts items by rule serial, then by dot.
func itemComparator(i1, i2 interface{}) int {
	a, b := i1.(Item), i2.(Item)
	if c := utils.IntComparator(a.rule.Serial, b.rule.Serial); c != 0 {
		return c
	}
	return utils.IntComparator(a.dot, b.dot)
}

// === Item Sets =============================================================

// ItemSet is a set of LR(0) items. It remembers the order in which items have
// been added, but compares as a set.
type ItemSet struct {
	items []Item       // in order of insertion
	index *treeset.Set // canonical order
}

func newItemSet() *ItemSet {
	return &ItemSet{index: treeset.NewWith(itemComparator)}
}

// Add adds an item if not already present. Returns true if the item is new.
func (S *ItemSet) Add(i Item) bool {
	if S.index.Contains(i) {
		return false
	}
	S.index.Add(i)
	S.items = append(S.items, i)
	return true
}

// Contains checks for membership of an item.
func (S *ItemSet) Contains(i Item) bool {
	return S.index.Contains(i)
}

// Size returns the number of items in S.
func (S *ItemSet) Size() int {
	return len(S.items)
}

// Empty is true for an item set without items.
func (S *ItemSet) Empty() bool {
	return len(S.items) == 0
}

// Items returns the items of S in order of insertion.
func (S *ItemSet) Items() []Item {
	return S.items
}

// Copy creates a shallow copy of S.
func (S *ItemSet) Copy() *ItemSet {
	C := newItemSet()
	for _, i := range S.items {
		C.Add(i)
	}
	return C
}

// Equals compares two item sets as sets, i.e. independent of insertion order.
func (S *ItemSet) Equals(other *ItemSet) bool {
	if S.Size() != other.Size() {
		return false
	}
	it1, it2 := S.index.Iterator(), other.index.Iterator()
	for it1.Next() && it2.Next() {
		if itemComparator(it1.Value(), it2.Value()) != 0 {
			return false
		}
	}
	return true
}

// nextSymbols returns the symbols immediately after the dot of the items in
// S, sorted. The empty marker never drives a transition and is excluded.
func (S *ItemSet) nextSymbols() []string {
	syms := treeset.NewWithStringComparator()
	for _, i := range S.items {
		if A := i.PeekSymbol(); A != "" && A != lrzero.EmptyMarker {
			syms.Add(A)
		}
	}
	return stringValues(syms)
}

type itemKey struct {
	Rule int
	Dot  int
}

type itemSetKey struct {
	Items []itemKey
}

// signature is a hash over the canonical form of S. Equal sets have equal
// signatures; the reverse has to be checked with Equals.
func (S *ItemSet) signature() string {
	key := itemSetKey{Items: make([]itemKey, 0, S.Size())}
	for _, x := range S.index.Values() {
		i := x.(Item)
		key.Items = append(key.Items, itemKey{Rule: i.rule.Serial, Dot: i.dot})
	}
	h, err := structhash.Hash(key, 1)
	if err != nil {
		tracer().Errorf("cannot hash item set: %v", err)
		return fmt.Sprintf("%v", key.Items)
	}
	return h
}

func (S *ItemSet) String() string {
	var b bytes.Buffer
	b.WriteString("{")
	for n, i := range S.items {
		if n == 0 {
			b.WriteString(" ")
		} else {
			b.WriteString(", ")
		}
		b.WriteString(i.String())
	}
	b.WriteString(" }")
	return b.String()
}

// Dump is a debugging helper
func (S *ItemSet) Dump() {
	for n, i := range S.items {
		tracer().Debugf("[%2d] %s", n+1, i)
	}
}
