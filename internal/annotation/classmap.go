package annotation

import (
	"sort"
)

// Class IDs of the default class map.
const (
	ClassDigit  = 0
	ClassPlus   = 1
	ClassEquals = 2
	ClassMinus  = 3
)

// ClassMap maps recognized symbols to class IDs. The zero value maps nothing.
// A ClassMap is never modified after construction.
type ClassMap struct {
	ids map[string]int
}

// DefaultClassMap maps the digits 0-9 to ClassDigit and the operators +, =
// and - to ClassPlus, ClassEquals and ClassMinus.
func DefaultClassMap() ClassMap {
	ids := map[string]int{
		"+": ClassPlus,
		"=": ClassEquals,
		"-": ClassMinus,
	}
	for d := '0'; d <= '9'; d++ {
		ids[string(d)] = ClassDigit
	}
	return ClassMap{ids: ids}
}

// NewClassMap builds a ClassMap from a copy of ids.
func NewClassMap(ids map[string]int) ClassMap {
	copied := make(map[string]int, len(ids))
	for k, v := range ids {
		copied[k] = v
	}
	return ClassMap{ids: copied}
}

// Lookup returns the class ID of symbol. Matching is exact.
func (c ClassMap) Lookup(symbol string) (int, bool) {
	id, ok := c.ids[symbol]
	return id, ok
}

// Symbols returns the mapped symbols in sorted order.
func (c ClassMap) Symbols() []string {
	symbols := make([]string, 0, len(c.ids))
	for s := range c.ids {
		symbols = append(symbols, s)
	}
	sort.Strings(symbols)
	return symbols
}

// Len returns the number of mapped symbols.
func (c ClassMap) Len() int { return len(c.ids) }
