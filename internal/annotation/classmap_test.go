package annotation

import (
	"testing"
)

func TestDefaultClassMap(t *testing.T) {
	classes := DefaultClassMap()

	tests := []struct {
		symbol string
		want   int
		ok     bool
	}{
		{"0", ClassDigit, true},
		{"5", ClassDigit, true},
		{"9", ClassDigit, true},
		{"+", ClassPlus, true},
		{"=", ClassEquals, true},
		{"-", ClassMinus, true},
		{"#", 0, false},
		{"x", 0, false},
		{"10", 0, false},
		{"", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.symbol, func(t *testing.T) {
			got, ok := classes.Lookup(tt.symbol)
			if ok != tt.ok || got != tt.want {
				t.Errorf("Lookup(%q) = (%d, %v), want (%d, %v)", tt.symbol, got, ok, tt.want, tt.ok)
			}
		})
	}

	if classes.Len() != 13 {
		t.Errorf("got %d symbols, want 13", classes.Len())
	}
}

func TestNewClassMap_Copies(t *testing.T) {
	ids := map[string]int{"x": 4}
	classes := NewClassMap(ids)
	ids["x"] = 9
	ids["y"] = 5

	if got, _ := classes.Lookup("x"); got != 4 {
		t.Errorf("class map changed with its source: got %d, want 4", got)
	}
	if _, ok := classes.Lookup("y"); ok {
		t.Error("class map picked up a later addition")
	}
}

func TestClassMap_Symbols(t *testing.T) {
	symbols := DefaultClassMap().Symbols()
	for i := 1; i < len(symbols); i++ {
		if symbols[i-1] > symbols[i] {
			t.Fatalf("symbols not sorted: %v", symbols)
		}
	}
}

func TestClassMap_ZeroValue(t *testing.T) {
	var classes ClassMap
	if _, ok := classes.Lookup("1"); ok {
		t.Error("zero ClassMap should map nothing")
	}
}
