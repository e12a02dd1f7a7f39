package value

import "testing"

func TestNumeric(t *testing.T) {
	tests := []struct {
		input string
		want  float64
		ok    bool
	}{
		{"500", 500, true},
		{"-3.5", -3.5, true},
		{"0", 0, true},
		{"1e3", 1000, true},
		{"Alice", 0, false},
		{"", 0, false},
		{"12abc", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := Value(tt.input).Numeric()
			if ok != tt.ok {
				t.Fatalf("Numeric(%q) ok = %v, want %v", tt.input, ok, tt.ok)
			}
			if ok && got != tt.want {
				t.Errorf("Numeric(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestCompare_NumericWhenBothParse(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want int
	}{
		{"numeric less", "9", "10", -1},
		{"numeric greater", "700", "600", 1},
		{"numeric equal", "5.0", "5", 0},
		{"negative numbers", "-2", "1", -1},
		{"lexical when left is text", "Alice", "Bob", -1},
		{"lexical when right is text", "10", "9a", -1},
		{"lexical equal", "Cara", "Cara", 0},
		{"mixed falls back to lexical", "10", "apple", -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Compare(Value(tt.a), Value(tt.b))
			if got != tt.want {
				t.Errorf("Compare(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestMatches(t *testing.T) {
	tests := []struct {
		name  string
		v     string
		op    Predicate
		other string
		want  bool
	}{
		{"equals numeric", "5.0", Equals, "5", true},
		{"equals text", "Bob", Equals, "Bob", true},
		{"not equals", "Bob", Equals, "Alice", false},
		{"less than numeric", "9", LessThan, "10", true},
		{"numeric beats lexical", "10", LessThan, "9", false},
		{"greater than", "700", GreaterThan, "550", true},
		{"greater than false", "500", GreaterThan, "550", false},
		{"lexical less than", "Alice", LessThan, "Bob", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Value(tt.v).Matches(tt.op, Value(tt.other))
			if err != nil {
				t.Fatalf("Matches returned error: %v", err)
			}
			if got != tt.want {
				t.Errorf("%q %v %q = %v, want %v", tt.v, tt.op, tt.other, got, tt.want)
			}
		})
	}
}

func TestMatches_UnsupportedPredicate(t *testing.T) {
	_, err := Value("1").Matches(Predicate(99), Value("2"))
	if err == nil {
		t.Error("Expected error for unknown predicate")
	}
}

func TestPredicateString(t *testing.T) {
	tests := []struct {
		op   Predicate
		want string
	}{
		{Equals, "="},
		{LessThan, "<"},
		{GreaterThan, ">"},
		{Predicate(42), "UNKNOWN"},
	}

	for _, tt := range tests {
		if got := tt.op.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}
