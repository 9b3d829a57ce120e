// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package picoscan

import (
	"testing"

	"go4.org/mem"
)

func TestQuote(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"", `""`},
		{" ", `" "`},
		{"a\t\nb", `"a\t\nb"`},
		{"\x00\x01\x02", `"\u0000\u0001\u0002"`},
		{`a "b c\" d"`, `"a \"b c\\\" d\""`},
	}
	for _, test := range tests {
		got := Quote(mem.S(test.input))
		if got != test.want {
			t.Errorf("Quote(%q) = %#q, want %#q", test.input, got, test.want)
		}
	}
}

func TestDescribe(t *testing.T) {
	input := []byte(`{"a":nope}`)
	p, err := NewSliceParser(input, make([]byte, 32))
	if err != nil {
		t.Fatalf("NewSliceParser: %v", err)
	}
	var perr *Error
	for {
		_, err := p.Next()
		if err == nil {
			continue
		}
		e, ok := err.(*Error)
		if !ok {
			t.Fatalf("Next: got error %v (%T), want *Error", err, err)
		}
		perr = e
		break
	}
	if perr == nil {
		t.Fatal("expected a parse error for malformed input")
	}
	got := Describe(perr, input)
	want := Quote(mem.B(input[perr.Offset : perr.Offset+1]))
	if !containsString(got, want) {
		t.Errorf("Describe(%v) = %q, want it to contain %q", perr, got, want)
	}
}

func containsString(haystack, needle string) bool {
	for i := 0; i+len(needle) <= len(haystack); i++ {
		if haystack[i:i+len(needle)] == needle {
			return true
		}
	}
	return false
}
