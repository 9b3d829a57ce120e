package escape

import (
	"bytes"
	"testing"

	"go4.org/mem"
)

func TestSimple(t *testing.T) {
	tests := []struct {
		b    byte
		want byte
		ok   bool
	}{
		{'"', '"', true},
		{'\\', '\\', true},
		{'/', '/', true},
		{'b', '\b', true},
		{'f', '\f', true},
		{'n', '\n', true},
		{'r', '\r', true},
		{'t', '\t', true},
		{'z', 0, false},
	}
	for _, test := range tests {
		got, ok := Simple(test.b)
		if got != test.want || ok != test.ok {
			t.Errorf("Simple(%q) = (%q, %v), want (%q, %v)", test.b, got, ok, test.want, test.ok)
		}
	}
}

func TestHexDigit(t *testing.T) {
	tests := []struct {
		b    byte
		want int
		ok   bool
	}{
		{'0', 0, true},
		{'9', 9, true},
		{'a', 10, true},
		{'f', 15, true},
		{'A', 10, true},
		{'F', 15, true},
		{'g', 0, false},
		{'G', 0, false},
	}
	for _, test := range tests {
		got, ok := HexDigit(test.b)
		if got != test.want || ok != test.ok {
			t.Errorf("HexDigit(%q) = (%d, %v), want (%d, %v)", test.b, got, ok, test.want, test.ok)
		}
	}
}

func TestSurrogatePair(t *testing.T) {
	var d Decoder
	out, err := d.Unit(0xD83D)
	if err != nil {
		t.Fatalf("Unit(high): %v", err)
	}
	if len(out) != 0 {
		t.Fatalf("Unit(high) = %v, want empty", out)
	}
	if !d.Pending() {
		t.Fatal("expected Pending() after high surrogate")
	}
	out, err = d.Unit(0xDE00)
	if err != nil {
		t.Fatalf("Unit(low): %v", err)
	}
	want := []byte{0xF0, 0x9F, 0x98, 0x80} // U+1F600
	if !bytes.Equal(out, want) {
		t.Errorf("Unit(low) = %x, want %x", out, want)
	}
	if d.Pending() {
		t.Error("Pending() should be false after the pair completes")
	}
}

func TestLoneHighSurrogateAtTokenEnd(t *testing.T) {
	var d Decoder
	if _, err := d.Unit(0xD83D); err != nil {
		t.Fatal(err)
	}
	if err := d.AtTokenEnd(); err == nil {
		t.Fatal("expected error for unpaired high surrogate at token end")
	}
}

func TestLoneLowSurrogate(t *testing.T) {
	var d Decoder
	if _, err := d.Unit(0xDE00); err == nil {
		t.Fatal("expected error for lone low surrogate")
	}
}

func TestHighFollowedByNonLowFails(t *testing.T) {
	var d Decoder
	if _, err := d.Unit(0xD83D); err != nil {
		t.Fatal(err)
	}
	if _, err := d.Unit('A'); err == nil {
		t.Fatal("expected error when high surrogate is followed by a non-surrogate")
	}
}

func TestNonSurrogateScalar(t *testing.T) {
	var d Decoder
	out, err := d.Unit(0x0041) // 'A'
	if err != nil {
		t.Fatal(err)
	}
	if string(out) != "A" {
		t.Errorf("Unit(0x41) = %q, want %q", out, "A")
	}
}

func TestQuote(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"", ""},
		{"abc", "abc"},
		{"a\tb\nc", `a\tb\nc`},
		{`"quoted" \ backslash`, `\"quoted\" \\ backslash`},
		{"\x00\x01\x1f", `\u0000\u0001\u001f`},
		{"\u2028 \u2029 \ufffd", `\u2028 \u2029 \ufffd`},
		{"\U0001F600", "\U0001F600"}, // non-escaped scalar above RuneSelf
	}
	for _, test := range tests {
		got := string(Quote(mem.S(test.input)))
		if got != test.want {
			t.Errorf("Quote(%q) = %q, want %q", test.input, got, test.want)
		}
	}
}

func TestNonUnicodeEscapeWhilePending(t *testing.T) {
	var d Decoder
	if _, err := d.Unit(0xD83D); err != nil {
		t.Fatal(err)
	}
	if err := d.NonUnicodeEscapeWhilePending(); err == nil {
		t.Fatal("expected error")
	}
	if d.Pending() {
		t.Error("Pending() should be cleared after reporting the error")
	}
}
