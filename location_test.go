package picoscan

import "testing"

func TestSpanLocate(t *testing.T) {
	tests := []struct {
		data string
		span Span
		want Location
	}{
		{
			data: `{"a":1}`,
			span: Span{Pos: 1, End: 4},
			want: Location{
				Span:  Span{Pos: 1, End: 4},
				First: LineCol{Line: 1, Column: 1},
				Last:  LineCol{Line: 1, Column: 4},
			},
		},
		{
			data: "[1,\n2,\n3]",
			span: Span{Pos: 4, End: 5},
			want: Location{
				Span:  Span{Pos: 4, End: 5},
				First: LineCol{Line: 2, Column: 0},
				Last:  LineCol{Line: 2, Column: 1},
			},
		},
		{
			data: "[1,\n2,\n3]",
			span: Span{Pos: 7, End: 8},
			want: Location{
				Span:  Span{Pos: 7, End: 8},
				First: LineCol{Line: 3, Column: 0},
				Last:  LineCol{Line: 3, Column: 1},
			},
		},
		{
			data: "ab",
			span: Span{Pos: 0, End: 99}, // End past len(data) clamps
			want: Location{
				Span:  Span{Pos: 0, End: 99},
				First: LineCol{Line: 1, Column: 0},
				Last:  LineCol{Line: 1, Column: 2},
			},
		},
	}
	for _, test := range tests {
		got := test.span.Locate([]byte(test.data))
		if got != test.want {
			t.Errorf("Locate(%q, %+v) = %+v, want %+v", test.data, test.span, got, test.want)
		}
	}
}
