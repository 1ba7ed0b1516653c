package linearray

import (
	"reflect"
	"testing"

	"loci/internal/domain"
)

func TestBuild(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  domain.LineArray
	}{
		{
			name:  "explicit label then increments",
			input: "hello world 5\nfoo bar\n\nbaz",
			want: domain.LineArray{
				{N: "5", Text: "hello world 5"},
				{N: "6", Text: "foo bar"},
				{N: "7", Text: "baz"},
			},
		},
		{
			name:  "label wider than an int keeps counting",
			input: "a 99999999999999999999\nb\nc",
			want: domain.LineArray{
				{N: "99999999999999999999", Text: "a 99999999999999999999"},
				{N: "100000000000000000000", Text: "b"},
				{N: "100000000000000000001", Text: "c"},
			},
		},
		{
			name:  "unlabelled first line increments from start",
			input: "arma virumque cano\nTroiae qui primus",
			want: domain.LineArray{
				{N: "2", Text: "arma virumque cano"},
				{N: "3", Text: "Troiae qui primus"},
			},
		},
		{
			name:  "later label resets counter",
			input: "a 10\nb\nc 20\nd",
			want: domain.LineArray{
				{N: "10", Text: "a 10"},
				{N: "11", Text: "b"},
				{N: "20", Text: "c 20"},
				{N: "21", Text: "d"},
			},
		},
		{
			name:  "label needs leading whitespace",
			input: "v45\n  x 12  ",
			want: domain.LineArray{
				{N: "2", Text: "v45"},
				{N: "12", Text: "x 12"},
			},
		},
		{
			name:  "leading zeros kept then normalised",
			input: "a 007\nb",
			want: domain.LineArray{
				{N: "007", Text: "a 007"},
				{N: "8", Text: "b"},
			},
		},
		{
			name:  "crlf line endings",
			input: "a 3\r\nb\r\n",
			want: domain.LineArray{
				{N: "3", Text: "a 3"},
				{N: "4", Text: "b"},
			},
		},
		{
			name:  "whitespace only",
			input: "   \n\t\n",
			want:  nil,
		},
		{
			name:  "empty",
			input: "",
			want:  nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Build(tt.input)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Build(%q) = %+v, want %+v", tt.input, got, tt.want)
			}
		})
	}
}

func TestNewBuilderStart(t *testing.T) {
	got := NewBuilder("99").Build("a\nb")
	if len(got) != 2 || got[0].N != "100" || got[1].N != "101" {
		t.Errorf("unexpected numbering: %+v", got)
	}

	got = NewBuilder("bogus").Build("a")
	if len(got) != 1 || got[0].N != "2" {
		t.Errorf("invalid start should fall back to 1: %+v", got)
	}
}

func TestBuilderSatisfiesLineBuilder(t *testing.T) {
	var _ domain.LineBuilder = NewBuilder("1")
}

func TestBuildNoEmptyRecords(t *testing.T) {
	for _, l := range Build("x 1\n\n\n  \ny\n") {
		if l.Text == "" {
			t.Fatalf("empty record emitted: %+v", l)
		}
	}
}
