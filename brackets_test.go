package wikigenre

import (
	"testing"
)

func TestMatchSpan(t *testing.T) {
	tests := []struct {
		text string
		exp  string
		ok   bool
	}{
		{"x {{a|{{b}}}} y", "{{a|{{b}}}}", true},
		{"{{a}}{{b}}", "{{a}}", true},
		{"{{a|{{b}}", "{{a|{{b}}", true},
		{"no templates", "", false},
		{"}} {{a}}", "{{a}}", true},
	}

	for _, test := range tests {
		sp, ok := MatchSpan(test.text, "{{", "}}")
		if ok != test.ok {
			t.Fatalf("MatchSpan(%q) ok = %v, expected %v", test.text, ok, test.ok)
		}
		if !ok {
			continue
		}
		if got := sp.Text(test.text); got != test.exp {
			t.Errorf("MatchSpan(%q) = %q, expected %q", test.text, got, test.exp)
		}
	}
}

func TestMatchBraces(t *testing.T) {
	text := "pre {{Infobox|x={y}}} tail"
	sp := MatchBraces(text, 4)
	if got := sp.Text(text); got != "{{Infobox|x={y}}}" {
		t.Fatalf("Expected the infobox, got %q", got)
	}
	if sp.Len() != 17 {
		t.Fatalf("Expected length 17, got %v", sp.Len())
	}
}

// A matched span of balanced input is itself balanced.
func TestMatchBracesBalanced(t *testing.T) {
	inputs := []string{
		"{{a|{{b|{{c}}}}|d}} rest",
		"{{flatlist|\n* x\n* {{nowrap|y}}\n}}\n| next = 1",
		"{{}}",
		"{ { } }",
	}
	for _, in := range inputs {
		sp := MatchBraces(in, 0)
		if d := braceDelta(sp.Text(in)); d != 0 {
			t.Errorf("Span %q of %q has brace delta %v", sp.Text(in), in, d)
		}
	}
}

func TestMatchSpanFromPastEnd(t *testing.T) {
	sp := MatchSpanFrom("abc", 5, "{", "}")
	if sp.Start != 3 || sp.End != 3 {
		t.Fatalf("Unexpected span %+v", sp)
	}
}
