package diag_test

import (
	"testing"

	"octls/internal/diag"
	"octls/internal/parser"
	"octls/internal/source"
)

func TestFromTree(t *testing.T) {
	root := parser.Parse("x = 1 1\n[1 2; 3]\n")
	diags := diag.FromTree(root)
	if len(diags) != 2 {
		t.Fatalf("%d diagnostics, want 2", len(diags))
	}
	for i, d := range diags {
		if d.Severity != diag.SevError {
			t.Errorf("diagnostic %d severity = %s", i, d.Severity)
		}
		if d.Source != "Octave" {
			t.Errorf("diagnostic %d source = %q", i, d.Source)
		}
	}
	if !diags[0].Span.Start.Less(diags[1].Span.Start) {
		t.Errorf("diagnostics out of order: %s, %s", diags[0].Span, diags[1].Span)
	}
}

func TestFromTreeClean(t *testing.T) {
	if diags := diag.FromTree(parser.Parse("x = sin([1 2 3])\n")); len(diags) != 0 {
		t.Fatalf("clean input produced %d diagnostics", len(diags))
	}
}

func TestSortStable(t *testing.T) {
	mk := func(line, col uint32, msg string) diag.Diagnostic {
		return diag.Diagnostic{
			Severity: diag.SevError,
			Span: source.Span{
				Start: source.Position{Line: line, Col: col},
				End:   source.Position{Line: line, Col: col + 1},
			},
			Message: msg,
			Source:  diag.Source,
		}
	}
	diags := []diag.Diagnostic{
		mk(3, 1, "third"),
		mk(1, 5, "second"),
		mk(1, 1, "first"),
		mk(1, 1, "first-dup"),
	}
	diag.Sort(diags)

	want := []string{"first", "first-dup", "second", "third"}
	for i, w := range want {
		if diags[i].Message != w {
			t.Fatalf("position %d = %q, want %q", i, diags[i].Message, w)
		}
	}
}

func TestSeverityStrings(t *testing.T) {
	tests := []struct {
		sev  diag.Severity
		want string
	}{
		{diag.SevError, "ERROR"},
		{diag.Severity(99), "UNKNOWN"},
	}
	for _, tt := range tests {
		if got := tt.sev.String(); got != tt.want {
			t.Errorf("Severity(%d).String() = %q, want %q", tt.sev, got, tt.want)
		}
	}
}
