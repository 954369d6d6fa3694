package lsp

import (
	"math"

	"fortio.org/safecast"

	"octls/internal/diag"
	"octls/internal/source"
	"octls/internal/text"
)

// The protocol is 0-based in both line and column; the analysis model is
// 1-based. The conversion is exact in both directions, including for
// end-of-range positions.

func toInternalPosition(pos position) source.Position {
	return source.Position{
		Line: saturatingInc(clampUint32(pos.Line)),
		Col:  saturatingInc(clampUint32(pos.Character)),
	}
}

func fromInternalPosition(pos source.Position) position {
	line := 0
	if pos.Line > 0 {
		line = int(pos.Line) - 1
	}
	char := 0
	if pos.Col > 0 {
		char = int(pos.Col) - 1
	}
	return position{Line: line, Character: char}
}

func fromInternalSpan(span source.Span) lspRange {
	return lspRange{
		Start: fromInternalPosition(span.Start),
		End:   fromInternalPosition(span.End),
	}
}

func toTextPosition(pos position) text.Position {
	return text.Position{
		Line:      clampUint32(pos.Line),
		Character: clampUint32(pos.Character),
	}
}

func toTextRange(r lspRange) text.Range {
	return text.Range{
		Start: toTextPosition(r.Start),
		End:   toTextPosition(r.End),
	}
}

func toContentChanges(events []textDocumentContentChangeEvent) []text.ContentChange {
	changes := make([]text.ContentChange, 0, len(events))
	for _, ev := range events {
		change := text.ContentChange{Text: ev.Text}
		if ev.Range != nil {
			r := toTextRange(*ev.Range)
			change.Range = &r
		}
		changes = append(changes, change)
	}
	return changes
}

// diagnosticSeverityError is the LSP DiagnosticSeverity.Error constant.
const diagnosticSeverityError = 1

func toLSPDiagnostics(diags []diag.Diagnostic, limit int) []lspDiagnostic {
	if limit > 0 && len(diags) > limit {
		diags = diags[:limit]
	}
	out := make([]lspDiagnostic, 0, len(diags))
	for _, d := range diags {
		out = append(out, lspDiagnostic{
			Range:    fromInternalSpan(d.Span),
			Severity: diagnosticSeverityError,
			Source:   d.Source,
			Message:  d.Message,
		})
	}
	return out
}

// clampUint32 saturates a wire integer into uint32 range. Clients are not
// trusted: an absurd position must degrade to a clamped lookup, never take
// the server down.
func clampUint32(n int) uint32 {
	if n < 0 {
		return 0
	}
	v, err := safecast.Conv[uint32](n)
	if err != nil {
		return math.MaxUint32
	}
	return v
}

func saturatingInc(v uint32) uint32 {
	if v == math.MaxUint32 {
		return v
	}
	return v + 1
}
