// Package diag defines the diagnostic model published after every parse.
// Syntactic errors are the sole diagnostic source: the parser embeds them as
// error nodes in the tree and FromTree flattens them back out. There is no
// separate semantic-check pass; the type system never fails.
package diag

import (
	"sort"

	"octls/internal/ast"
	"octls/internal/source"
)

// Source is the tag attached to every published diagnostic.
const Source = "Octave"

// Diagnostic is one finding with its source span.
type Diagnostic struct {
	Severity Severity
	Span     source.Span
	Message  string
	Source   string
}

// FromTree walks the statement tree collecting every error node's span and
// message, in stable span order.
func FromTree(root source.Node[ast.Statement]) []Diagnostic {
	nodes := ast.Errors(ast.StmtTree(root))
	diags := make([]Diagnostic, 0, len(nodes))
	for _, n := range nodes {
		diags = append(diags, Diagnostic{
			Severity: SevError,
			Span:     n.Span,
			Message:  n.Data,
			Source:   Source,
		})
	}
	Sort(diags)
	return diags
}

// Sort orders diagnostics by start position, then end, for deterministic
// output.
func Sort(diags []Diagnostic) {
	sort.SliceStable(diags, func(i, j int) bool {
		if diags[i].Span.Start != diags[j].Span.Start {
			return diags[i].Span.Start.Less(diags[j].Span.Start)
		}
		return diags[i].Span.End.Less(diags[j].Span.End)
	})
}
