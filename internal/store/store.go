// Package store holds the published analysis state of every open document:
// the text buffer, the parsed tree and the inferred bindings, replaced
// atomically on every successful edit.
package store

import (
	"errors"
	"sync"
	"sync/atomic"

	"octls/internal/ast"
	"octls/internal/diag"
	"octls/internal/parser"
	"octls/internal/source"
	"octls/internal/text"
	"octls/internal/types"
)

// ErrUnknownDocument is returned when a change targets a document that was
// never opened (or was closed).
var ErrUnknownDocument = errors.New("unknown document")

// DocumentData is the immutable snapshot of one open document. Readers get
// a consistent triple: the tree and bindings always derive from the buffer
// in the same snapshot.
type DocumentData struct {
	Doc      *text.TextDocument
	Root     source.Node[ast.Statement]
	Bindings types.Bindings
}

// entry serializes updates per document. The snapshot pointer makes reads
// lock-free: readers either see the state before an in-flight update or the
// one after, never a mix.
type entry struct {
	mu   sync.Mutex
	data atomic.Pointer[DocumentData]
}

// Store is a concurrently readable map from document URI to DocumentData.
// Updates to different documents proceed independently; updates to the same
// document are linearized by its entry mutex.
type Store struct {
	mu      sync.RWMutex
	entries map[string]*entry
}

func New() *Store {
	return &Store{entries: make(map[string]*entry)}
}

// Open parses, binds and publishes a fresh document at version 0.
func (s *Store) Open(uri, languageID, content string) {
	doc := text.NewTextDocument(uri, languageID, 0, content)
	data := analyze(doc)

	s.mu.Lock()
	e, ok := s.entries[uri]
	if !ok {
		e = &entry{}
		s.entries[uri] = e
	}
	s.mu.Unlock()

	e.mu.Lock()
	e.data.Store(data)
	e.mu.Unlock()
}

// Close drops a document from the store.
func (s *Store) Close(uri string) {
	s.mu.Lock()
	delete(s.entries, uri)
	s.mu.Unlock()
}

// ApplyChange performs a compute-and-replace on the existing entry: clone
// the current buffer, apply the edits, re-parse, re-bind, and install the
// new triple as a single atomic replacement.
func (s *Store) ApplyChange(uri string, changes []text.ContentChange, version *int32) error {
	e := s.lookup(uri)
	if e == nil {
		return ErrUnknownDocument
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	current := e.data.Load()
	if current == nil {
		return ErrUnknownDocument
	}
	doc := current.Doc.Clone()
	doc.Update(changes, version)
	e.data.Store(analyze(doc))
	return nil
}

// Snapshot returns the current published state of a document.
func (s *Store) Snapshot(uri string) (*DocumentData, bool) {
	e := s.lookup(uri)
	if e == nil {
		return nil, false
	}
	data := e.data.Load()
	return data, data != nil
}

// Diagnostics extracts the error nodes of the current tree. An unknown
// document degrades to an empty list, not an error.
func (s *Store) Diagnostics(uri string) []diag.Diagnostic {
	data, ok := s.Snapshot(uri)
	if !ok {
		return nil
	}
	return diag.FromTree(data.Root)
}

// Variable is one name binding surfaced for completion.
type Variable struct {
	Name string
	Type types.Type
}

// Variables flattens the bindings of all open documents. Completion is
// global to all open buffers; there is no per-document namespacing here.
func (s *Store) Variables() []Variable {
	s.mu.RLock()
	entries := make([]*entry, 0, len(s.entries))
	for _, e := range s.entries {
		entries = append(entries, e)
	}
	s.mu.RUnlock()

	var vars []Variable
	for _, e := range entries {
		data := e.data.Load()
		if data == nil {
			continue
		}
		for name, t := range data.Bindings {
			vars = append(vars, Variable{Name: name, Type: t})
		}
	}
	return vars
}

// HoverAt finds the smallest expression covering an internal position and
// returns its inferred type with the covering span.
func (s *Store) HoverAt(uri string, pos source.Position) (types.Type, source.Span, bool) {
	data, ok := s.Snapshot(uri)
	if !ok {
		return nil, source.Span{}, false
	}
	node, ok := ast.AtPos(ast.StmtTree(data.Root), pos)
	if !ok {
		return nil, source.Span{}, false
	}
	return types.TypeOf(node, data.Bindings), node.Span, true
}

func (s *Store) lookup(uri string) *entry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.entries[uri]
}

// analyze runs the full pipeline for one buffer: parse, then fold bindings
// over the fresh tree starting from the prelude.
func analyze(doc *text.TextDocument) *DocumentData {
	root := parser.Parse(doc.Text())
	bindings := types.Prelude()
	types.AddBindings(root, bindings)
	return &DocumentData{
		Doc:      doc,
		Root:     root,
		Bindings: bindings,
	}
}
