// Package lsp is the stdio JSON-RPC boundary of the analysis core. It only
// translates: wire positions to internal ones, store snapshots to protocol
// answers. Everything position- or type-aware lives below it.
package lsp

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"octls/internal/store"
	"octls/internal/version"
)

var (
	// ErrExit signals a graceful shutdown after receiving "exit".
	ErrExit = errors.New("lsp exit")
	// ErrExitWithoutShutdown signals an "exit" without a preceding "shutdown".
	ErrExitWithoutShutdown = errors.New("lsp exit without shutdown")
)

// ServerOptions configures LSP server behavior.
type ServerOptions struct {
	MaxDiagnostics int
}

// Server handles stdio JSON-RPC for the Octave language server.
type Server struct {
	in     *bufio.Reader
	out    *bufio.Writer
	sendMu sync.Mutex

	mu                sync.Mutex
	shutdownRequested bool
	published         map[string]struct{}

	store          *store.Store
	maxDiagnostics int
}

// NewServer constructs a new LSP server over the given streams.
func NewServer(in io.Reader, out io.Writer, opts ServerOptions) *Server {
	maxDiagnostics := opts.MaxDiagnostics
	if maxDiagnostics <= 0 {
		maxDiagnostics = 100
	}
	return &Server{
		in:             bufio.NewReader(in),
		out:            bufio.NewWriter(out),
		published:      make(map[string]struct{}),
		store:          store.New(),
		maxDiagnostics: maxDiagnostics,
	}
}

// Run serves LSP requests until shutdown or EOF.
func (s *Server) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		payload, err := readMessage(s.in)
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
		var msg rpcMessage
		if err := json.Unmarshal(payload, &msg); err != nil {
			s.logf("failed to parse message: %v", err)
			continue
		}
		if msg.Method == "" {
			continue
		}
		if err := s.handleMessage(&msg); err != nil {
			return err
		}
	}
}

func (s *Server) handleMessage(msg *rpcMessage) error {
	switch msg.Method {
	case "initialize":
		return s.handleInitialize(msg)
	case "initialized":
		return nil
	case "shutdown":
		return s.handleShutdown(msg)
	case "exit":
		s.mu.Lock()
		requested := s.shutdownRequested
		s.mu.Unlock()
		if requested {
			return ErrExit
		}
		return ErrExitWithoutShutdown
	case "textDocument/didOpen":
		return s.handleDidOpen(msg)
	case "textDocument/didChange":
		return s.handleDidChange(msg)
	case "textDocument/didClose":
		return s.handleDidClose(msg)
	case "textDocument/hover":
		return s.handleHover(msg)
	case "textDocument/completion":
		return s.handleCompletion(msg)
	default:
		if len(msg.ID) > 0 {
			return s.sendError(msg.ID, -32601, "method not found")
		}
		return nil
	}
}

func (s *Server) handleInitialize(msg *rpcMessage) error {
	var params initializeParams
	if len(msg.Params) > 0 {
		if err := json.Unmarshal(msg.Params, &params); err != nil {
			return s.sendError(msg.ID, -32602, "invalid params")
		}
	}
	result := initializeResult{
		Capabilities: serverCapabilities{
			TextDocumentSync: textDocumentSyncOptions{
				OpenClose: true,
				Change:    2, // incremental
			},
			HoverProvider:      true,
			CompletionProvider: &completionOptions{},
		},
		ServerInfo: &serverInfo{
			Name:    "Octave LSP",
			Version: version.Plain(),
		},
	}
	return s.sendResponse(msg.ID, result)
}

func (s *Server) handleShutdown(msg *rpcMessage) error {
	s.mu.Lock()
	s.shutdownRequested = true
	s.mu.Unlock()
	return s.sendResponse(msg.ID, nil)
}

func (s *Server) handleDidOpen(msg *rpcMessage) error {
	var params didOpenTextDocumentParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		return err
	}
	uri := canonicalURI(params.TextDocument.URI)
	if uri == "" {
		return nil
	}
	s.store.Open(uri, params.TextDocument.LanguageID, params.TextDocument.Text)
	return s.publishDiagnostics(uri, nil)
}

func (s *Server) handleDidChange(msg *rpcMessage) error {
	var params didChangeTextDocumentParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		return err
	}
	uri := canonicalURI(params.TextDocument.URI)
	if uri == "" {
		return nil
	}
	changes := toContentChanges(params.ContentChanges)
	if err := s.store.ApplyChange(uri, changes, params.TextDocument.Version); err != nil {
		// Non-fatal: log and skip publishing for this change.
		s.logf("didChange %s: %v", uri, err)
		return nil
	}
	return s.publishDiagnostics(uri, params.TextDocument.Version)
}

func (s *Server) handleDidClose(msg *rpcMessage) error {
	var params didCloseTextDocumentParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		return err
	}
	uri := canonicalURI(params.TextDocument.URI)
	if uri == "" {
		return nil
	}
	s.store.Close(uri)

	s.mu.Lock()
	_, hadDiagnostics := s.published[uri]
	delete(s.published, uri)
	s.mu.Unlock()
	if hadDiagnostics {
		return s.sendPublish(uri, nil, nil)
	}
	return nil
}

func (s *Server) handleHover(msg *rpcMessage) error {
	var params hoverParams
	if len(msg.Params) > 0 {
		if err := json.Unmarshal(msg.Params, &params); err != nil {
			return s.sendError(msg.ID, -32602, "invalid params")
		}
	}
	uri := canonicalURI(params.TextDocument.URI)
	ty, span, ok := s.store.HoverAt(uri, toInternalPosition(params.Position))
	if !ok {
		return s.sendResponse(msg.ID, nil)
	}
	hoverRange := fromInternalSpan(span)
	return s.sendResponse(msg.ID, &hover{
		Contents: markupContent{
			Kind:  "plaintext",
			Value: ty.String(),
		},
		Range: &hoverRange,
	})
}

const completionItemKindVariable = 6

func (s *Server) handleCompletion(msg *rpcMessage) error {
	vars := s.store.Variables()
	items := make([]completionItem, 0, len(vars))
	for _, v := range vars {
		items = append(items, completionItem{
			Label:  v.Name,
			Kind:   completionItemKindVariable,
			Detail: v.Type.String(),
		})
	}
	return s.sendResponse(msg.ID, completionList{IsIncomplete: false, Items: items})
}

// publishDiagnostics pushes the current diagnostics for a document.
func (s *Server) publishDiagnostics(uri string, docVersion *int32) error {
	diags := s.store.Diagnostics(uri)
	list := toLSPDiagnostics(diags, s.maxDiagnostics)

	s.mu.Lock()
	if len(list) > 0 {
		s.published[uri] = struct{}{}
	}
	s.mu.Unlock()

	return s.sendPublish(uri, list, docVersion)
}

func (s *Server) sendResponse(id json.RawMessage, result any) error {
	msg := map[string]any{
		"jsonrpc": "2.0",
		"id":      id,
		"result":  result,
	}
	return s.send(msg)
}

func (s *Server) sendError(id json.RawMessage, code int, message string) error {
	msg := map[string]any{
		"jsonrpc": "2.0",
		"id":      id,
		"error": rpcError{
			Code:    code,
			Message: message,
		},
	}
	return s.send(msg)
}

func (s *Server) sendPublish(uri string, list []lspDiagnostic, docVersion *int32) error {
	if list == nil {
		list = []lspDiagnostic{}
	}
	msg := map[string]any{
		"jsonrpc": "2.0",
		"method":  "textDocument/publishDiagnostics",
		"params": publishDiagnosticsParams{
			URI:         uri,
			Version:     docVersion,
			Diagnostics: list,
		},
	}
	return s.send(msg)
}

func (s *Server) send(msg any) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	s.sendMu.Lock()
	defer s.sendMu.Unlock()
	if err := writeMessage(s.out, payload); err != nil {
		return err
	}
	return s.out.Flush()
}

func (s *Server) logf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "lsp: "+format+"\n", args...)
}
