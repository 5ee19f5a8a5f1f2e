package lsp

import (
	"context"
	"encoding/json"
	"sort"
	"strings"
	"sync"

	lsp "github.com/sourcegraph/go-lsp"
	"github.com/sourcegraph/jsonrpc2"
	"src.frdlisp.dev/pkg/ast"
	"src.frdlisp.dev/pkg/diag"
	"src.frdlisp.dev/pkg/eval"
	"src.frdlisp.dev/pkg/parse"
)

var (
	errMethodNotFound = &jsonrpc2.Error{
		Code: jsonrpc2.CodeMethodNotFound, Message: "method not found"}
	errInvalidParams = &jsonrpc2.Error{
		Code: jsonrpc2.CodeInvalidParams, Message: "invalid params"}
)

type server struct {
	// Guards everything below.
	mu      sync.Mutex
	evaler  *eval.Evaler
	content map[lsp.DocumentURI]string
}

func newServer() *server {
	return &server{evaler: eval.NewEvaler(), content: make(map[lsp.DocumentURI]string)}
}

func handler(s *server) jsonrpc2.Handler {
	return routingHandler(map[string]method{
		"initialize":              s.initialize,
		"textDocument/didOpen":    s.didOpen,
		"textDocument/didChange":  s.didChange,
		"textDocument/didClose":   s.didClose,
		"textDocument/hover":      s.hover,
		"textDocument/completion": s.completion,

		"initialized": noop,
		"shutdown":    noop,
		// Sent by clients even when the server doesn't advertise support.
		"workspace/didChangeWatchedFiles": noop,
	})
}

type method func(context.Context, jsonrpc2.JSONRPC2, json.RawMessage) (any, error)

func noop(_ context.Context, _ jsonrpc2.JSONRPC2, _ json.RawMessage) (any, error) {
	return nil, nil
}

func routingHandler(methods map[string]method) jsonrpc2.Handler {
	return jsonrpc2.HandlerWithError(func(ctx context.Context, conn *jsonrpc2.Conn, req *jsonrpc2.Request) (any, error) {
		fn, ok := methods[req.Method]
		if !ok {
			logger.Printf("unknown method %s", req.Method)
			return nil, errMethodNotFound
		}
		var params json.RawMessage
		if req.Params != nil {
			params = *req.Params
		}
		return fn(ctx, conn, params)
	})
}

// Handler implementations. These are all called synchronously.

func (s *server) initialize(_ context.Context, _ jsonrpc2.JSONRPC2, _ json.RawMessage) (any, error) {
	return &lsp.InitializeResult{
		Capabilities: lsp.ServerCapabilities{
			TextDocumentSync: &lsp.TextDocumentSyncOptionsOrKind{
				Options: &lsp.TextDocumentSyncOptions{
					OpenClose: true,
					Change:    lsp.TDSKFull,
				},
			},
			HoverProvider:      true,
			CompletionProvider: &lsp.CompletionOptions{TriggerCharacters: []string{"("}},
		},
	}, nil
}

func (s *server) didOpen(ctx context.Context, conn jsonrpc2.JSONRPC2, rawParams json.RawMessage) (any, error) {
	var params lsp.DidOpenTextDocumentParams
	if json.Unmarshal(rawParams, &params) != nil {
		return nil, errInvalidParams
	}
	s.update(ctx, conn, params.TextDocument.URI, params.TextDocument.Text)
	return nil, nil
}

func (s *server) didChange(ctx context.Context, conn jsonrpc2.JSONRPC2, rawParams json.RawMessage) (any, error) {
	var params lsp.DidChangeTextDocumentParams
	if json.Unmarshal(rawParams, &params) != nil || len(params.ContentChanges) == 0 {
		return nil, errInvalidParams
	}
	// ContentChanges includes full text since the server is only advertised to
	// support that; see the initialize method.
	s.update(ctx, conn, params.TextDocument.URI, params.ContentChanges[0].Text)
	return nil, nil
}

func (s *server) update(ctx context.Context, conn jsonrpc2.JSONRPC2, uri lsp.DocumentURI, content string) {
	s.mu.Lock()
	s.content[uri] = content
	diags := s.diagnostics(uri, content)
	s.mu.Unlock()
	go conn.Notify(ctx, "textDocument/publishDiagnostics",
		lsp.PublishDiagnosticsParams{URI: uri, Diagnostics: diags})
}

func (s *server) didClose(_ context.Context, _ jsonrpc2.JSONRPC2, rawParams json.RawMessage) (any, error) {
	var params lsp.DidCloseTextDocumentParams
	if json.Unmarshal(rawParams, &params) != nil {
		return nil, errInvalidParams
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.content, params.TextDocument.URI)
	return nil, nil
}

func (s *server) hover(_ context.Context, _ jsonrpc2.JSONRPC2, rawParams json.RawMessage) (any, error) {
	var params lsp.TextDocumentPositionParams
	if json.Unmarshal(rawParams, &params) != nil {
		return nil, errInvalidParams
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	content := s.content[params.TextDocument.URI]
	from, to := symbolAround(content, lspPositionToIdx(content, params.Position))
	name := content[from:to]
	doc, ok := eval.BuiltinDoc[name]
	if !ok {
		doc, ok = eval.SpecialDoc[name]
	}
	if !ok {
		doc, ok = s.definitions(params.TextDocument.URI, content)[name]
	}
	if !ok {
		return lsp.Hover{}, nil
	}
	r := lspRangeFromRange(content, diag.Ranging{From: from, To: to})
	return lsp.Hover{
		Contents: []lsp.MarkedString{{Language: "frdlisp", Value: doc}},
		Range:    &r,
	}, nil
}

func (s *server) completion(_ context.Context, _ jsonrpc2.JSONRPC2, rawParams json.RawMessage) (any, error) {
	var params lsp.CompletionParams
	if json.Unmarshal(rawParams, &params) != nil {
		return nil, errInvalidParams
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	content := s.content[params.TextDocument.URI]
	dot := lspPositionToIdx(content, params.Position)
	from, _ := symbolAround(content, dot)
	prefix := content[from:dot]
	lspRange := lspRangeFromRange(content, diag.Ranging{From: from, To: dot})

	kinds := make(map[string]lsp.CompletionItemKind)
	for _, name := range s.evaler.Global.Names() {
		kinds[name] = lsp.CIKFunction
	}
	for name := range eval.SpecialDoc {
		kinds[name] = lsp.CIKKeyword
	}
	for name := range s.definitions(params.TextDocument.URI, content) {
		if _, ok := kinds[name]; !ok {
			kinds[name] = lsp.CIKVariable
		}
	}

	items := []lsp.CompletionItem{}
	for _, name := range sortedKeys(kinds) {
		if !strings.HasPrefix(name, prefix) {
			continue
		}
		items = append(items, lsp.CompletionItem{
			Label:  name,
			Kind:   kinds[name],
			Detail: eval.BuiltinDoc[name],
			TextEdit: &lsp.TextEdit{
				Range:   lspRange,
				NewText: name,
			},
		})
	}
	return items, nil
}

func (s *server) diagnostics(uri lsp.DocumentURI, content string) []lsp.Diagnostic {
	_, err := s.evaler.Compile(parse.Source{Name: string(uri), Code: content})
	entries := eval.UnpackCompilationErrors(err)
	diags := make([]lsp.Diagnostic, len(entries))
	for i, e := range entries {
		diags[i] = lsp.Diagnostic{
			Range:    lspRangeFromRange(content, e.Context),
			Severity: lsp.Error,
			Source:   e.Phase,
			Message:  e.Message,
		}
	}
	return diags
}

// Returns the names defined at the top level of a document, mapped to their
// descriptions. Documents that don't compile define nothing.
func (s *server) definitions(uri lsp.DocumentURI, content string) map[string]string {
	exprs, err := s.evaler.Compile(parse.Source{Name: string(uri), Code: content})
	if err != nil {
		return nil
	}
	defs := make(map[string]string)
	for _, expr := range exprs {
		switch expr := expr.(type) {
		case *ast.DefineFunc:
			defs[expr.Name] = "(" + strings.Join(append([]string{expr.Name}, expr.Params...), " ") + ")"
		case *ast.DefineVar:
			defs[expr.Name] = expr.String()
		}
	}
	return defs
}

// Returns the range of the symbol that contains or ends at idx. The range is
// empty if there is no such symbol.
func symbolAround(s string, idx int) (int, int) {
	from, to := idx, idx
	for from > 0 && isSymbolByte(s[from-1]) {
		from--
	}
	for to < len(s) && isSymbolByte(s[to]) {
		to++
	}
	return from, to
}

func isSymbolByte(b byte) bool {
	switch b {
	case '(', ')', ' ', '\t', '\r', '\n':
		return false
	}
	return true
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func lspRangeFromRange(s string, r diag.Ranger) lsp.Range {
	rg := r.Range()
	return lsp.Range{
		Start: lspPositionFromIdx(s, rg.From),
		End:   lspPositionFromIdx(s, rg.To),
	}
}

func lspPositionToIdx(s string, pos lsp.Position) int {
	var idx int
	walkString(s, func(i int, p lsp.Position) bool {
		idx = i
		return p.Line < pos.Line || (p.Line == pos.Line && p.Character < pos.Character)
	})
	return idx
}

func lspPositionFromIdx(s string, idx int) lsp.Position {
	var pos lsp.Position
	walkString(s, func(i int, p lsp.Position) bool {
		pos = p
		return i < idx
	})
	return pos
}

// Generates (index, lspPosition) pairs in s, stopping if f returns false.
func walkString(s string, f func(i int, p lsp.Position) bool) {
	var p lsp.Position
	lastCR := false

	for i, r := range s {
		if !f(i, p) {
			return
		}
		switch {
		case r == '\r':
			p.Line++
			p.Character = 0
		case r == '\n':
			if lastCR {
				// Ignore \n if it's part of a \r\n sequence
			} else {
				p.Line++
				p.Character = 0
			}
		case r <= 0xFFFF:
			// Encoded in UTF-16 with one unit
			p.Character++
		default:
			// Encoded in UTF-16 with two units
			p.Character += 2
		}
		lastCR = r == '\r'
	}
	f(len(s), p)
}
