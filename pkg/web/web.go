// Package web serves a frdlisp session over HTTP.
//
// POST /eval evaluates the request body in a session shared by all clients,
// and responds with JSON like:
//
//	{"results":[{"value":"3"},{"error":"unbound symbol: x"}],"error":""}
//
// where error is set instead of results when the body doesn't compile.
// GET /stats serves the expvar counters.
package web

import (
	"encoding/json"
	"expvar"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/valyala/fasthttp"
	"github.com/valyala/fasthttp/expvarhandler"
	"src.frdlisp.dev/pkg/eval"
	"src.frdlisp.dev/pkg/logutil"
	"src.frdlisp.dev/pkg/parse"
	"src.frdlisp.dev/pkg/prog"
	"src.frdlisp.dev/pkg/rc"
)

var logger = logutil.GetLogger("[web] ")

// Counters served on /stats.
var (
	evalCalls         = expvar.NewInt("evalCalls")
	evalValues        = expvar.NewInt("evalValues")
	evalExceptions    = expvar.NewInt("evalExceptions")
	evalCompileErrors = expvar.NewInt("evalCompileErrors")
)

// Program is the web subprogram.
var Program prog.Program = program{}

type program struct{}

func (program) Run(fds [3]*os.File, f *prog.Flags, _ []string) error {
	if !f.Web {
		return prog.ErrNotSuitable
	}
	ev := newEvaler(fds[2], f)
	addr := fmt.Sprintf(":%d", f.Port)
	fmt.Fprintf(fds[2], "Serving frdlisp on %s\n", addr)
	server := &fasthttp.Server{
		Handler:      NewServer(ev).Handle,
		Name:         "frdlisp",
		ReadTimeout:  time.Minute,
		WriteTimeout: time.Minute,
	}
	return server.ListenAndServe(addr)
}

// Creates the Evaler of the shared session. Like the shell, it honors the
// max-depth setting of the rc file unless -max-depth is given.
func newEvaler(w io.Writer, f *prog.Flags) *eval.Evaler {
	cfg := rc.LoadOrWarn(w, f.RC, f.NoRc)
	ev := eval.NewEvaler()
	if depth := cfg.ResolveMaxDepth(f.MaxDepth); depth > 0 {
		ev.MaxDepth = depth
	}
	return ev
}

// Server evaluates code sent over HTTP.
type Server struct {
	// Guards ev and n. An Evaler is not safe for concurrent use.
	mu sync.Mutex
	ev *eval.Evaler
	n  int
}

// NewServer creates a Server evaluating code with ev.
func NewServer(ev *eval.Evaler) *Server {
	return &Server{ev: ev}
}

// Response is the body of responses to /eval.
type Response struct {
	Results []Result `json:"results"`
	Error   string   `json:"error"`
}

// Result is the outcome of one top-level expression.
type Result struct {
	Value string `json:"value,omitempty"`
	Error string `json:"error,omitempty"`
}

// Handle is the fasthttp.RequestHandler of the Server.
func (s *Server) Handle(ctx *fasthttp.RequestCtx) {
	switch string(ctx.Path()) {
	case "/eval":
		if !ctx.IsPost() {
			ctx.Response.Header.Set("Allow", fasthttp.MethodPost)
			ctx.Error("use POST", fasthttp.StatusMethodNotAllowed)
			return
		}
		s.handleEval(ctx)
	case "/stats":
		expvarhandler.ExpvarHandler(ctx)
	default:
		ctx.Error("not found", fasthttp.StatusNotFound)
	}
}

func (s *Server) handleEval(ctx *fasthttp.RequestCtx) {
	evalCalls.Add(1)
	resp := s.eval(string(ctx.PostBody()))
	body, err := json.Marshal(resp)
	if err != nil {
		ctx.Error(err.Error(), fasthttp.StatusInternalServerError)
		return
	}
	ctx.SetContentType("application/json")
	ctx.SetBody(body)
}

func (s *Server) eval(code string) *Response {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.n++
	src := parse.Source{Name: fmt.Sprintf("[web %d]", s.n), Code: code}
	logger.Printf("evaluating %s", src.Name)

	results, err := s.ev.Eval(src)
	if err != nil {
		evalCompileErrors.Add(1)
		return &Response{Results: []Result{}, Error: err.Error()}
	}
	resp := &Response{Results: make([]Result, len(results))}
	for i, r := range results {
		if r.Err != nil {
			evalExceptions.Add(1)
			resp.Results[i].Error = r.Err.Error()
		} else {
			evalValues.Add(1)
			resp.Results[i].Value = eval.Repr(r.Value)
		}
	}
	return resp
}
