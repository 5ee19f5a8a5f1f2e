package web

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/valyala/fasthttp"
	"src.frdlisp.dev/pkg/eval"
	"src.frdlisp.dev/pkg/prog"
	. "src.frdlisp.dev/pkg/prog/progtest"
	"src.frdlisp.dev/pkg/testutil"
)

func request(s *Server, method, path, body string) *fasthttp.RequestCtx {
	var ctx fasthttp.RequestCtx
	ctx.Request.Header.SetMethod(method)
	ctx.Request.SetRequestURI(path)
	ctx.Request.SetBodyString(body)
	s.Handle(&ctx)
	return &ctx
}

func postEval(t *testing.T, s *Server, code string) Response {
	t.Helper()
	ctx := request(s, fasthttp.MethodPost, "/eval", code)
	if code := ctx.Response.StatusCode(); code != fasthttp.StatusOK {
		t.Fatalf("got status %d", code)
	}
	if ct := string(ctx.Response.Header.ContentType()); ct != "application/json" {
		t.Errorf("got content type %q", ct)
	}
	var resp Response
	if err := json.Unmarshal(ctx.Response.Body(), &resp); err != nil {
		t.Fatal(err)
	}
	return resp
}

func TestEval(t *testing.T) {
	s := NewServer(eval.NewEvaler())

	got := postEval(t, s, "(define x 2) (+ x 1) y")
	want := Response{Results: []Result{
		{Value: "nil"}, {Value: "3"}, {Error: "unbound symbol: y"}}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}

	// The session is shared between requests.
	got = postEval(t, s, "(* x 10)")
	if diff := cmp.Diff(Response{Results: []Result{{Value: "20"}}}, got); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}

	got = postEval(t, s, "(+ 1")
	if len(got.Results) != 0 || !strings.HasPrefix(got.Error, "Syntax error: [web 3]:") {
		t.Errorf("got %+v", got)
	}
}

func TestEval_RawJSON(t *testing.T) {
	s := NewServer(eval.NewEvaler())
	ctx := request(s, fasthttp.MethodPost, "/eval", "(+ 1 2) (/ 1 0)")
	want := `{"results":[{"value":"3"},` +
		`{"error":"bad value: divisor must be number other than 0, but is 0"}],"error":""}`
	if got := string(ctx.Response.Body()); got != want {
		t.Errorf("got %s, want %s", got, want)
	}
}

func TestEval_Concurrent(t *testing.T) {
	s := NewServer(eval.NewEvaler())
	postEval(t, s, "(define (sum n) (if (= n 0) 0 (+ n (sum (- n 1)))))")
	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ctx := request(s, fasthttp.MethodPost, "/eval", "(sum 100)")
			if body := string(ctx.Response.Body()); !strings.Contains(body, `"value":"5050"`) {
				t.Errorf("got %s", body)
			}
		}()
	}
	wg.Wait()
}

func TestHandle_Routing(t *testing.T) {
	s := NewServer(eval.NewEvaler())

	ctx := request(s, fasthttp.MethodGet, "/eval", "")
	if ctx.Response.StatusCode() != fasthttp.StatusMethodNotAllowed {
		t.Errorf("GET /eval -> %d", ctx.Response.StatusCode())
	}
	ctx = request(s, fasthttp.MethodGet, "/nope", "")
	if ctx.Response.StatusCode() != fasthttp.StatusNotFound {
		t.Errorf("GET /nope -> %d", ctx.Response.StatusCode())
	}

	request(s, fasthttp.MethodPost, "/eval", "1")
	ctx = request(s, fasthttp.MethodGet, "/stats", "")
	if body := string(ctx.Response.Body()); !strings.Contains(body, `"evalCalls"`) {
		t.Errorf("GET /stats -> %s", body)
	}
}

func TestProgram_NotSuitable(t *testing.T) {
	Test(t, Program,
		ThatFrdlisp().ExitsWith(2).WritesStderr("internal error: no suitable subprogram\n"),
	)
}

func TestNewEvaler_MaxDepth(t *testing.T) {
	dir := testutil.InTempDir(t)
	testutil.ApplyDir(testutil.Dir{
		"rc.yaml":  "max-depth: 7\n",
		"bad.yaml": "nope: 1\n",
	})
	rcPath := filepath.Join(dir, "rc.yaml")

	tests := []struct {
		name  string
		flags prog.Flags
		want  int
	}{
		{"rc file", prog.Flags{RC: rcPath}, 7},
		{"flag wins over rc file", prog.Flags{RC: rcPath, MaxDepth: 3}, 3},
		{"norc", prog.Flags{RC: rcPath, NoRc: true}, eval.DefaultMaxDepth},
		{"bad rc file", prog.Flags{RC: filepath.Join(dir, "bad.yaml")}, eval.DefaultMaxDepth},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			var warnings bytes.Buffer
			ev := newEvaler(&warnings, &test.flags)
			if ev.MaxDepth != test.want {
				t.Errorf("got MaxDepth %d, want %d", ev.MaxDepth, test.want)
			}
		})
	}

	var warnings bytes.Buffer
	newEvaler(&warnings, &prog.Flags{RC: filepath.Join(dir, "bad.yaml")})
	if !strings.Contains(warnings.String(), "Warning: ignoring rc file:") {
		t.Errorf("got warnings %q", warnings.String())
	}
}
