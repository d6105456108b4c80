package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/prithivirajmurugan/rs-compiler/internal/engine"
	"github.com/prithivirajmurugan/rs-compiler/pkg/format"
	"github.com/prithivirajmurugan/rs-compiler/pkg/parser"
	"github.com/prithivirajmurugan/rs-compiler/pkg/resolve"
)

// SyntaxErrorsHeader carries the number of syntax errors in a response.
const SyntaxErrorsHeader = "X-Syntax-Errors"

// Handlers provides the HTTP handlers of the playground.
type Handlers struct {
	engine       *engine.Engine
	env          resolve.Env
	maxBodyBytes int64
	logger       *slog.Logger
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(eng *engine.Engine, env resolve.Env, maxBodyBytes int64, logger *slog.Logger) *Handlers {
	return &Handlers{
		engine:       eng,
		env:          env,
		maxBodyBytes: maxBodyBytes,
		logger:       logger,
	}
}

// TypesResponse is the body of POST /types.
type TypesResponse struct {
	Rows         []engine.Row        `json:"rows"`
	Diagnostics  []engine.Diagnostic `json:"diagnostics"`
	SyntaxErrors []string            `json:"syntax_errors,omitempty"`
}

func (h *Handlers) readSource(w http.ResponseWriter, r *http.Request) (string, bool) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, h.maxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			http.Error(w, "source too large", http.StatusRequestEntityTooLarge)
			return "", false
		}
		http.Error(w, "failed to read body", http.StatusBadRequest)
		return "", false
	}
	return string(body), true
}

// syntaxErrors lists the messages of every parse error in err.
func syntaxErrors(err error) []string {
	var list parser.ErrorList
	if !errors.As(err, &list) {
		return nil
	}
	msgs := make([]string, len(list))
	for i, e := range list {
		msgs[i] = e.Error()
	}
	return msgs
}

// Format formats the posted source. The response is an HTML fragment, or
// plain text when the client accepts text/plain. Syntax errors do not fail
// the request; their count is reported in SyntaxErrorsHeader.
func (h *Handlers) Format(w http.ResponseWriter, r *http.Request) {
	src, ok := h.readSource(w, r)
	if !ok {
		return
	}

	indent := h.engine.IndentWidth()
	if v := r.URL.Query().Get("indent"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 || n > 16 {
			http.Error(w, fmt.Sprintf("invalid indent %q", v), http.StatusBadRequest)
			return
		}
		indent = n
	}

	doc, err := h.engine.FormatWidth("request", src, indent)
	if doc == nil {
		h.logger.Error("format failed", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set(SyntaxErrorsHeader, strconv.Itoa(len(syntaxErrors(err))))

	var renderer format.Renderer = format.HTMLRenderer{}
	contentType := "text/html; charset=utf-8"
	if strings.Contains(r.Header.Get("Accept"), "text/plain") {
		renderer = format.PlainRenderer{}
		contentType = "text/plain; charset=utf-8"
	}
	w.Header().Set("Content-Type", contentType)
	if err := renderer.Render(w, doc); err != nil {
		h.logger.Error("failed to write response", "error", err)
	}
}

// Types resolves the posted source and returns every expression with its
// type as JSON.
func (h *Handlers) Types(w http.ResponseWriter, r *http.Request) {
	src, ok := h.readSource(w, r)
	if !ok {
		return
	}

	a, err := h.engine.Resolve("request", src, h.env)
	if a == nil {
		h.logger.Error("resolve failed", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	resp := TypesResponse{
		Rows:         a.Rows(),
		Diagnostics:  a.Diagnostics(),
		SyntaxErrors: syntaxErrors(err),
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		h.logger.Error("failed to write response", "error", err)
	}
}

// Healthz reports liveness.
func (h *Handlers) Healthz(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = io.WriteString(w, "ok")
}

// Index serves the playground page.
func (h *Handlers) Index(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = io.WriteString(w, indexPage)
}

const indexPage = `<!doctype html>
<html>
<head>
<meta charset="utf-8">
<title>rsc playground</title>
<style>
body { font-family: sans-serif; margin: 2em; }
textarea { width: 100%; height: 12em; font-family: monospace; }
.rsc-keyword { color: #a626a4; } .rsc-number { color: #0184bc; }
.rsc-variable { color: #50a14f; } .rsc-boolean { color: #c18401; }
.rsc-type { color: #4078f2; }
</style>
</head>
<body>
<textarea id="src">f = func (n : int) {
  if n < 2 { n } else { rec(n - 1) + rec(n - 2) }
}</textarea>
<p><button id="run">Format</button></p>
<div id="out"></div>
<script>
document.getElementById("run").onclick = async () => {
  const res = await fetch("/api/format", { method: "POST", body: document.getElementById("src").value });
  document.getElementById("out").innerHTML = await res.text();
};
</script>
</body>
</html>
`
