package server

import (
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prithivirajmurugan/rs-compiler/internal/engine"
	"github.com/prithivirajmurugan/rs-compiler/internal/testutil"
	"github.com/prithivirajmurugan/rs-compiler/pkg/resolve"
	"github.com/prithivirajmurugan/rs-compiler/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	logger := testutil.NewTestLogger(t)
	return NewServer(Config{
		Engine:       engine.New(engine.Config{Logger: logger}),
		Env:          resolve.Bindings{"n": types.Int},
		MaxBodyBytes: 64,
		Logger:       logger,
	})
}

func do(t *testing.T, s *Server, method, target, body string, header map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	for k, v := range header {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func TestHandlers_Format(t *testing.T) {
	s := newTestServer(t)

	tests := []struct {
		name       string
		target     string
		body       string
		accept     string
		wantStatus int
		wantType   string
		wantBody   string
		wantErrors string
	}{
		{
			name:       "html",
			target:     "/format",
			body:       "x=1",
			wantStatus: http.StatusOK,
			wantType:   "text/html; charset=utf-8",
			wantBody:   `<pre class="rsc-source"><span class="rsc-variable">x</span> <span class="rsc-text">=</span> <span class="rsc-number">1</span>` + "\n</pre>\n",
			wantErrors: "0",
		},
		{
			name:       "plain text",
			target:     "/api/format",
			body:       "while c {x=x-1}",
			accept:     "text/plain",
			wantStatus: http.StatusOK,
			wantType:   "text/plain; charset=utf-8",
			wantBody:   "while c {\n  x = x - 1\n}\n",
			wantErrors: "0",
		},
		{
			name:       "custom indent",
			target:     "/format?indent=4",
			body:       "{1}",
			accept:     "text/plain",
			wantStatus: http.StatusOK,
			wantType:   "text/plain; charset=utf-8",
			wantBody:   "{\n    1\n}\n",
			wantErrors: "0",
		},
		{
			name:       "syntax errors",
			target:     "/format",
			body:       "1 + @ + #",
			accept:     "text/plain",
			wantStatus: http.StatusOK,
			wantType:   "text/plain; charset=utf-8",
			wantBody:   "1 + @ + #\n",
			wantErrors: "2",
		},
		{
			name:       "bad indent",
			target:     "/format?indent=wide",
			body:       "1",
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "body too large",
			target:     "/format",
			body:       strings.Repeat("1 + ", 40),
			wantStatus: http.StatusRequestEntityTooLarge,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			header := map[string]string{}
			if tt.accept != "" {
				header["Accept"] = tt.accept
			}
			rec := do(t, s, http.MethodPost, tt.target, tt.body, header)
			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus != http.StatusOK {
				return
			}
			assert.Equal(t, tt.wantType, rec.Header().Get("Content-Type"))
			assert.Equal(t, tt.wantBody, rec.Body.String())
			assert.Equal(t, tt.wantErrors, rec.Header().Get(SyntaxErrorsHeader))
		})
	}
}

func TestHandlers_Types(t *testing.T) {
	s := newTestServer(t)
	rec := do(t, s, http.MethodPost, "/types", "n < true", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var resp TypesResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Rows, 3)
	assert.Equal(t, engine.Row{ID: resp.Rows[0].ID, Shape: "binary", Line: 1, Column: 1, Text: "n < true", Type: "bool"}, resp.Rows[0])
	assert.Equal(t, "int", resp.Rows[1].Type)
	assert.Equal(t, []engine.Diagnostic{{Line: 1, Column: 5, Message: "operator < expects int, found bool"}}, resp.Diagnostics)
	assert.Empty(t, resp.SyntaxErrors)
}

func TestHandlers_TypesSyntaxErrors(t *testing.T) {
	rec := do(t, newTestServer(t), http.MethodPost, "/api/types", ")", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp TypesResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.SyntaxErrors, 1)
	assert.Contains(t, resp.SyntaxErrors[0], "expected expression")
	require.Len(t, resp.Rows, 1)
	assert.Equal(t, "error", resp.Rows[0].Shape)
}

func TestHandlers_Pages(t *testing.T) {
	s := newTestServer(t)

	rec := do(t, s, http.MethodGet, "/healthz", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())

	rec = do(t, s, http.MethodGet, "/", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "rsc playground")

	rec = do(t, s, http.MethodGet, "/format", "", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestServer_ServeAndShutdown(t *testing.T) {
	s := newTestServer(t)
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.ServeListener(ctx, ln) }()

	url := "http://" + ln.Addr().String() + "/healthz"
	var body []byte
	require.Eventually(t, func() bool {
		resp, err := http.Get(url) //nolint:noctx // test helper
		if err != nil {
			return false
		}
		defer func() { _ = resp.Body.Close() }()
		body, _ = io.ReadAll(resp.Body)
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 20*time.Millisecond)
	assert.Equal(t, "ok", string(body))

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}

func TestServer_ListenError(t *testing.T) {
	s := NewServer(Config{Engine: engine.New(engine.Config{}), Addr: "256.0.0.1:1"})
	err := s.Serve(context.Background())
	assert.ErrorContains(t, err, "failed to listen")
}
