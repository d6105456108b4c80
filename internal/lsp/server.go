package lsp

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"sync"

	"github.com/prithivirajmurugan/rs-compiler/internal/engine"
	"github.com/prithivirajmurugan/rs-compiler/pkg/resolve"
)

// JSON-RPC error codes.
const (
	codeInvalidRequest = -32600
	codeMethodNotFound = -32601
	codeInvalidParams  = -32602
)

// ErrExitWithoutShutdown is returned by Run when the client sends exit
// before shutdown.
var ErrExitWithoutShutdown = errors.New("exit before shutdown")

// ErrMessageTooLarge reports a message whose Content-Length exceeds the
// limit. The body is skipped and the server keeps reading.
var ErrMessageTooLarge = errors.New("message too large")

// DefaultMaxMessageBytes is the message size limit when none is configured.
const DefaultMaxMessageBytes = 1 << 20

// Config configures a Server. MaxMessageBytes caps a message body and
// defaults to DefaultMaxMessageBytes.
type Config struct {
	Engine          *engine.Engine
	Env             resolve.Env // types free variables; may be nil
	Version         string
	MaxMessageBytes int64
	Logger          *slog.Logger
}

// Server implements the Language Server Protocol over a byte stream.
type Server struct {
	documents *DocumentStore
	engine    *engine.Engine
	env       resolve.Env
	version   string

	reader   *bufio.Reader
	writer   io.Writer
	writeMu  sync.Mutex
	maxBytes int64

	logger *slog.Logger

	initialized bool
	shutdown    bool
	exited      bool
}

// NewServer creates a server reading requests from reader and writing
// responses and notifications to writer.
func NewServer(reader io.Reader, writer io.Writer, cfg Config) *Server {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	eng := cfg.Engine
	if eng == nil {
		eng = engine.New(engine.Config{Logger: logger})
	}
	return &Server{
		documents: NewDocumentStore(),
		engine:    eng,
		env:       cfg.Env,
		version:   cfg.Version,
		reader:    bufio.NewReader(reader),
		writer:    writer,
		maxBytes:  cfg.MaxMessageBytes,
		logger:    logger,
	}
}

// Run processes messages until the client sends exit, the stream ends or
// ctx is cancelled. Messages are handled one at a time.
func (s *Server) Run(ctx context.Context) error {
	s.logger.Info("language server starting")

	for !s.exited {
		if err := ctx.Err(); err != nil {
			return err
		}

		msg, err := s.readMessage()
		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
				s.logger.Info("client disconnected")
				return nil
			}
			s.logger.Error("error reading message", "error", err)
			continue
		}

		if err := s.handleMessage(msg); err != nil {
			s.logger.Error("error handling message", "method", msg.Method, "error", err)
		}
	}

	if !s.shutdown {
		return ErrExitWithoutShutdown
	}
	return nil
}

// JSONRPCMessage is a JSON-RPC 2.0 request, response or notification.
type JSONRPCMessage struct {
	JSONRPC string           `json:"jsonrpc"`
	ID      *json.RawMessage `json:"id,omitempty"`
	Method  string           `json:"method,omitempty"`
	Params  json.RawMessage  `json:"params,omitempty"`
	Result  json.RawMessage  `json:"result,omitempty"`
	Error   *JSONRPCError    `json:"error,omitempty"`
}

// JSONRPCError is the error member of a response.
type JSONRPCError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// readMessage reads one Content-Length framed message.
func (s *Server) readMessage() (*JSONRPCMessage, error) {
	contentLength := -1
	for {
		line, err := s.reader.ReadString('\n')
		if err != nil {
			return nil, err
		}

		line = strings.TrimSpace(line)
		if line == "" {
			break
		}

		name, value, ok := strings.Cut(line, ":")
		if ok && strings.EqualFold(strings.TrimSpace(name), "Content-Length") {
			contentLength, err = strconv.Atoi(strings.TrimSpace(value))
			if err != nil {
				return nil, fmt.Errorf("invalid Content-Length: %w", err)
			}
		}
	}

	if contentLength < 0 {
		return nil, errors.New("missing Content-Length header")
	}

	limit := s.maxBytes
	if limit <= 0 {
		limit = DefaultMaxMessageBytes
	}
	if int64(contentLength) > limit {
		if _, err := io.CopyN(io.Discard, s.reader, int64(contentLength)); err != nil {
			return nil, fmt.Errorf("error skipping body: %w", err)
		}
		return nil, fmt.Errorf("%w: %d bytes (limit %d)", ErrMessageTooLarge, contentLength, limit)
	}

	body := make([]byte, contentLength)
	if _, err := io.ReadFull(s.reader, body); err != nil {
		return nil, fmt.Errorf("error reading body: %w", err)
	}

	var msg JSONRPCMessage
	if err := json.Unmarshal(body, &msg); err != nil {
		return nil, fmt.Errorf("error parsing message: %w", err)
	}
	return &msg, nil
}

func (s *Server) sendResponse(id *json.RawMessage, result any, rpcErr *JSONRPCError) {
	msg := JSONRPCMessage{JSONRPC: "2.0", ID: id}
	if rpcErr != nil {
		msg.Error = rpcErr
	} else {
		body, err := json.Marshal(result)
		if err != nil {
			s.logger.Error("error marshaling result", "error", err)
			return
		}
		msg.Result = body
	}
	s.writeMessage(&msg)
}

func (s *Server) sendNotification(method string, params any) {
	msg := JSONRPCMessage{JSONRPC: "2.0", Method: method}
	if params != nil {
		body, err := json.Marshal(params)
		if err != nil {
			s.logger.Error("error marshaling notification", "method", method, "error", err)
			return
		}
		msg.Params = body
	}
	s.writeMessage(&msg)
}

func (s *Server) writeMessage(msg *JSONRPCMessage) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	body, err := json.Marshal(msg)
	if err != nil {
		s.logger.Error("error marshaling message", "error", err)
		return
	}

	_, _ = fmt.Fprintf(s.writer, "Content-Length: %d\r\n\r\n", len(body))
	_, _ = s.writer.Write(body)
}

// handleMessage dispatches a message to its handler. Requests that arrive
// after shutdown are rejected.
func (s *Server) handleMessage(msg *JSONRPCMessage) error {
	s.logger.Debug("received", "method", msg.Method)

	if s.shutdown && msg.Method != "exit" {
		if msg.ID != nil {
			s.sendResponse(msg.ID, nil, &JSONRPCError{Code: codeInvalidRequest, Message: "server is shut down"})
		}
		return nil
	}

	switch msg.Method {
	case "initialize":
		return s.handleInitialize(msg)
	case "initialized":
		s.initialized = true
		return nil
	case "shutdown":
		s.shutdown = true
		s.sendResponse(msg.ID, nil, nil)
		return nil
	case "exit":
		s.exited = true
		return nil
	case "textDocument/didOpen":
		return s.handleDidOpen(msg)
	case "textDocument/didChange":
		return s.handleDidChange(msg)
	case "textDocument/didClose":
		return s.handleDidClose(msg)
	case "textDocument/hover":
		return s.handleHover(msg)
	case "textDocument/formatting":
		return s.handleFormatting(msg)
	case "textDocument/completion":
		return s.handleCompletion(msg)
	default:
		if msg.ID != nil {
			s.sendResponse(msg.ID, nil, &JSONRPCError{
				Code:    codeMethodNotFound,
				Message: "method not found: " + msg.Method,
			})
		}
		return nil
	}
}

// decode unmarshals request params, answering invalid params itself.
func (s *Server) decode(msg *JSONRPCMessage, v any) error {
	if err := json.Unmarshal(msg.Params, v); err != nil {
		if msg.ID != nil {
			s.sendResponse(msg.ID, nil, &JSONRPCError{Code: codeInvalidParams, Message: err.Error()})
		}
		return err
	}
	return nil
}

// --- Lifecycle ---

func (s *Server) handleInitialize(msg *JSONRPCMessage) error {
	var params InitializeParams
	if err := s.decode(msg, &params); err != nil {
		return err
	}
	s.logger.Info("initialize", "root", URIToPath(params.RootURI), "client_pid", params.ProcessID)

	s.sendResponse(msg.ID, InitializeResult{
		Capabilities: ServerCapabilities{
			TextDocumentSync: &TextDocumentSyncOptions{
				OpenClose: true,
				Change:    TextDocumentSyncKindFull,
			},
			CompletionProvider:         &CompletionOptions{TriggerCharacters: []string{":"}},
			HoverProvider:              true,
			DocumentFormattingProvider: true,
		},
		ServerInfo: &ServerInfo{Name: "rsc", Version: s.version},
	}, nil)
	return nil
}

// --- Document sync ---

func (s *Server) handleDidOpen(msg *JSONRPCMessage) error {
	var params DidOpenTextDocumentParams
	if err := s.decode(msg, &params); err != nil {
		return err
	}

	item := params.TextDocument
	s.documents.Open(item.URI, item.Text, item.Version)
	s.publishDiagnostics(item.URI)
	return nil
}

func (s *Server) handleDidChange(msg *JSONRPCMessage) error {
	var params DidChangeTextDocumentParams
	if err := s.decode(msg, &params); err != nil {
		return err
	}
	if len(params.ContentChanges) == 0 {
		return nil
	}

	// Full sync: the last change holds the whole text.
	uri := params.TextDocument.URI
	text := params.ContentChanges[len(params.ContentChanges)-1].Text
	if !s.documents.Update(uri, text, params.TextDocument.Version) {
		s.logger.Debug("ignored stale change", "uri", uri, "version", params.TextDocument.Version)
		return nil
	}
	s.publishDiagnostics(uri)
	return nil
}

func (s *Server) handleDidClose(msg *JSONRPCMessage) error {
	var params DidCloseTextDocumentParams
	if err := s.decode(msg, &params); err != nil {
		return err
	}

	s.documents.Close(params.TextDocument.URI)
	s.sendNotification("textDocument/publishDiagnostics", &PublishDiagnosticsParams{
		URI:         params.TextDocument.URI,
		Diagnostics: []Diagnostic{},
	})
	return nil
}

// --- Features ---

func (s *Server) handleHover(msg *JSONRPCMessage) error {
	var params HoverParams
	if err := s.decode(msg, &params); err != nil {
		return err
	}
	s.sendResponse(msg.ID, s.getHover(params), nil)
	return nil
}

func (s *Server) handleFormatting(msg *JSONRPCMessage) error {
	var params DocumentFormattingParams
	if err := s.decode(msg, &params); err != nil {
		return err
	}
	s.sendResponse(msg.ID, s.getFormattingEdits(params), nil)
	return nil
}

func (s *Server) handleCompletion(msg *JSONRPCMessage) error {
	var params CompletionParams
	if err := s.decode(msg, &params); err != nil {
		return err
	}
	s.sendResponse(msg.ID, &CompletionList{Items: s.getCompletions(params)}, nil)
	return nil
}
