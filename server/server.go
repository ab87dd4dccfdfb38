package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/mobile-next/bubble/commands"
	"github.com/mobile-next/bubble/utils"
	"golang.org/x/sync/errgroup"
)

const (
	// Parse error: Invalid JSON was received by the server
	ErrCodeParseError = -32700

	// Invalid Request: The JSON sent is not a valid Request object
	ErrCodeInvalidRequest = -32600

	// Method not found: The method does not exist / is not available
	ErrCodeMethodNotFound = -32601

	// Server error: Internal JSON-RPC error
	ErrCodeServerError = -32000

	// Invalid params: Invalid method parameters
	ErrCodeInvalidParams = -32602

	// Internal error: Internal JSON-RPC error
	ErrCodeInternalError = -32603
)

// Server timeouts
const (
	ReadTimeout     = 10 * time.Second
	WriteTimeout    = 10 * time.Second
	IdleTimeout     = 120 * time.Second
	ShutdownTimeout = 5 * time.Second
)

const (
	errTitleParseError    = "Parse error"
	errTitleInvalidReq    = "Invalid Request"
	errTitleMethodNotFnd  = "Method not found"
	errTitleServerError   = "Server error"
	errTitleInvalidParams = "Invalid params"

	errMsgParseError     = "expecting jsonrpc payload"
	errMsgInvalidJSONRPC = "'jsonrpc' must be '2.0'"
	errMsgIDRequired     = "'id' field is required"
	errMsgMethodRequired = "'method' is required"
	errMsgTextOnly       = "only text messages accepted for requests"
)

var okResponse = map[string]interface{}{"status": "ok"}

type JSONRPCRequest struct {
	// these fields are all omitempty, so we can report back to client if they are missing
	JSONRPC string          `json:"jsonrpc,omitempty"`
	Method  string          `json:"method,omitempty"`
	Params  json.RawMessage `json:"params,omitempty"`
	ID      interface{}     `json:"id,omitempty"`
}

// JSONRPCResponse represents a JSON-RPC response
type JSONRPCResponse struct {
	JSONRPC string      `json:"jsonrpc"`
	Result  interface{} `json:"result,omitempty"`
	Error   interface{} `json:"error,omitempty"`
	ID      interface{} `json:"id"`
}

// JSONRPCNotification is a server-initiated message without an id
type JSONRPCNotification struct {
	JSONRPC string      `json:"jsonrpc"`
	Method  string      `json:"method"`
	Params  interface{} `json:"params"`
}

// jsonRPCError is a request that failed validation
type jsonRPCError struct {
	code    int
	message string
	data    string
}

// paramsError marks handler errors caused by malformed params
type paramsError struct {
	err error
}

func (e *paramsError) Error() string {
	return e.err.Error()
}

func (e *paramsError) Unwrap() error {
	return e.err
}

func invalidParams(format string, args ...interface{}) error {
	return &paramsError{err: fmt.Errorf(format, args...)}
}

// validateJSONRPCRequest checks the envelope shared by HTTP and WebSocket requests
func validateJSONRPCRequest(req JSONRPCRequest) *jsonRPCError {
	if req.JSONRPC != "2.0" {
		return &jsonRPCError{ErrCodeInvalidRequest, errTitleInvalidReq, errMsgInvalidJSONRPC}
	}

	if req.ID == nil {
		return &jsonRPCError{ErrCodeInvalidRequest, errTitleInvalidReq, errMsgIDRequired}
	}

	if req.Method == "" {
		return &jsonRPCError{ErrCodeInvalidRequest, errTitleInvalidReq, errMsgMethodRequired}
	}

	return nil
}

// errorCode maps a handler error to its JSON-RPC code
func errorCode(err error) (int, string) {
	var pe *paramsError
	if errors.As(err, &pe) {
		return ErrCodeInvalidParams, errTitleInvalidParams
	}
	return ErrCodeServerError, errTitleServerError
}

// corsMiddleware handles CORS preflight requests and adds CORS headers to responses.
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// NewHandler returns the HTTP handler serving /, /rpc and /ws
func NewHandler(enableCORS bool) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/", sendBanner)
	mux.HandleFunc("/rpc", handleJSONRPC)
	mux.Handle("/ws", NewWebSocketHandler(enableCORS))

	var handler http.Handler = mux
	if enableCORS {
		handler = corsMiddleware(mux)
	}
	return handler
}

// normalizeAddr turns a bare port into a listen address
func normalizeAddr(addr string) (string, error) {
	// if host is missing, default to localhost
	if !strings.Contains(addr, ":") {
		// convert addr to integer
		port, err := strconv.Atoi(addr)
		if err != nil {
			return "", fmt.Errorf("invalid port: %w", err)
		}

		addr = fmt.Sprintf(":%d", port)
	}
	return addr, nil
}

// ListenAddr returns the address Serve listens on for addr
func ListenAddr(addr string) (string, error) {
	return normalizeAddr(addr)
}

func StartServer(addr string, enableCORS bool) error {
	return Serve(context.Background(), addr, enableCORS)
}

// Serve runs the server until ctx is canceled or a server.shutdown request
// arrives, then closes all bubble sessions.
func Serve(ctx context.Context, addr string, enableCORS bool) error {
	addr, err := normalizeAddr(addr)
	if err != nil {
		return err
	}

	server := &http.Server{
		Addr:         addr,
		Handler:      NewHandler(enableCORS),
		ReadTimeout:  ReadTimeout,
		WriteTimeout: WriteTimeout,
		IdleTimeout:  IdleTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		utils.Info("Starting server on http://%s...", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		select {
		case <-gctx.Done():
		case <-shutdownRequests:
			utils.Info("Shutdown requested")
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
		defer cancel()
		err := server.Shutdown(shutdownCtx)
		commands.Sessions().CloseAll()
		return err
	})

	return g.Wait()
}

// shutdownRequests carries server.shutdown calls to the running server
var shutdownRequests = make(chan struct{}, 1)

func handleServerShutdown(params json.RawMessage) (interface{}, error) {
	select {
	case shutdownRequests <- struct{}{}:
	default:
		// already requested
	}
	return okResponse, nil
}

func handleJSONRPC(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req JSONRPCRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendJSONRPCError(w, nil, ErrCodeParseError, errTitleParseError, errMsgParseError)
		return
	}

	if vErr := validateJSONRPCRequest(req); vErr != nil {
		sendJSONRPCError(w, req.ID, vErr.code, vErr.message, vErr.data)
		return
	}

	utils.Info("Request ID: %v, Method: %s, Params: %s", req.ID, req.Method, string(req.Params))

	handler, exists := GetMethodRegistry()[req.Method]
	if !exists {
		sendJSONRPCError(w, req.ID, ErrCodeMethodNotFound, errTitleMethodNotFnd, fmt.Sprintf("Method '%s' not found", req.Method))
		return
	}

	result, err := handler(req.Params)
	if err != nil {
		utils.Warn("Error executing method %s: %v", req.Method, err)
		code, title := errorCode(err)
		sendJSONRPCError(w, req.ID, code, title, err.Error())
		return
	}

	sendJSONRPCResponse(w, req.ID, result)
}

func sendJSONRPCResponse(w http.ResponseWriter, id interface{}, result interface{}) {
	response := JSONRPCResponse{
		JSONRPC: "2.0",
		Result:  result,
		ID:      id,
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(response)
}

func sendJSONRPCError(w http.ResponseWriter, id interface{}, code int, message string, data interface{}) {
	response := JSONRPCResponse{
		JSONRPC: "2.0",
		Error: map[string]interface{}{
			"code":    code,
			"message": message,
			"data":    data,
		},
		ID: id,
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(response)
}

func sendBanner(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(okResponse)
}
