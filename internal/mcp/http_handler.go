package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// NewHTTPHandler creates a simple HTTP handler for JSON-RPC requests.
// The streamable MCP handler is the primary HTTP surface; this plain POST
// endpoint serves in-process harnesses and scripted clients. Requests are
// forwarded over a single in-process client session that is connected and
// initialized once, so callers do not run the handshake themselves.
func NewHTTPHandler(server *sdkmcp.Server, logger *slog.Logger) http.Handler {
	return &httpHandler{
		server: server,
		logger: logger,
	}
}

type httpHandler struct {
	server *sdkmcp.Server
	logger *slog.Logger

	mu      sync.Mutex
	session *sdkmcp.ClientSession
}

type jsonrpcRequest struct {
	JSONRPC string          `json:"jsonrpc"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
	ID      any             `json:"id,omitempty"`
}

type jsonrpcResponse struct {
	JSONRPC string        `json:"jsonrpc"`
	Result  any           `json:"result,omitempty"`
	Error   *jsonrpcError `json:"error,omitempty"`
	ID      any           `json:"id,omitempty"`
}

type jsonrpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// clientSession connects the in-process client on first use. The session is
// connected on the background context so it outlives the request that
// created it.
func (h *httpHandler) clientSession() (*sdkmcp.ClientSession, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.session != nil {
		return h.session, nil
	}

	ctx := context.Background()
	serverTransport, clientTransport := sdkmcp.NewInMemoryTransports()

	if _, err := h.server.Connect(ctx, serverTransport, nil); err != nil {
		return nil, fmt.Errorf("connecting server side: %w", err)
	}

	client := sdkmcp.NewClient(&sdkmcp.Implementation{
		Name:    "innova-http-bridge",
		Version: "0.1.0",
	}, nil)
	session, err := client.Connect(ctx, clientTransport, nil)
	if err != nil {
		return nil, fmt.Errorf("connecting client side: %w", err)
	}

	h.session = session
	return session, nil
}

func (h *httpHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		h.writeError(w, -32700, "Parse error", nil, nil)
		return
	}

	var req jsonrpcRequest
	if err := json.Unmarshal(body, &req); err != nil {
		h.writeError(w, -32700, "Parse error", nil, nil)
		return
	}

	// Notifications carry no response.
	if strings.HasPrefix(req.Method, "notifications/") {
		w.WriteHeader(http.StatusAccepted)
		return
	}

	session, err := h.clientSession()
	if err != nil {
		if h.logger != nil {
			h.logger.Error("bridge session setup failed", "error", err)
		}
		h.writeError(w, -32603, fmt.Sprintf("Internal error: %v", err), nil, req.ID)
		return
	}

	result, rpcErr := h.dispatch(r.Context(), session, req)
	if rpcErr != nil {
		h.writeError(w, rpcErr.Code, rpcErr.Message, rpcErr.Data, req.ID)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(jsonrpcResponse{
		JSONRPC: "2.0",
		Result:  result,
		ID:      req.ID,
	})
}

func (h *httpHandler) dispatch(ctx context.Context, session *sdkmcp.ClientSession, req jsonrpcRequest) (any, *jsonrpcError) {
	switch req.Method {
	case "initialize":
		// The bridge session already ran the handshake; answer from it.
		return session.InitializeResult(), nil

	case "tools/list":
		result, err := session.ListTools(ctx, nil)
		if err != nil {
			return nil, &jsonrpcError{Code: -32603, Message: err.Error()}
		}
		return result, nil

	case "tools/call":
		var params struct {
			Name      string          `json:"name"`
			Arguments json.RawMessage `json:"arguments,omitempty"`
		}
		if len(req.Params) > 0 {
			if err := json.Unmarshal(req.Params, &params); err != nil {
				return nil, &jsonrpcError{Code: -32602, Message: fmt.Sprintf("Invalid params: %v", err)}
			}
		}
		result, err := session.CallTool(ctx, &sdkmcp.CallToolParams{
			Name:      params.Name,
			Arguments: params.Arguments,
		})
		if err != nil {
			return nil, &jsonrpcError{Code: -32603, Message: err.Error()}
		}
		return result, nil

	default:
		return nil, &jsonrpcError{Code: -32601, Message: fmt.Sprintf("Method not found: %s", req.Method)}
	}
}

func (h *httpHandler) writeError(w http.ResponseWriter, code int, message string, data any, id any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK) // JSON-RPC errors are still 200 OK
	json.NewEncoder(w).Encode(jsonrpcResponse{
		JSONRPC: "2.0",
		Error: &jsonrpcError{
			Code:    code,
			Message: message,
			Data:    data,
		},
		ID: id,
	})
}
