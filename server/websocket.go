package server

import (
	"encoding/json"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/mobile-next/bubble/bubble"
	"github.com/mobile-next/bubble/commands"
	"github.com/mobile-next/bubble/types"
	"github.com/mobile-next/bubble/utils"
)

const (
	wsWriteWait  = 10 * time.Second
	wsPongWait   = 60 * time.Second
	wsPingPeriod = (wsPongWait * 9) / 10
)

// notification methods pushed to WebSocket clients for the sessions they start
const (
	notifyPosition = "bubble.position"
	notifyGesture  = "bubble.gesture"
	notifyClosed   = "bubble.closed"
)

type wsConnection struct {
	conn    *websocket.Conn
	writeMu sync.Mutex

	sessionsMu sync.Mutex
	sessions   []string
	closed     bool
}

// PositionNotification is the params of a bubble.position notification
type PositionNotification struct {
	SessionID string         `json:"sessionId"`
	Position  types.Position `json:"position"`
}

// GestureNotification is the params of a bubble.gesture notification
type GestureNotification struct {
	SessionID string        `json:"sessionId"`
	Gesture   types.Gesture `json:"gesture"`
}

func newUpgrader(enableCORS bool) *websocket.Upgrader {
	upgrader := websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
	}

	if enableCORS {
		upgrader.CheckOrigin = func(r *http.Request) bool {
			return true
		}
	} else {
		upgrader.CheckOrigin = isSameOrigin
	}

	return &upgrader
}

// NewWebSocketHandler returns a handler speaking JSON-RPC over WebSocket
func NewWebSocketHandler(enableCORS bool) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		handleWebSocket(w, r, enableCORS)
	})
}

func handleWebSocket(w http.ResponseWriter, r *http.Request, enableCORS bool) {
	conn, err := newUpgrader(enableCORS).Upgrade(w, r, nil)
	if err != nil {
		utils.Verbose("WebSocket upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	wsConn := &wsConnection{conn: conn}
	defer wsConn.closeSessions()

	_ = conn.SetReadDeadline(time.Now().Add(wsPongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(wsPongWait))
	})

	done := make(chan struct{})
	defer close(done)
	go wsConn.pingLoop(done)

	for {
		messageType, message, err := conn.ReadMessage()
		if err != nil {
			// connection closed or error
			utils.Verbose("WebSocket connection closed: %v", err)
			break
		}
		_ = conn.SetReadDeadline(time.Now().Add(wsPongWait))

		if messageType != websocket.TextMessage {
			_ = wsConn.sendError(nil, ErrCodeInvalidRequest, errTitleInvalidReq, errMsgTextOnly)
			continue
		}

		handleWSMessage(wsConn, message)
	}
}

func (wsc *wsConnection) pingLoop(done <-chan struct{}) {
	ticker := time.NewTicker(wsPingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			wsc.writeMu.Lock()
			err := wsc.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(wsWriteWait))
			wsc.writeMu.Unlock()
			if err != nil {
				return
			}
		}
	}
}

func isSameOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}

	originURL, err := url.Parse(origin)
	if err != nil {
		return false
	}

	return originURL.Host == r.Host
}

func handleWSMessage(wsConn *wsConnection, message []byte) {
	var req JSONRPCRequest
	if err := json.Unmarshal(message, &req); err != nil {
		_ = wsConn.sendError(nil, ErrCodeParseError, errTitleParseError, errMsgParseError)
		return
	}

	if vErr := validateJSONRPCRequest(req); vErr != nil {
		_ = wsConn.sendError(req.ID, vErr.code, vErr.message, vErr.data)
		return
	}

	utils.Info("WebSocket Request ID: %v, Method: %s, Params: %s", req.ID, req.Method, string(req.Params))

	handleWSMethodCall(wsConn, req)
}

func handleWSMethodCall(wsConn *wsConnection, req JSONRPCRequest) {
	var result interface{}
	var err error

	// sessions started over WebSocket push their moves and gestures back
	if req.Method == "bubble_start" {
		result, err = startBubble(req.Params, wsConn.subscribe)
	} else {
		handler, exists := GetMethodRegistry()[req.Method]
		if !exists {
			_ = wsConn.sendError(req.ID, ErrCodeMethodNotFound, errTitleMethodNotFnd, req.Method+" not found")
			return
		}
		result, err = handler(req.Params)
	}

	if err != nil {
		utils.Warn("Error executing method %s: %v", req.Method, err)
		code, title := errorCode(err)
		_ = wsConn.sendError(req.ID, code, title, err.Error())
		return
	}

	_ = wsConn.sendResponse(req.ID, result)
}

// subscribe forwards a session's events to this connection and ties the
// session's lifetime to it.
func (wsc *wsConnection) subscribe(id string, session *bubble.Session) {
	wsc.sessionsMu.Lock()
	if wsc.closed {
		wsc.sessionsMu.Unlock()
		_ = session.Close()
		return
	}
	wsc.sessions = append(wsc.sessions, id)
	wsc.sessionsMu.Unlock()

	session.OnMove(func(pos types.Position) {
		_ = wsc.notify(notifyPosition, PositionNotification{SessionID: id, Position: pos})
	})
	session.OnGesture(func(g types.Gesture) {
		_ = wsc.notify(notifyGesture, GestureNotification{SessionID: id, Gesture: g})
	})
	session.OnClose("websocket", func() error {
		_ = wsc.notify(notifyClosed, SessionParams{SessionID: id})
		return nil
	})
}

// closeSessions stops the sessions this connection started
func (wsc *wsConnection) closeSessions() {
	wsc.sessionsMu.Lock()
	wsc.closed = true
	ids := wsc.sessions
	wsc.sessions = nil
	wsc.sessionsMu.Unlock()

	for _, id := range ids {
		response := commands.BubbleStopCommand(commands.BubbleSessionRequest{SessionID: id})
		if response.Status == "error" {
			utils.Verbose("session %s already gone: %s", id, response.Error)
		}
	}
}

func (wsc *wsConnection) sendResponse(id interface{}, result interface{}) error {
	response := JSONRPCResponse{
		JSONRPC: "2.0",
		Result:  result,
		ID:      id,
	}
	return wsc.sendJSON(response)
}

func (wsc *wsConnection) sendError(id interface{}, code int, message string, data interface{}) error {
	response := JSONRPCResponse{
		JSONRPC: "2.0",
		Error: map[string]interface{}{
			"code":    code,
			"message": message,
			"data":    data,
		},
		ID: id,
	}
	return wsc.sendJSON(response)
}

func (wsc *wsConnection) notify(method string, params interface{}) error {
	return wsc.sendJSON(JSONRPCNotification{
		JSONRPC: "2.0",
		Method:  method,
		Params:  params,
	})
}

func (wsc *wsConnection) sendJSON(v interface{}) error {
	wsc.writeMu.Lock()
	defer wsc.writeMu.Unlock()
	_ = wsc.conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
	return wsc.conn.WriteJSON(v)
}
