package server

import (
	"encoding/json"
	stderrors "errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/vango-dev/newtab/internal/errors"
	"github.com/vango-dev/newtab/pkg/actions"
	"github.com/vango-dev/newtab/pkg/middleware"
)

// ClientMessage is sent by the page for every click.
type ClientMessage struct {
	HID   string `json:"hid"`
	Event string `json:"event"`
}

// ActionsReply lists the actions a click dispatched.
type ActionsReply struct {
	Actions []actions.Action `json:"actions"`
}

// ErrorReply reports a message the server could not act on.
type ErrorReply struct {
	Error string `json:"error"`
}

// Error replies.
const (
	replyInvalidMessage   = "invalid message"
	replyUnsupportedEvent = "unsupported event"
	replyUnknownTarget    = "unknown target"
	replyInternal         = "internal error"
)

// handleWebSocket serves the click channel of one view.
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	logger := s.logger.With("conn", uuid.NewString())

	v, err := s.views.get(r.URL.Query().Get("view"))
	if err != nil {
		logger.Warn("socket for unknown view", "view", r.URL.Query().Get("view"))
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// The upgrader has already written the HTTP error.
		logger.Warn("websocket upgrade failed", "error", errors.New("E301").Wrap(err))
		middleware.RecordWebSocketError("upgrade")
		return
	}
	defer conn.Close()

	middleware.RecordConnectionOpen()
	defer middleware.RecordConnectionClose()
	logger.Debug("connection opened", "view", v.id)

	conn.SetReadLimit(s.config.MaxMessageSize)
	for {
		conn.SetReadDeadline(time.Now().Add(s.config.SocketReadTimeout))

		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err,
				websocket.CloseGoingAway,
				websocket.CloseNormalClosure) {
				logger.Warn("read error", "error", err)
				middleware.RecordWebSocketError("read")
			}
			logger.Debug("connection closed", "view", v.id)
			return
		}

		reply := s.handleMessage(r, v, data, logger)

		conn.SetWriteDeadline(time.Now().Add(s.config.WriteTimeout))
		if err := conn.WriteJSON(reply); err != nil {
			logger.Warn("write error", "error", err)
			middleware.RecordWebSocketError("write")
			return
		}
	}
}

func (s *Server) handleMessage(r *http.Request, v *view, data []byte, logger *slog.Logger) any {
	var msg ClientMessage
	if err := json.Unmarshal(data, &msg); err != nil || msg.HID == "" {
		logger.Warn("malformed client message", "error", errors.New("E302").Wrap(err), "size", len(data))
		return ErrorReply{Error: replyInvalidMessage}
	}
	if msg.Event != "click" {
		logger.Warn("unsupported event", "event", msg.Event, "hid", msg.HID)
		return ErrorReply{Error: replyUnsupportedEvent}
	}

	acts, err := v.click(r.Context(), msg.HID)
	switch {
	case stderrors.Is(err, errUnknownTarget):
		logger.Warn("click on unknown target", "error", errors.New("E303"), "hid", msg.HID)
		return ErrorReply{Error: replyUnknownTarget}
	case err != nil:
		logger.Warn("click failed", "error", err, "hid", msg.HID)
		return ErrorReply{Error: replyInternal}
	}
	if acts == nil {
		acts = []actions.Action{}
	}
	return ActionsReply{Actions: acts}
}
