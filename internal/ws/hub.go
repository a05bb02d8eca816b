package ws

import (
	"encoding/json"
	"sync"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

type WSMessage struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

// Event types broadcast over a session's channel.
const (
	EventQuestionAsked    = "question_asked"
	EventAnswerEvaluated  = "answer_evaluated"
	EventSessionPaused    = "session_paused"
	EventSessionResumed   = "session_resumed"
	EventSessionCompleted = "session_completed"
)

// Hub fans interview progress events out to websocket observers, keyed by
// session id. It is a pure observer of the engine: it never mutates sessions.
type Hub struct {
	mu       sync.RWMutex
	sessions map[string]map[*websocket.Conn]bool
	logger   *zap.Logger
}

func NewHub(logger *zap.Logger) *Hub {
	return &Hub{
		sessions: make(map[string]map[*websocket.Conn]bool),
		logger:   logger,
	}
}

func (h *Hub) AddConnection(sessionID string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.sessions[sessionID] == nil {
		h.sessions[sessionID] = make(map[*websocket.Conn]bool)
	}
	h.sessions[sessionID][conn] = true
	h.logger.Debug("ws client connected",
		zap.String("session_id", sessionID),
		zap.Int("total", len(h.sessions[sessionID])))
}

func (h *Hub) RemoveConnection(sessionID string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if conns, ok := h.sessions[sessionID]; ok {
		delete(conns, conn)
		conn.Close()
		if len(conns) == 0 {
			delete(h.sessions, sessionID)
		}
		h.logger.Debug("ws client disconnected", zap.String("session_id", sessionID))
	}
}

func (h *Hub) Broadcast(sessionID string, message WSMessage) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	conns, ok := h.sessions[sessionID]
	if !ok {
		return
	}

	data, err := json.Marshal(message)
	if err != nil {
		h.logger.Warn("ws marshal error", zap.Error(err))
		return
	}

	for conn := range conns {
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			h.logger.Warn("ws write error", zap.Error(err))
			conn.Close()
			delete(conns, conn)
		}
	}
}
