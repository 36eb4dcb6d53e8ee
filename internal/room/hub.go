package room

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// Envelope das mensagens recebidas do cliente.
// Type: join-room | quest-accepted | quest-completed | quest-assigned | quest-generated
type clientMsg struct {
	Type       string  `json:"type"`
	RoomID     string  `json:"roomId"`
	UserID     string  `json:"userId"`
	UserName   string  `json:"userName,omitempty"`
	QuestID    string  `json:"questId,omitempty"`
	AssignedTo string  `json:"assignedTo,omitempty"`
	Quests     []Quest `json:"quests,omitempty"`
}

// wsConn serializa escritas concorrentes na mesma conexão
// (broadcasts partem das goroutines de outras conexões)
type wsConn struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

func (c *wsConn) WriteJSON(v any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	_ = c.conn.SetWriteDeadline(time.Now().Add(2 * time.Second))
	return c.conn.WriteJSON(v)
}

func (c *wsConn) Close() error { return c.conn.Close() }

// Hub faz o upgrade das conexões WebSocket e despacha mensagens por tipo
// pro Registry. Um loop de leitura por conexão.
type Hub struct {
	log      *zap.Logger
	upgrader websocket.Upgrader
	registry *Registry
}

// NewHub cria o hub com política customizada de origem (CORS)
func NewHub(log *zap.Logger, registry *Registry, allowOrigin func(r *http.Request) bool) *Hub {
	return &Hub{
		log:      log,
		upgrader: websocket.Upgrader{CheckOrigin: allowOrigin},
		registry: registry,
	}
}

// HandleWS gerencia o ciclo de vida de uma conexão WebSocket.
// Mensagens malformadas ou de tipo desconhecido são descartadas sem fechar a
// conexão; a saída do loop dispara o teardown da associação com a sala
// exatamente uma vez (Leave é idempotente se o broadcast já tiver podado).
func (h *Hub) HandleWS(w http.ResponseWriter, r *http.Request) {
	raw, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	conn := &wsConn{conn: raw}
	wsConnections.Inc()

	var roomID, userID string
	defer func() {
		if roomID != "" {
			h.registry.Leave(conn, roomID, userID)
		}
		_ = raw.Close()
		wsConnections.Dec()
	}()

	for {
		_, data, err := raw.ReadMessage()
		if err != nil {
			return
		}

		var msg clientMsg
		if err := json.Unmarshal(data, &msg); err != nil {
			continue
		}

		switch msg.Type {
		case "join-room":
			roomID, userID = msg.RoomID, msg.UserID
			h.registry.Join(conn, msg.RoomID, msg.UserID, msg.UserName)
		case "quest-accepted":
			h.registry.AcceptQuest(msg.RoomID, msg.QuestID, msg.UserID)
		case "quest-completed":
			h.registry.CompleteQuest(msg.RoomID, msg.QuestID, msg.UserID)
		case "quest-assigned":
			h.registry.AssignQuest(msg.RoomID, msg.QuestID, msg.AssignedTo, msg.UserID)
		case "quest-generated":
			h.registry.AddQuests(msg.RoomID, msg.Quests)
		default:
			// tipo desconhecido: ignora
		}
	}
}
