package realtime

import (
	"context"
	"encoding/json"
	"net/http"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/rafabene/avantpro-admin/internal/domain/ports"
	"github.com/rafabene/avantpro-admin/internal/domain/valueobjects"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	sendBufferSize = 32
)

// AbilitySource devolve as habilidades atuais de um usuário
type AbilitySource func(ctx context.Context, userID uint) ([]string, error)

// Hub distribui eventos administrativos para as telas abertas via websocket.
// Cada cliente só recebe eventos de recursos que pode listar
// ("user.updated" exige "user.index"). As habilidades são consultadas a cada
// publicação, então um role revogado corta os eventos sem reconectar.
type Hub struct {
	mu        sync.RWMutex
	clients   map[*client]struct{}
	upgrader  websocket.Upgrader
	abilities AbilitySource
	logger    ports.Logger
}

type client struct {
	conn   *websocket.Conn
	send   chan []byte
	userID uint
}

// NewHub cria um hub. checkOrigin nil aceita apenas a mesma origem.
func NewHub(abilities AbilitySource, logger ports.Logger, checkOrigin func(r *http.Request) bool) *Hub {
	return &Hub{
		abilities: abilities,
		clients:   make(map[*client]struct{}),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     checkOrigin,
		},
		logger: logger,
	}
}

var _ ports.EventPublisher = (*Hub)(nil)

// Publish envia o evento sem bloquear; clientes lentos perdem eventos
func (h *Hub) Publish(ctx context.Context, event ports.Event) {
	payload, err := json.Marshal(event)
	if err != nil {
		h.logger.Error("failed to encode event", "type", event.Type, "error", err)
		return
	}

	allowed := h.allowedUsers(ctx, requiredAbility(event.Type))
	if len(allowed) == 0 {
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for c := range h.clients {
		if _, ok := allowed[c.userID]; !ok {
			continue
		}
		select {
		case c.send <- payload:
		default:
			h.logger.Warn("dropping event for slow websocket client", "type", event.Type)
		}
	}
}

// allowedUsers consulta uma vez por usuário conectado quem possui required.
// A consulta roda fora do lock; clientes que chegarem no meio esperam o
// próximo evento.
func (h *Hub) allowedUsers(ctx context.Context, required string) map[uint]struct{} {
	h.mu.RLock()
	users := make(map[uint]struct{}, len(h.clients))
	for c := range h.clients {
		users[c.userID] = struct{}{}
	}
	h.mu.RUnlock()

	allowed := make(map[uint]struct{}, len(users))
	for userID := range users {
		abilities, err := h.abilities(ctx, userID)
		if err != nil {
			h.logger.Warn("could not load abilities for websocket client", "user_id", userID, "error", err)
			continue
		}
		if slices.Contains(abilities, required) {
			allowed[userID] = struct{}{}
		}
	}
	return allowed
}

// Serve faz o upgrade da conexão e bloqueia até o cliente desconectar
func (h *Hub) Serve(w http.ResponseWriter, r *http.Request, userID uint) error {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return err
	}

	c := &client{
		conn:   conn,
		send:   make(chan []byte, sendBufferSize),
		userID: userID,
	}

	h.register(c)
	done := make(chan struct{})
	go h.writeLoop(c, done)

	h.readLoop(c)

	h.unregister(c)
	<-done
	return nil
}

// Clients retorna quantos clientes estão conectados
func (h *Hub) Clients() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Close desconecta todos os clientes
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for c := range h.clients {
		_ = c.conn.Close()
	}
}

func (h *Hub) register(c *client) {
	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()
}

func (h *Hub) unregister(c *client) {
	h.mu.Lock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
	h.mu.Unlock()
}

// readLoop só existe para processar pongs e detectar desconexão
func (h *Hub) readLoop(c *client) {
	c.conn.SetReadLimit(512)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *Hub) writeLoop(c *client, done chan<- struct{}) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
		close(done)
	}()

	for {
		select {
		case payload, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// OriginChecker aceita as origens da lista separada por vírgula. "*" aceita
// qualquer origem e lista vazia devolve nil (só a mesma origem).
func OriginChecker(allowed string) func(r *http.Request) bool {
	origins := map[string]struct{}{}
	for _, origin := range strings.Split(allowed, ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			origins[origin] = struct{}{}
		}
	}

	if len(origins) == 0 {
		return nil
	}
	if _, ok := origins["*"]; ok {
		return func(*http.Request) bool { return true }
	}

	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		_, ok := origins[origin]
		return ok
	}
}

// requiredAbility mapeia "user.created" para "user.index"
func requiredAbility(eventType string) string {
	if ability, err := valueobjects.NewAbility(eventType); err == nil {
		return ability.Resource() + ".index"
	}
	resource, _, _ := strings.Cut(eventType, ".")
	return resource + ".index"
}
