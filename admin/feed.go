package admin

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"sync"

	"paperpen/middleware"
	"paperpen/models"
	"paperpen/mq"

	"github.com/gorilla/websocket"
	"github.com/julienschmidt/httprouter"
)

// Hub fans order events out to every connected admin dashboard.
type Hub struct {
	clients    map[*client]bool
	register   chan *client
	unregister chan *client
	broadcast  chan []byte
	done       chan struct{}
	once       sync.Once
}

type client struct {
	conn *websocket.Conn
	send chan []byte
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*client]bool),
		register:   make(chan *client),
		unregister: make(chan *client),
		broadcast:  make(chan []byte),
		done:       make(chan struct{}),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case <-h.done:
			for c := range h.clients {
				close(c.send)
				delete(h.clients, c)
			}
			return

		case c := <-h.register:
			h.clients[c] = true

		case c := <-h.unregister:
			if h.clients[c] {
				delete(h.clients, c)
				close(c.send)
			}

		case data := <-h.broadcast:
			for c := range h.clients {
				select {
				case c.send <- data:
				default:
					close(c.send)
					delete(h.clients, c)
				}
			}
		}
	}
}

func (h *Hub) Stop() {
	h.once.Do(func() { close(h.done) })
}

// StartOrderFeed pumps the Redis order-event channel into the hub until
// ctx is cancelled.
func StartOrderFeed(ctx context.Context, hub *Hub) {
	events := mq.Subscribe(ctx)
	go func() {
		for ev := range events {
			data, err := json.Marshal(ev)
			if err != nil {
				log.Println("order feed marshal error:", err)
				continue
			}
			select {
			case hub.broadcast <- data:
			case <-hub.done:
				return
			}
		}
	}()
}

var upgrader = websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}

// OrderFeed upgrades an admin dashboard to a websocket that receives live
// order events. Browsers cannot set an Authorization header on a websocket,
// so the token rides in the token query parameter and the admin role is
// checked against the profile before upgrading.
func OrderFeed(hub *Hub) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		claims, err := middleware.ValidateRawJWT(r.URL.Query().Get("token"))
		if err != nil {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		if middleware.RoleFromDB(r.Context(), claims.UserID) != models.RoleAdmin {
			http.Error(w, "Forbidden", http.StatusForbidden)
			return
		}

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Println("order feed upgrade:", err)
			return
		}

		c := &client{conn: conn, send: make(chan []byte, 64)}
		hub.register <- c
		go writePump(c)
		go readPump(c, hub)
	}
}

func writePump(c *client) {
	defer c.conn.Close()
	for msg := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			break
		}
	}
}

// readPump only watches for the client going away; the feed is one-way.
func readPump(c *client, hub *Hub) {
	defer func() {
		hub.unregister <- c
		c.conn.Close()
	}()

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			break
		}
	}
}
