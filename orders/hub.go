package orders

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"

	"feira/db"
	"feira/middleware"
	"feira/models"
	"feira/mq"

	"github.com/gorilla/websocket"
	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
)

// Client is one producer dashboard connection. Room is the producer ID.
type Client struct {
	Conn *websocket.Conn
	Send chan []byte
	Room string
}

type broadcastMsg struct {
	Room string
	Data []byte
}

// Hub fans order events out to connected producer dashboards, one room per
// producer.
type Hub struct {
	rooms      map[string]map[*Client]bool
	register   chan *Client
	unregister chan *Client
	broadcast  chan broadcastMsg
	done       chan struct{}
	mu         sync.Mutex
}

func NewHub() *Hub {
	return &Hub{
		rooms:      make(map[string]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan broadcastMsg),
		done:       make(chan struct{}),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case <-h.done:
			h.mu.Lock()
			for room, conns := range h.rooms {
				for c := range conns {
					close(c.Send)
				}
				delete(h.rooms, room)
			}
			h.mu.Unlock()
			return

		case c := <-h.register:
			h.mu.Lock()
			if h.rooms[c.Room] == nil {
				h.rooms[c.Room] = make(map[*Client]bool)
			}
			h.rooms[c.Room][c] = true
			h.mu.Unlock()

		case c := <-h.unregister:
			h.mu.Lock()
			if conns := h.rooms[c.Room]; conns != nil && conns[c] {
				delete(conns, c)
				close(c.Send)
			}
			h.mu.Unlock()

		case m := <-h.broadcast:
			h.mu.Lock()
			for c := range h.rooms[m.Room] {
				select {
				case c.Send <- m.Data:
				default:
					close(c.Send)
					delete(h.rooms[m.Room], c)
				}
			}
			h.mu.Unlock()
		}
	}
}

func (h *Hub) Stop() {
	close(h.done)
}

// Publish pushes an order event to every dashboard watching that producer.
func (h *Hub) Publish(event mq.OrderEvent) {
	data, err := json.Marshal(event)
	if err != nil {
		log.Printf("hub: failed to marshal order event: %v", err)
		return
	}
	select {
	case h.broadcast <- broadcastMsg{Room: event.ProducerID, Data: data}:
	case <-h.done:
	}
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true }, // lock down in production
}

// WebSocketHandler subscribes the connection to one producer's order events.
func WebSocketHandler(hub *Hub) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		room := ps.ByName("producerid")
		if room == "" {
			http.Error(w, "Missing producer id", http.StatusBadRequest)
			return
		}

		// browser WebSocket clients cannot send an Authorization header,
		// the token rides in the query string instead
		token := r.URL.Query().Get("token")
		claims, err := middleware.ValidateJWT("Bearer " + token)
		if err != nil {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		// only the owning producer may watch its order stream
		var producer models.Producer
		if err := db.ProducersCollection.FindOne(r.Context(),
			bson.M{"producerid": room, "userid": claims.UserID}).Decode(&producer); err != nil {
			http.Error(w, "Forbidden", http.StatusForbidden)
			return
		}

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Println("ws upgrade error:", err)
			return
		}

		client := &Client{Conn: conn, Send: make(chan []byte, 16), Room: room}
		hub.register <- client

		go func() {
			defer func() {
				hub.unregister <- client
				conn.Close()
			}()
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					return
				}
			}
		}()

		go func() {
			for msg := range client.Send {
				if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
					return
				}
			}
		}()
	}
}
