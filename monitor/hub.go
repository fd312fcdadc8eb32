package monitor

import (
	"time"

	"github.com/gorilla/websocket"
)

const writeTimeout = 2 * time.Second

// Message is the websocket envelope
type Message struct {
	Type string `json:"type"`
	Data any    `json:"data"`
	Time int64  `json:"time"` // Unix seconds
}

// Message types
const (
	MsgStatus     = "status"
	MsgGeneration = "generation"
	MsgBest       = "best"
)

// hub owns every client connection; only its goroutine writes to them
type hub struct {
	clients    map[*websocket.Conn]bool
	broadcast  chan Message
	register   chan *websocket.Conn
	unregister chan *websocket.Conn
	stop       chan struct{}
	done       chan struct{}

	// greeting is sent to each client as it registers
	greeting func() Message
}

func newHub(greeting func() Message) *hub {
	return &hub{
		clients:    make(map[*websocket.Conn]bool),
		broadcast:  make(chan Message, 256),
		register:   make(chan *websocket.Conn),
		unregister: make(chan *websocket.Conn),
		stop:       make(chan struct{}),
		done:       make(chan struct{}),
		greeting:   greeting,
	}
}

func (h *hub) run() {
	defer close(h.done)
	for {
		select {
		case c := <-h.register:
			if h.write(c, h.greeting()) {
				h.clients[c] = true
			}

		case c := <-h.unregister:
			delete(h.clients, c)

		case msg := <-h.broadcast:
			h.fanout(msg)

		case <-h.stop:
			// Flush what was queued before stop, the final status included
			for flushing := true; flushing; {
				select {
				case msg := <-h.broadcast:
					h.fanout(msg)
				default:
					flushing = false
				}
			}
			for c := range h.clients {
				_ = c.WriteControl(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseNormalClosure, "run finished"),
					time.Now().Add(writeTimeout))
				c.Close()
			}
			return
		}
	}
}

// fanout writes msg to every client, dropping those that fail
func (h *hub) fanout(msg Message) {
	for c := range h.clients {
		if !h.write(c, msg) {
			// The reader loop notices the closed connection and unregisters
			delete(h.clients, c)
			c.Close()
		}
	}
}

func (h *hub) write(c *websocket.Conn, msg Message) bool {
	_ = c.SetWriteDeadline(time.Now().Add(writeTimeout))
	return c.WriteJSON(msg) == nil
}

// send queues msg for every client, dropping it when the queue is full
func (h *hub) send(msgType string, data any) {
	msg := Message{Type: msgType, Data: data, Time: time.Now().Unix()}
	select {
	case h.broadcast <- msg:
	default:
	}
}

// attach registers c and blocks until its connection closes or the hub stops
func (h *hub) attach(c *websocket.Conn) {
	select {
	case h.register <- c:
	case <-h.stop:
		c.Close()
		return
	}

	// Drain client frames; only close and control frames matter
	for {
		if _, _, err := c.ReadMessage(); err != nil {
			break
		}
	}

	select {
	case h.unregister <- c:
	case <-h.stop:
	}
	c.Close()
}

func (h *hub) close() {
	select {
	case <-h.stop:
	default:
		close(h.stop)
	}
	<-h.done
}
