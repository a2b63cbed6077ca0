package websocket

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/grandcat/zeroconf"
)

// MessageType represents the type of WebSocket message
type MessageType string

const (
	TypeInvoicePreview MessageType = "invoice_preview"
	TypeInvoiceClosed  MessageType = "invoice_closed"
	TypeHeartbeat      MessageType = "heartbeat"
	TypeWelcome        MessageType = "welcome"
)

// ClientType represents the type of connected client
type ClientType string

const (
	ClientDisplay ClientType = "display"
	ClientPOS     ClientType = "pos"
)

// Service type announced over mDNS so displays can find the till
const MDNSServiceType = "_bakerydisplay._tcp"

// Message represents a WebSocket message
type Message struct {
	Type      MessageType     `json:"type"`
	ClientID  string          `json:"client_id,omitempty"`
	Timestamp time.Time       `json:"timestamp"`
	Data      json.RawMessage `json:"data,omitempty"`
}

// Client represents a connected WebSocket client
type Client struct {
	ID          string
	Type        ClientType
	Connection  *websocket.Conn
	Send        chan []byte
	Server      *Server
	ConnectedAt time.Time
	RemoteAddr  string
}

// Server pushes the open invoice to customer displays on the local network
type Server struct {
	clients    map[string]*Client
	broadcast  chan []byte
	register   chan *Client
	unregister chan *Client
	done       chan struct{}
	upgrader   websocket.Upgrader
	mu         sync.RWMutex
	port       string
	announce   bool
	httpServer *http.Server
	lastSent   []byte
	startOnce  sync.Once
	stopOnce   sync.Once
	mdnsStop   chan struct{}
}

// NewServer creates a new display server listening on port (":8090" form)
func NewServer(port string, announce bool) *Server {
	return &Server{
		clients:    make(map[string]*Client),
		broadcast:  make(chan []byte, 16),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
		mdnsStop:   make(chan struct{}),
		port:       port,
		announce:   announce,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				// Displays connect from the local network
				return true
			},
		},
	}
}

// Handler returns the HTTP routes served by the display server
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWebSocket)
	mux.HandleFunc("/health", s.handleHealth)
	return mux
}

// Run starts the hub loop; Start calls it, tests may call it directly
func (s *Server) Run() {
	s.startOnce.Do(func() {
		go s.run()
	})
}

// Start starts the hub, the mDNS announcement and the HTTP listener.
// It blocks until the listener stops.
func (s *Server) Start() error {
	s.Run()

	s.mu.Lock()
	s.httpServer = &http.Server{
		Addr:              s.port,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	srv := s.httpServer
	s.mu.Unlock()

	if s.announce {
		go s.startMDNS()
	}

	log.Printf("Display server starting on port %s", s.port)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("display server failed: %w", err)
	}
	return nil
}

// startMDNS announces the display server via mDNS/Zeroconf
func (s *Server) startMDNS() {
	portStr := strings.TrimPrefix(s.port, ":")
	port, err := strconv.Atoi(portStr)
	if err != nil {
		log.Printf("mDNS: Invalid port format %s: %v", s.port, err)
		return
	}

	server, err := zeroconf.Register(
		"Bakery Invoice Display",
		MDNSServiceType,
		"local.",
		port,
		[]string{"version=1.0", "path=/ws?type=display"},
		nil,
	)
	if err != nil {
		log.Printf("mDNS: Failed to register service: %v", err)
		return
	}

	log.Printf("mDNS: Display server announced on %s.local", MDNSServiceType)

	<-s.mdnsStop
	server.Shutdown()
	log.Println("mDNS: Service announcement stopped")
}

// Stop shuts down the listener, the announcement and all client connections
func (s *Server) Stop() {
	s.stopOnce.Do(func() {
		close(s.mdnsStop)

		s.mu.RLock()
		srv := s.httpServer
		s.mu.RUnlock()
		if srv != nil {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := srv.Shutdown(ctx); err != nil {
				log.Printf("Display server shutdown error: %v", err)
			}
		}

		close(s.done)
	})
}

// run handles the main hub loop. Only this goroutine closes client Send channels.
func (s *Server) run() {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case client := <-s.register:
			s.mu.Lock()
			s.clients[client.ID] = client
			last := s.lastSent
			s.mu.Unlock()
			log.Printf("Client registered: %s (type: %s)", client.ID, client.Type)
			s.sendWelcome(client)
			if last != nil && client.Type == ClientDisplay {
				s.deliver(client, last)
			}

		case client := <-s.unregister:
			s.mu.Lock()
			if _, ok := s.clients[client.ID]; ok {
				delete(s.clients, client.ID)
				close(client.Send)
				log.Printf("Client unregistered: %s", client.ID)
			}
			s.mu.Unlock()

		case message := <-s.broadcast:
			s.mu.Lock()
			for id, client := range s.clients {
				if client.Type != ClientDisplay {
					continue
				}
				select {
				case client.Send <- message:
				default:
					// Client buffer is full, disconnect
					delete(s.clients, id)
					close(client.Send)
				}
			}
			s.mu.Unlock()

		case <-ticker.C:
			s.sendHeartbeat()

		case <-s.done:
			s.mu.Lock()
			for id, client := range s.clients {
				delete(s.clients, id)
				close(client.Send)
			}
			s.mu.Unlock()
			return
		}
	}
}

// handleWebSocket handles WebSocket connection upgrades
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	clientType := ClientType(r.URL.Query().Get("type"))
	if clientType == "" {
		clientType = ClientDisplay
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocket upgrade error: %v", err)
		return
	}

	client := &Client{
		ID:          generateClientID(),
		Type:        clientType,
		Connection:  conn,
		Send:        make(chan []byte, 256),
		Server:      s,
		ConnectedAt: time.Now(),
		RemoteAddr:  r.RemoteAddr,
	}

	select {
	case s.register <- client:
	case <-s.done:
		conn.Close()
		return
	}

	go client.writePump()
	go client.readPump()
}

// handleHealth handles health check endpoint
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	clientCount := len(s.clients)
	s.mu.RUnlock()

	response := map[string]interface{}{
		"status":  "healthy",
		"clients": clientCount,
		"time":    time.Now(),
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

// readPump handles reading messages from the client
func (c *Client) readPump() {
	defer func() {
		select {
		case c.Server.unregister <- c:
		case <-c.Server.done:
		}
		c.Connection.Close()
	}()

	c.Connection.SetReadDeadline(time.Now().Add(60 * time.Second))
	c.Connection.SetPongHandler(func(string) error {
		c.Connection.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	for {
		_, messageBytes, err := c.Connection.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("WebSocket error: %v", err)
			}
			break
		}

		var message Message
		if err := json.Unmarshal(messageBytes, &message); err != nil {
			log.Printf("Error parsing message: %v", err)
			continue
		}

		c.handleMessage(&message)
	}
}

// writePump handles writing messages to the client
func (c *Client) writePump() {
	ticker := time.NewTicker(54 * time.Second)
	defer func() {
		ticker.Stop()
		c.Connection.Close()
	}()

	for {
		select {
		case message, ok := <-c.Send:
			c.Connection.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if !ok {
				c.Connection.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.Connection.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			c.Connection.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := c.Connection.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// handleMessage handles incoming messages from clients. Displays only send heartbeats.
func (c *Client) handleMessage(message *Message) {
	switch message.Type {
	case TypeHeartbeat:
		c.sendMessage(Message{
			Type:      TypeHeartbeat,
			Timestamp: time.Now(),
			Data:      json.RawMessage(`{"status":"alive"}`),
		})
	default:
		log.Printf("Unknown message type %s from client %s", message.Type, c.ID)
	}
}

// sendMessage sends a message to the client without blocking. Send is
// closed by the hub loop, so membership is checked under the lock.
func (c *Client) sendMessage(message Message) error {
	data, err := json.Marshal(message)
	if err != nil {
		return err
	}

	c.Server.mu.RLock()
	defer c.Server.mu.RUnlock()
	if _, ok := c.Server.clients[c.ID]; !ok {
		return fmt.Errorf("client %s is not registered", c.ID)
	}
	return c.Server.deliver(c, data)
}

// deliver queues data for a client without blocking
func (s *Server) deliver(client *Client, data []byte) error {
	select {
	case client.Send <- data:
		return nil
	default:
		return fmt.Errorf("client send channel is full")
	}
}

// BroadcastInvoice sends the invoice preview to every display and remembers
// it for displays that connect later
func (s *Server) BroadcastInvoice(preview interface{}) {
	s.publish(TypeInvoicePreview, preview, true)
}

// BroadcastInvoiceClosed tells displays the preview was dismissed
func (s *Server) BroadcastInvoiceClosed() {
	s.publish(TypeInvoiceClosed, nil, false)
}

func (s *Server) publish(msgType MessageType, payload interface{}, keep bool) {
	message := Message{Type: msgType, Timestamp: time.Now()}
	if payload != nil {
		dataBytes, err := json.Marshal(payload)
		if err != nil {
			log.Printf("Error marshaling %s payload: %v", msgType, err)
			return
		}
		message.Data = dataBytes
	}

	data, err := json.Marshal(message)
	if err != nil {
		log.Printf("Error marshaling message: %v", err)
		return
	}

	s.mu.Lock()
	if keep {
		s.lastSent = data
	} else {
		s.lastSent = nil
	}
	s.mu.Unlock()

	select {
	case s.broadcast <- data:
	case <-s.done:
	}
}

// sendHeartbeat sends heartbeat to all clients
func (s *Server) sendHeartbeat() {
	data, _ := json.Marshal(Message{
		Type:      TypeHeartbeat,
		Timestamp: time.Now(),
		Data:      json.RawMessage(`{"ping":"pong"}`),
	})

	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, client := range s.clients {
		if err := s.deliver(client, data); err != nil {
			log.Printf("Failed to send heartbeat to client %s", client.ID)
		}
	}
}

// sendWelcome tells a new client its id
func (s *Server) sendWelcome(client *Client) {
	data, _ := json.Marshal(map[string]interface{}{
		"client_id": client.ID,
		"type":      client.Type,
	})

	client.sendMessage(Message{
		Type:      TypeWelcome,
		ClientID:  client.ID,
		Timestamp: time.Now(),
		Data:      data,
	})
}

// GetServerStatus returns current server status
func (s *Server) GetServerStatus() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	displays := 0
	for _, client := range s.clients {
		if client.Type == ClientDisplay {
			displays++
		}
	}

	return map[string]interface{}{
		"running":         true,
		"port":            s.port,
		"total_clients":   len(s.clients),
		"display_clients": displays,
	}
}

// GetPort returns the server port
func (s *Server) GetPort() string {
	return s.port
}

func generateClientID() string {
	now := time.Now()
	return fmt.Sprintf("%d-%d", now.Unix(), now.Nanosecond())
}
