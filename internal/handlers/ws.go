package handlers

import (
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rolodex-dev/rolodex/internal/types"
)

var (
	contactClients   = make(map[uint]map[*websocket.Conn]bool)
	contactClientsMu sync.RWMutex
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
)

// BroadcastRefresh tells every client watching a contact to re-fetch the
// named resource ("notes" or "tasks") after a confirmed mutation.
func BroadcastRefresh(contactID uint, resource string) {
	contactClientsMu.RLock()
	clients, exists := contactClients[contactID]
	if !exists || len(clients) == 0 {
		contactClientsMu.RUnlock()
		return
	}

	// Copy the clients so the lock is not held while writing
	clientsCopy := make([]*websocket.Conn, 0, len(clients))
	for conn := range clients {
		clientsCopy = append(clientsCopy, conn)
	}
	contactClientsMu.RUnlock()

	for _, conn := range clientsCopy {
		if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
			log.Printf("Failed to set write deadline for broadcast: %v", err)
			continue
		}

		err := conn.WriteJSON(map[string]interface{}{
			"type":       "refresh",
			"resource":   resource,
			"contact_id": contactID,
		})

		if err != nil {
			log.Printf("Failed to broadcast refresh to client: %v", err)
			// Remove failed connection
			contactClientsMu.Lock()
			if clients, exists := contactClients[contactID]; exists {
				delete(clients, conn)
				if len(clients) == 0 {
					delete(contactClients, contactID)
				}
			}
			contactClientsMu.Unlock()
			conn.Close()
		}
	}
}

// WebSocket upgrades the connection and streams refresh notifications for one
// contact until the client goes away.
func WebSocket(c *gin.Context) {
	contact, ok := findOwnedContact(c)

	if !ok {
		return
	}

	contactID := contact.ID

	upgrader := websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			for _, allowed := range types.AllowedOrigins {
				if origin == allowed {
					return true
				}
			}
			return false
		},
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("WebSocket upgrade failed: %v", err)
		return
	}

	conn.SetReadLimit(maxMessageSize)
	if err := conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		log.Printf("Failed to set initial read deadline: %v", err)
		return
	}
	conn.SetPongHandler(func(string) error {
		if err := conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
			log.Printf("Failed to set read deadline in pong handler: %v", err)
		}
		return nil
	})

	// Register the connection to the contact
	contactClientsMu.Lock()
	if contactClients[contactID] == nil {
		contactClients[contactID] = make(map[*websocket.Conn]bool)
	}
	contactClients[contactID][conn] = true
	contactClientsMu.Unlock()

	defer func() {
		contactClientsMu.Lock()

		if clients, exists := contactClients[contactID]; exists {
			delete(clients, conn)

			if len(clients) == 0 {
				delete(contactClients, contactID)
			}
		}

		contactClientsMu.Unlock()
		conn.Close()

		log.Printf("WebSocket connection closed for contact %d", contactID)
	}()

	if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		log.Printf("Failed to set write deadline for welcome message: %v", err)
		return
	}

	err = conn.WriteJSON(map[string]interface{}{
		"type":       "connected",
		"contact_id": contactID,
	})

	if err != nil {
		log.Printf("Failed to send welcome message: %v", err)
		return
	}

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	go func() {
		// Send pings periodically
		for range ticker.C {
			if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				log.Printf("Failed to set write deadline for contact %d: %v", contactID, err)
				return
			}
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				log.Printf("Ping failed for contact %d: %v", contactID, err)
				return
			}
		}
	}()

	for {
		if err := conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
			log.Printf("Failed to set read deadline for contact %d: %v", contactID, err)
			break
		}

		messageType, message, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("WebSocket error for contact %d: %v", contactID, err)
			}
			break
		}

		switch messageType {
		case websocket.TextMessage:
			log.Printf("Received message from client for contact %d: %s", contactID, string(message))
		case websocket.PongMessage:
			log.Printf("Received pong for contact %d", contactID)
		}
	}
}
