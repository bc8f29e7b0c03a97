package websocket

import (
	"log"
	"sync"

	"github.com/gofiber/contrib/websocket"
	"github.com/google/uuid"
	"github.com/mwangikev/swim_school/database"
	"github.com/mwangikev/swim_school/models"
)

type Client struct {
	UserID uuid.UUID
	Conn   *websocket.Conn
}

// CoverageEvent is pushed to every connected instructor except the actor
// whenever a coverage request changes state.
type CoverageEvent struct {
	Type    string                 `json:"type"` // created | accepted | declined | deleted | re_requested
	ActorID uuid.UUID              `json:"actor_id"`
	Request *models.CoverageRequest `json:"request"`
}

var clients = make(map[uuid.UUID]*websocket.Conn)
var clientsMu sync.RWMutex
var Register = make(chan *Client)
var Unregister = make(chan *Client)
var Broadcast = make(chan *CoverageEvent)

func RunHub() {
	for {
		select {
		case client := <-Register:
			log.Printf("Client registered: %s", client.UserID)
			clientsMu.Lock()
			clients[client.UserID] = client.Conn
			clientsMu.Unlock()
		case client := <-Unregister:
			log.Printf("Client unregistered: %s", client.UserID)
			clientsMu.Lock()
			if conn, ok := clients[client.UserID]; ok && conn == client.Conn {
				delete(clients, client.UserID)
			}
			clientsMu.Unlock()
		case event := <-Broadcast:
			var instructorIDs []uuid.UUID
			err := database.DB.
				Model(&models.Instructor{}).
				Where("is_active = ?", true).
				Pluck("user_id", &instructorIDs).Error
			if err != nil {
				log.Printf("Error fetching instructor IDs for coverage event: %v", err)
				continue
			}

			clientsMu.Lock()
			for _, instructorID := range instructorIDs {
				if instructorID == event.ActorID {
					continue
				}
				if conn, ok := clients[instructorID]; ok {
					if err := conn.WriteJSON(event); err != nil {
						log.Printf("Error pushing coverage event to client %s: %v", instructorID, err)
						conn.Close()
						delete(clients, instructorID)
					}
				}
			}
			clientsMu.Unlock()
		}
	}
}
