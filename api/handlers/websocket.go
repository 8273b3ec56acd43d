package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins in development
	},
}

// HandleWebSocket streams an agent's progress events over a websocket. The
// stream starts at the point of subscription; late clients should poll the
// status endpoint for terminal state.
func HandleWebSocket(c *gin.Context) {
	agentID := c.Param("agentID")
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("Failed to upgrade connection: %v", err)
		return
	}
	defer conn.Close()

	events, unsubscribe := deps.Broadcaster.Subscribe(agentID)
	defer unsubscribe()

	// Drain client frames so closes are noticed.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case event, ok := <-events:
			if !ok {
				return
			}
			if err := conn.WriteJSON(event); err != nil {
				log.Printf("WebSocket error: %v", err)
				return
			}
		case <-done:
			return
		}
	}
}
