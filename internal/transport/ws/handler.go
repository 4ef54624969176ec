package ws

import (
	"encoding/json"
	"log"
	"net/http"

	"nhooyr.io/websocket"
)

// ServeWS returns an HTTP handler that upgrades to WebSocket. The first
// event on the wire is connection.id with the transient id; the client
// answers with identity.bind to go online.
func ServeWS(router *Router) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
			InsecureSkipVerify: true, // Allow any origin (dev mode)
		})
		if err != nil {
			log.Printf("ws: accept error: %v", err)
			return
		}

		client := NewClient(router, conn)

		evt, err := NewEvent(EventTypeConnectionID, ConnectionIDPayload{ID: client.ID().String()})
		if err == nil {
			if data, err := json.Marshal(evt); err == nil {
				client.Enqueue(data)
			}
		}

		log.Printf("ws: connection %s accepted", client.ID())

		// Start read/write pumps in goroutines
		go client.WritePump()
		go client.ReadPump()
	}
}
