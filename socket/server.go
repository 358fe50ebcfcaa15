package socket

import (
	"log"

	socketio "github.com/googollee/go-socket.io"
)

// NewSocketServer initializes the Socket.IO server used for live message
// delivery. Clients join one room per chat and receive "newMessage" events
// broadcast by the message service on every append.
func NewSocketServer() *socketio.Server {
	server := socketio.NewServer(nil)

	server.OnConnect("/", func(s socketio.Conn) error {
		log.Println("Socket connected:", s.ID())
		return nil
	})

	// Join the room for one chat
	server.OnEvent("/", "join", func(s socketio.Conn, chatID string) {
		if chatID == "" {
			log.Println("Invalid chatId in join request")
			return
		}
		log.Printf("Socket %s joined chat %s", s.ID(), chatID)
		s.Join(chatID)
	})

	// Leave when the chat screen is dismissed
	server.OnEvent("/", "leave", func(s socketio.Conn, chatID string) {
		s.Leave(chatID)
	})

	server.OnError("/", func(s socketio.Conn, err error) {
		log.Println("Socket error:", err)
	})

	server.OnDisconnect("/", func(s socketio.Conn, reason string) {
		log.Println("Socket disconnected:", reason)
	})

	return server
}
