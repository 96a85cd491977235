package socketio_types

import (
	"sync"

	"github.com/zishang520/socket.io/v2/socket"
)

// SocketServer is a struct that contains the socket.io server and a map of
// socket connections. It is used to handle socket.io connections.
type SocketServer struct {
	Sio_server *socket.Server
	// Map to track user id -> socket connection, used for direct messaging
	// and for force-detaching players when a room is closed.
	UserConnections map[string]*socket.Socket
	mutex           sync.RWMutex
}

func NewSocketServer() *SocketServer {
	return &SocketServer{
		UserConnections: make(map[string]*socket.Socket),
	}
}

// Add methods to manage connections
func (s *SocketServer) AddConnection(userID string, socket *socket.Socket) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.UserConnections[userID] = socket
}

func (s *SocketServer) GetConnection(userID string) (*socket.Socket, bool) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	socket, exists := s.UserConnections[userID]
	return socket, exists
}

// RemoveConnectionBySocket drops the mapping for whatever user the given
// socket was bound to. Used on disconnect, where only the socket id is known.
func (s *SocketServer) RemoveConnectionBySocket(socketID socket.SocketId) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	for userID, conn := range s.UserConnections {
		if conn.Id() == socketID {
			delete(s.UserConnections, userID)
			return
		}
	}
}
