package handlers

import (
	"errors"
	"log"

	game "Wikirace/models/game"
	"Wikirace/services/race"
	socketio_types "Wikirace/services/socket_io/types"

	"github.com/gin-gonic/gin"
	"github.com/zishang520/socket.io/v2/socket"
)

// HandleJoinLobby creates a room (no code in the payload) or joins an
// existing one. Re-joining with the same user id is idempotent on the
// roster: only the connection id is refreshed. Every join broadcasts
// the full room state to the group and confirms to the joiner.
func HandleJoinLobby(registry *race.Registry, client *socket.Socket,
	sio *socketio_types.SocketServer) func(args ...interface{}) {
	return func(args ...interface{}) {
		payload, ok := parseObject(args)
		if !ok {
			client.Emit("error", gin.H{"error": "Missing join payload"})
			return
		}
		user, ok := parseUser(payload["user"])
		if !ok {
			log.Printf("[JOIN-ERROR] join_lobby without identity, socket %s", client.Id())
			return
		}

		roomCode, _ := payload["roomCode"].(string)

		var room *game.Room
		if roomCode == "" {
			room = registry.CreateRoom(user, string(client.Id()))
		} else {
			joined, err := registry.JoinRoom(roomCode, user, string(client.Id()))
			if err != nil {
				log.Printf("[JOIN-ERROR] User %s tried unknown room %s", user.Username, roomCode)
				client.Emit("error", gin.H{"error": "Game not found."})
				return
			}
			room = joined
		}

		sio.AddConnection(user.ID, client)
		client.Join(socket.Room(room.Code))

		room.Mu.Lock()
		view := room.Snapshot()
		room.Mu.Unlock()

		client.Emit("room_joined", view)
		sio.Sio_server.To(socket.Room(room.Code)).Emit("room_update", view)
		log.Printf("[JOIN] User %s in room %s", user.Username, room.Code)
	}
}

// HandleUpdateSettings merges a settings patch into the room. Host-only
// and lobby-only; anyone else's attempt is ignored without feedback.
func HandleUpdateSettings(registry *race.Registry, client *socket.Socket,
	sio *socketio_types.SocketServer) func(args ...interface{}) {
	return func(args ...interface{}) {
		payload, ok := parseObject(args)
		if !ok {
			return
		}
		roomCode, _ := payload["roomCode"].(string)
		patch, _ := payload["settings"].(map[string]interface{})

		room, found := registry.Get(roomCode)
		if !found || patch == nil {
			return
		}

		room.Mu.Lock()
		requester := room.FindPlayerByConnection(string(client.Id()))
		if requester == nil {
			room.Mu.Unlock()
			return
		}
		settings, err := race.UpdateSettings(room, requester.ID, patch)
		room.Mu.Unlock()
		if errors.Is(err, race.ErrNotAuthorized) {
			return
		}
		if err != nil {
			log.Printf("[SETTINGS-ERROR] Room %s: %v", roomCode, err)
			client.Emit("error", gin.H{"error": "Invalid settings"})
			return
		}

		sio.Sio_server.To(socket.Room(roomCode)).Emit("settings_updated", settings)
		log.Printf("[SETTINGS] Room %s updated: %+v", roomCode, settings)
	}
}

// HandleCloseRoom tears a room down: host-only. Every connection in the
// group is force-notified and detached before the room is removed from
// the registry.
func HandleCloseRoom(registry *race.Registry, client *socket.Socket,
	sio *socketio_types.SocketServer) func(args ...interface{}) {
	return func(args ...interface{}) {
		roomCode, ok := parseString(args)
		if !ok {
			return
		}
		room, found := registry.Get(roomCode)
		if !found {
			return
		}

		room.Mu.Lock()
		requester := room.FindPlayerByConnection(string(client.Id()))
		if requester == nil || requester.ID != room.HostID {
			room.Mu.Unlock()
			return
		}
		playerIDs := make([]string, 0, len(room.Players))
		for _, p := range room.Players {
			playerIDs = append(playerIDs, p.ID)
		}
		room.Mu.Unlock()

		sio.Sio_server.To(socket.Room(roomCode)).Emit("force_exit", gin.H{
			"message": "The host closed the room.",
		})
		for _, id := range playerIDs {
			if conn, exists := sio.GetConnection(id); exists {
				conn.Leave(socket.Room(roomCode))
			}
		}
		registry.Remove(roomCode)
		log.Printf("[CLOSE] Room %s closed by host", roomCode)
	}
}
