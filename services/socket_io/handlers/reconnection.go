package handlers

import (
	"log"

	game "Wikirace/models/game"
	"Wikirace/services/race"
	socketio_types "Wikirace/services/socket_io/types"

	"github.com/gin-gonic/gin"
	"github.com/zishang520/socket.io/v2/socket"
)

// HandleRecoverSession rebinds a reconnecting identity to its existing
// player record: the new connection rejoins the room's broadcast group,
// gets the full room snapshot, and, mid-round, a round_start_immediate
// with its own position and history so the client can resume without
// the prepare countdown. An unknown identity is ignored and the client
// falls back to the fresh lobby UI.
func HandleRecoverSession(registry *race.Registry, client *socket.Socket,
	sio *socketio_types.SocketServer) func(args ...interface{}) {
	return func(args ...interface{}) {
		var user game.User
		if len(args) >= 1 {
			parsed, ok := parseUser(args[0])
			if !ok {
				return
			}
			user = parsed
		} else {
			return
		}

		room, found := registry.Recover(user.ID, string(client.Id()))
		if !found {
			log.Printf("[RECOVER] No room holds user %s, nothing to recover", user.Username)
			return
		}

		room.Mu.Lock()
		player := room.FindPlayer(user.ID)
		view := room.Snapshot()

		var resume gin.H
		if room.State == game.StatePlaying {
			history := make([]string, len(player.History))
			copy(history, player.History)
			resume = gin.H{
				"startPage":   room.StartPage,
				"targetPage":  room.TargetPage,
				"targetDesc":  room.TargetDesc,
				"round":       room.CurrentRound,
				"totalRounds": room.Settings.Rounds,
				"recoverPage": player.CurrentPage,
				"history":     history,
				"startTime":   room.StartTime,
				"settings":    room.Settings,
			}
		}
		room.Mu.Unlock()

		sio.AddConnection(user.ID, client)
		client.Join(socket.Room(room.Code))

		client.Emit("room_joined", view)
		if resume != nil {
			client.Emit("round_start_immediate", resume)
		}
		log.Printf("[RECOVER] User %s recovered into room %s", user.Username, room.Code)
	}
}

// HandleDisconnecting drops the connection mapping. The player record
// itself stays in its room so the identity can be recovered later.
func HandleDisconnecting(client *socket.Socket,
	sio *socketio_types.SocketServer) func(args ...interface{}) {
	return func(args ...interface{}) {
		sio.RemoveConnectionBySocket(client.Id())
		log.Printf("[DISCONNECT] Socket %s gone", client.Id())
	}
}
