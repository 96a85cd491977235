package handlers

import (
	"log"

	game "Wikirace/models/game"
	"Wikirace/services/race"
	socketio_types "Wikirace/services/socket_io/types"
	game_flow "Wikirace/services/socket_io/utils/game_flow"
	"Wikirace/services/wiki"

	"github.com/zishang520/socket.io/v2/socket"
)

// HandleStartGame starts the next round on the host's request. When
// this begins a fresh match (nothing played yet, or the previous match
// just finished) every score is reset and the reset roster is broadcast
// before the round kicks off. Non-host requests are silently ignored.
func HandleStartGame(registry *race.Registry, wikiClient *wiki.Client,
	client *socket.Socket, sio *socketio_types.SocketServer) func(args ...interface{}) {
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
			log.Printf("[START-GAME] Non-host start attempt in room %s, ignoring", roomCode)
			return
		}
		if room.State != game.StateLobby {
			room.Mu.Unlock()
			log.Printf("[START-GAME] Room %s not in lobby, ignoring", roomCode)
			return
		}

		var resetView *game.RoomView
		if race.IsFreshMatch(room) {
			race.ResetScores(room)
			resetView = room.Snapshot()
		}
		room.Mu.Unlock()

		if resetView != nil {
			sio.Sio_server.To(socket.Room(roomCode)).Emit("room_update", resetView)
		}

		game_flow.StartRound(room, wikiClient, sio)
	}
}
