package handlers

import (
	"fmt"
	"log"

	"Wikirace/services/race"
	socketio_types "Wikirace/services/socket_io/types"
	game_flow "Wikirace/services/socket_io/utils/game_flow"

	game "Wikirace/models/game"

	"github.com/gin-gonic/gin"
	"github.com/zishang520/socket.io/v2/socket"
)

// HandlePlayerNavigated consumes one link click: counts it, moves the
// player, detects arrival at the target, and checks whether the round
// is over. Events from players who are already finished or forfeited,
// or outside of PLAYING, are dropped.
//
// Everything that touches room state happens under one lock
// acquisition, so two "simultaneous" finishers are processed in a
// total order and the round resolves exactly once.
func HandlePlayerNavigated(registry *race.Registry, client *socket.Socket,
	sio *socketio_types.SocketServer) func(args ...interface{}) {
	return func(args ...interface{}) {
		payload, ok := parseObject(args)
		if !ok {
			return
		}
		roomCode, _ := payload["roomCode"].(string)
		page, _ := payload["page"].(string)
		room, found := registry.Get(roomCode)
		if !found || page == "" {
			return
		}

		room.Mu.Lock()
		player := room.FindPlayerByConnection(string(client.Id()))
		result := race.Navigate(room, player, page, game.NowMillis())
		if !result.Accepted {
			room.Mu.Unlock()
			return
		}

		history := make([]string, len(player.History))
		copy(history, player.History)

		progress := gin.H{
			"playerId":    player.ID,
			"clicks":      player.Clicks,
			"currentPage": player.CurrentPage,
		}
		if !room.Settings.Visibility {
			progress["currentPage"] = "???"
		}
		username := player.Username
		round := room.CurrentRound

		var resolution *race.ResolveResult
		if result.Finished && room.AllDone() {
			resolution = race.Resolve(room)
		}
		room.Mu.Unlock()

		client.Emit("my_history_update", gin.H{"history": history})
		sio.Sio_server.To(socket.Room(roomCode)).Emit("progress_update", progress)

		if result.Finished {
			sio.Sio_server.To(socket.Room(roomCode)).Emit("notification", gin.H{
				"type":    "success",
				"message": fmt.Sprintf("🏁 %s found the page!", username),
			})
			sio.Sio_server.To(socket.Room(roomCode)).Emit("player_finished", gin.H{
				"player": username,
			})
			log.Printf("[NAVIGATE] %s finished round %d in room %s", username, round, roomCode)
		}

		if result.FirstFinisher && resolution == nil {
			game_flow.StartSuddenDeath(room, round, sio)
		}

		if resolution != nil {
			game_flow.EmitRoundResolution(roomCode, resolution, sio)
		}
	}
}

// HandleForfeit marks the sender as having given up on the running
// round and checks whether that ends it.
func HandleForfeit(registry *race.Registry, client *socket.Socket,
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
		player := room.FindPlayerByConnection(string(client.Id()))
		if !race.Forfeit(room, player) {
			room.Mu.Unlock()
			return
		}
		username := player.Username
		playerID := player.ID

		var resolution *race.ResolveResult
		if room.AllDone() {
			resolution = race.Resolve(room)
		}
		room.Mu.Unlock()

		sio.Sio_server.To(socket.Room(roomCode)).Emit("notification", gin.H{
			"type":    "info",
			"message": fmt.Sprintf("%s gave up.", username),
		})
		sio.Sio_server.To(socket.Room(roomCode)).Emit("player_forfeited", gin.H{
			"playerId": playerID,
		})
		log.Printf("[FORFEIT] %s forfeited in room %s", username, roomCode)

		if resolution != nil {
			game_flow.EmitRoundResolution(roomCode, resolution, sio)
		}
	}
}
