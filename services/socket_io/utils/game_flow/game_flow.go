package game_flow

import (
	"context"
	"log"
	"time"

	game_constants "Wikirace/constants/game"
	game "Wikirace/models/game"
	"Wikirace/services/race"
	socketio_types "Wikirace/services/socket_io/types"
	"Wikirace/services/wiki"

	"github.com/gin-gonic/gin"
	"github.com/zishang520/socket.io/v2/socket"
)

// StartRound runs one round start end to end: fetch a fresh page pair
// from the content provider, move the room into PREPARING, broadcast
// the prepare event, and after the fixed delay flip to PLAYING with the
// authoritative start time.
//
// The provider is called before the room lock is taken, so a slow or
// failed fetch never blocks other events and never leaves the room
// half-mutated: on error the round start simply aborts and the host can
// retry.
func StartRound(room *game.Room, wikiClient *wiki.Client, sio *socketio_types.SocketServer) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pages, err := wikiClient.RandomPair(ctx)
	if err != nil {
		log.Printf("[ROUND-START-ERROR] Room %s: %v", room.Code, err)
		return
	}

	room.Mu.Lock()
	if !race.PrepareRound(room, pages) {
		// Someone else started (or the room otherwise left LOBBY) while
		// we were fetching.
		room.Mu.Unlock()
		log.Printf("[ROUND-START] Room %s no longer in lobby, aborting", room.Code)
		return
	}
	round := room.CurrentRound
	totalRounds := room.Settings.Rounds
	room.Mu.Unlock()

	sio.Sio_server.To(socket.Room(room.Code)).Emit("round_prepare", gin.H{
		"startPage":   pages.StartPage,
		"targetPage":  pages.TargetPage,
		"targetDesc":  pages.TargetDesc,
		"round":       round,
		"totalRounds": totalRounds,
	})
	log.Printf("[ROUND-START] Room %s round %d/%d: %q -> %q",
		room.Code, round, totalRounds, pages.StartPage, pages.TargetPage)

	go func() {
		time.Sleep(game_constants.RoundPrepareDelay)

		room.Mu.Lock()
		if !race.BeginPlaying(room, round, game.NowMillis()) {
			// Stale timer: the room moved on while we slept.
			room.Mu.Unlock()
			return
		}
		startTime := room.StartTime
		settings := room.Settings
		room.Mu.Unlock()

		sio.Sio_server.To(socket.Room(room.Code)).Emit("round_start", gin.H{
			"startTime": startTime,
			"settings":  settings,
		})
		log.Printf("[ROUND-START] Room %s round %d playing", room.Code, round)
	}()
}

// StartSuddenDeath broadcasts the grace-window warning and arms the
// deadline. The callback re-checks state, round and the sudden-death
// flag at fire time, so a round that already resolved (or a brand new
// round) makes the expiry a no-op.
func StartSuddenDeath(room *game.Room, round int, sio *socketio_types.SocketServer) {
	sio.Sio_server.To(socket.Room(room.Code)).Emit("sudden_death_start", gin.H{
		"seconds": int(game_constants.SuddenDeathWindow / time.Second),
	})
	sio.Sio_server.To(socket.Room(room.Code)).Emit("notification", gin.H{
		"type":    "warning",
		"message": "First player has reached the target! 60 seconds left.",
	})

	go func() {
		time.Sleep(game_constants.SuddenDeathWindow)

		room.Mu.Lock()
		if room.State != game.StatePlaying || !room.SuddenDeathActive || room.CurrentRound != round {
			room.Mu.Unlock()
			return
		}
		// Deadline elapsed: unfinished players simply don't score.
		result := race.Resolve(room)
		room.Mu.Unlock()

		if result != nil {
			log.Printf("[SUDDEN-DEATH] Room %s round %d forced to resolve", room.Code, round)
			sio.Sio_server.To(socket.Room(room.Code)).Emit("notification", gin.H{
				"type":    "info",
				"message": "Time's up! The round is over.",
			})
			EmitRoundResolution(room.Code, result, sio)
		}
	}()
}

// EmitRoundResolution broadcasts the outcome produced by race.Resolve:
// game_over with the leaderboard after the final round, round_end with
// the winner's name and path otherwise.
func EmitRoundResolution(roomCode string, result *race.ResolveResult, sio *socketio_types.SocketServer) {
	if result.GameOver {
		sio.Sio_server.To(socket.Room(roomCode)).Emit("game_over", gin.H{
			"leaderboard": result.Leaderboard,
			"room":        result.Room,
		})
		log.Printf("[ROUND-END] Room %s match over", roomCode)
		return
	}

	var winnerName interface{}
	if result.Winner != nil {
		winnerName = result.Winner.Username
	}
	sio.Sio_server.To(socket.Room(roomCode)).Emit("round_end", gin.H{
		"winnerName":    winnerName,
		"winnerHistory": result.WinnerHistory,
		"room":          result.Room,
	})
	log.Printf("[ROUND-END] Room %s round ended", roomCode)
}
