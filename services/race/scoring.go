package race

import (
	"sort"

	game_constants "Wikirace/constants/game"
	game "Wikirace/models/game"
)

// RankFinishers returns the round's finishers in winning order: by
// finish time in SPEED mode, by click count in MIN_CLICKS mode. The
// sort is stable so ties preserve roster order. Caller must hold the
// room lock.
func RankFinishers(room *game.Room) []*game.Player {
	finishers := make([]*game.Player, 0, len(room.Players))
	for _, p := range room.Players {
		if p.Finished {
			finishers = append(finishers, p)
		}
	}

	if room.Settings.Mode == game.ModeSpeed {
		sort.SliceStable(finishers, func(i, j int) bool {
			return finishers[i].FinishTime < finishers[j].FinishTime
		})
	} else {
		sort.SliceStable(finishers, func(i, j int) bool {
			return finishers[i].Clicks < finishers[j].Clicks
		})
	}
	return finishers
}

// AwardPoints adds the fixed per-rank points (10/5/2...) to the ranked
// finishers' cumulative scores. Caller must hold the room lock.
func AwardPoints(finishers []*game.Player) {
	for i, p := range finishers {
		switch i {
		case 0:
			p.Score += game_constants.FirstPlacePoints
		case 1:
			p.Score += game_constants.SecondPlacePoints
		default:
			p.Score += game_constants.OtherPlacePoints
		}
	}
}

// Leaderboard returns all players sorted by descending cumulative
// score, stable on ties. Caller must hold the room lock.
func Leaderboard(room *game.Room) []game.PlayerView {
	players := make([]*game.Player, len(room.Players))
	copy(players, room.Players)
	sort.SliceStable(players, func(i, j int) bool {
		return players[i].Score > players[j].Score
	})

	board := make([]game.PlayerView, 0, len(players))
	for _, p := range players {
		board = append(board, p.View())
	}
	return board
}
