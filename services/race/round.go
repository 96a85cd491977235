package race

import (
	game "Wikirace/models/game"
)

// PagePair is the triple the page-content provider hands back for a
// fresh round.
type PagePair struct {
	StartPage  string
	TargetPage string
	TargetDesc string
}

// IsFreshMatch reports whether the next round start begins a new match
// (no round played yet, or the previous match just completed). Caller
// must hold the room lock.
func IsFreshMatch(room *game.Room) bool {
	return room.CurrentRound == 0 || room.CurrentRound >= room.Settings.Rounds
}

// ResetScores zeroes every player's cumulative score for a new match.
// Caller must hold the room lock.
func ResetScores(room *game.Room) {
	room.CurrentRound = 0
	for _, p := range room.Players {
		p.Score = 0
	}
}

// PrepareRound moves the room into PREPARING with the fetched page
// pair: every player is reset onto the start page, the round counter
// advances and sudden death is cleared. Only legal from LOBBY; returns
// false (leaving the room untouched) otherwise. Caller must hold the
// room lock.
func PrepareRound(room *game.Room, pages PagePair) bool {
	if room.State != game.StateLobby {
		return false
	}

	room.StartPage = pages.StartPage
	room.TargetPage = pages.TargetPage
	room.TargetDesc = pages.TargetDesc

	for _, p := range room.Players {
		p.ResetForRound(pages.StartPage)
	}

	room.CurrentRound++
	room.SuddenDeathActive = false
	room.State = game.StatePreparing
	return true
}

// BeginPlaying flips PREPARING into PLAYING and stamps the
// authoritative start time. The round guard makes a stale prepare
// timer firing after the room moved on a no-op. Caller must hold the
// room lock.
func BeginPlaying(room *game.Room, round int, now int64) bool {
	if room.State != game.StatePreparing || room.CurrentRound != round {
		return false
	}
	room.State = game.StatePlaying
	room.StartTime = now
	return true
}

// NavigateResult describes the outcome of a single navigation event.
type NavigateResult struct {
	Accepted      bool
	Finished      bool
	FirstFinisher bool
}

// Navigate applies one navigation event: it drops late or duplicate
// events (room not PLAYING, player already done), counts the click,
// records the canonical page and detects arrival at the target. The
// first finisher of an untimed round arms sudden death. Caller must
// hold the room lock.
func Navigate(room *game.Room, player *game.Player, rawPage string, now int64) NavigateResult {
	if room.State != game.StatePlaying || player == nil || player.Finished || player.Forfeited {
		return NavigateResult{}
	}

	page := CanonicalTitle(rawPage)
	player.Clicks++
	player.CurrentPage = page
	player.History = append(player.History, page)

	result := NavigateResult{Accepted: true}
	if SamePage(page, room.TargetPage) {
		player.Finished = true
		player.FinishTime = now
		result.Finished = true

		if room.Settings.TimeLimit == 0 && !room.SuddenDeathActive {
			room.SuddenDeathActive = true
			result.FirstFinisher = true
		}
	}
	return result
}

// Forfeit marks the player as having given up on the current round.
// Returns false for late or duplicate events. Caller must hold the
// room lock.
func Forfeit(room *game.Room, player *game.Player) bool {
	if room.State != game.StatePlaying || player == nil || player.Finished || player.Forfeited {
		return false
	}
	player.Forfeited = true
	return true
}

// ResolveResult carries everything the round-end broadcasts need.
type ResolveResult struct {
	Winner        *game.PlayerView
	WinnerHistory []string
	GameOver      bool
	Leaderboard   []game.PlayerView
	Room          *game.RoomView
}

// Resolve settles the round: ranks the finishers, awards points,
// detects match completion and returns the room to LOBBY. It only
// fires from PLAYING, so a second invocation before the next round
// start is a no-op and returns nil. Caller must hold the room lock.
func Resolve(room *game.Room) *ResolveResult {
	if room.State != game.StatePlaying {
		return nil
	}
	room.State = game.StateResolving
	room.SuddenDeathActive = false

	finishers := RankFinishers(room)
	AwardPoints(finishers)

	result := &ResolveResult{WinnerHistory: []string{}}
	if len(finishers) > 0 {
		winner := finishers[0].View()
		result.Winner = &winner
		result.WinnerHistory = winner.History
	}

	if room.CurrentRound >= room.Settings.Rounds {
		result.GameOver = true
		result.Leaderboard = Leaderboard(room)
		room.CurrentRound = 0
	}

	room.State = game.StateLobby
	result.Room = room.Snapshot()
	return result
}
