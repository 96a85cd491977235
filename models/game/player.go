package game

import (
	game_constants "Wikirace/constants/game"
)

// Player is per-user race state within a room. A player is owned by
// exactly one room and lives until the room is removed; the fields are
// guarded by the owning room's lock.
type Player struct {
	ID       string `json:"id"`
	Username string `json:"username"`

	// Transport id of the current live connection. Refreshed on every
	// (re)connect, stale between disconnect and reconnect.
	ConnectionID string `json:"-"`

	Score       int      `json:"score"`
	Clicks      int      `json:"clicks"`
	CurrentPage string   `json:"currentPage"`
	History     []string `json:"history"`
	Finished    bool     `json:"finished"`
	Forfeited   bool     `json:"forfeited"`
	FinishTime  int64    `json:"finishTime,omitempty"`
}

func NewPlayer(user User, connectionID string) *Player {
	return &Player{
		ID:           user.ID,
		Username:     user.Username,
		ConnectionID: connectionID,
		CurrentPage:  game_constants.LobbyPage,
		History:      []string{},
	}
}

// ResetForRound clears per-round state and seeds position and history
// with the round's start page. Caller must hold the room lock.
func (p *Player) ResetForRound(startPage string) {
	p.Clicks = 0
	p.CurrentPage = startPage
	p.History = []string{startPage}
	p.Finished = false
	p.Forfeited = false
	p.FinishTime = 0
}

// View copies the player into a plain value, snapping the history slice
// so later appends don't leak into emitted payloads.
func (p *Player) View() PlayerView {
	history := make([]string, len(p.History))
	copy(history, p.History)
	return PlayerView{
		ID:          p.ID,
		Username:    p.Username,
		Score:       p.Score,
		Clicks:      p.Clicks,
		CurrentPage: p.CurrentPage,
		History:     history,
		Finished:    p.Finished,
		Forfeited:   p.Forfeited,
		FinishTime:  p.FinishTime,
	}
}

type PlayerView struct {
	ID          string   `json:"id"`
	Username    string   `json:"username"`
	Score       int      `json:"score"`
	Clicks      int      `json:"clicks"`
	CurrentPage string   `json:"currentPage"`
	History     []string `json:"history"`
	Finished    bool     `json:"finished"`
	Forfeited   bool     `json:"forfeited"`
	FinishTime  int64    `json:"finishTime,omitempty"`
}
