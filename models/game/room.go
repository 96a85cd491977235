package game

import (
	"sync"
	"time"
)

type RoomState string

const (
	StateLobby     RoomState = "LOBBY"
	StatePreparing RoomState = "PREPARING"
	StatePlaying   RoomState = "PLAYING"
	StateResolving RoomState = "RESOLVING"
)

type GameMode string

const (
	ModeSpeed     GameMode = "SPEED"
	ModeMinClicks GameMode = "MIN_CLICKS"
)

// User is the (id, display name) pair the identity provider hands out.
// The id is the reconnection key and is stable across connections.
type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

// Settings holds the host-tunable room configuration. TimeLimit is in
// seconds, 0 meaning unlimited (which is what arms sudden death).
type Settings struct {
	Mode       GameMode `json:"mode"`
	TimeLimit  int      `json:"timeLimit"`
	Rounds     int      `json:"rounds"`
	Visibility bool     `json:"visibility"`
}

// Room is an isolated match instance. Every field below Mu is mutable
// shared state and must only be touched while holding Mu; the code is
// immutable and doubles as the socket.io room name.
type Room struct {
	Mu sync.Mutex `json:"-"`

	Code    string    `json:"code"`
	HostID  string    `json:"host"`
	State   RoomState `json:"state"`
	Players []*Player `json:"players"`

	Settings     Settings `json:"settings"`
	CurrentRound int      `json:"currentRound"`

	StartPage  string `json:"startPage,omitempty"`
	TargetPage string `json:"targetPage,omitempty"`
	TargetDesc string `json:"targetDesc,omitempty"`

	// Wall-clock millis when PLAYING began. The server is the sole
	// authority on this value, clients derive their timers from it.
	StartTime int64 `json:"startTime"`

	SuddenDeathActive bool `json:"suddenDeathActive"`
}

// FindPlayer returns the roster entry with the given user id, or nil.
// Caller must hold the room lock.
func (r *Room) FindPlayer(userID string) *Player {
	for _, p := range r.Players {
		if p.ID == userID {
			return p
		}
	}
	return nil
}

// FindPlayerByConnection resolves the sender of an action event by its
// live socket id. Caller must hold the room lock.
func (r *Room) FindPlayerByConnection(connectionID string) *Player {
	for _, p := range r.Players {
		if p.ConnectionID == connectionID {
			return p
		}
	}
	return nil
}

// AllDone reports whether every player has either finished or forfeited
// the current round. Caller must hold the room lock.
func (r *Room) AllDone() bool {
	for _, p := range r.Players {
		if !p.Finished && !p.Forfeited {
			return false
		}
	}
	return true
}

// Snapshot deep-copies the room into a plain value safe to emit after
// the lock is released. Caller must hold the room lock.
func (r *Room) Snapshot() *RoomView {
	view := &RoomView{
		Code:              r.Code,
		HostID:            r.HostID,
		State:             r.State,
		Settings:          r.Settings,
		CurrentRound:      r.CurrentRound,
		StartPage:         r.StartPage,
		TargetPage:        r.TargetPage,
		TargetDesc:        r.TargetDesc,
		StartTime:         r.StartTime,
		SuddenDeathActive: r.SuddenDeathActive,
		Players:           make([]PlayerView, 0, len(r.Players)),
	}
	for _, p := range r.Players {
		view.Players = append(view.Players, p.View())
	}
	return view
}

// RoomView is the JSON shape broadcast in room_update, round_end and
// game_over events.
type RoomView struct {
	Code              string       `json:"code"`
	HostID            string       `json:"host"`
	State             RoomState    `json:"state"`
	Players           []PlayerView `json:"players"`
	Settings          Settings     `json:"settings"`
	CurrentRound      int          `json:"currentRound"`
	StartPage         string       `json:"startPage,omitempty"`
	TargetPage        string       `json:"targetPage,omitempty"`
	TargetDesc        string       `json:"targetDesc,omitempty"`
	StartTime         int64        `json:"startTime"`
	SuddenDeathActive bool         `json:"suddenDeathActive"`
}

// NowMillis matches the wall-clock representation used for StartTime
// and Player.FinishTime.
func NowMillis() int64 {
	return time.Now().UnixMilli()
}
