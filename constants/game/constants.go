package game_constants

import "time"

// Room codes are short, uppercase and collision-checked against the registry.
const RoomCodeLength = 5
const RoomCodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// Delay between the round_prepare broadcast and the actual round start,
// so every client can render the prepare overlay before the timer runs.
const RoundPrepareDelay = 3500 * time.Millisecond

// Grace window opened by the first finisher of an untimed round.
const SuddenDeathWindow = 60 * time.Second

// Points awarded per finishing rank.
const (
	FirstPlacePoints  = 10
	SecondPlacePoints = 5
	OtherPlacePoints  = 2
)

// Default room settings for a freshly created room.
const (
	DefaultRounds    = 3
	DefaultTimeLimit = 0 // seconds, 0 = unlimited
)

// Page shown to players who haven't started a round yet.
const LobbyPage = "Lobby"
