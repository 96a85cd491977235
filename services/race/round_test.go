package race

import (
	"fmt"
	"testing"

	game "Wikirace/models/game"

	"github.com/stretchr/testify/assert"
)

// testRoom builds a lobby-state room with the first user as host.
func testRoom(mode game.GameMode, timeLimit, rounds int, usernames ...string) *game.Room {
	players := make([]*game.Player, 0, len(usernames))
	for i, name := range usernames {
		user := game.User{ID: fmt.Sprintf("u%d", i+1), Username: name}
		players = append(players, game.NewPlayer(user, fmt.Sprintf("conn%d", i+1)))
	}
	return &game.Room{
		Code:    "TEST1",
		HostID:  players[0].ID,
		State:   game.StateLobby,
		Players: players,
		Settings: game.Settings{
			Mode:       mode,
			TimeLimit:  timeLimit,
			Rounds:     rounds,
			Visibility: true,
		},
	}
}

var testPages = PagePair{
	StartPage:  "Coffee",
	TargetPage: "Espresso",
	TargetDesc: "A concentrated form of coffee.",
}

func TestPrepareRoundResetsEveryPlayer(t *testing.T) {
	room := testRoom(game.ModeSpeed, 0, 3, "alice", "bob")

	// Leave some stale state from an imaginary previous round
	room.Players[0].Clicks = 7
	room.Players[0].Finished = true
	room.Players[0].FinishTime = 12345
	room.Players[1].Forfeited = true
	room.Players[1].History = []string{"Old", "Pages"}

	ok := PrepareRound(room, testPages)
	assert.True(t, ok)

	assert.Equal(t, game.StatePreparing, room.State)
	assert.Equal(t, 1, room.CurrentRound)
	assert.Equal(t, "Coffee", room.StartPage)
	assert.Equal(t, "Espresso", room.TargetPage)
	assert.False(t, room.SuddenDeathActive)

	for _, p := range room.Players {
		assert.Equal(t, 0, p.Clicks)
		assert.Equal(t, "Coffee", p.CurrentPage)
		assert.Equal(t, []string{"Coffee"}, p.History)
		assert.False(t, p.Finished)
		assert.False(t, p.Forfeited)
		assert.Zero(t, p.FinishTime)
	}
}

func TestPrepareRoundOnlyFromLobby(t *testing.T) {
	for _, state := range []game.RoomState{game.StatePreparing, game.StatePlaying, game.StateResolving} {
		room := testRoom(game.ModeSpeed, 0, 3, "alice")
		room.State = state
		room.CurrentRound = 2

		ok := PrepareRound(room, testPages)

		assert.False(t, ok, "state %s", state)
		assert.Equal(t, 2, room.CurrentRound, "round counter must not move on aborted start")
		assert.Empty(t, room.StartPage)
	}
}

func TestBeginPlayingStaleTimerIsNoop(t *testing.T) {
	room := testRoom(game.ModeSpeed, 0, 3, "alice")
	assert.True(t, PrepareRound(room, testPages))

	// Wrong round: a timer armed for an older round must not fire
	assert.False(t, BeginPlaying(room, room.CurrentRound+1, 1000))
	assert.Equal(t, game.StatePreparing, room.State)

	assert.True(t, BeginPlaying(room, room.CurrentRound, 1000))
	assert.Equal(t, game.StatePlaying, room.State)
	assert.Equal(t, int64(1000), room.StartTime)

	// Already playing: firing again is a no-op
	assert.False(t, BeginPlaying(room, room.CurrentRound, 2000))
	assert.Equal(t, int64(1000), room.StartTime)
}

func startPlayingRound(t *testing.T, room *game.Room) {
	t.Helper()
	assert.True(t, PrepareRound(room, testPages))
	assert.True(t, BeginPlaying(room, room.CurrentRound, 1000))
}

func TestNavigateCountsClicksAndRecordsHistory(t *testing.T) {
	room := testRoom(game.ModeSpeed, 0, 3, "alice", "bob")
	startPlayingRound(t, room)
	alice := room.Players[0]

	result := Navigate(room, alice, "Milk", 2000)
	assert.True(t, result.Accepted)
	assert.False(t, result.Finished)
	assert.Equal(t, 1, alice.Clicks)
	assert.Equal(t, "Milk", alice.CurrentPage)
	assert.Equal(t, []string{"Coffee", "Milk"}, alice.History)
}

func TestNavigateDetectsFinishThroughCanonicalForm(t *testing.T) {
	room := testRoom(game.ModeSpeed, 0, 3, "alice", "bob")
	startPlayingRound(t, room)
	alice := room.Players[0]

	// Percent-encoded, underscored, differently-cased variant of the target
	result := Navigate(room, alice, "ESPRESSO", 2000)
	assert.True(t, result.Finished)
	assert.True(t, alice.Finished)
	assert.Equal(t, int64(2000), alice.FinishTime)
}

func TestFirstFinisherArmsSuddenDeathOnlyOnce(t *testing.T) {
	room := testRoom(game.ModeSpeed, 0, 3, "alice", "bob", "carol")
	startPlayingRound(t, room)

	first := Navigate(room, room.Players[0], "Espresso", 2000)
	assert.True(t, first.FirstFinisher)
	assert.True(t, room.SuddenDeathActive)

	second := Navigate(room, room.Players[1], "Espresso", 3000)
	assert.True(t, second.Finished)
	assert.False(t, second.FirstFinisher)
}

func TestTimedRoundNeverArmsSuddenDeath(t *testing.T) {
	room := testRoom(game.ModeSpeed, 120, 3, "alice", "bob")
	startPlayingRound(t, room)

	result := Navigate(room, room.Players[0], "Espresso", 2000)
	assert.True(t, result.Finished)
	assert.False(t, result.FirstFinisher)
	assert.False(t, room.SuddenDeathActive)
}

func TestNavigateAfterFinishedIsDropped(t *testing.T) {
	room := testRoom(game.ModeSpeed, 0, 3, "alice", "bob")
	startPlayingRound(t, room)
	alice := room.Players[0]

	Navigate(room, alice, "Espresso", 2000)
	assert.True(t, alice.Finished)
	clicks := alice.Clicks
	history := len(alice.History)

	late := Navigate(room, alice, "Somewhere_Else", 3000)
	assert.False(t, late.Accepted)
	assert.Equal(t, clicks, alice.Clicks, "no double-count of clicks")
	assert.Len(t, alice.History, history)
	assert.Equal(t, int64(2000), alice.FinishTime)
}

func TestNavigateOutsidePlayingIsDropped(t *testing.T) {
	room := testRoom(game.ModeSpeed, 0, 3, "alice")
	alice := room.Players[0]

	result := Navigate(room, alice, "Espresso", 2000)
	assert.False(t, result.Accepted)
	assert.Equal(t, 0, alice.Clicks)
}

func TestForfeitGuards(t *testing.T) {
	room := testRoom(game.ModeSpeed, 0, 3, "alice", "bob")
	startPlayingRound(t, room)
	alice := room.Players[0]

	assert.True(t, Forfeit(room, alice))
	assert.True(t, alice.Forfeited)

	// Duplicate forfeit, and forfeit after finish, are both dropped
	assert.False(t, Forfeit(room, alice))

	bob := room.Players[1]
	Navigate(room, bob, "Espresso", 2000)
	assert.False(t, Forfeit(room, bob))
	assert.False(t, bob.Forfeited, "finished and forfeited are mutually exclusive")
}

func TestSpeedRoundResolution(t *testing.T) {
	// Scenario: 2 players, SPEED, untimed. P1 races straight to the
	// target, sudden death arms, P2 gives up, round resolves.
	room := testRoom(game.ModeSpeed, 0, 3, "alice", "bob")
	startPlayingRound(t, room)

	result := Navigate(room, room.Players[0], "Espresso", 2000)
	assert.True(t, result.Finished)
	assert.True(t, result.FirstFinisher)
	assert.False(t, room.AllDone())

	assert.True(t, Forfeit(room, room.Players[1]))
	assert.True(t, room.AllDone())

	resolution := Resolve(room)
	assert.NotNil(t, resolution)
	assert.Equal(t, "alice", resolution.Winner.Username)
	assert.Equal(t, 10, room.Players[0].Score)
	assert.Equal(t, 0, room.Players[1].Score)
	assert.False(t, resolution.GameOver)
	assert.Equal(t, game.StateLobby, room.State)
	assert.False(t, room.SuddenDeathActive)
	assert.Equal(t, []string{"Coffee", "Espresso"}, resolution.WinnerHistory)
}

func TestResolveFiresExactlyOnce(t *testing.T) {
	room := testRoom(game.ModeSpeed, 0, 3, "alice")
	startPlayingRound(t, room)
	Navigate(room, room.Players[0], "Espresso", 2000)

	assert.NotNil(t, Resolve(room))
	assert.Nil(t, Resolve(room), "second resolution before the next round start must be a no-op")
	assert.Equal(t, 10, room.Players[0].Score, "points must not be awarded twice")
}

func TestResolveWithNoFinishers(t *testing.T) {
	room := testRoom(game.ModeSpeed, 0, 3, "alice", "bob")
	startPlayingRound(t, room)
	Forfeit(room, room.Players[0])
	Forfeit(room, room.Players[1])

	resolution := Resolve(room)
	assert.NotNil(t, resolution)
	assert.Nil(t, resolution.Winner)
	assert.Empty(t, resolution.WinnerHistory)
	assert.Equal(t, 0, room.Players[0].Score)
	assert.Equal(t, 0, room.Players[1].Score)
}

func TestFinalRoundEndsTheMatch(t *testing.T) {
	// Scenario: rounds=1. The single round resolving produces the
	// leaderboard and resets the round counter to 0.
	room := testRoom(game.ModeSpeed, 0, 1, "alice", "bob")
	startPlayingRound(t, room)

	Navigate(room, room.Players[1], "Espresso", 2000)
	Navigate(room, room.Players[0], "Espresso", 3000)

	resolution := Resolve(room)
	assert.NotNil(t, resolution)
	assert.True(t, resolution.GameOver)
	assert.Equal(t, 0, room.CurrentRound)

	assert.Len(t, resolution.Leaderboard, 2)
	assert.Equal(t, "bob", resolution.Leaderboard[0].Username)
	assert.Equal(t, 10, resolution.Leaderboard[0].Score)
	assert.Equal(t, "alice", resolution.Leaderboard[1].Username)
	assert.Equal(t, 5, resolution.Leaderboard[1].Score)
}

func TestFreshMatchResetsScores(t *testing.T) {
	room := testRoom(game.ModeSpeed, 0, 2, "alice", "bob")
	assert.True(t, IsFreshMatch(room), "nothing played yet")

	room.CurrentRound = 1
	assert.False(t, IsFreshMatch(room), "mid-match")

	room.CurrentRound = 2
	assert.True(t, IsFreshMatch(room), "previous match just completed")

	room.Players[0].Score = 15
	room.Players[1].Score = 4
	ResetScores(room)
	assert.Equal(t, 0, room.CurrentRound)
	assert.Equal(t, 0, room.Players[0].Score)
	assert.Equal(t, 0, room.Players[1].Score)
}

func TestCurrentRoundIncrementsAcrossMatch(t *testing.T) {
	room := testRoom(game.ModeSpeed, 0, 2, "alice")

	for want := 1; want <= 2; want++ {
		assert.True(t, PrepareRound(room, testPages))
		assert.Equal(t, want, room.CurrentRound)
		assert.True(t, BeginPlaying(room, want, 1000))
		Navigate(room, room.Players[0], "Espresso", 2000)
		resolution := Resolve(room)
		assert.NotNil(t, resolution)
		assert.Equal(t, want == 2, resolution.GameOver)
	}
	assert.Equal(t, 0, room.CurrentRound)
}
