package race

import (
	"log"
	"math/rand/v2"
	"sync"

	game_constants "Wikirace/constants/game"
	game "Wikirace/models/game"
)

// Registry owns the set of all rooms. The registry lock only guards the
// code -> room mapping; each room serializes its own state behind its
// own lock, so different rooms are processed fully in parallel.
type Registry struct {
	mu    sync.RWMutex
	rooms map[string]*game.Room
}

func NewRegistry() *Registry {
	return &Registry{
		rooms: make(map[string]*game.Room),
	}
}

// CreateRoom registers a new room with a fresh unique code and the host
// as its first player.
func (reg *Registry) CreateRoom(host game.User, connectionID string) *game.Room {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	// Collision-checked under the registry write lock, so two concurrent
	// creates can never be issued the same code.
	code := randomRoomCode()
	for {
		if _, taken := reg.rooms[code]; !taken {
			break
		}
		code = randomRoomCode()
	}

	room := &game.Room{
		Code:   code,
		HostID: host.ID,
		State:  game.StateLobby,
		Settings: game.Settings{
			Mode:       game.ModeSpeed,
			TimeLimit:  game_constants.DefaultTimeLimit,
			Rounds:     game_constants.DefaultRounds,
			Visibility: true,
		},
		Players: []*game.Player{game.NewPlayer(host, connectionID)},
	}
	reg.rooms[code] = room

	log.Printf("[REGISTRY] Created room %s (host %s)", code, host.Username)
	return room
}

// JoinRoom adds the user to the room's roster, or, if a player with the
// same id is already there, only rebinds its connection id. Re-joining
// is idempotent on the roster.
func (reg *Registry) JoinRoom(code string, user game.User, connectionID string) (*game.Room, error) {
	room, ok := reg.Get(code)
	if !ok {
		return nil, ErrRoomNotFound
	}

	room.Mu.Lock()
	if existing := room.FindPlayer(user.ID); existing != nil {
		existing.ConnectionID = connectionID
	} else {
		room.Players = append(room.Players, game.NewPlayer(user, connectionID))
	}
	room.Mu.Unlock()

	log.Printf("[REGISTRY] Player %s joined room %s", user.Username, code)
	return room, nil
}

func (reg *Registry) Get(code string) (*game.Room, bool) {
	reg.mu.RLock()
	defer reg.mu.RUnlock()
	room, ok := reg.rooms[code]
	return room, ok
}

func (reg *Registry) Remove(code string) {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	if _, ok := reg.rooms[code]; ok {
		delete(reg.rooms, code)
		log.Printf("[REGISTRY] Removed room %s", code)
	}
}

// FindPlayerRoom scans all rooms for one whose roster contains the user
// id. Used by session recovery; the scan stops at the first match.
func (reg *Registry) FindPlayerRoom(userID string) (*game.Room, bool) {
	reg.mu.RLock()
	defer reg.mu.RUnlock()
	for _, room := range reg.rooms {
		room.Mu.Lock()
		found := room.FindPlayer(userID) != nil
		room.Mu.Unlock()
		if found {
			return room, true
		}
	}
	return nil, false
}

// Recover rebinds a reconnecting identity to its existing player
// record and returns the room holding it. No-op lookup miss returns
// false and the caller falls back to the fresh lobby flow.
func (reg *Registry) Recover(userID, connectionID string) (*game.Room, bool) {
	room, found := reg.FindPlayerRoom(userID)
	if !found {
		return nil, false
	}
	room.Mu.Lock()
	if player := room.FindPlayer(userID); player != nil {
		player.ConnectionID = connectionID
	}
	room.Mu.Unlock()
	return room, true
}

func randomRoomCode() string {
	code := make([]byte, game_constants.RoomCodeLength)
	for i := range code {
		code[i] = game_constants.RoomCodeAlphabet[rand.IntN(len(game_constants.RoomCodeAlphabet))]
	}
	return string(code)
}
