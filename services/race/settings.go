package race

import (
	"fmt"

	game "Wikirace/models/game"
)

// UpdateSettings merges a settings patch into the room, but only for
// the host and only while the room sits in the lobby; anyone else gets
// ErrNotAuthorized and the settings stay untouched. Caller must hold
// the room lock.
func UpdateSettings(room *game.Room, requesterID string, patch map[string]interface{}) (game.Settings, error) {
	if requesterID != room.HostID || room.State != game.StateLobby {
		return room.Settings, ErrNotAuthorized
	}
	// Patch a copy so a malformed field leaves nothing half-applied.
	patched := room.Settings
	if err := ApplySettingsPatch(&patched, patch); err != nil {
		return room.Settings, err
	}
	room.Settings = patched
	return room.Settings, nil
}

// ApplySettingsPatch merges a settings patch (as decoded from a socket
// payload) into the settings field-by-field; unspecified fields retain
// their prior values.
func ApplySettingsPatch(settings *game.Settings, patch map[string]interface{}) error {
	if raw, ok := patch["mode"]; ok {
		mode, ok := raw.(string)
		if !ok || (game.GameMode(mode) != game.ModeSpeed && game.GameMode(mode) != game.ModeMinClicks) {
			return fmt.Errorf("%w: bad mode %v", ErrInvalidInput, raw)
		}
		settings.Mode = game.GameMode(mode)
	}

	if raw, ok := patch["timeLimit"]; ok {
		seconds, ok := asInt(raw)
		if !ok || seconds < 0 {
			return fmt.Errorf("%w: bad timeLimit %v", ErrInvalidInput, raw)
		}
		settings.TimeLimit = seconds
	}

	if raw, ok := patch["rounds"]; ok {
		rounds, ok := asInt(raw)
		if !ok || rounds < 1 {
			return fmt.Errorf("%w: bad rounds %v", ErrInvalidInput, raw)
		}
		settings.Rounds = rounds
	}

	if raw, ok := patch["visibility"]; ok {
		visible, ok := raw.(bool)
		if !ok {
			return fmt.Errorf("%w: bad visibility %v", ErrInvalidInput, raw)
		}
		settings.Visibility = visible
	}

	return nil
}

// JSON numbers decode as float64, but socket.io clients may also send
// plain ints through the msgpack parser.
func asInt(raw interface{}) (int, bool) {
	switch n := raw.(type) {
	case float64:
		if n != float64(int(n)) {
			return 0, false
		}
		return int(n), true
	case int:
		return n, true
	case int64:
		return int(n), true
	default:
		return 0, false
	}
}
