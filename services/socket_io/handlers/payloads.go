package handlers

import (
	game "Wikirace/models/game"
)

// Socket payloads arrive as loosely-typed maps from the socket.io
// parser; these helpers pull the expected shapes out of them.

func parseObject(args []interface{}) (map[string]interface{}, bool) {
	if len(args) < 1 {
		return nil, false
	}
	payload, ok := args[0].(map[string]interface{})
	return payload, ok
}

func parseString(args []interface{}) (string, bool) {
	if len(args) < 1 {
		return "", false
	}
	value, ok := args[0].(string)
	return value, ok
}

// parseUser decodes the identity object clients attach to join and
// recovery events. An empty id or name is treated as absent.
func parseUser(raw interface{}) (game.User, bool) {
	obj, ok := raw.(map[string]interface{})
	if !ok {
		return game.User{}, false
	}
	id, _ := obj["id"].(string)
	username, _ := obj["username"].(string)
	if id == "" || username == "" {
		return game.User{}, false
	}
	return game.User{ID: id, Username: username}, true
}
