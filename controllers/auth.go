package controllers

import (
	"net/http"
	"strings"

	game "Wikirace/models/game"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Session keys for the identity pair handed to the game core.
const (
	SessionUserID   = "user_id"
	SessionUsername = "username"
)

// @Summary Log in with a display name
// @Description Issues a stable (id, username) identity pair for the session. No password: the id is freshly allocated on first login and reused for reconnection.
// @Tags Auth
// @Accept x-www-form-urlencoded
// @Produce json
// @Param username formData string true "Display name"
// @Success 200 {object} game.User
// @Failure 400 {object} map[string]string "error: Username can't be empty"
// @Router /login [post]
func Login() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		username := strings.TrimSpace(c.PostForm("username"))

		// Minimum input sanitizing
		if username == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Username can't be empty"})
			return
		}

		user := game.User{
			ID:       "user_" + uuid.NewString(),
			Username: username,
		}

		session.Set(SessionUserID, user.ID)
		session.Set(SessionUsername, user.Username)
		if err := session.Save(); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "No session!"})
			return
		}
		c.JSON(http.StatusOK, user)
	}
}

// @Summary Get the logged-in identity
// @Description Returns the session's (id, username) pair, or null when nobody is logged in.
// @Tags Auth
// @Produce json
// @Success 200 {object} game.User
// @Router /auth/me [get]
func Me(c *gin.Context) {
	session := sessions.Default(c)
	id, _ := session.Get(SessionUserID).(string)
	username, _ := session.Get(SessionUsername).(string)
	if id == "" {
		c.JSON(http.StatusOK, nil)
		return
	}
	c.JSON(http.StatusOK, game.User{ID: id, Username: username})
}

// @Summary Log out
// @Description Deletes the identity stored in the session.
// @Tags Auth
// @Produce json
// @Success 200 {object} map[string]string "message: Successfully logged out"
// @Failure 400 {object} map[string]string "error: Invalid session token"
// @Router /auth/logout [delete]
func Logout(c *gin.Context) {
	session := sessions.Default(c)
	user := session.Get(SessionUserID)
	// There is no session for the user, won't delete nothing
	if user == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid session token"})
		return
	}

	session.Delete(SessionUserID)
	session.Delete(SessionUsername)
	if err := session.Save(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save session"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Successfully logged out"})
}
