package controllers

import (
	"log"
	"net/http"
	"strings"

	"Wikirace/services/wiki"

	"github.com/gin-gonic/gin"
)

const unavailablePage = `<div style="padding:50px; text-align:center"><h2>⚠️ Page unavailable</h2></div>`

// @Summary Serve a rewritten wiki article
// @Description Fetches the article and rewrites it into the intercepted game surface: internal links report clicks to the parent frame, everything else is neutralized. Transient fetch failures render a placeholder instead of breaking the iframe.
// @Tags Wiki
// @Produce html
// @Param page query string true "Page title"
// @Param room query string false "Room code, embedded in the injected base href"
// @Success 200 {string} string
// @Router /wiki-proxy [get]
func WikiProxy(wikiClient *wiki.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		page := c.Query("page")
		roomCode := c.Query("room")
		if page == "" {
			c.String(http.StatusBadRequest, "Error: no page")
			return
		}
		// Anchors never select a different article
		page = strings.SplitN(page, "#", 2)[0]

		raw, err := wikiClient.Article(c.Request.Context(), page)
		if err != nil {
			log.Printf("[PROXY-ERROR] Fetching %q: %v", page, err)
			c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(unavailablePage))
			return
		}

		rewritten, err := wiki.RewriteArticle(raw, wikiClient.BaseURL, roomCode)
		if err != nil {
			log.Printf("[PROXY-ERROR] Rewriting %q: %v", page, err)
			c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(unavailablePage))
			return
		}
		c.Data(http.StatusOK, "text/html; charset=utf-8", rewritten)
	}
}
