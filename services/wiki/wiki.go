package wiki

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"Wikirace/services/race"
)

const DefaultBaseURL = "https://en.wikipedia.org"

const userAgent = "WikiraceGame/1.0 (Educational Project)"

// Client talks to a MediaWiki instance: it picks random page pairs for
// round starts, fetches target descriptions and downloads article HTML
// for the proxy. The base URL selects the wiki (and its language).
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// RandomPair requests two random mainspace articles and a short
// description of the target. A missing description is not fatal, the
// round can run without it.
func (c *Client) RandomPair(ctx context.Context) (race.PagePair, error) {
	query := url.Values{
		"action":      {"query"},
		"format":      {"json"},
		"list":        {"random"},
		"rnnamespace": {"0"},
		"rnlimit":     {"2"},
	}

	var payload struct {
		Query struct {
			Random []struct {
				Title string `json:"title"`
			} `json:"random"`
		} `json:"query"`
	}
	if err := c.apiGet(ctx, query, &payload); err != nil {
		return race.PagePair{}, err
	}
	if len(payload.Query.Random) < 2 {
		return race.PagePair{}, fmt.Errorf("%w: expected 2 random pages, got %d",
			race.ErrProviderUnavailable, len(payload.Query.Random))
	}

	pair := race.PagePair{
		StartPage:  payload.Query.Random[0].Title,
		TargetPage: payload.Query.Random[1].Title,
	}

	desc, err := c.Summary(ctx, pair.TargetPage)
	if err != nil {
		log.Printf("[WIKI] No summary for %q: %v", pair.TargetPage, err)
	} else {
		pair.TargetDesc = desc
	}
	return pair, nil
}

// Summary fetches the intro extract of a page as plain text, truncated
// to a short description.
func (c *Client) Summary(ctx context.Context, title string) (string, error) {
	query := url.Values{
		"action":      {"query"},
		"format":      {"json"},
		"prop":        {"extracts"},
		"exintro":     {"1"},
		"explaintext": {"1"},
		"redirects":   {"1"},
		"titles":      {title},
	}

	var payload struct {
		Query struct {
			Pages map[string]struct {
				Extract string `json:"extract"`
			} `json:"pages"`
		} `json:"query"`
	}
	if err := c.apiGet(ctx, query, &payload); err != nil {
		return "", err
	}

	for _, page := range payload.Query.Pages {
		extract := strings.TrimSpace(page.Extract)
		if extract == "" {
			continue
		}
		// Truncate on a rune boundary so accented extracts stay valid UTF-8
		if runes := []rune(extract); len(runes) > 300 {
			extract = string(runes[:300]) + "…"
		}
		return extract, nil
	}
	return "", fmt.Errorf("%w: no extract for %q", race.ErrProviderUnavailable, title)
}

// Article downloads the raw HTML of a wiki page.
func (c *Client) Article(ctx context.Context, title string) ([]byte, error) {
	pageURL := c.BaseURL + "/wiki/" + url.PathEscape(title)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", race.ErrProviderUnavailable, err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", race.ErrProviderUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %s returned %s", race.ErrProviderUnavailable, pageURL, resp.Status)
	}
	return io.ReadAll(resp.Body)
}

func (c *Client) apiGet(ctx context.Context, query url.Values, out interface{}) error {
	apiURL := c.BaseURL + "/w/api.php?" + query.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return fmt.Errorf("%w: %v", race.ErrProviderUnavailable, err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", race.ErrProviderUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: api returned %s", race.ErrProviderUnavailable, resp.Status)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: bad api response: %v", race.ErrProviderUnavailable, err)
	}
	return nil
}
