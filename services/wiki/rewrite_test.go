package wiki

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

const sampleArticle = `<!DOCTYPE html>
<html>
<head>
<link rel="stylesheet" href="/w/load.php?modules=site.styles">
<title>Coffee</title>
</head>
<body>
<div id="siteNotice">fundraiser banner</div>
<p>Coffee pairs well with <a href="/wiki/Milk">milk</a> and
<a href="/wiki/Espresso#History">espresso</a>.
See also <a href="https://example.com/brew">this external guide</a>.</p>
<span class="mw-editsection"><a href="/w/index.php?action=edit">edit</a></span>
<img src="/static/images/cup.jpg" srcset="/static/images/cup-2x.jpg 2x">
<script src="/w/load.php?modules=startup"></script>
</body>
</html>`

func TestRewriteArticleInterceptsInternalLinks(t *testing.T) {
	out, err := RewriteArticle([]byte(sampleArticle), "https://en.wikipedia.org", "ABC12")
	assert.NoError(t, err)
	page := string(out)

	assert.Contains(t, page, `data-target-page="Milk"`)
	assert.Contains(t, page, `class="game-link"`)
	// Section anchors never leak into the target page name
	assert.Contains(t, page, `data-target-page="Espresso"`)
	assert.NotContains(t, page, `data-target-page="Espresso#History"`)
}

func TestRewriteArticleNeutralizesExternalLinks(t *testing.T) {
	out, err := RewriteArticle([]byte(sampleArticle), "https://en.wikipedia.org", "ABC12")
	assert.NoError(t, err)
	page := string(out)

	assert.NotContains(t, page, `https://example.com/brew"`)
	assert.Contains(t, page, "not-allowed")
}

func TestRewriteArticleKeepsExistingInlineStyles(t *testing.T) {
	article := `<html><body>
<a href="/wiki/Milk" style="font-weight: bold">milk</a>
<a href="https://example.com" style="font-style: italic;">out</a>
</body></html>`

	out, err := RewriteArticle([]byte(article), "https://en.wikipedia.org", "ABC12")
	assert.NoError(t, err)
	page := string(out)

	assert.Contains(t, page, `style="font-weight: bold; cursor: pointer;"`)
	assert.Contains(t, page, `style="font-style: italic; color: gray; cursor: not-allowed;"`)
}

func TestRewriteArticleAbsolutizesAssets(t *testing.T) {
	out, err := RewriteArticle([]byte(sampleArticle), "https://en.wikipedia.org", "ABC12")
	assert.NoError(t, err)
	page := string(out)

	assert.Contains(t, page, `href="https://en.wikipedia.org/w/load.php?modules=site.styles"`)
	assert.Contains(t, page, `src="https://en.wikipedia.org/static/images/cup.jpg"`)
	assert.NotContains(t, page, "srcset")
}

func TestRewriteArticleStripsScriptsAndChrome(t *testing.T) {
	out, err := RewriteArticle([]byte(sampleArticle), "https://en.wikipedia.org", "ABC12")
	assert.NoError(t, err)
	page := string(out)

	assert.NotContains(t, page, "modules=startup")
	assert.NotContains(t, page, "fundraiser banner")
	assert.NotContains(t, page, "mw-editsection")

	// The only script left is the injected click interceptor
	assert.Equal(t, 1, strings.Count(page, "<script>"))
	assert.Contains(t, page, "page_click")
}

func TestRewriteArticleInjectsBaseHref(t *testing.T) {
	out, err := RewriteArticle([]byte(sampleArticle), "https://en.wikipedia.org", "ABC12")
	assert.NoError(t, err)

	assert.Contains(t, string(out), `<base href="/wiki-proxy?room=ABC12&amp;page="`)
}
