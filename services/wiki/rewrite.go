package wiki

import (
	"bytes"
	"fmt"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Wiki chrome that has no business inside the game iframe.
var strippedIDs = map[string]bool{
	"mw-navigation": true,
	"footer":        true,
	"siteNotice":    true,
}

var strippedClasses = []string{
	"mw-page-container-header",
	"mw-editsection",
	"mw-ui-icon",
	"reference",
}

const clickInterceptScript = `
document.addEventListener('click', function(e) {
    const link = e.target.closest('.game-link');
    if (link) {
        e.preventDefault();
        const targetPage = link.getAttribute('data-target-page');
        if (targetPage) {
            window.parent.postMessage({ type: 'page_click', page: decodeURIComponent(targetPage) }, '*');
        }
    }
});
`

const articleStyle = `
body { background: #fff; overflow-x: hidden; padding: 15px; }
.mw-page-container { max-width: 100% !important; }
#content { margin: 0 !important; padding: 0 !important; border: none !important; }
.game-link { color: #0645ad; text-decoration: none; }
.game-link:hover { text-decoration: underline; }
`

// RewriteArticle turns a raw wiki article into the intercepted game
// surface: stylesheets and images are absolutized against the wiki
// origin, internal links become .game-link elements reported to the
// parent frame via postMessage, external links are neutralized, and
// scripts plus wiki chrome are stripped.
func RewriteArticle(raw []byte, origin, roomCode string) ([]byte, error) {
	doc, err := html.Parse(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("parsing article: %w", err)
	}

	var drop []*html.Node
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.DataAtom {
			case atom.Script:
				drop = append(drop, n)
				return
			case atom.Link:
				if getAttr(n, "rel") == "stylesheet" {
					if href := getAttr(n, "href"); strings.HasPrefix(href, "/") {
						setAttr(n, "href", origin+href)
					}
				}
			case atom.Img:
				if src := getAttr(n, "src"); strings.HasPrefix(src, "/") {
					setAttr(n, "src", origin+src)
				}
				removeAttr(n, "srcset")
			case atom.A:
				rewriteAnchor(n)
			}
			if strippedIDs[getAttr(n, "id")] || hasStrippedClass(n) {
				drop = append(drop, n)
				return
			}
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(doc)

	for _, n := range drop {
		if n.Parent != nil {
			n.Parent.RemoveChild(n)
		}
	}

	if head := findElement(doc, atom.Head); head != nil {
		base := &html.Node{Type: html.ElementNode, DataAtom: atom.Base, Data: "base"}
		setAttr(base, "href", "/wiki-proxy?room="+roomCode+"&page=")
		head.AppendChild(base)
	}

	if body := findElement(doc, atom.Body); body != nil {
		script := &html.Node{Type: html.ElementNode, DataAtom: atom.Script, Data: "script"}
		script.AppendChild(&html.Node{Type: html.TextNode, Data: clickInterceptScript})
		body.AppendChild(script)

		style := &html.Node{Type: html.ElementNode, DataAtom: atom.Style, Data: "style"}
		style.AppendChild(&html.Node{Type: html.TextNode, Data: articleStyle})
		body.AppendChild(style)
	}

	var out bytes.Buffer
	if err := html.Render(&out, doc); err != nil {
		return nil, fmt.Errorf("rendering article: %w", err)
	}
	return out.Bytes(), nil
}

// Internal /wiki/ links become intercepted navigation; anything else
// (external links, special pages) is grayed out and dead.
func rewriteAnchor(n *html.Node) {
	href := getAttr(n, "href")
	if strings.HasPrefix(href, "/wiki/") {
		target := strings.TrimPrefix(href, "/wiki/")
		if i := strings.Index(target, "#"); i >= 0 {
			target = target[:i]
		}
		setAttr(n, "href", "#")
		setAttr(n, "data-target-page", target)
		addClass(n, "game-link")
		appendStyle(n, "cursor: pointer;")
		return
	}
	removeAttr(n, "href")
	appendStyle(n, "color: gray; cursor: not-allowed;")
}

func getAttr(n *html.Node, key string) string {
	for _, attr := range n.Attr {
		if attr.Key == key {
			return attr.Val
		}
	}
	return ""
}

func setAttr(n *html.Node, key, val string) {
	for i, attr := range n.Attr {
		if attr.Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}

// appendStyle merges declarations into an existing inline style instead
// of replacing it.
func appendStyle(n *html.Node, style string) {
	existing := strings.TrimSpace(getAttr(n, "style"))
	if existing == "" {
		setAttr(n, "style", style)
		return
	}
	if !strings.HasSuffix(existing, ";") {
		existing += ";"
	}
	setAttr(n, "style", existing+" "+style)
}

func removeAttr(n *html.Node, key string) {
	for i, attr := range n.Attr {
		if attr.Key == key {
			n.Attr = append(n.Attr[:i], n.Attr[i+1:]...)
			return
		}
	}
}

func addClass(n *html.Node, class string) {
	existing := getAttr(n, "class")
	if existing == "" {
		setAttr(n, "class", class)
		return
	}
	for _, c := range strings.Fields(existing) {
		if c == class {
			return
		}
	}
	setAttr(n, "class", existing+" "+class)
}

func hasStrippedClass(n *html.Node) bool {
	classes := strings.Fields(getAttr(n, "class"))
	for _, c := range classes {
		for _, stripped := range strippedClasses {
			if c == stripped {
				return true
			}
		}
	}
	return false
}

func findElement(n *html.Node, a atom.Atom) *html.Node {
	if n.Type == html.ElementNode && n.DataAtom == a {
		return n
	}
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		if found := findElement(child, a); found != nil {
			return found
		}
	}
	return nil
}
