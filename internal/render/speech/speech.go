// Package speech shapes article HTML into text suitable for synthesized
// reading: invisible and non-prose elements are dropped, and pause
// markers are inserted so headings, paragraphs, and quotes get natural
// intonation breaks.
package speech

import (
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

var skipTags = map[string]struct{}{
	"style":    {},
	"script":   {},
	"noscript": {},
	"iframe":   {},
	"code":     {},
	"pre":      {},
}

var (
	reWhitespace   = regexp.MustCompile(`\s+`)
	reSentenceEnd  = regexp.MustCompile(`([.!?])\s+`)
	reShortPause   = regexp.MustCompile(`([,;])\s+`)
	reDoublePause  = regexp.MustCompile(`\.\.\. \.\.\. `)
	reCommaThenDot = regexp.MustCompile(`,\s*\.`)
)

// CleanForSpeech converts article HTML into speech-ready plain text.
func CleanForSpeech(htmlContent string) string {
	doc, err := html.Parse(strings.NewReader(htmlContent))
	if err != nil {
		// html.Parse is lenient; if it fails the content is not worth
		// shaping, read it as-is with tags collapsed.
		return postprocess(htmlContent)
	}
	return postprocess(visibleText(doc))
}

func visibleText(n *html.Node) string {
	switch n.Type {
	case html.TextNode:
		return strings.TrimSpace(n.Data)
	case html.CommentNode, html.DoctypeNode:
		return ""
	case html.ElementNode:
		if _, skip := skipTags[n.Data]; skip {
			return ""
		}
		if hasAttr(n, "aria-hidden") {
			return ""
		}
	}

	var sb strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		sb.WriteString(visibleText(c))
		sb.WriteString(" ")
	}
	text := sb.String()

	if n.Type != html.ElementNode {
		return text
	}
	switch n.Data {
	case "p":
		text += "... "
	case "div":
		text += ". "
	case "h1":
		text += ".... "
	case "h2", "h3":
		text += "... "
	case "h4", "h5", "h6":
		text += ".. "
	case "li":
		text += ", "
	case "blockquote":
		text = "... " + text + " ... "
	}
	return text
}

func hasAttr(n *html.Node, key string) bool {
	for _, attr := range n.Attr {
		if attr.Key == key {
			return true
		}
	}
	return false
}

func postprocess(text string) string {
	text = reWhitespace.ReplaceAllString(text, " ")
	text = reSentenceEnd.ReplaceAllString(text, "$1... ")
	text = reShortPause.ReplaceAllString(text, "$1 ")
	text = reDoublePause.ReplaceAllString(text, "... ")
	text = reCommaThenDot.ReplaceAllString(text, ".")
	text = reWhitespace.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}
