// Package pagetext extracts readable text from a web page so the docs
// backend can ground answers in the page the user is looking at, when
// the browser extension did not send the text itself.
package pagetext

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// maxChars bounds the extracted text passed along as grounding context.
const maxChars = 8000

var fetchClient = &http.Client{Timeout: 10 * time.Second}

// Fetch downloads the page and returns its extracted text.
func Fetch(ctx context.Context, pageURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := fetchClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("bad status fetching page: %d", resp.StatusCode)
	}
	return Extract(resp.Body)
}

// Extract parses HTML and returns cleaned body text with scripts,
// styles and chrome removed.
func Extract(r io.Reader) (string, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return "", err
	}
	doc.Find("script, style, noscript, nav, footer").Remove()

	body := doc.Find("body")
	var sb strings.Builder
	for _, node := range body.Nodes {
		collectText(node, &sb)
	}

	text := strings.Join(strings.Fields(sb.String()), " ")
	if len(text) > maxChars {
		text = text[:maxChars]
	}
	return text, nil
}

func collectText(n *html.Node, sb *strings.Builder) {
	if n.Type == html.TextNode {
		sb.WriteString(n.Data)
		sb.WriteString(" ")
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(c, sb)
	}
}
