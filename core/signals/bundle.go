package signals

import (
	"html"
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"github.com/PuerkitoBio/goquery"

	"github.com/leofalp/sitefinder/core/normalize"
)

// Bundle holds the normalized text fields of one page. It is read-only once
// built.
type Bundle struct {
	Title    string
	Meta     string
	OG       string
	Headings string
	Footer   string
	Full     string
	// Parked is set when the page is a placeholder: for sale, a default
	// server page, under construction or a directory listing.
	Parked bool
}

// Extract builds the Bundle of a raw HTML document. It never fails: a
// document that cannot be parsed yields an empty Bundle.
func Extract(rawHTML string) Bundle {
	if strings.TrimSpace(rawHTML) == "" {
		return Bundle{}
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return Bundle{}
	}

	var metas []string
	doc.Find("meta[content]").Each(func(_ int, s *goquery.Selection) {
		if c := strings.TrimSpace(s.AttrOr("content", "")); c != "" {
			metas = append(metas, c)
		}
	})

	var headings []string
	doc.Find("h1, h2").Each(func(_ int, s *goquery.Selection) {
		headings = append(headings, s.Text())
	})

	title := html.UnescapeString(doc.Find("title").First().Text())
	b := Bundle{
		Title:    normalize.Normalize(title),
		Meta:     normalize.Normalize(strings.Join(metas, " ")),
		OG:       normalize.Normalize(doc.Find(`meta[property="og:site_name"]`).First().AttrOr("content", "")),
		Headings: normalize.Normalize(strings.Join(headings, " ")),
		Footer:   normalize.Normalize(doc.Find("footer").First().Text()),
	}
	b.Full = normalize.Normalize(title + " " + visibleText(doc))
	b.Parked = isParked(b, rawHTML)
	return b
}

// visibleText renders the body text of doc. Attributes are dropped first so
// link targets and image sources never read as page text. The document text
// is the fallback when the markdown conversion fails. visibleText modifies
// doc.
func visibleText(doc *goquery.Document) string {
	doc.Find("head, script, style, noscript, template, svg").Remove()
	doc.Find("*").Each(func(_ int, s *goquery.Selection) {
		for _, n := range s.Nodes {
			n.Attr = nil
		}
	})

	if h, err := doc.Html(); err == nil {
		if md, err := htmltomarkdown.ConvertString(h); err == nil && strings.TrimSpace(md) != "" {
			return md
		}
	}
	return doc.Text()
}

func isParked(b Bundle, rawHTML string) bool {
	if directoryListingPattern.MatchString(rawHTML) {
		return true
	}
	text := b.Title + " " + b.Full
	return normalize.ContainsAny(text, parkingPatterns)
}
