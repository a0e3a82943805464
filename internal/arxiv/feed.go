// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package arxiv

import (
	"encoding/xml"
	"strconv"
	"strings"
)

// arXiv Atom feed XML structures.

// Feed is one page of the arXiv query response.
type Feed struct {
	XMLName      xml.Name `xml:"feed"`
	TotalResults int      `xml:"totalResults"`
	StartIndex   int      `xml:"startIndex"`
	Entries      []Entry  `xml:"entry"`
}

// Entry is a single paper in the Atom feed.
type Entry struct {
	ID              string     `xml:"id"` // "http://arxiv.org/abs/2301.07041v1"
	Title           string     `xml:"title"`
	Summary         string     `xml:"summary"` // abstract
	Published       string     `xml:"published"`
	Updated         string     `xml:"updated"`
	Authors         []Author   `xml:"author"`
	Categories      []Category `xml:"category"`
	Links           []Link     `xml:"link"`
	DOI             string     `xml:"doi"`
	PrimaryCategory Category   `xml:"primary_category"`
}

// Author is a paper author element.
type Author struct {
	Name string `xml:"name"`
}

// Category is an arXiv subject classification.
type Category struct {
	Term string `xml:"term,attr"`
}

// Link is a link element; the PDF link carries type "application/pdf".
type Link struct {
	Href  string `xml:"href,attr"`
	Rel   string `xml:"rel,attr"`
	Type  string `xml:"type,attr"`
	Title string `xml:"title,attr"`
}

// ArxivID extracts the bare arXiv ID from the entry's <id> URL
// (e.g. "http://arxiv.org/abs/2301.07041v1" → "2301.07041").
func (e Entry) ArxivID() string {
	const prefix = "/abs/"
	idx := strings.Index(e.ID, prefix)
	if idx < 0 {
		return ""
	}
	id := e.ID[idx+len(prefix):]

	// Strip version suffix (e.g. "v1", "v2").
	if vIdx := strings.LastIndex(id, "v"); vIdx > 0 {
		if _, err := strconv.Atoi(id[vIdx+1:]); err == nil {
			id = id[:vIdx]
		}
	}
	return id
}

// PDFURL returns the feed's PDF link, falling back to the conventional
// arXiv PDF URL derived from the entry ID.
func (e Entry) PDFURL() string {
	for _, l := range e.Links {
		if l.Title == "pdf" || l.Type == "application/pdf" {
			return l.Href
		}
	}
	if id := e.ArxivID(); id != "" {
		return "http://arxiv.org/pdf/" + id
	}
	return ""
}
