package chat

import (
	"regexp"
	"strings"
)

// LocatorKind says what kind of content source a message points at.
type LocatorKind int

const (
	PlainText LocatorKind = iota
	WebURL
	YouTubeURL
	PDFPath
)

func (k LocatorKind) String() string {
	switch k {
	case WebURL:
		return "web"
	case YouTubeURL:
		return "youtube"
	case PDFPath:
		return "pdf"
	}
	return "plain"
}

// Locator is the classification of a raw user message. Value holds the URL
// or file path when Kind is not PlainText.
type Locator struct {
	Kind  LocatorKind
	Value string
}

var (
	urlPattern     = regexp.MustCompile(`https?://\S+`)
	youtubePattern = regexp.MustCompile(`(?i)^(?:https?://)?(?:www\.)?(?:youtube\.com|youtu\.be)/`)
)

// Classify maps raw user text to a Locator. It is pure and total: every
// input yields exactly one result and no I/O happens here.
//
// The first http(s) URL substring wins; YouTube hosts are split out from
// generic web URLs. Without a URL, text ending in ".pdf" (case-insensitive)
// is a local file path. Everything else is plain conversation.
func Classify(text string) Locator {
	if url := urlPattern.FindString(text); url != "" {
		if youtubePattern.MatchString(url) {
			return Locator{Kind: YouTubeURL, Value: url}
		}
		return Locator{Kind: WebURL, Value: url}
	}
	trimmed := strings.TrimSpace(text)
	if strings.HasSuffix(strings.ToLower(trimmed), ".pdf") {
		return Locator{Kind: PDFPath, Value: trimmed}
	}
	return Locator{Kind: PlainText, Value: text}
}
