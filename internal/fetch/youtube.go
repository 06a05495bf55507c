package fetch

import (
	"context"
	"encoding/json"
	"encoding/xml"
	"html"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"blusa/internal/utils"
)

// User-facing messages for the three YouTube failure classes.
const (
	msgNoTranscript = "Não encontrei legendas para este vídeo. " +
		"Poderia verificar se o vídeo possui legendas (em português, inglês ou espanhol)?"
	msgVideoUnavailable = "Não consegui acessar este vídeo. " +
		"Ele pode ser privado, restrito, uma transmissão ao vivo ou ter sido removido."
	msgVideoGeneric = "Não consegui processar este vídeo. " +
		"Poderia tentar novamente ou enviar outro link?"
)

var timestampPattern = regexp.MustCompile(`[?&#]t=[0-9hms]+`)

// CleanURL strips trailing timestamp fragments like "&t=15s" from a YouTube
// URL so the same video always resolves to the same transcript request.
func CleanURL(url string) string {
	cleaned := timestampPattern.ReplaceAllStringFunc(url, func(match string) string {
		if strings.HasPrefix(match, "?") {
			return "?"
		}
		return ""
	})
	cleaned = strings.TrimSuffix(cleaned, "?")
	return cleaned
}

// YouTubeFetcher retrieves the transcript of a video, preferring languages
// in the configured priority order.
type YouTubeFetcher struct {
	client    *http.Client
	languages []string
	logger    *utils.Logger
}

func NewYouTubeFetcher(timeout time.Duration, languages []string, logger *utils.Logger) *YouTubeFetcher {
	if len(languages) == 0 {
		languages = []string{"pt", "en", "es"}
	}
	return &YouTubeFetcher{
		client:    &http.Client{Timeout: timeout},
		languages: languages,
		logger:    logger,
	}
}

type captionTrack struct {
	BaseURL      string `json:"baseUrl"`
	LanguageCode string `json:"languageCode"`
}

type playabilityStatus struct {
	Status string `json:"status"`
	Reason string `json:"reason"`
}

type transcriptXML struct {
	Texts []struct {
		Value string `xml:",chardata"`
	} `xml:"text"`
}

func (f *YouTubeFetcher) Fetch(ctx context.Context, url string) Result {
	url = CleanURL(url)
	f.logger.Infof("fetching youtube transcript: %s", url)

	page, err := f.get(ctx, url)
	if err != nil {
		f.logger.Errorf("youtube watch page fetch failed for %s: %v", url, err)
		return Fail(msgVideoGeneric)
	}

	if status, ok := extractPlayability(page); ok && status.Status != "OK" {
		f.logger.Warnf("youtube video %s not playable: %s (%s)", url, status.Status, status.Reason)
		return Fail(msgVideoUnavailable)
	}

	tracks := extractCaptionTracks(page)
	if len(tracks) == 0 {
		f.logger.Warnf("youtube video %s has no caption tracks", url)
		return Fail(msgNoTranscript)
	}
	track, ok := pickTrack(tracks, f.languages)
	if !ok {
		f.logger.Warnf("youtube video %s has no transcript in %v", url, f.languages)
		return Fail(msgNoTranscript)
	}

	raw, err := f.get(ctx, html.UnescapeString(track.BaseURL))
	if err != nil {
		f.logger.Errorf("youtube transcript fetch failed for %s: %v", url, err)
		return Fail(msgVideoGeneric)
	}
	var transcript transcriptXML
	if err := xml.Unmarshal([]byte(raw), &transcript); err != nil {
		f.logger.Errorf("youtube transcript parse failed for %s: %v", url, err)
		return Fail(msgVideoGeneric)
	}
	parts := make([]string, 0, len(transcript.Texts))
	for _, t := range transcript.Texts {
		parts = append(parts, html.UnescapeString(t.Value))
	}
	text := flatten(strings.Join(parts, " "))
	if text == "" {
		return Fail(msgNoTranscript)
	}
	f.logger.Infof("youtube transcript for %s extracted (%d chars, lang %s)", url, len(text), track.LanguageCode)
	return Ok(text)
}

func (f *YouTubeFetcher) get(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", webUserAgent)
	req.Header.Set("Accept-Language", "pt-BR,pt;q=0.9,en;q=0.8")
	resp, err := f.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// extractCaptionTracks pulls the captionTracks array out of the player
// response embedded in the watch page HTML.
func extractCaptionTracks(page string) []captionTrack {
	raw := extractJSONAfter(page, `"captionTracks":`)
	if raw == "" {
		return nil
	}
	var tracks []captionTrack
	if err := json.Unmarshal([]byte(raw), &tracks); err != nil {
		return nil
	}
	return tracks
}

func extractPlayability(page string) (playabilityStatus, bool) {
	raw := extractJSONAfter(page, `"playabilityStatus":`)
	if raw == "" {
		return playabilityStatus{}, false
	}
	var status playabilityStatus
	if err := json.Unmarshal([]byte(raw), &status); err != nil {
		return playabilityStatus{}, false
	}
	return status, status.Status != ""
}

// extractJSONAfter decodes the first complete JSON value that follows marker
// in text.
func extractJSONAfter(text, marker string) string {
	idx := strings.Index(text, marker)
	if idx == -1 {
		return ""
	}
	decoder := json.NewDecoder(strings.NewReader(text[idx+len(marker):]))
	var raw json.RawMessage
	if err := decoder.Decode(&raw); err != nil {
		return ""
	}
	return string(raw)
}

// pickTrack returns the first track matching the language priority order.
func pickTrack(tracks []captionTrack, languages []string) (captionTrack, bool) {
	for _, lang := range languages {
		for _, track := range tracks {
			code := strings.ToLower(track.LanguageCode)
			if code == lang || strings.HasPrefix(code, lang+"-") {
				return track, true
			}
		}
	}
	return captionTrack{}, false
}
