package fetch

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blusa/internal/utils"
)

func TestCleanURL(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{
			input: "https://www.youtube.com/watch?v=dQw4w9WgXcQ&t=15s",
			want:  "https://www.youtube.com/watch?v=dQw4w9WgXcQ",
		},
		{
			input: "https://youtu.be/dQw4w9WgXcQ?t=90",
			want:  "https://youtu.be/dQw4w9WgXcQ",
		},
		{
			input: "https://www.youtube.com/watch?v=dQw4w9WgXcQ#t=1h2m",
			want:  "https://www.youtube.com/watch?v=dQw4w9WgXcQ",
		},
		{
			input: "https://www.youtube.com/watch?v=dQw4w9WgXcQ",
			want:  "https://www.youtube.com/watch?v=dQw4w9WgXcQ",
		},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, CleanURL(tt.input), "input %s", tt.input)
	}
}

func TestPickTrack(t *testing.T) {
	tracks := []captionTrack{
		{BaseURL: "u-en", LanguageCode: "en"},
		{BaseURL: "u-pt", LanguageCode: "pt-BR"},
		{BaseURL: "u-es", LanguageCode: "es"},
	}

	track, ok := pickTrack(tracks, []string{"pt", "en", "es"})
	require.True(t, ok)
	assert.Equal(t, "u-pt", track.BaseURL)

	track, ok = pickTrack(tracks[:1], []string{"pt", "en"})
	require.True(t, ok)
	assert.Equal(t, "u-en", track.BaseURL)

	_, ok = pickTrack([]captionTrack{{BaseURL: "u-de", LanguageCode: "de"}}, []string{"pt", "en", "es"})
	assert.False(t, ok)
}

func TestExtractCaptionTracks(t *testing.T) {
	page := `var ytInitialPlayerResponse = {"captions":{"playerCaptionsTracklistRenderer":` +
		`{"captionTracks":[{"baseUrl":"https://example.com/tt?lang=pt","languageCode":"pt"}]}}};`
	tracks := extractCaptionTracks(page)
	require.Len(t, tracks, 1)
	assert.Equal(t, "pt", tracks[0].LanguageCode)

	assert.Empty(t, extractCaptionTracks("<html>no captions here</html>"))
}

// fakeWatchServer serves a watch page pointing the caption track at its own
// /transcript endpoint.
func fakeWatchServer(t *testing.T, playability, transcript string, langs ...string) *httptest.Server {
	t.Helper()
	var srv *httptest.Server
	srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/transcript" {
			w.Write([]byte(transcript))
			return
		}
		page := `{"playabilityStatus":` + playability + `}`
		if len(langs) > 0 {
			page += `{"captionTracks":[`
			for i, lang := range langs {
				if i > 0 {
					page += ","
				}
				page += fmt.Sprintf(`{"baseUrl":"%s/transcript","languageCode":"%s"}`, srv.URL, lang)
			}
			page += `]}`
		}
		w.Write([]byte("<html>" + page + "</html>"))
	}))
	return srv
}

func TestYouTubeFetcherHappyPath(t *testing.T) {
	transcript := `<?xml version="1.0" encoding="utf-8"?>
<transcript>
  <text start="0.0" dur="2.0">Olá, pessoal!</text>
  <text start="2.0" dur="3.0">Bem-vindos ao   vídeo.</text>
</transcript>`
	srv := fakeWatchServer(t, `{"status":"OK"}`, transcript, "en", "pt")
	defer srv.Close()

	f := NewYouTubeFetcher(5*time.Second, []string{"pt", "en", "es"}, utils.NewNopLogger())
	result := f.Fetch(context.Background(), srv.URL+"/watch?v=abc&t=15s")

	require.True(t, result.OK(), "unexpected error: %s", result.Err)
	assert.Equal(t, "Olá, pessoal! Bem-vindos ao vídeo.", result.Content)
}

func TestYouTubeFetcherNoCaptionTracks(t *testing.T) {
	srv := fakeWatchServer(t, `{"status":"OK"}`, "")
	defer srv.Close()

	f := NewYouTubeFetcher(5*time.Second, nil, utils.NewNopLogger())
	result := f.Fetch(context.Background(), srv.URL+"/watch?v=abc")

	assert.False(t, result.OK())
	assert.Contains(t, result.Err, "legendas")
}

func TestYouTubeFetcherNoRequestedLanguage(t *testing.T) {
	srv := fakeWatchServer(t, `{"status":"OK"}`, "", "de", "fr")
	defer srv.Close()

	f := NewYouTubeFetcher(5*time.Second, []string{"pt", "en", "es"}, utils.NewNopLogger())
	result := f.Fetch(context.Background(), srv.URL+"/watch?v=abc")

	assert.False(t, result.OK())
	assert.Contains(t, result.Err, "legendas")
}

func TestYouTubeFetcherUnavailableVideo(t *testing.T) {
	for _, status := range []string{"ERROR", "LOGIN_REQUIRED", "UNPLAYABLE"} {
		srv := fakeWatchServer(t, fmt.Sprintf(`{"status":"%s","reason":"indisponível"}`, status), "", "pt")
		f := NewYouTubeFetcher(5*time.Second, nil, utils.NewNopLogger())
		result := f.Fetch(context.Background(), srv.URL+"/watch?v=abc")
		srv.Close()

		assert.False(t, result.OK(), "status %s", status)
		assert.Contains(t, result.Err, "vídeo", "status %s", status)
		assert.NotContains(t, result.Err, status)
	}
}

func TestYouTubeFetcherUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	f := NewYouTubeFetcher(2*time.Second, nil, utils.NewNopLogger())
	result := f.Fetch(context.Background(), url+"/watch?v=abc")

	assert.False(t, result.OK())
	assert.NotEmpty(t, result.Err)
}
