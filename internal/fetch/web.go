package fetch

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/PuerkitoBio/goquery"

	"blusa/internal/utils"
)

const webUserAgent = "Mozilla/5.0 (compatible; blusa/1.0)"

// WebFetcher downloads a page and extracts its readable text.
type WebFetcher struct {
	client *http.Client
	logger *utils.Logger
}

func NewWebFetcher(timeout time.Duration, logger *utils.Logger) *WebFetcher {
	return &WebFetcher{
		client: &http.Client{Timeout: timeout},
		logger: logger,
	}
}

func (f *WebFetcher) Fetch(ctx context.Context, url string) Result {
	f.logger.Infof("fetching web page: %s", url)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		f.logger.Errorf("bad web request for %s: %v", url, err)
		return Fail(webErrorMessage(url))
	}
	req.Header.Set("User-Agent", webUserAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		f.logger.Errorf("web fetch failed for %s: %v", url, err)
		return Fail(webErrorMessage(url))
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		f.logger.Errorf("web fetch for %s returned status %d", url, resp.StatusCode)
		return Fail(webErrorMessage(url))
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		f.logger.Errorf("web parse failed for %s: %v", url, err)
		return Fail(webErrorMessage(url))
	}
	doc.Find("script, style, noscript").Remove()
	text := flatten(doc.Find("body").Text())
	if text == "" {
		f.logger.Warnf("web page %s had no readable text", url)
		return Fail(webErrorMessage(url))
	}
	f.logger.Infof("web page %s extracted (%d chars)", url, len(text))
	return Ok(text)
}

func webErrorMessage(url string) string {
	return fmt.Sprintf("Não consegui acessar o conteúdo da página %s. "+
		"Poderia verificar se o link está correto?", url)
}
