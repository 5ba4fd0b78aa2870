package fetch

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/chromedp/chromedp"
)

// DefaultBrowserTimeout bounds a headless render.
const DefaultBrowserTimeout = 30 * time.Second

// WithBrowser loads url in headless Chrome and returns the page HTML once
// client-side rendering has settled. Chrome must be on PATH.
func WithBrowser(ctx context.Context, url string, timeout time.Duration) (string, error) {
	if timeout <= 0 {
		timeout = DefaultBrowserTimeout
	}
	slog.Debug("starting headless browser", slog.String("url", url))

	allocCtx, cancel := chromedp.NewExecAllocator(ctx,
		append(chromedp.DefaultExecAllocatorOptions[:],
			chromedp.Flag("headless", true),
			chromedp.Flag("disable-gpu", true),
			chromedp.Flag("no-sandbox", true),
			chromedp.Flag("disable-dev-shm-usage", true),
			chromedp.UserAgent(DefaultUserAgent),
		)...,
	)
	defer cancel()

	browserCtx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	browserCtx, cancel = context.WithTimeout(browserCtx, timeout)
	defer cancel()

	var html string
	err := chromedp.Run(browserCtx,
		chromedp.Navigate(url),
		chromedp.WaitReady("body"),
		// Give client-side rendering a moment to populate results
		chromedp.Sleep(2*time.Second),
		chromedp.OuterHTML("html", &html),
	)
	if err != nil {
		return "", &Error{URL: url, Message: "browser rendering failed", Cause: err}
	}

	slog.Debug("rendered page", slog.String("url", url), slog.Int("bytes", len(html)))
	return html, nil
}

// Renderer fetches page HTML either over plain HTTP or through a headless browser.
type Renderer struct {
	UseBrowser bool
	Options    *Options
}

// Fetch returns the HTML of url using the configured strategy.
func (r Renderer) Fetch(ctx context.Context, url string) (string, error) {
	if r.UseBrowser {
		timeout := DefaultBrowserTimeout
		if r.Options != nil && r.Options.Timeout > 0 {
			timeout = r.Options.Timeout
		}
		return WithBrowser(ctx, url, timeout)
	}
	res, err := URL(ctx, url, r.Options)
	if err != nil {
		return "", err
	}
	if res == nil {
		return "", fmt.Errorf("empty fetch result for %s", url)
	}
	return res.HTML, nil
}
