package chrome

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"regexp"
	"time"

	"github.com/chromedp/chromedp"

	"youtube-leadgen/utils"
)

// Scraper is the fallback email scraper: it loads the channel's about
// page in headless Chrome and pulls address-shaped strings out of the
// rendered text and mailto links. Used when no Apify token is
// configured.
type Scraper struct {
	logger *utils.Logger
}

var emailRE = regexp.MustCompile(`[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}`)

// New creates a browser-based email Scraper.
func New(logger *utils.Logger) *Scraper {
	return &Scraper{logger: logger}
}

// FindEmails loads {channelURL}/about and returns every email-like
// string found on the page. The list may contain duplicates; the
// caller owns dedup and filtering.
func (s *Scraper) FindEmails(ctx context.Context, channelURL string) ([]string, error) {
	chromeBin := findChromeBinary()
	s.logger.Debug("[chrome] Using browser binary: %s", chromeBin)

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-setuid-sandbox", true),
		chromedp.UserAgent("Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 "+
			"(KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"),
	)
	if chromeBin != "" {
		opts = append(opts, chromedp.ExecPath(chromeBin))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()

	// Suppress chromedp log noise
	tabCtx, cancelTab := chromedp.NewContext(allocCtx, chromedp.WithLogf(func(string, ...interface{}) {}))
	defer cancelTab()

	tabCtx, cancelTimeout := context.WithTimeout(tabCtx, 60*time.Second)
	defer cancelTimeout()

	var pageText string
	err := chromedp.Run(tabCtx,
		chromedp.Navigate(channelURL+"/about"),
		chromedp.Sleep(5*time.Second),

		// Collect visible text plus mailto targets, which YouTube
		// renders as links rather than plain text.
		chromedp.Evaluate(`
			(function() {
				var parts = [document.body ? document.body.innerText : ''];
				var links = document.querySelectorAll('a[href^="mailto:"]');
				for (var i = 0; i < links.length; i++) {
					parts.push(links[i].getAttribute('href').slice(7));
				}
				return parts.join('\n');
			})()
		`, &pageText),
	)
	if err != nil {
		return nil, fmt.Errorf("chrome: about page %s: %w", channelURL, err)
	}

	emails := emailRE.FindAllString(pageText, -1)
	s.logger.Debug("[chrome] %s: %d raw addresses", channelURL, len(emails))
	return emails, nil
}

// findChromeBinary locates Chrome/Chromium binary.
func findChromeBinary() string {
	if bin := os.Getenv("CHROME_BIN"); bin != "" {
		return bin
	}

	names := []string{"google-chrome-stable", "google-chrome", "chromium", "chromium-browser"}
	for _, name := range names {
		if path, err := exec.LookPath(name); err == nil {
			return path
		}
	}

	paths := []string{
		"/usr/bin/google-chrome-stable",
		"/usr/bin/google-chrome",
		"/usr/bin/chromium-browser",
		"/usr/bin/chromium",
		"/snap/bin/chromium",
		"/opt/google/chrome/google-chrome",
	}
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}

	return ""
}
