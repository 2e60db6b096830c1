package services

import (
	"context"
	"sort"
	"strings"

	"youtube-leadgen/utils"
)

// EmailScraper is the external scraping collaborator. Implementations
// may return duplicates; the resolver owns dedup and filtering.
type EmailScraper interface {
	FindEmails(ctx context.Context, channelURL string) ([]string, error)
}

// roleKeywords mark role-account mailboxes. Matched as substrings
// anywhere in the lowercased address, so an unrelated word containing
// one of them is a known false positive.
var roleKeywords = []string{"support", "info", "contact", "help", "sales"}

// EmailResolver invokes the scraper for a channel URL and reduces the
// result to a deterministic, role-account-free email list.
type EmailResolver struct {
	scraper EmailScraper
	source  string
	logger  *utils.Logger
}

// NewEmailResolver creates an EmailResolver. source labels where the
// emails came from ("Apify" or "Browser") and is recorded on the lead.
func NewEmailResolver(scraper EmailScraper, source string, logger *utils.Logger) *EmailResolver {
	return &EmailResolver{scraper: scraper, source: source, logger: logger}
}

// Source returns the scraper label recorded on leads.
func (r *EmailResolver) Source() string { return r.source }

// Resolve returns the primary email and the full filtered list for a
// channel URL. A scraper failure is swallowed and counts as zero
// emails found; an empty filtered list returns ("", nil).
func (r *EmailResolver) Resolve(ctx context.Context, channelURL string) (string, []string) {
	found, err := r.scraper.FindEmails(ctx, channelURL)
	if err != nil {
		r.logger.Warn("[emails] Scrape failed for %s: %v", channelURL, err)
		found = nil
	}

	valid := FilterRoleAccounts(found)
	if len(valid) == 0 {
		return "", nil
	}
	return valid[0], valid
}

// FilterRoleAccounts dedups the scraped addresses, drops role-account
// mailboxes and sorts the remainder lexicographically so the primary
// selection is deterministic across runs.
func FilterRoleAccounts(emails []string) []string {
	seen := make(map[string]struct{}, len(emails))
	var out []string

	for _, e := range emails {
		e = strings.TrimSpace(e)
		if e == "" {
			continue
		}
		lower := strings.ToLower(e)
		if _, dup := seen[lower]; dup {
			continue
		}
		seen[lower] = struct{}{}

		if isRoleAccount(lower) {
			continue
		}
		out = append(out, e)
	}

	sort.Slice(out, func(i, j int) bool {
		return strings.ToLower(out[i]) < strings.ToLower(out[j])
	})
	return out
}

func isRoleAccount(lower string) bool {
	for _, kw := range roleKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
