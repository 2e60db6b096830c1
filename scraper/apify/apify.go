package apify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"youtube-leadgen/utils"
)

const apiBase = "https://api.apify.com"

// Client runs the email-scraper actor synchronously and collects the
// addresses it discovered for a channel URL.
type Client struct {
	token   string
	actorID string
	baseURL string
	http    *http.Client
	logger  *utils.Logger
}

// NewClient creates an Apify actor client. The token is the credential
// supplied at run start.
func NewClient(token, actorID string, logger *utils.Logger) *Client {
	return &Client{
		token:   token,
		actorID: actorID,
		baseURL: apiBase,
		// Actor runs are synchronous and can take a while.
		http:   &http.Client{Timeout: 120 * time.Second},
		logger: logger,
	}
}

type actorInput struct {
	URL      string     `json:"url"`
	MaxItems int        `json:"maxItems"`
	Proxy    proxyInput `json:"proxy"`
}

type proxyInput struct {
	UseApifyProxy bool `json:"useApifyProxy"`
}

// datasetItem tolerates both singular and plural email fields, each of
// which may be a single string or a list.
type datasetItem struct {
	Email  json.RawMessage `json:"email"`
	Emails json.RawMessage `json:"emails"`
}

// FindEmails runs the actor against the channel URL and returns every
// email-like string from the resulting dataset items. The list may
// contain duplicates; the caller owns dedup and filtering.
func (c *Client) FindEmails(ctx context.Context, channelURL string) ([]string, error) {
	input := actorInput{
		URL:      channelURL,
		MaxItems: 1,
		Proxy:    proxyInput{UseApifyProxy: true},
	}
	body, err := json.Marshal(input)
	if err != nil {
		return nil, fmt.Errorf("apify: marshal input: %w", err)
	}

	reqURL := fmt.Sprintf("%s/v2/acts/%s/run-sync-get-dataset-items?token=%s",
		c.baseURL, c.actorID, c.token)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("apify: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("apify: run actor: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("apify: actor run status %d: %s", resp.StatusCode, string(msg))
	}

	var items []datasetItem
	if err := json.NewDecoder(resp.Body).Decode(&items); err != nil {
		return nil, fmt.Errorf("apify: decode dataset items: %w", err)
	}

	var emails []string
	for _, item := range items {
		emails = append(emails, collectStrings(item.Email)...)
		emails = append(emails, collectStrings(item.Emails)...)
	}
	c.logger.Debug("[apify] %s: %d raw addresses", channelURL, len(emails))
	return emails, nil
}

// collectStrings accepts a raw JSON value that is either a string or an
// array and returns the non-empty strings it holds.
func collectStrings(raw json.RawMessage) []string {
	if len(raw) == 0 {
		return nil
	}

	var single string
	if err := json.Unmarshal(raw, &single); err == nil {
		if single == "" {
			return nil
		}
		return []string{single}
	}

	var list []any
	if err := json.Unmarshal(raw, &list); err != nil {
		return nil
	}
	var out []string
	for _, v := range list {
		if s, ok := v.(string); ok && s != "" {
			out = append(out, s)
		}
	}
	return out
}
