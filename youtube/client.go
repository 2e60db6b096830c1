package youtube

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"youtube-leadgen/models"
	"youtube-leadgen/utils"
)

// Client talks to the YouTube Data API v3: channel search, channel
// details and latest-upload lookup.
type Client struct {
	apiKey  string
	baseURL string
	http    *http.Client
	logger  *utils.Logger
}

const apiBase = "https://www.googleapis.com/youtube/v3"

// NewClient creates a YouTube Data API client with the given key.
func NewClient(apiKey string, logger *utils.Logger) *Client {
	return &Client{
		apiKey:  apiKey,
		baseURL: apiBase,
		http:    &http.Client{Timeout: 15 * time.Second},
		logger:  logger,
	}
}

// --- Data API response types ---

type searchResponse struct {
	Items []struct {
		Snippet struct {
			ChannelID string `json:"channelId"`
		} `json:"snippet"`
	} `json:"items"`
}

type channelsResponse struct {
	Items []struct {
		ID      string `json:"id"`
		Snippet struct {
			Title       string `json:"title"`
			Description string `json:"description"`
			CustomURL   string `json:"customUrl"`
			Country     string `json:"country"`
		} `json:"snippet"`
		// The API serializes statistics counters as JSON strings.
		Statistics struct {
			SubscriberCount       string `json:"subscriberCount"`
			HiddenSubscriberCount bool   `json:"hiddenSubscriberCount"`
			ViewCount             string `json:"viewCount"`
			VideoCount            string `json:"videoCount"`
		} `json:"statistics"`
		ContentDetails struct {
			RelatedPlaylists struct {
				Uploads string `json:"uploads"`
			} `json:"relatedPlaylists"`
		} `json:"contentDetails"`
	} `json:"items"`
}

type playlistItemsResponse struct {
	Items []struct {
		Snippet struct {
			Title string `json:"title"`
		} `json:"snippet"`
	} `json:"items"`
}

// SearchChannels returns up to max channel IDs matching the keyword.
func (c *Client) SearchChannels(ctx context.Context, keyword string, max int) ([]string, error) {
	params := url.Values{}
	params.Set("part", "snippet")
	params.Set("q", keyword)
	params.Set("type", "channel")
	params.Set("maxResults", strconv.Itoa(max))

	var resp searchResponse
	if err := c.get(ctx, "/search", params, &resp); err != nil {
		return nil, fmt.Errorf("youtube: search %q: %w", keyword, err)
	}

	ids := make([]string, 0, len(resp.Items))
	for _, item := range resp.Items {
		if item.Snippet.ChannelID != "" {
			ids = append(ids, item.Snippet.ChannelID)
		}
	}
	return ids, nil
}

// ChannelDetails fetches metadata and statistics for the given channel IDs.
func (c *Client) ChannelDetails(ctx context.Context, ids []string) ([]*models.Channel, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	params := url.Values{}
	params.Set("part", "snippet,contentDetails,statistics")
	params.Set("id", strings.Join(ids, ","))

	var resp channelsResponse
	if err := c.get(ctx, "/channels", params, &resp); err != nil {
		return nil, fmt.Errorf("youtube: channel details: %w", err)
	}

	channels := make([]*models.Channel, 0, len(resp.Items))
	for _, item := range resp.Items {
		channels = append(channels, &models.Channel{
			ID:              item.ID,
			Title:           item.Snippet.Title,
			Description:     item.Snippet.Description,
			CustomURL:       item.Snippet.CustomURL,
			Country:         item.Snippet.Country,
			SubscriberCount: parseCount(item.Statistics.SubscriberCount),
			ViewCount:       parseCount(item.Statistics.ViewCount),
			VideoCount:      parseCount(item.Statistics.VideoCount),
		})
	}
	return channels, nil
}

// LatestVideo resolves the channel's uploads playlist and returns its
// first item. Returns (nil, nil) when the channel has no uploads.
func (c *Client) LatestVideo(ctx context.Context, channelID string) (*models.Video, error) {
	params := url.Values{}
	params.Set("part", "contentDetails")
	params.Set("id", channelID)

	var chResp channelsResponse
	if err := c.get(ctx, "/channels", params, &chResp); err != nil {
		return nil, fmt.Errorf("youtube: uploads playlist for %s: %w", channelID, err)
	}
	if len(chResp.Items) == 0 {
		return nil, nil
	}
	uploads := chResp.Items[0].ContentDetails.RelatedPlaylists.Uploads
	if uploads == "" {
		return nil, nil
	}

	params = url.Values{}
	params.Set("part", "snippet")
	params.Set("playlistId", uploads)
	params.Set("maxResults", "1")

	var plResp playlistItemsResponse
	if err := c.get(ctx, "/playlistItems", params, &plResp); err != nil {
		return nil, fmt.Errorf("youtube: latest upload for %s: %w", channelID, err)
	}
	if len(plResp.Items) == 0 {
		return nil, nil
	}
	return &models.Video{Title: plResp.Items[0].Snippet.Title}, nil
}

func (c *Client) get(ctx context.Context, path string, params url.Values, out any) error {
	params.Set("key", c.apiKey)
	reqURL := c.baseURL + path + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("status %d: %s", resp.StatusCode, string(body))
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// parseCount converts an API counter string to int64, defaulting to 0
// when missing or hidden.
func parseCount(raw string) int64 {
	if raw == "" {
		return 0
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0
	}
	return n
}
