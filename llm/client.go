package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"youtube-leadgen/models"
	"youtube-leadgen/utils"
)

// Client enriches a candidate channel through an OpenAI-compatible
// chat-completions endpoint. Any provider failure or malformed
// response degrades to the all-defaults record; enrichment must never
// drop a lead that already has a valid email.
type Client struct {
	apiKey  string
	model   string
	baseURL string
	http    *http.Client
	logger  *utils.Logger
}

// NewClient creates an enrichment client. baseURL without trailing
// slash, e.g. "https://api.openai.com/v1".
func NewClient(apiKey, model, baseURL string, logger *utils.Logger) *Client {
	return &Client{
		apiKey:  apiKey,
		model:   model,
		baseURL: baseURL,
		http:    &http.Client{Timeout: 60 * time.Second},
		logger:  logger,
	}
}

const systemPrompt = "You are a helpful assistant that outputs JSON."

const promptTemplate = `You are an expert lead researcher. Analyze the following YouTube channel data and the latest video title.

Channel Title: %s
Description: %s
Custom URL: %s
Latest Video Title: %s

Task 1: Extract the likely real name of the creator. If unknown, guess based on channel name or return "Unknown".
Task 2: Detect the product or offer they sell. Choose from: coaching, consulting, agency, online course, community, software, physical product, mixed, unknown. Also provide a short description.
Task 3: Extract the main topic of the video to complete the sentence 'got your video about...'. Example: 'AI agents' or 'your trip to Japan'. Do not include 'I watched...' or the full sentence.
Task 4: Summarize the channel description into a short blurb.
Task 5: Extract a short 'product name' that fits into the sentence: 'I also checked out your [Product name], good stuff.' If the product is complex or mixed, just return 'offer'.

Return JSON format:
{
    "contact_name": "Name",
    "contact_name_confidence": "High/Medium/Low",
    "product_type": "Type",
    "product_description": "Description",
    "product_name": "Product Name",
    "last_video_paraphrase": "Paraphrase",
    "channel_description_short": "Summary"
}`

type chatRequest struct {
	Model          string         `json:"model"`
	Messages       []chatMessage  `json:"messages"`
	ResponseFormat responseFormat `json:"response_format"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// DefaultEnrichment is the all-defaults record substituted on provider
// failure or malformed output.
func DefaultEnrichment() *models.Enrichment {
	return &models.Enrichment{
		ContactName:           "Unknown",
		ContactNameConfidence: "Low",
		ProductType:           "unknown",
	}
}

// EnrichLead infers contact and product attributes from channel
// metadata and the latest video title.
func (c *Client) EnrichLead(ctx context.Context, ch *models.Channel, latestVideoTitle string) *models.Enrichment {
	prompt := fmt.Sprintf(promptTemplate, ch.Title, ch.Description, ch.CustomURL, latestVideoTitle)

	raw, err := c.complete(ctx, prompt)
	if err != nil {
		c.logger.Warn("[llm] Enrichment failed for %s: %v, using defaults", ch.ID, err)
		return DefaultEnrichment()
	}

	var enr models.Enrichment
	if err := json.Unmarshal([]byte(stripFences(raw)), &enr); err != nil {
		c.logger.Warn("[llm] Malformed enrichment response for %s: %v, using defaults", ch.ID, err)
		return DefaultEnrichment()
	}
	return &enr
}

func (c *Client) complete(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: prompt},
		},
		ResponseFormat: responseFormat{Type: "json_object"},
	})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("status %d: %s", resp.StatusCode, string(msg))
	}

	var parsed chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("no choices in response")
	}
	return parsed.Choices[0].Message.Content, nil
}

// stripFences removes markdown code fences from LLM output.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
