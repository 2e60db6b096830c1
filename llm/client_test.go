package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"youtube-leadgen/models"
	"youtube-leadgen/utils"
)

func testClient(srv *httptest.Server) *Client {
	return &Client{
		apiKey:  "sk-test",
		model:   "gpt-4o-mini",
		baseURL: srv.URL,
		http:    srv.Client(),
		logger:  utils.NewLogger(),
	}
}

func completionWith(content string) string {
	resp := map[string]any{
		"choices": []map[string]any{
			{"message": map[string]string{"content": content}},
		},
	}
	b, _ := json.Marshal(resp)
	return string(b)
}

func TestEnrichLead(t *testing.T) {
	enrichmentJSON := `{
		"contact_name": "Jane Doe",
		"contact_name_confidence": "High",
		"product_type": "coaching",
		"product_description": "Etsy shop coaching",
		"product_name": "Coaching Program",
		"last_video_paraphrase": "scaling an Etsy shop",
		"channel_description_short": "Etsy tips for sellers"
	}`

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("path = %q, want /chat/completions", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer sk-test" {
			t.Errorf("Authorization = %q", got)
		}

		var req chatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if req.Model != "gpt-4o-mini" {
			t.Errorf("model = %q", req.Model)
		}
		if req.ResponseFormat.Type != "json_object" {
			t.Errorf("response_format = %q", req.ResponseFormat.Type)
		}
		if len(req.Messages) != 2 {
			t.Fatalf("got %d messages, want 2", len(req.Messages))
		}
		if !strings.Contains(req.Messages[1].Content, "Jane's Etsy Tips") {
			t.Error("prompt missing channel title")
		}
		if !strings.Contains(req.Messages[1].Content, "How I scaled my Etsy shop") {
			t.Error("prompt missing latest video title")
		}

		fmt.Fprint(w, completionWith(enrichmentJSON))
	}))
	defer srv.Close()

	ch := &models.Channel{ID: "UC1", Title: "Jane's Etsy Tips", Description: "Etsy coaching", CustomURL: "@janetips"}
	enr := testClient(srv).EnrichLead(context.Background(), ch, "How I scaled my Etsy shop")

	if enr.ContactName != "Jane Doe" {
		t.Errorf("ContactName = %q", enr.ContactName)
	}
	if enr.ProductType != "coaching" {
		t.Errorf("ProductType = %q", enr.ProductType)
	}
	if enr.ProductName != "Coaching Program" {
		t.Errorf("ProductName = %q", enr.ProductName)
	}
	if enr.LastVideoParaphrase != "scaling an Etsy shop" {
		t.Errorf("LastVideoParaphrase = %q", enr.LastVideoParaphrase)
	}
}

func TestEnrichLeadStripsCodeFences(t *testing.T) {
	fenced := "```json\n{\"contact_name\": \"Jane Doe\", \"product_type\": \"coaching\"}\n```"
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, completionWith(fenced))
	}))
	defer srv.Close()

	enr := testClient(srv).EnrichLead(context.Background(), &models.Channel{ID: "UC1"}, "title")
	if enr.ContactName != "Jane Doe" || enr.ProductType != "coaching" {
		t.Errorf("enrichment = %+v", enr)
	}
}

func TestEnrichLeadDefaultsOnServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"rate limited"}`, http.StatusTooManyRequests)
	}))
	defer srv.Close()

	enr := testClient(srv).EnrichLead(context.Background(), &models.Channel{ID: "UC1"}, "title")
	want := DefaultEnrichment()
	if enr.ContactName != want.ContactName || enr.ProductType != want.ProductType {
		t.Errorf("enrichment = %+v, want defaults", enr)
	}
}

func TestEnrichLeadDefaultsOnMalformedContent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, completionWith("I could not produce JSON, sorry."))
	}))
	defer srv.Close()

	enr := testClient(srv).EnrichLead(context.Background(), &models.Channel{ID: "UC1"}, "title")
	if enr.ContactName != "Unknown" || enr.ContactNameConfidence != "Low" || enr.ProductType != "unknown" {
		t.Errorf("enrichment = %+v, want defaults", enr)
	}
}

func TestEnrichLeadDefaultsOnEmptyChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"choices":[]}`)
	}))
	defer srv.Close()

	enr := testClient(srv).EnrichLead(context.Background(), &models.Channel{ID: "UC1"}, "title")
	if enr.ContactName != "Unknown" {
		t.Errorf("enrichment = %+v, want defaults", enr)
	}
}

func TestStripFences(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"{\"a\":1}", "{\"a\":1}"},
		{"```json\n{\"a\":1}\n```", "{\"a\":1}"},
		{"```\n{\"a\":1}\n```", "{\"a\":1}"},
		{"  {\"a\":1}  ", "{\"a\":1}"},
	}
	for _, tt := range tests {
		if got := stripFences(tt.in); got != tt.want {
			t.Errorf("stripFences(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
