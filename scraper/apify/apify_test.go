package apify

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"

	"youtube-leadgen/utils"
)

func testClient(srv *httptest.Server) *Client {
	return &Client{
		token:   "tok",
		actorID: "exporter24~youtube-email-scraper",
		baseURL: srv.URL,
		http:    srv.Client(),
		logger:  utils.NewLogger(),
	}
}

func TestFindEmails(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		wantPath := "/v2/acts/exporter24~youtube-email-scraper/run-sync-get-dataset-items"
		if r.URL.Path != wantPath {
			t.Errorf("path = %q, want %q", r.URL.Path, wantPath)
		}
		if r.URL.Query().Get("token") != "tok" {
			t.Errorf("token = %q", r.URL.Query().Get("token"))
		}

		var input map[string]any
		if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
			t.Fatalf("decode actor input: %v", err)
		}
		if input["url"] != "https://www.youtube.com/channel/UC1" {
			t.Errorf("input url = %v", input["url"])
		}

		fmt.Fprint(w, `[
			{"email":"jane@brand.com","emails":["support@brand.com","jane@brand.com"]},
			{"emails":"solo@brand.com"}
		]`)
	}))
	defer srv.Close()

	emails, err := testClient(srv).FindEmails(context.Background(), "https://www.youtube.com/channel/UC1")
	if err != nil {
		t.Fatalf("FindEmails: %v", err)
	}
	want := []string{"jane@brand.com", "support@brand.com", "jane@brand.com", "solo@brand.com"}
	if !reflect.DeepEqual(emails, want) {
		t.Errorf("emails = %v, want %v", emails, want)
	}
}

func TestFindEmailsAcceptsCreated(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		fmt.Fprint(w, `[{"email":"jane@brand.com"}]`)
	}))
	defer srv.Close()

	emails, err := testClient(srv).FindEmails(context.Background(), "https://www.youtube.com/channel/UC1")
	if err != nil {
		t.Fatalf("FindEmails: %v", err)
	}
	if len(emails) != 1 || emails[0] != "jane@brand.com" {
		t.Errorf("emails = %v", emails)
	}
}

func TestFindEmailsActorFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"actor not found"}`, http.StatusNotFound)
	}))
	defer srv.Close()

	if _, err := testClient(srv).FindEmails(context.Background(), "https://www.youtube.com/channel/UC1"); err == nil {
		t.Error("expected error for failed actor run")
	}
}

func TestCollectStrings(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{"string", `"a@x.com"`, []string{"a@x.com"}},
		{"empty string", `""`, nil},
		{"array", `["a@x.com","b@x.com"]`, []string{"a@x.com", "b@x.com"}},
		{"array with non-strings", `["a@x.com", 42, null]`, []string{"a@x.com"}},
		{"null", `null`, nil},
		{"absent", ``, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := collectStrings(json.RawMessage(tt.raw))
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("collectStrings(%s) = %v, want %v", tt.raw, got, tt.want)
			}
		})
	}
}
