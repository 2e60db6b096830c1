package services

import (
	"context"
	"fmt"
	"reflect"
	"testing"

	"youtube-leadgen/utils"
)

func TestFilterRoleAccounts(t *testing.T) {
	tests := []struct {
		name  string
		input []string
		want  []string
	}{
		{
			name:  "drops role accounts",
			input: []string{"owner@x.com", "support@x.com", "info_updates@x.com"},
			want:  []string{"owner@x.com"},
		},
		{
			name:  "role keyword anywhere in the address",
			input: []string{"jane.contact@x.com", "helpdesk@x.com", "presales@x.com", "jane@x.com"},
			want:  []string{"jane@x.com"},
		},
		{
			name:  "dedup is case-insensitive",
			input: []string{"Jane@x.com", "jane@x.com", "JANE@X.COM"},
			want:  []string{"Jane@x.com"},
		},
		{
			name:  "sorted lexicographically",
			input: []string{"zoe@x.com", "amy@x.com", "mia@x.com"},
			want:  []string{"amy@x.com", "mia@x.com", "zoe@x.com"},
		},
		{
			name:  "whitespace trimmed, empties dropped",
			input: []string{"  jane@x.com ", "", "   "},
			want:  []string{"jane@x.com"},
		},
		{
			name:  "all role accounts",
			input: []string{"support@x.com", "sales@x.com"},
			want:  nil,
		},
		{
			name:  "empty input",
			input: nil,
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterRoleAccounts(tt.input)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("FilterRoleAccounts(%v) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestResolvePicksLexicographicPrimary(t *testing.T) {
	scraper := &fakeScraper{emails: map[string][]string{
		"https://www.youtube.com/channel/UC1": {"zoe@x.com", "amy@x.com"},
	}}
	r := NewEmailResolver(scraper, "Apify", utils.NewLogger())

	primary, all := r.Resolve(context.Background(), "https://www.youtube.com/channel/UC1")
	if primary != "amy@x.com" {
		t.Errorf("primary: got %q, want %q", primary, "amy@x.com")
	}
	if len(all) != 2 {
		t.Errorf("all: got %d emails, want 2", len(all))
	}
}

func TestResolveSwallowsScraperError(t *testing.T) {
	r := NewEmailResolver(&fakeScraper{err: fmt.Errorf("actor timed out")}, "Apify", utils.NewLogger())

	primary, all := r.Resolve(context.Background(), "https://www.youtube.com/channel/UC1")
	if primary != "" || all != nil {
		t.Errorf("Resolve after scraper error = (%q, %v), want (\"\", nil)", primary, all)
	}
}

func TestResolverSource(t *testing.T) {
	r := NewEmailResolver(&fakeScraper{}, "Browser", utils.NewLogger())
	if r.Source() != "Browser" {
		t.Errorf("Source() = %q, want %q", r.Source(), "Browser")
	}
}
