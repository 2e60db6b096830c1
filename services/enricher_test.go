package services

import "testing"

func TestContactFirstName(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"Maria Lopez", "Maria"},
		{"  John  Smith ", "John"},
		{"Cher", "Cher"},
		{"Unknown", "there"},
		{"unknown", "there"},
		{"UNKNOWN", "there"},
		{"", "there"},
		{"   ", "there"},
	}

	for _, tt := range tests {
		if got := ContactFirstName(tt.raw); got != tt.want {
			t.Errorf("ContactFirstName(%q) = %q, want %q", tt.raw, got, tt.want)
		}
	}
}

func TestProductNameOrDefault(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"Coaching Program", "Coaching Program"},
		{"Unknown", "offer"},
		{"unknown", "offer"},
		{"", "offer"},
		{"  ", "offer"},
	}

	for _, tt := range tests {
		if got := ProductNameOrDefault(tt.raw); got != tt.want {
			t.Errorf("ProductNameOrDefault(%q) = %q, want %q", tt.raw, got, tt.want)
		}
	}
}
