package services

import (
	"context"
	"strings"

	"youtube-leadgen/models"
)

// Enricher is the inference collaborator. Implementations substitute
// an all-defaults record on provider failure rather than erroring.
type Enricher interface {
	EnrichLead(ctx context.Context, ch *models.Channel, latestVideoTitle string) *models.Enrichment
}

// ContactFirstName reduces the inferred name to the contact's first
// name. An absent or "unknown" name (any case) yields the greeting
// fallback "there".
func ContactFirstName(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" || strings.EqualFold(raw, "unknown") {
		return "there"
	}
	return strings.Fields(raw)[0]
}

// ProductNameOrDefault substitutes "offer" for an absent or "unknown"
// product name so it always fits the outreach template sentence.
func ProductNameOrDefault(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" || strings.EqualFold(raw, "unknown") {
		return "offer"
	}
	return raw
}
