package services

import (
	"context"
	"fmt"

	"youtube-leadgen/config"
	"youtube-leadgen/models"
	"youtube-leadgen/storage"
	"youtube-leadgen/utils"
)

// FilterChain applies the candidate filters in fixed order: country,
// subscriber range, duplicate check. The first failing filter halts
// evaluation.
type FilterChain struct {
	cfg    *config.RunConfig
	store  storage.LeadStore
	logger *utils.Logger
}

// NewFilterChain creates a FilterChain over the run configuration and
// the row-store used for the duplicate check.
func NewFilterChain(cfg *config.RunConfig, store storage.LeadStore, logger *utils.Logger) *FilterChain {
	return &FilterChain{cfg: cfg, store: store, logger: logger}
}

// Check decides pass/reject for a candidate with populated metadata.
// On rejection the returned reason is human-readable; later filters
// are not evaluated.
func (f *FilterChain) Check(ctx context.Context, ch *models.Channel) (bool, string) {
	if !f.countryAllowed(ch.Country) {
		return false, fmt.Sprintf("country %q not in allowed list", ch.Country)
	}

	// Inclusive at both bounds; a hidden count was defaulted to 0.
	if ch.SubscriberCount < f.cfg.MinSubscribers || ch.SubscriberCount > f.cfg.MaxSubscribers {
		return false, fmt.Sprintf("subscribers %d out of range [%d, %d]",
			ch.SubscriberCount, f.cfg.MinSubscribers, f.cfg.MaxSubscribers)
	}

	exists, err := f.store.Exists(ctx, ch.ID)
	if err != nil {
		// Fail open: a transient read error must not cost a lead. The
		// UNIQUE constraint on channel_id catches a rare double insert.
		f.logger.Warn("[filter] Duplicate check failed for %s, treating as new: %v", ch.ID, err)
		return true, ""
	}
	if exists {
		return false, "already in database"
	}

	return true, ""
}

// countryAllowed is a case-sensitive exact match against the
// provider-supplied country codes. An absent country never passes.
func (f *FilterChain) countryAllowed(country string) bool {
	if country == "" {
		return false
	}
	for _, allowed := range f.cfg.AllowedCountries {
		if country == allowed {
			return true
		}
	}
	return false
}
