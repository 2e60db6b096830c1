package services

import (
	"context"
	"fmt"
	"time"

	"youtube-leadgen/config"
	"youtube-leadgen/models"
	"youtube-leadgen/storage"
	"youtube-leadgen/utils"
)

// ChannelSource yields candidate channels for a keyword and resolves
// their metadata and latest upload.
type ChannelSource interface {
	SearchChannels(ctx context.Context, keyword string, max int) ([]string, error)
	ChannelDetails(ctx context.Context, ids []string) ([]*models.Channel, error)
	LatestVideo(ctx context.Context, channelID string) (*models.Video, error)
}

// StatusFunc receives each human-readable progress line. It is a pure
// side channel: the pipeline never blocks on it or depends on it for
// correctness.
type StatusFunc func(message string)

// Pipeline drives the keyword and candidate loops: search, detail
// fetch, filters, email resolution, enrichment, persistence. Strictly
// sequential, one candidate at a time, no retries.
type Pipeline struct {
	cfg      *config.RunConfig
	source   ChannelSource
	resolver *EmailResolver
	enricher Enricher
	filters  *FilterChain
	store    storage.LeadStore
	sheet    storage.LeadAppender
	seen     *utils.SeenSet
	logger   *utils.Logger
	onStatus StatusFunc
}

// NewPipeline wires the pipeline. onStatus may be nil.
func NewPipeline(
	cfg *config.RunConfig,
	source ChannelSource,
	resolver *EmailResolver,
	enricher Enricher,
	store storage.LeadStore,
	sheet storage.LeadAppender,
	logger *utils.Logger,
	onStatus StatusFunc,
) *Pipeline {
	return &Pipeline{
		cfg:      cfg,
		source:   source,
		resolver: resolver,
		enricher: enricher,
		filters:  NewFilterChain(cfg, store, logger),
		store:    store,
		sheet:    sheet,
		seen:     utils.NewSeenSet(),
		logger:   logger,
		onStatus: onStatus,
	}
}

// Run executes the full pipeline and returns the number of leads
// generated together with the leads themselves. The counter increments
// once per candidate that reaches the persistence stage, regardless of
// sink outcome.
func (p *Pipeline) Run(ctx context.Context) (int, []*models.Lead, error) {
	if err := p.cfg.Validate(); err != nil {
		return 0, nil, err
	}

	p.log("[pipeline] Starting lead generation: %d keywords, countries %v, subs [%d, %d]",
		len(p.cfg.Keywords), p.cfg.AllowedCountries, p.cfg.MinSubscribers, p.cfg.MaxSubscribers)

	total := 0
	var leads []*models.Lead

	for _, keyword := range p.cfg.Keywords {
		p.log("[pipeline] Searching keyword: %q (limit %d)", keyword, p.cfg.MaxPerKeyword)

		ids, err := p.source.SearchChannels(ctx, keyword, p.cfg.MaxPerKeyword)
		if err != nil {
			p.logger.Warn("[pipeline] Search failed for %q: %v", keyword, err)
			continue
		}
		p.log("[pipeline] Found %d channels for %q", len(ids), keyword)
		if len(ids) == 0 {
			continue
		}

		channels, err := p.source.ChannelDetails(ctx, ids)
		if err != nil {
			p.logger.Warn("[pipeline] Detail fetch failed for %q: %v", keyword, err)
			continue
		}

		for _, ch := range channels {
			lead := p.processCandidate(ctx, keyword, ch)
			if lead == nil {
				continue
			}
			total++
			leads = append(leads, lead)
		}
	}

	p.log("[pipeline] Run complete, total leads generated: %d", total)
	return total, leads, nil
}

// processCandidate runs one candidate through stages in order and
// returns the persisted lead, or nil when any stage rejected it.
func (p *Pipeline) processCandidate(ctx context.Context, keyword string, ch *models.Channel) *models.Lead {
	p.log("[pipeline] Processing: %s (%s)", ch.Title, ch.ID)

	if !p.seen.Add(ch.ID) {
		p.log("[pipeline]   skipped: already processed this run")
		return nil
	}

	if pass, reason := p.filters.Check(ctx, ch); !pass {
		p.log("[pipeline]   skipped: %s", reason)
		return nil
	}

	channelURL := ch.URL()
	p.log("[pipeline]   scraping emails from %s", channelURL)
	primary, all := p.resolver.Resolve(ctx, channelURL)
	if primary == "" {
		p.log("[pipeline]   skipped: no valid personal emails found")
		return nil
	}
	p.log("[pipeline]   found email: %s", primary)

	videoTitle := "No video found"
	if video, err := p.source.LatestVideo(ctx, ch.ID); err != nil {
		p.logger.Warn("[pipeline] Latest-video lookup failed for %s: %v", ch.ID, err)
	} else if video != nil {
		videoTitle = video.Title
	}

	p.log("[pipeline]   enriching with inference provider")
	enrichment := p.enricher.EnrichLead(ctx, ch, videoTitle)
	lead := p.buildLead(keyword, ch, primary, all, videoTitle, enrichment)

	if err := p.store.Insert(ctx, lead); err != nil {
		p.log("[pipeline]   database save failed: %v", err)
	} else {
		p.log("[pipeline]   saved to database")
	}

	if err := p.sheet.Append(ctx, lead); err != nil {
		p.log("[pipeline]   sheet append failed: %v", err)
	} else {
		p.log("[pipeline]   appended to sheet")
	}

	return lead
}

func (p *Pipeline) buildLead(keyword string, ch *models.Channel, primary string,
	all []string, videoTitle string, enr *models.Enrichment) *models.Lead {
	return &models.Lead{
		Timestamp:     time.Now(),
		SourceKeyword: keyword,

		Email:       primary,
		EmailSource: p.resolver.Source(),
		EmailStatus: "Found",
		AllEmails:   all,

		ChannelID:               ch.ID,
		ChannelURL:              ch.URL(),
		ChannelTitle:            ch.Title,
		ChannelDescriptionShort: enr.ChannelDescriptionShort,
		Country:                 ch.Country,
		SubscriberCount:         ch.SubscriberCount,
		ViewCount:               ch.ViewCount,
		VideoCount:              ch.VideoCount,

		ContactName:           ContactFirstName(enr.ContactName),
		ContactNameConfidence: enr.ContactNameConfidence,
		ProductType:           enr.ProductType,
		ProductDescription:    enr.ProductDescription,
		ProductName:           ProductNameOrDefault(enr.ProductName),

		LastVideoTitle:      videoTitle,
		LastVideoParaphrase: enr.LastVideoParaphrase,
	}
}

// log writes a progress line to the logger and forwards it to the
// status callback when one is set.
func (p *Pipeline) log(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	p.logger.Info("%s", msg)
	if p.onStatus != nil {
		p.onStatus(msg)
	}
}
