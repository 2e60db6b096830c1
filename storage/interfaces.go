package storage

import (
	"context"

	"youtube-leadgen/models"
)

// LeadStore is the row-store the pipeline dedups against and inserts into.
type LeadStore interface {
	Exists(ctx context.Context, channelID string) (bool, error)
	Insert(ctx context.Context, lead *models.Lead) error
}

// LeadAppender is the spreadsheet sink: one appended row per lead.
type LeadAppender interface {
	Append(ctx context.Context, lead *models.Lead) error
}

// LeadExporter persists the full set of generated leads after a run.
type LeadExporter interface {
	WriteLeads(leads []*models.Lead) error
	Close() error
}
