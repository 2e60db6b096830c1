package storage

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"youtube-leadgen/models"
)

// CSVWriter exports generated leads to a local CSV file.
// It is safe for concurrent use.
type CSVWriter struct {
	mu     sync.Mutex
	file   *os.File
	writer *csv.Writer
}

var csvHeader = []string{
	"timestamp", "source_keyword", "email", "email_source", "all_emails",
	"channel_id", "channel_url", "channel_title", "country",
	"subscriber_count", "view_count", "video_count",
	"contact_name", "contact_name_confidence",
	"product_type", "product_description", "product_name",
	"last_video_title", "last_video_paraphrase",
}

// NewCSVWriter creates (or truncates) the CSV file at the given path and
// writes the header row. Intermediate directories are created automatically.
func NewCSVWriter(path string) (*CSVWriter, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("csv: create output dir: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("csv: create file %q: %w", path, err)
	}

	w := csv.NewWriter(f)
	if err := w.Write(csvHeader); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("csv: write header: %w", err)
	}
	w.Flush()

	return &CSVWriter{file: f, writer: w}, nil
}

// WriteLeads appends one row per lead.
func (c *CSVWriter) WriteLeads(leads []*models.Lead) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, l := range leads {
		row := []string{
			l.Timestamp.Format(time.RFC3339),
			l.SourceKeyword,
			l.Email,
			l.EmailSource,
			strings.Join(l.AllEmails, ";"),
			l.ChannelID,
			l.ChannelURL,
			l.ChannelTitle,
			l.Country,
			strconv.FormatInt(l.SubscriberCount, 10),
			strconv.FormatInt(l.ViewCount, 10),
			strconv.FormatInt(l.VideoCount, 10),
			l.ContactName,
			l.ContactNameConfidence,
			l.ProductType,
			l.ProductDescription,
			l.ProductName,
			l.LastVideoTitle,
			l.LastVideoParaphrase,
		}
		if err := c.writer.Write(row); err != nil {
			return fmt.Errorf("csv: write row: %w", err)
		}
	}

	c.writer.Flush()
	return c.writer.Error()
}

// Close flushes and closes the underlying file.
func (c *CSVWriter) Close() error {
	c.writer.Flush()
	return c.file.Close()
}
