package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/lib/pq"

	"youtube-leadgen/models"
)

// PostgresStore persists leads to PostgreSQL and answers the
// duplicate check. One row per channel, never rewritten in place.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore opens a connection to PostgreSQL, runs schema
// migrations, and returns a ready-to-use PostgresStore.
func NewPostgresStore(dsn string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: open: %w", err)
	}

	for i := 0; i < 10; i++ {
		if err = db.Ping(); err == nil {
			break
		}
		time.Sleep(2 * time.Second)
	}
	if err != nil {
		return nil, fmt.Errorf("postgres: ping failed after retries: %w", err)
	}

	ps := &PostgresStore{db: db}
	if err := ps.migrate(); err != nil {
		return nil, fmt.Errorf("postgres: migrate: %w", err)
	}

	return ps, nil
}

func (ps *PostgresStore) migrate() error {
	_, err := ps.db.Exec(`
		CREATE TABLE IF NOT EXISTS leads (
			id                        SERIAL PRIMARY KEY,
			channel_id                TEXT        UNIQUE NOT NULL,
			source_keyword            TEXT        NOT NULL DEFAULT '',
			primary_email             TEXT        NOT NULL,
			email_source              TEXT        NOT NULL DEFAULT '',
			email_status              TEXT        NOT NULL DEFAULT '',
			all_emails                TEXT[]      NOT NULL DEFAULT '{}',
			channel_title             TEXT        NOT NULL DEFAULT '',
			channel_url               TEXT        NOT NULL DEFAULT '',
			channel_description_short TEXT        NOT NULL DEFAULT '',
			country                   TEXT        NOT NULL DEFAULT '',
			subscriber_count          BIGINT      NOT NULL DEFAULT 0,
			view_count                BIGINT      NOT NULL DEFAULT 0,
			video_count               BIGINT      NOT NULL DEFAULT 0,
			contact_name              TEXT        NOT NULL DEFAULT '',
			contact_name_confidence   TEXT        NOT NULL DEFAULT '',
			product_type              TEXT        NOT NULL DEFAULT '',
			product_description       TEXT        NOT NULL DEFAULT '',
			product_name              TEXT        NOT NULL DEFAULT '',
			website_url               TEXT        NOT NULL DEFAULT '',
			last_video_title          TEXT        NOT NULL DEFAULT '',
			last_video_paraphrase     TEXT        NOT NULL DEFAULT '',
			notes                     TEXT        NOT NULL DEFAULT '',
			created_at                TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);

		CREATE INDEX IF NOT EXISTS idx_leads_country        ON leads(country);
		CREATE INDEX IF NOT EXISTS idx_leads_source_keyword ON leads(source_keyword);
		CREATE INDEX IF NOT EXISTS idx_leads_product_type   ON leads(product_type);
	`)
	return err
}

// Exists reports whether a lead for the channel ID is already stored.
func (ps *PostgresStore) Exists(ctx context.Context, channelID string) (bool, error) {
	var one int
	err := ps.db.QueryRowContext(ctx,
		"SELECT 1 FROM leads WHERE channel_id = $1", channelID).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("postgres: exists %s: %w", channelID, err)
	}
	return true, nil
}

// Insert stores a single lead row.
func (ps *PostgresStore) Insert(ctx context.Context, l *models.Lead) error {
	_, err := ps.db.ExecContext(ctx, `
		INSERT INTO leads (
			channel_id, source_keyword, primary_email, email_source, email_status,
			all_emails, channel_title, channel_url, channel_description_short,
			country, subscriber_count, view_count, video_count,
			contact_name, contact_name_confidence,
			product_type, product_description, product_name,
			website_url, last_video_title, last_video_paraphrase, notes, created_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13,
			$14, $15, $16, $17, $18, $19, $20, $21, $22, $23
		)
	`,
		l.ChannelID, l.SourceKeyword, l.Email, l.EmailSource, l.EmailStatus,
		pq.Array(l.AllEmails), l.ChannelTitle, l.ChannelURL, l.ChannelDescriptionShort,
		l.Country, l.SubscriberCount, l.ViewCount, l.VideoCount,
		l.ContactName, l.ContactNameConfidence,
		l.ProductType, l.ProductDescription, l.ProductName,
		l.WebsiteURL, l.LastVideoTitle, l.LastVideoParaphrase, l.Notes, l.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("postgres: insert %s: %w", l.ChannelID, err)
	}
	return nil
}

func (ps *PostgresStore) Close() error {
	return ps.db.Close()
}
