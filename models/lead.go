package models

import "time"

// Channel holds the metadata and statistics fetched for a candidate
// channel. Counts default to 0 when the provider hides them.
type Channel struct {
	ID              string
	Title           string
	Description     string
	CustomURL       string
	Country         string
	SubscriberCount int64
	ViewCount       int64
	VideoCount      int64
}

// URL returns the canonical channel URL. Always built from the channel
// ID, never from the handle or custom URL.
func (c *Channel) URL() string {
	return "https://www.youtube.com/channel/" + c.ID
}

// Video is the most recent upload of a channel.
type Video struct {
	Title string
}

// Enrichment is the structured record produced by the inference provider.
type Enrichment struct {
	ContactName             string `json:"contact_name"`
	ContactNameConfidence   string `json:"contact_name_confidence"`
	ProductType             string `json:"product_type"`
	ProductDescription      string `json:"product_description"`
	ProductName             string `json:"product_name"`
	LastVideoParaphrase     string `json:"last_video_paraphrase"`
	ChannelDescriptionShort string `json:"channel_description_short"`
}

// Lead is the terminal record for a contactable channel: channel
// metadata, resolved emails and enrichment output. Immutable after
// persistence; a duplicate check prevents re-creation for a channel
// that was already stored.
type Lead struct {
	Timestamp     time.Time
	SourceKeyword string

	Email       string
	EmailSource string
	EmailStatus string
	AllEmails   []string

	ChannelID               string
	ChannelURL              string
	ChannelTitle            string
	ChannelDescriptionShort string
	Country                 string
	SubscriberCount         int64
	ViewCount               int64
	VideoCount              int64

	ContactName           string
	ContactNameConfidence string
	ProductType           string
	ProductDescription    string
	ProductName           string

	// Left empty on purpose: filled in manually after the run.
	WebsiteURL string
	Notes      string

	LastVideoTitle      string
	LastVideoParaphrase string
}

// RunReport holds the computed summary over the leads of a single run.
type RunReport struct {
	TotalLeads     int
	LeadsByCountry map[string]int
	LeadsByProduct map[string]int
	MinSubscribers int64
	MaxSubscribers int64
	AvgSubscribers float64
	LargestChannel *Lead
}
