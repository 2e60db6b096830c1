package storage

import (
	"context"
	"fmt"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"youtube-leadgen/models"
)

// leadColumn binds a spreadsheet header to a Lead field accessor. The
// order of leadColumns is the column order of the destination sheet.
type leadColumn struct {
	header string
	value  func(l *models.Lead) string
}

func blankColumn(*models.Lead) string { return "" }

// Columns D, F and G stay blank for out-of-band manual entry; H and J
// are spacers.
var leadColumns = []leadColumn{
	{"name", func(l *models.Lead) string { return l.ContactName }},
	{"email", func(l *models.Lead) string { return l.Email }},
	{"YouTube handle", func(l *models.Lead) string { return l.ChannelURL }},
	{"about link", blankColumn},
	{"transcript", func(l *models.Lead) string { return l.LastVideoParaphrase }},
	{"Loom code", blankColumn},
	{"Loom URL", blankColumn},
	{"Spacer H", blankColumn},
	{"channel name", func(l *models.Lead) string { return l.ChannelTitle }},
	{"Spacer J", blankColumn},
	{"channel ID", func(l *models.Lead) string { return l.ChannelID }},
	{"product", productCell},
	{"product name", func(l *models.Lead) string { return l.ProductName }},
}

// productCell prefers the free-text description over the type.
func productCell(l *models.Lead) string {
	if l.ProductDescription != "" {
		return l.ProductDescription
	}
	return l.ProductType
}

// SheetHeaders returns the header row in column order.
func SheetHeaders() []string {
	out := make([]string, len(leadColumns))
	for i, col := range leadColumns {
		out[i] = col.header
	}
	return out
}

// LeadRow maps a lead onto the fixed column schema.
func LeadRow(l *models.Lead) []string {
	out := make([]string, len(leadColumns))
	for i, col := range leadColumns {
		out[i] = col.value(l)
	}
	return out
}

// SheetsWriter appends leads to a Google Sheets tab, creating the tab
// and its header row on first use.
type SheetsWriter struct {
	svc     *sheets.Service
	sheetID string
	tab     string
	ready   bool
}

// NewSheetsWriter authorizes against the Sheets API with a service
// account credentials file. Credential problems surface here and abort
// the run.
func NewSheetsWriter(ctx context.Context, credentialsFile, sheetID, tab string) (*SheetsWriter, error) {
	if sheetID == "" {
		return nil, fmt.Errorf("sheets: spreadsheet ID is required")
	}

	svc, err := sheets.NewService(ctx,
		option.WithCredentialsFile(credentialsFile),
		option.WithScopes(sheets.SpreadsheetsScope),
	)
	if err != nil {
		return nil, fmt.Errorf("sheets: authorize with %q: %w", credentialsFile, err)
	}

	return &SheetsWriter{svc: svc, sheetID: sheetID, tab: tab}, nil
}

// Append writes one row for the lead, ensuring the tab and header row
// exist first.
func (w *SheetsWriter) Append(ctx context.Context, lead *models.Lead) error {
	if err := w.ensureSheet(ctx); err != nil {
		return err
	}
	return w.appendRow(ctx, LeadRow(lead))
}

// ensureSheet creates the destination tab and header row if missing.
// Checked once per writer lifetime.
func (w *SheetsWriter) ensureSheet(ctx context.Context) error {
	if w.ready {
		return nil
	}

	doc, err := w.svc.Spreadsheets.Get(w.sheetID).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("sheets: get spreadsheet: %w", err)
	}

	found := false
	for _, sh := range doc.Sheets {
		if sh.Properties != nil && sh.Properties.Title == w.tab {
			found = true
			break
		}
	}
	if !found {
		req := &sheets.BatchUpdateSpreadsheetRequest{
			Requests: []*sheets.Request{{
				AddSheet: &sheets.AddSheetRequest{
					Properties: &sheets.SheetProperties{Title: w.tab},
				},
			}},
		}
		if _, err := w.svc.Spreadsheets.BatchUpdate(w.sheetID, req).Context(ctx).Do(); err != nil {
			return fmt.Errorf("sheets: create tab %q: %w", w.tab, err)
		}
	}

	header, err := w.svc.Spreadsheets.Values.Get(w.sheetID, w.tab+"!1:1").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("sheets: read header row: %w", err)
	}
	if len(header.Values) == 0 || len(header.Values[0]) == 0 {
		if err := w.appendRow(ctx, SheetHeaders()); err != nil {
			return fmt.Errorf("sheets: write header row: %w", err)
		}
	}

	w.ready = true
	return nil
}

func (w *SheetsWriter) appendRow(ctx context.Context, row []string) error {
	cells := make([]interface{}, len(row))
	for i, v := range row {
		cells[i] = v
	}
	vr := &sheets.ValueRange{Values: [][]interface{}{cells}}

	_, err := w.svc.Spreadsheets.Values.Append(w.sheetID, w.tab, vr).
		ValueInputOption("RAW").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("sheets: append row: %w", err)
	}
	return nil
}
