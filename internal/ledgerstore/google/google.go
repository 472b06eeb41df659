// Package google stores ledgers in a Google Sheets spreadsheet, one tab per
// user named data_<user>.
package google

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"healthyledger/internal/core"
	"healthyledger/internal/ledgerstore"

	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"
)

const tabPrefix = "data_"

var _ ledgerstore.Backend = (*Client)(nil)

type Client struct {
	svc           *gsheet.Service
	spreadsheetID string
}

// Credentials selects the service account used to reach the Sheets API.
// JSON takes precedence over File.
type Credentials struct {
	JSON string
	File string
}

// New creates a client for one spreadsheet using service account credentials.
func New(ctx context.Context, spreadsheetID string, creds Credentials) (*Client, error) {
	spreadsheetID = strings.TrimSpace(spreadsheetID)
	if spreadsheetID == "" {
		return nil, errors.New("missing spreadsheet id")
	}
	svc, err := newSheetsService(ctx, creds)
	if err != nil {
		return nil, fmt.Errorf("sheets service: %w", err)
	}
	return &Client{svc: svc, spreadsheetID: spreadsheetID}, nil
}

func newSheetsService(ctx context.Context, creds Credentials) (*gsheet.Service, error) {
	var credentialsJSON []byte
	switch {
	case strings.TrimSpace(creds.JSON) != "":
		slog.InfoContext(ctx, "Using inline service account credentials")
		credentialsJSON = []byte(creds.JSON)
	case strings.TrimSpace(creds.File) != "":
		slog.InfoContext(ctx, "Reading service account credentials", "path", creds.File)
		b, err := os.ReadFile(creds.File)
		if err != nil {
			return nil, fmt.Errorf("read service account file: %w", err)
		}
		credentialsJSON = b
	default:
		return nil, errors.New("missing service account credentials (set GOOGLE_SERVICE_ACCOUNT_JSON or GOOGLE_SERVICE_ACCOUNT_FILE)")
	}

	service, err := gsheet.NewService(ctx,
		goption.WithCredentialsJSON(credentialsJSON),
		goption.WithScopes(gsheet.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}
	return service, nil
}

// TabTitle is the sheet tab holding user's ledger.
func TabTitle(user string) (string, error) {
	id, err := core.NormalizeUserID(user)
	if err != nil {
		return "", err
	}
	return tabPrefix + id, nil
}

func tabRange(title string) string {
	return fmt.Sprintf("'%s'!A:G", strings.ReplaceAll(title, "'", "''"))
}

func (c *Client) Load(ctx context.Context, user string) (core.Ledger, error) {
	title, err := TabTitle(user)
	if err != nil {
		return nil, err
	}
	titles, err := c.tabTitles(ctx)
	if err != nil {
		return nil, err
	}
	if !contains(titles, title) {
		return core.Ledger{}, nil
	}
	rng := tabRange(title)
	resp, err := c.svc.Spreadsheets.Values.Get(c.spreadsheetID, rng).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", rng, err)
	}
	l, err := parseLedger(resp.Values)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", rng, err)
	}
	return l, nil
}

// Save clears the user's tab and writes the whole ledger from A1.
func (c *Client) Save(ctx context.Context, user string, l core.Ledger) error {
	if err := l.Validate(); err != nil {
		return err
	}
	title, err := TabTitle(user)
	if err != nil {
		return err
	}
	if err := c.ensureTab(ctx, title); err != nil {
		return err
	}
	rng := tabRange(title)
	if _, err := c.svc.Spreadsheets.Values.Clear(c.spreadsheetID, rng, &gsheet.ClearValuesRequest{}).Context(ctx).Do(); err != nil {
		return fmt.Errorf("clear %s: %w", rng, err)
	}
	vr := &gsheet.ValueRange{Values: ledgerValues(l)}
	if _, err := c.svc.Spreadsheets.Values.Update(c.spreadsheetID, rng, vr).
		ValueInputOption("RAW").Context(ctx).Do(); err != nil {
		return fmt.Errorf("update %s: %w", rng, err)
	}
	return nil
}

func (c *Client) ListUsers(ctx context.Context) ([]string, error) {
	titles, err := c.tabTitles(ctx)
	if err != nil {
		return nil, err
	}
	return usersFromTitles(titles), nil
}

func (c *Client) tabTitles(ctx context.Context) ([]string, error) {
	if c.svc == nil {
		return nil, errors.New("sheets service not initialized")
	}
	ss, err := c.svc.Spreadsheets.Get(c.spreadsheetID).Fields("sheets.properties.title").Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("get spreadsheet: %w", err)
	}
	titles := make([]string, 0, len(ss.Sheets))
	for _, sh := range ss.Sheets {
		if sh.Properties != nil {
			titles = append(titles, sh.Properties.Title)
		}
	}
	return titles, nil
}

func (c *Client) ensureTab(ctx context.Context, title string) error {
	titles, err := c.tabTitles(ctx)
	if err != nil {
		return err
	}
	if contains(titles, title) {
		return nil
	}
	req := &gsheet.BatchUpdateSpreadsheetRequest{
		Requests: []*gsheet.Request{{
			AddSheet: &gsheet.AddSheetRequest{Properties: &gsheet.SheetProperties{Title: title}},
		}},
	}
	if _, err := c.svc.Spreadsheets.BatchUpdate(c.spreadsheetID, req).Context(ctx).Do(); err != nil {
		return fmt.Errorf("add tab %s: %w", title, err)
	}
	slog.InfoContext(ctx, "Created ledger tab", "tab", title)
	return nil
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
