package source

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/shrishtravels/routegen/pkg/routegen/dal"
)

// DefaultSheetTab is the worksheet holding the route catalog.
const DefaultSheetTab = "routes"

// SheetsSource reads routes from a Google Sheets worksheet. The first row is
// the header row; every following row becomes one record keyed by header.
type SheetsSource struct {
	SpreadsheetID string
	Tab           string
	Service       *sheets.Service
}

// NewSheetsSource authenticates with a service account key and returns a
// source for the given spreadsheet tab.
func NewSheetsSource(ctx context.Context, spreadsheetID, tab string, credentials []byte, timeout time.Duration) (*SheetsSource, error) {
	if len(credentials) == 0 {
		return nil, errors.New("no service account credentials")
	}
	conf, err := google.JWTConfigFromJSON(credentials, sheets.SpreadsheetsReadonlyScope)
	if err != nil {
		return nil, fmt.Errorf("parsing service account credentials: %w", err)
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	// The token exchange uses the client from ctx, so bound it as well.
	ctx = context.WithValue(ctx, oauth2.HTTPClient, &http.Client{Timeout: timeout})
	client := conf.Client(ctx)
	client.Timeout = timeout

	srv, err := sheets.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, fmt.Errorf("creating sheets service: %w", err)
	}
	return NewSheetsServiceSource(srv, spreadsheetID, tab), nil
}

// NewSheetsServiceSource wraps an existing Sheets service.
func NewSheetsServiceSource(srv *sheets.Service, spreadsheetID, tab string) *SheetsSource {
	if tab == "" {
		tab = DefaultSheetTab
	}
	return &SheetsSource{SpreadsheetID: spreadsheetID, Tab: tab, Service: srv}
}

func (s *SheetsSource) Name() string { return "sheets " + s.SpreadsheetID + "/" + s.Tab }

func (s *SheetsSource) Fetch(ctx context.Context) ([]dal.RawRoute, error) {
	vr, err := s.Service.Spreadsheets.Values.Get(s.SpreadsheetID, s.Tab).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("reading sheet values: %w", err)
	}
	return Records(vr.Values), nil
}

// Records converts sheet rows into raw records using the first row as
// headers. Short rows get empty strings for their missing cells, and rows
// with no values at all are dropped.
func Records(rows [][]interface{}) []dal.RawRoute {
	if len(rows) < 2 {
		return nil
	}

	headers := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		headers[i] = strings.TrimSpace(fmt.Sprint(h))
	}

	var out []dal.RawRoute
	for _, row := range rows[1:] {
		rec := dal.RawRoute{}
		blank := true
		for i, h := range headers {
			if h == "" {
				continue
			}
			var cell interface{} = ""
			if i < len(row) && row[i] != nil {
				cell = row[i]
				if fmt.Sprint(cell) != "" {
					blank = false
				}
			}
			rec[h] = cell
		}
		if !blank {
			out = append(out, rec)
		}
	}
	return out
}
