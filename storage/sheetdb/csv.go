package sheetdb

import (
	"context"
	"encoding/csv"
	"fmt"
	"net/http"
	"net/url"

	"github.com/pkg/errors"
)

// CSVClient reads sheets through the public CSV export endpoint: no auth,
// eventually consistent, cheap. Used for low-stakes roster reads; anything
// needing authorization or read-your-writes goes through the RPC client.
type CSVClient struct {
	base          string // e.g. https://docs.google.com/spreadsheets/d
	spreadsheetID string
	client        *http.Client
}

func NewCSVClient(base, spreadsheetID string, client *http.Client) *CSVClient {
	if client == nil {
		client = http.DefaultClient
	}
	return &CSVClient{base: base, spreadsheetID: spreadsheetID, client: client}
}

// Fetch downloads and parses one sheet. encoding/csv handles quoted fields,
// so "Smith, John" stays a single cell.
func (c *CSVClient) Fetch(ctx context.Context, sheet string) ([][]string, error) {
	u := fmt.Sprintf("%s/%s/export?format=csv&sheet=%s", c.base, c.spreadsheetID, url.QueryEscape(sheet))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, errors.Wrap(err, "building csv export request")
	}
	res, err := c.client.Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, "fetching csv export of %s", sheet)
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		return nil, errors.Errorf("csv export of %s: status %d", sheet, res.StatusCode)
	}

	rdr := csv.NewReader(res.Body)
	rdr.FieldsPerRecord = -1 // ragged rows are normal in hand-edited sheets
	records, err := rdr.ReadAll()
	if err != nil {
		return nil, errors.Wrapf(err, "parsing csv export of %s", sheet)
	}
	return records, nil
}
