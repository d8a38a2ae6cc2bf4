// Package googlesheet implements core.RowStore against the Google Sheets v4
// API using a service-account credential.
package googlesheet

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/pkg/errors"
	"golang.org/x/oauth2/google"
	"golang.org/x/oauth2/jwt"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/mensahq/sukuu/core"
)

type Store struct {
	svc           *sheets.Service
	spreadsheetID string

	// display name -> numeric sheet ID, interned on first structural edit.
	// Structural requests address sheets by ID, everything else by name.
	mu       sync.Mutex
	sheetIDs map[string]int64
}

var _ core.RowStore = (*Store)(nil)

// Open builds the authenticated client. This is the one place a hard error
// is right: without valid key material no later operation can ever succeed,
// so degraded startup would only defer the failure somewhere worse.
func Open(ctx context.Context, conf *core.Config) (*Store, error) {
	if conf.Sheet.SpreadsheetID == "" {
		return nil, errors.New("googlesheet: missing spreadsheet ID")
	}
	if conf.Sheet.ClientEmail == "" || conf.Sheet.PrivateKey == "" {
		return nil, errors.New("googlesheet: missing service account credentials")
	}

	jwtConf := &jwt.Config{
		Email:      conf.Sheet.ClientEmail,
		PrivateKey: []byte(conf.Sheet.PrivateKey),
		Scopes:     []string{sheets.SpreadsheetsScope},
		TokenURL:   google.JWTTokenURL,
	}
	svc, err := sheets.NewService(ctx, option.WithHTTPClient(jwtConf.Client(ctx)))
	if err != nil {
		return nil, errors.Wrap(err, "googlesheet: building sheets service")
	}

	return &Store{
		svc:           svc,
		spreadsheetID: conf.Sheet.SpreadsheetID,
		sheetIDs:      make(map[string]int64),
	}, nil
}

func (s *Store) ReadRange(ctx context.Context, sheet, rng string) ([][]string, error) {
	res, err := s.svc.Spreadsheets.Values.Get(s.spreadsheetID, qualify(sheet, rng)).Context(ctx).Do()
	if err != nil {
		// a sheet that does not exist yet reads as empty, matching the
		// bootstrap path of the upsert resolver
		if isMissingSheet(err) {
			return nil, nil
		}
		return nil, errors.Wrapf(err, "reading %s!%s", sheet, rng)
	}
	return fromValues(res.Values), nil
}

func (s *Store) AppendRows(ctx context.Context, sheet string, rows [][]string) error {
	vr := &sheets.ValueRange{Values: toValues(rows)}
	_, err := s.svc.Spreadsheets.Values.Append(s.spreadsheetID, qualify(sheet, "A1"), vr).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).Do()
	return errors.Wrapf(err, "appending to %s", sheet)
}

func (s *Store) UpdateRange(ctx context.Context, sheet, rng string, rows [][]string) error {
	vr := &sheets.ValueRange{Values: toValues(rows)}
	_, err := s.svc.Spreadsheets.Values.Update(s.spreadsheetID, qualify(sheet, rng), vr).
		ValueInputOption("USER_ENTERED").
		Context(ctx).Do()
	return errors.Wrapf(err, "updating %s!%s", sheet, rng)
}

func (s *Store) ClearRange(ctx context.Context, sheet, rng string) error {
	_, err := s.svc.Spreadsheets.Values.Clear(s.spreadsheetID, qualify(sheet, rng), &sheets.ClearValuesRequest{}).
		Context(ctx).Do()
	return errors.Wrapf(err, "clearing %s!%s", sheet, rng)
}

func (s *Store) DeleteRow(ctx context.Context, sheet string, rowIndex int) error {
	id, err := s.sheetID(ctx, sheet)
	if err != nil {
		return err
	}
	req := &sheets.Request{
		DeleteDimension: &sheets.DeleteDimensionRequest{
			Range: &sheets.DimensionRange{
				SheetId:    id,
				Dimension:  "ROWS",
				StartIndex: int64(rowIndex - 1), // API indices are 0-based
				EndIndex:   int64(rowIndex),
			},
		},
	}
	return s.batchUpdate(ctx, req, "deleting %s row %d", sheet, rowIndex)
}

func (s *Store) InsertRowAt(ctx context.Context, sheet string, rowIndex int, rows [][]string) error {
	id, err := s.sheetID(ctx, sheet)
	if err != nil {
		return err
	}
	req := &sheets.Request{
		InsertDimension: &sheets.InsertDimensionRequest{
			Range: &sheets.DimensionRange{
				SheetId:    id,
				Dimension:  "ROWS",
				StartIndex: int64(rowIndex - 1),
				EndIndex:   int64(rowIndex - 1 + len(rows)),
			},
			InheritFromBefore: false,
		},
	}
	if err := s.batchUpdate(ctx, req, "inserting %d rows at %s row %d", len(rows), sheet, rowIndex); err != nil {
		return err
	}
	rng := fmt.Sprintf("A%d", rowIndex)
	return s.UpdateRange(ctx, sheet, rng, rows)
}

func (s *Store) EnsureSheet(ctx context.Context, name string) error {
	if _, err := s.sheetID(ctx, name); err == nil {
		return nil // already there
	}
	req := &sheets.Request{
		AddSheet: &sheets.AddSheetRequest{
			Properties: &sheets.SheetProperties{Title: name},
		},
	}
	if err := s.batchUpdate(ctx, req, "creating sheet %s", name); err != nil {
		return err
	}
	s.mu.Lock()
	delete(s.sheetIDs, name) // force a re-list on next structural edit
	s.mu.Unlock()
	return nil
}

// sheetID resolves a display name to the sheet's numeric ID, interning the
// whole list on a miss so repeated structural edits pay one listing.
func (s *Store) sheetID(ctx context.Context, name string) (int64, error) {
	s.mu.Lock()
	if id, ok := s.sheetIDs[name]; ok {
		s.mu.Unlock()
		return id, nil
	}
	s.mu.Unlock()

	meta, err := s.svc.Spreadsheets.Get(s.spreadsheetID).Fields("sheets.properties").Context(ctx).Do()
	if err != nil {
		return 0, errors.Wrap(err, "listing sheets")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, sh := range meta.Sheets {
		if sh.Properties != nil {
			s.sheetIDs[sh.Properties.Title] = sh.Properties.SheetId
		}
	}
	if id, ok := s.sheetIDs[name]; ok {
		return id, nil
	}
	return 0, errors.Errorf("sheet %q not found", name)
}

func (s *Store) batchUpdate(ctx context.Context, req *sheets.Request, msg string, args ...interface{}) error {
	_, err := s.svc.Spreadsheets.BatchUpdate(s.spreadsheetID, &sheets.BatchUpdateSpreadsheetRequest{
		Requests: []*sheets.Request{req},
	}).Context(ctx).Do()
	return errors.Wrapf(err, msg, args...)
}

// isMissingSheet detects the API's "Unable to parse range" failure, which is
// how a read against a nonexistent sheet tab comes back.
func isMissingSheet(err error) bool {
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		return gerr.Code == 400 && strings.Contains(gerr.Message, "Unable to parse range")
	}
	return false
}

func qualify(sheet, rng string) string {
	if rng == "" {
		return sheet
	}
	return sheet + "!" + rng
}

func toValues(rows [][]string) [][]interface{} {
	out := make([][]interface{}, len(rows))
	for i, row := range rows {
		cells := make([]interface{}, len(row))
		for j, c := range row {
			cells[j] = c
		}
		out[i] = cells
	}
	return out
}

func fromValues(values [][]interface{}) [][]string {
	out := make([][]string, len(values))
	for i, row := range values {
		cells := make([]string, len(row))
		for j, c := range row {
			cells[j] = fmt.Sprint(c)
		}
		out[i] = cells
	}
	return out
}
