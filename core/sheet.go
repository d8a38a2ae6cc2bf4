package core

import "context"

// UpsertOutcome reports which branch an upsert took, so callers can say
// "created" vs "updated" to the admin user.
type UpsertOutcome int

const (
	Created UpsertOutcome = iota + 1
	Updated
)

func (o UpsertOutcome) String() string {
	switch o {
	case Created:
		return "created"
	case Updated:
		return "updated"
	}
	return "unknown"
}

// RowStore is the narrow surface the data layer needs from the remote
// tabular store. It is implemented by the Google Sheets client and by an
// in-memory grid for tests. Cells are normalized to strings in both
// directions; the sheet is the one doing the typing, not us.
//
// Row indices are 1-based to match the sheet UI and A1 notation. Ranges are
// A1-style without the sheet prefix ("A2:N1000"); an empty range means a
// generous default bound chosen by the implementation.
type RowStore interface {
	ReadRange(ctx context.Context, sheet, rng string) ([][]string, error)
	AppendRows(ctx context.Context, sheet string, rows [][]string) error
	UpdateRange(ctx context.Context, sheet, rng string, rows [][]string) error
	// ClearRange blanks cell contents without shifting row indices.
	ClearRange(ctx context.Context, sheet, rng string) error
	// DeleteRow structurally removes a row; rows below shift up by one.
	DeleteRow(ctx context.Context, sheet string, rowIndex int) error
	// InsertRowAt structurally inserts rows before rowIndex; rows at and
	// below rowIndex shift down.
	InsertRowAt(ctx context.Context, sheet string, rowIndex int, rows [][]string) error
	// EnsureSheet creates the named sheet if it does not exist; idempotent.
	EnsureSheet(ctx context.Context, name string) error
}
