package sheetdb

import (
	"context"
	"sort"
	"strings"

	"github.com/mensahq/sukuu/core"
)

// upsert enforces "at most one live row per business key". keyCol is the
// 0-based column holding the key (resolved positionally; key columns sit at
// fixed positions in every sheet we own). Matching is trimmed and
// case-insensitive, like every other string join in this system.
//
// The scan-then-write is a best-effort guard only: two writers racing on the
// same key can both miss and both append. The store offers no conditional
// write, so that race is accepted and documented rather than half-fixed.
func (db *DB) upsert(ctx context.Context, sheet string, header []string, keyCol int, key string, row []string) (core.UpsertOutcome, error) {
	return db.upsertBy(ctx, sheet, header, key, func(r Row) string { return r.Get(keyCol) }, row)
}

// upsertBy is the general form: keyOf extracts the (possibly composite)
// business key from a data row.
func (db *DB) upsertBy(ctx context.Context, sheet string, header []string, key string, keyOf func(Row) string, row []string) (core.UpsertOutcome, error) {
	raw, err := db.readRowsStrict(ctx, sheet, "")
	if err != nil {
		return 0, err
	}

	// empty or missing sheet: bootstrap header, then append
	if len(raw) == 0 {
		if err := db.ensureSheet(ctx, sheet); err != nil {
			return 0, err
		}
		if err := db.appendRows(ctx, sheet, [][]string{header, row}); err != nil {
			return 0, err
		}
		return core.Created, nil
	}

	if !HasHeader(raw[0], header) {
		return 0, ErrHeaderlessSheet
	}

	key = strings.ToLower(strings.TrimSpace(key))
	for i := 1; i < len(raw); i++ { // data starts at row 2
		cell := strings.ToLower(strings.TrimSpace(keyOf(Row{Number: i + 1, Cells: raw[i]})))
		if cell != "" && cell == key {
			rowIndex := i + 1
			if err := db.updateRange(ctx, sheet, RowRange(rowIndex, len(row)), [][]string{row}); err != nil {
				return 0, err
			}
			return core.Updated, nil
		}
	}

	if err := db.appendRows(ctx, sheet, [][]string{row}); err != nil {
		return 0, err
	}
	return core.Created, nil
}

// findRow returns the 1-based row index of the first data row whose keyCol
// matches key, or 0 when absent.
func (db *DB) findRow(ctx context.Context, sheet string, header []string, keyCol int, key string) (int, Row, error) {
	raw, err := db.readRowsStrict(ctx, sheet, "")
	if err != nil {
		return 0, Row{}, err
	}
	_, rows := DataRows(raw, header)
	key = strings.ToLower(strings.TrimSpace(key))
	for _, r := range rows {
		if strings.ToLower(r.Get(keyCol)) == key {
			return r.Number, r, nil
		}
	}
	return 0, Row{}, nil
}

// deleteRows hard-deletes the given 1-based row indices. Deletion shifts
// every later row up by one, so indices must be processed highest first;
// low-to-high would invalidate the rest of the batch.
func (db *DB) deleteRows(ctx context.Context, sheet string, rowIndices []int) (int, error) {
	sorted := append([]int(nil), rowIndices...)
	sort.Sort(sort.Reverse(sort.IntSlice(sorted)))

	deleted := 0
	for _, idx := range sorted {
		if idx < 2 { // never delete the header row
			continue
		}
		if err := db.deleteRow(ctx, sheet, idx); err != nil {
			return deleted, err
		}
		deleted++
	}
	return deleted, nil
}
