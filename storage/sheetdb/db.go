// Package sheetdb implements the data layer on top of a spreadsheet: row
// mapping, retry/fallback, and find-by-business-key upsert semantics shared
// by every entity repository. The remote store itself sits behind
// core.RowStore so tests run against an in-memory grid.
package sheetdb

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/mensahq/sukuu/core"
)

// ErrHeaderlessSheet marks a populated sheet whose first row is not the
// expected header. Retrofitting a header onto live data shifts every row
// index under concurrent readers, so this state is rejected, not repaired.
var ErrHeaderlessSheet = errors.New("sheet has data rows but no header row; refusing to write")

// DefaultRange bounds unqualified reads. Generous on purpose; sheets here
// are small and the API charges per call, not per cell.
const DefaultRange = "A1:Z1000"

type DB struct {
	store  core.RowStore
	csv    *CSVClient // optional fast path for public read-only sheets
	logger core.Logger

	retryAttempts int
	retryBackoff  time.Duration
	opTimeout     time.Duration

	sleepFunc func(time.Duration) // swappable so retry tests don't sleep
}

func NewDB(store core.RowStore, csv *CSVClient, logger core.Logger, conf *core.Config) *DB {
	return &DB{
		store:         store,
		csv:           csv,
		logger:        logger,
		retryAttempts: conf.Sheet.RetryAttempts,
		retryBackoff:  conf.Sheet.RetryBackoff,
		opTimeout:     conf.Sheet.RequestTimeout,
		sleepFunc:     time.Sleep,
	}
}

// withRetry runs fn up to retryAttempts times with a per-attempt timeout and
// a linear backoff (attempt * retryBackoff) between failures. Every attempt
// outcome is logged; the last error is returned once attempts are exhausted.
func (db *DB) withRetry(ctx context.Context, op string, fn func(ctx context.Context) error) error {
	var err error
	for attempt := 1; attempt <= db.retryAttempts; attempt++ {
		opCtx, cancel := context.WithTimeout(ctx, db.opTimeout)
		err = fn(opCtx)
		cancel()
		if err == nil {
			if attempt > 1 {
				db.logger.Info(fmt.Sprintf("%s: succeeded on attempt %d", op, attempt))
			}
			return nil
		}
		db.logger.Warn(fmt.Sprintf("%s: attempt %d/%d failed", op, attempt, db.retryAttempts), err)
		// a done parent context cannot recover; retrying just burns backoff
		if ctx.Err() != nil {
			return errors.Wrapf(err, "%s: context done after attempt %d", op, attempt)
		}
		if attempt < db.retryAttempts {
			db.sleepFunc(time.Duration(attempt) * db.retryBackoff)
		}
	}
	return errors.Wrapf(err, "%s: %d attempts exhausted", op, db.retryAttempts)
}

// readRows reads a range with the retry policy. Exhausted retries fall back
// to an empty result: a caller should never crash because the store is
// briefly unreachable. Callers needing fail-loud reads use readRowsStrict.
func (db *DB) readRows(ctx context.Context, sheet, rng string) [][]string {
	rows, err := db.readRowsStrict(ctx, sheet, rng)
	if err != nil {
		db.logger.Error(fmt.Sprintf("reading %s!%s, serving empty fallback", sheet, rng), err)
		return nil
	}
	return rows
}

func (db *DB) readRowsStrict(ctx context.Context, sheet, rng string) ([][]string, error) {
	if rng == "" {
		rng = DefaultRange
	}
	var rows [][]string
	err := db.withRetry(ctx, "read "+sheet, func(ctx context.Context) error {
		var err error
		rows, err = db.store.ReadRange(ctx, sheet, rng)
		return err
	})
	return rows, err
}

// write ops run once with a timeout: a retried append can duplicate a row,
// and a failed write must surface to the caller rather than degrade.

func (db *DB) appendRows(ctx context.Context, sheet string, rows [][]string) error {
	ctx, cancel := context.WithTimeout(ctx, db.opTimeout)
	defer cancel()
	return errors.Wrapf(db.store.AppendRows(ctx, sheet, rows), "appending to %s", sheet)
}

func (db *DB) updateRange(ctx context.Context, sheet, rng string, rows [][]string) error {
	ctx, cancel := context.WithTimeout(ctx, db.opTimeout)
	defer cancel()
	return errors.Wrapf(db.store.UpdateRange(ctx, sheet, rng, rows), "updating %s!%s", sheet, rng)
}

func (db *DB) clearRange(ctx context.Context, sheet, rng string) error {
	ctx, cancel := context.WithTimeout(ctx, db.opTimeout)
	defer cancel()
	return errors.Wrapf(db.store.ClearRange(ctx, sheet, rng), "clearing %s!%s", sheet, rng)
}

func (db *DB) deleteRow(ctx context.Context, sheet string, rowIndex int) error {
	ctx, cancel := context.WithTimeout(ctx, db.opTimeout)
	defer cancel()
	return errors.Wrapf(db.store.DeleteRow(ctx, sheet, rowIndex), "deleting %s row %d", sheet, rowIndex)
}

func (db *DB) ensureSheet(ctx context.Context, name string) error {
	ctx, cancel := context.WithTimeout(ctx, db.opTimeout)
	defer cancel()
	return errors.Wrapf(db.store.EnsureSheet(ctx, name), "ensuring sheet %s", name)
}

// A1 helpers

// ColLetter converts a 0-based column index to its A1 letter(s).
func ColLetter(col int) string {
	s := ""
	for col >= 0 {
		s = string(rune('A'+col%26)) + s
		col = col/26 - 1
	}
	return s
}

// RowRange builds the A1 range covering width columns of a single 1-based row.
func RowRange(rowIndex, width int) string {
	return fmt.Sprintf("A%d:%s%d", rowIndex, ColLetter(width-1), rowIndex)
}

// RangeStartRow extracts the 1-based starting row of an A1 range like
// "A5:N5"; 0 when the range has no row component.
func RangeStartRow(rng string) int {
	start := strings.SplitN(rng, ":", 2)[0]
	i := 0
	for i < len(start) && start[i] >= 'A' && start[i] <= 'Z' {
		i++
	}
	if i == len(start) {
		return 0
	}
	n, err := strconv.Atoi(start[i:])
	if err != nil {
		return 0
	}
	return n
}
