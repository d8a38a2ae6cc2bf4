package sheetdb

import (
	"context"

	"github.com/pkg/errors"

	"github.com/mensahq/sukuu/core/sba"
)

var fixedSheets = []struct {
	name   string
	header []string
}{
	{studentsSheet, studentHeader},
	{staffSheet, staffHeader},
	{claimsSheet, claimHeader},
	{templatesSheet, templateHeader},
	{codesSheet, codeHeader},
}

// Bootstrap ensures every fixed sheet exists with its header row, plus one
// SBA sheet per given class. A sheet that already holds data without a
// header is reported, never repaired: retrofitting a header under live rows
// corrupts row addressing.
func (db *DB) Bootstrap(ctx context.Context, classes ...string) error {
	for _, s := range fixedSheets {
		if err := db.bootstrapSheet(ctx, s.name, s.header); err != nil {
			return err
		}
	}
	for _, class := range classes {
		if err := db.bootstrapSheet(ctx, sba.SheetFor(class), sbaHeader); err != nil {
			return err
		}
	}
	return nil
}

func (db *DB) bootstrapSheet(ctx context.Context, name string, header []string) error {
	if err := db.ensureSheet(ctx, name); err != nil {
		return err
	}
	raw, err := db.readRowsStrict(ctx, name, "")
	if err != nil {
		return err
	}
	if len(raw) == 0 {
		return db.appendRows(ctx, name, [][]string{header})
	}
	if !HasHeader(raw[0], header) {
		return errors.Wrap(ErrHeaderlessSheet, name)
	}
	return nil
}
