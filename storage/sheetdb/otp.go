package sheetdb

import (
	"context"
	"strings"
	"time"

	"github.com/mensahq/sukuu/core/otp"
)

// Verification codes are soft-deleted: rows are blanked in place so
// concurrent readers never see indices shift. Blanked rows read back as
// empty and are skipped; the sheet compacts naturally as upserts reuse
// nothing and appends go to the end.
const codesSheet = "VerificationCodes"

var codeHeader = []string{
	"ID", "Invoice ID", "Code", "Amount", "Student Name", "Expires At",
}

const (
	vcColID = iota
	vcColInvoice
	vcColCode
	vcColAmount
	vcColStudent
	vcColExpires
)

type CodeRepository struct {
	db *DB
}

var _ otp.Repository = (*CodeRepository)(nil)

func NewCodeRepository(db *DB) *CodeRepository {
	return &CodeRepository{db: db}
}

func (repo *CodeRepository) GetCodeByInvoice(ctx context.Context, invoiceID string) (otp.Code, error) {
	raw, err := repo.db.readRowsStrict(ctx, codesSheet, "")
	if err != nil {
		return otp.Code{}, err
	}
	cm, rows := DataRows(raw, codeHeader)
	for _, r := range rows {
		c := mapCode(cm, r)
		if c.InvoiceID != "" && strings.EqualFold(c.InvoiceID, invoiceID) {
			return c, nil
		}
	}
	return otp.Code{}, otp.ErrNotFound
}

func (repo *CodeRepository) SaveCode(ctx context.Context, c otp.Code) error {
	_, err := repo.db.upsert(ctx, codesSheet, codeHeader, vcColInvoice, c.InvoiceID, codeRow(c))
	return err
}

func (repo *CodeRepository) ClearCode(ctx context.Context, invoiceID string) error {
	rowIndex, _, err := repo.db.findRow(ctx, codesSheet, codeHeader, vcColInvoice, invoiceID)
	if err != nil {
		return err
	}
	if rowIndex == 0 {
		return otp.ErrNotFound
	}
	return repo.db.clearRange(ctx, codesSheet, RowRange(rowIndex, len(codeHeader)))
}

func (repo *CodeRepository) SweepExpired(ctx context.Context, now time.Time) (int, error) {
	raw, err := repo.db.readRowsStrict(ctx, codesSheet, "")
	if err != nil {
		return 0, err
	}
	cm, rows := DataRows(raw, codeHeader)
	swept := 0
	for _, r := range rows {
		c := mapCode(cm, r)
		if c.InvoiceID == "" || !c.Expired(now) {
			continue
		}
		if err := repo.db.clearRange(ctx, codesSheet, RowRange(r.Number, len(codeHeader))); err != nil {
			return swept, err
		}
		swept++
	}
	return swept, nil
}

func mapCode(cm ColumnMap, r Row) otp.Code {
	return otp.Code{
		RowNumber:   r.Number,
		ID:          r.Get(cm.Index("ID", vcColID)),
		InvoiceID:   r.Get(cm.Index("Invoice ID", vcColInvoice)),
		Code:        r.Get(cm.Index("Code", vcColCode)),
		Amount:      r.Amount(cm.Index("Amount", vcColAmount)),
		StudentName: r.Get(cm.Index("Student Name", vcColStudent)),
		ExpiresAt:   r.Date(cm.Index("Expires At", vcColExpires)),
	}
}

func codeRow(c otp.Code) []string {
	return []string{
		c.ID,
		c.InvoiceID,
		c.Code,
		FormatFloat(c.Amount),
		c.StudentName,
		FormatTimestamp(c.ExpiresAt),
	}
}
