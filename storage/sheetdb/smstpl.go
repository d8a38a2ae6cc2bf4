package sheetdb

import (
	"context"

	"github.com/mensahq/sukuu/core/smstpl"
)

// Templates sheet: two columns, key and body. Read-only from here; the
// admin edits it directly in the spreadsheet UI.
const templatesSheet = "Templates"

var templateHeader = []string{"Key", "Body"}

const (
	tpColKey = iota
	tpColBody
)

type TemplateRepository struct {
	db *DB
}

var _ smstpl.Repository = (*TemplateRepository)(nil)

func NewTemplateRepository(db *DB) *TemplateRepository {
	return &TemplateRepository{db: db}
}

// FetchTemplateSet reads fail-loud: the caching service layered above owns
// the fallback policy (stale entry, then compiled-in defaults).
func (repo *TemplateRepository) FetchTemplateSet(ctx context.Context) (smstpl.TemplateSet, error) {
	raw, err := repo.db.readRowsStrict(ctx, templatesSheet, "")
	if err != nil {
		return smstpl.TemplateSet{}, err
	}
	cm, rows := DataRows(raw, templateHeader)

	var ts smstpl.TemplateSet
	keyCol, bodyCol := cm.Index("Key", tpColKey), cm.Index("Body", tpColBody)
	for _, r := range rows {
		body := r.Get(bodyCol)
		switch r.Get(keyCol) {
		case smstpl.KeyFeeReminder:
			ts.FeeReminder = body
		case smstpl.KeyInvoiceNotice:
			ts.InvoiceNotice = body
		case smstpl.KeyPaymentReceipt:
			ts.PaymentReceipt = body
		case smstpl.KeyOTPMessage:
			ts.OTPMessage = body
		}
	}
	return ts, nil
}
