package sheetdb

import (
	"context"
	"strings"

	"github.com/mensahq/sukuu/core"
	"github.com/mensahq/sukuu/core/claim"
)

const claimsSheet = "Claims"

var claimHeader = []string{
	"Invoice Number", "Guardian Name", "Guardian Phone", "Relationship",
	"Student Name", "Class", "Total Fees Balance", "Due Date", "Timestamp",
	"Paid", "Payment Date", "Payment Reference",
}

const (
	clColInvoice = iota
	clColGuardian
	clColPhone
	clColRelationship
	clColStudent
	clColClass
	clColBalance
	clColDueDate
	clColTimestamp
	clColPaid
	clColPaymentDate
	clColPaymentRef
)

type ClaimRepository struct {
	db *DB
}

var _ claim.Repository = (*ClaimRepository)(nil)

func NewClaimRepository(db *DB) *ClaimRepository {
	return &ClaimRepository{db: db}
}

func (repo *ClaimRepository) QueryAllClaims(ctx context.Context) ([]claim.Claim, error) {
	raw := repo.db.readRows(ctx, claimsSheet, "")
	cm, rows := DataRows(raw, claimHeader)
	out := make([]claim.Claim, 0, len(rows))
	for _, r := range rows {
		c := mapClaim(cm, r)
		if c.InvoiceNumber == "" {
			continue
		}
		out = append(out, c)
	}
	return out, nil
}

// GetClaimByInvoice reads fail-loud: a targeted lookup feeding a payment
// must not mistake an outage for "not found".
func (repo *ClaimRepository) GetClaimByInvoice(ctx context.Context, invoiceNumber string) (claim.Claim, error) {
	raw, err := repo.db.readRowsStrict(ctx, claimsSheet, "")
	if err != nil {
		return claim.Claim{}, err
	}
	cm, rows := DataRows(raw, claimHeader)
	for _, r := range rows {
		c := mapClaim(cm, r)
		if strings.EqualFold(c.InvoiceNumber, invoiceNumber) {
			return c, nil
		}
	}
	return claim.Claim{}, claim.ErrNotFound
}

func (repo *ClaimRepository) SaveClaim(ctx context.Context, c claim.Claim) (core.UpsertOutcome, error) {
	return repo.db.upsert(ctx, claimsSheet, claimHeader, clColInvoice, c.InvoiceNumber, claimRow(c))
}

// DeleteClaims hard-deletes the matching rows. Indices are collected first,
// then removed highest-first (see deleteRows).
func (repo *ClaimRepository) DeleteClaims(ctx context.Context, invoiceNumbers ...string) (int, error) {
	if len(invoiceNumbers) == 0 {
		return 0, nil
	}
	raw, err := repo.db.readRowsStrict(ctx, claimsSheet, "")
	if err != nil {
		return 0, err
	}
	cm, rows := DataRows(raw, claimHeader)

	wanted := make(map[string]bool, len(invoiceNumbers))
	for _, n := range invoiceNumbers {
		wanted[strings.ToLower(strings.TrimSpace(n))] = true
	}

	var indices []int
	invCol := cm.Index("Invoice Number", clColInvoice)
	for _, r := range rows {
		if wanted[strings.ToLower(r.Get(invCol))] {
			indices = append(indices, r.Number)
		}
	}
	return repo.db.deleteRows(ctx, claimsSheet, indices)
}

func mapClaim(cm ColumnMap, r Row) claim.Claim {
	return claim.Claim{
		RowNumber:        r.Number,
		InvoiceNumber:    r.Get(cm.Index("Invoice Number", clColInvoice)),
		GuardianName:     r.Get(cm.Index("Guardian Name", clColGuardian)),
		GuardianPhone:    r.Get(cm.Index("Guardian Phone", clColPhone)),
		Relationship:     r.Get(cm.Index("Relationship", clColRelationship)),
		StudentName:      r.Get(cm.Index("Student Name", clColStudent)),
		Class:            r.Get(cm.Index("Class", clColClass)),
		Balance:          r.Amount(cm.Index("Total Fees Balance", clColBalance)),
		DueDate:          r.Date(cm.Index("Due Date", clColDueDate)),
		Timestamp:        r.Date(cm.Index("Timestamp", clColTimestamp)),
		Paid:             r.Bool(cm.Index("Paid", clColPaid)),
		PaymentDate:      r.Date(cm.Index("Payment Date", clColPaymentDate)),
		PaymentReference: r.Get(cm.Index("Payment Reference", clColPaymentRef)),
	}
}

func claimRow(c claim.Claim) []string {
	return []string{
		c.InvoiceNumber,
		c.GuardianName,
		c.GuardianPhone,
		c.Relationship,
		c.StudentName,
		c.Class,
		FormatFloat(c.Balance),
		FormatDate(c.DueDate),
		FormatTimestamp(c.Timestamp),
		FormatBool(c.Paid),
		FormatDate(c.PaymentDate),
		c.PaymentReference,
	}
}
