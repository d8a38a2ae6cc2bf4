package claim

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/mensahq/sukuu/core"
)

var (
	// errors
	ErrNotFound    = errors.New("invoice not found")
	ErrAlreadyPaid = errors.New("invoice is already marked paid")

	nowFunc = time.Now // mockable
)

const dueDateLayout = "2006-01-02"

type (
	Repository interface {
		QueryAllClaims(ctx context.Context) ([]Claim, error)
		GetClaimByInvoice(ctx context.Context, invoiceNumber string) (Claim, error)
		// SaveClaim upserts on InvoiceNumber and reports whether the row
		// was created or overwritten.
		SaveClaim(ctx context.Context, c Claim) (core.UpsertOutcome, error)
		// DeleteClaims hard-deletes the rows for the given invoice numbers
		// and returns how many were removed.
		DeleteClaims(ctx context.Context, invoiceNumbers ...string) (int, error)
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) QueryAll(ctx context.Context) ([]Claim, error) {
	return svc.repo.QueryAllClaims(ctx)
}

func (svc *Service) GetByInvoice(ctx context.Context, invoiceNumber string) (Claim, error) {
	return svc.repo.GetClaimByInvoice(ctx, core.CleanString(invoiceNumber))
}

// Save upserts an invoice. A failed write is always surfaced; silently
// dropping an invoice is a correctness violation the read-side fallback
// policy must never apply to.
func (svc *Service) Save(ctx context.Context, nc NewClaim) (Claim, core.UpsertOutcome, error) {
	var due time.Time
	if s := core.CleanString(nc.DueDate); s != "" {
		var err error
		if due, err = time.Parse(dueDateLayout, s); err != nil {
			return Claim{}, 0, core.NewValidationError(err, core.FieldError{Field: "due_date", Error: "expected YYYY-MM-DD"})
		}
	}

	c := Claim{
		InvoiceNumber: core.CleanString(nc.InvoiceNumber),
		GuardianName:  core.CleanString(nc.GuardianName),
		GuardianPhone: core.CleanString(nc.GuardianPhone),
		Relationship:  core.CleanString(nc.Relationship),
		StudentName:   core.CleanString(nc.StudentName),
		Class:         core.CleanString(nc.Class),
		Balance:       nc.Balance,
		DueDate:       due,
		Timestamp:     nowFunc().UTC(),
	}
	outcome, err := svc.repo.SaveClaim(ctx, c)
	if err != nil {
		return Claim{}, 0, err
	}
	return c, outcome, nil
}

// MarkPaid records a payment against an invoice. The reference is kept if
// the payment channel supplied one, otherwise a fresh one is generated.
func (svc *Service) MarkPaid(ctx context.Context, invoiceNumber, reference string) (Claim, error) {
	c, err := svc.repo.GetClaimByInvoice(ctx, core.CleanString(invoiceNumber))
	if err != nil {
		return Claim{}, err
	}
	if c.Paid {
		return Claim{}, ErrAlreadyPaid
	}

	c.Paid = true
	c.PaymentDate = nowFunc().UTC()
	c.PaymentReference = core.CleanString(reference)
	if c.PaymentReference == "" {
		c.PaymentReference = uuid.NewString()
	}
	if _, err := svc.repo.SaveClaim(ctx, c); err != nil {
		return Claim{}, err
	}
	return c, nil
}

// Delete removes invoices in bulk. Missing invoice numbers are skipped; the
// returned count says how many rows actually went away.
func (svc *Service) Delete(ctx context.Context, invoiceNumbers ...string) (int, error) {
	cleaned := make([]string, 0, len(invoiceNumbers))
	for _, n := range invoiceNumbers {
		if n = core.CleanString(n); n != "" {
			cleaned = append(cleaned, n)
		}
	}
	return svc.repo.DeleteClaims(ctx, cleaned...)
}

func (svc *Service) QueryUnpaid(ctx context.Context) ([]Claim, error) {
	all, err := svc.repo.QueryAllClaims(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]Claim, 0, len(all))
	for _, c := range all {
		if !c.Paid {
			out = append(out, c)
		}
	}
	return out, nil
}

func (svc *Service) QueryOverdue(ctx context.Context) ([]Claim, error) {
	all, err := svc.repo.QueryAllClaims(ctx)
	if err != nil {
		return nil, err
	}
	now := nowFunc().UTC()
	out := make([]Claim, 0, len(all))
	for _, c := range all {
		if c.Overdue(now) {
			out = append(out, c)
		}
	}
	return out, nil
}
