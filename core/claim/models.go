package claim

import (
	"time"
)

// Claim is one invoice row of the Claims sheet, keyed by InvoiceNumber.
// Re-saving an existing invoice number overwrites the row in place.
type Claim struct {
	RowNumber int `json:"-"`

	InvoiceNumber string `json:"invoice_number"`
	GuardianName  string `json:"guardian_name"`
	GuardianPhone string `json:"guardian_phone"`
	Relationship  string `json:"relationship"`
	StudentName   string `json:"student_name"`
	Class         string `json:"class"`

	Balance float64   `json:"balance"` // outstanding fees at issue time
	DueDate time.Time `json:"due_date"`

	Timestamp time.Time `json:"timestamp"` // when the invoice was issued

	Paid             bool      `json:"paid"`
	PaymentDate      time.Time `json:"payment_date"`
	PaymentReference string    `json:"payment_reference"`
}

func (c Claim) Overdue(now time.Time) bool {
	return !c.Paid && !c.DueDate.IsZero() && now.After(c.DueDate)
}

type NewClaim struct {
	InvoiceNumber string  `json:"invoice_number" validate:"required"`
	GuardianName  string  `json:"guardian_name" validate:"required"`
	GuardianPhone string  `json:"guardian_phone" validate:"required,phone_gh"`
	Relationship  string  `json:"relationship"`
	StudentName   string  `json:"student_name" validate:"required"`
	Class         string  `json:"class"`
	Balance       float64 `json:"balance" validate:"gte=0"`
	DueDate       string  `json:"due_date"` // YYYY-MM-DD; blank allowed
}
