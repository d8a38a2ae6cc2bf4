package otp

import (
	"crypto/rand"
	"math/big"
	"time"
)

// Code is one payment verification code row, keyed by InvoiceID. There is
// at most one active code per invoice; issuing again overwrites it.
type Code struct {
	RowNumber int `json:"-"`

	ID          string    `json:"id"`
	InvoiceID   string    `json:"invoice_id"`
	Code        string    `json:"code"`
	Amount      float64   `json:"amount"`
	StudentName string    `json:"student_name"`
	ExpiresAt   time.Time `json:"expires_at"`
}

func (c Code) Expired(now time.Time) bool {
	return !c.ExpiresAt.IsZero() && now.After(c.ExpiresAt)
}

const codeDigits = 6

// generateCode returns a zero-padded numeric code.
func generateCode() (string, error) {
	max := big.NewInt(1)
	for i := 0; i < codeDigits; i++ {
		max.Mul(max, big.NewInt(10))
	}
	n, err := rand.Int(rand.Reader, max)
	if err != nil {
		return "", err
	}
	s := n.String()
	for len(s) < codeDigits {
		s = "0" + s
	}
	return s, nil
}
