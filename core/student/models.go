package student

import (
	"fmt"
	"hash/fnv"
	"strings"
)

// Student is one row of the Metadata sheet. Monetary fields come from the
// sheet as text and default to 0 when unparseable. Balance mirrors the
// "Total Balance" column; it is the source of truth and is not recomputed
// from the fee and payment columns.
type Student struct {
	ID        string `json:"id"`
	RowNumber int    `json:"row_number"` // 1-based sheet row, header included

	Name        string `json:"name"`
	Class       string `json:"class"`
	StudentType string `json:"student_type"`
	Gender      string `json:"gender"`
	ParentName  string `json:"parent_name"`
	ParentPhone string `json:"parent_phone"`

	Arrears         float64 `json:"arrears"`
	BooksFee        float64 `json:"books_fee"`
	SchoolFees      float64 `json:"school_fees"`
	InitialPaid     float64 `json:"initial_paid"`
	Payment         float64 `json:"payment"`
	BooksFeePayment float64 `json:"books_fee_payment"`
	Balance         float64 `json:"balance"`
}

// MakeID synthesizes a stable-ish identifier from the row position and name.
// There is no real primary key in the sheet; this is the best we get.
func MakeID(rowNumber int, name string, index int) string {
	h := fnv.New32a()
	_, _ = h.Write([]byte(strings.ToLower(strings.TrimSpace(name))))
	return fmt.Sprintf("%d-%x-%d", rowNumber, h.Sum32(), index)
}

func (s Student) TotalPaid() float64 {
	return s.InitialPaid + s.Payment + s.BooksFeePayment
}

func (s Student) IsOwing() bool {
	return s.Balance > 0
}

// Blank reports whether the row carries no usable identity, i.e. both name
// and class are missing. Such rows are filtered out during mapping.
func (s Student) Blank() bool {
	return strings.TrimSpace(s.Name) == "" && strings.TrimSpace(s.Class) == ""
}
