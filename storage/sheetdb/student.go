package sheetdb

import (
	"context"

	"github.com/mensahq/sukuu/core/student"
)

// Students sheet ("Metadata"). The column order below is a positional
// contract with the sheet's maintainers; the header row is honored when
// present but the positions are what the mobile app and the dashboard agree
// on.
const studentsSheet = "Metadata"

var studentHeader = []string{
	"Name", "Grade", "Student Type", "Gender", "Parent Name", "Contact",
	"Arrears", "Books Fees", "School Fees Amount", "Initial Amount Paid",
	"Payment", "Books Fee Payment", "Total Balance", "No.",
}

// positional fallbacks, 0-based
const (
	stColName = iota
	stColClass
	stColType
	stColGender
	stColParent
	stColContact
	stColArrears
	stColBooksFee
	stColSchoolFees
	stColInitialPaid
	stColPayment
	stColBooksPayment
	stColBalance
)

type StudentRepository struct {
	db *DB
}

var _ student.Repository = (*StudentRepository)(nil)

func NewStudentRepository(db *DB) *StudentRepository {
	return &StudentRepository{db: db}
}

// QueryAllStudents prefers the public CSV export (cheap, no auth) and falls
// back to the authenticated RPC read when the export is unavailable. Either
// way an unreachable store means an empty roster, not an error.
func (repo *StudentRepository) QueryAllStudents(ctx context.Context) ([]student.Student, error) {
	var raw [][]string
	if repo.db.csv != nil {
		var err error
		if raw, err = repo.db.csv.Fetch(ctx, studentsSheet); err != nil {
			repo.db.logger.Warn("students csv export failed, falling back to rpc read", err)
			raw = nil
		}
	}
	if raw == nil {
		raw = repo.db.readRows(ctx, studentsSheet, "")
	}
	return mapStudents(raw), nil
}

func (repo *StudentRepository) GetStudentByID(ctx context.Context, id string) (student.Student, error) {
	all, err := repo.QueryAllStudents(ctx)
	if err != nil {
		return student.Student{}, err
	}
	for _, s := range all {
		if s.ID == id {
			return s, nil
		}
	}
	return student.Student{}, student.ErrNotFound
}

func mapStudents(raw [][]string) []student.Student {
	cm, rows := DataRows(raw, studentHeader)
	out := make([]student.Student, 0, len(rows))
	for i, r := range rows {
		s := student.Student{
			RowNumber:       r.Number,
			Name:            r.Get(cm.Index("Name", stColName)),
			Class:           r.Get(cm.Index("Grade", stColClass)),
			StudentType:     r.Get(cm.Index("Student Type", stColType)),
			Gender:          r.Get(cm.Index("Gender", stColGender)),
			ParentName:      r.Get(cm.Index("Parent Name", stColParent)),
			ParentPhone:     r.Get(cm.Index("Contact", stColContact)),
			Arrears:         r.Amount(cm.Index("Arrears", stColArrears)),
			BooksFee:        r.Amount(cm.Index("Books Fees", stColBooksFee)),
			SchoolFees:      r.Amount(cm.Index("School Fees Amount", stColSchoolFees)),
			InitialPaid:     r.Amount(cm.Index("Initial Amount Paid", stColInitialPaid)),
			Payment:         r.Amount(cm.Index("Payment", stColPayment)),
			BooksFeePayment: r.Amount(cm.Index("Books Fee Payment", stColBooksPayment)),
			Balance:         r.Amount(cm.Index("Total Balance", stColBalance)),
		}
		if s.Blank() {
			continue
		}
		s.ID = student.MakeID(r.Number, s.Name, i)
		out = append(out, s)
	}
	return out
}
