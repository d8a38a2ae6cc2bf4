package sheetdb

import (
	"context"

	"github.com/mensahq/sukuu/core"
	"github.com/mensahq/sukuu/core/sba"
)

// SBA records live in one sheet per class ("SBA Primary 4"), all sharing
// this layout.
var sbaHeader = []string{
	"Student ID", "Student Name", "Subject", "Term", "Academic Year",
	"Score", "Total Marks", "Percentage", "Grade", "Teacher",
}

const (
	sbColStudentID = iota
	sbColStudentName
	sbColSubject
	sbColTerm
	sbColYear
	sbColScore
	sbColTotal
	sbColPercentage
	sbColGrade
	sbColTeacher
)

type SBARepository struct {
	db *DB
}

var _ sba.Repository = (*SBARepository)(nil)

func NewSBARepository(db *DB) *SBARepository {
	return &SBARepository{db: db}
}

func (repo *SBARepository) QueryClassRecords(ctx context.Context, class string) ([]sba.Record, error) {
	raw := repo.db.readRows(ctx, sba.SheetFor(class), "")
	cm, rows := DataRows(raw, sbaHeader)
	out := make([]sba.Record, 0, len(rows))
	for _, r := range rows {
		rec := mapSBARecord(cm, r)
		if rec.StudentID == "" && rec.Subject == "" {
			continue
		}
		rec.Derive() // fill percentage/grade the sheet left blank
		out = append(out, rec)
	}
	return out, nil
}

func (repo *SBARepository) SaveRecord(ctx context.Context, class string, rec sba.Record) (core.UpsertOutcome, error) {
	return repo.db.upsertBy(ctx, sba.SheetFor(class), sbaHeader, rec.Key(), sbaKeyOf, sbaRow(rec))
}

func sbaKeyOf(r Row) string {
	return sba.MakeKey(r.Get(sbColStudentID), r.Get(sbColSubject), r.Get(sbColTerm))
}

func mapSBARecord(cm ColumnMap, r Row) sba.Record {
	return sba.Record{
		RowNumber:    r.Number,
		StudentID:    r.Get(cm.Index("Student ID", sbColStudentID)),
		StudentName:  r.Get(cm.Index("Student Name", sbColStudentName)),
		Subject:      r.Get(cm.Index("Subject", sbColSubject)),
		Term:         r.Get(cm.Index("Term", sbColTerm)),
		AcademicYear: r.Get(cm.Index("Academic Year", sbColYear)),
		Score:        r.Float(cm.Index("Score", sbColScore)),
		TotalMarks:   r.Float(cm.Index("Total Marks", sbColTotal)),
		Percentage:   r.Float(cm.Index("Percentage", sbColPercentage)),
		Grade:        r.Get(cm.Index("Grade", sbColGrade)),
		TeacherName:  r.Get(cm.Index("Teacher", sbColTeacher)),
	}
}

func sbaRow(rec sba.Record) []string {
	return []string{
		rec.StudentID,
		rec.StudentName,
		rec.Subject,
		rec.Term,
		rec.AcademicYear,
		FormatFloat(rec.Score),
		FormatFloat(rec.TotalMarks),
		FormatFloat(rec.Percentage),
		rec.Grade,
		rec.TeacherName,
	}
}
