package sba

import "strings"

// Grade cutoffs, in descending order of percentage. Three call sites need
// consistent grading (record mapping, report rendering, API), so the table
// lives here and nowhere else.
var gradeCutoffs = []struct {
	Min   float64
	Grade string
}{
	{80, "A"},
	{70, "B"},
	{60, "C"},
	{50, "D"},
	{40, "E"},
}

// GradeFor derives the letter grade from a percentage score.
func GradeFor(percentage float64) string {
	for _, c := range gradeCutoffs {
		if percentage >= c.Min {
			return c.Grade
		}
	}
	return "F"
}

// Record is one per-student-subject-term assessment row, stored in the
// class's "SBA <Class>" sheet. The composite business key is
// (StudentID, Subject, Term).
type Record struct {
	RowNumber int `json:"-"`

	StudentID    string `json:"student_id"`
	StudentName  string `json:"student_name"`
	Subject      string `json:"subject"`
	Term         string `json:"term"`
	AcademicYear string `json:"academic_year"`

	Score      float64 `json:"score"`
	TotalMarks float64 `json:"total_marks"`
	Percentage float64 `json:"percentage"`
	Grade      string  `json:"grade"`

	TeacherName string `json:"teacher_name"`
}

// Key is the composite business key the upsert resolver matches on.
func (r Record) Key() string {
	return MakeKey(r.StudentID, r.Subject, r.Term)
}

func MakeKey(studentID, subject, term string) string {
	return strings.ToLower(strings.TrimSpace(studentID)) + "|" +
		strings.ToLower(strings.TrimSpace(subject)) + "|" +
		strings.ToLower(strings.TrimSpace(term))
}

// Derive fills Percentage and Grade when the sheet left them blank.
// A zero TotalMarks cannot produce a percentage; the grade then falls to F
// only if a percentage of 0 was explicit.
func (r *Record) Derive() {
	if r.Percentage == 0 && r.TotalMarks > 0 {
		r.Percentage = r.Score / r.TotalMarks * 100
	}
	if r.Grade == "" {
		r.Grade = GradeFor(r.Percentage)
	}
}

// SheetFor names the per-class SBA sheet.
func SheetFor(class string) string {
	return "SBA " + strings.TrimSpace(class)
}

type NewRecord struct {
	StudentID    string  `json:"student_id" validate:"required"`
	StudentName  string  `json:"student_name"`
	Class        string  `json:"class" validate:"required"`
	Subject      string  `json:"subject" validate:"required"`
	Term         string  `json:"term" validate:"required"`
	AcademicYear string  `json:"academic_year"`
	Score        float64 `json:"score" validate:"gte=0"`
	TotalMarks   float64 `json:"total_marks" validate:"gt=0"`
	TeacherName  string  `json:"teacher_name"`
}
