package sheetdb_test

import (
	"context"
	"testing"

	"github.com/mensahq/sukuu/core"
	"github.com/mensahq/sukuu/core/sba"
	"github.com/mensahq/sukuu/storage/sheetdb"
	testutil "github.com/mensahq/sukuu/tests"
)

func TestSBARepository_SaveRecord(t *testing.T) {
	db, store := testutil.NewTestDB(t)
	repo := sheetdb.NewSBARepository(db)
	ctx := context.Background()

	rec := sba.Record{
		StudentID:    "S1",
		StudentName:  "Abena Owusu",
		Subject:      "Mathematics",
		Term:         "Term 1",
		AcademicYear: "2025/2026",
		Score:        42.5,
		TotalMarks:   50,
		TeacherName:  "Ama Serwaa",
	}
	rec.Derive()

	outcome, err := repo.SaveRecord(ctx, "Basic 4", rec)
	if err != nil {
		t.Fatalf("SaveRecord() error = %v", err)
	}
	if outcome != core.Created {
		t.Errorf("outcome = %v, want Created", outcome)
	}

	// same student+subject+term overwrites, case-insensitively
	rec.Score = 45
	rec.Percentage, rec.Grade = 0, ""
	rec.Subject = "mathematics"
	rec.Derive()
	outcome, err = repo.SaveRecord(ctx, "Basic 4", rec)
	if err != nil {
		t.Fatalf("SaveRecord() again error = %v", err)
	}
	if outcome != core.Updated {
		t.Errorf("outcome = %v, want Updated", outcome)
	}
	if rows := store.Rows("SBA Basic 4"); len(rows) != 2 {
		t.Errorf("sheet rows = %d, want header + 1", len(rows))
	}

	// a different term is a new row
	rec.Term = "Term 2"
	if outcome, _ = repo.SaveRecord(ctx, "Basic 4", rec); outcome != core.Created {
		t.Errorf("outcome = %v, want Created for a new term", outcome)
	}

	records, err := repo.QueryClassRecords(ctx, "Basic 4")
	if err != nil {
		t.Fatalf("QueryClassRecords() error = %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("records = %d, want 2", len(records))
	}
	if records[0].Percentage != 90 || records[0].Grade != "A" {
		t.Errorf("first record = %+v", records[0])
	}
}

func TestSBARepository_QueryDerivesBlanks(t *testing.T) {
	db, store := testutil.NewTestDB(t)
	repo := sheetdb.NewSBARepository(db)

	// hand-entered sheet rows with percentage and grade left blank
	store.Seed("SBA Basic 5", [][]string{
		{"Student ID", "Student Name", "Subject", "Term", "Academic Year",
			"Score", "Total Marks", "Percentage", "Grade", "Teacher"},
		{"S1", "Kojo", "Science", "Term 1", "2025/2026", "22", "50", "", "", "Ama"},
		{"", "", "", "", "", "", "", "", "", ""},
	})

	records, err := repo.QueryClassRecords(context.Background(), "Basic 5")
	if err != nil {
		t.Fatalf("QueryClassRecords() error = %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("records = %d, want 1 (blank row dropped)", len(records))
	}
	if records[0].Percentage != 44 || records[0].Grade != "E" {
		t.Errorf("derived record = %+v", records[0])
	}
}
