package sba

import (
	"context"
	"errors"
	"strings"

	"github.com/mensahq/sukuu/core"
)

var (
	// errors
	ErrNotFound = errors.New("assessment record not found")
)

type (
	Repository interface {
		QueryClassRecords(ctx context.Context, class string) ([]Record, error)
		// SaveRecord upserts on (StudentID, Subject, Term) within the
		// class sheet.
		SaveRecord(ctx context.Context, class string, rec Record) (core.UpsertOutcome, error)
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) QueryByClass(ctx context.Context, class string) ([]Record, error) {
	return svc.repo.QueryClassRecords(ctx, core.CleanString(class))
}

func (svc *Service) QueryByStudent(ctx context.Context, class, studentID, term string) ([]Record, error) {
	all, err := svc.repo.QueryClassRecords(ctx, core.CleanString(class))
	if err != nil {
		return nil, err
	}
	studentID = core.CleanString(studentID, true)
	term = core.CleanString(term, true)
	out := make([]Record, 0, len(all))
	for _, r := range all {
		if strings.ToLower(r.StudentID) != studentID {
			continue
		}
		if term != "" && strings.ToLower(r.Term) != term {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

// Save upserts one assessment score. Percentage and grade are derived here
// so every write path stores them consistently.
func (svc *Service) Save(ctx context.Context, nr NewRecord) (Record, core.UpsertOutcome, error) {
	rec := Record{
		StudentID:    core.CleanString(nr.StudentID),
		StudentName:  core.CleanString(nr.StudentName),
		Subject:      core.CleanString(nr.Subject),
		Term:         core.CleanString(nr.Term),
		AcademicYear: core.CleanString(nr.AcademicYear),
		Score:        nr.Score,
		TotalMarks:   nr.TotalMarks,
		TeacherName:  core.CleanString(nr.TeacherName),
	}
	rec.Derive()

	outcome, err := svc.repo.SaveRecord(ctx, core.CleanString(nr.Class), rec)
	if err != nil {
		return Record{}, 0, err
	}
	return rec, outcome, nil
}
