package student

import (
	"context"
	"errors"
	"strings"

	"github.com/mensahq/sukuu/core"
)

var (
	// errors
	ErrNotFound = errors.New("student not found")
)

type (
	Repository interface {
		// QueryAllStudents returns every non-blank row of the Metadata
		// sheet; an unreachable store yields an empty slice, not an error.
		QueryAllStudents(ctx context.Context) ([]Student, error)
		GetStudentByID(ctx context.Context, id string) (Student, error)
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) QueryAll(ctx context.Context) ([]Student, error) {
	return svc.repo.QueryAllStudents(ctx)
}

func (svc *Service) GetByID(ctx context.Context, id string) (Student, error) {
	return svc.repo.GetStudentByID(ctx, core.CleanString(id))
}

func (svc *Service) QueryByClass(ctx context.Context, class string) ([]Student, error) {
	all, err := svc.repo.QueryAllStudents(ctx)
	if err != nil {
		return nil, err
	}
	class = core.CleanString(class, true)
	out := make([]Student, 0, len(all))
	for _, s := range all {
		if strings.ToLower(s.Class) == class {
			out = append(out, s)
		}
	}
	return out, nil
}

// QueryOwing returns students with a positive outstanding balance, the set
// the fee reminder broadcast walks.
func (svc *Service) QueryOwing(ctx context.Context) ([]Student, error) {
	all, err := svc.repo.QueryAllStudents(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]Student, 0, len(all))
	for _, s := range all {
		if s.IsOwing() {
			out = append(out, s)
		}
	}
	return out, nil
}
