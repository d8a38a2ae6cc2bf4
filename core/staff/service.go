package staff

import (
	"context"
	"errors"
	"time"

	"github.com/mensahq/sukuu/core"
)

var (
	// errors
	ErrNotFound       = errors.New("staff member not found")
	ErrUsernameExists = errors.New("a staff member with this username already exists")
	ErrInvalidRole    = errors.New("invalid staff role")
)

type (
	Repository interface {
		QueryAllStaff(ctx context.Context) ([]Staff, error)
		GetStaffByUsername(ctx context.Context, username string) (Staff, error)
		// SaveStaff upserts on username: at most one live row per username.
		SaveStaff(ctx context.Context, st Staff) error
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) QueryAll(ctx context.Context) ([]Staff, error) {
	return svc.repo.QueryAllStaff(ctx)
}

func (svc *Service) GetByUsername(ctx context.Context, uname string) (Staff, error) {
	return svc.repo.GetStaffByUsername(ctx, core.CleanString(uname, true))
}

func (svc *Service) Create(ctx context.Context, ns NewStaff) (Staff, error) {
	if !validRole(ns.Role) {
		return Staff{}, core.NewValidationError(ErrInvalidRole, core.FieldError{Field: "role", Error: ErrInvalidRole.Error()})
	}
	uname := core.CleanString(ns.Username, true)
	if _, err := svc.repo.GetStaffByUsername(ctx, uname); err == nil {
		return Staff{}, core.NewValidationError(ErrUsernameExists, core.FieldError{Field: "username", Error: ErrUsernameExists.Error()})
	} else if !errors.Is(err, ErrNotFound) {
		return Staff{}, err
	}

	st := Staff{
		Name:           core.CleanString(ns.Name),
		Class:          core.CleanString(ns.Class),
		Role:           core.CleanString(ns.Role, true),
		Status:         StatusActive,
		Username:       uname,
		Contact:        core.CleanString(ns.Contact),
		Location:       core.CleanString(ns.Location),
		EmploymentDate: time.Now().UTC(),
	}
	if err := st.SetPassword(ns.Password); err != nil {
		return Staff{}, err
	}
	if err := svc.repo.SaveStaff(ctx, st); err != nil {
		return Staff{}, err
	}
	return st, nil
}

// SetStatus activates or deactivates the member; deactivation stamps DateStopped.
func (svc *Service) SetStatus(ctx context.Context, uname, status string) (Staff, error) {
	if status != StatusActive && status != StatusInactive {
		return Staff{}, core.NewValidationError(nil, core.FieldError{Field: "status", Error: "must be active or inactive"})
	}
	st, err := svc.repo.GetStaffByUsername(ctx, core.CleanString(uname, true))
	if err != nil {
		return Staff{}, err
	}
	st.Status = status
	if status == StatusInactive {
		st.DateStopped = time.Now().UTC()
	} else {
		st.DateStopped = time.Time{}
	}
	if err := svc.repo.SaveStaff(ctx, st); err != nil {
		return Staff{}, err
	}
	return st, nil
}

// ResetPassword sets a new password for the member; used by the admin CLI.
func (svc *Service) ResetPassword(ctx context.Context, uname, pwd string) error {
	st, err := svc.repo.GetStaffByUsername(ctx, core.CleanString(uname, true))
	if err != nil {
		return err
	}
	if err := st.SetPassword(pwd); err != nil {
		return err
	}
	return svc.repo.SaveStaff(ctx, st)
}

func validRole(role string) bool {
	for _, r := range AllRoles {
		if r == core.CleanString(role, true) {
			return true
		}
	}
	return false
}
