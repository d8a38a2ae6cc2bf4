package sheetdb

import (
	"context"
	"strings"

	"github.com/mensahq/sukuu/core/staff"
)

const staffSheet = "Teachers"

var staffHeader = []string{
	"Name", "Class", "Role", "Status", "Username", "Password",
	"Contact", "Location", "Employment Date", "Date Stopped",
}

const (
	sfColName = iota
	sfColClass
	sfColRole
	sfColStatus
	sfColUsername
	sfColPassword
	sfColContact
	sfColLocation
	sfColEmployed
	sfColStopped
)

type StaffRepository struct {
	db *DB
}

var _ staff.Repository = (*StaffRepository)(nil)

func NewStaffRepository(db *DB) *StaffRepository {
	return &StaffRepository{db: db}
}

func (repo *StaffRepository) QueryAllStaff(ctx context.Context) ([]staff.Staff, error) {
	raw := repo.db.readRows(ctx, staffSheet, "")
	cm, rows := DataRows(raw, staffHeader)
	out := make([]staff.Staff, 0, len(rows))
	for _, r := range rows {
		st := mapStaff(cm, r)
		if st.Name == "" && st.Username == "" {
			continue
		}
		out = append(out, st)
	}
	return out, nil
}

// GetStaffByUsername reads fail-loud: this lookup feeds account writes, and
// an outage must not read as a missing account.
func (repo *StaffRepository) GetStaffByUsername(ctx context.Context, username string) (staff.Staff, error) {
	raw, err := repo.db.readRowsStrict(ctx, staffSheet, "")
	if err != nil {
		return staff.Staff{}, err
	}
	cm, rows := DataRows(raw, staffHeader)
	for _, r := range rows {
		st := mapStaff(cm, r)
		if strings.EqualFold(st.Username, username) {
			return st, nil
		}
	}
	return staff.Staff{}, staff.ErrNotFound
}

func (repo *StaffRepository) SaveStaff(ctx context.Context, st staff.Staff) error {
	_, err := repo.db.upsert(ctx, staffSheet, staffHeader, sfColUsername, st.Username, staffRow(st))
	return err
}

func mapStaff(cm ColumnMap, r Row) staff.Staff {
	return staff.Staff{
		RowNumber:      r.Number,
		Name:           r.Get(cm.Index("Name", sfColName)),
		Class:          r.Get(cm.Index("Class", sfColClass)),
		Role:           strings.ToLower(r.Get(cm.Index("Role", sfColRole))),
		Status:         strings.ToLower(r.Get(cm.Index("Status", sfColStatus))),
		Username:       strings.ToLower(r.Get(cm.Index("Username", sfColUsername))),
		PasswordHash:   r.Get(cm.Index("Password", sfColPassword)),
		Contact:        r.Get(cm.Index("Contact", sfColContact)),
		Location:       r.Get(cm.Index("Location", sfColLocation)),
		EmploymentDate: r.Date(cm.Index("Employment Date", sfColEmployed)),
		DateStopped:    r.Date(cm.Index("Date Stopped", sfColStopped)),
	}
}

func staffRow(st staff.Staff) []string {
	return []string{
		st.Name,
		st.Class,
		st.Role,
		st.Status,
		st.Username,
		st.PasswordHash,
		st.Contact,
		st.Location,
		FormatDate(st.EmploymentDate),
		FormatDate(st.DateStopped),
	}
}
