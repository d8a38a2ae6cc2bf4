package sheetdb_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/mensahq/sukuu/core/staff"
	"github.com/mensahq/sukuu/storage/sheetdb"
	testutil "github.com/mensahq/sukuu/tests"
)

func TestStaffRepository_SaveAndGet(t *testing.T) {
	db, store := testutil.NewTestDB(t)
	repo := sheetdb.NewStaffRepository(db)
	ctx := context.Background()

	st := staff.Staff{
		Name:           "Ama Serwaa",
		Class:          "Basic 2",
		Role:           staff.RoleTeacher,
		Status:         staff.StatusActive,
		Username:       "amaserwaa",
		Contact:        "+233240000001",
		EmploymentDate: time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC),
	}
	_ = st.SetPassword("password1")

	if err := repo.SaveStaff(ctx, st); err != nil {
		t.Fatalf("SaveStaff() error = %v", err)
	}

	got, err := repo.GetStaffByUsername(ctx, "AmaSerwaa")
	if err != nil {
		t.Fatalf("GetStaffByUsername() error = %v", err)
	}
	if got.Name != "Ama Serwaa" || got.Role != staff.RoleTeacher {
		t.Errorf("staff = %+v", got)
	}
	// the hash survives the round trip
	if got.CheckPassword("password1") != nil {
		t.Error("password hash mangled by the sheet round trip")
	}
	if got.EmploymentDate.Format("2006-01-02") != "2025-09-01" {
		t.Errorf("EmploymentDate = %v", got.EmploymentDate)
	}

	// saving the same username updates the one row
	st.Status = staff.StatusInactive
	st.DateStopped = time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	if err := repo.SaveStaff(ctx, st); err != nil {
		t.Fatalf("SaveStaff() again error = %v", err)
	}
	if rows := store.Rows("Teachers"); len(rows) != 2 {
		t.Errorf("sheet rows = %d, want header + 1", len(rows))
	}
	got, _ = repo.GetStaffByUsername(ctx, "amaserwaa")
	if got.Status != staff.StatusInactive || got.DateStopped.IsZero() {
		t.Errorf("updated staff = %+v", got)
	}

	if _, err = repo.GetStaffByUsername(ctx, "ghost"); err != staff.ErrNotFound {
		t.Errorf("GetStaffByUsername(missing) error = %v, want ErrNotFound", err)
	}
}

func TestStaffRepository_OutageIsNotMissing(t *testing.T) {
	db, store := testutil.NewTestDB(t)
	repo := sheetdb.NewStaffRepository(db)
	ctx := context.Background()

	st := staff.Staff{Name: "Ama Serwaa", Username: "amaserwaa", Role: staff.RoleTeacher}
	if err := repo.SaveStaff(ctx, st); err != nil {
		t.Fatalf("SaveStaff() error = %v", err)
	}

	// a persistent transport failure must surface, not read as "not found":
	// Create, SetStatus and ResetPassword all branch on this lookup
	store.FailReads(100, errors.New("backend down"))
	_, err := repo.GetStaffByUsername(ctx, "amaserwaa")
	if err == nil || errors.Is(err, staff.ErrNotFound) {
		t.Errorf("GetStaffByUsername() during outage error = %v, want a transport error", err)
	}

	// the roster read keeps its soft empty fallback
	store.FailReads(100, errors.New("backend down"))
	all, err := repo.QueryAllStaff(ctx)
	if err != nil || len(all) != 0 {
		t.Errorf("QueryAllStaff() during outage = %v, %v; want empty, nil", all, err)
	}
}
