package sheetdb_test

import (
	"context"
	"testing"

	"github.com/mensahq/sukuu/core/student"
	"github.com/mensahq/sukuu/storage/sheetdb"
	testutil "github.com/mensahq/sukuu/tests"
)

var studentSheetFixture = [][]string{
	{"Name", "Grade", "Student Type", "Gender", "Parent Name", "Contact",
		"Arrears", "Books Fees", "School Fees Amount", "Initial Amount Paid",
		"Payment", "Books Fee Payment", "Total Balance", "No."},
	{"Abena Owusu", "Basic 4", "Day", "F", "Mr Owusu", "+233240000001",
		"0", "50", "GHS 1,000.00", "200", "300", "50", "500", "1"},
	{"", "", "", "", "", "", "", "", "", "", "", "", "", ""}, // blank row
	{"Smith, John", "Basic 5", "Boarding", "M", "Mrs Smith", "+233240000002",
		"100", "0", "1,200.50", "0", "0", "0", "1300.50", "2"},
	{"Kojo Mensah", "Basic 4", "Day", "M", "Mr Mensah", "+233240000003",
		"0", "0", "800", "800", "0", "0", "0", "3"},
}

func TestStudentRepository_QueryAllStudents(t *testing.T) {
	db, store := testutil.NewTestDB(t)
	repo := sheetdb.NewStudentRepository(db)
	store.Seed("Metadata", studentSheetFixture)

	all, err := repo.QueryAllStudents(context.Background())
	if err != nil {
		t.Fatalf("QueryAllStudents() error = %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("students = %d, want 3 (blank row dropped)", len(all))
	}

	abena := all[0]
	if abena.Name != "Abena Owusu" || abena.Class != "Basic 4" {
		t.Errorf("first student = %+v", abena)
	}
	if abena.SchoolFees != 1000 {
		t.Errorf("SchoolFees = %v, want 1000 parsed from \"GHS 1,000.00\"", abena.SchoolFees)
	}
	if abena.Balance != 500 || !abena.IsOwing() {
		t.Errorf("Balance = %v", abena.Balance)
	}
	if abena.TotalPaid() != 550 {
		t.Errorf("TotalPaid() = %v, want 550", abena.TotalPaid())
	}
	if abena.ID == "" || abena.RowNumber != 2 {
		t.Errorf("identity = %q row %d", abena.ID, abena.RowNumber)
	}

	// a comma inside a name stays one cell
	john := all[1]
	if john.Name != "Smith, John" {
		t.Errorf("second student name = %q", john.Name)
	}
	if john.Balance != 1300.50 {
		t.Errorf("Balance = %v, want 1300.50", john.Balance)
	}

	if all[2].IsOwing() {
		t.Error("settled student misreported as owing")
	}
}

func TestStudentRepository_GetStudentByID(t *testing.T) {
	db, store := testutil.NewTestDB(t)
	repo := sheetdb.NewStudentRepository(db)
	store.Seed("Metadata", studentSheetFixture)
	ctx := context.Background()

	all, err := repo.QueryAllStudents(ctx)
	if err != nil {
		t.Fatalf("QueryAllStudents() error = %v", err)
	}

	got, err := repo.GetStudentByID(ctx, all[1].ID)
	if err != nil {
		t.Fatalf("GetStudentByID() error = %v", err)
	}
	if got.Name != "Smith, John" {
		t.Errorf("Name = %q", got.Name)
	}

	if _, err = repo.GetStudentByID(ctx, "nope"); err != student.ErrNotFound {
		t.Errorf("GetStudentByID(nope) error = %v, want ErrNotFound", err)
	}
}

func TestStudentRepository_EmptyOnOutage(t *testing.T) {
	db, _ := testutil.NewTestDB(t)
	repo := sheetdb.NewStudentRepository(db)

	// missing sheet reads as empty roster, never an error
	all, err := repo.QueryAllStudents(context.Background())
	if err != nil {
		t.Fatalf("QueryAllStudents() error = %v", err)
	}
	if len(all) != 0 {
		t.Errorf("students = %d, want 0", len(all))
	}
}
