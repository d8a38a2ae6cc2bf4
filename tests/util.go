package testutil

import (
	"context"
	"log"
	"testing"
	"time"

	"github.com/mensahq/sukuu/core"
	"github.com/mensahq/sukuu/core/claim"
	"github.com/mensahq/sukuu/core/staff"
	"github.com/mensahq/sukuu/storage/sheetdb"
	inmemstore "github.com/mensahq/sukuu/storage/sheetdb/inmem"
)

// NewTestConfig returns a config tuned for tests: no retry sleeps, short
// timeouts.
func NewTestConfig() *core.Config {
	conf := &core.Config{
		Env:      "TEST",
		Debug:    true,
		TestMode: true,
		AppName:  "Sukuu",
		Build:    "test",
	}
	conf.Sheet.RequestTimeout = time.Second
	conf.Sheet.RetryAttempts = 3
	conf.Sheet.RetryBackoff = 0
	conf.TemplateCacheTTL = 5 * time.Minute
	conf.VerificationCodeTTL = 10 * time.Minute
	return conf
}

func NewLogger(t *testing.T) core.Logger {
	t.Helper()
	return core.NewStdLogger(log.New(testWriter{t}, "TEST : ", log.LstdFlags))
}

type testWriter struct{ t *testing.T }

func (w testWriter) Write(p []byte) (int, error) {
	w.t.Log(string(p))
	return len(p), nil
}

// NewTestDB builds a sheet DB over a fresh in-memory store. The CSV fast
// path is disabled so every read goes through the store.
func NewTestDB(t *testing.T) (*sheetdb.DB, *inmemstore.Store) {
	t.Helper()
	store := inmemstore.Open()
	return sheetdb.NewDB(store, nil, NewLogger(t), NewTestConfig()), store
}

func CreateStaff(t *testing.T, repo staff.Repository, name, uname, role, pwd string) staff.Staff {
	t.Helper()
	st := staff.Staff{
		Name:           name,
		Username:       uname,
		Role:           role,
		Status:         staff.StatusActive,
		EmploymentDate: time.Now().UTC(),
	}
	if pwd != "" {
		if err := st.SetPassword(pwd); err != nil {
			t.Fatalf("CreateStaff() failed: %v", err)
		}
	}
	if err := repo.SaveStaff(context.Background(), st); err != nil {
		t.Fatalf("CreateStaff() failed: %v", err)
	}
	return st
}

func CreateClaim(t *testing.T, repo claim.Repository, invoice, guardian, phone, student string, balance float64, due time.Time) claim.Claim {
	t.Helper()
	c := claim.Claim{
		InvoiceNumber: invoice,
		GuardianName:  guardian,
		GuardianPhone: phone,
		StudentName:   student,
		Balance:       balance,
		DueDate:       due,
		Timestamp:     time.Now().UTC(),
	}
	if _, err := repo.SaveClaim(context.Background(), c); err != nil {
		t.Fatalf("CreateClaim() failed: %v", err)
	}
	return c
}
