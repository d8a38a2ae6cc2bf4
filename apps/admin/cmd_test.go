package main

import (
	"context"
	"io"
	"log"
	"strings"
	"testing"
	"time"

	"github.com/mensahq/sukuu/core"
	"github.com/mensahq/sukuu/core/claim"
	"github.com/mensahq/sukuu/core/smstpl"
	"github.com/mensahq/sukuu/core/staff"
	smssvc "github.com/mensahq/sukuu/services/sms"
	"github.com/mensahq/sukuu/storage/sheetdb"
	inmemstore "github.com/mensahq/sukuu/storage/sheetdb/inmem"
	testutil "github.com/mensahq/sukuu/tests"
)

var staffRepo staff.Repository

func setup(t *testing.T) (*commandLine, *inmemstore.Store) {
	t.Helper()

	logger = log.New(io.Discard, "", 0)

	db, store := testutil.NewTestDB(t)
	staffRepo = sheetdb.NewStaffRepository(db)

	smssvc.ClearSentMessages()

	return &commandLine{
		db:          db,
		staffSvc:    staff.NewService(staffRepo),
		claimSvc:    claim.NewService(sheetdb.NewClaimRepository(db)),
		templateSvc: smstpl.NewService(sheetdb.NewTemplateRepository(db), testutil.NewLogger(t), time.Minute),
		smsSvc:      smssvc.NewSilentConsoleService(),
	}, store
}

type cliTest struct {
	name    string
	args    []string // without program name
	pwd     string
	wantErr error
}

func Test_commandLine_resetPassword(t *testing.T) {
	cli, _ := setup(t)

	st := testutil.CreateStaff(t, staffRepo, "Ama Serwaa", "amaserwaa", staff.RoleTeacher, "oldpassword")

	tests := []cliTest{
		{name: "no command", wantErr: errHelp},
		{name: "unknown command", args: []string{"lol"}, wantErr: errHelp},
		{name: "no args", args: []string{"resetpassword"}, wantErr: errHelp},
		{name: "username but no password", args: []string{"resetpassword", "-username", "lol"}, wantErr: errHelp},
		{name: "staff not found", args: []string{"resetpassword", "-username", "lol"}, pwd: "newpassword", wantErr: staff.ErrNotFound},
		{name: "reset", args: []string{"resetpassword", "-username", st.Username}, pwd: "newpassword"},
	}
	for _, tt := range tests {
		args := append([]string{"admin"}, tt.args...)

		readPasswordFunc = func(fd int) ([]byte, error) {
			return []byte(tt.pwd), nil
		}

		t.Run(tt.name, func(t *testing.T) {
			err := cli.run(args)
			if err == nil {
				refreshed, err := staffRepo.GetStaffByUsername(context.Background(), st.Username)
				if err != nil {
					t.Fatalf("GetStaffByUsername() failed, %v", err)
				}
				if refreshed.CheckPassword("newpassword") != nil {
					t.Error("failed to update new password")
				}
			} else if err != tt.wantErr {
				t.Errorf("cli.run() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func Test_commandLine_addStaff(t *testing.T) {
	cli, _ := setup(t)

	readPasswordFunc = func(fd int) ([]byte, error) {
		return []byte("password1"), nil
	}

	args := []string{"admin", "addstaff", "-name", "Kofi Mensah", "-username", "kofimensah", "-role", "teacher", "-class", "Basic 4"}
	if err := cli.run(args); err != nil {
		t.Fatalf("cli.run() unexpected error = %v", err)
	}

	st, err := staffRepo.GetStaffByUsername(context.Background(), "kofimensah")
	if err != nil {
		t.Fatalf("GetStaffByUsername() failed, %v", err)
	}
	if st.Role != staff.RoleTeacher || st.Class != "Basic 4" {
		t.Errorf("unexpected staff row: %+v", st)
	}
	if st.CheckPassword("password1") != nil {
		t.Error("password not set")
	}

	// same username again must fail
	if err := cli.run(args); err == nil {
		t.Error("expected duplicate username to fail")
	}
}

func Test_commandLine_remind(t *testing.T) {
	cli, _ := setup(t)

	claimRepo := sheetdb.NewClaimRepository(cli.db)
	past := time.Now().UTC().AddDate(0, 0, -7)
	future := time.Now().UTC().AddDate(0, 0, 7)
	testutil.CreateClaim(t, claimRepo, "INV-1", "Mr Owusu", "+233240000001", "Abena Owusu", 350, past)
	testutil.CreateClaim(t, claimRepo, "INV-2", "Mrs Boateng", "+233240000002", "Yaw Boateng", 120, future)

	// paid invoices are never reminded
	paid := testutil.CreateClaim(t, claimRepo, "INV-3", "Mr Asante", "+233240000003", "Esi Asante", 80, past)
	if _, err := claim.NewService(claimRepo).MarkPaid(context.Background(), paid.InvoiceNumber, "ref-1"); err != nil {
		t.Fatalf("MarkPaid() failed, %v", err)
	}

	if err := cli.remind(false); err != nil {
		t.Fatalf("remind() unexpected error = %v", err)
	}
	if got := len(smssvc.SentMessages); got != 2 {
		t.Fatalf("SentMessages = %d, want 2", got)
	}

	msg := smssvc.SentMessages[0]
	if msg.To[0] != "+233240000001" {
		t.Errorf("unexpected recipient %q", msg.To[0])
	}
	for _, want := range []string{"Abena Owusu", core.FormatAmount(350)} {
		if !strings.Contains(msg.Body, want) {
			t.Errorf("body %q missing %q", msg.Body, want)
		}
	}

	smssvc.ClearSentMessages()
	if err := cli.remind(true); err != nil {
		t.Fatalf("remind(overdue) unexpected error = %v", err)
	}
	if got := len(smssvc.SentMessages); got != 1 {
		t.Fatalf("overdue SentMessages = %d, want 1", got)
	}
}

func Test_commandLine_seedSheets(t *testing.T) {
	cli, store := setup(t)

	if err := cli.run([]string{"admin", "seedsheets", "-classes", "Basic 1, Basic 2"}); err != nil {
		t.Fatalf("cli.run() unexpected error = %v", err)
	}

	for _, sheet := range []string{"Metadata", "Teachers", "Claims", "Templates", "VerificationCodes", "SBA Basic 1", "SBA Basic 2"} {
		rows := store.Rows(sheet)
		if len(rows) != 1 {
			t.Errorf("%s: rows = %d, want header only", sheet, len(rows))
		}
	}

	// idempotent
	if err := cli.run([]string{"admin", "seedsheets"}); err != nil {
		t.Fatalf("second seedsheets failed: %v", err)
	}
	if rows := store.Rows("Claims"); len(rows) != 1 {
		t.Errorf("Claims rows after reseed = %d, want 1", len(rows))
	}
}
