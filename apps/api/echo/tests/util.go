package tests

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	echoapi "github.com/mensahq/sukuu/apps/api/echo"
	"github.com/mensahq/sukuu/core"
	"github.com/mensahq/sukuu/core/claim"
	"github.com/mensahq/sukuu/core/otp"
	"github.com/mensahq/sukuu/core/sba"
	"github.com/mensahq/sukuu/core/smstpl"
	"github.com/mensahq/sukuu/core/staff"
	"github.com/mensahq/sukuu/core/student"
	smssvc "github.com/mensahq/sukuu/services/sms"
	"github.com/mensahq/sukuu/storage/sheetdb"
	inmemstore "github.com/mensahq/sukuu/storage/sheetdb/inmem"
	testutil "github.com/mensahq/sukuu/tests"
)

type env struct {
	app   *echoapi.Server
	db    *sheetdb.DB
	store *inmemstore.Store
}

func setup(t *testing.T) env {
	t.Helper()

	conf := testutil.NewTestConfig()
	conf.Debug = false // exercise the structured error responses

	db, store := testutil.NewTestDB(t)
	logger := testutil.NewLogger(t)
	smsSvc := smssvc.NewSilentConsoleService()
	smssvc.ClearSentMessages()

	validate, translator := core.NewValidators()

	templateSvc := smstpl.NewService(sheetdb.NewTemplateRepository(db), logger, conf.TemplateCacheTTL)

	app := echoapi.NewServer(echoapi.ServerDeps{
		Conf:           conf,
		Logger:         logger,
		Validate:       validate,
		Translator:     translator,
		DisableReqLogs: true,

		StudentSvc:  student.NewService(sheetdb.NewStudentRepository(db)),
		ClaimSvc:    claim.NewService(sheetdb.NewClaimRepository(db)),
		StaffSvc:    staff.NewService(sheetdb.NewStaffRepository(db)),
		SBASvc:      sba.NewService(sheetdb.NewSBARepository(db)),
		TemplateSvc: templateSvc,
		OTPSvc:      otp.NewService(sheetdb.NewCodeRepository(db), smsSvc, templateSvc, logger, conf.VerificationCodeTTL),
	})

	return env{app: app, db: db, store: store}
}

func (e env) do(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encoding request body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	e.app.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, into interface{}) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), into); err != nil {
		t.Fatalf("decoding response %q: %v", rec.Body.String(), err)
	}
}
