package sheetdb_test

import (
	"context"
	"testing"
	"time"

	"github.com/mensahq/sukuu/core/otp"
	"github.com/mensahq/sukuu/storage/sheetdb"
	testutil "github.com/mensahq/sukuu/tests"
)

func testCode(invoice, code string, expires time.Time) otp.Code {
	return otp.Code{
		ID:          "id-" + invoice,
		InvoiceID:   invoice,
		Code:        code,
		Amount:      350,
		StudentName: "Abena Owusu",
		ExpiresAt:   expires,
	}
}

func TestCodeRepository_SaveAndGet(t *testing.T) {
	db, _ := testutil.NewTestDB(t)
	repo := sheetdb.NewCodeRepository(db)
	ctx := context.Background()
	expires := time.Date(2026, 3, 1, 10, 10, 0, 0, time.UTC)

	if err := repo.SaveCode(ctx, testCode("INV-001", "123456", expires)); err != nil {
		t.Fatalf("SaveCode() error = %v", err)
	}

	got, err := repo.GetCodeByInvoice(ctx, "inv-001")
	if err != nil {
		t.Fatalf("GetCodeByInvoice() error = %v", err)
	}
	if got.Code != "123456" || !got.ExpiresAt.Equal(expires) {
		t.Errorf("code = %+v", got)
	}

	// reissue overwrites the same row
	if err := repo.SaveCode(ctx, testCode("INV-001", "654321", expires)); err != nil {
		t.Fatalf("SaveCode() again error = %v", err)
	}
	got, err = repo.GetCodeByInvoice(ctx, "INV-001")
	if err != nil {
		t.Fatalf("GetCodeByInvoice() error = %v", err)
	}
	if got.Code != "654321" {
		t.Errorf("Code = %q, want the reissued one", got.Code)
	}

	if _, err = repo.GetCodeByInvoice(ctx, "INV-404"); err != otp.ErrNotFound {
		t.Errorf("GetCodeByInvoice(missing) error = %v, want ErrNotFound", err)
	}
}

func TestCodeRepository_ClearIsSoftDelete(t *testing.T) {
	db, store := testutil.NewTestDB(t)
	repo := sheetdb.NewCodeRepository(db)
	ctx := context.Background()
	expires := time.Date(2026, 3, 1, 10, 10, 0, 0, time.UTC)

	if err := repo.SaveCode(ctx, testCode("INV-001", "111111", expires)); err != nil {
		t.Fatalf("SaveCode() error = %v", err)
	}
	if err := repo.SaveCode(ctx, testCode("INV-002", "222222", expires)); err != nil {
		t.Fatalf("SaveCode() error = %v", err)
	}

	if err := repo.ClearCode(ctx, "INV-001"); err != nil {
		t.Fatalf("ClearCode() error = %v", err)
	}

	// the row is blanked in place: indices do not shift
	rows := store.Rows("VerificationCodes")
	if len(rows) != 3 {
		t.Fatalf("sheet rows = %d, want 3 (header + 2)", len(rows))
	}
	if len(rows[1]) != 0 {
		t.Errorf("cleared row = %v, want blank", rows[1])
	}

	got, err := repo.GetCodeByInvoice(ctx, "INV-002")
	if err != nil {
		t.Fatalf("GetCodeByInvoice() error = %v", err)
	}
	if got.RowNumber != 3 {
		t.Errorf("INV-002 row = %d, should be unmoved", got.RowNumber)
	}

	if _, err = repo.GetCodeByInvoice(ctx, "INV-001"); err != otp.ErrNotFound {
		t.Errorf("cleared code lookup error = %v, want ErrNotFound", err)
	}
	if err = repo.ClearCode(ctx, "INV-001"); err != otp.ErrNotFound {
		t.Errorf("ClearCode() twice error = %v, want ErrNotFound", err)
	}
}

func TestCodeRepository_SweepExpired(t *testing.T) {
	db, _ := testutil.NewTestDB(t)
	repo := sheetdb.NewCodeRepository(db)
	ctx := context.Background()

	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	if err := repo.SaveCode(ctx, testCode("INV-001", "111111", now.Add(-time.Minute))); err != nil {
		t.Fatalf("SaveCode() error = %v", err)
	}
	if err := repo.SaveCode(ctx, testCode("INV-002", "222222", now.Add(time.Minute))); err != nil {
		t.Fatalf("SaveCode() error = %v", err)
	}

	swept, err := repo.SweepExpired(ctx, now)
	if err != nil {
		t.Fatalf("SweepExpired() error = %v", err)
	}
	if swept != 1 {
		t.Errorf("swept = %d, want 1", swept)
	}

	if _, err = repo.GetCodeByInvoice(ctx, "INV-001"); err != otp.ErrNotFound {
		t.Errorf("expired code lookup error = %v, want ErrNotFound", err)
	}
	if _, err = repo.GetCodeByInvoice(ctx, "INV-002"); err != nil {
		t.Errorf("live code lookup error = %v", err)
	}
}
