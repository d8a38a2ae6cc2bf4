package tests

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mensahq/sukuu/core/claim"
)

func newClaimBody(invoice string, balance float64) map[string]interface{} {
	return map[string]interface{}{
		"invoice_number": invoice,
		"guardian_name":  "Mr Owusu",
		"guardian_phone": "+233240000001",
		"student_name":   "Abena Owusu",
		"class":          "Basic 4",
		"balance":        balance,
		"due_date":       "2036-03-15",
	}
}

type savedClaim struct {
	Outcome string      `json:"outcome"`
	Claim   claim.Claim `json:"claim"`
}

func Test_claimApi_save(t *testing.T) {
	e := setup(t)

	rec := e.do(t, http.MethodPost, "/v1/claims", newClaimBody("INV-001", 350))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var saved savedClaim
	decode(t, rec, &saved)
	assert.Equal(t, "created", saved.Outcome)
	assert.Equal(t, "INV-001", saved.Claim.InvoiceNumber)
	assert.False(t, saved.Claim.Timestamp.IsZero())

	// resubmitting the invoice overwrites, not duplicates
	rec = e.do(t, http.MethodPost, "/v1/claims", newClaimBody("INV-001", 300))
	require.Equal(t, http.StatusOK, rec.Code)
	decode(t, rec, &saved)
	assert.Equal(t, "updated", saved.Outcome)
	assert.Equal(t, 300.0, saved.Claim.Balance)
	assert.Len(t, e.store.Rows("Claims"), 2) // header + 1

	// validation failures are field-keyed
	body := newClaimBody("", 350)
	rec = e.do(t, http.MethodPost, "/v1/claims", body)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	var fields map[string]string
	decode(t, rec, &fields)
	assert.Contains(t, fields, "invoice_number")

	body = newClaimBody("INV-002", 350)
	body["guardian_phone"] = "12345"
	rec = e.do(t, http.MethodPost, "/v1/claims", body)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func Test_claimApi_query(t *testing.T) {
	e := setup(t)

	overdueBody := newClaimBody("INV-001", 350)
	overdueBody["due_date"] = "2020-01-01"
	require.Equal(t, http.StatusCreated, e.do(t, http.MethodPost, "/v1/claims", overdueBody).Code)
	require.Equal(t, http.StatusCreated, e.do(t, http.MethodPost, "/v1/claims", newClaimBody("INV-002", 120)).Code)

	var claims []claim.Claim

	rec := e.do(t, http.MethodGet, "/v1/claims", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	decode(t, rec, &claims)
	assert.Len(t, claims, 2)

	rec = e.do(t, http.MethodGet, "/v1/claims?status=overdue", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	decode(t, rec, &claims)
	require.Len(t, claims, 1)
	assert.Equal(t, "INV-001", claims[0].InvoiceNumber)

	rec = e.do(t, http.MethodGet, "/v1/claims/INV-002", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var c claim.Claim
	decode(t, rec, &c)
	assert.Equal(t, 120.0, c.Balance)

	assert.Equal(t, http.StatusNotFound, e.do(t, http.MethodGet, "/v1/claims/INV-404", nil).Code)
}

func Test_claimApi_markPaid(t *testing.T) {
	e := setup(t)

	require.Equal(t, http.StatusCreated, e.do(t, http.MethodPost, "/v1/claims", newClaimBody("INV-001", 350)).Code)

	rec := e.do(t, http.MethodPost, "/v1/claims/INV-001/pay", map[string]string{"reference": "MOMO-123"})
	require.Equal(t, http.StatusOK, rec.Code)
	var c claim.Claim
	decode(t, rec, &c)
	assert.True(t, c.Paid)
	assert.Equal(t, "MOMO-123", c.PaymentReference)

	// paying twice conflicts
	rec = e.do(t, http.MethodPost, "/v1/claims/INV-001/pay", map[string]string{})
	assert.Equal(t, http.StatusConflict, rec.Code)

	assert.Equal(t, http.StatusNotFound, e.do(t, http.MethodPost, "/v1/claims/INV-404/pay", map[string]string{}).Code)
}

func Test_claimApi_destroyMultiple(t *testing.T) {
	e := setup(t)

	for _, inv := range []string{"INV-001", "INV-002", "INV-003"} {
		require.Equal(t, http.StatusCreated, e.do(t, http.MethodPost, "/v1/claims", newClaimBody(inv, 100)).Code)
	}

	rec := e.do(t, http.MethodDelete, "/v1/claims", map[string][]string{
		"invoice_numbers": {"INV-001", "INV-003", "INV-404"},
	})
	require.Equal(t, http.StatusOK, rec.Code)
	var res struct {
		Deleted int `json:"deleted"`
	}
	decode(t, rec, &res)
	assert.Equal(t, 2, res.Deleted)

	var claims []claim.Claim
	decode(t, e.do(t, http.MethodGet, "/v1/claims", nil), &claims)
	require.Len(t, claims, 1)
	assert.Equal(t, "INV-002", claims[0].InvoiceNumber)

	// an empty batch is a validation error
	rec = e.do(t, http.MethodDelete, "/v1/claims", map[string][]string{"invoice_numbers": {}})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
