package tests

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mensahq/sukuu/core/sba"
)

func newRecordBody(studentID, subject, term string, score float64) map[string]interface{} {
	return map[string]interface{}{
		"student_id":    studentID,
		"student_name":  "Abena Owusu",
		"class":         "Basic 4",
		"subject":       subject,
		"term":          term,
		"academic_year": "2025/2026",
		"score":         score,
		"total_marks":   50,
		"teacher_name":  "Ama Serwaa",
	}
}

type savedRecord struct {
	Outcome string     `json:"outcome"`
	Record  sba.Record `json:"record"`
}

func Test_sbaApi_save(t *testing.T) {
	e := setup(t)

	rec := e.do(t, http.MethodPost, "/v1/sba", newRecordBody("S1", "Mathematics", "Term 1", 42.5))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var saved savedRecord
	decode(t, rec, &saved)
	assert.Equal(t, "created", saved.Outcome)
	assert.Equal(t, 85.0, saved.Record.Percentage)
	assert.Equal(t, "A", saved.Record.Grade)

	// same (student, subject, term) overwrites the row
	rec = e.do(t, http.MethodPost, "/v1/sba", newRecordBody("S1", "mathematics", "Term 1", 20))
	require.Equal(t, http.StatusOK, rec.Code)
	decode(t, rec, &saved)
	assert.Equal(t, "updated", saved.Outcome)
	assert.Equal(t, "E", saved.Record.Grade)
	assert.Len(t, e.store.Rows("SBA Basic 4"), 2) // header + 1

	// zero total marks is rejected
	body := newRecordBody("S1", "Science", "Term 1", 10)
	body["total_marks"] = 0
	assert.Equal(t, http.StatusBadRequest, e.do(t, http.MethodPost, "/v1/sba", body).Code)
}

func Test_sbaApi_query(t *testing.T) {
	e := setup(t)

	require.Equal(t, http.StatusCreated, e.do(t, http.MethodPost, "/v1/sba", newRecordBody("S1", "Mathematics", "Term 1", 40)).Code)
	require.Equal(t, http.StatusCreated, e.do(t, http.MethodPost, "/v1/sba", newRecordBody("S1", "Mathematics", "Term 2", 45)).Code)
	require.Equal(t, http.StatusCreated, e.do(t, http.MethodPost, "/v1/sba", newRecordBody("S2", "Mathematics", "Term 1", 30)).Code)

	var records []sba.Record

	rec := e.do(t, http.MethodGet, "/v1/sba/Basic+4", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	decode(t, rec, &records)
	assert.Len(t, records, 3)

	rec = e.do(t, http.MethodGet, "/v1/sba/Basic+4/S1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	decode(t, rec, &records)
	assert.Len(t, records, 2)

	rec = e.do(t, http.MethodGet, "/v1/sba/Basic+4/S1?term=Term+2", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	decode(t, rec, &records)
	require.Len(t, records, 1)
	assert.Equal(t, 45.0, records[0].Score)

	// unknown class is an empty list, not an error
	rec = e.do(t, http.MethodGet, "/v1/sba/Basic+9", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	decode(t, rec, &records)
	assert.Empty(t, records)
}
