package sheetdb_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mensahq/sukuu/storage/sheetdb"
)

func TestCSVClient_Fetch(t *testing.T) {
	const csvBody = "Name,Grade,Contact\n\"Smith, John\",Basic 5,+233240000002\nAbena Owusu,Basic 4,+233240000001\n"

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/sheet123/export" {
			http.NotFound(w, r)
			return
		}
		if r.URL.Query().Get("format") != "csv" || r.URL.Query().Get("sheet") != "Metadata" {
			http.Error(w, "bad query", http.StatusBadRequest)
			return
		}
		_, _ = fmt.Fprint(w, csvBody)
	}))
	defer srv.Close()

	client := sheetdb.NewCSVClient(srv.URL, "sheet123", srv.Client())

	rows, err := client.Fetch(context.Background(), "Metadata")
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("rows = %d, want 3", len(rows))
	}
	// quoted comma stays one cell
	if rows[1][0] != "Smith, John" {
		t.Errorf("quoted cell = %q", rows[1][0])
	}
	if rows[2][1] != "Basic 4" {
		t.Errorf("cell = %q", rows[2][1])
	}

	if _, err = client.Fetch(context.Background(), "NoSuchSheet"); err == nil {
		t.Error("Fetch() of a rejected sheet should fail")
	}
}

func TestCSVClient_RaggedRows(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = fmt.Fprint(w, "Name,Grade\nAbena,Basic 4,extra\nKojo\n")
	}))
	defer srv.Close()

	client := sheetdb.NewCSVClient(srv.URL, "sheet123", srv.Client())
	rows, err := client.Fetch(context.Background(), "Metadata")
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	// hand-edited sheets export ragged rows; they parse, not error
	if len(rows) != 3 || len(rows[1]) != 3 || len(rows[2]) != 1 {
		t.Errorf("rows = %v", rows)
	}
}
