package sheetdb

import (
	"strconv"
	"strings"
	"time"

	"github.com/mensahq/sukuu/core"
)

// Row is one raw sheet row plus its 1-based position. All accessors are
// bounds-safe and default rather than fail: one bad cell must never abort
// the mapping of a whole record.
type Row struct {
	Number int
	Cells  []string
}

func (r Row) Get(i int) string {
	if i < 0 || i >= len(r.Cells) {
		return ""
	}
	return strings.TrimSpace(r.Cells[i])
}

func (r Row) Amount(i int) float64 {
	return core.ParseAmount(r.Get(i))
}

func (r Row) Float(i int) float64 {
	f, err := strconv.ParseFloat(r.Get(i), 64)
	if err != nil {
		return 0
	}
	return f
}

// Bool reads the loose truthy conventions found in the sheets.
func (r Row) Bool(i int) bool {
	switch strings.ToLower(r.Get(i)) {
	case "true", "yes", "y", "paid", "1":
		return true
	}
	return false
}

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02",
	"02/01/2006",
	"2/1/2006",
}

// Date tries the layouts seen in the sheets; zero time on failure.
func (r Row) Date(i int) time.Time {
	s := r.Get(i)
	if s == "" {
		return time.Time{}
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC()
		}
	}
	return time.Time{}
}

// ColumnMap resolves a column index from a header name when a header row
// exists, falling back to the documented fixed position otherwise. This is
// the one engine both header conventions go through.
type ColumnMap struct {
	byHeader map[string]int
}

func NewColumnMap(headerRow []string) ColumnMap {
	m := ColumnMap{byHeader: make(map[string]int, len(headerRow))}
	for i, h := range headerRow {
		h = strings.ToLower(strings.TrimSpace(h))
		if h == "" {
			continue
		}
		if _, dup := m.byHeader[h]; !dup { // first occurrence wins
			m.byHeader[h] = i
		}
	}
	return m
}

// Index looks the header up case-insensitively; fallback is the positional
// contract used for header-less sheets.
func (m ColumnMap) Index(header string, fallback int) int {
	if i, ok := m.byHeader[strings.ToLower(header)]; ok {
		return i
	}
	return fallback
}

// HasHeader reports whether the given raw first row looks like the expected
// header, checked on the first expected column name.
func HasHeader(firstRow []string, header []string) bool {
	if len(firstRow) == 0 || len(header) == 0 {
		return false
	}
	return strings.EqualFold(strings.TrimSpace(firstRow[0]), header[0])
}

// DataRows splits raw rows into a column map and the data rows (sheet row
// numbers attached). When the first row is the expected header it seeds the
// map and data starts at row 2; otherwise every row is data and columns
// resolve positionally.
func DataRows(raw [][]string, header []string) (ColumnMap, []Row) {
	if len(raw) == 0 {
		return NewColumnMap(nil), nil
	}
	start := 0
	cm := NewColumnMap(nil)
	if HasHeader(raw[0], header) {
		cm = NewColumnMap(raw[0])
		start = 1
	}
	rows := make([]Row, 0, len(raw)-start)
	for i := start; i < len(raw); i++ {
		rows = append(rows, Row{Number: i + 1, Cells: raw[i]})
	}
	return cm, rows
}

// formatting helpers for the write direction

func FormatFloat(f float64) string {
	if f == float64(int64(f)) {
		return strconv.FormatInt(int64(f), 10)
	}
	return strconv.FormatFloat(f, 'f', 2, 64)
}

func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format("2006-01-02")
}

func FormatTimestamp(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

func FormatBool(b bool) string {
	if b {
		return "TRUE"
	}
	return "FALSE"
}
