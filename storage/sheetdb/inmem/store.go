// Package inmemstore is an in-memory core.RowStore used by tests and local
// development. It mimics the structural semantics of the real store: clears
// blank in place, deletes shift rows up, inserts shift rows down.
package inmemstore

import (
	"context"
	"sync"

	"github.com/mensahq/sukuu/core"
	"github.com/mensahq/sukuu/storage/sheetdb"
)

type Store struct {
	mu     sync.Mutex
	sheets map[string][][]string

	// failure injection for retry tests
	failReads int
	readErr   error
	readCalls int
}

var _ core.RowStore = (*Store)(nil)

func Open() *Store {
	return &Store{sheets: make(map[string][][]string)}
}

// Seed replaces the named sheet's contents wholesale.
func (s *Store) Seed(sheet string, rows [][]string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sheets[sheet] = cloneRows(rows)
}

// Rows returns a copy of the sheet's current contents, for assertions.
func (s *Store) Rows(sheet string) [][]string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneRows(s.sheets[sheet])
}

// FailReads makes the next n ReadRange calls return err.
func (s *Store) FailReads(n int, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failReads, s.readErr = n, err
}

// ReadCalls reports how many ReadRange calls were made, for retry tests.
func (s *Store) ReadCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.readCalls
}

func (s *Store) ReadRange(_ context.Context, sheet, _ string) ([][]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.readCalls++
	if s.failReads > 0 {
		s.failReads--
		return nil, s.readErr
	}
	// a sheet that does not exist reads as empty, like the real store
	return cloneRows(s.sheets[sheet]), nil
}

func (s *Store) AppendRows(_ context.Context, sheet string, rows [][]string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sheets[sheet] = append(s.sheets[sheet], cloneRows(rows)...)
	return nil
}

func (s *Store) UpdateRange(_ context.Context, sheet, rng string, rows [][]string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	start := sheetdb.RangeStartRow(rng)
	if start == 0 {
		start = 1
	}
	grid := s.sheets[sheet]
	for i, row := range rows {
		idx := start - 1 + i
		for len(grid) <= idx {
			grid = append(grid, nil)
		}
		grid[idx] = append([]string(nil), row...)
	}
	s.sheets[sheet] = grid
	return nil
}

func (s *Store) ClearRange(_ context.Context, sheet, rng string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	start := sheetdb.RangeStartRow(rng)
	grid := s.sheets[sheet]
	if start >= 1 && start <= len(grid) {
		grid[start-1] = nil
	}
	return nil
}

func (s *Store) DeleteRow(_ context.Context, sheet string, rowIndex int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	grid := s.sheets[sheet]
	if rowIndex < 1 || rowIndex > len(grid) {
		return nil
	}
	s.sheets[sheet] = append(grid[:rowIndex-1], grid[rowIndex:]...)
	return nil
}

func (s *Store) InsertRowAt(_ context.Context, sheet string, rowIndex int, rows [][]string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	grid := s.sheets[sheet]
	if rowIndex < 1 || rowIndex > len(grid)+1 {
		rowIndex = len(grid) + 1
	}
	inserted := cloneRows(rows)
	tail := append([][]string(nil), grid[rowIndex-1:]...)
	s.sheets[sheet] = append(append(grid[:rowIndex-1], inserted...), tail...)
	return nil
}

func (s *Store) EnsureSheet(_ context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sheets[name]; !ok {
		s.sheets[name] = nil
	}
	return nil
}

func cloneRows(rows [][]string) [][]string {
	out := make([][]string, len(rows))
	for i, r := range rows {
		out[i] = append([]string(nil), r...)
	}
	return out
}
