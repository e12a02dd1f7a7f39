package shell

import (
	"io"
	"strings"
	"testing"

	"chunkdb/pkg/config"
	"chunkdb/pkg/database"
)

func newTestShell(t *testing.T) *Shell {
	t.Helper()

	cfg := config.Config{
		Name:     "shelldb",
		DataDir:  t.TempDir(),
		ChunkCap: 2,
	}
	db, err := database.NewDatabase(cfg)
	if err != nil {
		t.Fatalf("NewDatabase failed: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	return NewShell(db, io.Discard)
}

func TestHandleLineQuit(t *testing.T) {
	s := newTestShell(t)

	for _, input := range []string{"bye", "exit", "quit"} {
		output, quit := s.handleLine(input)
		if !quit {
			t.Errorf("%q: expected quit", input)
		}
		if output != "bye!" {
			t.Errorf("%q: output = %q", input, output)
		}
	}
}

func TestHandleLineHelp(t *testing.T) {
	s := newTestShell(t)

	output, quit := s.handleLine("help")
	if quit {
		t.Fatal("help should not quit")
	}
	for _, keyword := range []string{"newTable", "addToTable", "showColumns", "sort",
		"set", "remove", "formGroups", "filter", "getCommon", "aggregate"} {
		if !strings.Contains(output, keyword) {
			t.Errorf("help text is missing %s", keyword)
		}
	}
}

func TestHandleLineTables(t *testing.T) {
	s := newTestShell(t)

	output, _ := s.handleLine("tables")
	if output != "no tables yet" {
		t.Errorf("output = %q", output)
	}

	if _, quit := s.handleLine("newTable|users|id,name"); quit {
		t.Fatal("newTable should not quit")
	}
	output, _ = s.handleLine("tables")
	if output != "users" {
		t.Errorf("output = %q", output)
	}
}

func TestHandleLineCommandFlow(t *testing.T) {
	s := newTestShell(t)

	s.handleLine("newTable|users|id,name,age")
	s.handleLine("addToTable|users|1,Alice,30")
	s.handleLine("addToTable|users|2,Bob,25")

	output, quit := s.handleLine("showColumns|users|all")
	if quit {
		t.Fatal("showColumns should not quit")
	}
	for _, want := range []string{"id", "name", "age", "Alice", "Bob", "2 row(s) returned"} {
		if !strings.Contains(output, want) {
			t.Errorf("output missing %q:\n%s", want, output)
		}
	}
}

func TestHandleLineError(t *testing.T) {
	s := newTestShell(t)

	output, quit := s.handleLine("sort|missing|id")
	if quit {
		t.Fatal("errors should not quit")
	}
	if !strings.HasPrefix(output, "error: ") {
		t.Errorf("output = %q, want error prefix", output)
	}
}

func TestHandleLineStats(t *testing.T) {
	s := newTestShell(t)
	s.handleLine("newTable|users|id,name")

	output, _ := s.handleLine("stats")
	for _, want := range []string{"shelldb", "chunk cap", "users"} {
		if !strings.Contains(output, want) {
			t.Errorf("stats output missing %q:\n%s", want, output)
		}
	}
}

func TestRenderGridAlignment(t *testing.T) {
	grid := renderGrid(
		[]string{"id", "name"},
		[][]string{{"1", "Alice"}, {"10", "Bo"}},
	)

	lines := strings.Split(grid, "\n")
	if len(lines) != 4 {
		t.Fatalf("got %d lines, want 4", len(lines))
	}
	if lines[0] != "id  name " {
		t.Errorf("header = %q", lines[0])
	}
	if lines[1] != "--  -----" {
		t.Errorf("separator = %q", lines[1])
	}
	if lines[2] != "1   Alice" {
		t.Errorf("row = %q", lines[2])
	}
	if lines[3] != "10  Bo   " {
		t.Errorf("row = %q", lines[3])
	}
}

func TestRenderGridTruncatesWideCells(t *testing.T) {
	long := strings.Repeat("x", maxCellWidth+10)
	grid := renderGrid([]string{"note"}, [][]string{{long}})

	for _, line := range strings.Split(grid, "\n") {
		if len(line) > maxCellWidth {
			t.Errorf("line exceeds cap: %q", line)
		}
	}
	if !strings.Contains(grid, "...") {
		t.Error("expected ellipsis in truncated cell")
	}
}

func TestRenderResultMessageOnly(t *testing.T) {
	out := renderResult(database.QueryResult{
		Success: true,
		Message: "1 row(s) inserted",
	})
	if out != "1 row(s) inserted" {
		t.Errorf("output = %q", out)
	}
}
