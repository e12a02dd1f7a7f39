package database

import (
	"reflect"
	"strings"
	"testing"

	"chunkdb/pkg/config"
	"chunkdb/pkg/dberr"
)

// setupTestDB creates a database with a small chunk cap so chunking and
// spill paths run even in small tests.
func setupTestDB(t *testing.T) *Database {
	t.Helper()
	return setupTestDBWithCap(t, 3)
}

func setupTestDBWithCap(t *testing.T, chunkCap int) *Database {
	t.Helper()

	cfg := config.Config{
		Name:     "testdb",
		DataDir:  t.TempDir(),
		ChunkCap: chunkCap,
	}

	db, err := NewDatabase(cfg)
	if err != nil {
		t.Fatalf("NewDatabase failed: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func mustExecute(t *testing.T, db *Database, command string) QueryResult {
	t.Helper()

	result, err := db.ExecuteCommand(command)
	if err != nil {
		t.Fatalf("ExecuteCommand(%q) failed: %v", command, err)
	}
	if !result.Success {
		t.Fatalf("ExecuteCommand(%q) reported failure: %s", command, result.Message)
	}
	return result
}

// seedEmployees creates the employees table used by most scenarios.
func seedEmployees(t *testing.T, db *Database) {
	t.Helper()

	mustExecute(t, db, "newTable|employees|id,name,city,salary")
	for _, row := range []string{
		"3,Cara,porto,700",
		"1,Alice,lisbon,500",
		"4,Dave,porto,800",
		"2,Bob,braga,600",
		"5,Eve,braga,600",
	} {
		mustExecute(t, db, "addToTable|employees|"+row)
	}
}

func TestExecuteCommand_CreateTable(t *testing.T) {
	db := setupTestDB(t)

	tests := []struct {
		name        string
		command     string
		shouldError bool
	}{
		{
			name:    "simple create",
			command: "newTable|users|id,name",
		},
		{
			name:        "duplicate table",
			command:     "newTable|users|id,email",
			shouldError: true,
		},
		{
			name:        "missing column list",
			command:     "newTable|orphan",
			shouldError: true,
		},
		{
			name:        "duplicate column names",
			command:     "newTable|twice|id,id",
			shouldError: true,
		},
		{
			name:        "empty input",
			command:     "",
			shouldError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := db.ExecuteCommand(tt.command)
			if tt.shouldError {
				if err == nil {
					t.Errorf("expected error but got none")
				}
				return
			}
			if err != nil {
				t.Errorf("unexpected error: %v", err)
				return
			}
			if !result.Success {
				t.Errorf("expected success, got %+v", result)
			}
		})
	}

	tables := db.GetTables()
	if !reflect.DeepEqual(tables, []string{"users"}) {
		t.Errorf("GetTables = %v, want [users]", tables)
	}
}

func TestExecuteCommand_Insert(t *testing.T) {
	db := setupTestDB(t)
	mustExecute(t, db, "newTable|users|id,name")

	result := mustExecute(t, db, "addToTable|users|1,Alice")
	if result.RowsAffected != 1 {
		t.Errorf("RowsAffected = %d, want 1", result.RowsAffected)
	}
	if result.Message != "1 row(s) inserted" {
		t.Errorf("Message = %q", result.Message)
	}

	t.Run("duplicate key", func(t *testing.T) {
		_, err := db.ExecuteCommand("addToTable|users|1,Imposter")
		if !dberr.HasCode(err, dberr.CodeDuplicateKey) {
			t.Errorf("expected DUPLICATE_KEY, got %v", err)
		}
	})

	t.Run("wrong arity", func(t *testing.T) {
		_, err := db.ExecuteCommand("addToTable|users|2,Bob,extra")
		if err == nil {
			t.Error("expected error for three values against two columns")
		}
	})

	t.Run("unknown table", func(t *testing.T) {
		_, err := db.ExecuteCommand("addToTable|ghosts|1,Casper")
		if !dberr.HasCode(err, dberr.CodeNotFound) {
			t.Errorf("expected NOT_FOUND, got %v", err)
		}
	})
}

func TestExecuteCommand_ShowColumns(t *testing.T) {
	db := setupTestDB(t)
	seedEmployees(t, db)

	t.Run("named columns", func(t *testing.T) {
		result := mustExecute(t, db, "showColumns|employees|name,city")
		if !reflect.DeepEqual(result.Columns, []string{"name", "city"}) {
			t.Errorf("Columns = %v", result.Columns)
		}
		if len(result.Rows) != 5 {
			t.Fatalf("got %d rows, want 5", len(result.Rows))
		}
		if !reflect.DeepEqual(result.Rows[0], []string{"Cara", "porto"}) {
			t.Errorf("first row = %v", result.Rows[0])
		}
		if result.Message != "5 row(s) returned" {
			t.Errorf("Message = %q", result.Message)
		}
	})

	t.Run("all columns", func(t *testing.T) {
		result := mustExecute(t, db, "showColumns|employees|all")
		if !reflect.DeepEqual(result.Columns, []string{"id", "name", "city", "salary"}) {
			t.Errorf("Columns = %v", result.Columns)
		}
	})

	t.Run("unknown column", func(t *testing.T) {
		_, err := db.ExecuteCommand("showColumns|employees|name,height")
		if !dberr.HasCode(err, dberr.CodeColumnNotFound) {
			t.Errorf("expected COLUMN_NOT_FOUND, got %v", err)
		}
	})
}

func TestExecuteCommand_Sort(t *testing.T) {
	db := setupTestDB(t)
	seedEmployees(t, db)

	result := mustExecute(t, db, "sort|employees|id")
	if result.RowsAffected != 5 {
		t.Errorf("RowsAffected = %d, want 5", result.RowsAffected)
	}
	if result.Message != "5 row(s) sorted by id" {
		t.Errorf("Message = %q", result.Message)
	}

	wantOrder := []string{"1", "2", "3", "4", "5"}
	for i, row := range result.Rows {
		if row[0] != wantOrder[i] {
			t.Fatalf("row %d id = %s, want %s", i, row[0], wantOrder[i])
		}
	}

	// A later scan observes the persisted order.
	rescan := mustExecute(t, db, "showColumns|employees|all")
	for i, row := range rescan.Rows {
		if row[0] != wantOrder[i] {
			t.Fatalf("persisted row %d id = %s, want %s", i, row[0], wantOrder[i])
		}
	}
}

func TestExecuteCommand_SortIsStable(t *testing.T) {
	db := setupTestDB(t)
	seedEmployees(t, db)

	result := mustExecute(t, db, "sort|employees|salary")

	var names []string
	for _, row := range result.Rows {
		names = append(names, row[1])
	}
	// Bob precedes Eve on equal salaries because Bob was scanned first.
	want := []string{"Alice", "Bob", "Eve", "Cara", "Dave"}
	if !reflect.DeepEqual(names, want) {
		t.Errorf("sorted names = %v, want %v", names, want)
	}
}

func TestExecuteCommand_Update(t *testing.T) {
	db := setupTestDB(t)
	seedEmployees(t, db)

	result := mustExecute(t, db, "set|employees|city|porto|salary|999")
	if result.RowsAffected != 2 {
		t.Errorf("RowsAffected = %d, want 2", result.RowsAffected)
	}
	if result.Message != "2 row(s) updated" {
		t.Errorf("Message = %q", result.Message)
	}

	check := mustExecute(t, db, "filter|employees|salary|999|equalTo")
	if len(check.Rows) != 2 {
		t.Errorf("got %d updated rows, want 2", len(check.Rows))
	}

	t.Run("key collision", func(t *testing.T) {
		_, err := db.ExecuteCommand("set|employees|name|Alice|id|2")
		if !dberr.HasCode(err, dberr.CodeDuplicateKey) {
			t.Errorf("expected DUPLICATE_KEY, got %v", err)
		}
	})

	t.Run("unknown column", func(t *testing.T) {
		_, err := db.ExecuteCommand("set|employees|height|10|salary|0")
		if !dberr.HasCode(err, dberr.CodeColumnNotFound) {
			t.Errorf("expected COLUMN_NOT_FOUND, got %v", err)
		}
	})
}

func TestExecuteCommand_Delete(t *testing.T) {
	db := setupTestDB(t)
	seedEmployees(t, db)

	result := mustExecute(t, db, "remove|employees|city|braga")
	if result.RowsAffected != 2 {
		t.Errorf("RowsAffected = %d, want 2", result.RowsAffected)
	}
	if result.Message != "2 row(s) deleted" {
		t.Errorf("Message = %q", result.Message)
	}

	left := mustExecute(t, db, "showColumns|employees|all")
	if len(left.Rows) != 3 {
		t.Errorf("got %d remaining rows, want 3", len(left.Rows))
	}
}

func TestExecuteCommand_Group(t *testing.T) {
	db := setupTestDB(t)
	seedEmployees(t, db)

	result := mustExecute(t, db, "formGroups|employees|city")
	if !reflect.DeepEqual(result.Columns, []string{"city", "count"}) {
		t.Errorf("Columns = %v", result.Columns)
	}

	want := [][]string{
		{"braga", "2"},
		{"lisbon", "1"},
		{"porto", "2"},
	}
	if !reflect.DeepEqual(result.Rows, want) {
		t.Errorf("groups = %v, want %v", result.Rows, want)
	}
	if result.Message != "3 group(s) formed on city" {
		t.Errorf("Message = %q", result.Message)
	}
}

func TestExecuteCommand_Filter(t *testing.T) {
	db := setupTestDB(t)
	seedEmployees(t, db)

	tests := []struct {
		name     string
		command  string
		wantRows int
	}{
		{"bigger than", "filter|employees|salary|600|biggerThan", 2},
		{"smaller than", "filter|employees|salary|600|smallerThan", 1},
		{"equal to", "filter|employees|city|porto|equalTo", 2},
		{"no matches", "filter|employees|salary|10000|biggerThan", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := mustExecute(t, db, tt.command)
			if len(result.Rows) != tt.wantRows {
				t.Errorf("got %d rows, want %d", len(result.Rows), tt.wantRows)
			}
			if !strings.Contains(result.Message, "matched") {
				t.Errorf("Message = %q, want a match count", result.Message)
			}
		})
	}

	t.Run("unknown condition", func(t *testing.T) {
		_, err := db.ExecuteCommand("filter|employees|salary|600|greaterThan")
		if err == nil {
			t.Error("expected error for unknown condition token")
		}
	})
}

func TestExecuteCommand_Join(t *testing.T) {
	db := setupTestDB(t)
	seedEmployees(t, db)

	mustExecute(t, db, "newTable|cities|city,country")
	mustExecute(t, db, "addToTable|cities|lisbon,portugal")
	mustExecute(t, db, "addToTable|cities|porto,portugal")
	mustExecute(t, db, "addToTable|cities|madrid,spain")

	result := mustExecute(t, db, "getCommon|employees|cities|city|city")

	wantColumns := []string{
		"employees_id", "employees_name", "employees_city", "employees_salary",
		"cities_city", "cities_country",
	}
	if !reflect.DeepEqual(result.Columns, wantColumns) {
		t.Errorf("Columns = %v", result.Columns)
	}

	// Three employees live in lisbon or porto; braga has no city row.
	if len(result.Rows) != 3 {
		t.Fatalf("got %d joined rows, want 3", len(result.Rows))
	}
	for _, row := range result.Rows {
		if row[2] != row[4] {
			t.Errorf("join emitted mismatched keys: %v", row)
		}
		if row[5] != "portugal" {
			t.Errorf("join row carried wrong country: %v", row)
		}
	}
}

func TestExecuteCommand_Aggregate(t *testing.T) {
	db := setupTestDB(t)
	seedEmployees(t, db)

	tests := []struct {
		name        string
		command     string
		wantColumn  string
		wantValue   string
		wantMessage string
	}{
		{"average", "aggregate|employees|salary|avg", "avg_salary", "640", "avg of salary = 640"},
		{"sum", "aggregate|employees|salary|sum", "sum_salary", "3200", "sum of salary = 3200"},
		{"minimum", "aggregate|employees|salary|min", "min_salary", "500", "min of salary = 500"},
		{"maximum", "aggregate|employees|salary|max", "max_salary", "800", "max of salary = 800"},
		{"count", "aggregate|employees|salary|count", "count_salary", "5", "count of salary = 5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := mustExecute(t, db, tt.command)
			if !reflect.DeepEqual(result.Columns, []string{tt.wantColumn}) {
				t.Errorf("Columns = %v, want [%s]", result.Columns, tt.wantColumn)
			}
			if len(result.Rows) != 1 || result.Rows[0][0] != tt.wantValue {
				t.Errorf("Rows = %v, want [[%s]]", result.Rows, tt.wantValue)
			}
			if result.Message != tt.wantMessage {
				t.Errorf("Message = %q, want %q", result.Message, tt.wantMessage)
			}
		})
	}

	t.Run("type mismatch", func(t *testing.T) {
		_, err := db.ExecuteCommand("aggregate|employees|name|sum")
		if !dberr.HasCode(err, dberr.CodeTypeMismatch) {
			t.Errorf("expected TYPE_MISMATCH, got %v", err)
		}
	})
}

func TestExecuteCommand_UnknownTable(t *testing.T) {
	db := setupTestDB(t)

	commands := []string{
		"showColumns|ghosts|all",
		"sort|ghosts|id",
		"set|ghosts|id|1|id|2",
		"remove|ghosts|id|1",
		"formGroups|ghosts|id",
		"filter|ghosts|id|1|equalTo",
		"getCommon|ghosts|ghosts|id|id",
		"aggregate|ghosts|id|sum",
	}

	for _, command := range commands {
		_, err := db.ExecuteCommand(command)
		if !dberr.HasCode(err, dberr.CodeNotFound) {
			t.Errorf("%q: expected NOT_FOUND, got %v", command, err)
		}
	}
}

func TestExecuteCommand_ParseErrors(t *testing.T) {
	db := setupTestDB(t)

	for _, command := range []string{
		"launchMissiles|now",
		"sort|employees",
		"   ",
	} {
		_, err := db.ExecuteCommand(command)
		if err == nil {
			t.Errorf("%q: expected parse error", command)
		}
	}

	info := db.GetStatistics()
	if info.ErrorCount != 3 {
		t.Errorf("ErrorCount = %d, want 3", info.ErrorCount)
	}
}

func TestGetStatistics(t *testing.T) {
	db := setupTestDB(t)
	seedEmployees(t, db)

	mustExecute(t, db, "showColumns|employees|all")
	if _, err := db.ExecuteCommand("sort|employees|height"); err == nil {
		t.Fatal("expected sort on unknown column to fail")
	}

	info := db.GetStatistics()
	if info.Name != "testdb" {
		t.Errorf("Name = %q", info.Name)
	}
	if info.ChunkCap != 3 {
		t.Errorf("ChunkCap = %d, want 3", info.ChunkCap)
	}
	if !reflect.DeepEqual(info.Tables, []string{"employees"}) {
		t.Errorf("Tables = %v", info.Tables)
	}
	if info.TableCount != 1 {
		t.Errorf("TableCount = %d, want 1", info.TableCount)
	}

	// newTable + 5 inserts + showColumns + the failed sort.
	if info.CommandsExecuted != 8 {
		t.Errorf("CommandsExecuted = %d, want 8", info.CommandsExecuted)
	}
	if info.RowsReturned != 5 {
		t.Errorf("RowsReturned = %d, want 5", info.RowsReturned)
	}
	if info.ErrorCount != 1 {
		t.Errorf("ErrorCount = %d, want 1", info.ErrorCount)
	}
}

// TestExecuteCommand_ChunkCapOne runs the full surface at the smallest
// possible cap, where every chunk holds a single row.
func TestExecuteCommand_ChunkCapOne(t *testing.T) {
	db := setupTestDBWithCap(t, 1)
	seedEmployees(t, db)

	sorted := mustExecute(t, db, "sort|employees|salary")
	var salaries []string
	for _, row := range sorted.Rows {
		salaries = append(salaries, row[3])
	}
	if !reflect.DeepEqual(salaries, []string{"500", "600", "600", "700", "800"}) {
		t.Errorf("sorted salaries = %v", salaries)
	}

	groups := mustExecute(t, db, "formGroups|employees|city")
	if len(groups.Rows) != 3 {
		t.Errorf("got %d groups, want 3", len(groups.Rows))
	}

	mustExecute(t, db, "newTable|cities|city,country")
	mustExecute(t, db, "addToTable|cities|porto,portugal")
	joined := mustExecute(t, db, "getCommon|employees|cities|city|city")
	if len(joined.Rows) != 2 {
		t.Errorf("got %d joined rows, want 2", len(joined.Rows))
	}
}

// TestExecuteCommand_EndToEnd pins exact row-level outputs for a small
// table, including the sorted order a later scan observes.
func TestExecuteCommand_EndToEnd(t *testing.T) {
	db := setupTestDBWithCap(t, 2)

	mustExecute(t, db, "newTable|employees|id,name,salary")
	mustExecute(t, db, "addToTable|employees|1,Alice,500")
	mustExecute(t, db, "addToTable|employees|2,Bob,700")
	mustExecute(t, db, "addToTable|employees|3,Cara,600")

	sorted := mustExecute(t, db, "sort|employees|salary")
	wantSorted := [][]string{
		{"1", "Alice", "500"},
		{"3", "Cara", "600"},
		{"2", "Bob", "700"},
	}
	if !reflect.DeepEqual(sorted.Rows, wantSorted) {
		t.Errorf("sorted rows = %v, want %v", sorted.Rows, wantSorted)
	}
	avg := mustExecute(t, db, "aggregate|employees|salary|avg")
	if len(avg.Rows) != 1 || avg.Rows[0][0] != "600" {
		t.Errorf("avg salary = %v, want [[600]]", avg.Rows)
	}

	filtered := mustExecute(t, db, "filter|employees|salary|550|biggerThan")
	wantFiltered := [][]string{
		{"3", "Cara", "600"},
		{"2", "Bob", "700"},
	}
	if !reflect.DeepEqual(filtered.Rows, wantFiltered) {
		t.Errorf("filtered rows = %v, want %v", filtered.Rows, wantFiltered)
	}
	if filtered.Message != "2 row(s) matched salary > 550" {
		t.Errorf("Message = %q", filtered.Message)
	}
}
