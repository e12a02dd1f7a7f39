package shell

import (
	"fmt"
	"strings"

	"chunkdb/pkg/database"
	"chunkdb/pkg/ui/base"
)

// maxCellWidth keeps one oversized value from blowing up every row.
const maxCellWidth = 40

// renderResult prints a QueryResult the way the full-screen UI would,
// minus the chrome: a column grid when there are rows, otherwise the
// message alone.
func renderResult(result database.QueryResult) string {
	if len(result.Rows) == 0 {
		return result.Message
	}

	grid := renderGrid(result.Columns, result.Rows)
	if result.Message != "" {
		return grid + "\n" + result.Message
	}
	return grid
}

func renderGrid(columns []string, rows [][]string) string {
	widths := make([]int, len(columns))
	for i, col := range columns {
		widths[i] = len(col)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i >= len(widths) {
				break
			}
			if w := len(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}
	for i := range widths {
		if widths[i] > maxCellWidth {
			widths[i] = maxCellWidth
		}
	}

	var b strings.Builder
	writeRow := func(cells []string) {
		for i, cell := range cells {
			if i >= len(widths) {
				break
			}
			if i > 0 {
				b.WriteString("  ")
			}
			b.WriteString(base.PadString(base.TruncateString(cell, widths[i]), widths[i]))
		}
		b.WriteString("\n")
	}

	writeRow(columns)
	separators := make([]string, len(columns))
	for i := range separators {
		separators[i] = strings.Repeat("-", widths[i])
	}
	writeRow(separators)
	for _, row := range rows {
		writeRow(row)
	}

	return strings.TrimRight(b.String(), "\n")
}

func renderStats(info database.DatabaseInfo) string {
	lines := []string{
		fmt.Sprintf("database:           %s", info.Name),
		fmt.Sprintf("data directory:     %s", info.DataDir),
		fmt.Sprintf("chunk cap:          %d", info.ChunkCap),
		fmt.Sprintf("tables:             %d", info.TableCount),
		fmt.Sprintf("commands executed:  %d", info.CommandsExecuted),
		fmt.Sprintf("rows returned:      %d", info.RowsReturned),
		fmt.Sprintf("errors:             %d", info.ErrorCount),
	}
	if len(info.Tables) > 0 {
		lines = append(lines, fmt.Sprintf("table names:        %s", strings.Join(info.Tables, ", ")))
	}
	return strings.Join(lines, "\n")
}
