package shell

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"chunkdb/pkg/database"
	"chunkdb/pkg/logging"

	"github.com/peterh/liner"
)

const prompt = "chunkdb> "

// commandKeywords seed tab completion at the start of a line.
var commandKeywords = []string{
	"newTable", "addToTable", "showColumns", "sort", "set", "remove",
	"formGroups", "filter", "getCommon", "aggregate",
	"help", "tables", "stats", "bye",
}

// Shell is the line-oriented alternative to the full-screen UI. It reads
// one pipe-delimited command per line and prints plain-text results.
type Shell struct {
	db          *database.Database
	out         io.Writer
	historyPath string
}

func NewShell(db *database.Database, out io.Writer) *Shell {
	return &Shell{
		db:          db,
		out:         out,
		historyPath: defaultHistoryPath(),
	}
}

func defaultHistoryPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), ".chunkdb_history")
	}
	return filepath.Join(home, ".chunkdb_history")
}

// Run drives the prompt loop until bye, EOF, or Ctrl-C at an empty line.
func (s *Shell) Run() error {
	line := liner.NewLiner()
	defer line.Close()

	line.SetCtrlCAborts(true)
	line.SetCompleter(func(l string) (c []string) {
		for _, kw := range commandKeywords {
			if strings.HasPrefix(kw, l) {
				c = append(c, kw)
			}
		}
		return
	})

	s.loadHistory(line)
	defer s.saveHistory(line)

	fmt.Fprintf(s.out, "Connected to %s. Type help for commands, bye to leave.\n\n", s.db.Name())

	for {
		input, err := line.Prompt(prompt)
		if err == liner.ErrPromptAborted {
			fmt.Fprintln(s.out, "(interrupted)")
			continue
		}
		if err == io.EOF {
			fmt.Fprintln(s.out)
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read input: %w", err)
		}

		trimmed := strings.TrimSpace(input)
		if trimmed == "" {
			continue
		}
		line.AppendHistory(input)

		output, quit := s.handleLine(trimmed)
		if output != "" {
			fmt.Fprintln(s.out, output)
		}
		if quit {
			return nil
		}
	}
}

// handleLine executes one line and returns what to print. Meta commands
// are resolved here; everything else goes to the engine.
func (s *Shell) handleLine(input string) (string, bool) {
	switch input {
	case "bye", "exit", "quit":
		return "bye!", true
	case "help":
		return helpText, false
	case "tables":
		return s.renderTables(), false
	case "stats":
		return renderStats(s.db.GetStatistics()), false
	}

	result, err := s.db.ExecuteCommand(input)
	if err != nil {
		return fmt.Sprintf("error: %v", err), false
	}
	return renderResult(result), false
}

func (s *Shell) renderTables() string {
	names := s.db.GetTables()
	if len(names) == 0 {
		return "no tables yet"
	}
	return strings.Join(names, "\n")
}

func (s *Shell) loadHistory(line *liner.State) {
	f, err := os.Open(s.historyPath)
	if err != nil {
		return
	}
	defer f.Close()
	if _, err := line.ReadHistory(f); err != nil {
		logging.WithComponent("shell").Warn("failed to read history", "path", s.historyPath, "error", err)
	}
}

func (s *Shell) saveHistory(line *liner.State) {
	f, err := os.Create(s.historyPath)
	if err != nil {
		logging.WithComponent("shell").Warn("failed to save history", "path", s.historyPath, "error", err)
		return
	}
	defer f.Close()
	if _, err := line.WriteHistory(f); err != nil {
		logging.WithComponent("shell").Warn("failed to write history", "path", s.historyPath, "error", err)
	}
}

const helpText = `commands take pipe-delimited fields:

  newTable|<table>|<col1,col2,...>          create a table (first column is the key)
  addToTable|<table>|<val1,val2,...>        append a row
  showColumns|<table>|<col1,col2,...>       print chosen columns; "all" prints every column
  sort|<table>|<column>                     sort the table and keep the new order
  set|<table>|<match col>|<match val>|<target col>|<new val>
                                            update matching rows
  remove|<table>|<column>|<value>           delete matching rows
  formGroups|<table>|<column>               count rows per distinct value
  filter|<table>|<column>|<value>|<condition>
                                            conditions: equalTo, smallerThan, biggerThan
  getCommon|<table1>|<table2>|<col1>|<col2> join two tables on equal values
  aggregate|<table>|<column>|<op>           ops: min, max, sum, avg, count

shell commands: help, tables, stats, bye`
