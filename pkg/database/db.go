package database

import (
	"fmt"
	"path/filepath"
	"sync"

	"chunkdb/pkg/catalog"
	"chunkdb/pkg/commands"
	"chunkdb/pkg/config"
	"chunkdb/pkg/logging"
)

// Database is the engine facade. It owns the catalog, carries the chunk
// cap into every operator it builds, and runs one command at a time.
type Database struct {
	catalog   *catalog.Catalog
	formatter *ResultFormatter
	name      string
	dataDir   string
	chunkCap  int

	mu    sync.Mutex
	stats DatabaseStats
}

// DatabaseStats tracks the counters shown by the shell status line. The
// shell reads them while a command runs, so they are guarded separately
// from the engine itself.
type DatabaseStats struct {
	CommandsExecuted int64
	RowsReturned     int64
	ErrorCount       int64
}

// QueryResult represents the result of a command execution.
type QueryResult struct {
	Success      bool
	Columns      []string
	Rows         [][]string
	RowsAffected int
	Message      string
	Error        error
}

// DatabaseInfo is a point-in-time snapshot of database metadata.
type DatabaseInfo struct {
	Name             string
	DataDir          string
	ChunkCap         int
	Tables           []string
	TableCount       int
	CommandsExecuted int64
	RowsReturned     int64
	ErrorCount       int64
}

// NewDatabase opens (or creates) the named database under cfg.DataDir.
func NewDatabase(cfg config.Config) (*Database, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	fullPath := filepath.Join(cfg.DataDir, cfg.Name)
	cat, err := catalog.NewCatalog(fullPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog: %w", err)
	}

	db := &Database{
		catalog:   cat,
		formatter: NewResultFormatter(),
		name:      cfg.Name,
		dataDir:   fullPath,
		chunkCap:  cfg.ChunkCap,
	}

	logging.WithComponent("database").Info("database opened",
		"name", cfg.Name,
		"dir", fullPath,
		"chunk_cap", cfg.ChunkCap,
		"tables", len(db.GetTables()))
	return db, nil
}

// ExecuteCommand parses, validates and runs a single pipe-delimited
// command, returning the formatted result.
func (db *Database) ExecuteCommand(command string) (QueryResult, error) {
	stmt, err := commands.Parse(command)
	if err != nil {
		db.recordError()
		return QueryResult{}, fmt.Errorf("parse error: %w", err)
	}

	if err := stmt.Validate(); err != nil {
		db.recordError()
		return QueryResult{}, err
	}

	logging.WithCommand(stmt.GetType().String()).Debug("executing command")

	result, err := db.dispatch(stmt)
	if err != nil {
		db.recordError()
		logging.WithError(err).Warn("command failed", "command", stmt.GetType().String())
		return QueryResult{}, err
	}

	db.recordSuccess(result)
	return result, nil
}

// Name returns the database name.
func (db *Database) Name() string {
	return db.name
}

// ChunkCap returns the per-operator row budget commands run with.
func (db *Database) ChunkCap() int {
	return db.chunkCap
}

// GetTables returns the names of all user tables.
func (db *Database) GetTables() []string {
	names, _ := db.catalog.ListTables()
	return names
}

// GetStatistics returns a snapshot of database metadata and counters.
func (db *Database) GetStatistics() DatabaseInfo {
	tables := db.GetTables()

	db.mu.Lock()
	stats := db.stats
	db.mu.Unlock()

	return DatabaseInfo{
		Name:             db.name,
		DataDir:          db.dataDir,
		ChunkCap:         db.chunkCap,
		Tables:           tables,
		TableCount:       len(tables),
		CommandsExecuted: stats.CommandsExecuted,
		RowsReturned:     stats.RowsReturned,
		ErrorCount:       stats.ErrorCount,
	}
}

// Close releases the database. Table files are opened per command, so
// there is nothing to tear down beyond logging the final counters.
func (db *Database) Close() error {
	info := db.GetStatistics()
	logging.WithComponent("database").Info("database closed",
		"name", db.name,
		"commands", info.CommandsExecuted,
		"errors", info.ErrorCount)
	return nil
}

func (db *Database) recordSuccess(result QueryResult) {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.stats.CommandsExecuted++
	db.stats.RowsReturned += int64(len(result.Rows))
}

func (db *Database) recordError() {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.stats.CommandsExecuted++
	db.stats.ErrorCount++
}
