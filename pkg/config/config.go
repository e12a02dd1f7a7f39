package config

import "fmt"

// DefaultChunkCap is the number of rows an operator may hold resident per
// open stream unless overridden at startup.
const DefaultChunkCap = 500

// Config carries the process-wide settings. ChunkCap is passed explicitly
// into every component constructor rather than read from a global, so the
// engine stays testable at any cap down to one row.
type Config struct {
	Name       string // Database name, becomes the data subdirectory
	DataDir    string // Root directory for table files
	LogPath    string // Empty logs to stdout
	ChunkCap   int    // Rows per chunk, the engine's memory budget unit
	PlainShell bool   // Use the line-oriented shell instead of the full-screen UI
	DemoMode   bool   // Load the sample dataset and run the scripted tour
	ImportFile string // Command file to execute on startup
}

// Validate rejects configurations the engine cannot run with.
func (c Config) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("database name cannot be empty")
	}
	if c.DataDir == "" {
		return fmt.Errorf("data directory cannot be empty")
	}
	if c.ChunkCap < 1 {
		return fmt.Errorf("chunk cap must be at least 1, got %d", c.ChunkCap)
	}
	return nil
}
