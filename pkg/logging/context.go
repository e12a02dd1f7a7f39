package logging

import (
	"log/slog"
)

// WithTable creates a logger with table context.
// Use this for catalog and storage operations.
//
// Example:
//
//	log := logging.WithTable("users")
//	log.Info("table operation", "action", "create")
func WithTable(tableName string) *slog.Logger {
	return GetLogger().With("table", tableName)
}

// WithComponent creates a logger for a specific engine component.
// Use this for component-level logging (sort, join, mutation, shell).
//
// Example:
//
//	log := logging.WithComponent("sort")
//	log.Info("spilling sorted run", "rows", n)
func WithComponent(component string) *slog.Logger {
	return GetLogger().With("component", component)
}

// WithCommand creates a logger carrying the command keyword being executed.
//
// Example:
//
//	log := logging.WithCommand("addToTable")
//	log.Debug("executing", "table", name)
func WithCommand(keyword string) *slog.Logger {
	return GetLogger().With("command", keyword)
}

// WithError creates a logger with error context.
// Use this when logging errors to include the error in structured format.
//
// Example:
//
//	log := logging.WithError(err)
//	log.Error("operation failed", "operation", "rewrite")
func WithError(err error) *slog.Logger {
	return GetLogger().With("error", err.Error())
}
