// Package logging provides the process-wide structured logger.
//
// The package wraps [log/slog] and exposes a single global logger instance
// that is initialized once and then retrieved via GetLogger. All subsystems
// should obtain a logger through this package rather than constructing their
// own slog.Logger values, so that log level and output destination are
// controlled from a single place.
//
// # Initialisation
//
// Call Init (or InitDefault for sensible defaults) once at program startup,
// before any goroutines that might call GetLogger are spawned:
//
//	err := logging.Init(logging.Config{
//	    Level:      logging.LevelInfo,
//	    OutputPath: "data/mydb.log",
//	    Format:     "text",
//	})
//
// An empty OutputPath writes to stdout. If GetLogger is called before Init,
// a default logger is created lazily (via sync.Once) so that packages that
// log during init are safe.
//
// # Context helpers
//
// Several helpers return child loggers pre-populated with structured fields,
// reducing repetition in hot paths:
//
//	log := logging.WithTable(name)     // adds table field
//	log := logging.WithCommand(kw)     // adds command field
//	log := logging.WithComponent(c)    // adds component field
//	log := logging.WithError(err)      // adds error field
package logging
