package catalog

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"chunkdb/pkg/dberr"
	"chunkdb/pkg/logging"
	"chunkdb/pkg/row"
	"chunkdb/pkg/storage/tablefile"
)

const maxTableNameLength = 64

// Catalog tracks the tables of a single database directory.
// It maintains a name-to-file mapping so repeated lookups do not
// reopen the schema sidecar, and it owns table creation and removal.
//
// Design:
//   - One flat directory, one data file plus one schema file per table
//   - Lookups are lazy: a table created by an earlier process is picked
//     up from disk on first access
//   - Not safe for concurrent use; the engine is single-threaded
type Catalog struct {
	dir    string
	tables map[string]*tablefile.TableFile
}

// NewCatalog opens a catalog over the given directory, creating the
// directory if it does not exist yet.
func NewCatalog(dir string) (*Catalog, error) {
	if dir == "" {
		return nil, fmt.Errorf("catalog directory cannot be empty")
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create catalog directory %s: %w", dir, err)
	}
	return &Catalog{
		dir:    dir,
		tables: make(map[string]*tablefile.TableFile),
	}, nil
}

// Dir returns the directory backing this catalog.
func (c *Catalog) Dir() string {
	return c.dir
}

// CreateTable creates a new table with the given schema and registers it.
// The table name is taken from the schema.
func (c *Catalog) CreateTable(schema *row.Schema) (*tablefile.TableFile, error) {
	if schema == nil {
		return nil, fmt.Errorf("schema cannot be nil")
	}
	if err := validateTableName(schema.Table); err != nil {
		return nil, err
	}
	if c.HasTable(schema.Table) {
		return nil, fmt.Errorf("table %s already exists", schema.Table)
	}

	tf, err := tablefile.Create(c.dir, schema.Table, schema.Columns)
	if err != nil {
		return nil, err
	}
	c.tables[schema.Table] = tf
	logging.WithTable(schema.Table).Info("table created", "columns", len(schema.Columns))
	return tf, nil
}

// GetTable resolves a table name to its file, reading the schema from
// disk on the first access. Unknown names yield a NOT_FOUND error.
func (c *Catalog) GetTable(name string) (*tablefile.TableFile, error) {
	if tf, ok := c.tables[name]; ok {
		return tf, nil
	}
	tf, err := tablefile.Open(c.dir, name)
	if err != nil {
		return nil, err
	}
	c.tables[name] = tf
	return tf, nil
}

// GetSchema is a convenience wrapper resolving a table's schema.
func (c *Catalog) GetSchema(name string) (*row.Schema, error) {
	tf, err := c.GetTable(name)
	if err != nil {
		return nil, err
	}
	return tf.Schema(), nil
}

// HasTable reports whether the named table exists, either cached or on disk.
func (c *Catalog) HasTable(name string) bool {
	if _, ok := c.tables[name]; ok {
		return true
	}
	_, err := os.Stat(tablefile.SchemaPath(c.dir, name))
	return err == nil
}

// ListTables returns the names of all tables in the catalog directory,
// sorted alphabetically.
func (c *Catalog) ListTables() ([]string, error) {
	pattern := filepath.Join(c.dir, "*"+tablefile.SchemaExt)
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return nil, fmt.Errorf("failed to list tables in %s: %w", c.dir, err)
	}

	names := make([]string, 0, len(matches))
	for _, m := range matches {
		base := filepath.Base(m)
		names = append(names, strings.TrimSuffix(base, tablefile.SchemaExt))
	}
	sort.Strings(names)
	return names, nil
}

// DropTable removes a table's files and forgets it. Unknown names yield
// a NOT_FOUND error.
func (c *Catalog) DropTable(name string) error {
	if !c.HasTable(name) {
		return dberr.NewNotFound(name)
	}
	tf, err := c.GetTable(name)
	if err != nil {
		return err
	}
	if err := tf.Remove(); err != nil {
		return err
	}
	delete(c.tables, name)
	logging.WithTable(name).Info("table dropped")
	return nil
}

func validateTableName(name string) error {
	if name == "" {
		return fmt.Errorf("table name cannot be empty")
	}
	if len(name) > maxTableNameLength {
		return fmt.Errorf("table name %q exceeds %d characters", name, maxTableNameLength)
	}
	for _, r := range name {
		if !isTableNameRune(r) {
			return fmt.Errorf("table name %q contains invalid character %q", name, r)
		}
	}
	return nil
}

func isTableNameRune(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z':
		return true
	case r >= 'A' && r <= 'Z':
		return true
	case r >= '0' && r <= '9':
		return true
	case r == '_':
		return true
	}
	return false
}
