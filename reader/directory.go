package reader

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/panjf2000/ants/v2"

	"github.com/mertcandav/MochaDB-sub001/table"
)

// Extension is the file suffix of table files
const Extension = ".parquet"

// maxTables limits how many files one Directory exposes
const maxTables = 1000

// Directory is a column source that exposes every parquet file of a
// directory as a table named after the file without its extension.
//
// Files are read on every call, so a Directory always reflects the current
// directory contents.
type Directory struct {
	dir     string
	workers int
	logger  *slog.Logger
}

// DirectoryOption configures a Directory
type DirectoryOption func(*Directory)

// WithWorkers bounds how many files Tables loads concurrently
func WithWorkers(n int) DirectoryOption {
	return func(d *Directory) {
		if n > 0 {
			d.workers = n
		}
	}
}

// WithLogger sets the logger used to report files that cannot be loaded
func WithLogger(logger *slog.Logger) DirectoryOption {
	return func(d *Directory) {
		d.logger = logger
	}
}

// NewDirectory creates a source over dir
func NewDirectory(dir string, opts ...DirectoryOption) *Directory {
	d := &Directory{dir: dir, workers: 4, logger: slog.Default()}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Dir returns the directory the source reads from
func (d *Directory) Dir() string {
	return d.dir
}

// TableNames lists the table names in sorted order
func (d *Directory) TableNames() ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(d.dir, "*"+Extension))
	if err != nil {
		return nil, fmt.Errorf("invalid directory pattern: %w", err)
	}
	if len(matches) > maxTables {
		return nil, fmt.Errorf("directory holds too many tables (%d), maximum is %d", len(matches), maxTables)
	}

	names := make([]string, 0, len(matches))
	for _, m := range matches {
		names = append(names, strings.TrimSuffix(filepath.Base(m), Extension))
	}
	sort.Strings(names)
	return names, nil
}

// path returns the file of a table. Names that would leave the directory
// are rejected.
func (d *Directory) path(name string) (string, error) {
	if err := ValidateTableName(name); err != nil {
		return "", err
	}
	p := filepath.Join(d.dir, name+Extension)
	if _, err := os.Stat(p); err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("%w: %s", table.ErrUnknownTable, name)
		}
		return "", fmt.Errorf("failed to stat %s: %w", p, err)
	}
	return p, nil
}

// Columns reads the columns of one table
func (d *Directory) Columns(name string) ([]table.Column, error) {
	p, err := d.path(name)
	if err != nil {
		return nil, err
	}
	return ReadColumns(p)
}

// Schema returns the schema of one table
func (d *Directory) Schema(name string) ([]SchemaInfo, error) {
	p, err := d.path(name)
	if err != nil {
		return nil, err
	}
	return ExtractSchemaInfo(p)
}

// Tables loads every table of the directory on a bounded worker pool. The
// result is ordered by table name.
func (d *Directory) Tables() ([]table.Table, error) {
	names, err := d.TableNames()
	if err != nil {
		return nil, err
	}
	if len(names) == 0 {
		return nil, nil
	}

	pool, err := ants.NewPool(d.workers, ants.WithPanicHandler(func(v any) {
		d.logger.Error("table loader panic", slog.Any("panic", v))
	}))
	if err != nil {
		return nil, fmt.Errorf("failed to create loader pool: %w", err)
	}
	defer pool.Release()

	tables := make([]table.Table, len(names))
	errs := make([]error, len(names))
	var wg sync.WaitGroup

	for i, name := range names {
		i, name := i, name
		wg.Add(1)
		submitErr := pool.Submit(func() {
			defer wg.Done()
			cols, err := ReadColumns(filepath.Join(d.dir, name+Extension))
			if err != nil {
				errs[i] = err
				return
			}
			tables[i] = table.Table{Name: name, Columns: cols}
		})
		if submitErr != nil {
			wg.Done()
			errs[i] = fmt.Errorf("failed to schedule %s: %w", name, submitErr)
		}
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			d.logger.Warn("failed to load table", slog.String("table", names[i]), slog.Any("error", err))
			return nil, fmt.Errorf("table %s: %w", names[i], err)
		}
	}
	return tables, nil
}

// ValidateTableName rejects empty names and names that are paths
func ValidateTableName(name string) error {
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("%w: invalid table name %q", table.ErrUnknownTable, name)
	}
	return nil
}
