package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Rana718/salesgen/internal/schema"
	"github.com/Rana718/salesgen/internal/types"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

type Options struct {
	DataDir  string
	SQLDir   string
	Database string
}

// Source supplies the rows of a table for a schema definition
type Source interface {
	Table(def types.SchemaTable) (types.TableData, error)
}

// Reporter is told about every file once it is fully written
type Reporter interface {
	TableWritten(path string, rows int)
	ScriptWritten(path string)
}

// PerformExport renders every table before touching the filesystem, then
// recreates both output directories and writes the CSV files followed by
// the SQL scripts.
func PerformExport(src Source, tables []types.SchemaTable, opts Options, reporter Reporter) error {
	if err := ValidateDirs(opts.DataDir, opts.SQLDir); err != nil {
		return err
	}

	data, err := Render(src, tables)
	if err != nil {
		return err
	}

	if err := PrepareDir(opts.DataDir); err != nil {
		return err
	}
	if err := PrepareDir(opts.SQLDir); err != nil {
		return err
	}

	for _, table := range data {
		path, err := WriteCSV(opts.DataDir, table)
		if err != nil {
			return err
		}
		if reporter != nil {
			reporter.TableWritten(path, table.Len())
		}
	}

	paths, err := WriteScripts(opts.SQLDir, opts.Database, opts.DataDir, tables)
	if err != nil {
		return err
	}
	if reporter != nil {
		for _, path := range paths {
			reporter.ScriptWritten(path)
		}
	}

	return nil
}

// Render builds the rows of every table in schema order
func Render(src Source, tables []types.SchemaTable) ([]types.TableData, error) {
	data := make([]types.TableData, 0, len(tables))
	for _, def := range tables {
		table, err := src.Table(def)
		if err != nil {
			return nil, fmt.Errorf("failed to render table %s: %w", def.Name, err)
		}
		data = append(data, table)
	}
	return data, nil
}

// ValidateDirs rejects output directories that are equal or nested, since
// recreating one would wipe the other.
func ValidateDirs(dataDir, sqlDir string) error {
	data, err := filepath.Abs(dataDir)
	if err != nil {
		return fmt.Errorf("failed to resolve %s: %w", dataDir, err)
	}
	sql, err := filepath.Abs(sqlDir)
	if err != nil {
		return fmt.Errorf("failed to resolve %s: %w", sqlDir, err)
	}

	if data == sql {
		return fmt.Errorf("data and SQL directories must differ, both are %s", data)
	}
	if within(data, sql) || within(sql, data) {
		return fmt.Errorf("data directory %s and SQL directory %s must not contain each other", dataDir, sqlDir)
	}
	return nil
}

// within reports whether path lies under dir. Both must be absolute.
func within(path, dir string) bool {
	rel, err := filepath.Rel(dir, path)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

// PrepareDir removes dir with everything in it and creates it empty
func PrepareDir(dir string) error {
	if dir == "" || dir == "." || dir == string(filepath.Separator) {
		return fmt.Errorf("refusing to recreate output directory %q", dir)
	}
	if err := os.RemoveAll(dir); err != nil {
		return fmt.Errorf("failed to remove directory %s: %w", dir, err)
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}
	return nil
}

// WriteCSV writes <dir>/<table>.csv as UTF-8 with a byte order mark
func WriteCSV(dir string, table types.TableData) (path string, err error) {
	path = filepath.Join(dir, table.Name+".csv")

	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create CSV file for %s: %w", table.Name, err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close CSV file for %s: %w", table.Name, cerr)
		}
	}()

	encoded := transform.NewWriter(file, unicode.UTF8BOM.NewEncoder())
	writer := csv.NewWriter(encoded)

	if err := writer.Write(table.Header); err != nil {
		return "", fmt.Errorf("failed to write header for %s: %w", table.Name, err)
	}
	if err := writer.WriteAll(table.Records); err != nil {
		return "", fmt.Errorf("failed to write rows for %s: %w", table.Name, err)
	}
	if err := encoded.Close(); err != nil {
		return "", fmt.Errorf("failed to flush CSV file for %s: %w", table.Name, err)
	}

	return path, nil
}

// WriteScripts writes the combined script and one script per table. The
// combined script path comes first in the result.
func WriteScripts(dir, database, dataDir string, tables []types.SchemaTable) ([]string, error) {
	paths := make([]string, 0, len(tables)+1)

	combined := filepath.Join(dir, schema.CombinedScriptName)
	if err := os.WriteFile(combined, []byte(schema.CombinedScript(database, dataDir, tables)), 0644); err != nil {
		return nil, fmt.Errorf("failed to write %s: %w", combined, err)
	}
	paths = append(paths, combined)

	for _, table := range tables {
		path := filepath.Join(dir, schema.TableScriptName(table))
		if err := os.WriteFile(path, []byte(schema.TableScript(database, table)), 0644); err != nil {
			return nil, fmt.Errorf("failed to write %s: %w", path, err)
		}
		paths = append(paths, path)
	}

	return paths, nil
}
