package database

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/Rana718/salesgen/internal/schema"
	"github.com/Rana718/salesgen/internal/types"
	_ "github.com/mattn/go-sqlite3"
)

// insertBatch caps rows per INSERT statement, well under SQLite's default
// limit of 999 bound parameters for the widest table.
const insertBatch = 100

type SQLiteAdapter struct {
	db *sql.DB
	qb squirrel.StatementBuilderType
}

func NewSQLiteAdapter() *SQLiteAdapter {
	return &SQLiteAdapter{
		qb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question),
	}
}

func (s *SQLiteAdapter) Connect(ctx context.Context, url string) error {
	dbPath := strings.TrimPrefix(url, "sqlite://")

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return fmt.Errorf("failed to open SQLite connection: %w", err)
	}
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return fmt.Errorf("failed to open SQLite database %s: %w", dbPath, err)
	}

	s.db = db
	return nil
}

func (s *SQLiteAdapter) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// CreateTables runs the same CREATE TABLE statements that go into the SQL scripts
func (s *SQLiteAdapter) CreateTables(ctx context.Context, tables []types.SchemaTable) error {
	for _, table := range tables {
		if _, err := s.db.ExecContext(ctx, schema.CreateTableSQL(table)); err != nil {
			return fmt.Errorf("failed to create table %s: %w", table.Name, err)
		}
	}
	return nil
}

// InsertRows loads all records of a table inside one transaction
func (s *SQLiteAdapter) InsertRows(ctx context.Context, table types.TableData) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction for %s: %w", table.Name, err)
	}
	defer tx.Rollback()

	for start := 0; start < len(table.Records); start += insertBatch {
		end := min(start+insertBatch, len(table.Records))

		insert := s.qb.Insert(table.Name).Columns(table.Header...)
		for _, record := range table.Records[start:end] {
			values := make([]interface{}, len(record))
			for i, v := range record {
				values[i] = v
			}
			insert = insert.Values(values...)
		}

		query, args, err := insert.ToSql()
		if err != nil {
			return fmt.Errorf("failed to build insert for %s: %w", table.Name, err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("failed to insert into %s: %w", table.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit %s: %w", table.Name, err)
	}
	return nil
}

// CountRows returns the number of rows in a table
func (s *SQLiteAdapter) CountRows(ctx context.Context, table string) (int, error) {
	query, args, err := s.qb.Select("COUNT(*)").From(table).ToSql()
	if err != nil {
		return 0, err
	}

	var n int
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count rows in %s: %w", table, err)
	}
	return n, nil
}

// CountOrphans returns the number of rows whose foreign key value has no
// matching row in the referenced table.
func (s *SQLiteAdapter) CountOrphans(ctx context.Context, fk types.ForeignKey) (int, error) {
	query, args, err := s.qb.
		Select("COUNT(*)").
		From(fk.Table + " AS c").
		LeftJoin(fmt.Sprintf("%s AS p ON p.%s = c.%s", fk.RefTable, fk.RefColumn, fk.Column)).
		Where(squirrel.Eq{"p." + fk.RefColumn: nil}).
		ToSql()
	if err != nil {
		return 0, err
	}

	var n int
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to check %s.%s -> %s.%s: %w", fk.Table, fk.Column, fk.RefTable, fk.RefColumn, err)
	}
	return n, nil
}

// CheckRowCounts verifies that every table holds exactly the rendered rows
func (s *SQLiteAdapter) CheckRowCounts(ctx context.Context, data []types.TableData) error {
	for _, table := range data {
		n, err := s.CountRows(ctx, table.Name)
		if err != nil {
			return err
		}
		if n != table.Len() {
			return fmt.Errorf("table %s holds %d rows, expected %d", table.Name, n, table.Len())
		}
	}
	return nil
}

// CheckForeignKeys verifies every declared reference and reports the first
// one with dangling rows.
func (s *SQLiteAdapter) CheckForeignKeys(ctx context.Context, tables []types.SchemaTable) error {
	for _, fk := range schema.ForeignKeys(tables) {
		n, err := s.CountOrphans(ctx, fk)
		if err != nil {
			return err
		}
		if n > 0 {
			return fmt.Errorf("%d rows of %s.%s reference missing %s.%s", n, fk.Table, fk.Column, fk.RefTable, fk.RefColumn)
		}
	}
	return nil
}

// WriteSnapshot replaces the database file at path with a fresh copy of the
// dataset and checks its row counts and references.
func WriteSnapshot(ctx context.Context, path string, tables []types.SchemaTable, data []types.TableData) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove old snapshot %s: %w", path, err)
	}

	adapter := NewSQLiteAdapter()
	if err := adapter.Connect(ctx, path); err != nil {
		return err
	}
	defer adapter.Close()

	if err := adapter.CreateTables(ctx, tables); err != nil {
		return err
	}
	for _, table := range data {
		if err := adapter.InsertRows(ctx, table); err != nil {
			return err
		}
	}

	if err := adapter.CheckRowCounts(ctx, data); err != nil {
		return err
	}
	return adapter.CheckForeignKeys(ctx, tables)
}
