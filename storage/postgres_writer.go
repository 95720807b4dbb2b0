package storage

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/lib/pq"
	"go.uber.org/zap"

	"recruit-scraper/export"
)

// PostgresWriter handles storing flattened batches in PostgreSQL
type PostgresWriter struct {
	db  *sql.DB
	log *zap.SugaredLogger
}

// NewPostgresWriter creates a new PostgresWriter and pings the DB
func NewPostgresWriter(connStr string, log *zap.SugaredLogger) (*PostgresWriter, error) {
	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open DB: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(time.Minute * 5)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping DB: %w", err)
	}

	log.Info("connected to PostgreSQL")
	return &PostgresWriter{db: db, log: log}, nil
}

// SaveTable creates the named table from the batch schema if needed and
// inserts every row in one transaction. Cell values are stored as text;
// batch schemas vary per scrape so the columns stay untyped.
func (w *PostgresWriter) SaveTable(name string, table *export.Table) error {
	if len(table.Rows) == 0 {
		return nil
	}
	if err := w.createTable(name, table.Columns); err != nil {
		return err
	}

	tx, err := w.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	columns := make([]string, 0, len(table.Columns))
	placeholders := make([]string, 0, len(table.Columns))
	for i, column := range table.Columns {
		columns = append(columns, pq.QuoteIdentifier(columnName(column)))
		placeholders = append(placeholders, fmt.Sprintf("$%d", i+1))
	}
	stmt, err := tx.Prepare(fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s)",
		pq.QuoteIdentifier(name), strings.Join(columns, ", "), strings.Join(placeholders, ", "),
	))
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	for _, row := range table.Rows {
		args := make([]any, 0, len(table.Columns))
		for _, column := range table.Columns {
			if text, ok := table.CellString(row, column); ok {
				args = append(args, text)
			} else {
				args = append(args, nil)
			}
		}
		// A failed insert poisons the transaction; abort and roll back
		// instead of driving more statements into it.
		if _, err = stmt.Exec(args...); err != nil {
			err = fmt.Errorf("failed to insert row into %s: %w", name, err)
			return err
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	w.log.Infof("inserted %d rows into %s", len(table.Rows), name)
	return nil
}

// createTable creates the batch table if it doesn't exist
func (w *PostgresWriter) createTable(name string, columns []string) error {
	defs := make([]string, 0, len(columns)+1)
	defs = append(defs, "id SERIAL PRIMARY KEY")
	for _, column := range columns {
		defs = append(defs, pq.QuoteIdentifier(columnName(column))+" TEXT")
	}
	query := fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (%s)", pq.QuoteIdentifier(name), strings.Join(defs, ", "))
	if _, err := w.db.Exec(query); err != nil {
		return fmt.Errorf("failed to create table %s: %w", name, err)
	}
	return nil
}

// Close closes the database connection
func (w *PostgresWriter) Close() error {
	if w.db != nil {
		return w.db.Close()
	}
	return nil
}

// columnName lowers a batch column to a safe identifier
func columnName(column string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(column) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '_':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}
