package storage

import (
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"recruit-scraper/export"
)

func mockWriter(t *testing.T) (*PostgresWriter, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return &PostgresWriter{db: db, log: zap.NewNop().Sugar()}, mock
}

func TestPostgresWriterSaveTable(t *testing.T) {
	writer, mock := mockWriter(t)

	table := export.NewTable()
	table.AddColumn("name_id")
	table.AddColumn("weight")
	table.Append(export.Row{"name_id": "Travis-Hunter-46084728", "weight": 165})
	table.Append(export.Row{"name_id": "Some-Recruit-123"})

	mock.ExpectExec(`CREATE TABLE IF NOT EXISTS "players" (id SERIAL PRIMARY KEY, "name_id" TEXT, "weight" TEXT)`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectBegin()
	insert := `INSERT INTO "players" ("name_id", "weight") VALUES ($1, $2)`
	mock.ExpectPrepare(insert)
	mock.ExpectExec(insert).WithArgs("Travis-Hunter-46084728", "165").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(insert).WithArgs("Some-Recruit-123", nil).WillReturnResult(sqlmock.NewResult(2, 1))
	mock.ExpectCommit()

	require.NoError(t, writer.SaveTable("players", table))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresWriterInsertFailureRollsBack(t *testing.T) {
	writer, mock := mockWriter(t)

	table := export.NewTable()
	table.AddColumn("name_id")
	table.Append(export.Row{"name_id": "a"})
	table.Append(export.Row{"name_id": "b"})

	mock.ExpectExec(`CREATE TABLE IF NOT EXISTS "players" (id SERIAL PRIMARY KEY, "name_id" TEXT)`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectBegin()
	insert := `INSERT INTO "players" ("name_id") VALUES ($1)`
	mock.ExpectPrepare(insert)
	insertErr := errors.New("value too long")
	mock.ExpectExec(insert).WithArgs("a").WillReturnError(insertErr)
	mock.ExpectRollback()

	err := writer.SaveTable("players", table)
	require.ErrorIs(t, err, insertErr)
	// The second row is never attempted once the transaction has failed.
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresWriterEmptyTable(t *testing.T) {
	writer, mock := mockWriter(t)

	table := export.NewTable()
	table.AddColumn("name_id")

	require.NoError(t, writer.SaveTable("players", table))
	assert.NoError(t, mock.ExpectationsWereMet())
}
