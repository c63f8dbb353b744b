package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type DB struct {
	*pgxpool.Pool
}

func NewPostgreSQLDB(dsn string) (*DB, error) {
	config, err := pgxpool.ParseConfig(dsn)

	if err != nil {
		return nil, err
	}

	// Connection pool settings
	config.MaxConns = 25
	config.MinConns = 5

	pool, err := pgxpool.NewWithConfig(context.Background(), config)
	if err != nil {
		return nil, err
	}

	if err := pool.Ping(context.Background()); err != nil {
		return nil, err
	}

	return &DB{Pool: pool}, nil
}

func (db *DB) BeginTx(ctx context.Context) (pgx.Tx, error) {
	return db.Pool.Begin(ctx)
}

// postgresSchema mirrors the MongoDB index layout: the same unique keys and
// secondary indexes, expressed as table constraints.
var postgresSchema = []string{
	`CREATE TABLE IF NOT EXISTS ` + EmployeesCollection + ` (
		id          UUID PRIMARY KEY,
		employee_id TEXT NOT NULL,
		full_name   TEXT NOT NULL,
		email       TEXT NOT NULL,
		department  TEXT NOT NULL,
		created_at  TIMESTAMPTZ NOT NULL,
		CONSTRAINT ` + EmployeeIDUniqueIndex + ` UNIQUE (employee_id),
		CONSTRAINT ` + EmployeeEmailUniqueIndex + ` UNIQUE (email)
	)`,
	`CREATE INDEX IF NOT EXISTS employees_created_at_idx ON ` + EmployeesCollection + ` (created_at)`,
	`CREATE TABLE IF NOT EXISTS ` + AttendanceCollection + ` (
		id          UUID PRIMARY KEY,
		employee_id TEXT NOT NULL,
		date        DATE NOT NULL,
		status      TEXT NOT NULL CHECK (status IN ('Present', 'Absent')),
		created_at  TIMESTAMPTZ NOT NULL,
		CONSTRAINT ` + AttendanceEmployeeDateUniqueIndex + ` UNIQUE (employee_id, date)
	)`,
	`CREATE INDEX IF NOT EXISTS attendance_employee_id_idx ON ` + AttendanceCollection + ` (employee_id)`,
	`CREATE INDEX IF NOT EXISTS attendance_date_idx ON ` + AttendanceCollection + ` (date)`,
	`CREATE INDEX IF NOT EXISTS attendance_created_at_idx ON ` + AttendanceCollection + ` (created_at)`,
}

// EnsureSchema creates the employees and attendance tables and their indexes if missing.
func (db *DB) EnsureSchema(ctx context.Context) error {
	for _, stmt := range postgresSchema {
		if _, err := db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply schema: %w", err)
		}
	}
	return nil
}

type Querier interface {
	Exec(ctx context.Context, sql string, arguments ...interface{}) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, arguments ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
}
