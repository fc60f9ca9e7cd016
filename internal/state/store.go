package state

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
	_ "modernc.org/sqlite"
)

// ErrNotFound is returned when a queried package does not exist.
var ErrNotFound = errors.New("package not found")

// Package represents an installed package in the inventory.
type Package struct {
	Name        string
	Version     string // best-effort, may be empty
	InstalledAt time.Time
	UpdatedAt   time.Time
}

// Operation represents a pip invocation recorded in the journal.
type Operation struct {
	ID        int64
	Package   string
	Action    string // "install", "uninstall", "wheel", "fetch"
	ExitCode  int
	Timestamp time.Time
	Detail    map[string]string
}

// Store wraps a SQL database holding the package inventory and the
// operation journal.
type Store struct {
	db *sql.DB
}

// Open creates or opens the state database. Driver is "sqlite" (dsn is a
// file path, ":memory:" for tests) or "mysql" (a go-sql-driver DSN).
func Open(driver, dsn string) (*Store, error) {
	var schema []string
	switch driver {
	case "sqlite":
		schema = schemaSQLite
	case "mysql":
		schema = schemaMySQL
	default:
		return nil, fmt.Errorf("unsupported state driver %q", driver)
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("opening state db %s: %w", dsn, err)
	}

	if driver == "sqlite" {
		// WAL mode for better concurrent reads
		if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
			db.Close()
			return nil, fmt.Errorf("setting WAL mode: %w", err)
		}
		// SQLite handles one writer at a time
		db.SetMaxOpenConns(1)
	}

	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("creating schema: %w", err)
		}
	}

	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// UpsertPackage inserts or refreshes an inventory row.
func (s *Store) UpsertPackage(ctx context.Context, pkg *Package) error {
	existing, err := s.GetPackage(ctx, pkg.Name)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return err
	}

	if existing == nil {
		_, err = s.db.ExecContext(ctx,
			`INSERT INTO packages (name, version, installed_at, updated_at) VALUES (?, ?, ?, ?)`,
			pkg.Name, nullString(pkg.Version), pkg.InstalledAt.Unix(), pkg.UpdatedAt.Unix(),
		)
		if err != nil {
			return fmt.Errorf("inserting package %s: %w", pkg.Name, err)
		}
		return nil
	}

	_, err = s.db.ExecContext(ctx,
		`UPDATE packages SET version=?, updated_at=? WHERE name=?`,
		nullString(pkg.Version), pkg.UpdatedAt.Unix(), pkg.Name,
	)
	if err != nil {
		return fmt.Errorf("updating package %s: %w", pkg.Name, err)
	}
	return nil
}

// GetPackage retrieves an inventory row by name.
func (s *Store) GetPackage(ctx context.Context, name string) (*Package, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT name, version, installed_at, updated_at FROM packages WHERE name = ?`, name)

	var pkg Package
	var version sql.NullString
	var installedAt, updatedAt int64
	err := row.Scan(&pkg.Name, &version, &installedAt, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting package %s: %w", name, err)
	}

	pkg.Version = version.String
	pkg.InstalledAt = time.Unix(installedAt, 0)
	pkg.UpdatedAt = time.Unix(updatedAt, 0)
	return &pkg, nil
}

// ListPackages returns all inventory rows, sorted by name.
func (s *Store) ListPackages(ctx context.Context) ([]*Package, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT name, version, installed_at, updated_at FROM packages ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("listing packages: %w", err)
	}
	defer rows.Close()

	var packages []*Package
	for rows.Next() {
		var pkg Package
		var version sql.NullString
		var installedAt, updatedAt int64
		if err := rows.Scan(&pkg.Name, &version, &installedAt, &updatedAt); err != nil {
			return nil, err
		}
		pkg.Version = version.String
		pkg.InstalledAt = time.Unix(installedAt, 0)
		pkg.UpdatedAt = time.Unix(updatedAt, 0)
		packages = append(packages, &pkg)
	}
	return packages, rows.Err()
}

// DeletePackage removes an inventory row by name.
func (s *Store) DeletePackage(ctx context.Context, name string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM packages WHERE name=?`, name)
	if err != nil {
		return fmt.Errorf("deleting package %s: %w", name, err)
	}
	n, _ := result.RowsAffected()
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// AppendOperation records a pip invocation in the journal.
func (s *Store) AppendOperation(ctx context.Context, op *Operation) error {
	detail, err := marshalJSON(op.Detail)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO operations (package, action, exit_code, timestamp, detail) VALUES (?, ?, ?, ?, ?)`,
		op.Package, op.Action, op.ExitCode, op.Timestamp.Unix(), detail,
	)
	if err != nil {
		return fmt.Errorf("appending operation: %w", err)
	}
	return nil
}

// ListOperations returns journal entries, newest first. An empty pkg
// returns the journal for all packages.
func (s *Store) ListOperations(ctx context.Context, pkg string) ([]*Operation, error) {
	query := `SELECT id, package, action, exit_code, timestamp, detail FROM operations ORDER BY id DESC`
	args := []any{}
	if pkg != "" {
		query = `SELECT id, package, action, exit_code, timestamp, detail FROM operations WHERE package=? ORDER BY id DESC`
		args = append(args, pkg)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing operations: %w", err)
	}
	defer rows.Close()

	var ops []*Operation
	for rows.Next() {
		var op Operation
		var detail sql.NullString
		var ts int64
		if err := rows.Scan(&op.ID, &op.Package, &op.Action, &op.ExitCode, &ts, &detail); err != nil {
			return nil, err
		}
		op.Timestamp = time.Unix(ts, 0)
		if detail.Valid && detail.String != "" {
			if err := json.Unmarshal([]byte(detail.String), &op.Detail); err != nil {
				return nil, fmt.Errorf("unmarshaling operation detail: %w", err)
			}
		}
		ops = append(ops, &op)
	}
	return ops, rows.Err()
}

func marshalJSON(m map[string]string) (sql.NullString, error) {
	if len(m) == 0 {
		return sql.NullString{}, nil
	}
	data, err := json.Marshal(m)
	if err != nil {
		return sql.NullString{}, fmt.Errorf("marshaling JSON: %w", err)
	}
	return sql.NullString{String: string(data), Valid: true}, nil
}

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}
