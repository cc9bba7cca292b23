package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tendant/simple-catalog/pkg/catalog"
)

// DefaultTable holds every collection's documents
const DefaultTable = "catalog_documents"

// DBTX is an interface that allows us to use either a database connection or a transaction
type DBTX interface {
	Exec(context.Context, string, ...interface{}) (pgconn.CommandTag, error)
	Query(context.Context, string, ...interface{}) (pgx.Rows, error)
	QueryRow(context.Context, string, ...interface{}) pgx.Row
}

// Repository implements catalog.DocumentStore using PostgreSQL. Records are
// stored as jsonb documents keyed by (collection, id).
type Repository struct {
	db    DBTX
	table string
}

// New creates a new PostgreSQL repository. An empty schema uses the
// connection's search path.
func New(db DBTX, schema string) *Repository {
	ident := pgx.Identifier{DefaultTable}
	if schema != "" {
		ident = pgx.Identifier{schema, DefaultTable}
	}
	return &Repository{db: db, table: ident.Sanitize()}
}

// NewWithPool creates a new PostgreSQL repository with connection pool
func NewWithPool(pool *pgxpool.Pool, schema string) *Repository {
	return New(pool, schema)
}

// EnsureSchema creates the documents table when it does not exist
func (r *Repository) EnsureSchema(ctx context.Context) error {
	query := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			collection TEXT NOT NULL,
			id TEXT NOT NULL,
			body JSONB NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			PRIMARY KEY (collection, id)
		)`, r.table)

	if _, err := r.db.Exec(ctx, query); err != nil {
		return r.handlePostgresError("ensure schema", err)
	}
	return nil
}

// Error handling helper
func (r *Repository) handlePostgresError(operation string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23502": // not_null_violation
			return fmt.Errorf("required field %s is missing", pgErr.ColumnName)
		case "42P01": // undefined_table
			return fmt.Errorf("table does not exist - database migration required")
		default:
			return fmt.Errorf("database error in %s: %s (code: %s)", operation, pgErr.Message, pgErr.Code)
		}
	}
	return fmt.Errorf("database error in %s: %w", operation, err)
}

func (r *Repository) Get(ctx context.Context, collection catalog.Collection, id string) (catalog.Record, error) {
	query := fmt.Sprintf(`SELECT body FROM %s WHERE collection = $1 AND id = $2`, r.table)

	var body []byte
	err := r.db.QueryRow(ctx, query, collection.Name, id).Scan(&body)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, catalog.ErrRecordNotFound
		}
		return nil, r.handlePostgresError("get record", err)
	}
	return decodeRecord(body)
}

// Put upserts the record
func (r *Repository) Put(ctx context.Context, collection catalog.Collection, record catalog.Record) (*catalog.PutResult, error) {
	id, ok := record.ID(collection.IDField)
	if !ok || id == "" {
		return nil, catalog.ErrMissingIdentifier
	}

	body, err := json.Marshal(record)
	if err != nil {
		return nil, fmt.Errorf("failed to encode record: %w", err)
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (collection, id, body)
		VALUES ($1, $2, $3::jsonb)
		ON CONFLICT (collection, id)
		DO UPDATE SET body = EXCLUDED.body, updated_at = now()`, r.table)

	if _, err := r.db.Exec(ctx, query, collection.Name, id, string(body)); err != nil {
		return nil, r.handlePostgresError("put record", err)
	}
	return &catalog.PutResult{}, nil
}

func (r *Repository) Delete(ctx context.Context, collection catalog.Collection, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE collection = $1 AND id = $2`, r.table)

	if _, err := r.db.Exec(ctx, query, collection.Name, id); err != nil {
		return r.handlePostgresError("delete record", err)
	}
	return nil
}

func (r *Repository) Scan(ctx context.Context, collection catalog.Collection) ([]catalog.Record, error) {
	query := fmt.Sprintf(`SELECT body FROM %s WHERE collection = $1 ORDER BY id`, r.table)

	rows, err := r.db.Query(ctx, query, collection.Name)
	if err != nil {
		return nil, r.handlePostgresError("scan records", err)
	}
	defer rows.Close()

	records := []catalog.Record{}
	for rows.Next() {
		var body []byte
		if err := rows.Scan(&body); err != nil {
			return nil, r.handlePostgresError("scan records", err)
		}
		record, err := decodeRecord(body)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, r.handlePostgresError("scan records", err)
	}
	return records, nil
}

func decodeRecord(body []byte) (catalog.Record, error) {
	var record catalog.Record
	if err := json.Unmarshal(body, &record); err != nil {
		return nil, fmt.Errorf("failed to decode record: %w", err)
	}
	return record, nil
}
