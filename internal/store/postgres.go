package store

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/eventgallery/event-gallery-service/internal/models"
)

// schemaSQL is embedded so the service can self-bootstrap its table.
//
//go:embed schema.sql
var schemaSQL string

// PostgresStore serves events kept as JSONB documents in Postgres.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a connection pool and fails fast if DB is unreachable.
func NewPostgresStore(dbURL string) (*PostgresStore, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, dbURL)
	if err != nil {
		return nil, err
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return &PostgresStore{pool: pool}, nil
}

// EnsureSchema applies schema.sql. Safe to run multiple times.
func (p *PostgresStore) EnsureSchema(ctx context.Context) error {
	_, err := p.pool.Exec(ctx, schemaSQL)
	return err
}

func (p *PostgresStore) EventByID(ctx context.Context, id primitive.ObjectID) (models.Event, error) {
	row := p.pool.QueryRow(ctx, `
		SELECT id, unique_id, doc
		FROM "EventInfo"
		WHERE id = $1
	`, id.Hex())
	return scanEvent(row)
}

func (p *PostgresStore) EventByUniqueID(ctx context.Context, uniqueID string) (models.Event, error) {
	row := p.pool.QueryRow(ctx, `
		SELECT id, unique_id, doc
		FROM "EventInfo"
		WHERE unique_id = $1
	`, uniqueID)
	return scanEvent(row)
}

// scanEvent decodes a row; the id and unique_id columns win over the document.
func scanEvent(row pgx.Row) (models.Event, error) {
	var (
		id       string
		uniqueID *string
		doc      []byte
	)
	err := row.Scan(&id, &uniqueID, &doc)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.Event{}, ErrEventNotFound
	}
	if err != nil {
		return models.Event{}, fmt.Errorf("postgres select %s: %w", CollectionName, err)
	}

	var ev models.Event
	if err := json.Unmarshal(doc, &ev); err != nil {
		return models.Event{}, fmt.Errorf("decode %s document %s: %w", CollectionName, id, err)
	}

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.Event{}, fmt.Errorf("row id %q: %w", id, err)
	}
	ev.ID = oid
	if uniqueID != nil {
		ev.UniqueID = *uniqueID
	}
	return ev, nil
}

// Ping is used by readiness endpoint to validate DB connectivity.
func (p *PostgresStore) Ping(ctx context.Context) error {
	return p.pool.Ping(ctx)
}

// Close shuts down the connection pool.
func (p *PostgresStore) Close(context.Context) error {
	p.pool.Close()
	return nil
}
