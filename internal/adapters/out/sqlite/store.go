// Package sqlite persists the order set in an embedded SQLite database.
// It serves single-machine deployments that want transactional durability
// without running a database server. The row layout mirrors the PostgreSQL
// backend: the canonical order document in a payload column, status and
// drawing number lifted out for querying.
package sqlite

import (
	"context"
	"database/sql"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	sq "github.com/Masterminds/squirrel"
	_ "github.com/mattn/go-sqlite3"

	"metrology/internal/core/domain/model/order"
	"metrology/internal/core/ports"
)

//go:embed schema.sql
var schemaSQL string

const rosterRowID = 1

// Store implements ports.OrderStore over a SQLite file.
type Store struct {
	db     *sql.DB
	logger *slog.Logger
}

// Open creates or opens the database at the given path, applies the
// required pragmas and the schema, and returns a ready store.
//
// SQLite supports a single writer, so the connection pool is capped at one
// connection; WAL mode keeps reads available during writes.
func Open(path string, logger *slog.Logger) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err = db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err = applyPragmas(db); err != nil {
		db.Close()
		return nil, err
	}

	if _, err = db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	return &Store{
		db:     db,
		logger: logger.With("component", "sqlite_store"),
	}, nil
}

func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return fmt.Errorf("execute %q: %w", pragma, err)
		}
	}

	return nil
}

// Load reads all order rows in their saved order and splits them into
// partitions by the status column. Undecodable payloads are skipped with a
// log line; the reconciler rewrites a clean state afterwards.
func (s *Store) Load(ctx context.Context) (ports.StoreState, error) {
	query, args, err := sq.Select("id", "status", "payload").
		From("orders").
		OrderBy("position").
		ToSql()
	if err != nil {
		return ports.StoreState{}, fmt.Errorf("build orders query: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return ports.StoreState{}, fmt.Errorf("load orders: %w", err)
	}
	defer rows.Close()

	var state ports.StoreState
	for rows.Next() {
		var (
			id      string
			status  string
			payload []byte
		)
		if err = rows.Scan(&id, &status, &payload); err != nil {
			return ports.StoreState{}, fmt.Errorf("scan order row: %w", err)
		}

		var doc order.Doc
		if err = json.Unmarshal(payload, &doc); err != nil {
			s.logger.WarnContext(ctx, "Skipping undecodable order row", "id", id, "error", err)
			continue
		}

		if order.Status(status) == order.Active {
			state.Active = append(state.Active, doc)
		} else {
			state.Archived = append(state.Archived, doc)
		}
	}
	if err = rows.Err(); err != nil {
		return ports.StoreState{}, fmt.Errorf("iterate order rows: %w", err)
	}

	operators, err := s.loadRoster(ctx)
	if err != nil {
		return ports.StoreState{}, err
	}
	state.Operators = operators

	return state, nil
}

// Save rewrites the whole persisted state in one transaction: upsert every
// present order, prune the vanished ones, replace the roster document.
func (s *Store) Save(ctx context.Context, state ports.StoreState) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	ids := make([]string, 0, len(state.Active)+len(state.Archived))
	position := 0

	upsert := func(doc order.Doc) error {
		payload, marshalErr := json.Marshal(doc)
		if marshalErr != nil {
			return fmt.Errorf("encode order %s: %w", doc.ID, marshalErr)
		}

		query, args, buildErr := sq.Insert("orders").
			Columns("id", "status", "drawing_number", "position", "payload").
			Values(doc.ID, string(doc.Status), doc.DrawingNumber, position, payload).
			Suffix(`ON CONFLICT(id) DO UPDATE SET
				status = excluded.status,
				drawing_number = excluded.drawing_number,
				position = excluded.position,
				payload = excluded.payload`).
			ToSql()
		if buildErr != nil {
			return fmt.Errorf("build upsert: %w", buildErr)
		}

		if _, execErr := tx.ExecContext(ctx, query, args...); execErr != nil {
			return fmt.Errorf("upsert order %s: %w", doc.ID, execErr)
		}

		ids = append(ids, doc.ID)
		position++
		return nil
	}

	for _, doc := range state.Active {
		if err = upsert(doc); err != nil {
			return err
		}
	}
	for _, doc := range state.Archived {
		if err = upsert(doc); err != nil {
			return err
		}
	}

	if err = s.pruneVanished(ctx, tx, ids); err != nil {
		return err
	}

	if err = s.saveRoster(ctx, tx, state.Operators); err != nil {
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	return nil
}

// CountArchivedByDrawing counts archived orders with the given drawing
// number. Archived means any status other than ACTIVE.
func (s *Store) CountArchivedByDrawing(ctx context.Context, drawingNumber string) (int, error) {
	query, args, err := sq.Select("COUNT(*)").
		From("orders").
		Where(sq.Eq{"drawing_number": drawingNumber}).
		Where(sq.NotEq{"status": string(order.Active)}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build count query: %w", err)
	}

	var count int
	if err = s.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("count archived orders: %w", err)
	}

	return count, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *Store) pruneVanished(ctx context.Context, tx *sql.Tx, ids []string) error {
	builder := sq.Delete("orders")
	if len(ids) > 0 {
		builder = builder.Where(sq.NotEq{"id": ids})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return fmt.Errorf("build prune query: %w", err)
	}

	if _, err = tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("prune orders: %w", err)
	}

	return nil
}

func (s *Store) loadRoster(ctx context.Context) ([]string, error) {
	query, args, err := sq.Select("names").
		From("operator_roster").
		Where(sq.Eq{"id": rosterRowID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build roster query: %w", err)
	}

	var payload []byte
	if err = s.db.QueryRowContext(ctx, query, args...).Scan(&payload); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("load roster: %w", err)
	}

	var names []string
	if err = json.Unmarshal(payload, &names); err != nil {
		s.logger.Warn("Skipping undecodable roster row", "error", err)
		return nil, nil
	}

	return names, nil
}

func (s *Store) saveRoster(ctx context.Context, tx *sql.Tx, names []string) error {
	if names == nil {
		names = []string{}
	}

	payload, err := json.Marshal(names)
	if err != nil {
		return fmt.Errorf("encode roster: %w", err)
	}

	query, args, err := sq.Insert("operator_roster").
		Columns("id", "names").
		Values(rosterRowID, payload).
		Suffix("ON CONFLICT(id) DO UPDATE SET names = excluded.names").
		ToSql()
	if err != nil {
		return fmt.Errorf("build roster upsert: %w", err)
	}

	if _, err = tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert roster: %w", err)
	}

	return nil
}
