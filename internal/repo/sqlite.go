package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/BuzzLyutic/todo-bridge/internal/model"
)

// SQLiteStore implements Store on a local SQLite database file.
type SQLiteStore struct {
	db *sqlx.DB
}

type todoRow struct {
	ID       int64  `db:"id"`
	Message  string `db:"message"`
	Priority int    `db:"priority"`
	Done     bool   `db:"done"`
}

// NewSQLiteStore opens (or creates) the database at path, enables WAL mode
// and foreign keys, and applies pending migrations.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sqlx.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite db: %w", err)
	}
	// SQLite allows a single writer; pragmas are per connection.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling WAL mode: %w", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	s := &SQLiteStore{db: db}
	if err := s.runMigrations(); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	return s, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) runMigrations() error {
	current := 0

	var tableCount int
	err := s.db.Get(&tableCount,
		"SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='schema_version'")
	if err != nil {
		return fmt.Errorf("checking schema_version table: %w", err)
	}
	if tableCount > 0 {
		if err := s.db.Get(&current, "SELECT COALESCE(MAX(version), 0) FROM schema_version"); err != nil {
			return fmt.Errorf("reading schema version: %w", err)
		}
	}

	for _, m := range migrations {
		if m.version <= current {
			continue
		}
		if _, err := s.db.Exec(m.sql); err != nil {
			return fmt.Errorf("applying migration v%d: %w", m.version, err)
		}
	}
	return nil
}

func (s *SQLiteStore) GetOrCreateTag(ctx context.Context, value string) (int64, error) {
	return sqliteGetOrCreateTag(ctx, s.db, value)
}

func sqliteGetOrCreateTag(ctx context.Context, q sqlx.QueryerContext, value string) (int64, error) {
	var id int64
	err := sqlx.GetContext(ctx, q, &id, `
		INSERT INTO tags (value) VALUES (?)
		ON CONFLICT (value) DO UPDATE SET value = excluded.value
		RETURNING id`, value)
	if err != nil {
		return 0, fmt.Errorf("creating tag %q: %w", value, sqliteMapError(err))
	}
	return id, nil
}

func (s *SQLiteStore) FindTagID(ctx context.Context, value string) (int64, error) {
	var id int64
	if err := s.db.GetContext(ctx, &id, "SELECT id FROM tags WHERE value = ?", value); err != nil {
		return 0, sqliteMapError(err)
	}
	return id, nil
}

func (s *SQLiteStore) ListTags(ctx context.Context) ([]model.Pair[string], error) {
	var rows []struct {
		ID    int64  `db:"id"`
		Value string `db:"value"`
	}
	if err := s.db.SelectContext(ctx, &rows, "SELECT id, value FROM tags ORDER BY id"); err != nil {
		return nil, fmt.Errorf("querying tags: %w", err)
	}

	tags := make([]model.Pair[string], 0, len(rows))
	for _, r := range rows {
		tags = append(tags, model.NewPair(r.ID, r.Value))
	}
	return tags, nil
}

func (s *SQLiteStore) RenameTag(ctx context.Context, id int64, value string) error {
	return s.execOne(ctx, "UPDATE tags SET value = ? WHERE id = ?", value, id)
}

// DeleteTag removes the tag named value. ON DELETE CASCADE drops its bindings.
func (s *SQLiteStore) DeleteTag(ctx context.Context, value string) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM tags WHERE value = ?", value); err != nil {
		return fmt.Errorf("deleting tag %q: %w", value, err)
	}
	return nil
}

func (s *SQLiteStore) ListTodoItems(ctx context.Context) ([]model.Pair[model.TodoItem], error) {
	var rows []todoRow
	if err := s.db.SelectContext(ctx, &rows,
		"SELECT id, message, priority, done FROM todo_items ORDER BY id"); err != nil {
		return nil, fmt.Errorf("querying todo items: %w", err)
	}
	return s.withTags(ctx, rows)
}

func (s *SQLiteStore) ListTodoItemsByTag(ctx context.Context, tagID int64) ([]model.Pair[model.TodoItem], error) {
	var rows []todoRow
	err := s.db.SelectContext(ctx, &rows, `
		SELECT i.id, i.message, i.priority, i.done
		FROM todo_items i
		INNER JOIN tag_item_bind b ON b.item_id = i.id
		WHERE b.tag_id = ?
		ORDER BY i.id`, tagID)
	if err != nil {
		return nil, fmt.Errorf("querying todo items for tag %d: %w", tagID, err)
	}
	return s.withTags(ctx, rows)
}

func (s *SQLiteStore) withTags(ctx context.Context, rows []todoRow) ([]model.Pair[model.TodoItem], error) {
	items := make([]model.Pair[model.TodoItem], 0, len(rows))
	for _, r := range rows {
		p, err := model.PriorityFromLevel(r.Priority)
		if err != nil {
			return nil, fmt.Errorf("todo item %d: %w", r.ID, err)
		}
		items = append(items, model.NewPair(r.ID, model.TodoItem{
			ID:       model.Persisted(r.ID),
			Message:  r.Message,
			Priority: p,
			Done:     r.Done,
		}))
	}
	if len(items) == 0 {
		return items, nil
	}

	query, args, err := sqlx.In(`
		SELECT b.item_id, t.id AS tag_id, t.value
		FROM tag_item_bind b
		INNER JOIN tags t ON t.id = b.tag_id
		WHERE b.item_id IN (?)
		ORDER BY b.seq`, itemIDs(items))
	if err != nil {
		return nil, fmt.Errorf("building tag query: %w", err)
	}

	var binds []itemTag
	if err := s.db.SelectContext(ctx, &binds, s.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("querying item tags: %w", err)
	}

	attachTags(items, binds)
	return items, nil
}

func (s *SQLiteStore) SaveTodoItem(ctx context.Context, item model.TodoItem) (int64, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	var id int64
	if existing, ok := item.ID.Get(); ok {
		res, err := tx.ExecContext(ctx,
			"UPDATE todo_items SET message = ?, priority = ?, done = ? WHERE id = ?",
			item.Message, item.Priority.Level(), item.Done, existing)
		if err != nil {
			return 0, fmt.Errorf("updating todo item %d: %w", existing, err)
		}
		if n, _ := res.RowsAffected(); n > 0 {
			id = existing
		}
	}

	if id == 0 {
		res, err := tx.ExecContext(ctx,
			"INSERT INTO todo_items (message, priority, done) VALUES (?, ?, ?)",
			item.Message, item.Priority.Level(), item.Done)
		if err != nil {
			return 0, fmt.Errorf("inserting todo item: %w", err)
		}
		if id, err = res.LastInsertId(); err != nil {
			return 0, fmt.Errorf("reading todo item id: %w", err)
		}
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM tag_item_bind WHERE item_id = ?", id); err != nil {
		return 0, fmt.Errorf("clearing tags of todo item %d: %w", id, err)
	}
	for _, tag := range item.Tags {
		tagID, err := sqliteGetOrCreateTag(ctx, tx, tag.Value)
		if err != nil {
			return 0, err
		}
		if err := sqliteBind(ctx, tx, id, tagID); err != nil {
			return 0, err
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing todo item %d: %w", id, err)
	}
	return id, nil
}

func (s *SQLiteStore) UpdateMessage(ctx context.Context, id int64, message string) error {
	return s.execOne(ctx, "UPDATE todo_items SET message = ? WHERE id = ?", message, id)
}

func (s *SQLiteStore) UpdatePriority(ctx context.Context, id int64, p model.Priority) error {
	return s.execOne(ctx, "UPDATE todo_items SET priority = ? WHERE id = ?", p.Level(), id)
}

func (s *SQLiteStore) ToggleDone(ctx context.Context, id int64) error {
	return s.execOne(ctx, "UPDATE todo_items SET done = NOT done WHERE id = ?", id)
}

func (s *SQLiteStore) BindTag(ctx context.Context, itemID, tagID int64) error {
	return sqliteBind(ctx, s.db, itemID, tagID)
}

func sqliteBind(ctx context.Context, e sqlx.ExecerContext, itemID, tagID int64) error {
	_, err := e.ExecContext(ctx,
		"INSERT INTO tag_item_bind (tag_id, item_id) VALUES (?, ?) ON CONFLICT (tag_id, item_id) DO NOTHING",
		tagID, itemID)
	if err != nil {
		return fmt.Errorf("binding tag %d to todo item %d: %w", tagID, itemID, sqliteMapError(err))
	}
	return nil
}

func (s *SQLiteStore) UnbindTag(ctx context.Context, itemID, tagID int64) error {
	if err := s.requireItem(ctx, itemID); err != nil {
		return err
	}
	_, err := s.db.ExecContext(ctx,
		"DELETE FROM tag_item_bind WHERE item_id = ? AND tag_id = ?", itemID, tagID)
	return err
}

func (s *SQLiteStore) ClearTags(ctx context.Context, itemID int64) error {
	if err := s.requireItem(ctx, itemID); err != nil {
		return err
	}
	_, err := s.db.ExecContext(ctx, "DELETE FROM tag_item_bind WHERE item_id = ?", itemID)
	return err
}

func (s *SQLiteStore) DeleteTodoItem(ctx context.Context, id int64) error {
	return s.execOne(ctx, "DELETE FROM todo_items WHERE id = ?", id)
}

func (s *SQLiteStore) requireItem(ctx context.Context, id int64) error {
	var n int
	if err := s.db.GetContext(ctx, &n, "SELECT COUNT(*) FROM todo_items WHERE id = ?", id); err != nil {
		return err
	}
	if n == 0 {
		return ErrorNotFound
	}
	return nil
}

func (s *SQLiteStore) execOne(ctx context.Context, query string, args ...any) error {
	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return sqliteMapError(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrorNotFound
	}
	return nil
}

func sqliteMapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return ErrorNotFound
	}

	var sqErr *sqlite.Error
	if !errors.As(err, &sqErr) {
		return err
	}
	switch code := sqErr.Code(); {
	case code == sqlite3.SQLITE_CONSTRAINT_UNIQUE, code == sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
		return ErrorConflict
	case code == sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY:
		return ErrorNotFound
	case code&0xff == sqlite3.SQLITE_CONSTRAINT:
		// primary result code only
		msg := sqErr.Error()
		if strings.Contains(msg, "UNIQUE") {
			return ErrorConflict
		}
		if strings.Contains(msg, "FOREIGN KEY") {
			return ErrorNotFound
		}
	}
	return err
}
