package repo

import (
	"context"
	_ "embed"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/BuzzLyutic/todo-bridge/internal/model"
)

//go:embed schema/postgres.sql
var postgresSchema string

// querier is satisfied by both the pool and a transaction.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type PostgresStore struct { // Репозиторий для работы непосредственно с БД
	pool *pgxpool.Pool
}

func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore { // Конструктор
	return &PostgresStore{
		pool: pool,
	}
}

// EnsureSchema creates the tables when they do not exist yet.
func (r *PostgresStore) EnsureSchema(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, postgresSchema)
	return err
}

func (r *PostgresStore) Close() error {
	r.pool.Close()
	return nil
}

func (r *PostgresStore) GetOrCreateTag(ctx context.Context, value string) (int64, error) {
	return pgGetOrCreateTag(ctx, r.pool, value)
}

func pgGetOrCreateTag(ctx context.Context, q querier, value string) (int64, error) {
	var id int64
	err := q.QueryRow(ctx, `
		INSERT INTO tags (value) VALUES ($1)
		ON CONFLICT (value) DO UPDATE SET value = EXCLUDED.value
		RETURNING id
	`, value).Scan(&id)
	return id, pgMapError(err)
}

func (r *PostgresStore) FindTagID(ctx context.Context, value string) (int64, error) {
	var id int64
	err := r.pool.QueryRow(ctx, `SELECT id FROM tags WHERE value = $1`, value).Scan(&id)
	return id, pgMapError(err)
}

func (r *PostgresStore) ListTags(ctx context.Context) ([]model.Pair[string], error) {
	rows, err := r.pool.Query(ctx, `SELECT id, value FROM tags ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tags := make([]model.Pair[string], 0)
	for rows.Next() {
		var p model.Pair[string]
		if err := rows.Scan(&p.ID, &p.Value); err != nil {
			return nil, err
		}
		tags = append(tags, p)
	}
	return tags, rows.Err()
}

func (r *PostgresStore) RenameTag(ctx context.Context, id int64, value string) error {
	cmd, err := r.pool.Exec(ctx, `UPDATE tags SET value = $2 WHERE id = $1`, id, value)
	if err != nil {
		return pgMapError(err)
	}
	if cmd.RowsAffected() == 0 {
		return ErrorNotFound
	}
	return nil
}

// DeleteTag removes the tag named value and, by cascade, its bindings.
func (r *PostgresStore) DeleteTag(ctx context.Context, value string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM tags WHERE value = $1`, value)
	return err
}

func (r *PostgresStore) ListTodoItems(ctx context.Context) ([]model.Pair[model.TodoItem], error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, message, priority, done
		FROM todo_items
		ORDER BY id
	`)
	if err != nil {
		return nil, err
	}
	return r.withTags(ctx, rows)
}

func (r *PostgresStore) ListTodoItemsByTag(ctx context.Context, tagID int64) ([]model.Pair[model.TodoItem], error) {
	rows, err := r.pool.Query(ctx, `
		SELECT i.id, i.message, i.priority, i.done
		FROM todo_items i
		JOIN tag_item_bind b ON b.item_id = i.id
		WHERE b.tag_id = $1
		ORDER BY i.id
	`, tagID)
	if err != nil {
		return nil, err
	}
	return r.withTags(ctx, rows)
}

// withTags scans item rows and loads the tags bound to them.
func (r *PostgresStore) withTags(ctx context.Context, rows pgx.Rows) ([]model.Pair[model.TodoItem], error) {
	items, err := pgScanItems(rows)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return items, nil
	}

	tagRows, err := r.pool.Query(ctx, `
		SELECT b.item_id, t.id, t.value
		FROM tag_item_bind b
		JOIN tags t ON t.id = b.tag_id
		WHERE b.item_id = ANY($1)
		ORDER BY b.seq
	`, itemIDs(items))
	if err != nil {
		return nil, err
	}
	defer tagRows.Close()

	var binds []itemTag
	for tagRows.Next() {
		var it itemTag
		if err := tagRows.Scan(&it.ItemID, &it.TagID, &it.Value); err != nil {
			return nil, err
		}
		binds = append(binds, it)
	}
	if err := tagRows.Err(); err != nil {
		return nil, err
	}

	attachTags(items, binds)
	return items, nil
}

func pgScanItems(rows pgx.Rows) ([]model.Pair[model.TodoItem], error) {
	defer rows.Close()

	items := make([]model.Pair[model.TodoItem], 0)
	for rows.Next() {
		var (
			id    int64
			level int
			item  model.TodoItem
		)
		if err := rows.Scan(&id, &item.Message, &level, &item.Done); err != nil {
			return nil, err
		}
		p, err := model.PriorityFromLevel(level)
		if err != nil {
			return nil, err
		}
		item.ID = model.Persisted(id)
		item.Priority = p
		items = append(items, model.NewPair(id, item))
	}
	return items, rows.Err()
}

func (r *PostgresStore) SaveTodoItem(ctx context.Context, item model.TodoItem) (int64, error) {
	var id int64
	err := pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		if existing, ok := item.ID.Get(); ok {
			err := tx.QueryRow(ctx, `
				UPDATE todo_items SET message = $2, priority = $3, done = $4
				WHERE id = $1
				RETURNING id
			`, existing, item.Message, item.Priority.Level(), item.Done).Scan(&id)
			if err != nil && !errors.Is(err, pgx.ErrNoRows) {
				return err
			}
		}

		if id == 0 {
			err := tx.QueryRow(ctx, `
				INSERT INTO todo_items (message, priority, done)
				VALUES ($1, $2, $3)
				RETURNING id
			`, item.Message, item.Priority.Level(), item.Done).Scan(&id)
			if err != nil {
				return err
			}
		}

		// Теги заменяются целиком
		if _, err := tx.Exec(ctx, `DELETE FROM tag_item_bind WHERE item_id = $1`, id); err != nil {
			return err
		}
		for _, tag := range item.Tags {
			tagID, err := pgGetOrCreateTag(ctx, tx, tag.Value)
			if err != nil {
				return err
			}
			if err := pgBind(ctx, tx, id, tagID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, pgMapError(err)
	}
	return id, nil
}

func (r *PostgresStore) UpdateMessage(ctx context.Context, id int64, message string) error {
	return r.execOne(ctx, `UPDATE todo_items SET message = $2 WHERE id = $1`, id, message)
}

func (r *PostgresStore) UpdatePriority(ctx context.Context, id int64, p model.Priority) error {
	return r.execOne(ctx, `UPDATE todo_items SET priority = $2 WHERE id = $1`, id, p.Level())
}

func (r *PostgresStore) ToggleDone(ctx context.Context, id int64) error {
	return r.execOne(ctx, `UPDATE todo_items SET done = NOT done WHERE id = $1`, id)
}

func (r *PostgresStore) BindTag(ctx context.Context, itemID, tagID int64) error {
	return pgMapError(pgBind(ctx, r.pool, itemID, tagID))
}

func pgBind(ctx context.Context, q querier, itemID, tagID int64) error {
	_, err := q.Exec(ctx, `
		INSERT INTO tag_item_bind (tag_id, item_id) VALUES ($1, $2)
		ON CONFLICT (tag_id, item_id) DO NOTHING
	`, tagID, itemID)
	return err
}

func (r *PostgresStore) UnbindTag(ctx context.Context, itemID, tagID int64) error {
	if err := r.requireItem(ctx, itemID); err != nil {
		return err
	}
	_, err := r.pool.Exec(ctx, `DELETE FROM tag_item_bind WHERE item_id = $1 AND tag_id = $2`, itemID, tagID)
	return err
}

func (r *PostgresStore) ClearTags(ctx context.Context, itemID int64) error {
	if err := r.requireItem(ctx, itemID); err != nil {
		return err
	}
	_, err := r.pool.Exec(ctx, `DELETE FROM tag_item_bind WHERE item_id = $1`, itemID)
	return err
}

func (r *PostgresStore) DeleteTodoItem(ctx context.Context, id int64) error {
	return r.execOne(ctx, `DELETE FROM todo_items WHERE id = $1`, id)
}

func (r *PostgresStore) requireItem(ctx context.Context, id int64) error {
	var exists bool
	if err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM todo_items WHERE id = $1)`, id).Scan(&exists); err != nil {
		return err
	}
	if !exists {
		return ErrorNotFound
	}
	return nil
}

// execOne runs a statement that must touch exactly one row.
func (r *PostgresStore) execOne(ctx context.Context, sql string, args ...any) error {
	cmd, err := r.pool.Exec(ctx, sql, args...)
	if err != nil {
		return pgMapError(err)
	}
	if cmd.RowsAffected() == 0 {
		return ErrorNotFound
	}
	return nil
}

func pgMapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrorNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505":
			return ErrorConflict
		case "23503":
			return ErrorNotFound
		}
	}
	return err
}
