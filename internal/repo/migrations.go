package repo

// migration is a single schema change for the SQLite store.
type migration struct {
	version int
	sql     string
}

var migrations = []migration{
	{
		version: 1,
		sql: `
CREATE TABLE IF NOT EXISTS schema_version (
	version INTEGER PRIMARY KEY
);

CREATE TABLE IF NOT EXISTS tags (
	id    INTEGER PRIMARY KEY AUTOINCREMENT,
	value TEXT NOT NULL UNIQUE
);

CREATE TABLE IF NOT EXISTS todo_items (
	id       INTEGER PRIMARY KEY AUTOINCREMENT,
	message  TEXT    NOT NULL,
	priority INTEGER NOT NULL CHECK (priority BETWEEN 0 AND 4),
	done     BOOLEAN NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS tag_item_bind (
	seq     INTEGER PRIMARY KEY AUTOINCREMENT,
	tag_id  INTEGER NOT NULL REFERENCES tags (id) ON DELETE CASCADE,
	item_id INTEGER NOT NULL REFERENCES todo_items (id) ON DELETE CASCADE,
	UNIQUE (tag_id, item_id)
);

CREATE INDEX IF NOT EXISTS idx_tag_item_bind_item ON tag_item_bind (item_id);

INSERT INTO schema_version (version) VALUES (1);
`,
	},
}
