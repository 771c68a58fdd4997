package sqlite

import "database/sql"

// schema sets up the collections. It runs on startup to ensure tables exist.
// participants and fish carry no foreign key between them: the reference from
// fish.name to participants.name is checked by the submission pipeline only.
const schema = `
CREATE TABLE IF NOT EXISTS users (
    id TEXT PRIMARY KEY,
    email TEXT NOT NULL UNIQUE,
    password_hash TEXT NOT NULL,
    created_at INTEGER NOT NULL,
    updated_at INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS participants (
    name TEXT PRIMARY KEY
);

CREATE TABLE IF NOT EXISTS fish (
    key TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    species TEXT NOT NULL,
    inches TEXT NOT NULL,
    image_url TEXT NOT NULL,
    submitted_at INTEGER NOT NULL
);
`

// runMigrations executes the schema setup.
func runMigrations(db *sql.DB) error {
	_, err := db.Exec(schema)
	return err
}
