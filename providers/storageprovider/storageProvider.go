package storageprovider

import (
	"database/sql"
	"log"

	"github.com/Senaseser/assetTracker/database/migrations"
	"github.com/golang-migrate/migrate/v4"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/Senaseser/assetTracker/providers"
)

// SQLiteProvider is the durable client storage: a single key/value table in
// an embedded sqlite file holding the persisted session fields.
type SQLiteProvider struct {
	db *sqlx.DB
}

func NewSessionStorageProvider(path string) providers.SessionStorageProvider {
	db, err := sqlx.Connect("sqlite", path)
	if err != nil {
		log.Fatalf("failed to open session storage: %+v", err)
	}

	if err := migrateUp(db); err != nil {
		log.Fatalf("session storage migration failed: %+v", err)
	}
	return &SQLiteProvider{db: db}
}

func (p *SQLiteProvider) Get(key string) (string, error) {
	var value string
	err := p.db.Get(&value, "SELECT value FROM session_state WHERE key = ?", key)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return value, nil
}

func (p *SQLiteProvider) Set(key, value string) error {
	_, err := p.db.Exec(
		"INSERT INTO session_state (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value",
		key, value,
	)
	return err
}

func (p *SQLiteProvider) Delete(keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	query, args, err := sqlx.In("DELETE FROM session_state WHERE key IN (?)", keys)
	if err != nil {
		return err
	}
	_, err = p.db.Exec(p.db.Rebind(query), args...)
	return err
}

func (p *SQLiteProvider) Close() error {
	return p.db.Close()
}

func migrateUp(db *sqlx.DB) error {
	driver, err := migratesqlite.WithInstance(db.DB, &migratesqlite.Config{})
	if err != nil {
		return err
	}

	source, err := iofs.New(migrations.FS, ".")
	if err != nil {
		return err
	}

	m, err := migrate.NewWithInstance("iofs", source, "sqlite", driver)
	if err != nil {
		return err
	}

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return err
	}
	return nil
}
