package datastore

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// KeyValueRepository stores serialized values under string keys. Get returns a
// NoRowsError when the key has never been written.
type KeyValueRepository interface {
	Get(key string) (string, error)
	Set(key string, value string) error
	Delete(key string) error
}

type NoRowsError struct {
	NoRows bool
	Err    error
}

func (nr NoRowsError) Error() string {
	return fmt.Sprintf("%v: no rows returned for scan: %v", nr.NoRows, nr.Err)
}

func (nr NoRowsError) Unwrap() error {
	return nr.Err
}

// IsNotFound reports whether err is a NoRowsError.
func IsNotFound(err error) bool {
	var noRows NoRowsError
	return errors.As(err, &noRows) && noRows.NoRows
}

type KeyValueDatabase struct {
	database *sql.DB
}

func NewKeyValueDatabase(db *sql.DB) (KeyValueDatabase, error) {
	var kvDatabase KeyValueDatabase
	kvDatabase.database = db
	return kvDatabase, nil
}

func (kvdb KeyValueDatabase) Get(key string) (string, error) {
	db := kvdb.database

	row := db.QueryRow(`SELECT value FROM kv_store WHERE key = $1`, key)

	var value string
	scanErr := row.Scan(&value)

	switch scanErr {
	case sql.ErrNoRows:
		return "", NoRowsError{true, scanErr}
	case nil:
		return value, nil
	default:
		return "", fmt.Errorf("error reading key %q: %w", key, scanErr)
	}
}

// Set inserts or replaces the value stored under key.
func (kvdb KeyValueDatabase) Set(key string, value string) error {
	db := kvdb.database

	sqlStatement := `
		INSERT INTO kv_store (key, value, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (key)
		DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`

	if _, err := db.Exec(sqlStatement, key, value, time.Now().UTC()); err != nil {
		return fmt.Errorf("error writing key %q: %w", key, err)
	}
	return nil
}

func (kvdb KeyValueDatabase) Delete(key string) error {
	db := kvdb.database
	if _, err := db.Exec(`DELETE FROM kv_store WHERE key = $1`, key); err != nil {
		return fmt.Errorf("delete failed: %v", err)
	}
	return nil
}
