// Package sqlitestore stores a run as a single SQLite database with one
// table per record stream. Rows hold the JSON form of each record, keyed by
// entry index.
package sqlitestore

import (
	"database/sql"
	_ "embed"
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"
	"github.com/valyala/fastjson"
	_ "modernc.org/sqlite"

	"github.com/funvibe/beacontau/internal/record"
)

// FileName is the database file inside a run directory.
const FileName = "run.db"

//go:embed schema.sql
var schemaSQL string

type Store struct {
	db   *sql.DB
	path string
}

// Open opens an existing run database in dir.
func Open(dir string) (*Store, error) {
	path := filepath.Join(dir, FileName)
	if _, err := os.Stat(path); err != nil {
		return nil, errors.Wrapf(err, "opening run %s", dir)
	}
	return open(path)
}

// Create creates (or truncates) the run database in dir.
func Create(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrapf(err, "creating run %s", dir)
	}
	path := filepath.Join(dir, FileName)
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return nil, err
	}
	return open(path)
}

func open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, errors.Wrapf(err, "opening database %s", path)
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA busy_timeout=5000",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, errors.Wrap(err, "setting pragma")
		}
	}
	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "creating schema")
	}
	return &Store{db: db, path: path}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) Statuses() ([]record.Status, error) {
	return query(s, "status", record.DecodeStatus)
}

func (s *Store) Headers() ([]record.Header, error) {
	return query(s, "header", record.DecodeHeader)
}

func (s *Store) Events() ([]record.Event, error) {
	return query(s, "event", record.DecodeEvent)
}

func query[T any](s *Store, table string, decode func(*fastjson.Parser, []byte) (T, error)) ([]T, error) {
	rows, err := s.db.Query("SELECT entry, body FROM " + table + " ORDER BY entry")
	if err != nil {
		return nil, errors.Wrapf(err, "querying %s", table)
	}
	defer rows.Close()

	var (
		p   fastjson.Parser
		out []T
	)
	for rows.Next() {
		var (
			entry int64
			body  []byte
		)
		if err := rows.Scan(&entry, &body); err != nil {
			return nil, errors.Wrapf(err, "scanning %s", table)
		}
		if entry != int64(len(out)) {
			return nil, errors.Newf("%s: entry %d missing", table, len(out))
		}
		rec, err := decode(&p, body)
		if err != nil {
			return nil, errors.Wrapf(err, "%s entry %d", table, entry)
		}
		out = append(out, rec)
	}
	return out, errors.Wrapf(rows.Err(), "querying %s", table)
}

func (s *Store) WriteStatuses(recs []record.Status) error {
	return insert(s, "status", recs, record.EncodeStatus)
}

func (s *Store) WriteHeaders(recs []record.Header) error {
	return insert(s, "header", recs, record.EncodeHeader)
}

func (s *Store) WriteEvents(recs []record.Event) error {
	return insert(s, "event", recs, record.EncodeEvent)
}

func insert[T any](s *Store, table string, recs []T, encode func([]byte, *fastjson.Arena, *T) []byte) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.Exec("DELETE FROM " + table); err != nil {
		return errors.Wrapf(err, "clearing %s", table)
	}
	stmt, err := tx.Prepare("INSERT INTO " + table + " (entry, body) VALUES (?, ?)")
	if err != nil {
		return errors.Wrapf(err, "preparing insert into %s", table)
	}
	defer stmt.Close()

	var (
		a   fastjson.Arena
		buf []byte
	)
	for i := range recs {
		a.Reset()
		buf = encode(buf[:0], &a, &recs[i])
		if _, err := stmt.Exec(i, string(buf)); err != nil {
			return errors.Wrapf(err, "inserting %s entry %d", table, i)
		}
	}
	return tx.Commit()
}
