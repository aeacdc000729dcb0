// Package store keeps an index of decoded difficulties in SQLite, keyed by
// the checksum of their source file.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

type Record struct {
	Checksum      string
	Name          string
	Title         string
	Artist        string
	Creator       string
	Version       string
	Mode          string
	FormatVersion int

	Circles  int
	Sliders  int
	Spinners int
	Holds    int

	MinBPM   float64
	MaxBPM   float64
	LengthMs int
	MaxCombo int
	ParsedAt time.Time
}

type Store struct {
	db *sql.DB
}

const schema = `
create table if not exists difficulties
  (
	  checksum text not null primary key,
	  name text,
	  title text,
	  artist text,
	  creator text,
	  version text,
	  mode text,
	  format_version integer,
	  circles integer,
	  sliders integer,
	  spinners integer,
	  holds integer,
	  min_bpm real,
	  max_bpm real,
	  length_ms integer,
	  max_combo integer,
	  parsed_at integer
  );
`

const columns = `checksum, name, title, artist, creator, version, mode, format_version,
	circles, sliders, spinners, holds, min_bpm, max_bpm, length_ms, max_combo, parsed_at`

// Open opens or creates the index at path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Save inserts r, replacing any record with the same checksum.
func (s *Store) Save(r Record) error {
	_, err := s.db.Exec(`insert into difficulties(`+columns+`)
	values(?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	on conflict(checksum) do update set
		name = excluded.name,
		title = excluded.title,
		artist = excluded.artist,
		creator = excluded.creator,
		version = excluded.version,
		mode = excluded.mode,
		format_version = excluded.format_version,
		circles = excluded.circles,
		sliders = excluded.sliders,
		spinners = excluded.spinners,
		holds = excluded.holds,
		min_bpm = excluded.min_bpm,
		max_bpm = excluded.max_bpm,
		length_ms = excluded.length_ms,
		max_combo = excluded.max_combo,
		parsed_at = excluded.parsed_at`,
		r.Checksum, r.Name, r.Title, r.Artist, r.Creator, r.Version, r.Mode, r.FormatVersion,
		r.Circles, r.Sliders, r.Spinners, r.Holds, r.MinBPM, r.MaxBPM, r.LengthMs, r.MaxCombo,
		r.ParsedAt.UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("saving %s: %w", r.Checksum, err)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(row scanner) (Record, error) {
	var r Record
	var parsedAt int64
	err := row.Scan(
		&r.Checksum, &r.Name, &r.Title, &r.Artist, &r.Creator, &r.Version, &r.Mode, &r.FormatVersion,
		&r.Circles, &r.Sliders, &r.Spinners, &r.Holds, &r.MinBPM, &r.MaxBPM, &r.LengthMs, &r.MaxCombo,
		&parsedAt,
	)
	if err != nil {
		return Record{}, err
	}
	r.ParsedAt = time.UnixMilli(parsedAt).UTC()
	return r, nil
}

// Get returns the record for checksum. The bool is false when there is none.
func (s *Store) Get(checksum string) (Record, bool, error) {
	row := s.db.QueryRow("select "+columns+" from difficulties where checksum = ?", checksum)
	r, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Record{}, false, nil
	}
	if err != nil {
		return Record{}, false, fmt.Errorf("loading %s: %w", checksum, err)
	}
	return r, true, nil
}

// List returns every record ordered by entry name, then checksum.
func (s *Store) List() ([]Record, error) {
	rows, err := s.db.Query("select " + columns + " from difficulties order by name, checksum")
	if err != nil {
		return nil, fmt.Errorf("listing difficulties: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		r, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	return records, rows.Err()
}
