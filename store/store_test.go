package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "index.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func record(checksum, name string) Record {
	return Record{
		Checksum:      checksum,
		Name:          name,
		Title:         "Re:Zero",
		Artist:        "Artist",
		Creator:       "Mapper",
		Version:       "Insane",
		Mode:          "osu",
		FormatVersion: 14,
		Circles:       120,
		Sliders:       80,
		Spinners:      1,
		MinBPM:        120,
		MaxBPM:        180,
		LengthMs:      95000,
		MaxCombo:      301,
		ParsedAt:      time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestSaveAndGet(t *testing.T) {
	s := openTestStore(t)

	want := record("abc", "a [Insane].osu")
	require.NoError(t, s.Save(want))

	got, ok, err := s.Get("abc")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, want, got)
}

func TestGetMissing(t *testing.T) {
	s := openTestStore(t)

	_, ok, err := s.Get("nope")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSaveReplacesByChecksum(t *testing.T) {
	s := openTestStore(t)

	r := record("abc", "a.osu")
	require.NoError(t, s.Save(r))
	r.MaxCombo = 999
	r.Name = "renamed.osu"
	require.NoError(t, s.Save(r))

	all, err := s.List()
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, 999, all[0].MaxCombo)
	assert.Equal(t, "renamed.osu", all[0].Name)
}

func TestListOrdersByName(t *testing.T) {
	s := openTestStore(t)

	for _, r := range []Record{record("1", "c.osu"), record("2", "a.osu"), record("3", "b.osu")} {
		require.NoError(t, s.Save(r))
	}

	all, err := s.List()
	require.NoError(t, err)
	var names []string
	for _, r := range all {
		names = append(names, r.Name)
	}
	assert.Equal(t, []string{"a.osu", "b.osu", "c.osu"}, names)
}

func TestReopenKeepsRecords(t *testing.T) {
	path := filepath.Join(t.TempDir(), "index.db")
	s, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s.Save(record("abc", "a.osu")))
	require.NoError(t, s.Close())

	s, err = Open(path)
	require.NoError(t, err)
	defer s.Close()
	_, ok, err := s.Get("abc")
	require.NoError(t, err)
	assert.True(t, ok)
}
