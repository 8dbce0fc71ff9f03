package badgerstore

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/objcat/pkg/types"
)

func memStore(t *testing.T) *Store {
	t.Helper()
	s, err := OpenInMemory()
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestWriteReadLines(t *testing.T) {
	s := memStore(t)

	lines := []string{"goblin", "2", "parent=npc", "*speed=5"}
	require.NoError(t, s.WriteLines("monsters", lines))

	got, err := s.ReadLines("monsters")
	require.NoError(t, err)
	assert.Equal(t, lines, got)
}

func TestWriteReplaces(t *testing.T) {
	s := memStore(t)

	require.NoError(t, s.WriteLines("Catalogs", []string{"monsters", "items"}))
	require.NoError(t, s.WriteLines("Catalogs", []string{"spells"}))

	got, err := s.ReadLines("Catalogs")
	require.NoError(t, err)
	assert.Equal(t, []string{"spells"}, got)
}

func TestEmptyDocument(t *testing.T) {
	s := memStore(t)

	require.NoError(t, s.WriteLines("empty", nil))
	got, err := s.ReadLines("empty")
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.NotNil(t, got)
}

func TestReadMissing(t *testing.T) {
	s := memStore(t)

	_, err := s.ReadLines("nope")
	assert.True(t, errors.Is(err, types.ErrNotFound), "got %v", err)
}

func TestInvalidName(t *testing.T) {
	s := memStore(t)

	err := s.WriteLines("", []string{"x"})
	assert.ErrorIs(t, err, types.ErrInvalidName)
	_, err = s.ReadLines("")
	assert.ErrorIs(t, err, types.ErrInvalidName)
}

func TestNames(t *testing.T) {
	s := memStore(t)

	names, err := s.Names()
	require.NoError(t, err)
	assert.Empty(t, names)

	for _, n := range []string{"spells", "Catalogs", "monsters"} {
		require.NoError(t, s.WriteLines(n, []string{n}))
	}
	names, err = s.Names()
	require.NoError(t, err)
	assert.Equal(t, []string{"Catalogs", "monsters", "spells"}, names)
}

func TestLinesKeepExactBytes(t *testing.T) {
	s := memStore(t)

	lines := []string{"goblin\xff", "1", "name=\xffgob\xc3", "", "tail"}
	require.NoError(t, s.WriteLines("raw", lines))

	got, err := s.ReadLines("raw")
	require.NoError(t, err)
	assert.Equal(t, lines, got)
}

func TestClosed(t *testing.T) {
	s, err := OpenInMemory()
	require.NoError(t, err)
	require.NoError(t, s.Close())
	require.NoError(t, s.Close())

	_, err = s.ReadLines("Catalogs")
	assert.ErrorIs(t, err, types.ErrStoreClosed)
	assert.ErrorIs(t, s.WriteLines("Catalogs", nil), types.ErrStoreClosed)
}

func TestPersistsOnDisk(t *testing.T) {
	dir := t.TempDir()

	s, err := Open(dir)
	require.NoError(t, err)
	require.NoError(t, s.WriteLines("items", []string{"sword", "1", "damage=3"}))
	require.NoError(t, s.Close())

	s2, err := Open(dir)
	require.NoError(t, err)
	defer s2.Close()

	got, err := s2.ReadLines("items")
	require.NoError(t, err)
	assert.Equal(t, []string{"sword", "1", "damage=3"}, got)
}
