package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/companywatch/dossier/internal/models"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "cache.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestProfileRoundTrip(t *testing.T) {
	s := testStore(t)

	_, ok, err := s.Profile("01234567")
	require.NoError(t, err)
	assert.False(t, ok)

	created := time.Date(1999, 12, 1, 0, 0, 0, 0, time.UTC)
	p := &models.CompanyProfile{CompanyNumber: "01234567", SICCode: "62020", DateOfCreation: &created}
	require.NoError(t, s.PutProfile(p))

	got, ok, err := s.Profile("01234567")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "62020", got.SICCode)
	require.NotNil(t, got.DateOfCreation)
	assert.True(t, got.DateOfCreation.Equal(created))
}

func TestPSCNamesRoundTrip(t *testing.T) {
	s := testStore(t)

	require.NoError(t, s.PutPSCNames("01234567", []string{"Ada Lovelace", "Charles Babbage"}))
	names, ok, err := s.PSCNames("01234567")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []string{"Ada Lovelace", "Charles Babbage"}, names)
}

func TestPSCNamesEmptyIsAHit(t *testing.T) {
	s := testStore(t)

	// A company with no PSCs is a cached fact, distinct from a miss.
	require.NoError(t, s.PutPSCNames("01234567", nil))
	names, ok, err := s.PSCNames("01234567")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Empty(t, names)
}

func TestOwnershipReplace(t *testing.T) {
	s := testStore(t)

	require.NoError(t, s.PutOwnership("01234567", "No ownership information identified."))
	require.NoError(t, s.PutOwnership("01234567", "The company has the following shareholders:\n- Jane - 100%"))
	stmt, ok, err := s.Ownership("01234567")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Contains(t, stmt, "Jane - 100%")
}
