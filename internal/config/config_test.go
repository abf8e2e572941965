package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("COMPANY_HOUSE_API_KEY", "test-key")
	t.Setenv("OFFICER_NAME", "Jane Q Public")
	t.Setenv("OFFICER_DOB", "1970-03")
}

func TestLoadDefaults(t *testing.T) {
	setRequired(t)
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ".", cfg.OutputDir)
	assert.Equal(t, "data", cfg.DataDir)
	assert.True(t, cfg.AllowMultipleMatches)
}

func TestLoadTruncatesFullDate(t *testing.T) {
	setRequired(t)
	t.Setenv("OFFICER_DOB", "1970-03-15")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "1970-03", cfg.OfficerDOB)
}

func TestLoadMissingRequired(t *testing.T) {
	setRequired(t)
	t.Setenv("COMPANY_HOUSE_API_KEY", "")
	_, err := Load()
	assert.Error(t, err)

	setRequired(t)
	t.Setenv("OFFICER_DOB", "  ")
	_, err = Load()
	assert.Error(t, err)
}
