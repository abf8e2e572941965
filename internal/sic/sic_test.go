package sic

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestActivityKnownCode(t *testing.T) {
	assert.Equal(t, "Information technology consultancy activities", Activity("62020"))
	assert.Equal(t, "Dormant Company", Activity("99999"))
}

func TestActivityTrimsWhitespace(t *testing.T) {
	assert.Equal(t, "Information technology consultancy activities", Activity(" 62020 "))
}

func TestActivityUnknownCode(t *testing.T) {
	assert.Equal(t, "Unknown", Activity("00000"))
	assert.Equal(t, "Unknown", Activity("N/A"))
	assert.Equal(t, "Unknown", Activity(""))
}
