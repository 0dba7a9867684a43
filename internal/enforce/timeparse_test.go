package enforce

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStrftimeToLayout(t *testing.T) {
	layout, err := strftimeToLayout("%Y-%m-%dT%H:%M:%S")
	require.NoError(t, err)
	assert.Equal(t, "2006-01-02T15:04:05", layout)

	layout, err = strftimeToLayout("%d/%m/%y")
	require.NoError(t, err)
	assert.Equal(t, "02/01/06", layout)
}

func TestStrftimeToLayout_UnsupportedDirective(t *testing.T) {
	_, err := strftimeToLayout("%Y-%j")
	assert.Error(t, err)

	_, err = strftimeToLayout("%Y-%")
	assert.Error(t, err)
}

func TestParseTimestamp_WithFormat(t *testing.T) {
	ts, ok := parseTimestamp("2020-01-01T00:00:00", "%Y-%m-%dT%H:%M:%S")
	require.True(t, ok)
	assert.Equal(t, time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC), ts)

	// a declared format is binding: non-matching values are not rescued
	_, ok = parseTimestamp("2020-01-01", "%Y-%m-%dT%H:%M:%S")
	assert.False(t, ok)
}

func TestParseTimestamp_GenericLayouts(t *testing.T) {
	ts, ok := parseTimestamp("2020-01-01", "")
	require.True(t, ok)
	assert.Equal(t, time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC), ts)

	ts, ok = parseTimestamp("2020-01-01 12:30:00", "")
	require.True(t, ok)
	assert.Equal(t, 12, ts.Hour())

	_, ok = parseTimestamp("not-a-date", "")
	assert.False(t, ok)
}

func TestParseTimestamp_UntranslatableFormatFallsBack(t *testing.T) {
	ts, ok := parseTimestamp("2020-01-01", "%Y-%j")
	require.True(t, ok)
	assert.Equal(t, 2020, ts.Year())
}

func TestToISOTimestamp(t *testing.T) {
	iso, ok := ToISOTimestamp("2020-01-01")
	require.True(t, ok)
	assert.Equal(t, "2020-01-01T00:00:00", iso)

	_, ok = ToISOTimestamp("not-a-date")
	assert.False(t, ok)

	_, ok = ToISOTimestamp("2020-13-40")
	assert.False(t, ok)
}
