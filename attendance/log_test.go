package attendance

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppendWritesHeaderOnce(t *testing.T) {
	l := NewLog(t.TempDir())

	require.NoError(t, l.Append("UCS503", "2026-08-31", "10:00", "123456789", "VALID"))
	require.NoError(t, l.Append("UCS503", "2026-08-31", "10:00", "222222222", "MISMATCH"))

	raw, err := os.ReadFile(filepath.Join(l.dir, "UCS503.csv"))
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(raw)), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "date,slot,roll_no,status,timestamp", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "2026-08-31,10:00,123456789,VALID,"))
	assert.True(t, strings.HasPrefix(lines[2], "2026-08-31,10:00,222222222,MISMATCH,"))
}

func TestRowsFiltersByDate(t *testing.T) {
	l := NewLog(t.TempDir())
	require.NoError(t, l.Append("UCS503", "2026-08-30", "10:00", "123456789", "VALID"))
	require.NoError(t, l.Append("UCS503", "2026-08-31", "10:00", "123456789", "NO_GROUP"))

	all, err := l.Rows("UCS503", "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	filtered, err := l.Rows("UCS503", "2026-08-31")
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	assert.Equal(t, "NO_GROUP", filtered[0].Status)
}

func TestRowsMissingSubjectIsEmpty(t *testing.T) {
	l := NewLog(t.TempDir())
	rows, err := l.Rows("NEVER_TAUGHT", "")
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestSubjectsLogToSeparateFiles(t *testing.T) {
	l := NewLog(t.TempDir())
	require.NoError(t, l.Append("UCS503", "2026-08-31", "10:00", "123456789", "VALID"))
	require.NoError(t, l.Append("UCS617", "2026-08-31", "11:00", "123456789", "VALID"))

	rows, err := l.Rows("UCS617", "")
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}
