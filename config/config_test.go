package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadMergesOverDefaults(t *testing.T) {
	path := writeFile(t, "config.yaml", "listen_addr: \":8080\"\nmatch_threshold: 0.35\n")
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.ListenAddr)
	assert.Equal(t, 0.35, cfg.MatchThreshold)
	assert.Equal(t, "/dev/video0", cfg.CameraDevice, "untouched fields keep defaults")
}

func TestLoadSlots(t *testing.T) {
	path := writeFile(t, "slots.json", `{"slots":[
		{"id":"mon-10","subject":"UCS503","time":"10:00","groups":["G1"],"students":["123456789"]},
		{"id":"mon-11","subject":"UCS617","time":"11:00","groups":["G2"]}
	]}`)

	slots := LoadSlots(path)
	require.Len(t, slots, 2)

	slot, ok := FindSlot(slots, "mon-10")
	require.True(t, ok)
	assert.Equal(t, "UCS503", slot.Subject)
	assert.Equal(t, []string{"123456789"}, slot.Students)

	_, ok = FindSlot(slots, "never")
	assert.False(t, ok)
}

func TestLoadSlotsCorruptFailsOpen(t *testing.T) {
	path := writeFile(t, "slots.json", `{"slots": [whoops`)
	assert.Empty(t, LoadSlots(path))
}

func TestLoadGroups(t *testing.T) {
	path := writeFile(t, "groups.json", `{"G1":["123456789","222222222"],"G2":["333333333"]}`)
	groups := LoadGroups(path)

	g, ok := groups.GroupOf("222222222")
	require.True(t, ok)
	assert.Equal(t, "G1", g)

	_, ok = groups.GroupOf("999999999")
	assert.False(t, ok)
}

func TestLoadGroupsMissingAndCorruptFailOpen(t *testing.T) {
	assert.Empty(t, LoadGroups(filepath.Join(t.TempDir(), "nope.json")))
	path := writeFile(t, "groups.json", `not json at all`)
	assert.Empty(t, LoadGroups(path))
}
