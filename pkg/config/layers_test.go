package config

import (
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/ini.v1"
)

func TestReadLayer(t *testing.T) {
	dir := t.TempDir()
	write := func(name, content string) string {
		p := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(p, []byte(content), 0o600))
		return p
	}

	tbl := []struct {
		name string
		path string
		want string
	}{
		{"empty path", "", ""},
		{"missing file", filepath.Join(dir, "nope"), ""},
		{"comments only", write("comments", "# base_url = x\r\n  # browser = firefox\n\n"), ""},
		{"values", write("values", "# header\nbase_url = http://app:8080\n"), "# header\nbase_url = http://app:8080\n"},
	}
	for _, tc := range tbl {
		t.Run(tc.name, func(t *testing.T) {
			data, err := readLayer(tc.path)
			require.NoError(t, err)
			assert.Equal(t, tc.want, string(data))
		})
	}

	t.Run("unreadable path", func(t *testing.T) {
		_, err := readLayer(dir) // a directory
		require.Error(t, err)
		assert.Contains(t, err.Error(), "read config")
	})
}

func TestLoadLayered(t *testing.T) {
	parse := func(s *ini.Section) (map[string]string, error) { return s.KeysHash(), nil }
	merge := func(dst, src *map[string]string) {
		for k, v := range *src {
			(*dst)[k] = v
		}
	}
	fsys := fstest.MapFS{embeddedConfig: {Data: []byte("a = embedded\nb = embedded\nc = embedded\n")}}

	dir := t.TempDir()
	global := filepath.Join(dir, "global")
	local := filepath.Join(dir, "local")
	require.NoError(t, os.WriteFile(global, []byte("b = global\nc = global\n"), 0o600))
	require.NoError(t, os.WriteFile(local, []byte("c = local\n"), 0o600))

	res, err := loadLayered(fsys, local, global, parse, merge)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"a": "embedded", "b": "global", "c": "local"}, res)

	t.Run("missing embedded defaults", func(t *testing.T) {
		_, err := loadLayered(fstest.MapFS{}, "", "", parse, merge)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "read embedded defaults")
	})

	t.Run("broken layer names its source", func(t *testing.T) {
		broken := filepath.Join(dir, "broken")
		require.NoError(t, os.WriteFile(broken, []byte("[unterminated\n"), 0o600))
		_, err := loadLayered(fsys, broken, global, parse, merge)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "parse local config")
	})
}
