package probe

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTargets(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "targets.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadTargets(t *testing.T) {
	path := writeTargets(t, `[
		{"name": "Sam FTP", "url": "http://samonline.net"},
		{"name": "", "url": "https://media.discoveryftp.net/movies"},
		{"name": "empty", "url": "  "}
	]`)

	targets, err := LoadTargets(path)
	require.NoError(t, err)
	require.Len(t, targets, 2)

	assert.Equal(t, "Sam FTP", targets[0].Name)
	assert.Equal(t, "media.discoveryftp.net", targets[1].Name, "empty name falls back to hostname")
}

func TestLoadTargetsMissingFile(t *testing.T) {
	_, err := LoadTargets(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}

func TestLoadTargetsBadJSON(t *testing.T) {
	path := writeTargets(t, `{"not": "an array"}`)
	_, err := LoadTargets(path)
	assert.ErrorContains(t, err, "parse targets")
}

func TestHostname(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"http://samonline.net/ftp", "samonline.net"},
		{"https://media.discoveryftp.net:8080/movies", "media.discoveryftp.net"},
		{"dhakaflix.net", "dhakaflix.net"},
		{"10.16.100.244:80", "10.16.100.244"},
		{"", ""},
		{"   ", "   "},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Hostname(tc.in), "input %q", tc.in)
	}
}
