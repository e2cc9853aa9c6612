package download

import (
	"archive/zip"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// makeZip writes a small archive with one nested observation file and
// returns its path.
func makeZip(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "lno_10_days.zip")
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	w := zip.NewWriter(f)
	entry, err := w.Create("2018/day1/obs-001.geojson")
	require.NoError(t, err)
	_, err = entry.Write([]byte(`{"type":"FeatureCollection","features":[]}`))
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return path
}

func TestParseSource(t *testing.T) {
	t.Run("existing local file", func(t *testing.T) {
		path := makeZip(t)
		src, err := ParseSource(path)
		require.NoError(t, err)
		assert.False(t, src.Remote)
		assert.Equal(t, ".zip", src.Ext)
	})

	t.Run("missing local file", func(t *testing.T) {
		_, err := ParseSource(filepath.Join(t.TempDir(), "nope.zip"))
		assert.ErrorIs(t, err, ErrSourceNotFound)
	})

	t.Run("remote url", func(t *testing.T) {
		src, err := ParseSource("https://example.org/archives/lno.zip")
		require.NoError(t, err)
		assert.True(t, src.Remote)
		assert.Equal(t, ".zip", src.Ext)
	})
}

func TestFetchIntoLocalZip(t *testing.T) {
	archive := makeZip(t)
	dest := t.TempDir()

	src, err := ParseSource(archive)
	require.NoError(t, err)

	d := New(nil, zerolog.Nop())
	sum, err := d.FetchInto(src, dest)
	require.NoError(t, err)
	assert.NotZero(t, sum)

	extracted := filepath.Join(dest, "2018", "day1", "obs-001.geojson")
	b, err := os.ReadFile(extracted)
	require.NoError(t, err)
	assert.Contains(t, string(b), "FeatureCollection")
}

func TestFetchIntoRemoteZip(t *testing.T) {
	archive := makeZip(t)
	payload, err := os.ReadFile(archive)
	require.NoError(t, err)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(payload)
	}))
	defer srv.Close()

	src, err := ParseSource(srv.URL + "/lno_10_days.zip")
	require.NoError(t, err)
	require.True(t, src.Remote)

	dest := t.TempDir()
	d := New(srv.Client(), zerolog.Nop())
	_, err = d.FetchInto(src, dest)
	require.NoError(t, err)

	assert.FileExists(t, filepath.Join(dest, "2018", "day1", "obs-001.geojson"))
}

func TestFetchIntoRemoteBadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	src, err := ParseSource(srv.URL + "/missing.zip")
	require.NoError(t, err)

	d := New(srv.Client(), zerolog.Nop())
	_, err = d.FetchInto(src, t.TempDir())
	assert.ErrorIs(t, err, ErrBadStatus)
}

func TestFetchIntoPlainFileCopies(t *testing.T) {
	dir := t.TempDir()
	plain := filepath.Join(dir, "obs.geojson")
	require.NoError(t, os.WriteFile(plain, []byte(`{"type":"FeatureCollection"}`), 0o644))

	src, err := ParseSource(plain)
	require.NoError(t, err)

	dest := t.TempDir()
	d := New(nil, zerolog.Nop())
	_, err = d.FetchInto(src, dest)
	require.NoError(t, err)

	assert.FileExists(t, filepath.Join(dest, "obs.geojson"))
}

func TestExtractZipRejectsEscapingPaths(t *testing.T) {
	path := filepath.Join(t.TempDir(), "evil.zip")
	f, err := os.Create(path)
	require.NoError(t, err)
	w := zip.NewWriter(f)
	entry, err := w.Create("../outside.txt")
	require.NoError(t, err)
	_, err = entry.Write([]byte("nope"))
	require.NoError(t, err)
	require.NoError(t, w.Close())
	require.NoError(t, f.Close())

	err = extractZip(path, t.TempDir())
	assert.ErrorIs(t, err, ErrUnsafePath)
}
