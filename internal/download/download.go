// Package download fetches a source archive and unpacks it into the raw
// data folder. One best-effort attempt, no retry or backoff; a failed
// fetch is reported to the caller as-is.
package download

import (
	"archive/zip"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// Download errors.
var (
	ErrSourceNotFound = errors.New("source file not found")
	ErrBadStatus      = errors.New("unexpected response status")
	ErrUnsafePath     = errors.New("archive entry escapes destination")
)

// Source is a classified download source: either a local file path or a
// remote URL.
type Source struct {
	Raw    string
	Remote bool
	Ext    string
}

// ParseSource classifies name as local or remote and records its
// extension. Local paths must exist.
func ParseSource(name string) (Source, error) {
	u, err := url.Parse(name)
	if err != nil || u.Host == "" {
		if _, statErr := os.Stat(name); statErr != nil {
			return Source{}, errors.Wrapf(ErrSourceNotFound, "%s", name)
		}
		return Source{Raw: name, Remote: false, Ext: filepath.Ext(name)}, nil
	}
	return Source{Raw: name, Remote: true, Ext: filepath.Ext(u.Path)}, nil
}

// Downloader fetches and unpacks sources.
type Downloader struct {
	client *http.Client
	log    zerolog.Logger
}

// New creates a downloader using client, or http.DefaultClient when nil.
func New(client *http.Client, log zerolog.Logger) *Downloader {
	if client == nil {
		client = http.DefaultClient
	}
	return &Downloader{client: client, log: log}
}

// FetchInto obtains the source archive and unpacks it into dir. Remote
// sources are streamed to a temporary file first; zip archives are
// extracted, anything else is copied in verbatim. It returns the xxhash
// digest of the fetched file for the operator's log.
func (d *Downloader) FetchInto(src Source, dir string) (uint64, error) {
	local := src.Raw
	if src.Remote {
		tmpDir, err := os.MkdirTemp("", "nomad-stac-*")
		if err != nil {
			return 0, errors.Wrap(err, "creating temp dir")
		}
		defer os.RemoveAll(tmpDir)

		local = filepath.Join(tmpDir, filepath.Base(src.Raw))
		if err := d.fetchRemote(src.Raw, local); err != nil {
			return 0, err
		}
	}

	sum, err := fileDigest(local)
	if err != nil {
		return 0, err
	}
	d.log.Info().
		Str("source", src.Raw).
		Str("xxhash", fmt.Sprintf("%016x", sum)).
		Msg("fetched source file")

	if strings.EqualFold(src.Ext, ".zip") {
		return sum, extractZip(local, dir)
	}
	return sum, copyFile(local, filepath.Join(dir, filepath.Base(local)))
}

// fetchRemote streams the URL body to dest.
func (d *Downloader) fetchRemote(rawURL, dest string) error {
	resp, err := d.client.Get(rawURL)
	if err != nil {
		return errors.Wrapf(err, "fetching %s", rawURL)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return errors.Wrapf(ErrBadStatus, "%s: %s", rawURL, resp.Status)
	}

	f, err := os.Create(dest)
	if err != nil {
		return errors.Wrapf(err, "creating %s", dest)
	}
	defer f.Close()

	if _, err := io.Copy(f, resp.Body); err != nil {
		return errors.Wrapf(err, "writing %s", dest)
	}
	return nil
}

// extractZip unpacks every entry of the archive into dir, rejecting
// entries whose paths would escape it.
func extractZip(archivePath, dir string) error {
	r, err := zip.OpenReader(archivePath)
	if err != nil {
		return errors.Wrapf(err, "opening %s", archivePath)
	}
	defer r.Close()

	for _, entry := range r.File {
		dest := filepath.Join(dir, filepath.FromSlash(entry.Name))
		rel, err := filepath.Rel(dir, dest)
		if err != nil || strings.HasPrefix(rel, "..") {
			return errors.Wrapf(ErrUnsafePath, "%s", entry.Name)
		}

		if entry.FileInfo().IsDir() {
			if err := os.MkdirAll(dest, 0o755); err != nil {
				return errors.Wrapf(err, "creating %s", dest)
			}
			continue
		}
		if err := extractEntry(entry, dest); err != nil {
			return err
		}
	}
	return nil
}

func extractEntry(entry *zip.File, dest string) error {
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return errors.Wrapf(err, "creating %s", filepath.Dir(dest))
	}
	in, err := entry.Open()
	if err != nil {
		return errors.Wrapf(err, "opening archive entry %s", entry.Name)
	}
	defer in.Close()

	out, err := os.Create(dest)
	if err != nil {
		return errors.Wrapf(err, "creating %s", dest)
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return errors.Wrapf(err, "extracting %s", entry.Name)
	}
	return nil
}

// fileDigest returns the xxhash of the file contents.
func fileDigest(path string) (uint64, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, errors.Wrapf(err, "opening %s", path)
	}
	defer f.Close()

	h := xxhash.New()
	if _, err := io.Copy(h, f); err != nil {
		return 0, errors.Wrapf(err, "hashing %s", path)
	}
	return h.Sum64(), nil
}

func copyFile(srcPath, destPath string) error {
	in, err := os.Open(srcPath)
	if err != nil {
		return errors.Wrapf(err, "opening %s", srcPath)
	}
	defer in.Close()

	out, err := os.Create(destPath)
	if err != nil {
		return errors.Wrapf(err, "creating %s", destPath)
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return errors.Wrapf(err, "copying to %s", destPath)
	}
	return nil
}
