// Package iofs manages the converter's raw-data and output folders:
// emptiness checks, recursive discovery of observation files, and
// cleanup of previously generated output.
package iofs

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/pkg/errors"
)

// Folder-state errors surfaced to the CLI.
var (
	ErrInputEmpty     = errors.New("input folder is empty")
	ErrInputNotEmpty  = errors.New("input folder is not empty")
	ErrOutputNotEmpty = errors.New("output folder is not empty")
)

// Handler binds one input folder (raw observation files) to one output
// folder (generated catalog or analysis exports).
type Handler struct {
	InputDir  string
	OutputDir string
}

// New creates a handler over the two folders, creating them when absent.
func New(inputDir, outputDir string) (*Handler, error) {
	for _, dir := range []string{inputDir, outputDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, errors.Wrapf(err, "creating %s", dir)
		}
	}
	return &Handler{InputDir: inputDir, OutputDir: outputDir}, nil
}

// CountElements returns the number of files and directories under dir,
// excluding dir itself.
func CountElements(dir string) (int, error) {
	count := 0
	err := filepath.WalkDir(dir, func(path string, _ fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path != dir {
			count++
		}
		return nil
	})
	if err != nil {
		return 0, errors.Wrapf(err, "walking %s", dir)
	}
	return count, nil
}

// IsInputEmpty reports whether the input folder holds no entries.
func (h *Handler) IsInputEmpty() (bool, error) {
	n, err := CountElements(h.InputDir)
	return n == 0, err
}

// IsOutputEmpty reports whether the output folder holds no entries.
func (h *Handler) IsOutputEmpty() (bool, error) {
	n, err := CountElements(h.OutputDir)
	return n == 0, err
}

// InputFilesWithExt returns every file under the input folder, at any
// depth, whose name ends in the given extension (without the dot).
// Results are sorted so catalog generation is deterministic.
func (h *Handler) InputFilesWithExt(ext string) ([]string, error) {
	pattern := filepath.Join(h.InputDir, "**", "*."+ext)
	matches, err := doublestar.FilepathGlob(pattern)
	if err != nil {
		return nil, errors.Wrapf(err, "globbing %s", pattern)
	}
	sort.Strings(matches)
	return matches, nil
}

// CleanOutput removes everything inside the output folder but keeps the
// folder itself.
func (h *Handler) CleanOutput() error {
	entries, err := os.ReadDir(h.OutputDir)
	if err != nil {
		return errors.Wrapf(err, "reading %s", h.OutputDir)
	}
	for _, entry := range entries {
		if err := os.RemoveAll(filepath.Join(h.OutputDir, entry.Name())); err != nil {
			return errors.Wrapf(err, "removing %s", entry.Name())
		}
	}
	return nil
}

// EnsureOutputWritable enforces the clean-flag contract: a non-empty
// output folder is an error unless clean is set, in which case it is
// wiped before generation.
func (h *Handler) EnsureOutputWritable(clean bool) error {
	empty, err := h.IsOutputEmpty()
	if err != nil {
		return err
	}
	if empty {
		return nil
	}
	if !clean {
		return errors.Wrapf(ErrOutputNotEmpty, "%s", h.OutputDir)
	}
	return h.CleanOutput()
}
