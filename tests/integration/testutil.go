// Package integration provides CLI integration tests for nomad-stac.
package integration

import (
	"archive/zip"
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
)

var (
	// nomadStacBin is the path to the built nomad-stac binary.
	nomadStacBin string
	// buildErr captures any build error.
	buildErr error
)

// BuildError wraps a build error with output.
type BuildError struct {
	Err    error
	Output string
}

func (e *BuildError) Error() string {
	return e.Err.Error() + ": " + e.Output
}

// FindProjectRoot finds the project root by walking up and looking for go.mod.
func FindProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for {
		goModPath := filepath.Join(dir, "go.mod")
		if _, err := os.Stat(goModPath); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", os.ErrNotExist
		}
		dir = parent
	}
}

// SetNomadStacBin sets the path to the nomad-stac binary (called from TestMain).
func SetNomadStacBin(path string) {
	nomadStacBin = path
}

// SetBuildErr sets the build error (called from TestMain).
func SetBuildErr(err error) {
	buildErr = err
}

// TestEnv provides an isolated test environment with its own config,
// raw-data, and output directories.
type TestEnv struct {
	t         *testing.T
	TempDir   string
	Config    string
	InputDir  string
	OutputDir string
}

// NewTestEnv creates a new isolated test environment. The config.yaml it
// writes points input_folder and output_folder at per-test temp dirs so
// subcommands need no folder flags.
func NewTestEnv(t *testing.T) *TestEnv {
	t.Helper()

	if buildErr != nil {
		t.Fatalf("failed to build nomad-stac: %v", buildErr)
	}
	if nomadStacBin == "" {
		t.Fatal("nomad-stac binary not built (nomadStacBin is empty)")
	}

	tempDir := t.TempDir()
	configDir := filepath.Join(tempDir, "config")
	inputDir := filepath.Join(tempDir, "raw")
	outputDir := filepath.Join(tempDir, "processed")

	if err := os.MkdirAll(configDir, 0o755); err != nil {
		t.Fatalf("failed to create config dir: %v", err)
	}
	configContent := "input_folder: " + inputDir + "\noutput_folder: " + outputDir + "\n"
	if err := os.WriteFile(filepath.Join(configDir, "config.yaml"), []byte(configContent), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	return &TestEnv{
		t:         t,
		TempDir:   tempDir,
		Config:    configDir,
		InputDir:  inputDir,
		OutputDir: outputDir,
	}
}

// CmdResult holds the result of a nomad-stac command execution.
type CmdResult struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// RunNomadStac executes the nomad-stac CLI with the given arguments.
func (e *TestEnv) RunNomadStac(args ...string) CmdResult {
	e.t.Helper()

	allArgs := append([]string{"--config-dir", e.Config}, args...)
	cmd := exec.Command(nomadStacBin, allArgs...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	exitCode := 0
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			exitCode = exitErr.ExitCode()
		} else {
			e.t.Fatalf("failed to run nomad-stac: %v", err)
		}
	}

	return CmdResult{
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		ExitCode: exitCode,
	}
}

// MustRunNomadStac executes the nomad-stac CLI and fails the test if it
// returns non-zero.
func (e *TestEnv) MustRunNomadStac(args ...string) CmdResult {
	e.t.Helper()
	result := e.RunNomadStac(args...)
	if result.ExitCode != 0 {
		e.t.Fatalf("nomad-stac %v failed with exit code %d:\nstdout: %s\nstderr: %s",
			args, result.ExitCode, result.Stdout, result.Stderr)
	}
	return result
}

// observationFixture renders one GeoJSON FeatureCollection holding a
// single observation feature, shaped like an archive delivery file.
func observationFixture(psaLID string, diffractionOrder int, lon, lat float64) string {
	return fmt.Sprintf(`{
  "type": "FeatureCollection",
  "features": [
    {
      "type": "Feature",
      "geometry": {
        "type": "Polygon",
        "coordinates": [[[%[3]g, %[4]g], [%[3]g, %[4]g], [%[3]g, %[4]g], [%[3]g, %[4]g]]]
      },
      "properties": {
        "psa_lid": %[1]q,
        "utc_start_time": "2018-04-22 03:00:44.156160",
        "utc_end_time": "2018-04-22 03:00:59.155232",
        "spec_ix": 4,
        "diffraction_order": %[2]d,
        "incidence_angle": 44.178,
        "emergence_angle": 7.932,
        "phase_angle": 40.245,
        "centre_latitude": %[4]g,
        "centre_longitude": %[3]g,
        "channel_temperature": -5.882,
        "hdf5_filename": "20180422_030044_0p3a_LNO_1_D_%[2]d.h5",
        "martian_year": 34,
        "ls": 164.2,
        "local_solar_time": "12.343"
      }
    }
  ]
}`, psaLID, diffractionOrder, lon, lat)
}

// WriteObservationFixture writes one observation file into the raw folder.
func (e *TestEnv) WriteObservationFixture(name, psaLID string, diffractionOrder int, lon, lat float64) string {
	e.t.Helper()
	if err := os.MkdirAll(e.InputDir, 0o755); err != nil {
		e.t.Fatalf("failed to create input dir: %v", err)
	}
	path := filepath.Join(e.InputDir, name)
	body := observationFixture(psaLID, diffractionOrder, lon, lat)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		e.t.Fatalf("failed to write fixture %s: %v", name, err)
	}
	return path
}

// WriteFixtureArchive builds a zip holding observation files, outside the
// raw folder, for download-from-file tests.
func (e *TestEnv) WriteFixtureArchive(name string, entries map[string]string) string {
	e.t.Helper()

	path := filepath.Join(e.TempDir, name)
	f, err := os.Create(path)
	if err != nil {
		e.t.Fatalf("failed to create archive: %v", err)
	}
	defer f.Close()

	w := zip.NewWriter(f)
	for entry, body := range entries {
		zf, err := w.Create(entry)
		if err != nil {
			e.t.Fatalf("failed to add archive entry %s: %v", entry, err)
		}
		if _, err := zf.Write([]byte(body)); err != nil {
			e.t.Fatalf("failed to write archive entry %s: %v", entry, err)
		}
	}
	if err := w.Close(); err != nil {
		e.t.Fatalf("failed to close archive: %v", err)
	}
	return path
}

// ReadJSONFile reads and parses a JSON file from disk.
func ReadJSONFile[T any](t *testing.T, path string) T {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read %s: %v", path, err)
	}
	var result T
	if err := json.Unmarshal(data, &result); err != nil {
		t.Fatalf("failed to parse %s: %v", path, err)
	}
	return result
}

// StacObject is the subset of a serialized catalog, collection, or item
// record the tests inspect.
type StacObject struct {
	Type           string         `json:"type"`
	ID             string         `json:"id"`
	StacVersion    string         `json:"stac_version"`
	StacExtensions []string       `json:"stac_extensions"`
	Description    string         `json:"description"`
	License        string         `json:"license"`
	Properties     map[string]any `json:"properties"`
	Assets         map[string]struct {
		Href string `json:"href"`
		Type string `json:"type"`
	} `json:"assets"`
	Summaries map[string]any `json:"summaries"`
	Links     []struct {
		Rel  string `json:"rel"`
		Href string `json:"href"`
	} `json:"links"`
}
