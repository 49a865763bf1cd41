package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
)

var ErrInvalidCity = errors.New("invalid city name for output file")

var cityFileName = regexp.MustCompile(`^[a-z0-9_-]+$`)

// FileWriter writes one <city>.json file per report into Dir.
type FileWriter struct {
	Dir string
}

// NewFileWriter creates a FileWriter rooted at dir.
func NewFileWriter(dir string) *FileWriter {
	return &FileWriter{Dir: dir}
}

// Path returns the file a city's report is written to.
func (w *FileWriter) Path(city string) string {
	return filepath.Join(w.Dir, city+".json")
}

// Write replaces the city's file atomically: readers see the old or the new report, never a partial one.
func (w *FileWriter) Write(r Report) error {
	if !cityFileName.MatchString(r.City) {
		return fmt.Errorf("%w: %q", ErrInvalidCity, r.City)
	}
	if err := os.MkdirAll(w.Dir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("encode report %s: %w", r.City, err)
	}
	data = append(data, '\n')

	tmp, err := os.CreateTemp(w.Dir, r.City+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write report %s: %w", r.City, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close report %s: %w", r.City, err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return fmt.Errorf("chmod report %s: %w", r.City, err)
	}
	if err := os.Rename(tmp.Name(), w.Path(r.City)); err != nil {
		return fmt.Errorf("publish report %s: %w", r.City, err)
	}
	return nil
}
