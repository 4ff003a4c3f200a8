package preipo

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// LoadOptions tunes how Load reads a data file.
type LoadOptions struct {
	Sheet    string // spreadsheet sheet name, first sheet if empty
	Selector string // JSONPath selector for .json files, DefaultSelector if empty
}

// Load reads a dataset from a file, the format is chosen from its extension:
// .csv, .jsonl, .json or .xlsx.
func Load(path string, opts LoadOptions) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open data file %q: %w", path, err)
	}
	defer f.Close()

	var d *Dataset
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".csv":
		d, err = DecodeCSV(f)
	case ".jsonl":
		d, err = DecodeJSONL(f)
	case ".json":
		d, err = DecodeJSON(f, opts.Selector)
	case ".xlsx":
		d, err = DecodeXLSX(f, opts.Sheet)
	default:
		return nil, fmt.Errorf("unsupported data file format %q", ext)
	}
	if err != nil {
		return nil, fmt.Errorf("could not decode data file %q: %w", path, err)
	}
	return d, nil
}

// Save writes the dataset as JSONL into path, creating missing directories.
func Save(path string, d *Dataset) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("could not create directory for %q: %w", path, err)
	}
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("error opening %q for writing: %w", path, err)
	}
	defer file.Close()

	if err := EncodeJSONL(file, d); err != nil {
		return fmt.Errorf("error writing %q: %w", path, err)
	}
	return file.Close()
}
