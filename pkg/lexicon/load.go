package lexicon

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Load decodes dictionary entries from r. The input is either a JSON
// array of entries or a stream of JSON objects (one per line or
// concatenated). Load does not close r.
func Load(r io.Reader) ([]Entry, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}
	data = bytes.TrimLeft(data, " \t\r\n")
	if len(data) == 0 {
		return nil, nil
	}

	if data[0] == '[' {
		var entries []Entry
		if err := json.Unmarshal(data, &entries); err != nil {
			return nil, fmt.Errorf("decode: %w", err)
		}
		return entries, nil
	}

	var entries []Entry
	dec := json.NewDecoder(bytes.NewReader(data))
	for {
		var e Entry
		if err := dec.Decode(&e); errors.Is(err, io.EOF) {
			break
		} else if err != nil {
			return nil, fmt.Errorf("decode entry %d: %w", len(entries), err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// LoadFile reads dictionary entries from the JSON file at path.
func LoadFile(path string) ([]Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	entries, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return entries, nil
}

// LoadDir loads every .json file under dir, recursing into
// subdirectories. Dictionary trees are typically laid out as one
// directory per part-of-speech code with one file per lemma.
func LoadDir(dir string) ([]Entry, error) {
	var entries []Entry
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), ".json") {
			return nil
		}
		// manifest.json files are build artifacts of the dictionary
		// tooling, not entries.
		if d.Name() == "manifest.json" {
			return nil
		}
		loaded, err := LoadFile(path)
		if err != nil {
			return err
		}
		entries = append(entries, loaded...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return entries, nil
}
