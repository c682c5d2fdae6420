package archive

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"

	"github.com/gwern/ssgen/internal/atomicfile"
)

// maxJSONLLineCapacity bounds a single JSONL line's scanner buffer.
const maxJSONLLineCapacity = 1024 * 1024

// ReadJSONL reads every Record from an append-only JSONL log. A missing
// file is equivalent to an empty log.
func ReadJSONL(path string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	var records []Record
	scanner := bufio.NewScanner(f)
	buf := make([]byte, maxJSONLLineCapacity)
	scanner.Buffer(buf, maxJSONLLineCapacity)

	line := 0
	for scanner.Scan() {
		line++
		raw := scanner.Bytes()
		if len(raw) == 0 {
			continue
		}
		var r Record
		if err := json.Unmarshal(raw, &r); err != nil {
			return nil, fmt.Errorf("parsing %s line %d: %w", path, line, err)
		}
		records = append(records, r)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	return records, nil
}

// AppendJSONL appends a single Record to the log. The log itself is
// append-only; WriteJSONL below rewrites the whole file atomically when a
// full resync (rather than an append) is needed.
func AppendJSONL(path string, r Record) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("opening %s for append: %w", path, err)
	}
	defer f.Close()

	data, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("encoding record: %w", err)
	}
	if _, err := f.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("writing record: %w", err)
	}
	return nil
}

// WriteJSONL atomically rewrites the entire log, e.g. after a compaction pass.
func WriteJSONL(path string, records []Record) error {
	var buf []byte
	for _, r := range records {
		data, err := json.Marshal(r)
		if err != nil {
			return fmt.Errorf("encoding record: %w", err)
		}
		buf = append(buf, data...)
		buf = append(buf, '\n')
	}
	return atomicfile.WriteFile(path, buf)
}

// LoadStore reads path's JSONL log into a fresh Store.
func LoadStore(path string) (*Store, error) {
	records, err := ReadJSONL(path)
	if err != nil {
		return nil, err
	}
	s := New()
	s.Restore(records)
	return s, nil
}

// Persist appends r both to the in-memory Store and the on-disk log.
func (s *Store) Persist(path string, r Record) error {
	s.put(r)
	return AppendJSONL(path, r)
}
