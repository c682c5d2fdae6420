package metadata

import (
	"fmt"
	"os"

	"github.com/gwern/ssgen/internal/atomicfile"
	"gopkg.in/yaml.v3"
)

// readYAMLRecords parses a sequence of six-element records from a YAML
// file. A missing file is equivalent to empty content; callers enforce
// the rule that the curated file itself is required.
func readYAMLRecords(path string) ([]Item, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var recs []record
	if err := yaml.Unmarshal(data, &recs); err != nil {
		return nil, fmt.Errorf("parsing YAML %s: %w", path, err)
	}

	items := make([]Item, 0, len(recs))
	for _, r := range recs {
		items = append(items, r.toItem())
	}
	return items, nil
}

// writeYAMLRecords atomically (over)writes path with items serialized as
// a six-element record sequence.
func writeYAMLRecords(path string, items []Item) error {
	recs := make([]record, 0, len(items))
	for _, it := range items {
		recs = append(recs, it.toRecord())
	}

	data, err := yaml.Marshal(recs)
	if err != nil {
		return fmt.Errorf("encoding YAML: %w", err)
	}

	return atomicfile.WriteFile(path, data)
}

// appendYAMLRecord appends a single record to a YAML sequence file. Unlike
// a JSONL log, where appending is one more line, a YAML sequence must be
// rewritten in full to append validly, so this reads, appends, and
// atomically rewrites. Single-writer discipline makes the read-modify-write
// safe without additional locking within one process.
func appendYAMLRecord(path string, it Item) error {
	items, err := readYAMLRecords(path)
	if err != nil {
		return err
	}
	items = append(items, it)
	return writeYAMLRecords(path, items)
}
