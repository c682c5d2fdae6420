package metadata

import (
	"fmt"
	"sync"
)

// Store is the in-memory Path->Item map backed by the curated and auto
// YAML files on disk. It is read-only during the rewrite phase and
// mutated only by AppendAuto during pre-pass scraping.
type Store struct {
	curatedPath string
	autoPath    string

	mu    sync.Mutex // guards writes to autoPath; single-writer within one process
	items map[string]Item
}

// Load parses the curated YAML, enforces its invariants (fatal on breach),
// compacts the auto YAML on disk (dedupe via map, rewrite), loads it, and
// unions left-biased (curated overrides auto).
func Load(curatedPath, autoPath string) (*Store, error) {
	curated, err := readYAMLRecords(curatedPath)
	if err != nil {
		return nil, err
	}
	if curated == nil {
		return nil, fmt.Errorf("curated metadata file is required: %s", curatedPath)
	}

	if err := CheckInvariants(curated); err != nil {
		return nil, err
	}

	if err := compactAuto(autoPath); err != nil {
		return nil, err
	}

	auto, err := readYAMLRecords(autoPath)
	if err != nil {
		return nil, err
	}

	items := make(map[string]Item, len(curated)+len(auto))
	for _, it := range auto {
		items[Canonicalize(it.URL)] = it
	}
	for _, it := range curated {
		items[Canonicalize(it.URL)] = it // curated overrides auto (left-biased union)
	}

	return &Store{curatedPath: curatedPath, autoPath: autoPath, items: items}, nil
}

// compactAuto reconstructs the auto-YAML file via a map (last-write-wins);
// duplicates are not expected but compaction is defensive.
func compactAuto(path string) error {
	items, err := readYAMLRecords(path)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		return nil
	}

	seen := make(map[string]Item, len(items))
	order := make([]string, 0, len(items))
	for _, it := range items {
		key := Canonicalize(it.URL)
		if _, ok := seen[key]; !ok {
			order = append(order, key)
		}
		seen[key] = it
	}

	compacted := make([]Item, 0, len(order))
	for _, key := range order {
		compacted = append(compacted, seen[key])
	}

	if len(compacted) == len(items) {
		return nil // nothing to compact
	}
	return writeYAMLRecords(path, compacted)
}

// Lookup canonicalizes path and returns the stored Item, if any.
func (s *Store) Lookup(path string) (Item, bool) {
	it, ok := s.items[Canonicalize(path)]
	return it, ok
}

// AppendAuto atomically appends a scraper-derived Item to the auto YAML file
// and refreshes the in-memory map. Single-writer: callers must not call this
// concurrently for the same Store; the mutex here guards against accidental
// concurrent misuse within one process, not multi-process access.
func (s *Store) AppendAuto(path string, it Item) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := Canonicalize(path)
	it.URL = path
	if err := appendYAMLRecord(s.autoPath, it); err != nil {
		return err
	}
	s.items[key] = it
	return nil
}

// Len returns the number of entries currently loaded.
func (s *Store) Len() int {
	return len(s.items)
}

// Stats summarizes the store for the pipeline driver's progress reporting.
type Stats struct {
	Total          int
	NegativeCaches int
}

// Stats computes summary counters over the loaded store.
func (s *Store) Stats() Stats {
	st := Stats{Total: len(s.items)}
	for _, it := range s.items {
		if it.IsNegativeCache() {
			st.NegativeCaches++
		}
	}
	return st
}

// All returns every loaded item, keyed by canonical path. Callers must not
// mutate the returned map.
func (s *Store) All() map[string]Item {
	return s.items
}
