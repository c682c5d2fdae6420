package metadata

// InjectFunc rewrites a single abstract's HTML, substituting inline
// annotation popups for links it contains, consulting store for their
// metadata. The concrete implementation lives in internal/rewrite's
// annotation-injection pass; metadata only defines the shape of the
// dependency so this package does not import rewrite, which itself needs
// a *Store to do its job.
type InjectFunc func(abstractHTML string, store *Store) (string, error)

// RecurseInline runs inject over every Item's abstract, using store itself
// as the annotation source, and returns a new Store holding the rewritten
// items. One level of inlining is sufficient — popups themselves load
// further popups lazily — so inject is applied exactly once per item, not
// fixed-pointed.
func RecurseInline(store *Store, inject InjectFunc) (*Store, error) {
	out := &Store{
		curatedPath: store.curatedPath,
		autoPath:    store.autoPath,
		items:       make(map[string]Item, len(store.items)),
	}

	for key, it := range store.items {
		if it.Abstract == "" {
			out.items[key] = it
			continue
		}
		rewritten, err := inject(it.Abstract, store)
		if err != nil {
			return nil, err
		}
		it.Abstract = rewritten
		out.items[key] = it
	}

	return out, nil
}
