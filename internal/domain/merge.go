package domain

import (
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// MergeResult is the outcome of reconciling a local and a remote collection.
type MergeResult struct {
	// Merged is the reconciled collection.
	Merged []Quote

	// Conflicts counts remote entries whose key already existed with a
	// different category. A key can be counted more than once when the remote
	// collection repeats it with alternating categories.
	Conflicts int
}

// Merge reconciles remote into local with remote precedence.
//
// Quotes are keyed by MergeKey. Local entries seed the mapping in order (a later
// local duplicate replaces the value but keeps the first position). Each remote
// entry then overwrites the mapping; when the key already existed with a
// different category (exact comparison) a conflict is counted. Entries whose key
// is empty are ignored.
//
// The result lists keys in first-insertion order, so local-only keys keep their
// relative order and new remote keys follow in remote order. Merge has no side
// effects.
func Merge(remote, local []Quote) MergeResult {
	m := orderedmap.New[string, Quote]()

	for _, q := range local {
		key := q.MergeKey()
		if key == "" {
			continue
		}

		m.Set(key, Quote{Text: q.Text, Category: q.Category})
	}

	conflicts := 0

	for _, rq := range remote {
		key := rq.MergeKey()
		if key == "" {
			continue
		}

		if existing, ok := m.Get(key); ok && existing.Category != rq.Category {
			conflicts++
		}

		m.Set(key, Quote{Text: rq.Text, Category: rq.Category})
	}

	merged := make([]Quote, 0, m.Len())
	for pair := m.Oldest(); pair != nil; pair = pair.Next() {
		merged = append(merged, pair.Value)
	}

	return MergeResult{Merged: merged, Conflicts: conflicts}
}
