package sizes

import "sort"

// Entry is the before/after size of one output file. A zero Before means
// the file is new; a zero After means it was removed by the pass.
type Entry struct {
	Path   string
	Before int64
	After  int64
}

// Delta returns the signed size change for the entry.
func (e Entry) Delta() int64 {
	return e.After - e.Before
}

// Diff joins two snapshots into per-file entries over the union of their
// paths, sorted by absolute delta (largest impact first), then by path
// for a stable order.
func Diff(before, after Snapshot) []Entry {
	entries := make([]Entry, 0, len(after))
	for path, size := range after {
		entries = append(entries, Entry{Path: path, Before: before[path], After: size})
	}
	for path, size := range before {
		if _, ok := after[path]; !ok {
			entries = append(entries, Entry{Path: path, Before: size})
		}
	}
	sort.SliceStable(entries, func(i, j int) bool {
		di, dj := abs(entries[i].Delta()), abs(entries[j].Delta())
		if di != dj {
			return di > dj
		}
		return entries[i].Path < entries[j].Path
	})
	return entries
}

func abs(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}
