package services

// JoinOne resolves a scalar reference: the first record whose key equals id.
// A dangling reference is ErrNotFound, never a zero value.
func JoinOne[T any, K comparable](id K, records []T, key func(T) K, label string) (T, error) {
	for _, r := range records {
		if key(r) == id {
			return r, nil
		}
	}
	var zero T
	return zero, notFound("%s %v not found", label, id)
}

// JoinMany resolves a list reference. Matches come back in collection order,
// not in the order of ids; ids with no record are skipped.
func JoinMany[T any, K comparable](ids []K, records []T, key func(T) K) []T {
	want := make(map[K]struct{}, len(ids))
	for _, id := range ids {
		want[id] = struct{}{}
	}
	out := make([]T, 0, len(ids))
	for _, r := range records {
		if _, ok := want[key(r)]; ok {
			out = append(out, r)
		}
	}
	return out
}

// Project maps every record through fn, keeping order.
func Project[T, V any](records []T, fn func(T) V) []V {
	out := make([]V, 0, len(records))
	for _, r := range records {
		out = append(out, fn(r))
	}
	return out
}

// ProjectErr is Project for projections that join further and can fail.
func ProjectErr[T, V any](records []T, fn func(T) (V, error)) ([]V, error) {
	out := make([]V, 0, len(records))
	for _, r := range records {
		v, err := fn(r)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// JoinEach runs a list join per parent element, for nested shapes such as
// route sections to courses or course modules to classes. Parent order is
// kept; within a parent, matches follow collection order.
func JoinEach[P, T, V any, K comparable](parents []P, ids func(P) []K, records []T, key func(T) K, build func(P, []T) V) []V {
	out := make([]V, 0, len(parents))
	for _, p := range parents {
		out = append(out, build(p, JoinMany(ids(p), records, key)))
	}
	return out
}

// indexOf returns the position of the record whose key equals id, or -1.
func indexOf[T any, K comparable](records []T, key func(T) K, id K) int {
	for i, r := range records {
		if key(r) == id {
			return i
		}
	}
	return -1
}

// without returns ids minus every occurrence of id, and whether it was there.
func without[K comparable](ids []K, id K) ([]K, bool) {
	out := make([]K, 0, len(ids))
	found := false
	for _, v := range ids {
		if v == id {
			found = true
			continue
		}
		out = append(out, v)
	}
	return out, found
}
