package services

import "github.com/gosimple/slug"

// Unique fails with ErrConflict when any record's field equals value.
func Unique[T any, K comparable](value K, records []T, field func(T) K, label string) error {
	for _, r := range records {
		if field(r) == value {
			return conflict("%s %v already exists", label, value)
		}
	}
	return nil
}

// UniqueName is Unique over slugs, so names differing only in case,
// accents or punctuation collide.
func UniqueName[T any](name string, records []T, field func(T) string, label string) error {
	want := slug.Make(name)
	for _, r := range records {
		if slug.Make(field(r)) == want {
			return conflict("%s named %q already exists", label, name)
		}
	}
	return nil
}

// Exists fails with ErrNotFound when no record's field equals value.
func Exists[T any, K comparable](value K, records []T, field func(T) K, label string) error {
	for _, r := range records {
		if field(r) == value {
			return nil
		}
	}
	return notFound("%s %v not found", label, value)
}

// ExistAll checks every value in order and reports the first missing one.
func ExistAll[T any, K comparable](values []K, records []T, field func(T) K, label string) error {
	if len(values) == 0 {
		return nil
	}
	index := make(map[K]struct{}, len(records))
	for _, r := range records {
		index[field(r)] = struct{}{}
	}
	for _, v := range values {
		if _, ok := index[v]; !ok {
			return notFound("%s %v not found", label, v)
		}
	}
	return nil
}

// Except returns records without the one whose field equals value. The
// result is a new slice.
func Except[T any, K comparable](records []T, field func(T) K, value K) []T {
	out := make([]T, 0, len(records))
	for _, r := range records {
		if field(r) != value {
			out = append(out, r)
		}
	}
	return out
}
